package physmem

import (
	"github.com/pkg/errors"

	"github.com/outofforest/mmusim/types"
)

// Snapshot is the copy of machine state: layout, frame table and RAM content.
type Snapshot struct {
	Layout types.Layout
	Frames []Entry
	RAM    []byte
}

// Validate verifies that sizes of frame table and RAM match the layout.
func (s Snapshot) Validate() error {
	if err := s.Layout.Validate(); err != nil {
		return err
	}
	if len(s.Frames) != s.Layout.NumFrames() {
		return errors.Errorf("snapshot contains %d frames, layout requires %d", len(s.Frames), s.Layout.NumFrames())
	}
	if uint64(len(s.RAM)) != s.Layout.RAMSize() {
		return errors.Errorf("snapshot contains %d bytes of RAM, layout requires %d", len(s.RAM), s.Layout.RAMSize())
	}
	return nil
}

// Capture copies the state of RAM and frame table.
func Capture(layout types.Layout, ram *RAM, frames *FrameTable) Snapshot {
	s := Snapshot{
		Layout: layout,
		Frames: make([]Entry, len(frames.entries)),
		RAM:    make([]byte, len(ram.data)),
	}
	copy(s.Frames, frames.entries)
	copy(s.RAM, ram.data)
	return s
}

// Materialize builds RAM and frame table from the snapshot.
func (s Snapshot) Materialize() (*RAM, *FrameTable, error) {
	if err := s.Validate(); err != nil {
		return nil, nil, err
	}

	ram := NewRAM(s.Layout.RAMSize())
	copy(ram.data, s.RAM)
	frames := NewFrameTable(len(s.Frames))
	copy(frames.entries, s.Frames)
	return ram, frames, nil
}
