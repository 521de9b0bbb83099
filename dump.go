package mmusim

import (
	"fmt"
	"io"

	"github.com/pkg/errors"

	"github.com/outofforest/mmusim/physmem"
	"github.com/outofforest/mmusim/types"
)

// Cell is the nonzero byte found in RAM.
type Cell struct {
	Address types.PhysicalAddress
	Value   byte
}

// FrameInfo describes allocated frame.
type FrameInfo struct {
	Frame types.FrameIndex
	physmem.Entry
	Start types.PhysicalAddress
	End   types.PhysicalAddress
	Cells []Cell
}

// Frames returns information about all the frames owned by processes, in physical order.
func (m *Machine) Frames() []FrameInfo {
	m.mu.Lock()
	defer m.mu.Unlock()

	return collectFrames(m.layout, m.ram, m.frames)
}

func collectFrames(layout types.Layout, ram *physmem.RAM, frames *physmem.FrameTable) []FrameInfo {
	var infos []FrameInfo
	for i := 0; i < frames.Len(); i++ {
		frame := types.FrameIndex(i)
		e := frames.Entry(frame)
		if e.Free() {
			continue
		}

		start := layout.Physical(frame, 0)
		info := FrameInfo{
			Frame: frame,
			Entry: e,
			Start: start,
			End:   start + types.PhysicalAddress(layout.PageSize()) - 1,
		}
		for offset, b := range ram.Frame(layout, frame) {
			if b != 0 {
				info.Cells = append(info.Cells, Cell{
					Address: start + types.PhysicalAddress(offset),
					Value:   b,
				})
			}
		}
		infos = append(infos, info)
	}
	return infos
}

// Dump writes human-readable listing of allocated frames and nonzero bytes stored in them.
func (m *Machine) Dump(w io.Writer) error {
	return dumpFrames(w, m.Frames())
}

func dumpFrames(w io.Writer, infos []FrameInfo) error {
	for _, info := range infos {
		if _, err := fmt.Fprintf(w, "%03d: %05x-%05x - PID: %02d (idx %03d, nxt: %03d)\n",
			info.Frame, info.Start, info.End, info.Owner, info.Index, info.Next); err != nil {
			return errors.WithStack(err)
		}
		for _, c := range info.Cells {
			if _, err := fmt.Fprintf(w, "\t%05x: %02x\n", c.Address, c.Value); err != nil {
				return errors.WithStack(err)
			}
		}
	}
	return nil
}
