package physmem

import (
	"github.com/pkg/errors"

	"github.com/outofforest/mmusim/types"
)

// Entry is the metadata of physical frame.
type Entry struct {
	// Owner is the process using the frame, types.FreeOwner if frame is free.
	Owner types.ProcessID

	// Index is the position of the frame in the list of frames backing the allocation.
	Index uint32

	// Next is the frame following this one in the allocation, types.NoFrame if this is the last one.
	Next types.FrameIndex
}

// Free tells if frame is available for allocation.
func (e Entry) Free() bool {
	return e.Owner == types.FreeOwner
}

// FrameTable stores ownership and allocation chains of all the frames.
type FrameTable struct {
	entries []Entry
}

// NewFrameTable creates frame table with all the frames free.
func NewFrameTable(nFrames int) *FrameTable {
	return &FrameTable{
		entries: make([]Entry, nFrames),
	}
}

// Len returns the number of frames.
func (ft *FrameTable) Len() int {
	return len(ft.entries)
}

// Entry returns the metadata of the frame.
func (ft *FrameTable) Entry(frame types.FrameIndex) Entry {
	return ft.entries[frame]
}

// CountFree returns the number of free frames.
func (ft *FrameTable) CountFree() int {
	var n int
	for _, e := range ft.entries {
		if e.Free() {
			n++
		}
	}
	return n
}

// FindFree returns first n free frames in physical order. Nil is returned if there are not enough of them.
func (ft *FrameTable) FindFree(n int) []types.FrameIndex {
	frames := make([]types.FrameIndex, 0, n)
	for i := 0; i < len(ft.entries) && len(frames) < n; i++ {
		if ft.entries[i].Free() {
			frames = append(frames, types.FrameIndex(i))
		}
	}
	if len(frames) < n {
		return nil
	}
	return frames
}

// Claim assigns frames to the owner. Order of frames defines their order in the allocation.
func (ft *FrameTable) Claim(frames []types.FrameIndex, owner types.ProcessID) {
	for i, frame := range frames {
		ft.entries[frame] = Entry{
			Owner: owner,
			Index: uint32(i),
			Next:  types.NoFrame,
		}
		if i > 0 {
			ft.entries[frames[i-1]].Next = frame
		}
	}
}

// Release frees all the frames of the allocation starting at frame first. Function visit is called for each frame
// with its metadata from before releasing it.
func (ft *FrameTable) Release(first types.FrameIndex, visit func(frame types.FrameIndex, e Entry)) error {
	frame := first
	for n := 0; frame != types.NoFrame; n++ {
		if n == len(ft.entries) {
			return errors.Errorf("chain of frames starting at %d does not terminate", first)
		}
		if frame < 0 || int(frame) >= len(ft.entries) {
			return errors.Errorf("frame %d in chain starting at %d does not exist", frame, first)
		}

		e := ft.entries[frame]
		ft.entries[frame].Owner = types.FreeOwner
		visit(frame, e)
		frame = e.Next
	}
	return nil
}
