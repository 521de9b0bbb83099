package mmusim

import (
	"github.com/pkg/errors"

	"github.com/outofforest/mmusim/physmem"
	"github.com/outofforest/mmusim/pkg/logging"
	"github.com/outofforest/mmusim/types"
)

// Free releases the whole allocation starting at addr. Frames become free and their pages are removed from
// the page table of the process, together with segments left empty.
//
// The addr must be the address returned by Allocate for this process. Passing any other mapped address
// corrupts the page table.
func (m *Machine) Free(addr types.VirtualAddress, p Process) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	st := p.PageTable()
	physical, exists := translate(m.layout, st, addr)
	if !exists {
		return errors.Wrapf(ErrUnmapped, "address 0x%x", addr)
	}

	var nFrames int
	err := m.frames.Release(m.layout.FrameOf(physical), func(_ types.FrameIndex, e physmem.Entry) {
		page := m.pageAddress(addr, e.Index)
		st.Unmap(m.layout.FirstLevel(page), m.layout.SecondLevel(page))
		nFrames++
	})
	if err != nil {
		return err
	}

	logging.WithProcess(m.log, p.PID()).Debug("Memory freed", "address", addr, "frames", nFrames)
	return nil
}
