package mmusim

import (
	"github.com/pkg/errors"

	"github.com/outofforest/mmusim/pkg/logging"
	"github.com/outofforest/mmusim/types"
)

// Allocate reserves frames for size bytes and maps them at the break pointer of the process.
// Returned address is the previous value of the break pointer. Frames don't need to be physically contiguous,
// they are taken from the frame table in physical order. Either everything is allocated or nothing is changed.
func (m *Machine) Allocate(size uint32, p Process) (types.VirtualAddress, error) {
	pid := p.PID()
	if pid == types.FreeOwner {
		return 0, errors.WithStack(ErrInvalidProcess)
	}
	if size == 0 {
		return 0, errors.WithStack(ErrZeroSize)
	}

	log := logging.WithProcess(m.log, pid)
	nFrames := m.layout.FramesFor(uint64(size))

	m.mu.Lock()
	defer m.mu.Unlock()

	bp := p.BreakPointer()
	if end := uint64(bp) + nFrames*m.layout.PageSize(); end >= m.layout.RAMSize() {
		log.Debug("Allocation exceeds address space", "size", size, "breakPointer", bp, "end", end)
		return 0, errors.Wrapf(ErrAddressSpaceExhausted, "break pointer 0x%x, requested %d bytes", bp, size)
	}

	frames := m.frames.FindFree(int(nFrames))
	if frames == nil {
		log.Debug("Not enough free frames", "size", size, "frames", nFrames)
		return 0, errors.Wrapf(ErrOutOfFrames, "requested %d frames", nFrames)
	}

	st := p.PageTable()
	for slot, frame := range frames {
		page := m.pageAddress(bp, uint32(slot))
		if err := st.Map(m.layout.FirstLevel(page), m.layout.SecondLevel(page), frame); err != nil {
			for i := slot - 1; i >= 0; i-- {
				mapped := m.pageAddress(bp, uint32(i))
				st.UnmapFrame(m.layout.FirstLevel(mapped), m.layout.SecondLevel(mapped), frames[i])
			}
			return 0, errors.Wrapf(err, "mapping page 0x%x failed", page)
		}
	}

	m.frames.Claim(frames, pid)
	p.SetBreakPointer(bp + types.VirtualAddress(nFrames*m.layout.PageSize()))

	log.Debug("Memory allocated", "address", bp, "size", size, "frames", nFrames)
	return bp, nil
}

// pageAddress returns virtual address of the slot-th page of the allocation starting at addr.
func (m *Machine) pageAddress(addr types.VirtualAddress, slot uint32) types.VirtualAddress {
	return addr + types.VirtualAddress(slot)<<m.layout.OffsetLen
}
