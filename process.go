package mmusim

import (
	"github.com/outofforest/mmusim/pagetable"
	"github.com/outofforest/mmusim/types"
)

// Process is the view of the process required by the machine.
type Process interface {
	// PID returns ID of the process, it must not be 0.
	PID() types.ProcessID

	// BreakPointer returns the first virtual address not used by the process yet.
	BreakPointer() types.VirtualAddress

	// SetBreakPointer moves the break pointer.
	SetBreakPointer(addr types.VirtualAddress)

	// PageTable returns the root of the process's page table.
	PageTable() *pagetable.SegmentTable
}
