package proc

import (
	"github.com/outofforest/mmusim/pagetable"
	"github.com/outofforest/mmusim/types"
)

// PCB is the process control block of simulated process.
type PCB struct {
	pid          types.ProcessID
	priority     uint32
	breakPointer types.VirtualAddress
	pageTable    *pagetable.SegmentTable
}

// New creates process with empty page table sized for the layout. Break pointer starts at 0.
func New(pid types.ProcessID, priority uint32, layout types.Layout) *PCB {
	return &PCB{
		pid:       pid,
		priority:  priority,
		pageTable: pagetable.New(layout.MaxSegments(), layout.MaxPages()),
	}
}

// PID returns the ID of the process.
func (p *PCB) PID() types.ProcessID {
	return p.pid
}

// Priority returns the priority value used by the ready queue.
func (p *PCB) Priority() uint32 {
	return p.priority
}

// BreakPointer returns the first unused virtual address.
func (p *PCB) BreakPointer() types.VirtualAddress {
	return p.breakPointer
}

// SetBreakPointer sets the first unused virtual address.
func (p *PCB) SetBreakPointer(addr types.VirtualAddress) {
	p.breakPointer = addr
}

// PageTable returns the segment table of the process.
func (p *PCB) PageTable() *pagetable.SegmentTable {
	return p.pageTable
}
