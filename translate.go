package mmusim

import (
	"github.com/outofforest/mmusim/pagetable"
	"github.com/outofforest/mmusim/types"
)

// Translate returns physical address the virtual address of the process is mapped to.
func (m *Machine) Translate(addr types.VirtualAddress, p Process) (types.PhysicalAddress, bool) {
	return translate(m.layout, p.PageTable(), addr)
}

func translate(layout types.Layout, st *pagetable.SegmentTable, addr types.VirtualAddress) (types.PhysicalAddress, bool) {
	pt, exists := st.Lookup(layout.FirstLevel(addr))
	if !exists {
		return 0, false
	}
	frame, exists := pt.Lookup(layout.SecondLevel(addr))
	if !exists {
		return 0, false
	}
	return layout.Physical(frame, layout.Offset(addr)), true
}
