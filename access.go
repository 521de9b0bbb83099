package mmusim

import (
	"github.com/pkg/errors"

	"github.com/outofforest/mmusim/types"
)

// Read returns the byte stored under virtual address of the process.
// It doesn't synchronize with Allocate and Free.
func (m *Machine) Read(addr types.VirtualAddress, p Process) (byte, error) {
	physical, exists := m.Translate(addr, p)
	if !exists {
		return 0, errors.Wrapf(ErrUnmapped, "address 0x%x", addr)
	}
	return m.ram.Load(physical)
}

// Write stores the byte under virtual address of the process.
// It doesn't synchronize with Allocate and Free.
func (m *Machine) Write(addr types.VirtualAddress, p Process, b byte) error {
	physical, exists := m.Translate(addr, p)
	if !exists {
		return errors.Wrapf(ErrUnmapped, "address 0x%x", addr)
	}
	return m.ram.Store(physical, b)
}
