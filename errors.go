package mmusim

import "github.com/pkg/errors"

var (
	// ErrZeroSize is returned if allocation of zero bytes is requested.
	ErrZeroSize = errors.New("allocation size must be positive")

	// ErrOutOfFrames is returned if there are not enough free frames to satisfy the allocation.
	ErrOutOfFrames = errors.New("not enough free frames")

	// ErrAddressSpaceExhausted is returned if allocation would move the break pointer past the address space.
	ErrAddressSpaceExhausted = errors.New("virtual address space exhausted")

	// ErrUnmapped is returned if virtual address is not mapped by the page table of the process.
	ErrUnmapped = errors.New("virtual address is not mapped")

	// ErrInvalidProcess is returned if process uses the ID reserved for free frames.
	ErrInvalidProcess = errors.New("process ID 0 is reserved")
)
