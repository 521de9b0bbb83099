package physmem

import (
	"github.com/pkg/errors"

	"github.com/outofforest/mmusim/types"
)

// RAM is the physical store of the machine.
type RAM struct {
	data []byte
}

// NewRAM returns zeroed RAM of the provided size.
func NewRAM(size uint64) *RAM {
	return &RAM{
		data: make([]byte, size),
	}
}

// Size returns the size of RAM in bytes.
func (r *RAM) Size() uint64 {
	return uint64(len(r.data))
}

// Load returns the byte stored under physical address.
func (r *RAM) Load(addr types.PhysicalAddress) (byte, error) {
	if uint64(addr) >= r.Size() {
		return 0, errors.Errorf("physical address 0x%x is out of RAM", addr)
	}
	return r.data[addr], nil
}

// Store stores byte under physical address.
func (r *RAM) Store(addr types.PhysicalAddress, b byte) error {
	if uint64(addr) >= r.Size() {
		return errors.Errorf("physical address 0x%x is out of RAM", addr)
	}
	r.data[addr] = b
	return nil
}

// Frame returns the bytes of the frame. Returned slice aliases RAM.
func (r *RAM) Frame(layout types.Layout, frame types.FrameIndex) []byte {
	start := uint64(frame) << layout.OffsetLen
	return r.data[start : start+layout.PageSize()]
}
