package types

import (
	"github.com/pkg/errors"
)

// maxAddressLen keeps RAM size representable by PhysicalAddress and leaves room for overflow checks.
const maxAddressLen = 31

// DefaultLayout is the shape of the simulated hardware: 1 MiB of RAM in 1 KiB frames,
// 5 bits of segment index and 5 bits of page index.
var DefaultLayout = Layout{
	AddressLen: 20,
	OffsetLen:  10,
	PageLen:    5,
}

// Layout defines how addresses are split into fields and, by that, the size of RAM and frames.
type Layout struct {
	// AddressLen is the number of bits in virtual and physical addresses.
	AddressLen uint8

	// OffsetLen is the number of low bits addressing a byte inside the frame.
	OffsetLen uint8

	// PageLen is the number of bits used as the second level index.
	PageLen uint8
}

// Validate verifies that layout describes a hardware which might be simulated.
func (l Layout) Validate() error {
	if l.OffsetLen == 0 {
		return errors.New("offset length must be positive")
	}
	if l.PageLen == 0 {
		return errors.New("page length must be positive")
	}
	if l.AddressLen > maxAddressLen {
		return errors.Errorf("address length %d exceeds maximum %d", l.AddressLen, maxAddressLen)
	}
	if uint16(l.OffsetLen)+uint16(l.PageLen) > uint16(l.AddressLen) {
		return errors.Errorf("offset length %d and page length %d do not fit into %d address bits",
			l.OffsetLen, l.PageLen, l.AddressLen)
	}
	return nil
}

// SegmentLen returns the number of bits used as the first level index.
func (l Layout) SegmentLen() uint8 {
	return l.AddressLen - l.OffsetLen - l.PageLen
}

// RAMSize returns the size of physical memory in bytes.
func (l Layout) RAMSize() uint64 {
	return 1 << l.AddressLen
}

// PageSize returns the size of the frame in bytes.
func (l Layout) PageSize() uint64 {
	return 1 << l.OffsetLen
}

// NumFrames returns the number of frames RAM is divided into.
func (l Layout) NumFrames() int {
	return 1 << (l.AddressLen - l.OffsetLen)
}

// MaxSegments returns the capacity of the segment table.
func (l Layout) MaxSegments() int {
	return 1 << l.SegmentLen()
}

// MaxPages returns the capacity of the second level table.
func (l Layout) MaxPages() int {
	return 1 << l.PageLen
}

// FramesFor returns the number of frames required to store size bytes.
func (l Layout) FramesFor(size uint64) uint64 {
	return (size + l.PageSize() - 1) >> l.OffsetLen
}

// Offset returns the offset of the address inside its page.
func (l Layout) Offset(addr VirtualAddress) uint32 {
	return uint32(addr) & (1<<l.OffsetLen - 1)
}

// FirstLevel returns the segment index of the address.
func (l Layout) FirstLevel(addr VirtualAddress) uint32 {
	return uint32(addr) >> (l.OffsetLen + l.PageLen)
}

// SecondLevel returns the page index of the address inside its segment.
func (l Layout) SecondLevel(addr VirtualAddress) uint32 {
	return uint32(addr)>>l.OffsetLen - l.FirstLevel(addr)<<l.PageLen
}

// Physical composes the physical address from frame and offset.
func (l Layout) Physical(frame FrameIndex, offset uint32) PhysicalAddress {
	return PhysicalAddress(uint32(frame)<<l.OffsetLen | offset)
}

// FrameOf returns the frame containing physical address.
func (l Layout) FrameOf(addr PhysicalAddress) FrameIndex {
	return FrameIndex(uint32(addr) >> l.OffsetLen)
}
