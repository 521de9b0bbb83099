package persistence

import (
	"io"
	"unsafe"

	"github.com/outofforest/photon"
	"github.com/pkg/errors"

	"github.com/outofforest/mmusim/physmem"
	"github.com/outofforest/mmusim/types"
)

const (
	// alignment specifies the alignment of sections stored on the device.
	alignment = 8

	// imageSubject identifies devices containing machine image.
	imageSubject = 0b0100110101001101010101010101001101001001010011010000000000000001

	// headerSize is the size of the header rounded up, so frame records following it are correctly aligned.
	headerSize = (int64(unsafe.Sizeof(header{})-1)/alignment + 1) * alignment

	// recordSize is the size of stored frame table entry.
	recordSize = int64(unsafe.Sizeof(physmem.Entry{}))
)

// Dev is the interface required from the device.
type Dev interface {
	io.ReadWriteSeeker
	Sync() error
	Size() int64
}

var (
	// ErrNotImage is returned if device does not contain machine image.
	ErrNotImage = errors.New("device does not contain machine image")

	// ErrDeviceTooSmall is returned if image does not fit into the device.
	ErrDeviceTooSmall = errors.New("device is too small")
)

// header is stored at the beginning of the device.
type header struct {
	Subject  uint64
	Checksum Hash
	RAMSize  uint64
	NFrames  uint64

	AddressLen uint8
	OffsetLen  uint8
	PageLen    uint8
}

// ImageSize returns the number of bytes required to store image of the machine with provided layout.
func ImageSize(layout types.Layout) int64 {
	return headerSize + int64(layout.NumFrames())*recordSize + int64(layout.RAMSize())
}

// Save stores the snapshot on the device.
func Save(dev Dev, s physmem.Snapshot) error {
	if err := s.Validate(); err != nil {
		return err
	}

	if size, devSize := ImageSize(s.Layout), dev.Size(); devSize < size {
		return errors.Wrapf(ErrDeviceTooSmall, "minimum size is: %d bytes, provided: %d", size, devSize)
	}

	records := make([]byte, 0, int64(len(s.Frames))*recordSize)
	for i := range s.Frames {
		records = append(records, photon.NewFromValue(&s.Frames[i]).B...)
	}

	h := photon.NewFromValue(&header{
		Subject:    imageSubject,
		Checksum:   Checksum(records, s.RAM),
		RAMSize:    s.Layout.RAMSize(),
		NFrames:    uint64(len(s.Frames)),
		AddressLen: s.Layout.AddressLen,
		OffsetLen:  s.Layout.OffsetLen,
		PageLen:    s.Layout.PageLen,
	})

	headerBytes := make([]byte, headerSize)
	copy(headerBytes, h.B)

	if _, err := dev.Seek(0, io.SeekStart); err != nil {
		return errors.WithStack(err)
	}
	for _, section := range [][]byte{headerBytes, records, s.RAM} {
		if _, err := dev.Write(section); err != nil {
			return errors.WithStack(err)
		}
	}

	return dev.Sync()
}

// Load reads the snapshot from the device.
func Load(dev Dev) (physmem.Snapshot, error) {
	if dev.Size() < headerSize {
		return physmem.Snapshot{}, errors.WithStack(ErrNotImage)
	}

	if _, err := dev.Seek(0, io.SeekStart); err != nil {
		return physmem.Snapshot{}, errors.WithStack(err)
	}

	h := photon.NewFromBytes[header](make([]byte, headerSize))
	if _, err := io.ReadFull(dev, h.B); err != nil {
		return physmem.Snapshot{}, errors.WithStack(err)
	}
	if h.V.Subject != imageSubject {
		return physmem.Snapshot{}, errors.WithStack(ErrNotImage)
	}

	layout := types.Layout{
		AddressLen: h.V.AddressLen,
		OffsetLen:  h.V.OffsetLen,
		PageLen:    h.V.PageLen,
	}
	if err := layout.Validate(); err != nil {
		return physmem.Snapshot{}, errors.Wrap(err, "image contains invalid layout")
	}
	if h.V.NFrames != uint64(layout.NumFrames()) || h.V.RAMSize != layout.RAMSize() {
		return physmem.Snapshot{}, errors.Errorf("image header is inconsistent, frames: %d, RAM size: %d, layout: %+v",
			h.V.NFrames, h.V.RAMSize, layout)
	}
	if size, devSize := ImageSize(layout), dev.Size(); devSize < size {
		return physmem.Snapshot{}, errors.Wrapf(ErrDeviceTooSmall, "image requires %d bytes, provided: %d", size, devSize)
	}

	records := make([]byte, int64(h.V.NFrames)*recordSize)
	ram := make([]byte, h.V.RAMSize)
	for _, section := range [][]byte{records, ram} {
		if _, err := io.ReadFull(dev, section); err != nil {
			return physmem.Snapshot{}, errors.WithStack(err)
		}
	}

	if err := VerifyChecksum(h.V.Checksum, records, ram); err != nil {
		return physmem.Snapshot{}, err
	}

	frames := make([]physmem.Entry, h.V.NFrames)
	for i := range frames {
		frames[i] = *photon.NewFromBytes[physmem.Entry](records[int64(i)*recordSize:]).V
	}

	return physmem.Snapshot{
		Layout: layout,
		Frames: frames,
		RAM:    ram,
	}, nil
}
