package memdev

import (
	"io"

	"github.com/pkg/errors"
)

var (
	_ io.Seeker = &MemDev{}
	_ io.Reader = &MemDev{}
	_ io.Writer = &MemDev{}
)

// MemDev is the fixed-size device kept in memory. It is used to store machine images in tests and dry runs.
type MemDev struct {
	offset int64
	data   []byte
}

// New returns new zeroed memdev.
func New(size int64) *MemDev {
	return &MemDev{
		data: make([]byte, size),
	}
}

// Seek seeks the position.
func (md *MemDev) Seek(offset int64, whence int) (int64, error) {
	switch whence {
	case io.SeekStart:
	case io.SeekCurrent:
		offset += md.offset
	case io.SeekEnd:
		offset += md.Size()
	default:
		return 0, errors.Errorf("invalid whence: %d", whence)
	}

	if offset < 0 || offset > md.Size() {
		return 0, errors.Errorf("invalid offset: %d", offset)
	}

	md.offset = offset
	return offset, nil
}

// Read reads data from the memdev. io.EOF is returned once the end of device is reached.
func (md *MemDev) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	if md.offset == md.Size() {
		return 0, io.EOF
	}
	n := copy(p, md.data[md.offset:])
	md.offset += int64(n)
	return n, nil
}

// Write writes data to the memdev. Bytes not fitting into the device are rejected with io.ErrShortWrite.
func (md *MemDev) Write(p []byte) (int, error) {
	n := copy(md.data[md.offset:], p)
	md.offset += int64(n)
	if n < len(p) {
		return n, errors.WithStack(io.ErrShortWrite)
	}
	return n, nil
}

// Sync does nothing, memdev is always in sync.
func (md *MemDev) Sync() error {
	return nil
}

// Size returns the size of the device.
func (md *MemDev) Size() int64 {
	return int64(len(md.data))
}

// Bytes returns the content of the device. Returned slice aliases device memory.
func (md *MemDev) Bytes() []byte {
	return md.data
}
