package filedev

import (
	"io"
	"os"

	"github.com/pkg/errors"
)

var _ io.ReadWriteSeeker = &FileDev{}

// FileDev uses file handle as a device.
type FileDev struct {
	file *os.File
	size int64
}

// New returns new filedev of the size the file has now.
func New(file *os.File) (*FileDev, error) {
	info, err := file.Stat()
	if err != nil {
		return nil, errors.WithStack(err)
	}
	if !info.Mode().IsRegular() {
		return nil, errors.Errorf("%s is not a regular file", info.Name())
	}
	return &FileDev{
		file: file,
		size: info.Size(),
	}, nil
}

// Open opens existing file as a device.
func Open(path string) (*FileDev, error) {
	file, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	fd, err := New(file)
	if err != nil {
		_ = file.Close()
		return nil, err
	}
	return fd, nil
}

// Create creates or truncates the file and resizes it to the size of the device.
func Create(path string, size int64) (*FileDev, error) {
	file, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	if err := file.Truncate(size); err != nil {
		_ = file.Close()
		return nil, errors.WithStack(err)
	}
	return &FileDev{
		file: file,
		size: size,
	}, nil
}

// Seek moves the position within the file.
func (fd *FileDev) Seek(offset int64, whence int) (int64, error) {
	pos, err := fd.file.Seek(offset, whence)
	return pos, errors.Wrapf(err, "seeking to %d (whence %d) failed", offset, whence)
}

// Read reads data from the file. End of the file is reported with bare io.EOF.
func (fd *FileDev) Read(p []byte) (int, error) {
	n, err := fd.file.Read(p)
	if errors.Is(err, io.EOF) {
		return n, io.EOF
	}
	return n, errors.WithStack(err)
}

// Write writes data to the file. The file never grows beyond the size of the device,
// bytes not fitting are rejected with io.ErrShortWrite.
func (fd *FileDev) Write(p []byte) (int, error) {
	pos, err := fd.file.Seek(0, io.SeekCurrent)
	if err != nil {
		return 0, errors.WithStack(err)
	}

	short := false
	if available := fd.size - pos; int64(len(p)) > available {
		p = p[:max(available, 0)]
		short = true
	}

	n, err := fd.file.Write(p)
	if err != nil {
		return n, errors.WithStack(err)
	}
	if short {
		return n, errors.WithStack(io.ErrShortWrite)
	}
	return n, nil
}

// Sync flushes written image to the disk.
func (fd *FileDev) Sync() error {
	return errors.WithStack(fd.file.Sync())
}

// Size returns the size of the device.
func (fd *FileDev) Size() int64 {
	return fd.size
}

// Close closes the file.
func (fd *FileDev) Close() error {
	return errors.WithStack(fd.file.Close())
}
