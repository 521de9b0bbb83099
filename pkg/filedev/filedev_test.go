package filedev

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCreateWriteOpenRead(t *testing.T) {
	requireT := require.New(t)

	path := filepath.Join(t.TempDir(), "image")

	dev, err := Create(path, 16)
	requireT.NoError(err)
	requireT.EqualValues(16, dev.Size())

	_, err = dev.Seek(4, io.SeekStart)
	requireT.NoError(err)
	_, err = dev.Write([]byte{0x0a, 0x0b})
	requireT.NoError(err)
	requireT.NoError(dev.Sync())
	requireT.NoError(dev.Close())

	dev, err = Open(path)
	requireT.NoError(err)
	defer dev.Close()
	requireT.EqualValues(16, dev.Size())

	_, err = dev.Seek(0, io.SeekStart)
	requireT.NoError(err)
	content, err := io.ReadAll(dev)
	requireT.NoError(err)
	requireT.Len(content, 16)
	requireT.Equal([]byte{0x0a, 0x0b}, content[4:6])
}

func TestOpenMissing(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
}

func TestWriteBeyondSize(t *testing.T) {
	requireT := require.New(t)

	dev, err := Create(filepath.Join(t.TempDir(), "image"), 4)
	requireT.NoError(err)
	defer dev.Close()

	_, err = dev.Seek(2, io.SeekStart)
	requireT.NoError(err)
	n, err := dev.Write([]byte{1, 2, 3})
	requireT.ErrorIs(err, io.ErrShortWrite)
	requireT.Equal(2, n)

	n, err = dev.Write([]byte{4})
	requireT.ErrorIs(err, io.ErrShortWrite)
	requireT.Zero(n)

	_, err = dev.Seek(0, io.SeekStart)
	requireT.NoError(err)
	content, err := io.ReadAll(dev)
	requireT.NoError(err)
	requireT.Equal([]byte{0, 0, 1, 2}, content)
}

func TestOpenDirectory(t *testing.T) {
	requireT := require.New(t)

	file, err := os.Open(t.TempDir())
	requireT.NoError(err)
	defer file.Close()

	_, err = New(file)
	requireT.Error(err)
}
