package memdev

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDev() *MemDev {
	dev := New(10)
	for i := range dev.data {
		dev.data[i] = byte(i)
	}
	return dev
}

func TestSeek(t *testing.T) {
	assertT := assert.New(t)

	dev := newDev()

	o, err := dev.Seek(5, io.SeekStart)
	assertT.NoError(err)
	assertT.EqualValues(5, o)

	o, err = dev.Seek(-2, io.SeekCurrent)
	assertT.NoError(err)
	assertT.EqualValues(3, o)

	o, err = dev.Seek(-1, io.SeekEnd)
	assertT.NoError(err)
	assertT.EqualValues(9, o)

	_, err = dev.Seek(1, io.SeekEnd)
	assertT.Error(err)
	_, err = dev.Seek(-1, io.SeekStart)
	assertT.Error(err)
	_, err = dev.Seek(0, 7)
	assertT.Error(err)

	// failed seeks don't move the offset
	o, err = dev.Seek(0, io.SeekCurrent)
	assertT.NoError(err)
	assertT.EqualValues(9, o)
}

func TestReadUntilEOF(t *testing.T) {
	requireT := require.New(t)

	dev := newDev()

	n, err := dev.Read(nil)
	requireT.NoError(err)
	requireT.Zero(n)

	_, err = dev.Seek(7, io.SeekStart)
	requireT.NoError(err)

	buf := make([]byte, 5)
	n, err = dev.Read(buf)
	requireT.NoError(err)
	requireT.Equal(3, n)
	requireT.Equal([]byte{0x07, 0x08, 0x09}, buf[:n])

	_, err = dev.Read(buf)
	requireT.ErrorIs(err, io.EOF)

	_, err = dev.Seek(0, io.SeekStart)
	requireT.NoError(err)
	all, err := io.ReadAll(dev)
	requireT.NoError(err)
	requireT.Equal(dev.Bytes(), all)
}

func TestWrite(t *testing.T) {
	requireT := require.New(t)

	dev := New(4)
	requireT.EqualValues(4, dev.Size())

	n, err := dev.Write([]byte{0x01, 0x02})
	requireT.NoError(err)
	requireT.Equal(2, n)

	n, err = dev.Write([]byte{0x03, 0x04, 0x05})
	requireT.ErrorIs(err, io.ErrShortWrite)
	requireT.Equal(2, n)
	requireT.Equal([]byte{0x01, 0x02, 0x03, 0x04}, dev.Bytes())
	requireT.NoError(dev.Sync())
}
