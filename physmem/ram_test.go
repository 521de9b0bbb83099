package physmem

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/outofforest/mmusim/types"
)

func TestLoadStore(t *testing.T) {
	requireT := require.New(t)

	ram := NewRAM(types.DefaultLayout.RAMSize())
	requireT.EqualValues(1<<20, ram.Size())

	requireT.NoError(ram.Store(0x0c05, 0xab))
	b, err := ram.Load(0x0c05)
	requireT.NoError(err)
	requireT.EqualValues(0xab, b)

	frame := ram.Frame(types.DefaultLayout, 3)
	requireT.Len(frame, 1024)
	requireT.EqualValues(0xab, frame[5])

	_, err = ram.Load(1 << 20)
	requireT.Error(err)
	requireT.Error(ram.Store(1<<20, 1))
}

func TestSnapshotIsACopy(t *testing.T) {
	requireT := require.New(t)

	layout := types.Layout{AddressLen: 12, OffsetLen: 8, PageLen: 2}
	ram := NewRAM(layout.RAMSize())
	frames := NewFrameTable(layout.NumFrames())
	frames.Claim([]types.FrameIndex{2, 3}, 9)
	requireT.NoError(ram.Store(0x201, 0x11))

	s := Capture(layout, ram, frames)
	requireT.NoError(s.Validate())

	requireT.NoError(ram.Store(0x201, 0x22))
	frames.Claim([]types.FrameIndex{0}, 5)
	requireT.EqualValues(0x11, s.RAM[0x201])
	requireT.True(s.Frames[0].Free())

	ram2, frames2, err := s.Materialize()
	requireT.NoError(err)
	b, err := ram2.Load(0x201)
	requireT.NoError(err)
	requireT.EqualValues(0x11, b)
	requireT.Equal(Entry{Owner: 9, Index: 1, Next: types.NoFrame}, frames2.Entry(3))
	requireT.Equal(14, frames2.CountFree())
}

func TestSnapshotValidate(t *testing.T) {
	requireT := require.New(t)

	layout := types.Layout{AddressLen: 12, OffsetLen: 8, PageLen: 2}
	requireT.Error(Snapshot{Layout: layout, Frames: make([]Entry, 15), RAM: make([]byte, 4096)}.Validate())
	requireT.Error(Snapshot{Layout: layout, Frames: make([]Entry, 16), RAM: make([]byte, 4095)}.Validate())
	requireT.NoError(Snapshot{Layout: layout, Frames: make([]Entry, 16), RAM: make([]byte, 4096)}.Validate())
}
