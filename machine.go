package mmusim

import (
	"log/slog"
	"sync"

	"github.com/pkg/errors"

	"github.com/outofforest/mmusim/physmem"
	"github.com/outofforest/mmusim/pkg/logging"
	"github.com/outofforest/mmusim/types"
)

// Config is the configuration of the machine.
type Config struct {
	// Layout defines the shape of simulated hardware.
	Layout types.Layout

	// Logger receives diagnostic records, nothing is logged if nil.
	Logger *slog.Logger
}

// DefaultConfig is the machine with the default layout and no logging.
var DefaultConfig = Config{
	Layout: types.DefaultLayout,
}

// Machine simulates RAM shared by processes through two-level page tables.
//
// Allocate, Free and the diagnostic methods are serialized by a single lock. Translate, Read and Write
// don't take it, so running them concurrently with Allocate or Free touching the same process is a data race.
type Machine struct {
	layout types.Layout
	log    *slog.Logger

	// mu protects frame table and page tables of all the processes during allocation and release.
	mu     sync.Mutex
	ram    *physmem.RAM
	frames *physmem.FrameTable
}

// New creates machine with zeroed RAM and all the frames free.
func New(config Config) (*Machine, error) {
	if err := config.Layout.Validate(); err != nil {
		return nil, err
	}

	return newMachine(config, physmem.NewRAM(config.Layout.RAMSize()), physmem.NewFrameTable(config.Layout.NumFrames())), nil
}

// Restore creates machine from snapshot. Frames keep their owners, so they remain reserved until
// freed by processes holding matching page tables.
func Restore(config Config, s physmem.Snapshot) (*Machine, error) {
	if config.Layout == (types.Layout{}) {
		config.Layout = s.Layout
	}
	if config.Layout != s.Layout {
		return nil, errors.Errorf("snapshot layout %+v does not match configured %+v", s.Layout, config.Layout)
	}

	ram, frames, err := s.Materialize()
	if err != nil {
		return nil, err
	}
	return newMachine(config, ram, frames), nil
}

func newMachine(config Config, ram *physmem.RAM, frames *physmem.FrameTable) *Machine {
	log := config.Logger
	if log == nil {
		log = logging.Discard()
	}

	return &Machine{
		layout: config.Layout,
		log:    logging.WithComponent(log, "mmu"),
		ram:    ram,
		frames: frames,
	}
}

// Layout returns the layout of the machine.
func (m *Machine) Layout() types.Layout {
	return m.layout
}

// FreeFrames returns the number of frames not owned by any process.
func (m *Machine) FreeFrames() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.frames.CountFree()
}

// Snapshot returns copy of RAM and frame table.
func (m *Machine) Snapshot() physmem.Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	return physmem.Capture(m.layout, m.ram, m.frames)
}
