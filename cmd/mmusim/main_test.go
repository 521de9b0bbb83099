package main

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/outofforest/mmusim"
	"github.com/outofforest/mmusim/pkg/logging"
	"github.com/outofforest/mmusim/proc"
	"github.com/outofforest/mmusim/types"
)

func TestSchedule(t *testing.T) {
	requireT := require.New(t)

	m, err := mmusim.New(mmusim.DefaultConfig)
	requireT.NoError(err)

	st, err := schedule(context.Background(), m, options{
		procs:  12,
		cpus:   3,
		rounds: 5,
		size:   2500,
	}, logging.Discard())
	requireT.NoError(err)

	// queue capacity is 10, so two processes are dropped
	requireT.Equal(2, st.dropped)
	requireT.Equal(50, st.slices)
	requireT.Zero(st.failures)

	// each process keeps the allocations which were not released: 5 slices, 2 releases, 3 frames each
	requireT.Equal(1024-10*3*3, m.FreeFrames())
}

func TestPopWaitsForRunningTask(t *testing.T) {
	requireT := require.New(t)

	rq := newReadyQueue(types.MaxQueueSize)
	running := &task{PCB: proc.New(1, 0, types.DefaultLayout), remaining: 2}
	requireT.NoError(rq.add(running))

	popped, ok := rq.pop()
	requireT.True(ok)
	requireT.Same(running, popped)

	results := make(chan *task, 1)
	go func() {
		popped, _ := rq.pop()
		results <- popped
	}()

	select {
	case <-results:
		requireT.Fail("pop returned while task was still running")
	case <-time.After(50 * time.Millisecond):
	}

	requireT.NoError(rq.push(running))
	requireT.Same(running, <-results)

	go func() {
		popped, _ := rq.pop()
		results <- popped
	}()
	rq.finish()
	requireT.Nil(<-results)

	_, ok = rq.pop()
	requireT.False(ok)
}

func TestCloseReleasesWaitingWorkers(t *testing.T) {
	requireT := require.New(t)

	rq := newReadyQueue(types.MaxQueueSize)
	requireT.NoError(rq.add(&task{PCB: proc.New(1, 0, types.DefaultLayout), remaining: 1}))
	_, ok := rq.pop()
	requireT.True(ok)

	results := make(chan bool, 1)
	go func() {
		_, ok := rq.pop()
		results <- ok
	}()
	rq.close()
	requireT.False(<-results)
}

func TestScheduleCanceled(t *testing.T) {
	requireT := require.New(t)

	m, err := mmusim.New(mmusim.DefaultConfig)
	requireT.NoError(err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = schedule(ctx, m, options{
		procs:  2,
		cpus:   2,
		rounds: 3,
		size:   100,
	}, logging.Discard())
	requireT.ErrorIs(err, context.Canceled)
}

func TestSimulateAndInspect(t *testing.T) {
	requireT := require.New(t)

	image := filepath.Join(t.TempDir(), "machine.img")
	opts := options{
		procs:  2,
		cpus:   1,
		rounds: 1,
		size:   10,
		image:  image,
		plain:  true,
	}

	simulated := &bytes.Buffer{}
	requireT.NoError(simulate(context.Background(), opts, logging.Discard(), simulated))
	requireT.Contains(simulated.String(), "000: 00000-003ff - PID: 02 (idx 000, nxt: -01)\n\t00000: 02\n")
	requireT.Contains(simulated.String(), "001: 00400-007ff - PID: 01 (idx 000, nxt: -01)\n\t00400: 01\n")

	opts.inspect = image
	inspected := &bytes.Buffer{}
	requireT.NoError(inspect(opts, logging.Discard(), inspected))
	requireT.Equal(
		"000: 00000-003ff - PID: 02 (idx 000, nxt: -01)\n\t00000: 02\n"+
			"001: 00400-007ff - PID: 01 (idx 000, nxt: -01)\n\t00400: 01\n",
		inspected.String())
}

func TestRenderFrames(t *testing.T) {
	requireT := require.New(t)

	out := renderFrames([]mmusim.FrameInfo{{
		Frame: 3,
		Start: 0xc00,
		End:   0xfff,
		Cells: []mmusim.Cell{{Address: 0xc00, Value: 1}, {Address: 0xc01, Value: 2}, {Address: 0xc02, Value: 3},
			{Address: 0xc03, Value: 4}, {Address: 0xc04, Value: 5}},
	}})
	requireT.Contains(out, "FRAME")
	requireT.Contains(out, "00c00-00fff")
	requireT.Contains(out, "00c03:04")
	requireT.Contains(out, "+1 more")
}
