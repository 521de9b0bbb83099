package main

import (
	"context"
	"log/slog"
	"sync"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/outofforest/mmusim"
	"github.com/outofforest/mmusim/pkg/logging"
	"github.com/outofforest/mmusim/proc"
	"github.com/outofforest/mmusim/queue"
	"github.com/outofforest/mmusim/types"
)

// task is the process together with the state of its workload.
type task struct {
	*proc.PCB

	remaining   int
	allocations []types.VirtualAddress
}

type stats struct {
	mu       sync.Mutex
	slices   int
	failures int
	dropped  int
}

func (s *stats) record(failed bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.slices++
	if failed {
		s.failures++
	}
}

// readyQueue guards the queue shared by workers. It counts live tasks, so a worker waits for a task
// running on another worker to be pushed back instead of leaving once the queue is momentarily empty.
type readyQueue struct {
	mu     sync.Mutex
	cond   *sync.Cond
	q      *queue.Queue[*task]
	live   int
	closed bool
}

func newReadyQueue(capacity int) *readyQueue {
	rq := &readyQueue{q: queue.New[*task](capacity)}
	rq.cond = sync.NewCond(&rq.mu)
	return rq
}

// add admits new task.
func (rq *readyQueue) add(t *task) error {
	rq.mu.Lock()
	defer rq.mu.Unlock()

	if err := rq.q.Enqueue(t); err != nil {
		return err
	}
	rq.live++
	rq.cond.Signal()
	return nil
}

// push returns admitted task to the queue after its time slice.
func (rq *readyQueue) push(t *task) error {
	rq.mu.Lock()
	defer rq.mu.Unlock()

	if err := rq.q.Enqueue(t); err != nil {
		return err
	}
	rq.cond.Signal()
	return nil
}

// finish marks admitted task as completed.
func (rq *readyQueue) finish() {
	rq.mu.Lock()
	defer rq.mu.Unlock()

	rq.live--
	if rq.live == 0 {
		rq.cond.Broadcast()
	}
}

// close wakes up all the waiting workers and makes pop fail.
func (rq *readyQueue) close() {
	rq.mu.Lock()
	defer rq.mu.Unlock()

	rq.closed = true
	rq.cond.Broadcast()
}

// pop blocks until task is available. It returns false once all the tasks are finished or queue is closed.
func (rq *readyQueue) pop() (*task, bool) {
	rq.mu.Lock()
	defer rq.mu.Unlock()

	for rq.q.Empty() && rq.live > 0 && !rq.closed {
		rq.cond.Wait()
	}
	if rq.closed {
		return nil, false
	}
	return rq.q.Dequeue()
}

// schedule runs processes on opts.cpus workers. Each worker takes the process from the tail of the ready queue,
// executes one time slice and puts it back until the process runs all its rounds.
func schedule(ctx context.Context, m *mmusim.Machine, opts options, log *slog.Logger) (*stats, error) {
	st := &stats{}
	rq := newReadyQueue(types.MaxQueueSize)

	for i := 1; i <= opts.procs; i++ {
		t := &task{
			PCB:       proc.New(types.ProcessID(i), uint32(i*7%5), m.Layout()),
			remaining: opts.rounds,
		}
		if err := rq.add(t); err != nil {
			st.dropped++
			logging.WithProcess(log, t.PID()).Warn("Process dropped", "error", err)
		}
	}

	group, ctx := errgroup.WithContext(ctx)
	defer context.AfterFunc(ctx, rq.close)()

	for cpu := 0; cpu < opts.cpus; cpu++ {
		cpuLog := log.With("cpu", cpu)
		group.Go(func() error {
			for {
				if err := ctx.Err(); err != nil {
					return errors.WithStack(err)
				}

				t, ok := rq.pop()
				if !ok {
					return errors.WithStack(ctx.Err())
				}

				failed, err := runSlice(m, t, uint32(opts.size), logging.WithProcess(cpuLog, t.PID()))
				if err != nil {
					return err
				}
				st.record(failed)

				t.remaining--
				if t.remaining <= 0 {
					rq.finish()
					continue
				}
				if err := rq.push(t); err != nil {
					return err
				}
			}
		})
	}

	return st, group.Wait()
}

// runSlice allocates memory, fills it and verifies the content. Every second slice the oldest allocation
// is released. Allocation failures are not fatal, they are reported as failed slice.
func runSlice(m *mmusim.Machine, t *task, size uint32, log *slog.Logger) (bool, error) {
	addr, err := m.Allocate(size, t)
	switch {
	case errors.Is(err, mmusim.ErrOutOfFrames), errors.Is(err, mmusim.ErrAddressSpaceExhausted):
		log.Warn("Allocation failed", "size", size, "error", err)
		return true, nil
	case err != nil:
		return false, err
	}
	t.allocations = append(t.allocations, addr)

	pattern := byte(t.PID())
	for o := uint32(0); o < size; o += 256 {
		if err := m.Write(addr+types.VirtualAddress(o), t, pattern); err != nil {
			return false, err
		}
	}
	for o := uint32(0); o < size; o += 256 {
		b, err := m.Read(addr+types.VirtualAddress(o), t)
		if err != nil {
			return false, err
		}
		if b != pattern {
			return false, errors.Errorf("process %d read 0x%02x at 0x%x, expected 0x%02x", t.PID(), b, addr, pattern)
		}
	}

	log.Info("Slice executed", "address", addr, "size", size, "remaining", t.remaining-1)

	if len(t.allocations) > 1 && t.remaining%2 == 0 {
		if err := m.Free(t.allocations[0], t); err != nil {
			return false, err
		}
		t.allocations = t.allocations[1:]
	}
	return false, nil
}
