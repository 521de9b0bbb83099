package pagetable

import (
	"github.com/pkg/errors"

	"github.com/outofforest/mmusim/types"
)

var (
	// ErrSegmentTableFull is returned if new segment can't be added to the segment table.
	ErrSegmentTableFull = errors.New("segment table is full")

	// ErrPageTableFull is returned if new page can't be added to the second level table.
	ErrPageTableFull = errors.New("page table is full")
)

// PageEntry maps second level index to the frame.
type PageEntry struct {
	Index uint32
	Frame types.FrameIndex
}

// PageTable is the second level table.
type PageTable struct {
	entries []PageEntry
}

// Lookup returns frame mapped under second level index.
func (pt *PageTable) Lookup(index uint32) (types.FrameIndex, bool) {
	for _, e := range pt.entries {
		if e.Index == index {
			return e.Frame, true
		}
	}
	return types.NoFrame, false
}

// Len returns the number of pages in the table.
func (pt *PageTable) Len() int {
	return len(pt.entries)
}

// Entries returns entries of the table in their order.
func (pt *PageTable) Entries() []PageEntry {
	return append([]PageEntry(nil), pt.entries...)
}

func (pt *PageTable) remove(index uint32) bool {
	for i, e := range pt.entries {
		if e.Index == index {
			pt.entries = append(pt.entries[:i], pt.entries[i+1:]...)
			return true
		}
	}
	return false
}

func (pt *PageTable) removeMapping(index uint32, frame types.FrameIndex) bool {
	for i := len(pt.entries) - 1; i >= 0; i-- {
		if e := pt.entries[i]; e.Index == index && e.Frame == frame {
			pt.entries = append(pt.entries[:i], pt.entries[i+1:]...)
			return true
		}
	}
	return false
}

// SegmentEntry maps first level index to the second level table.
type SegmentEntry struct {
	Index uint32
	Table *PageTable
}

// SegmentTable is the first level table, the root of process's page table.
type SegmentTable struct {
	maxSegments int
	maxPages    int
	segments    []SegmentEntry
}

// New creates empty segment table with bounded capacities of both levels.
func New(maxSegments, maxPages int) *SegmentTable {
	return &SegmentTable{
		maxSegments: maxSegments,
		maxPages:    maxPages,
	}
}

// Lookup returns second level table stored under first level index.
func (st *SegmentTable) Lookup(index uint32) (*PageTable, bool) {
	for _, s := range st.segments {
		if s.Index == index {
			return s.Table, true
		}
	}
	return nil, false
}

// Map adds mapping of the page to the frame. If segment exists, the page is appended to its table,
// otherwise new segment is added containing only this page.
func (st *SegmentTable) Map(first, second uint32, frame types.FrameIndex) error {
	entry := PageEntry{Index: second, Frame: frame}

	if pt, exists := st.Lookup(first); exists {
		if len(pt.entries) >= st.maxPages {
			return errors.Wrapf(ErrPageTableFull, "segment %d holds %d pages", first, len(pt.entries))
		}
		pt.entries = append(pt.entries, entry)
		return nil
	}

	if len(st.segments) >= st.maxSegments {
		return errors.Wrapf(ErrSegmentTableFull, "table holds %d segments", len(st.segments))
	}
	st.segments = append(st.segments, SegmentEntry{
		Index: first,
		Table: &PageTable{entries: []PageEntry{entry}},
	})
	return nil
}

// Unmap removes the mapping of the page. Segment is removed once its last page is gone.
// It returns false if page was not mapped.
func (st *SegmentTable) Unmap(first, second uint32) bool {
	for i, s := range st.segments {
		if s.Index != first {
			continue
		}

		return st.prune(i, s.Table.remove(second))
	}
	return false
}

// UnmapFrame removes the mapping of the page only if it points to the frame. Entries are searched from the most
// recently added one, so it reverts Map even if the same page is mapped more than once.
func (st *SegmentTable) UnmapFrame(first, second uint32, frame types.FrameIndex) bool {
	for i, s := range st.segments {
		if s.Index != first {
			continue
		}

		return st.prune(i, s.Table.removeMapping(second, frame))
	}
	return false
}

func (st *SegmentTable) prune(i int, removed bool) bool {
	if st.segments[i].Table.Len() == 0 {
		st.segments = append(st.segments[:i], st.segments[i+1:]...)
	}
	return removed
}

// Len returns the number of segments.
func (st *SegmentTable) Len() int {
	return len(st.segments)
}

// Pages returns the number of pages mapped in all the segments.
func (st *SegmentTable) Pages() int {
	var n int
	for _, s := range st.segments {
		n += s.Table.Len()
	}
	return n
}

// Segments returns entries of the segment table in their order.
func (st *SegmentTable) Segments() []SegmentEntry {
	return append([]SegmentEntry(nil), st.segments...)
}
