package app

import (
	"github.com/zzstudio/invoicedesk/internal/ingest"
	"github.com/zzstudio/invoicedesk/internal/layout"
	"github.com/zzstudio/invoicedesk/internal/query"
)

// State is the explicit application state: the print queue plus the report
// view settings. It is immutable by convention — every transition returns a
// new value and the previous one stays valid, so front-ends can treat event
// handling as pure state transitions.
type State struct {
	Queue    []ingest.QueuedInvoice
	Filter   query.Filter
	Grouping query.GroupingMode
	Sort     *query.SortSpec
	Grid     layout.GridShape
	Copies   int
}

func NewState(grid layout.GridShape, copies int) State {
	if copies < 1 {
		copies = 1
	}
	return State{Grid: grid, Copies: copies}
}

// WithQueued appends entries to the queue.
func (s State) WithQueued(entries ...ingest.QueuedInvoice) State {
	queue := make([]ingest.QueuedInvoice, 0, len(s.Queue)+len(entries))
	queue = append(queue, s.Queue...)
	queue = append(queue, entries...)
	s.Queue = queue
	return s
}

// WithoutQueued removes the entry with the given ID, if present.
func (s State) WithoutQueued(id string) State {
	queue := make([]ingest.QueuedInvoice, 0, len(s.Queue))
	for _, e := range s.Queue {
		if e.ID.String() != id {
			queue = append(queue, e)
		}
	}
	s.Queue = queue
	return s
}

// WithClearedQueue drops the whole queue.
func (s State) WithClearedQueue() State {
	s.Queue = nil
	return s
}

func (s State) WithFilter(f query.Filter) State {
	s.Filter = f
	return s
}

func (s State) WithGrouping(mode query.GroupingMode) State {
	s.Grouping = mode
	return s
}

func (s State) WithSort(spec *query.SortSpec) State {
	s.Sort = spec
	return s
}

func (s State) WithLayout(grid layout.GridShape, copies int) State {
	s.Grid = grid
	if copies >= 1 {
		s.Copies = copies
	}
	return s
}

// QueuePaths returns the queued source paths in queue order.
func (s State) QueuePaths() []string {
	paths := make([]string, 0, len(s.Queue))
	for _, e := range s.Queue {
		paths = append(paths, e.Path)
	}
	return paths
}
