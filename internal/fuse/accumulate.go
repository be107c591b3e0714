package fuse

import (
	"math"

	"scoresync/internal/fragment"
)

// PageRange is a page's running time window over all notes placed on
// it. Min only ever decreases and Max only ever increases; entries are
// shared by pointer so every record holding one sees later widening.
type PageRange struct {
	Min float64
	Max float64
}

// PageAccumulator tracks the observed time window per page, in
// first-seen page order.
type PageAccumulator struct {
	ranges map[string]*PageRange
	order  []string
}

// NewPageAccumulator returns an empty accumulator.
func NewPageAccumulator() *PageAccumulator {
	return &PageAccumulator{ranges: make(map[string]*PageRange)}
}

// Widen grows the page's window to include r and returns the shared
// entry. The first sighting seeds the window from r directly.
//
// NaN bounds are deliberately not filtered here: a malformed fragment
// that slipped through the join poisons its page's window via min/max,
// matching the source system's observed behavior.
func (a *PageAccumulator) Widen(page string, r fragment.TimeRange) *PageRange {
	pr, ok := a.ranges[page]
	if !ok {
		pr = &PageRange{Min: r.Start, Max: r.End}
		a.ranges[page] = pr
		a.order = append(a.order, page)
		return pr
	}
	pr.Min = math.Min(pr.Min, r.Start)
	pr.Max = math.Max(pr.Max, r.End)
	return pr
}

// Get returns the shared entry for a page.
func (a *PageAccumulator) Get(page string) (*PageRange, bool) {
	pr, ok := a.ranges[page]
	return pr, ok
}

// Len returns the number of pages that received at least one record.
func (a *PageAccumulator) Len() int {
	return len(a.order)
}

// Spans snapshots the accumulated windows as reconciler input, in
// first-seen page order.
func (a *PageAccumulator) Spans() []Span {
	spans := make([]Span, 0, len(a.order))
	for _, page := range a.order {
		pr := a.ranges[page]
		spans = append(spans, Span{Key: page, Min: pr.Min, Max: pr.Max})
	}
	return spans
}
