package fuse

import "sort"

// Span is one observed (key, min, max) triple fed to Reconcile.
type Span struct {
	Key string
	Min float64
	Max float64
}

// Segment is one slot in a gap-free partition of the timeline.
type Segment struct {
	Key   string
	Start float64
	End   float64
}

// Reconcile converts observed spans — possibly overlapping, possibly
// leaving gaps — into a sorted, contiguous partition covering
// [firstMin, lastMax], one segment per span.
//
// Ambiguous coverage between neighbors is split at the midpoint of
// this span's max and the next span's min; each segment's start is the
// previous segment's end, so contiguity holds by construction. The
// input is not mutated.
//
// Known limitation: reversed spans (min > max) are not detected and
// produce a locally inverted but still contiguous segment.
func Reconcile(spans []Span) []Segment {
	if len(spans) == 0 {
		return nil
	}

	sorted := make([]Span, len(spans))
	copy(sorted, spans)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Min < sorted[j].Min
	})

	segments := make([]Segment, len(sorted))
	for i, s := range sorted {
		end := s.Max
		if i < len(sorted)-1 {
			end = (s.Max + sorted[i+1].Min) / 2
		}
		start := s.Min
		if i > 0 {
			start = segments[i-1].End
		}
		segments[i] = Segment{Key: s.Key, Start: start, End: end}
	}
	return segments
}
