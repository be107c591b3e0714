package fuse

import (
	"math"
	"testing"

	"scoresync/internal/fragment"
)

func TestPageAccumulatorWiden(t *testing.T) {
	acc := NewPageAccumulator()

	acc.Widen("p1", fragment.TimeRange{Start: 5, End: 10})
	acc.Widen("p1", fragment.TimeRange{Start: 2, End: 8})
	acc.Widen("p1", fragment.TimeRange{Start: 6, End: 14})

	pr, ok := acc.Get("p1")
	if !ok {
		t.Fatal("expected page entry")
	}
	if pr.Min != 2 || pr.Max != 14 {
		t.Errorf("got {%v, %v}, want {2, 14}", pr.Min, pr.Max)
	}
}

func TestPageAccumulatorAliasing(t *testing.T) {
	acc := NewPageAccumulator()

	// The entry handed out for an early record must reflect widening
	// done by later records on the same page.
	early := acc.Widen("p1", fragment.TimeRange{Start: 5, End: 10})
	acc.Widen("p1", fragment.TimeRange{Start: 1, End: 20})

	if early.Min != 1 || early.Max != 20 {
		t.Errorf("early reference sees {%v, %v}, want {1, 20}", early.Min, early.Max)
	}
}

func TestPageAccumulatorNaNPoisoning(t *testing.T) {
	acc := NewPageAccumulator()

	acc.Widen("p1", fragment.TimeRange{Start: 5, End: 10})
	acc.Widen("p1", fragment.TimeRange{Start: math.NaN(), End: math.NaN()})

	pr, _ := acc.Get("p1")
	if !math.IsNaN(pr.Min) || !math.IsNaN(pr.Max) {
		t.Errorf("got {%v, %v}, want NaN poisoned window", pr.Min, pr.Max)
	}
}

func TestPageAccumulatorSpansOrder(t *testing.T) {
	acc := NewPageAccumulator()
	acc.Widen("p2", fragment.TimeRange{Start: 50, End: 60})
	acc.Widen("p1", fragment.TimeRange{Start: 0, End: 10})
	acc.Widen("p2", fragment.TimeRange{Start: 45, End: 70})

	spans := acc.Spans()
	if len(spans) != 2 {
		t.Fatalf("got %d spans, want 2", len(spans))
	}
	if spans[0].Key != "p2" || spans[1].Key != "p1" {
		t.Errorf("order: got [%s, %s], want [p2, p1]", spans[0].Key, spans[1].Key)
	}
	if spans[0].Min != 45 || spans[0].Max != 70 {
		t.Errorf("p2 window: got {%v, %v}, want {45, 70}", spans[0].Min, spans[0].Max)
	}
}

func TestPageAccumulatorEmpty(t *testing.T) {
	acc := NewPageAccumulator()
	if acc.Len() != 0 {
		t.Errorf("got %d pages, want 0", acc.Len())
	}
	if len(acc.Spans()) != 0 {
		t.Error("expected no spans")
	}
	if _, ok := acc.Get("p1"); ok {
		t.Error("expected no entry for unseen page")
	}
}
