package fuse

import (
	"log/slog"

	"scoresync/internal/annotation"
	"scoresync/internal/fragment"
	"scoresync/internal/iiif"
)

// NoteRecord accumulates both kinds of evidence for one external note
// id. Created on first sighting in the temporal collection, finalized
// once both collections have been scanned.
type NoteRecord struct {
	ID        string
	Range     *fragment.TimeRange
	Polygon   fragment.Polygon
	Page      *iiif.PageResource
	PageRange *PageRange // shared accumulator entry, nil until placed
}

// Complete reports whether the record can appear in the note
// partition: a resolved page, a polygon, and a valid time range.
func (r *NoteRecord) Complete() bool {
	return r.Range != nil && r.Range.Valid() && r.Page != nil && len(r.Polygon) > 0
}

// PageSource resolves a spatial source locator onto a page resource.
// *iiif.PageResolver satisfies it.
type PageSource interface {
	Resolve(source string) (*iiif.PageResource, bool)
}

// JoinResult is the shared state produced by Join.
type JoinResult struct {
	Records map[string]*NoteRecord
	Order   []string // note ids in first-seen temporal order
	Pages   *PageAccumulator

	// PageResources holds the resolved resource for every page the
	// accumulator has seen, keyed by page id. Records only keep their
	// last-written page, so this is the map the assembler must read:
	// a page reached solely through an overwritten entry still has a
	// segment and needs its resource here.
	PageResources map[string]*iiif.PageResource

	// Dropped evidence, for the summary log line.
	AbandonedIDs      int // spatial ids lacking temporal evidence
	UnresolvedSources int // spatial entries whose page could not be resolved
}

// Join merges the two annotation collections on the shared note id.
//
// The temporal pass creates one record per id and parses its time
// fragment; duplicate entries under one id resolve last-write-wins in
// document order. The spatial pass attaches the polygon and resolved
// page to ids that already carry temporal data, widening the page's
// accumulated window as it goes.
//
// A spatial id with no temporal record abandons its remaining entries
// outright rather than skipping the one entry. That short-circuit
// mirrors the system this replaces; narrowing it changes observable
// output.
func Join(temporal, spatial []annotation.Group, pages PageSource, logger *slog.Logger) *JoinResult {
	if logger == nil {
		logger = slog.Default()
	}

	res := &JoinResult{
		Records:       make(map[string]*NoteRecord),
		Pages:         NewPageAccumulator(),
		PageResources: make(map[string]*iiif.PageResource),
	}

	for _, g := range temporal {
		for _, e := range g.Entries {
			if !e.Accepted() {
				continue
			}
			rec, ok := res.Records[g.ID]
			if !ok {
				rec = &NoteRecord{ID: g.ID}
				res.Records[g.ID] = rec
				res.Order = append(res.Order, g.ID)
			}
			tr := fragment.ParseTemporal(e.On.Selector.Value)
			rec.Range = &tr
		}
	}

	for _, g := range spatial {
		for _, e := range g.Entries {
			if !e.Accepted() {
				continue
			}
			rec, ok := res.Records[g.ID]
			if !ok || rec.Range == nil {
				res.AbandonedIDs++
				logger.Debug("no temporal evidence for note, abandoning id", "id", g.ID)
				break
			}
			page, ok := pages.Resolve(e.On.Full)
			if !ok {
				res.UnresolvedSources++
				logger.Debug("page resource not resolvable", "id", g.ID, "source", e.On.Full)
				continue
			}
			rec.Page = page
			rec.Polygon = fragment.ParseSpatial(e.On.Selector.Value)
			rec.PageRange = res.Pages.Widen(page.PageID, *rec.Range)
			res.PageResources[page.PageID] = page
		}
	}

	return res
}

// NoteSpans snapshots the complete records as reconciler input, in
// first-seen temporal order. Incomplete records are excluded before
// sorting, not merely skipped during it.
func (r *JoinResult) NoteSpans() []Span {
	spans := make([]Span, 0, len(r.Order))
	for _, id := range r.Order {
		rec := r.Records[id]
		if !rec.Complete() {
			continue
		}
		spans = append(spans, Span{Key: id, Min: rec.Range.Start, Max: rec.Range.End})
	}
	return spans
}
