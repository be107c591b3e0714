// Package fuse cross-references the four source documents describing
// one performance — audio manifest, score image manifest, temporal and
// spatial annotation collections — and reconciles them into a single
// timeline document in which every note has both a time segment and a
// polygon on a page.
package fuse

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"scoresync/internal/annotation"
	"scoresync/internal/iiif"
	"scoresync/internal/schema"
)

// Inputs carries the four source documents and the audio canvas
// selection for one reconciliation run.
type Inputs struct {
	AudioManifest []byte
	ImageManifest []byte
	Temporal      []byte
	Spatial       []byte
	CanvasIndex   int
	Logger        *slog.Logger
}

// Run executes the full pipeline as one synchronous pass: validate,
// parse, join on the shared note id, accumulate page windows,
// reconcile the page and note partitions, assemble the document.
//
// Re-running on unchanged inputs yields an identical document; the
// only ordering that matters is the document order of the source
// collections, which decides last-write-wins on duplicate ids.
func Run(in Inputs) (*Document, error) {
	log := in.Logger
	if log == nil {
		log = slog.Default()
	}

	for _, check := range []struct {
		name   string
		schema string
		data   []byte
	}{
		{"audio manifest", schema.Manifest, in.AudioManifest},
		{"image manifest", schema.Manifest, in.ImageManifest},
		{"temporal collection", schema.Collection, in.Temporal},
		{"spatial collection", schema.Collection, in.Spatial},
	} {
		if err := schema.Validate(check.schema, check.data); err != nil {
			return nil, fmt.Errorf("invalid %s: %w", check.name, err)
		}
	}

	audio, err := iiif.Parse(in.AudioManifest)
	if err != nil {
		return nil, fmt.Errorf("failed to parse audio manifest: %w", err)
	}
	images, err := iiif.Parse(in.ImageManifest)
	if err != nil {
		return nil, fmt.Errorf("failed to parse image manifest: %w", err)
	}
	temporal, err := annotation.DecodeCollection(in.Temporal)
	if err != nil {
		return nil, fmt.Errorf("failed to decode temporal collection: %w", err)
	}
	spatial, err := annotation.DecodeCollection(in.Spatial)
	if err != nil {
		return nil, fmt.Errorf("failed to decode spatial collection: %w", err)
	}

	resolver := iiif.NewPageResolver(images)
	joined := Join(temporal, spatial, resolver, log)

	pageSegments := Reconcile(joined.Pages.Spans())
	noteSegments := Reconcile(joined.NoteSpans())

	doc, err := Assemble(AssembleInput{
		AudioManifest: audio,
		CanvasIndex:   in.CanvasIndex,
		PageInfo:      joined.PageResources,
		PageSegments:  pageSegments,
		NoteSegments:  noteSegments,
		Records:       joined.Records,
	})
	if err != nil {
		return nil, err
	}

	log.Info("fused performance documents",
		"notes", len(joined.Order),
		"placed", len(noteSegments),
		"pages", joined.Pages.Len(),
		"abandoned_ids", joined.AbandonedIDs,
		"unresolved_sources", joined.UnresolvedSources,
	)
	return doc, nil
}

// Encode renders the document as indented JSON with a trailing
// newline. Struct field order keeps the encoding stable across runs.
func Encode(doc *Document) ([]byte, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode document: %w", err)
	}
	return append(data, '\n'), nil
}
