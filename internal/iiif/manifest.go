// Package iiif models the input manifests: presentation documents whose
// sequences of canvases carry the scanned page images and the audio
// track for one performance.
package iiif

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Manifest is a presentation manifest as fetched from a manifest store.
type Manifest struct {
	ID        string     `json:"@id"`
	Type      string     `json:"@type"`
	Label     string     `json:"label,omitempty"`
	Sequences []Sequence `json:"sequences"`
}

// Sequence is an ordered run of canvases.
type Sequence struct {
	Canvases []Canvas `json:"canvases"`
}

// Canvas is one addressable surface: a scanned page, or the carrier of
// an audio track.
type Canvas struct {
	ID     string       `json:"@id"`
	Label  string       `json:"label,omitempty"`
	Width  int          `json:"width,omitempty"`
	Height int          `json:"height,omitempty"`
	Images []Annotation `json:"images,omitempty"`
	// Audio manifests attach their media here rather than under images.
	Content []Annotation `json:"content,omitempty"`
}

// Annotation is a painting annotation inside an input manifest.
type Annotation struct {
	ID       string   `json:"@id,omitempty"`
	Resource Resource `json:"resource"`
}

// Resource is the painted content: an image or an audio stream.
type Resource struct {
	ID       string   `json:"@id"`
	Type     string   `json:"@type,omitempty"`
	Format   string   `json:"format,omitempty"`
	Width    int      `json:"width,omitempty"`
	Height   int      `json:"height,omitempty"`
	Duration float64  `json:"duration,omitempty"`
	Service  *Service `json:"service,omitempty"`
}

// Service is an embedded image-service reference.
type Service struct {
	ID      string `json:"@id"`
	Profile string `json:"profile,omitempty"`
}

// Parse decodes a manifest document.
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	return &m, nil
}

// Canvases returns the manifest's canvases across all sequences, in
// document order.
func (m *Manifest) Canvases() []Canvas {
	var out []Canvas
	for _, s := range m.Sequences {
		out = append(out, s.Canvases...)
	}
	return out
}

// CanvasAt returns the canvas at the given index or an error when the
// index falls outside the manifest.
func (m *Manifest) CanvasAt(index int) (*Canvas, error) {
	canvases := m.Canvases()
	if index < 0 || index >= len(canvases) {
		return nil, fmt.Errorf("canvas index %d out of range (manifest has %d canvases)", index, len(canvases))
	}
	return &canvases[index], nil
}

// ImageResource returns the canvas's primary visual resource.
func (c *Canvas) ImageResource() (*Resource, bool) {
	for i := range c.Images {
		r := &c.Images[i].Resource
		if r.ID != "" {
			return r, true
		}
	}
	return nil, false
}

// AudioResource returns the canvas's audio content, if any. Audio is
// recognized by format (audio/*) or by a Sound resource type.
func (c *Canvas) AudioResource() (*Resource, bool) {
	for i := range c.Content {
		r := &c.Content[i].Resource
		if strings.HasPrefix(r.Format, "audio/") || strings.Contains(r.Type, "Sound") {
			return r, true
		}
	}
	return nil, false
}
