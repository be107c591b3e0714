package iiif

import "testing"

const imageManifestJSON = `{
	"@id": "https://example.org/score/manifest",
	"@type": "sc:Manifest",
	"label": "Score",
	"sequences": [{
		"canvases": [
			{
				"@id": "https://example.org/score/canvas/1",
				"label": "p. 1",
				"width": 2400,
				"height": 3200,
				"images": [{
					"resource": {
						"@id": "https://example.org/iiif/p1/full/full/0/default.jpg",
						"format": "image/jpeg",
						"service": {"@id": "https://example.org/iiif/p1"}
					}
				}]
			},
			{
				"@id": "https://example.org/score/canvas/2",
				"label": "p. 2",
				"width": 2400,
				"height": 3200,
				"images": []
			}
		]
	}]
}`

func TestParseAndCanvases(t *testing.T) {
	m, err := Parse([]byte(imageManifestJSON))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	canvases := m.Canvases()
	if len(canvases) != 2 {
		t.Fatalf("canvas count: got %d, want 2", len(canvases))
	}
	if canvases[0].ID != "https://example.org/score/canvas/1" {
		t.Errorf("canvas id: got %q", canvases[0].ID)
	}
}

func TestCanvasAt(t *testing.T) {
	m, err := Parse([]byte(imageManifestJSON))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	if _, err := m.CanvasAt(0); err != nil {
		t.Errorf("index 0: unexpected error %v", err)
	}
	if _, err := m.CanvasAt(2); err == nil {
		t.Error("index 2: expected out-of-range error")
	}
	if _, err := m.CanvasAt(-1); err == nil {
		t.Error("index -1: expected out-of-range error")
	}
}

func TestAudioResource(t *testing.T) {
	audio := `{
		"@id": "https://example.org/recording/manifest",
		"sequences": [{"canvases": [{
			"@id": "https://example.org/recording/canvas/0",
			"content": [{
				"resource": {
					"@id": "https://example.org/audio/take1.mp4",
					"@type": "dctypes:Sound",
					"format": "audio/mp4",
					"duration": 144.38
				}
			}]
		}]}]
	}`
	m, err := Parse([]byte(audio))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	canvas, err := m.CanvasAt(0)
	if err != nil {
		t.Fatalf("canvas: %v", err)
	}
	res, ok := canvas.AudioResource()
	if !ok {
		t.Fatal("expected audio resource")
	}
	if res.Duration != 144.38 {
		t.Errorf("duration: got %v, want 144.38", res.Duration)
	}

	img, _ := Parse([]byte(imageManifestJSON))
	c, _ := img.CanvasAt(0)
	if _, ok := c.AudioResource(); ok {
		t.Error("image canvas should have no audio resource")
	}
}

func TestPageResolver(t *testing.T) {
	m, err := Parse([]byte(imageManifestJSON))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	r := NewPageResolver(m)

	t.Run("resolves page with service", func(t *testing.T) {
		page, ok := r.Resolve("https://example.org/score/canvas/1")
		if !ok {
			t.Fatal("expected resolution")
		}
		if page.ServiceID != "https://example.org/iiif/p1" {
			t.Errorf("service id: got %q", page.ServiceID)
		}
		if page.Width != 2400 || page.Height != 3200 {
			t.Errorf("dimensions: got %dx%d", page.Width, page.Height)
		}
	})

	t.Run("strips fragment suffix", func(t *testing.T) {
		page, ok := r.Resolve("https://example.org/score/canvas/1#xywh=0,0,10,10")
		if !ok {
			t.Fatal("expected resolution")
		}
		if page.PageID != "https://example.org/score/canvas/1" {
			t.Errorf("page id: got %q", page.PageID)
		}
	})

	t.Run("caches resolved pages", func(t *testing.T) {
		a, _ := r.Resolve("https://example.org/score/canvas/1")
		b, _ := r.Resolve("https://example.org/score/canvas/1")
		if a != b {
			t.Error("expected the same cached *PageResource")
		}
	})

	t.Run("unknown canvas", func(t *testing.T) {
		if _, ok := r.Resolve("https://example.org/score/canvas/99"); ok {
			t.Error("expected failed resolution")
		}
	})

	t.Run("canvas without image content", func(t *testing.T) {
		if _, ok := r.Resolve("https://example.org/score/canvas/2"); ok {
			t.Error("expected failed resolution")
		}
	})
}
