package fuse

import (
	"fmt"

	"github.com/google/uuid"

	"scoresync/internal/fragment"
	"scoresync/internal/iiif"
)

// soundFormat is the media type declared for the audio resource in the
// output document, regardless of the format the source manifest claims.
const soundFormat = "audio/mp4"

// mediaFragsSpec marks time-range selectors as W3C media fragments.
const mediaFragsSpec = "http://www.w3.org/TR/media-frags/"

// idNamespace seeds deterministic (v5) annotation identifiers so that
// re-running on identical input emits a byte-identical document.
var idNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("scoresync"))

// Document is the fused timeline container.
type Document struct {
	Context string           `json:"@context"`
	ID      string           `json:"id"`
	Type    string           `json:"type"`
	Label   string           `json:"label,omitempty"`
	Items   []TimelineCanvas `json:"items"`
}

// TimelineCanvas is the single canvas holding the audio track, the
// placed page images, and the note highlights.
type TimelineCanvas struct {
	ID          string           `json:"id"`
	Type        string           `json:"type"`
	Duration    float64          `json:"duration"`
	Items       []AnnotationPage `json:"items"`
	Annotations []AnnotationPage `json:"annotations,omitempty"`
}

// AnnotationPage groups output annotations.
type AnnotationPage struct {
	ID    string          `json:"id"`
	Type  string          `json:"type"`
	Items []OutAnnotation `json:"items"`
}

// OutAnnotation is one painting or highlighting annotation in the
// output document. Target is either a locator string or a
// SpecificResource.
type OutAnnotation struct {
	ID         string `json:"id"`
	Type       string `json:"type"`
	Motivation string `json:"motivation"`
	Body       *Body  `json:"body,omitempty"`
	Target     any    `json:"target"`
}

// Body is painted content: the audio stream or a page image.
type Body struct {
	ID       string        `json:"id"`
	Type     string        `json:"type"`
	Format   string        `json:"format,omitempty"`
	Width    int           `json:"width,omitempty"`
	Height   int           `json:"height,omitempty"`
	Duration float64       `json:"duration,omitempty"`
	Service  *iiif.Service `json:"service,omitempty"`
}

// SpecificResource is a composite highlight target: the note's page
// narrowed by both a polygon selector and a time-range selector.
type SpecificResource struct {
	Type     string        `json:"type"`
	Source   string        `json:"source"`
	Selector []OutSelector `json:"selector"`
}

// OutSelector is one selector inside a composite target.
type OutSelector struct {
	Type       string `json:"type"`
	ConformsTo string `json:"conformsTo,omitempty"`
	Value      string `json:"value"`
}

// AssembleInput carries everything the assembler reads. All fields are
// read-only at this stage.
type AssembleInput struct {
	AudioManifest *iiif.Manifest
	CanvasIndex   int
	PageInfo      map[string]*iiif.PageResource
	PageSegments  []Segment
	NoteSegments  []Segment
	Records       map[string]*NoteRecord
}

// Assemble builds the output document from the reconciled partitions.
// It fails fast when the requested canvas cannot be located or carries
// no recognizable audio content; no partial document is returned.
func Assemble(in AssembleInput) (*Document, error) {
	canvas, err := in.AudioManifest.CanvasAt(in.CanvasIndex)
	if err != nil {
		return nil, fmt.Errorf("failed to locate audio canvas: %w", err)
	}
	audio, ok := canvas.AudioResource()
	if !ok {
		return nil, fmt.Errorf("canvas %d (%s) has no audio content", in.CanvasIndex, canvas.ID)
	}

	docID := in.AudioManifest.ID + "/fused"
	canvasID := docID + "/canvas"

	items := make([]OutAnnotation, 0, 1+len(in.PageSegments))
	items = append(items, OutAnnotation{
		ID:         annotationID("audio", audio.ID),
		Type:       "Annotation",
		Motivation: "painting",
		Body: &Body{
			ID:       audio.ID,
			Type:     "Sound",
			Format:   soundFormat,
			Duration: audio.Duration,
		},
		Target: canvasID,
	})

	for _, seg := range in.PageSegments {
		page, ok := in.PageInfo[seg.Key]
		if !ok {
			// Accumulated pages always carry a resolved resource;
			// a miss here means the caller wired the maps wrong.
			return nil, fmt.Errorf("no page resource for segment %q", seg.Key)
		}
		body := &Body{
			ID:     page.ImageID,
			Type:   "Image",
			Format: page.Format,
			Width:  page.Width,
			Height: page.Height,
		}
		if page.ServiceID != "" {
			body.Service = &iiif.Service{ID: page.ServiceID}
		}
		items = append(items, OutAnnotation{
			ID:         annotationID("page", seg.Key),
			Type:       "Annotation",
			Motivation: "painting",
			Body:       body,
			Target: fmt.Sprintf("%s#xywh=0,0,%d,%d&%s",
				canvasID, page.Width, page.Height,
				fragment.EncodeTemporal(fragment.TimeRange{Start: seg.Start, End: seg.End})),
		})
	}

	highlights := make([]OutAnnotation, 0, len(in.NoteSegments))
	for _, seg := range in.NoteSegments {
		rec, ok := in.Records[seg.Key]
		if !ok || rec.Page == nil {
			return nil, fmt.Errorf("no note record for segment %q", seg.Key)
		}
		highlights = append(highlights, OutAnnotation{
			ID:         annotationID("note", seg.Key),
			Type:       "Annotation",
			Motivation: "highlighting",
			Target: SpecificResource{
				Type:   "SpecificResource",
				Source: rec.Page.PageID,
				Selector: []OutSelector{
					{
						Type:  "FragmentSelector",
						Value: fragment.EncodeSpatial(rec.Polygon),
					},
					{
						Type:       "FragmentSelector",
						ConformsTo: mediaFragsSpec,
						Value:      fragment.EncodeTemporal(fragment.TimeRange{Start: seg.Start, End: seg.End}),
					},
				},
			},
		})
	}

	timeline := TimelineCanvas{
		ID:       canvasID,
		Type:     "Canvas",
		Duration: audio.Duration,
		Items: []AnnotationPage{{
			ID:    canvasID + "/page/1",
			Type:  "AnnotationPage",
			Items: items,
		}},
	}
	if len(highlights) > 0 {
		timeline.Annotations = []AnnotationPage{{
			ID:    canvasID + "/annotations/1",
			Type:  "AnnotationPage",
			Items: highlights,
		}}
	}

	return &Document{
		Context: "http://iiif.io/api/presentation/3/context.json",
		ID:      docID,
		Type:    "Manifest",
		Label:   in.AudioManifest.Label,
		Items:   []TimelineCanvas{timeline},
	}, nil
}

func annotationID(kind, key string) string {
	return "urn:uuid:" + uuid.NewSHA1(idNamespace, []byte(kind+"|"+key)).String()
}
