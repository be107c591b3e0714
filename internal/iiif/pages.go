package iiif

import "strings"

// PageResource is a page's rendered image handle, resolved once per
// reconciliation run and cached by source locator.
type PageResource struct {
	PageID    string // canvas identifier
	ImageID   string // image content locator
	ServiceID string // resolved image-service identifier, empty if none
	Format    string
	Width     int
	Height    int
}

// PageResolver maps spatial-annotation source locators onto the image
// manifest's pages.
type PageResolver struct {
	byID  map[string]*Canvas
	cache map[string]*PageResource
}

// NewPageResolver indexes the image manifest's canvases.
func NewPageResolver(m *Manifest) *PageResolver {
	r := &PageResolver{
		byID:  make(map[string]*Canvas),
		cache: make(map[string]*PageResource),
	}
	canvases := m.Canvases()
	for i := range canvases {
		r.byID[canvases[i].ID] = &canvases[i]
	}
	return r
}

// Resolve maps a source locator (a canvas URI, possibly carrying a
// fragment suffix) to its page resource. The second return is false
// when the locator names no known page or the page has no image
// content — missing evidence, for the caller to drop silently.
func (r *PageResolver) Resolve(source string) (*PageResource, bool) {
	key := source
	if i := strings.IndexByte(key, '#'); i >= 0 {
		key = key[:i]
	}

	if cached, ok := r.cache[key]; ok {
		return cached, cached != nil
	}

	canvas, ok := r.byID[key]
	if !ok {
		r.cache[key] = nil
		return nil, false
	}
	img, ok := canvas.ImageResource()
	if !ok {
		r.cache[key] = nil
		return nil, false
	}

	page := &PageResource{
		PageID:  canvas.ID,
		ImageID: img.ID,
		Format:  img.Format,
		Width:   canvas.Width,
		Height:  canvas.Height,
	}
	if page.Width == 0 {
		page.Width = img.Width
	}
	if page.Height == 0 {
		page.Height = img.Height
	}
	if img.Service != nil {
		page.ServiceID = img.Service.ID
	}
	r.cache[key] = page
	return page, true
}
