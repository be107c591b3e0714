// Package fragment parses and encodes the two micro-formats carried by
// annotation selectors: media-fragment time spans (`t=start,end`) and
// parenthesized polygon point lists (`((Px,y)(Px,y)...)`).
package fragment

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// TimeRange is a span on the audio timeline, in seconds.
//
// Either bound may be NaN when the source fragment matched the time
// pattern but omitted or mangled that bound. Callers must check Valid
// before comparing bounds: NaN propagates silently through min/max
// accumulation.
type TimeRange struct {
	Start float64
	End   float64
}

// Valid reports whether both bounds are real numbers.
func (r TimeRange) Valid() bool {
	return !math.IsNaN(r.Start) && !math.IsNaN(r.End)
}

// Point is one polygon vertex in page pixel coordinates.
type Point struct {
	X float64
	Y float64
}

// Polygon is an ordered vertex list. Three or more points describe a
// meaningful region; structural validation is left to rendering.
type Polygon []Point

// temporalPattern matches `t=<start>[,<end>]`, optionally preceded by a
// normal-play-time marker and an ampersand (`npt&t=...`).
var temporalPattern = regexp.MustCompile(`(?:npt&)?t=([0-9.]+)?(?:,([0-9.]+))?`)

// ParseTemporal decodes a time-span fragment.
//
// A string that does not contain the time pattern at all yields the
// zero range {0, 0}, not an error; downstream code relies on that
// default. A matched pattern with a missing or unparsable bound yields
// NaN for that bound.
func ParseTemporal(s string) TimeRange {
	m := temporalPattern.FindStringSubmatch(s)
	if m == nil {
		return TimeRange{}
	}
	return TimeRange{Start: parseNumber(m[1]), End: parseNumber(m[2])}
}

// EncodeTemporal renders a range back into `t=start,end` form, trimming
// trailing zeros so reruns emit identical text.
func EncodeTemporal(r TimeRange) string {
	return fmt.Sprintf("t=%s,%s", formatNumber(r.Start), formatNumber(r.End))
}

// ParseSpatial decodes a polygon fragment of the form
// `((P10,20)(P10,40)(P30,40))`.
//
// Malformed vertices degrade to NaN coordinates rather than an error;
// no structural validation (point count, closure) is performed here.
func ParseSpatial(s string) Polygon {
	trimmed := strings.TrimPrefix(s, "((")
	trimmed = strings.TrimSuffix(trimmed, "))")
	if trimmed == "" {
		return nil
	}
	parts := strings.Split(trimmed, ")(")
	poly := make(Polygon, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimPrefix(part, "P")
		x, y := part, ""
		if i := strings.IndexByte(part, ','); i >= 0 {
			x, y = part[:i], part[i+1:]
		}
		poly = append(poly, Point{X: parseNumber(x), Y: parseNumber(y)})
	}
	return poly
}

// EncodeSpatial renders a polygon back into the parenthesized notation.
func EncodeSpatial(p Polygon) string {
	var b strings.Builder
	b.WriteString("(")
	for _, pt := range p {
		fmt.Fprintf(&b, "(P%s,%s)", formatNumber(pt.X), formatNumber(pt.Y))
	}
	b.WriteString(")")
	return b.String()
}

func parseNumber(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
