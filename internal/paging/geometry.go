// Package paging converts padded grid indices into page-aligned scroll offsets.
package paging

import (
	"fmt"
	"strings"
)

// Alignment controls where a page sits inside the viewport
type Alignment int

const (
	AlignCentered Alignment = iota
	AlignLeading
)

// String returns the config spelling of the alignment
func (a Alignment) String() string {
	switch a {
	case AlignLeading:
		return "leading"
	default:
		return "centered"
	}
}

// ParseAlignment parses "centered" or "leading"
func ParseAlignment(s string) (Alignment, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "centered", "center":
		return AlignCentered, nil
	case "leading", "left":
		return AlignLeading, nil
	default:
		return AlignCentered, fmt.Errorf("unknown scroll alignment %q", s)
	}
}

// ConfigurationError reports host geometry that cannot drive a paging carousel
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid paging geometry: %s %s", e.Field, e.Reason)
}

// Geometry is the flow-layout information needed to page through cells.
// All extents are in the host's scroll units (terminal columns for the TUI host).
type Geometry struct {
	ItemExtent     int
	ItemSpacing    int
	ItemsPerPage   int
	ViewportExtent int
	Alignment      Alignment
}

// Validate checks that the geometry describes a usable paging layout
func (g Geometry) Validate() error {
	switch {
	case g.ItemExtent <= 0:
		return &ConfigurationError{Field: "item extent", Reason: fmt.Sprintf("must be positive, got %d", g.ItemExtent)}
	case g.ItemSpacing < 0:
		return &ConfigurationError{Field: "item spacing", Reason: fmt.Sprintf("must not be negative, got %d", g.ItemSpacing)}
	case g.ItemsPerPage <= 0:
		return &ConfigurationError{Field: "items per page", Reason: fmt.Sprintf("must be positive, got %d", g.ItemsPerPage)}
	case g.ViewportExtent < 0:
		return &ConfigurationError{Field: "viewport extent", Reason: fmt.Sprintf("must not be negative, got %d", g.ViewportExtent)}
	}
	return nil
}

// Stride is the distance between the origins of two neighbouring items
func (g Geometry) Stride() int {
	return g.ItemExtent + g.ItemSpacing
}

// ItemOrigin returns the leading edge of the item at padded index p
func (g Geometry) ItemOrigin(p int) int {
	return p * g.Stride()
}

// PageStart returns the first padded index on p's page
func (g Geometry) PageStart(p int) int {
	if g.ItemsPerPage <= 0 {
		return p
	}
	page := p / g.ItemsPerPage
	if p < 0 && p%g.ItemsPerPage != 0 {
		page--
	}
	return page * g.ItemsPerPage
}

// inset is the distance between the viewport's leading edge and the first item on a page
func (g Geometry) inset() int {
	if g.Alignment == AlignLeading {
		return 0
	}
	pageExtent := g.ItemsPerPage * g.Stride()
	return (g.ViewportExtent-pageExtent-g.ItemSpacing)/2 + g.ItemSpacing
}

// OffsetForIndex returns the scroll offset that shows p's page in its aligned position
func (g Geometry) OffsetForIndex(p int) int {
	return g.ItemOrigin(g.PageStart(p)) - g.inset()
}

// JumpDelta is the offset distance between an item and its mirror across the seam
func (g Geometry) JumpDelta(count int) int {
	return count * g.Stride()
}

// VisibleRange returns the first and last padded indices at least partly inside the
// viewport when scrolled to offset. ok is false when nothing is visible.
func (g Geometry) VisibleRange(offset, paddedCount int) (first, last int, ok bool) {
	stride := g.Stride()
	if stride <= 0 || paddedCount <= 0 || g.ViewportExtent <= 0 {
		return 0, 0, false
	}
	end := offset + g.ViewportExtent // exclusive
	first = floorDiv(offset, stride)
	if offset-first*stride >= g.ItemExtent {
		// offset falls in the spacing after item first
		first++
	}
	last = floorDiv(end-1, stride)
	if first < 0 {
		first = 0
	}
	if last > paddedCount-1 {
		last = paddedCount - 1
	}
	if first > last {
		return 0, 0, false
	}
	return first, last, true
}

// BufferForViewport returns how many duplicate slots are needed on each side so the
// viewport never shows past the end of the padded grid
func (g Geometry) BufferForViewport() int {
	stride := g.Stride()
	if stride <= 0 {
		return 0
	}
	visible := (g.ViewportExtent + stride - 1) / stride
	return visible + 1
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
