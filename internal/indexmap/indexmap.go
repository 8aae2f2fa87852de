// Package indexmap maps between padded grid positions and logical item positions.
//
// A wrapping carousel presents Count real items surrounded by Buffer duplicate slots on
// each side (plus an optional trailing pad). Padded index Buffer is logical item 0; the
// slots before it repeat the tail of the sequence and the slots after Buffer+Count-1
// repeat its head.
package indexmap

import (
	"errors"
	"fmt"
)

var (
	// ErrNoItems is returned when a mapping is requested for an empty data set
	ErrNoItems = errors.New("indexmap: no items")
	// ErrOutOfRange is returned for padded indices outside the grid
	ErrOutOfRange = errors.New("indexmap: padded index out of range")
)

// DefaultBuffer returns the buffer used when none is configured
func DefaultBuffer(itemsPerPage int) int {
	if itemsPerPage < 0 {
		return 0
	}
	return itemsPerPage * 2
}

// ShouldWrap reports whether there are enough items to fill the buffers.
// Strict mode requires enough items for both buffers at once.
func ShouldWrap(itemCount, buffer int, strict bool) bool {
	if itemCount <= 0 {
		return false
	}
	if strict {
		return itemCount >= 2*buffer
	}
	return itemCount >= buffer
}

// PaddedCount returns the number of grid slots needed for itemCount items.
// trailing extra slots cover a partial last page and are only added when wrapping.
func PaddedCount(itemCount, buffer, trailing int, strict bool) int {
	if itemCount <= 0 {
		return 0
	}
	if !ShouldWrap(itemCount, buffer, strict) {
		return itemCount
	}
	if trailing < 0 {
		trailing = 0
	}
	return itemCount + 2*buffer + trailing
}

// ToLogicalIndex applies the wrap formula without checking whether wrapping is enabled.
// It panics when itemCount is not positive; callers guard with ShouldWrap first.
func ToLogicalIndex(padded, itemCount, buffer int) int {
	if itemCount <= 0 {
		panic(fmt.Sprintf("indexmap: ToLogicalIndex with itemCount %d", itemCount))
	}
	raw := padded - buffer
	wrapped := raw
	if raw < 0 {
		wrapped = itemCount + raw
	}
	// a negative remainder is only reachable when buffer exceeds itemCount
	return (wrapped%itemCount + itemCount) % itemCount
}

// Layout describes one configuration of the padded grid
type Layout struct {
	Count    int
	Buffer   int
	Trailing int
	Strict   bool
}

// NewLayout builds a layout, clamping negative inputs to zero
func NewLayout(count, buffer, trailing int, strict bool) Layout {
	if count < 0 {
		count = 0
	}
	if buffer < 0 {
		buffer = 0
	}
	if trailing < 0 {
		trailing = 0
	}
	return Layout{Count: count, Buffer: buffer, Trailing: trailing, Strict: strict}
}

// Wraps reports whether the layout pads and wraps
func (l Layout) Wraps() bool {
	return ShouldWrap(l.Count, l.Buffer, l.Strict)
}

// Empty reports whether there are no items
func (l Layout) Empty() bool {
	return l.Count <= 0
}

// PaddedCount returns the number of slots presented to the host
func (l Layout) PaddedCount() int {
	return PaddedCount(l.Count, l.Buffer, l.Trailing, l.Strict)
}

// Logical maps a padded index to its logical item. Without wrapping the mapping is the
// identity.
func (l Layout) Logical(padded int) (int, error) {
	if l.Empty() {
		return 0, ErrNoItems
	}
	if padded < 0 || padded >= l.PaddedCount() {
		return 0, fmt.Errorf("%w: %d not in [0, %d)", ErrOutOfRange, padded, l.PaddedCount())
	}
	if !l.Wraps() {
		return padded, nil
	}
	return ToLogicalIndex(padded, l.Count, l.Buffer), nil
}

// MustLogical is Logical that panics on precondition violations
func (l Layout) MustLogical(padded int) int {
	logical, err := l.Logical(padded)
	if err != nil {
		panic(err)
	}
	return logical
}

// Padded returns the core (non-buffer) padded index for a logical item
func (l Layout) Padded(logical int) int {
	if !l.Wraps() {
		return logical
	}
	return logical + l.Buffer
}

// HomeIndex is the padded index the carousel rests on after a reload
func (l Layout) HomeIndex() int {
	if !l.Wraps() {
		return 0
	}
	return l.Buffer
}

// InLeadingBuffer reports whether p is one of the duplicate slots before the core
func (l Layout) InLeadingBuffer(p int) bool {
	return l.Wraps() && p < l.Buffer
}

// InTrailingBuffer reports whether p is one of the duplicate slots after the core
func (l Layout) InTrailingBuffer(p int) bool {
	return l.Wraps() && p >= l.Buffer+l.Count
}

// Mirror returns the padded index showing the same item on the other side of the seam.
// Indices inside the core are returned unchanged.
func (l Layout) Mirror(p int) int {
	switch {
	case l.InLeadingBuffer(p):
		return p + l.Count
	case l.InTrailingBuffer(p):
		return p - l.Count
	default:
		return p
	}
}
