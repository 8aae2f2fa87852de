package carousel

import (
	"time"

	"ouroboros/internal/paging"
)

// NoIndex marks an absent padded index (focus entering or leaving the carousel)
const NoIndex = -1

// Direction is the heading of a focus move
type Direction int

const (
	DirectionNone Direction = iota
	DirectionBackward
	DirectionForward
)

// String returns the lowercase name of the direction
func (d Direction) String() string {
	switch d {
	case DirectionBackward:
		return "backward"
	case DirectionForward:
		return "forward"
	default:
		return "none"
	}
}

// Reverse returns the opposite heading
func (d Direction) Reverse() Direction {
	switch d {
	case DirectionBackward:
		return DirectionForward
	case DirectionForward:
		return DirectionBackward
	default:
		return DirectionNone
	}
}

// Source identifies what produced a focus move
type Source int

const (
	SourceSwipe Source = iota
	SourceKeyboard
	SourceProgrammatic
)

// Phase is the controller's position in the jump state machine
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseTracking
	PhasePendingJump
	PhaseJumped
)

// String returns a short label for status lines and logs
func (p Phase) String() string {
	switch p {
	case PhaseTracking:
		return "tracking"
	case PhasePendingJump:
		return "pending-jump"
	case PhaseJumped:
		return "jumped"
	default:
		return "idle"
	}
}

// Trigger selects what confirms a pending jump
type Trigger int

const (
	// TriggerFocus applies the jump in the focus-applied callback
	TriggerFocus Trigger = iota
	// TriggerScroll applies the jump once the scroll offset crosses the jump source
	TriggerScroll
)

// String returns the config spelling of the trigger
func (t Trigger) String() string {
	if t == TriggerScroll {
		return "scroll"
	}
	return "focus"
}

// Ticket identifies one scheduled auto-play tick. Zero is never issued.
type Ticket uint64

// FocusUpdate is one proposed focus transition
type FocusUpdate struct {
	Previous int // NoIndex when focus is entering the carousel
	Next     int // NoIndex when focus is leaving the carousel
	Heading  Direction
	Source   Source
}

// JumpIntent describes a repositioning to the mirrored side of the seam
type JumpIntent struct {
	Heading Direction // heading of the move that crossed into the buffer
	From    int       // padded index focus moved to
	Target  int       // mirrored padded index showing the same item
}

// Delta is the padded index distance from From to Target
func (j JumpIntent) Delta() int {
	return j.Target - j.From
}

// FocusState is a snapshot of the controller's focus bookkeeping
type FocusState struct {
	CurrentlyFocused int
	InitiallyFocused int // NoIndex outside a gesture
	Heading          Direction
	Pending          *JumpIntent
}

// InGesture reports whether a gesture is in progress
func (s FocusState) InGesture() bool {
	return s.InitiallyFocused != NoIndex
}

// ItemProvider supplies the real items
type ItemProvider interface {
	ItemCount() int
	CellContent(logical int) string
}

// Host is the grid widget the controller drives
type Host interface {
	// Geometry returns the host's current extents. ItemsPerPage and Alignment are
	// overwritten with the controller's configuration.
	Geometry() paging.Geometry
	ScrollOffset() int
	SetScrollOffset(offset int, animated bool)
	// RequestFocus asks the host to move focus to padded on its next focus pass
	RequestFocus(padded int)
	// AfterLayout runs fn once the current layout pass has completed
	AfterLayout(fn func())
	// ScheduleTick delivers ticket back through AutoPlayTick after the given delay
	ScheduleTick(ticket Ticket, after time.Duration)
}

// FallbackPolicy receives focus queries before the controller applies its own rules
type FallbackPolicy interface {
	ShouldUpdateFocus(u FocusUpdate) bool
	PreferredFocus() (int, bool)
}
