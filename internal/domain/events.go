package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventCarouselReloaded EventType = "CarouselReloaded"
	EventFocusMoved       EventType = "FocusMoved"
	EventFocusRejected    EventType = "FocusRejected"
	EventJumpScheduled    EventType = "JumpScheduled"
	EventJumpApplied      EventType = "JumpApplied"
	EventJumpCancelled    EventType = "JumpCancelled"
	EventAutoPlayStarted  EventType = "AutoPlayStarted"
	EventAutoPlayStopped  EventType = "AutoPlayStopped"
	EventPageAdvanced     EventType = "PageAdvanced"
	EventError            EventType = "Error"
	EventConfigLoaded     EventType = "ConfigLoaded"
	EventConfigSaved      EventType = "ConfigSaved"
	EventConfigChanged    EventType = "ConfigChanged"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// CarouselReloadedEvent is emitted after the item count and buffer are recomputed
type CarouselReloadedEvent struct {
	ItemCount   int
	Buffer      int
	PaddedCount int
	Wraps       bool
}

func (e CarouselReloadedEvent) Type() EventType { return EventCarouselReloaded }

// FocusMovedEvent is emitted when a focus query is allowed
type FocusMovedEvent struct {
	From    int // padded index, -1 when focus entered the carousel
	To      int // padded index, -1 when focus left the carousel
	Logical int
	Heading string
}

func (e FocusMovedEvent) Type() EventType { return EventFocusMoved }

// FocusRejectedEvent is emitted when a move exceeds the per-gesture bound
type FocusRejectedEvent struct {
	Initial int
	Target  int
	Limit   int
}

func (e FocusRejectedEvent) Type() EventType { return EventFocusRejected }

// JumpScheduledEvent is emitted when focus crosses into a buffer region
type JumpScheduledEvent struct {
	Direction string
	From      int
	Target    int
}

func (e JumpScheduledEvent) Type() EventType { return EventJumpScheduled }

// JumpAppliedEvent is emitted once the offset correction has been applied
type JumpAppliedEvent struct {
	Direction string
	Target    int
	Delta     int
}

func (e JumpAppliedEvent) Type() EventType { return EventJumpApplied }

// JumpCancelledEvent is emitted when a pending jump is discarded without correction
type JumpCancelledEvent struct {
	Target int
	Reason string
}

func (e JumpCancelledEvent) Type() EventType { return EventJumpCancelled }

// AutoPlayStartedEvent is emitted when the auto-play timer is (re)armed
type AutoPlayStartedEvent struct {
	Ticket   uint64
	Interval float64 // seconds
}

func (e AutoPlayStartedEvent) Type() EventType { return EventAutoPlayStarted }

// AutoPlayStoppedEvent is emitted when the auto-play timer is cancelled
type AutoPlayStoppedEvent struct {
	Ticket uint64
}

func (e AutoPlayStoppedEvent) Type() EventType { return EventAutoPlayStopped }

// PageAdvancedEvent is emitted by an auto-play tick
type PageAdvancedEvent struct {
	From    int
	To      int
	Wrapped bool
}

func (e PageAdvancedEvent) Type() EventType { return EventPageAdvanced }

// ErrorEvent is emitted when an error occurs
type ErrorEvent struct {
	Message string
	Err     error
}

func (e ErrorEvent) Type() EventType { return EventError }

// ConfigLoadedEvent is emitted when configuration is loaded
type ConfigLoadedEvent struct {
	Path      string
	ItemCount int
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }

// ConfigSavedEvent is emitted when configuration is saved
type ConfigSavedEvent struct {
	Path string
}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }

// ConfigChangedEvent is emitted when the config file changes on disk
type ConfigChangedEvent struct {
	Path  string
	Items []Item
}

func (e ConfigChangedEvent) Type() EventType { return EventConfigChanged }
