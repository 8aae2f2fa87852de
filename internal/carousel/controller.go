// Package carousel implements the focus-jump controller behind an infinite paging carousel.
//
// The host grid calls into a Controller from a single event loop: ShouldUpdateFocus before a
// focus move, DidUpdateFocus once it has landed, DidScroll on offset changes, and
// AutoPlayTick when a scheduled tick fires. The controller answers with scroll offset
// changes and focus re-assertions through the Host interface. It never blocks and
// never starts goroutines; callers on other goroutines must marshal onto the loop.
package carousel

import (
	"github.com/sirupsen/logrus"

	"ouroboros/internal/eventbus"
	"ouroboros/internal/indexmap"
	"ouroboros/internal/paging"
)

// Controller is the focus-jump state machine for one carousel
type Controller struct {
	cfg      Config
	provider ItemProvider
	host     Host
	fallback FallbackPolicy
	bus      eventbus.EventBus
	log      *logrus.Entry

	layout indexmap.Layout
	focus  FocusState
	manual int // cell handed out by PreferredFocus
	phase  Phase

	reloadGen  uint64
	autoPlay   bool
	ticket     Ticket
	lastTicket Ticket
}

// Option configures optional collaborators
type Option func(*Controller)

// WithFallback forwards focus queries to p before the carousel rules run
func WithFallback(p FallbackPolicy) Option {
	return func(c *Controller) {
		c.fallback = p
	}
}

// WithEventBus publishes state machine events on bus
func WithEventBus(bus eventbus.EventBus) Option {
	return func(c *Controller) {
		if bus != nil {
			c.bus = bus
		}
	}
}

// WithLogger sets the log entry used by the controller
func WithLogger(entry *logrus.Entry) Option {
	return func(c *Controller) {
		if entry != nil {
			c.log = entry
		}
	}
}

// New validates the configuration and host geometry and returns an idle controller.
// Call Reload once the provider has data.
func New(cfg Config, provider ItemProvider, host Host, opts ...Option) (*Controller, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if provider == nil {
		return nil, &ConfigurationError{Field: "item provider", Reason: "is required"}
	}
	if host == nil {
		return nil, &ConfigurationError{Field: "host", Reason: "is required"}
	}

	c := &Controller{
		cfg:      cfg,
		provider: provider,
		host:     host,
		bus:      eventbus.NullBus{},
		log:      logrus.WithField("component", "carousel"),
		manual:   NoIndex,
		autoPlay: cfg.AutoPlay,
		focus: FocusState{
			CurrentlyFocused: 0,
			InitiallyFocused: NoIndex,
		},
	}
	for _, opt := range opts {
		opt(c)
	}

	if err := c.Geometry().Validate(); err != nil {
		return nil, &ConfigurationError{Field: "host geometry", Err: err}
	}
	return c, nil
}

// Config returns the active configuration
func (c *Controller) Config() Config {
	return c.cfg
}

// Reconfigure validates and applies cfg, then reloads
func (c *Controller) Reconfigure(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	prev := c.cfg
	c.cfg = cfg
	if err := c.Geometry().Validate(); err != nil {
		c.cfg = prev
		return &ConfigurationError{Field: "host geometry", Err: err}
	}
	c.autoPlay = cfg.AutoPlay
	c.Reload()
	return nil
}

// Geometry returns the host geometry with the configured paging applied
func (c *Controller) Geometry() paging.Geometry {
	g := c.host.Geometry()
	g.ItemsPerPage = c.cfg.ItemsPerPage
	g.Alignment = c.cfg.Alignment
	return g
}

// Layout returns the current padded layout
func (c *Controller) Layout() indexmap.Layout {
	return c.layout
}

// Buffer returns the number of duplicate slots on each side
func (c *Controller) Buffer() int {
	return c.layout.Buffer
}

// Phase returns the state machine phase
func (c *Controller) Phase() Phase {
	return c.phase
}

// Snapshot returns a copy of the focus state
func (c *Controller) Snapshot() FocusState {
	s := c.focus
	if s.Pending != nil {
		intent := *s.Pending
		s.Pending = &intent
	}
	return s
}

// Reload re-reads the item count, rebuilds the layout and discards any pending jump.
// Positioning on the home index is deferred until the host's layout pass completes.
func (c *Controller) Reload() {
	count := c.provider.ItemCount()
	if count < 0 {
		count = 0
	}

	if c.focus.Pending != nil {
		c.cancelJump("reload")
	}
	c.StopAutoPlay()

	c.layout = indexmap.NewLayout(count, c.cfg.Buffer(), c.cfg.trailing(), c.cfg.StrictWrap)
	home := c.layout.HomeIndex()
	c.focus = FocusState{
		CurrentlyFocused: home,
		InitiallyFocused: NoIndex,
	}
	c.manual = home
	c.phase = PhaseIdle

	fields := logrus.Fields{
		"items":  count,
		"buffer": c.layout.Buffer,
		"padded": c.layout.PaddedCount(),
	}
	switch {
	case c.layout.Empty():
		c.log.WithFields(fields).Debug("Reloaded empty carousel")
	case !c.layout.Wraps():
		c.log.WithFields(fields).Debug("Too few items to wrap, using pass-through indexing")
	default:
		c.log.WithFields(fields).Debug("Reloaded carousel")
	}
	c.bus.Publish(eventbus.CarouselReloadedEvent{
		ItemCount:   count,
		Buffer:      c.layout.Buffer,
		PaddedCount: c.layout.PaddedCount(),
		Wraps:       c.layout.Wraps(),
	})

	c.reloadGen++
	gen := c.reloadGen
	c.host.AfterLayout(func() {
		if gen != c.reloadGen || c.layout.Empty() {
			return
		}
		c.ScrollToItem(c.layout.HomeIndex(), false)
		c.StartAutoPlay()
	})
}

// PaddedCount returns the number of cells the host should present
func (c *Controller) PaddedCount() int {
	return c.layout.PaddedCount()
}

// LogicalIndex maps a padded index to its item. ok is false when there are no items or
// padded is outside the grid.
func (c *Controller) LogicalIndex(padded int) (int, bool) {
	logical, err := c.layout.Logical(padded)
	if err != nil {
		return 0, false
	}
	return logical, true
}

// CellContent forwards the render request for a padded cell to the provider
func (c *Controller) CellContent(padded int) (string, bool) {
	logical, ok := c.LogicalIndex(padded)
	if !ok {
		return "", false
	}
	return c.provider.CellContent(logical), true
}

// BeginGesture records where focus was when a touch or drag started and pauses auto-play
func (c *Controller) BeginGesture() {
	c.focus.InitiallyFocused = c.focus.CurrentlyFocused
	c.StopAutoPlay()
	if c.phase == PhaseIdle {
		c.phase = PhaseTracking
	}
}

// EndGesture clears the gesture anchor
func (c *Controller) EndGesture() {
	c.focus.InitiallyFocused = NoIndex
	if c.phase == PhaseTracking {
		c.phase = PhaseIdle
	}
}

// ScrollToItem scrolls p's page into position and makes p the focus cell
func (c *Controller) ScrollToItem(p int, animated bool) {
	c.host.SetScrollOffset(c.Geometry().OffsetForIndex(p), animated)
	c.focus.CurrentlyFocused = p
	c.manual = p
	c.host.RequestFocus(p)
}

// PreferredFocus returns the cell the host should focus on its next focus pass
func (c *Controller) PreferredFocus() (int, bool) {
	if c.fallback != nil {
		if p, ok := c.fallback.PreferredFocus(); ok {
			return p, true
		}
	}
	if c.manual == NoIndex || c.layout.Empty() {
		return 0, false
	}
	return c.manual, true
}

// settle leaves a transient phase once no jump is outstanding
func (c *Controller) settle() {
	if c.focus.Pending != nil {
		c.phase = PhasePendingJump
		return
	}
	if c.focus.InGesture() {
		c.phase = PhaseTracking
		return
	}
	c.phase = PhaseIdle
}
