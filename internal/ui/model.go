package ui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"ouroboros/internal/carousel"
	"ouroboros/internal/config"
	"ouroboros/internal/eventbus"
	"ouroboros/internal/indexmap"
	"ouroboros/internal/logic"
	"ouroboros/internal/ui/views"
)

const (
	// stripTop is the first screen row of the strip: the title and its margin come first
	stripTop = 2

	maxItemsPerPage = 6
	messageTimeout  = 3 * time.Second
)

// Model represents the UI state
type Model struct {
	bus   eventbus.EventBus
	cfg   *config.Config
	store logic.ItemStore
	ctrl  *carousel.Controller
	log   *logrus.Entry

	width        int
	height       int
	help         help.Model
	keys         keyMap
	renderer     *views.Renderer
	helpRenderer *HelpRenderer
	helpOps      *HelpOps
	inPagerMode  bool // tracks if we're currently in pager mode

	itemsPerPage int
	autoPlay     bool

	// host state driven by the controller
	offset        int
	target        int
	animating     bool
	inCarousel    bool
	focused       int
	focusRequests []int
	draining      bool
	afterLayout   []func()
	scheduled     carousel.Ticket
	cmds          []tea.Cmd

	dragging bool
	dragX    int

	message      string
	messageLevel views.MessageLevel
	messageSeq   int

	// Program reference for terminal management
	program *tea.Program
}

// NewModel creates a new UI model and loads the store's items into the carousel
func NewModel(cfg *config.Config, store logic.ItemStore, bus eventbus.EventBus) (*Model, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if bus == nil {
		bus = eventbus.NullBus{}
	}

	m := &Model{
		bus:          bus,
		cfg:          cfg,
		store:        store,
		log:          logrus.WithField("component", "ui"),
		help:         help.New(),
		keys:         newKeyMap(),
		renderer:     views.NewRenderer(),
		helpRenderer: NewHelpRenderer(),
		itemsPerPage: cfg.Carousel.ItemsPerPage,
		autoPlay:     cfg.Carousel.AutoPlay,
		focused:      carousel.NoIndex,
	}

	cc, err := m.carouselConfig()
	if err != nil {
		return nil, err
	}
	ctrl, err := carousel.New(cc, store, m,
		carousel.WithEventBus(bus),
		carousel.WithLogger(logrus.WithField("component", "carousel")),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create carousel: %w", err)
	}
	m.ctrl = ctrl
	m.ctrl.Reload()
	return m, nil
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
	m.helpOps = NewHelpOps(p)
}

// Controller exposes the carousel controller
func (m *Model) Controller() *carousel.Controller {
	return m.ctrl
}

// Init returns the commands queued by the initial reload
func (m *Model) Init() tea.Cmd {
	return m.flush()
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		before := m.Geometry().ViewportExtent
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		if m.Geometry().ViewportExtent != before {
			m.reconfigure()
		}

	case tea.KeyMsg:
		m.queue(m.handleKey(msg))

	case tea.MouseMsg:
		m.handleMouse(msg)

	default:
		m.queue(m.handleNonKeyboardMsg(msg))
	}

	return m, m.flush()
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit

	case key.Matches(msg, m.keys.Help):
		return m.showHelp()

	case key.Matches(msg, m.keys.Prev):
		m.step(carousel.DirectionBackward)

	case key.Matches(msg, m.keys.Next):
		m.step(carousel.DirectionForward)

	case key.Matches(msg, m.keys.Focus):
		if m.inCarousel {
			m.leaveCarousel()
		} else {
			m.enterCarousel(carousel.SourceKeyboard)
		}

	case key.Matches(msg, m.keys.AutoPlay):
		m.toggleAutoPlay()

	case key.Matches(msg, m.keys.MorePerPage):
		m.setItemsPerPage(m.itemsPerPage + 1)

	case key.Matches(msg, m.keys.FewerPerPage):
		m.setItemsPerPage(m.itemsPerPage - 1)

	case key.Matches(msg, m.keys.Reload):
		m.resetAnimation()
		m.ctrl.Reload()
		m.setMessage(fmt.Sprintf("Reloaded %d items", m.store.ItemCount()), views.MessageInfo)
	}
	return nil
}

// handleMouse maps a left-button drag on the strip to a swipe gesture
func (m *Model) handleMouse(msg tea.MouseMsg) {
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || msg.Y < stripTop || msg.Y >= stripTop+views.CellHeight {
			return
		}
		if !m.enterCarousel(carousel.SourceSwipe) {
			return
		}
		m.ctrl.BeginGesture()
		m.dragging = true
		m.dragX = msg.X

	case tea.MouseActionMotion:
		if !m.dragging {
			return
		}
		stride := m.ctrl.Geometry().Stride()
		// dragging right pulls earlier cells into view
		for msg.X-m.dragX >= stride {
			m.dragX += stride
			if !m.focusCell(m.focused-1, carousel.DirectionBackward, carousel.SourceSwipe) {
				m.dragX = msg.X
			}
		}
		for m.dragX-msg.X >= stride {
			m.dragX -= stride
			if !m.focusCell(m.focused+1, carousel.DirectionForward, carousel.SourceSwipe) {
				m.dragX = msg.X
			}
		}

	case tea.MouseActionRelease:
		if !m.dragging {
			return
		}
		m.dragging = false
		m.ctrl.EndGesture()
	}
}

// handleNonKeyboardMsg handles non-keyboard messages
func (m *Model) handleNonKeyboardMsg(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case frameMsg:
		m.stepAnimation()

	case autoPlayTickMsg:
		if !m.ctrl.AutoPlayTick(msg.ticket) {
			m.log.WithField("ticket", msg.ticket).Debug("Ignoring stale auto-play tick")
		}

	case afterLayoutMsg:
		fns := m.afterLayout
		m.afterLayout = nil
		for _, fn := range fns {
			fn()
		}
		// auto-play stays paused while the carousel has focus
		if m.inCarousel {
			m.ctrl.StopAutoPlay()
		}

	case EventMsg:
		m.handleEvent(msg.Event)

	case ConfigReloadedMsg:
		m.applyConfig(msg.Config)

	case helpPagerMsg:
		if msg.err != nil {
			// Pager failed: log only; do not surface in status bar
			m.log.WithError(msg.err).Warn("Help pager failed")
		}

	case pauseRenderingMsg:
		m.inPagerMode = true

	case resumeRenderingMsg:
		m.inPagerMode = false

	case clearMessageMsg:
		if msg.seq == m.messageSeq {
			m.message = ""
		}
	}
	return nil
}

// handleEvent turns bus events into the message line
func (m *Model) handleEvent(event eventbus.DomainEvent) {
	switch e := event.(type) {
	case eventbus.JumpAppliedEvent:
		m.setMessage(fmt.Sprintf("Wrapped %s to slot %d", e.Direction, e.Target), views.MessageInfo)
	case eventbus.FocusRejectedEvent:
		m.setMessage(fmt.Sprintf("A swipe moves at most %d item(s)", e.Limit), views.MessageWarning)
	case eventbus.ConfigSavedEvent:
		m.setMessage("Config written to "+e.Path, views.MessageSuccess)
	case eventbus.ErrorEvent:
		m.setMessage(e.Message, views.MessageError)
	}
}

func (m *Model) setMessage(text string, level views.MessageLevel) {
	m.messageSeq++
	seq := m.messageSeq
	m.message = text
	m.messageLevel = level
	m.queue(tea.Tick(messageTimeout, func(time.Time) tea.Msg {
		return clearMessageMsg{seq: seq}
	}))
}

// carouselConfig builds the controller configuration from the file settings and the
// runtime overrides. A derived buffer also covers the viewport so the strip never
// shows past the end of the padded grid.
func (m *Model) carouselConfig() (carousel.Config, error) {
	cc, err := m.cfg.CarouselConfig()
	if err != nil {
		return cc, err
	}
	cc.ItemsPerPage = m.itemsPerPage
	cc.AutoPlay = m.autoPlay
	if m.cfg.Carousel.Buffer == config.DeriveBuffer {
		cc.BufferOverride = max(indexmap.DefaultBuffer(m.itemsPerPage), m.Geometry().BufferForViewport())
	}
	return cc, nil
}

// reconfigure applies the current settings, which reloads the carousel
func (m *Model) reconfigure() {
	cc, err := m.carouselConfig()
	if err == nil {
		m.resetAnimation()
		err = m.ctrl.Reconfigure(cc)
	}
	if err != nil {
		m.log.WithError(err).Error("Failed to apply carousel configuration")
		m.setMessage(err.Error(), views.MessageError)
	}
}

func (m *Model) resetAnimation() {
	m.animating = false
	m.target = m.offset
	m.dragging = false
}

func (m *Model) applyConfig(cfg *config.Config) {
	if cfg == nil {
		return
	}
	m.cfg = cfg
	m.itemsPerPage = cfg.Carousel.ItemsPerPage
	m.autoPlay = cfg.Carousel.AutoPlay
	m.store.SetItems(cfg.Items)
	m.reconfigure()
	m.log.WithField("items", len(cfg.Items)).Info("Applied reloaded config")
	m.setMessage(fmt.Sprintf("Config reloaded: %d items", len(cfg.Items)), views.MessageSuccess)
}

func (m *Model) setItemsPerPage(n int) {
	n = min(max(n, 1), maxItemsPerPage)
	if n == m.itemsPerPage {
		return
	}
	prev := m.itemsPerPage
	m.itemsPerPage = n
	m.reconfigure()
	if m.ctrl.Config().ItemsPerPage != n {
		m.itemsPerPage = prev
	}
}

func (m *Model) toggleAutoPlay() {
	m.autoPlay = !m.autoPlay
	m.ctrl.SetAutoPlay(m.autoPlay)
	if m.inCarousel {
		m.ctrl.StopAutoPlay()
	}
	if m.autoPlay {
		m.setMessage("Auto-play on", views.MessageInfo)
	} else {
		m.setMessage("Auto-play off", views.MessageInfo)
	}
}

func (m *Model) showHelp() tea.Cmd {
	if m.program == nil {
		m.help.ShowAll = !m.help.ShowAll
		return nil
	}
	return m.fetchHelpPager(m.helpRenderer.RenderHelpContent(m.keys))
}

// fetchHelpPager returns a command that shows help using ov pager
func (m *Model) fetchHelpPager(helpContent string) tea.Cmd {
	program := m.program
	ops := m.helpOps
	return func() tea.Msg {
		// Send pause message to stop rendering
		program.Send(pauseRenderingMsg{})

		err := ops.ShowHelpInPager(helpContent)

		// Send resume message to restart rendering
		program.Send(resumeRenderingMsg{})

		return helpPagerMsg{err: err}
	}
}

// View renders the UI
func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}
	if m.inPagerMode {
		return ""
	}

	g := m.ctrl.Geometry()
	state := views.ViewState{
		Title:        "ouroboros",
		StripWidth:   g.ViewportExtent,
		StripIndent:  stripIndent,
		ItemExtent:   g.ItemExtent,
		ItemSpacing:  g.ItemSpacing,
		Status:       m.statusFields(),
		Message:      m.message,
		MessageLevel: m.messageLevel,
		HelpView:     m.help.View(m.keys),
	}

	if first, last, ok := g.VisibleRange(m.offset, m.ctrl.PaddedCount()); ok {
		preferred, hasPreferred := m.ctrl.PreferredFocus()
		for p := first; p <= last; p++ {
			title, _ := m.ctrl.CellContent(p)
			cell := views.Cell{
				Padded:    p,
				Title:     title,
				Focused:   m.inCarousel && p == m.focused,
				Preferred: !m.inCarousel && hasPreferred && p == preferred,
			}
			if logical, ok := m.ctrl.LogicalIndex(p); ok {
				if item, ok := m.store.GetItem(logical); ok {
					cell.Subtitle = item.Subtitle
					cell.Color = item.Color
				}
			}
			state.Cells = append(state.Cells, cell)
		}
		state.Leading = g.ItemOrigin(first) - m.offset
	}

	return m.renderer.Render(state)
}

func (m *Model) statusFields() []views.StatusField {
	count := m.store.ItemCount()
	if count == 0 {
		return []views.StatusField{{Key: "items", Value: "none"}}
	}

	current, ok := m.focused, m.inCarousel
	if !m.inCarousel {
		current, ok = m.ctrl.PreferredFocus()
	}
	item, slot := "-", "-"
	if ok {
		if logical, found := m.ctrl.LogicalIndex(current); found {
			item = fmt.Sprintf("%d/%d", logical+1, count)
			slot = fmt.Sprintf("%d/%d", current, m.ctrl.PaddedCount())
		}
	}

	autoPlay := "off"
	switch {
	case m.ctrl.AutoPlayRunning():
		autoPlay = "every " + m.ctrl.Config().AutoPlayInterval.String()
	case m.ctrl.AutoPlayEnabled():
		autoPlay = "paused"
	}

	focus := "outside"
	if m.inCarousel {
		focus = "strip"
	}

	return []views.StatusField{
		{Key: "item", Value: item},
		{Key: "slot", Value: slot},
		{Key: "buffer", Value: fmt.Sprintf("%d", m.ctrl.Buffer())},
		{Key: "per page", Value: fmt.Sprintf("%d", m.itemsPerPage)},
		{Key: "phase", Value: m.ctrl.Phase().String()},
		{Key: "focus", Value: focus},
		{Key: "auto-play", Value: autoPlay},
	}
}
