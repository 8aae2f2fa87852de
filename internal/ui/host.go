package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"ouroboros/internal/carousel"
	"ouroboros/internal/paging"
)

// stripIndent is the left margin of the strip; mouse columns are relative to it
const stripIndent = 2

// maxFocusPasses bounds the programmatic focus passes run for one update
const maxFocusPasses = 8

// The Model is the carousel's host: it owns the scroll offset, runs focus passes and
// turns timers and layout continuations into tea commands. Every method here runs on the
// Bubble Tea event loop.

// Geometry reports the strip layout. The viewport shows the current page plus one
// neighbour on each side, narrowed to the terminal.
func (m *Model) Geometry() paging.Geometry {
	g := paging.Geometry{
		ItemExtent:   m.cfg.UISettings.ItemWidth,
		ItemSpacing:  m.cfg.UISettings.ItemSpacing,
		ItemsPerPage: m.itemsPerPage,
	}
	g.ViewportExtent = (m.itemsPerPage+2)*g.Stride() - g.ItemSpacing
	if m.width > 0 && m.width-2*stripIndent < g.ViewportExtent {
		g.ViewportExtent = max(m.width-2*stripIndent, 0)
	}
	return g
}

func (m *Model) ScrollOffset() int {
	return m.offset
}

// SetScrollOffset moves the viewport. An animated move retargets the running animation;
// a non-animated move shifts both the offset and any animation target by the same amount.
func (m *Model) SetScrollOffset(offset int, animated bool) {
	if animated && m.animates() {
		m.target = offset
		if m.target != m.offset && !m.animating {
			m.animating = true
			m.queue(m.frameCmd())
		}
		return
	}
	delta := offset - m.offset
	m.offset = offset
	if m.animating {
		m.target += delta
	} else {
		m.target = offset
	}
}

// RequestFocus asks for a programmatic focus pass onto padded once the current call
// into the controller has returned
func (m *Model) RequestFocus(padded int) {
	m.focusRequests = append(m.focusRequests, padded)
}

func (m *Model) AfterLayout(fn func()) {
	m.afterLayout = append(m.afterLayout, fn)
	m.queue(func() tea.Msg { return afterLayoutMsg{} })
}

func (m *Model) ScheduleTick(t carousel.Ticket, after time.Duration) {
	m.scheduled = t
	m.queue(tea.Tick(after, func(time.Time) tea.Msg {
		return autoPlayTickMsg{ticket: t}
	}))
}

func (m *Model) animates() bool {
	return m.cfg.UISettings.AnimationFPS > 0
}

func (m *Model) frameCmd() tea.Cmd {
	interval := time.Second / time.Duration(m.cfg.UISettings.AnimationFPS)
	return tea.Tick(interval, func(time.Time) tea.Msg { return frameMsg{} })
}

// stepAnimation moves a quarter of the remaining distance, at least one column
func (m *Model) stepAnimation() {
	if !m.animating {
		return
	}
	diff := m.target - m.offset
	step := diff / 4
	if step == 0 {
		step = sign(diff)
	}
	m.offset += step
	if m.offset == m.target {
		m.animating = false
	} else {
		m.queue(m.frameCmd())
	}
	m.ctrl.DidScroll(m.offset)
	m.drainFocusRequests()
}

// focusCell runs one focus pass. It returns false when the controller rejects the move.
func (m *Model) focusCell(next int, heading carousel.Direction, source carousel.Source) bool {
	if next < 0 || next >= m.ctrl.PaddedCount() {
		return false
	}
	u := carousel.FocusUpdate{
		Previous: m.focused,
		Next:     next,
		Heading:  heading,
		Source:   source,
	}
	if !m.ctrl.ShouldUpdateFocus(u) {
		return false
	}
	m.focused = next
	m.ctrl.DidUpdateFocus()
	m.drainFocusRequests()
	m.followFocus()
	return true
}

// followFocus scrolls the focused cell's page into place
func (m *Model) followFocus() {
	if m.focused == carousel.NoIndex {
		return
	}
	m.SetScrollOffset(m.ctrl.Geometry().OffsetForIndex(m.focused), true)
	if !m.animating {
		m.ctrl.DidScroll(m.offset)
		m.drainFocusRequests()
	}
}

// drainFocusRequests turns re-assertions from the controller into programmatic passes.
// Outside the carousel there is no host focus to move; the controller's preferred cell
// is shown instead.
func (m *Model) drainFocusRequests() {
	if m.draining {
		return
	}
	m.draining = true
	defer func() { m.draining = false }()

	for i := 0; len(m.focusRequests) > 0 && i < maxFocusPasses; i++ {
		p := m.focusRequests[0]
		m.focusRequests = m.focusRequests[1:]
		if !m.inCarousel || p == m.focused {
			continue
		}
		m.focused = m.passFocus(p)
	}
	m.focusRequests = nil
}

// passFocus runs a programmatic pass onto p and returns the cell that holds focus after it
func (m *Model) passFocus(p int) int {
	u := carousel.FocusUpdate{
		Previous: m.focused,
		Next:     p,
		Heading:  carousel.DirectionNone,
		Source:   carousel.SourceProgrammatic,
	}
	if p < 0 || p >= m.ctrl.PaddedCount() || !m.ctrl.ShouldUpdateFocus(u) {
		return m.focused
	}
	prev := m.focused
	m.focused = p
	m.ctrl.DidUpdateFocus()
	if prev != p {
		m.SetScrollOffset(m.ctrl.Geometry().OffsetForIndex(p), true)
		if !m.animating {
			m.ctrl.DidScroll(m.offset)
		}
	}
	return m.focused
}

// enterCarousel moves host focus onto the controller's preferred cell
func (m *Model) enterCarousel(source carousel.Source) bool {
	if m.inCarousel {
		return true
	}
	p, ok := m.ctrl.PreferredFocus()
	if !ok {
		return false
	}
	u := carousel.FocusUpdate{
		Previous: carousel.NoIndex,
		Next:     p,
		Heading:  carousel.DirectionNone,
		Source:   source,
	}
	if !m.ctrl.ShouldUpdateFocus(u) {
		return false
	}
	m.inCarousel = true
	m.focused = p
	m.ctrl.DidUpdateFocus()
	m.drainFocusRequests()
	m.followFocus()
	return true
}

// leaveCarousel moves host focus out of the strip
func (m *Model) leaveCarousel() {
	if !m.inCarousel {
		return
	}
	m.ctrl.ShouldUpdateFocus(carousel.FocusUpdate{
		Previous: m.focused,
		Next:     carousel.NoIndex,
		Heading:  carousel.DirectionNone,
		Source:   carousel.SourceKeyboard,
	})
	m.inCarousel = false
	m.focused = carousel.NoIndex
	m.ctrl.EndGesture()
	m.dragging = false
}

// step moves keyboard focus one cell, entering the carousel first when needed
func (m *Model) step(heading carousel.Direction) {
	if !m.inCarousel {
		m.enterCarousel(carousel.SourceKeyboard)
		return
	}
	next := m.focused + 1
	if heading == carousel.DirectionBackward {
		next = m.focused - 1
	}
	m.focusCell(next, heading, carousel.SourceKeyboard)
}

func (m *Model) queue(cmd tea.Cmd) {
	if cmd != nil {
		m.cmds = append(m.cmds, cmd)
	}
}

// flush hands the commands collected during an update back to Bubble Tea
func (m *Model) flush() tea.Cmd {
	m.drainFocusRequests()
	cmds := m.cmds
	m.cmds = nil
	switch len(cmds) {
	case 0:
		return nil
	case 1:
		return cmds[0]
	default:
		return tea.Batch(cmds...)
	}
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	default:
		return 0
	}
}
