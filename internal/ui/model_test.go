package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ouroboros/internal/carousel"
	"ouroboros/internal/config"
	"ouroboros/internal/domain"
	"ouroboros/internal/eventbus"
	"ouroboros/internal/logic"
	"ouroboros/internal/ui/views"
)

// With the default deck and a 120 column terminal: stride 26, viewport 76, inset 26,
// buffer 4, 14 slots, home slot 4.
const (
	testStride = 26
	homeSlot   = 4
)

func offsetFor(p int) int {
	return p*testStride - 26
}

func newTestModel(t *testing.T, mutate func(*config.Config)) *Model {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.UISettings.AnimationFPS = 0
	if mutate != nil {
		mutate(cfg)
	}
	m, err := NewModel(cfg, logic.NewMemoryItemStore(cfg.Items), eventbus.NullBus{})
	require.NoError(t, err)

	update(m, tea.WindowSizeMsg{Width: 120, Height: 30})
	update(m, afterLayoutMsg{})
	return m
}

func update(m *Model, msgs ...tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	for _, msg := range msgs {
		_, cmd = m.Update(msg)
	}
	return cmd
}

func keyPress(s string) tea.KeyMsg {
	switch s {
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func runFrames(t *testing.T, m *Model) {
	t.Helper()
	for i := 0; m.animating; i++ {
		require.Less(t, i, 200, "animation did not settle")
		update(m, frameMsg{})
	}
}

func TestInitialLayout(t *testing.T) {
	m := newTestModel(t, nil)

	assert.Equal(t, 4, m.ctrl.Buffer())
	assert.Equal(t, 14, m.ctrl.PaddedCount())
	assert.Equal(t, offsetFor(homeSlot), m.offset)
	assert.False(t, m.inCarousel)

	p, ok := m.ctrl.PreferredFocus()
	require.True(t, ok)
	assert.Equal(t, homeSlot, p)

	view := m.View()
	assert.Contains(t, view, "ouroboros")
	assert.Contains(t, view, "Amber")
	assert.Contains(t, view, "Slate", "the last item peeks in before the first")
	assert.Contains(t, view, "1/6")
}

func TestViewBeforeWindowSize(t *testing.T) {
	cfg := config.DefaultConfig()
	m, err := NewModel(cfg, logic.NewMemoryItemStore(cfg.Items), nil)
	require.NoError(t, err)
	assert.Equal(t, "Loading...", m.View())
	assert.NotNil(t, m.Init(), "initial reload waits for layout")
}

func TestFirstArrowEntersCarousel(t *testing.T) {
	m := newTestModel(t, nil)

	update(m, keyPress("right"))
	assert.True(t, m.inCarousel)
	assert.Equal(t, homeSlot, m.focused)

	update(m, keyPress("right"))
	assert.Equal(t, homeSlot+1, m.focused)
	assert.Equal(t, offsetFor(homeSlot+1), m.offset)
}

func TestBackwardWrapKeepsScreenPosition(t *testing.T) {
	m := newTestModel(t, nil)
	update(m, keyPress("tab"))

	update(m, keyPress("left"))

	// slot 3 mirrors slot 9; the jump lands there and the page scrolls one cell back
	assert.Equal(t, 9, m.focused)
	assert.Equal(t, offsetFor(9), m.offset)
	assert.Equal(t, offsetFor(homeSlot)-testStride, m.offset-6*testStride)
	assert.Nil(t, m.ctrl.Snapshot().Pending)
	assert.Equal(t, carousel.PhaseIdle, m.ctrl.Phase())
	assert.Contains(t, m.View(), "6/6")
}

func TestForwardWrapReturnsToFirstItem(t *testing.T) {
	m := newTestModel(t, nil)
	update(m, keyPress("tab"))

	for i := 0; i < 6; i++ {
		update(m, keyPress("l"))
	}

	assert.Equal(t, homeSlot, m.focused)
	assert.Equal(t, offsetFor(homeSlot), m.offset)
	assert.Contains(t, m.View(), "1/6")
}

func TestFocusTogglesAutoPlay(t *testing.T) {
	m := newTestModel(t, func(cfg *config.Config) { cfg.Carousel.AutoPlay = true })
	require.True(t, m.ctrl.AutoPlayRunning())
	first := m.scheduled

	update(m, keyPress("tab"))
	assert.True(t, m.inCarousel)
	assert.False(t, m.ctrl.AutoPlayRunning())
	assert.Contains(t, m.View(), "paused")

	update(m, autoPlayTickMsg{ticket: first})
	assert.Equal(t, homeSlot, m.focused, "stale tick does nothing")

	update(m, keyPress("tab"))
	assert.False(t, m.inCarousel)
	assert.True(t, m.ctrl.AutoPlayRunning())
	assert.NotEqual(t, first, m.scheduled)
}

func TestAutoPlayTickAdvancesPage(t *testing.T) {
	m := newTestModel(t, func(cfg *config.Config) { cfg.Carousel.AutoPlay = true })

	update(m, autoPlayTickMsg{ticket: m.scheduled})

	p, _ := m.ctrl.PreferredFocus()
	assert.Equal(t, homeSlot+1, p)
	assert.Equal(t, offsetFor(homeSlot+1), m.offset)
	assert.Contains(t, m.View(), "2/6")
}

func TestToggleAutoPlayKey(t *testing.T) {
	m := newTestModel(t, nil)
	require.False(t, m.ctrl.AutoPlayEnabled())

	update(m, keyPress("a"))
	assert.True(t, m.ctrl.AutoPlayRunning())
	assert.Equal(t, "Auto-play on", m.message)

	update(m, keyPress("tab"), keyPress("a"), keyPress("a"))
	assert.True(t, m.ctrl.AutoPlayEnabled())
	assert.False(t, m.ctrl.AutoPlayRunning(), "enabled but paused while focused")
}

func TestMouseDragIsBoundedPerGesture(t *testing.T) {
	m := newTestModel(t, nil)

	press := tea.MouseMsg{X: 80, Y: stripTop + 1, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
	update(m, press)
	require.True(t, m.inCarousel)
	assert.Equal(t, carousel.PhaseTracking, m.ctrl.Phase())

	update(m, tea.MouseMsg{X: 80 - testStride, Y: stripTop + 1, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})
	assert.Equal(t, homeSlot+1, m.focused)

	update(m, tea.MouseMsg{X: 80 - 2*testStride, Y: stripTop + 1, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})
	assert.Equal(t, homeSlot+1, m.focused, "second cell in one swipe is rejected")

	update(m, tea.MouseMsg{X: 80 - 2*testStride, Y: stripTop + 1, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})
	assert.Equal(t, carousel.PhaseIdle, m.ctrl.Phase())

	update(m, press)
	update(m, tea.MouseMsg{X: 80 - testStride, Y: stripTop + 1, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})
	assert.Equal(t, homeSlot+2, m.focused, "a new gesture starts from the current cell")
}

func TestMousePressOutsideStripIsIgnored(t *testing.T) {
	m := newTestModel(t, nil)
	update(m, tea.MouseMsg{X: 10, Y: 0, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	assert.False(t, m.inCarousel)
	assert.Equal(t, carousel.PhaseIdle, m.ctrl.Phase())
}

func TestItemsPerPageRecomputesBuffer(t *testing.T) {
	m := newTestModel(t, nil)

	update(m, keyPress("+"))
	update(m, afterLayoutMsg{})
	assert.Equal(t, 2, m.ctrl.Config().ItemsPerPage)
	assert.Equal(t, 5, m.ctrl.Buffer())
	assert.Equal(t, 16, m.ctrl.PaddedCount())

	update(m, keyPress("-"), keyPress("-"))
	assert.Equal(t, 1, m.itemsPerPage, "never below one")
}

func TestExplicitZeroBufferIsKept(t *testing.T) {
	m := newTestModel(t, func(cfg *config.Config) { cfg.Carousel.Buffer = 0 })
	assert.Equal(t, 0, m.ctrl.Buffer())
	assert.Equal(t, 6, m.ctrl.PaddedCount())
}

func TestConfigReloadReplacesItems(t *testing.T) {
	m := newTestModel(t, nil)

	cfg := config.DefaultConfig()
	cfg.UISettings.AnimationFPS = 0
	cfg.Items = []domain.Item{{Title: "North"}, {Title: "South"}}
	update(m, ConfigReloadedMsg{Config: cfg})
	update(m, afterLayoutMsg{})

	assert.Equal(t, 2, m.ctrl.PaddedCount(), "too few items to wrap")
	view := m.View()
	assert.Contains(t, view, "North")
	assert.Contains(t, view, "1/2")
	assert.Contains(t, view, "Config reloaded: 2 items")
}

func TestEmptyCarousel(t *testing.T) {
	m := newTestModel(t, func(cfg *config.Config) { cfg.Items = []domain.Item{} })

	update(m, keyPress("right"), keyPress("tab"))
	assert.False(t, m.inCarousel)
	assert.Zero(t, m.ctrl.PaddedCount())
	assert.Contains(t, m.View(), "none")
}

func TestStatusShowsDashForUnknownCell(t *testing.T) {
	m := newTestModel(t, nil)
	update(m, keyPress("tab"))
	require.Equal(t, views.StatusField{Key: "item", Value: "1/6"}, m.statusFields()[0])

	m.focused = m.ctrl.PaddedCount() + 3
	fields := m.statusFields()
	assert.Equal(t, views.StatusField{Key: "item", Value: "-"}, fields[0])
	assert.Equal(t, views.StatusField{Key: "slot", Value: "-"}, fields[1])
}

func TestScrollAnimationReachesTarget(t *testing.T) {
	m := newTestModel(t, func(cfg *config.Config) { cfg.UISettings.AnimationFPS = 60 })
	update(m, keyPress("tab"), keyPress("right"))

	assert.True(t, m.animating)
	runFrames(t, m)
	assert.Equal(t, offsetFor(homeSlot+1), m.offset)
}

func TestScrollTriggerJumpsWhenOffsetArrives(t *testing.T) {
	m := newTestModel(t, func(cfg *config.Config) {
		cfg.UISettings.AnimationFPS = 60
		cfg.Carousel.Trigger = "scroll"
	})
	update(m, keyPress("tab"), keyPress("left"))

	require.NotNil(t, m.ctrl.Snapshot().Pending)
	assert.Equal(t, homeSlot-1, m.focused)

	runFrames(t, m)
	assert.Nil(t, m.ctrl.Snapshot().Pending)
	assert.Equal(t, 9, m.focused)
	assert.Equal(t, offsetFor(9), m.offset)
}

func TestNonAnimatedShiftMovesAnimationTarget(t *testing.T) {
	m := newTestModel(t, func(cfg *config.Config) { cfg.UISettings.AnimationFPS = 60 })
	m.SetScrollOffset(m.offset+50, true)
	require.True(t, m.animating)

	m.SetScrollOffset(m.offset+100, false)
	assert.Equal(t, offsetFor(homeSlot)+150, m.target)
}

func TestEventsShowMessages(t *testing.T) {
	m := newTestModel(t, nil)

	update(m, EventMsg{Event: eventbus.FocusRejectedEvent{Limit: 1}})
	assert.Contains(t, m.View(), "at most 1 item")

	update(m, clearMessageMsg{seq: m.messageSeq - 1})
	assert.NotEmpty(t, m.message, "an older timer does not clear a newer message")
	update(m, clearMessageMsg{seq: m.messageSeq})
	assert.Empty(t, m.message)
}

func TestHelpAndQuit(t *testing.T) {
	m := newTestModel(t, nil)

	update(m, keyPress("?"))
	assert.True(t, m.help.ShowAll)
	assert.Contains(t, m.View(), "fewer per page")

	cmd := update(m, keyPress("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}
