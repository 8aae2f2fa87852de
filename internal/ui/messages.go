package ui

import (
	"ouroboros/internal/carousel"
	"ouroboros/internal/config"
	"ouroboros/internal/eventbus"
)

// EventMsg wraps a domain event for the UI
type EventMsg struct {
	Event eventbus.DomainEvent
}

// ConfigReloadedMsg carries a configuration re-read from disk
type ConfigReloadedMsg struct {
	Config *config.Config
}

// frameMsg advances the scroll animation by one step
type frameMsg struct{}

// autoPlayTickMsg delivers a scheduled auto-play tick
type autoPlayTickMsg struct {
	ticket carousel.Ticket
}

// afterLayoutMsg runs continuations registered during the previous update
type afterLayoutMsg struct{}

// clearMessageMsg clears the message line if it still shows the same message
type clearMessageMsg struct {
	seq int
}

// pauseRenderingMsg signals to pause Bubble Tea rendering
type pauseRenderingMsg struct{}

// resumeRenderingMsg signals to resume Bubble Tea rendering
type resumeRenderingMsg struct{}
