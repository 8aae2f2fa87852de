package carousel

import (
	"github.com/sirupsen/logrus"

	"ouroboros/internal/eventbus"
)

// AutoPlayEnabled reports whether auto-play is switched on
func (c *Controller) AutoPlayEnabled() bool {
	return c.autoPlay
}

// AutoPlayRunning reports whether a tick is outstanding
func (c *Controller) AutoPlayRunning() bool {
	return c.ticket != 0
}

// SetAutoPlay switches auto-play on or off at runtime
func (c *Controller) SetAutoPlay(enabled bool) {
	c.autoPlay = enabled
	if enabled {
		c.StartAutoPlay()
		return
	}
	c.StopAutoPlay()
}

// StartAutoPlay (re)arms the auto-play timer. Any outstanding tick is invalidated first,
// so at most one tick is ever live.
func (c *Controller) StartAutoPlay() {
	if !c.autoPlay || c.layout.Empty() {
		return
	}
	if c.cfg.AutoPlayInterval <= 0 {
		c.log.WithField("interval", c.cfg.AutoPlayInterval).Warn("Refusing to start auto-play without a positive interval")
		return
	}
	c.StopAutoPlay()
	c.arm()
	c.bus.Publish(eventbus.AutoPlayStartedEvent{
		Ticket:   uint64(c.ticket),
		Interval: c.cfg.AutoPlayInterval.Seconds(),
	})
}

// StopAutoPlay invalidates the outstanding tick. A stale tick delivered later is ignored.
func (c *Controller) StopAutoPlay() {
	if c.ticket == 0 {
		return
	}
	stopped := c.ticket
	c.ticket = 0
	c.bus.Publish(eventbus.AutoPlayStoppedEvent{Ticket: uint64(stopped)})
}

// AutoPlayTick handles a delivered tick. It returns false for stale tickets.
func (c *Controller) AutoPlayTick(t Ticket) bool {
	if t == 0 || t != c.ticket {
		return false
	}
	c.ScrollToNextPage()
	c.arm()
	return true
}

// ScrollToNextPage advances focus by one page. Crossing the trailing seam first jumps back
// by one item sequence without animation, then animates to the new page.
func (c *Controller) ScrollToNextPage() {
	if c.layout.Empty() {
		return
	}
	if c.focus.Pending != nil {
		c.cancelJump("autoplay")
	}

	from := c.focus.CurrentlyFocused
	next := from + c.cfg.ItemsPerPage
	wrapped := false
	if c.layout.Wraps() && next >= c.layout.Buffer+c.layout.Count {
		next -= c.layout.Count
		c.shiftOffset(-c.Geometry().JumpDelta(c.layout.Count))
		wrapped = true
	}
	if !c.layout.Wraps() && next >= c.layout.Count {
		next = 0
		wrapped = true
	}

	c.log.WithFields(logrus.Fields{
		"from":    from,
		"to":      next,
		"wrapped": wrapped,
	}).Debug("Auto-play advancing page")
	c.bus.Publish(eventbus.PageAdvancedEvent{From: from, To: next, Wrapped: wrapped})

	c.ScrollToItem(next, true)
}

func (c *Controller) arm() {
	c.lastTicket++
	c.ticket = c.lastTicket
	c.host.ScheduleTick(c.ticket, c.cfg.AutoPlayInterval)
}
