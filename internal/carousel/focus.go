package carousel

import (
	"github.com/sirupsen/logrus"

	"ouroboros/internal/eventbus"
)

// ShouldUpdateFocus decides whether the host may move focus as described by u. When the
// move crosses into a buffer region it schedules a jump to the mirrored index; the jump
// is applied by DidUpdateFocus (or DidScroll with TriggerScroll).
func (c *Controller) ShouldUpdateFocus(u FocusUpdate) bool {
	result := true
	if c.fallback != nil {
		result = c.fallback.ShouldUpdateFocus(u)
	}

	// Allow users to leave
	if u.Next == NoIndex {
		c.StartAutoPlay()
		c.publishMove(u, NoIndex)
		return result
	}

	// Allow users to enter
	if u.Previous == NoIndex {
		c.StopAutoPlay()
		c.publishMove(u, u.Next)
		return result
	}

	if !result {
		return false
	}

	if c.exceedsGesture(u) {
		c.log.WithFields(logrus.Fields{
			"initial": c.focus.InitiallyFocused,
			"target":  u.Next,
		}).Debug("Rejecting focus move past one page")
		c.bus.Publish(eventbus.FocusRejectedEvent{
			Initial: c.focus.InitiallyFocused,
			Target:  u.Next,
			Limit:   c.cfg.ItemsPerPage,
		})
		return false
	}

	if pending := c.focus.Pending; pending != nil && u.Heading != DirectionNone && u.Heading == pending.Heading.Reverse() {
		c.cancelJump("reversed")
	}

	c.focus.Heading = u.Heading
	c.focus.CurrentlyFocused = u.Next

	if (u.Heading == DirectionBackward && c.layout.InLeadingBuffer(u.Next)) ||
		(u.Heading == DirectionForward && c.layout.InTrailingBuffer(u.Next)) {
		c.scheduleJump(JumpIntent{Heading: u.Heading, From: u.Next, Target: c.layout.Mirror(u.Next)})
	}

	c.manual = c.focus.CurrentlyFocused
	c.settle()
	c.publishMove(u, u.Next)
	return result
}

// DidUpdateFocus is called once the host's focus has landed. With a pending jump and the
// focus trigger it applies the offset correction and re-asserts focus on the mirror.
func (c *Controller) DidUpdateFocus() {
	if c.focus.Pending == nil || c.cfg.Trigger != TriggerFocus {
		c.settle()
		return
	}
	c.applyJump()
}

// DidScroll observes the host's scroll offset. With TriggerScroll it applies a pending
// jump once the offset has reached the page of the cell that crossed the seam.
func (c *Controller) DidScroll(offset int) {
	if c.cfg.Trigger != TriggerScroll || c.focus.Pending == nil {
		return
	}
	intent := c.focus.Pending
	desired := c.Geometry().OffsetForIndex(intent.From)
	crossed := (intent.Heading == DirectionBackward && offset <= desired) ||
		(intent.Heading == DirectionForward && offset >= desired)
	if !crossed {
		return
	}
	c.applyJump()
}

func (c *Controller) exceedsGesture(u FocusUpdate) bool {
	if !c.focus.InGesture() {
		return false
	}
	switch u.Source {
	case SourceProgrammatic:
		return false
	case SourceKeyboard:
		if c.cfg.ExemptKeyboard {
			return false
		}
	}
	return abs(u.Next-c.focus.InitiallyFocused) > c.cfg.ItemsPerPage
}

func (c *Controller) publishMove(u FocusUpdate, to int) {
	logical := NoIndex
	if to != NoIndex {
		if l, ok := c.LogicalIndex(to); ok {
			logical = l
		}
	}
	c.bus.Publish(eventbus.FocusMovedEvent{
		From:    u.Previous,
		To:      to,
		Logical: logical,
		Heading: u.Heading.String(),
	})
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
