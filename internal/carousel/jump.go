package carousel

import (
	"github.com/sirupsen/logrus"

	"ouroboros/internal/eventbus"
)

// scheduleJump records intent as the outstanding jump. With the focus trigger the
// reported focus moves to the mirror immediately so it stays in logical continuity.
func (c *Controller) scheduleJump(intent JumpIntent) {
	c.focus.Pending = &intent
	if c.cfg.Trigger == TriggerFocus {
		c.focus.CurrentlyFocused = intent.Target
	}
	c.log.WithFields(logrus.Fields{
		"heading": intent.Heading,
		"from":    intent.From,
		"target":  intent.Target,
		"logical": c.layout.MustLogical(intent.Target),
	}).Debug("Jump scheduled")
	c.bus.Publish(eventbus.JumpScheduledEvent{
		Direction: intent.Heading.String(),
		From:      intent.From,
		Target:    intent.Target,
	})
}

// applyJump shifts the offset by a whole item sequence so the mirrored cells occupy the
// same screen position, then re-asserts focus on the mirror
func (c *Controller) applyJump() {
	intent := *c.focus.Pending
	c.focus.Pending = nil

	delta := c.Geometry().JumpDelta(c.layout.Count)
	if intent.Heading == DirectionForward {
		delta = -delta
	}
	c.shiftOffset(delta)

	if c.focus.InGesture() {
		c.focus.InitiallyFocused += intent.Delta()
	}
	c.focus.CurrentlyFocused = intent.Target
	c.manual = intent.Target
	c.phase = PhaseJumped

	c.log.WithFields(logrus.Fields{
		"heading": intent.Heading,
		"target":  intent.Target,
		"delta":   delta,
	}).Debug("Jump applied")
	c.bus.Publish(eventbus.JumpAppliedEvent{
		Direction: intent.Heading.String(),
		Target:    intent.Target,
		Delta:     delta,
	})

	c.host.RequestFocus(intent.Target)
}

// cancelJump drops the outstanding jump without touching the offset
func (c *Controller) cancelJump(reason string) {
	intent := c.focus.Pending
	if intent == nil {
		return
	}
	c.focus.Pending = nil
	if c.cfg.Trigger == TriggerFocus && c.focus.CurrentlyFocused == intent.Target {
		c.focus.CurrentlyFocused = intent.From
	}
	c.log.WithFields(logrus.Fields{
		"target": intent.Target,
		"reason": reason,
	}).Debug("Jump cancelled")
	c.bus.Publish(eventbus.JumpCancelledEvent{
		Target: intent.Target,
		Reason: reason,
	})
	if c.phase == PhasePendingJump {
		c.settle()
	}
}

func (c *Controller) shiftOffset(delta int) {
	if delta == 0 {
		return
	}
	c.host.SetScrollOffset(c.host.ScrollOffset()+delta, false)
}
