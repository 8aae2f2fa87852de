package carousel

import (
	"fmt"
	"sync"
	"time"

	"ouroboros/internal/eventbus"
	"ouroboros/internal/paging"
)

type offsetSet struct {
	offset   int
	animated bool
}

type scheduledTick struct {
	ticket Ticket
	after  time.Duration
}

type fakeHost struct {
	geom          paging.Geometry
	offset        int
	sets          []offsetSet
	focusRequests []int
	afterLayout   []func()
	ticks         []scheduledTick
}

func newFakeHost() *fakeHost {
	return &fakeHost{
		geom: paging.Geometry{
			ItemExtent:     20,
			ItemSpacing:    2,
			ViewportExtent: 80,
		},
	}
}

func (h *fakeHost) Geometry() paging.Geometry { return h.geom }
func (h *fakeHost) ScrollOffset() int         { return h.offset }

func (h *fakeHost) SetScrollOffset(offset int, animated bool) {
	h.offset = offset
	h.sets = append(h.sets, offsetSet{offset: offset, animated: animated})
}

func (h *fakeHost) RequestFocus(padded int) {
	h.focusRequests = append(h.focusRequests, padded)
}

func (h *fakeHost) AfterLayout(fn func()) {
	h.afterLayout = append(h.afterLayout, fn)
}

func (h *fakeHost) ScheduleTick(ticket Ticket, after time.Duration) {
	h.ticks = append(h.ticks, scheduledTick{ticket: ticket, after: after})
}

func (h *fakeHost) runLayout() {
	fns := h.afterLayout
	h.afterLayout = nil
	for _, fn := range fns {
		fn()
	}
}

func (h *fakeHost) lastSet() offsetSet {
	if len(h.sets) == 0 {
		return offsetSet{}
	}
	return h.sets[len(h.sets)-1]
}

func (h *fakeHost) lastFocusRequest() int {
	if len(h.focusRequests) == 0 {
		return NoIndex
	}
	return h.focusRequests[len(h.focusRequests)-1]
}

func (h *fakeHost) lastTicket() Ticket {
	if len(h.ticks) == 0 {
		return 0
	}
	return h.ticks[len(h.ticks)-1].ticket
}

type fakeProvider struct {
	items []string
}

func newFakeProvider(n int) *fakeProvider {
	p := &fakeProvider{}
	for i := 0; i < n; i++ {
		p.items = append(p.items, fmt.Sprintf("item-%d", i))
	}
	return p
}

func (p *fakeProvider) ItemCount() int                 { return len(p.items) }
func (p *fakeProvider) CellContent(logical int) string { return p.items[logical] }

// recordingBus delivers synchronously so tests can assert on published events
type recordingBus struct {
	mu     sync.Mutex
	events []eventbus.DomainEvent
}

func (b *recordingBus) Publish(event eventbus.DomainEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, event)
}

func (b *recordingBus) Subscribe(eventbus.EventType, eventbus.EventHandler) func() {
	return func() {}
}

func (b *recordingBus) ofType(t eventbus.EventType) []eventbus.DomainEvent {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []eventbus.DomainEvent
	for _, e := range b.events {
		if e.Type() == t {
			out = append(out, e)
		}
	}
	return out
}

type fakeFallback struct {
	allow     bool
	preferred int
	hasPref   bool
	queries   []FocusUpdate
}

func (f *fakeFallback) ShouldUpdateFocus(u FocusUpdate) bool {
	f.queries = append(f.queries, u)
	return f.allow
}

func (f *fakeFallback) PreferredFocus() (int, bool) {
	return f.preferred, f.hasPref
}
