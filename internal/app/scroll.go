package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/p-n-ai/studymate/internal/progress"
)

// ScrollEvent is a scroll report from the content pane, in pixels.
type ScrollEvent struct {
	Top    float64 `json:"scrollTop"`
	Height float64 `json:"scrollHeight"`
	Client float64 `json:"clientHeight"`
}

// ScrollMetrics is the laid-out size of the content pane.
type ScrollMetrics struct {
	Height float64 `json:"scrollHeight"`
	Client float64 `json:"clientHeight"`
}

// Restore tells the view where to scroll once content has settled.
type Restore struct {
	Offset   float64 `json:"offset"`
	Percent  float64 `json:"percent"`
	Found    bool    `json:"found"`
	SettleMS int64   `json:"settle_ms"`
}

// Percent converts a scroll event into reading progress. Content that does
// not overflow reads as 0.
func Percent(ev ScrollEvent) float64 {
	span := ev.Height - ev.Client
	if span <= 0 {
		return 0
	}
	pct := ev.Top / span * 100
	switch {
	case pct < 0:
		return 0
	case pct > 100:
		return 100
	default:
		return pct
	}
}

// OnScroll updates live progress and, for tracked kinds with a topic
// selected, schedules a trailing-edge save. Each call replaces the pending
// save.
func (c *Controller) OnScroll(ev ScrollEvent) float64 {
	pct := Percent(ev)

	c.mu.Lock()
	defer c.mu.Unlock()

	c.progress = pct
	if c.topic == "" || !c.kind.Tracked() {
		return pct
	}

	if c.pending != nil {
		c.pending.timer.Stop()
	}
	p := &pendingScroll{topic: c.topic, kind: c.kind, pct: pct}
	p.timer = c.afterFunc(c.debounce, func() { c.firePending(p) })
	c.pending = p
	return pct
}

func (c *Controller) firePending(p *pendingScroll) {
	c.mu.Lock()
	if c.pending != p {
		c.mu.Unlock()
		return
	}
	c.pending = nil
	c.mu.Unlock()

	c.saveScroll(context.Background(), p)
}

// Flush writes a pending scroll save immediately.
func (c *Controller) Flush(ctx context.Context) {
	c.mu.Lock()
	p := c.pending
	c.pending = nil
	c.mu.Unlock()

	if p == nil {
		return
	}
	p.timer.Stop()
	c.saveScroll(ctx, p)
}

func (c *Controller) saveScroll(ctx context.Context, p *pendingScroll) {
	if err := c.store.SetScroll(ctx, p.topic, p.kind, p.pct); err != nil {
		slog.Warn("failed to save scroll position",
			"key", progress.ScrollKey(p.topic, p.kind),
			"error", err,
		)
		return
	}
	slog.Debug("scroll position saved", "key", progress.ScrollKey(p.topic, p.kind), "percent", p.pct)
}

// RestoreOffset returns the scroll offset for the displayed content. It is
// false unless a tracked kind's result is displayed for a selected topic;
// other kinds never consult stored positions. A missing position restores
// to the top.
func (c *Controller) RestoreOffset(m ScrollMetrics) (Restore, bool) {
	c.mu.Lock()
	topic, kind, hasResult := c.topic, c.kind, c.result != nil
	c.mu.Unlock()

	if topic == "" || !hasResult || !kind.Tracked() {
		return Restore{}, false
	}

	r := Restore{SettleMS: c.settle.Milliseconds()}
	pct, ok := c.store.ScrollPosition(topic, kind)
	if !ok {
		return r, true
	}
	r.Found = true
	r.Percent = pct
	if span := m.Height - m.Client; span > 0 {
		r.Offset = pct / 100 * span
	}
	return r, true
}

// Settle is the delay the view waits before applying a restore.
func (c *Controller) Settle() time.Duration {
	return c.settle
}

