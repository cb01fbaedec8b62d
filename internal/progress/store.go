// Package progress persists study progress: which leaf topics are complete
// and how far each notes or summary text has been read. Both records are read
// once when the store opens and written whole on every change.
package progress

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"math"
	"sync"

	"github.com/p-n-ai/studymate/internal/study"
)

// Record keys in the backend.
const (
	KeyCompletedTopics = "completedTopics"
	KeyScrollPositions = "scrollPositions"
)

// ErrUntracked is returned when saving a scroll position for a kind whose
// reading progress is not remembered.
var ErrUntracked = errors.New("reading progress is not tracked for this kind")

// Store is the process-wide progress state.
type Store struct {
	backend   Backend
	mu        sync.RWMutex
	completed map[string]bool
	scroll    map[string]float64
}

// Open reads both records from backend. A missing, unreadable or malformed
// record starts empty and is logged; Open never fails.
func Open(ctx context.Context, backend Backend) *Store {
	s := &Store{
		backend:   backend,
		completed: map[string]bool{},
		scroll:    map[string]float64{},
	}
	load(ctx, backend, KeyCompletedTopics, &s.completed)
	load(ctx, backend, KeyScrollPositions, &s.scroll)

	slog.Info("progress loaded",
		"completed_topics", len(s.completed),
		"scroll_positions", len(s.scroll),
	)
	return s
}

func load[M ~map[K]V, K comparable, V any](ctx context.Context, b Backend, key string, dst *M) {
	raw, found, err := b.Load(ctx, key)
	if err != nil {
		slog.Warn("failed to read progress record", "key", key, "error", err)
		return
	}
	if !found {
		return
	}
	var m M
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		slog.Warn("ignoring malformed progress record", "key", key, "error", err)
		return
	}
	if m != nil {
		*dst = m
	}
}

// ScrollKey is the composite record key for a topic and kind.
func ScrollKey(topic string, kind study.Kind) string {
	return topic + "-" + string(kind)
}

// Completed reports whether topic is marked complete.
func (s *Store) Completed(topic string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.completed[topic]
}

// Completion returns a copy of the completion record.
func (s *Store) Completion() map[string]bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return maps.Clone(s.completed)
}

// Toggle flips the completion flag for topic and writes the record before
// returning. On a failed write the flag is restored.
func (s *Store) Toggle(ctx context.Context, topic string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, existed := s.completed[topic]
	s.completed[topic] = !prev
	if err := s.save(ctx, KeyCompletedTopics, s.completed); err != nil {
		if existed {
			s.completed[topic] = prev
		} else {
			delete(s.completed, topic)
		}
		return prev, err
	}
	return !prev, nil
}

// ScrollPosition returns the stored percentage for topic and kind.
func (s *Store) ScrollPosition(topic string, kind study.Kind) (float64, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	pct, ok := s.scroll[ScrollKey(topic, kind)]
	return pct, ok
}

// ScrollPositions returns a copy of the scroll record.
func (s *Store) ScrollPositions() map[string]float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return maps.Clone(s.scroll)
}

// SetScroll stores pct, clamped to [0,100], for topic and kind.
func (s *Store) SetScroll(ctx context.Context, topic string, kind study.Kind, pct float64) error {
	if !kind.Tracked() {
		return ErrUntracked
	}
	if topic == "" {
		return fmt.Errorf("topic is required")
	}
	pct = clampPercent(pct)

	s.mu.Lock()
	defer s.mu.Unlock()

	key := ScrollKey(topic, kind)
	prev, existed := s.scroll[key]
	s.scroll[key] = pct
	if err := s.save(ctx, KeyScrollPositions, s.scroll); err != nil {
		if existed {
			s.scroll[key] = prev
		} else {
			delete(s.scroll, key)
		}
		return err
	}
	return nil
}

// HealthCheck pings the backend when it has a remote connection.
func (s *Store) HealthCheck(ctx context.Context) error {
	if hc, ok := s.backend.(HealthChecker); ok {
		return hc.HealthCheck(ctx)
	}
	return nil
}

// Close closes the backend.
func (s *Store) Close() error {
	return s.backend.Close()
}

func (s *Store) save(ctx context.Context, key string, record any) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	if err := s.backend.Save(ctx, key, string(data)); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

func clampPercent(pct float64) float64 {
	switch {
	case math.IsNaN(pct), pct < 0:
		return 0
	case pct > 100:
		return 100
	default:
		return pct
	}
}
