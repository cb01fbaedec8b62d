// Package app holds the application controller: the single owner of the
// selection state, the in-flight generation and reading progress.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/p-n-ai/studymate/internal/markup"
	"github.com/p-n-ai/studymate/internal/progress"
	"github.com/p-n-ai/studymate/internal/quiz"
	"github.com/p-n-ai/studymate/internal/study"
	"github.com/p-n-ai/studymate/internal/syllabus"
)

const (
	defaultDebounce          = 500 * time.Millisecond
	defaultSettle            = 100 * time.Millisecond
	defaultGenerationTimeout = 2 * time.Minute
)

var (
	ErrUnknownSection = errors.New("unknown section")
	ErrUnknownTopic   = errors.New("unknown topic")
	ErrNoQuiz         = errors.New("no quiz is displayed")
)

// Generator produces study material. *study.Generator implements it.
type Generator interface {
	Generate(ctx context.Context, topic string, kind study.Kind) (study.Result, error)
}

// Timer is a stoppable pending call.
type Timer interface {
	Stop() bool
}

// AfterFunc schedules f after d.
type AfterFunc func(d time.Duration, f func()) Timer

func realAfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Config holds dependencies for the controller.
type Config struct {
	Syllabus          *syllabus.Syllabus
	Generator         Generator
	Store             *progress.Store
	Events            EventLogger   // default NopEventLogger
	Debounce          time.Duration // scroll save delay (default 500ms)
	Settle            time.Duration // layout delay before a scroll restore (default 100ms)
	GenerationTimeout time.Duration // default 2m
	AfterFunc         AfterFunc     // default time.AfterFunc
}

// pendingScroll is a debounced save. The key is captured when it is
// scheduled, never read back from live selection state.
type pendingScroll struct {
	timer Timer
	topic string
	kind  study.Kind
	pct   float64
}

// Controller is safe for concurrent use.
type Controller struct {
	syllabus  *syllabus.Syllabus
	generator Generator
	store     *progress.Store
	events    EventLogger
	debounce  time.Duration
	settle    time.Duration
	timeout   time.Duration
	afterFunc AfterFunc

	mu        sync.Mutex
	section   string
	topic     string
	kind      study.Kind
	result    *study.Result
	blocks    []markup.Block
	quiz      *quiz.Session
	loading   bool
	errMsg    string
	progress  float64
	seq       uint64
	requestID string
	pending   *pendingScroll

	base     context.Context
	stopBase context.CancelFunc
	wg       sync.WaitGroup
}

// New creates a controller with the first section selected, no topic and
// the notes kind.
func New(cfg Config) *Controller {
	events := cfg.Events
	if events == nil {
		events = NopEventLogger{}
	}
	debounce := cfg.Debounce
	if debounce == 0 {
		debounce = defaultDebounce
	}
	settle := cfg.Settle
	if settle == 0 {
		settle = defaultSettle
	}
	timeout := cfg.GenerationTimeout
	if timeout == 0 {
		timeout = defaultGenerationTimeout
	}
	afterFunc := cfg.AfterFunc
	if afterFunc == nil {
		afterFunc = realAfterFunc
	}
	base, stopBase := context.WithCancel(context.Background())
	return &Controller{
		base:      base,
		stopBase:  stopBase,
		syllabus:  cfg.Syllabus,
		generator: cfg.Generator,
		store:     cfg.Store,
		events:    events,
		debounce:  debounce,
		settle:    settle,
		timeout:   timeout,
		afterFunc: afterFunc,
		section:   cfg.Syllabus.First().Title,
		kind:      study.KindNotes,
	}
}

// SelectSection changes the displayed section. Topic and content are kept.
func (c *Controller) SelectSection(title string) error {
	sec, ok := c.syllabus.Section(title)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownSection, title)
	}

	c.mu.Lock()
	c.section = sec.Title
	c.mu.Unlock()
	return nil
}

// Generate starts a generation for topic and kind and returns its sequence
// number. Only the result of the most recently issued generation is applied;
// an older one that finishes later is discarded.
func (c *Controller) Generate(ctx context.Context, topic string, kind study.Kind) (uint64, error) {
	topic = syllabus.Normalize(topic)
	if !c.syllabus.HasLeaf(topic) {
		return 0, fmt.Errorf("%w: %q", ErrUnknownTopic, topic)
	}

	requestID := uuid.NewString()

	c.mu.Lock()
	c.topic = topic
	c.kind = kind
	c.result = nil
	c.blocks = nil
	c.quiz = nil
	c.errMsg = ""
	c.loading = true
	c.progress = 0
	c.seq++
	seq := c.seq
	c.requestID = requestID
	c.mu.Unlock()

	slog.Info("generation requested",
		"request_id", requestID,
		"seq", seq,
		"topic", topic,
		"kind", kind,
	)
	c.logEvent(Event{RequestID: requestID, EventType: EventGenerationRequested, Topic: topic, Kind: string(kind)})

	// The generation outlives the HTTP request that started it.
	// Shutdown still cancels it.
	genCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.timeout)
	stopOnShutdown := context.AfterFunc(c.base, cancel)
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		defer cancel()
		defer stopOnShutdown()

		start := time.Now()
		result, err := c.generator.Generate(genCtx, topic, kind)
		c.finish(seq, requestID, topic, kind, result, err, time.Since(start))
	}()

	return seq, nil
}

func (c *Controller) finish(seq uint64, requestID, topic string, kind study.Kind, result study.Result, err error, took time.Duration) {
	c.mu.Lock()
	if seq != c.seq {
		latest := c.seq
		c.mu.Unlock()
		slog.Info("discarding stale generation",
			"request_id", requestID,
			"seq", seq,
			"latest_seq", latest,
		)
		c.logEvent(Event{RequestID: requestID, EventType: EventGenerationDiscarded, Topic: topic, Kind: string(kind)})
		return
	}

	c.loading = false
	if err != nil {
		c.errMsg = err.Error()
		c.mu.Unlock()

		slog.Error("generation failed",
			"request_id", requestID,
			"topic", topic,
			"kind", kind,
			"error", err,
		)
		c.logEvent(Event{
			RequestID: requestID,
			EventType: EventGenerationFailed,
			Topic:     topic,
			Kind:      string(kind),
			Data:      map[string]any{"error": err.Error()},
		})
		return
	}

	c.result = &result
	if text, ok := result.Markup(); ok {
		c.blocks = markup.Parse(text)
	}
	if kind == study.KindMCQ {
		c.quiz = quiz.NewSession(result.Questions)
	}
	c.mu.Unlock()

	slog.Info("generation completed",
		"request_id", requestID,
		"topic", topic,
		"kind", kind,
		"duration_ms", took.Milliseconds(),
	)
	c.logEvent(Event{
		RequestID: requestID,
		EventType: EventGenerationCompleted,
		Topic:     topic,
		Kind:      string(kind),
		Data:      map[string]any{"duration_ms": took.Milliseconds()},
	})
}

// Wait blocks until every started generation has finished.
func (c *Controller) Wait() {
	c.wg.Wait()
}

// Shutdown cancels in-flight generations and waits for them to return, or
// for ctx to be done, whichever comes first.
func (c *Controller) Shutdown(ctx context.Context) error {
	c.stopBase()

	done := make(chan struct{})
	go func() {
		c.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("waiting for generations: %w", ctx.Err())
	}
}

// ToggleCompletion flips the completion flag of a leaf topic and persists it.
func (c *Controller) ToggleCompletion(ctx context.Context, topic string) (bool, error) {
	topic = syllabus.Normalize(topic)
	if !c.syllabus.HasLeaf(topic) {
		return false, fmt.Errorf("%w: %q", ErrUnknownTopic, topic)
	}

	done, err := c.store.Toggle(ctx, topic)
	if err != nil {
		return done, fmt.Errorf("toggle completion: %w", err)
	}
	c.logEvent(Event{EventType: EventTopicToggled, Topic: topic, Data: map[string]any{"completed": done}})
	return done, nil
}

// SelectOption chooses an option on the displayed quiz.
func (c *Controller) SelectOption(index int, option string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	it, err := c.quizItem(index)
	if err != nil {
		return err
	}
	return it.Select(option)
}

// Reveal checks the answer of a displayed quiz question.
func (c *Controller) Reveal(index int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	it, err := c.quizItem(index)
	if err != nil {
		return err
	}
	return it.Reveal()
}

func (c *Controller) quizItem(index int) (*quiz.Item, error) {
	if c.quiz == nil {
		return nil, ErrNoQuiz
	}
	return c.quiz.Item(index)
}

// ScrollPositions returns a copy of every saved reading position.
func (c *Controller) ScrollPositions() map[string]float64 {
	return c.store.ScrollPositions()
}

// Completion returns a copy of the completion record.
func (c *Controller) Completion() map[string]bool {
	return c.store.Completion()
}

// HealthCheck reports whether the progress backend is reachable.
func (c *Controller) HealthCheck(ctx context.Context) error {
	return c.store.HealthCheck(ctx)
}

func (c *Controller) logEvent(e Event) {
	if err := c.events.LogEvent(e); err != nil {
		slog.Warn("failed to log event", "type", e.EventType, "error", err)
	}
}
