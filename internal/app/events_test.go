package app_test

import (
	"testing"

	"github.com/p-n-ai/studymate/internal/app"
)

func TestMemoryEventLogger_LogEvent(t *testing.T) {
	logger := app.NewMemoryEventLogger()

	err := logger.LogEvent(app.Event{
		RequestID: "req-1",
		EventType: app.EventGenerationRequested,
		Topic:     "Mean",
		Kind:      "notes",
	})
	if err != nil {
		t.Fatalf("LogEvent() error = %v", err)
	}

	events := logger.Events()
	if len(events) != 1 {
		t.Fatalf("len(events) = %d, want 1", len(events))
	}
	if events[0].EventType != app.EventGenerationRequested {
		t.Errorf("EventType = %q, want %s", events[0].EventType, app.EventGenerationRequested)
	}
	if events[0].CreatedAt.IsZero() {
		t.Error("CreatedAt should be set")
	}

	if err := logger.LogEvent(app.Event{Topic: "Mean"}); err == nil {
		t.Error("expected error for missing event type")
	}
}

func TestPostgresEventLogger_NilPool(t *testing.T) {
	if _, err := app.NewPostgresEventLogger(t.Context(), nil); err == nil {
		t.Fatal("expected error for nil pool")
	}

	var logger *app.PostgresEventLogger
	if err := logger.LogEvent(app.Event{EventType: app.EventTopicToggled, Topic: "Mean"}); err == nil {
		t.Fatal("expected error for nil logger")
	}
}
