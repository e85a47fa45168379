package events

import (
	"context"
	"io"
	"log/slog"
	"testing"
)

func TestMockEventPublisherEnvelopeDefaults(t *testing.T) {
	publisher := NewMockEventPublisher(slog.New(slog.NewTextHandler(io.Discard, nil)))

	err := publisher.Publish(context.Background(), Event{
		Type: EventExamCreated,
		Data: ExamCreatedEvent{ExamID: 1, SubjectID: 2},
	})
	if err != nil {
		t.Fatalf("Publish failed: %v", err)
	}

	published := publisher.GetPublishedEvents()
	if len(published) != 1 {
		t.Fatalf("got %d events, want 1", len(published))
	}

	event := published[0]
	if event.ID == "" {
		t.Error("event id not assigned")
	}
	if event.Source != "practice-exam-service" {
		t.Errorf("source = %q, want practice-exam-service", event.Source)
	}
	if event.Version != "1.0" {
		t.Errorf("version = %q, want 1.0", event.Version)
	}
	if event.Timestamp.IsZero() {
		t.Error("timestamp not assigned")
	}

	publisher.ClearEvents()
	if got := len(publisher.GetPublishedEvents()); got != 0 {
		t.Errorf("ClearEvents left %d events", got)
	}
}
