package events

import (
	"io"
	"log/slog"
	"testing"
)

func TestNewKafkaEventPublisherRequiresBrokers(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	if _, err := NewKafkaEventPublisher(nil, "exam-events", logger); err == nil {
		t.Fatal("expected an error when no brokers are configured")
	}
}
