package events

import (
	"context"
	"time"
)

// Event types emitted by this service.
const (
	EventExamCreated    = "practice_exam.created"
	EventResultRecorded = "practice_exam.result.recorded"
)

// Event is the envelope for all published domain events.
type Event struct {
	ID        string      `json:"id"`
	Type      string      `json:"type"`
	Source    string      `json:"source"`
	Version   string      `json:"version"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data"`
}

// EventPublisher publishes domain events to the message broker.
type EventPublisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// ExamCreatedEvent is the payload for practice_exam.created.
type ExamCreatedEvent struct {
	ExamID         uint   `json:"exam_id"`
	SubjectID      uint   `json:"subject_id"`
	CreatedBy      string `json:"created_by"`
	Coverage       string `json:"coverage"`
	QuestionCount  int    `json:"question_count"`
	RequestedCount int    `json:"requested_count"`
}

// ResultRecordedEvent is the payload for practice_exam.result.recorded.
type ResultRecordedEvent struct {
	ResultID     uint    `json:"result_id"`
	ExamID       uint    `json:"exam_id"`
	UserID       string  `json:"user_id"`
	SubjectID    uint    `json:"subject_id"`
	TotalPoints  int     `json:"total_points"`
	EarnedPoints int     `json:"earned_points"`
	Percentage   float64 `json:"percentage"`
}
