package model

import "time"

type SubmissionStatus string

const (
	SubmissionInProgress SubmissionStatus = "in_progress"
	SubmissionCompleted  SubmissionStatus = "completed"
	SubmissionExpired    SubmissionStatus = "expired"
)

type TimestampedImage struct {
	DataURL   string    `json:"dataUrl"`
	Timestamp time.Time `json:"timestamp"`
}

// FinalSubmission is the timed closing-documentation workflow for a project.
// Once the timer runs out or the leader completes it, the record is frozen.
type FinalSubmission struct {
	ID             string             `json:"id"`
	ProjectID      string             `json:"projectId"`
	LeaderID       string             `json:"leaderId"`
	Status         SubmissionStatus   `json:"status"`
	TimerStartedAt time.Time          `json:"timerStartedAt"`
	TimerDuration  int                `json:"timerDuration"` // seconds
	TimerEndedAt   *time.Time         `json:"timerEndedAt,omitempty"`
	Images         []TimestampedImage `json:"images,omitempty"`
	Notes          string             `json:"notes,omitempty"`
	CreatedAt      time.Time          `json:"createdAt"`
}

// Deadline is the instant the timer runs out.
func (s FinalSubmission) Deadline() time.Time {
	return s.TimerStartedAt.Add(time.Duration(s.TimerDuration) * time.Second)
}

// RemainingAt derives the remaining timer from absolute timestamps, so a
// delayed or missed poll tick never skews the result.
func (s FinalSubmission) RemainingAt(now time.Time) time.Duration {
	remaining := s.Deadline().Sub(now)
	if remaining < 0 {
		return 0
	}
	return remaining
}
