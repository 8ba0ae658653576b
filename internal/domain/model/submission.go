package model

import "time"

// Submission is one user's graded attempt at a challenge. It is written once,
// after the judge result is known; the consecutive-failure count stored on it
// is the streak value at the time of this submission.
type Submission struct {
	ID                  string    `json:"id"`
	UserID              string    `json:"user_id"`
	ChallengeID         string    `json:"challenge_id"`
	Code                string    `json:"code"`
	Language            string    `json:"language"`
	Status              string    `json:"status"`
	ExecutionTime       *float64  `json:"execution_time,omitempty"` // seconds
	Memory              *int      `json:"memory,omitempty"`         // kilobytes
	Token               string    `json:"token"`
	ConsecutiveFailures int       `json:"consecutive_failures"`
	CreatedAt           time.Time `json:"created_at"`
}
