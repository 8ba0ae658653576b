package model

import "time"

type LeaderboardEntry struct {
	UserID        string    `json:"user_id"`
	Status        string    `json:"status"`
	ExecutionTime *float64  `json:"execution_time,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}
