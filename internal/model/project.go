package model

import "time"

type Project struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	LeaderID  string  `json:"leaderId"`
	Workers   int     `json:"workers"`
	TotalWork float64 `json:"totalWork"` // planned distance, meters
	// CompletedWork only ever grows, by appending ProgressUpdate deltas.
	CompletedWork float64    `json:"completedWork"`
	Status        string     `json:"status,omitempty"`
	StartDate     *time.Time `json:"startDate,omitempty"`
	EndDate       *time.Time `json:"endDate,omitempty"`
	Location      string     `json:"location,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
}
