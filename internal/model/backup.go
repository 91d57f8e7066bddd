package model

import "time"

// BackupLink is an opaque external reference kept by admins. The URL is not
// validated beyond presence.
type BackupLink struct {
	ID          string    `json:"id"`
	URL         string    `json:"url"`
	Description string    `json:"description,omitempty"`
	CreatedBy   string    `json:"createdBy"`
	CreatedAt   time.Time `json:"createdAt"`
}
