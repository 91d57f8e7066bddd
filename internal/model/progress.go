package model

import "time"

type GeoPoint struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type PhotoWithMetadata struct {
	DataURL   string    `json:"dataUrl"`
	Timestamp time.Time `json:"timestamp"`
	Location  GeoPoint  `json:"location"`
}

type Document struct {
	Name    string `json:"name"`
	DataURL string `json:"dataUrl"`
}

// ProgressUpdate is an append-only record of work done on a project on a
// given date. It is never updated or deleted once created.
type ProgressUpdate struct {
	ID                string              `json:"id"`
	ProjectID         string              `json:"projectId"`
	Date              time.Time           `json:"date"`
	CompletedWork     float64             `json:"completedWork"` // delta for this update, meters
	TimeTaken         float64             `json:"timeTaken"`     // hours
	Photos            []PhotoWithMetadata `json:"photos"`
	Notes             string              `json:"notes,omitempty"`
	VehicleID         string              `json:"vehicleId,omitempty"`
	StartMeterReading string              `json:"startMeterReading,omitempty"` // data URL photo
	EndMeterReading   string              `json:"endMeterReading,omitempty"`   // data URL photo
	Documents         []Document          `json:"documents,omitempty"`
	CreatedAt         time.Time           `json:"createdAt"`
}
