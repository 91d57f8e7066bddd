package model

import "time"

type Driver struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	LicenseNumber string    `json:"licenseNumber"`
	LicenseType   string    `json:"licenseType"`
	Experience    int       `json:"experience"` // years
	IsExternal    bool      `json:"isExternal"`
	ContactNumber string    `json:"contactNumber,omitempty"`
	Address       string    `json:"address,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}
