package model

import "time"

type Vehicle struct {
	ID                  string     `json:"id"`
	Model               string     `json:"model"`
	RegistrationNumber  string     `json:"registrationNumber"` // unique across the fleet
	PollutionCertExpiry *time.Time `json:"pollutionCertExpiry,omitempty"`
	FitnessCertExpiry   *time.Time `json:"fitnessCertExpiry,omitempty"`
	AdditionalDetails   string     `json:"additionalDetails,omitempty"`
	CreatedAt           time.Time  `json:"createdAt"`
}

type CertificateState string

const (
	CertificateMissing  CertificateState = "missing"
	CertificateExpired  CertificateState = "expired"
	CertificateExpiring CertificateState = "expiring"
	CertificateValid    CertificateState = "valid"
)

// VehicleCertificates is the monitoring view for one vehicle.
type VehicleCertificates struct {
	VehicleID          string           `json:"vehicleId"`
	RegistrationNumber string           `json:"registrationNumber"`
	Pollution          CertificateState `json:"pollution"`
	Fitness            CertificateState `json:"fitness"`
}
