package model

import "time"

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusApproved  PaymentStatus = "approved"
	PaymentStatusRejected  PaymentStatus = "rejected"
	PaymentStatusScheduled PaymentStatus = "scheduled"
	PaymentStatusPaid      PaymentStatus = "paid"
)

func ParsePaymentStatus(raw string) (PaymentStatus, bool) {
	switch PaymentStatus(raw) {
	case PaymentStatusPending, PaymentStatusApproved, PaymentStatusRejected,
		PaymentStatusScheduled, PaymentStatusPaid:
		return PaymentStatus(raw), true
	default:
		return "", false
	}
}

type PurposeType string

const (
	PurposeFood    PurposeType = "food"
	PurposeFuel    PurposeType = "fuel"
	PurposeLabour  PurposeType = "labour"
	PurposeVehicle PurposeType = "vehicle"
	PurposeWater   PurposeType = "water"
	PurposeOther   PurposeType = "other"
)

// PurposeTypes lists every purpose type in stable order.
var PurposeTypes = []PurposeType{
	PurposeFood, PurposeFuel, PurposeLabour, PurposeVehicle, PurposeWater, PurposeOther,
}

func ParsePurposeType(raw string) (PurposeType, bool) {
	switch PurposeType(raw) {
	case PurposeFood, PurposeFuel, PurposeLabour, PurposeVehicle, PurposeWater, PurposeOther:
		return PurposeType(raw), true
	default:
		return "", false
	}
}

type PaymentPurpose struct {
	Type    PurposeType `json:"type"`
	Amount  float64     `json:"amount"`
	Images  []string    `json:"images,omitempty"` // data URLs
	Remarks string      `json:"remarks,omitempty"`
}

type PaymentRequest struct {
	ID               string           `json:"id"`
	ProjectID        string           `json:"projectId"`
	ProgressUpdateID string           `json:"progressUpdateId,omitempty"`
	Date             time.Time        `json:"date"`
	Purposes         []PaymentPurpose `json:"purposes"`
	Status           PaymentStatus    `json:"status"`
	CheckerNotes     string           `json:"checkerNotes,omitempty"`
	ScheduledDate    *time.Time       `json:"scheduledDate,omitempty"`
	// TotalAmount is fixed at creation as the sum of purpose amounts.
	TotalAmount float64   `json:"totalAmount"`
	CreatedAt   time.Time `json:"createdAt"`
}
