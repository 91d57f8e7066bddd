package model

import "time"

type Tender struct {
	ID         string     `json:"id"`
	Title      string     `json:"title"`
	Department string     `json:"department,omitempty"`
	Location   string     `json:"location,omitempty"`
	DueDate    *time.Time `json:"dueDate,omitempty"`
	Status     string     `json:"status,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
}

type TenderItem struct {
	Description string  `json:"description"`
	Unit        string  `json:"unit"`
	Quantity    float64 `json:"quantity"`
	Rate        float64 `json:"rate"`
	Amount      float64 `json:"amount"` // quantity * rate, fixed at bill creation
}

type TenderBill struct {
	ID          string       `json:"id"`
	TenderID    string       `json:"tenderId"`
	BillNumber  string       `json:"billNumber"`
	Date        time.Time    `json:"date"`
	Items       []TenderItem `json:"items"`
	TotalAmount float64      `json:"totalAmount"`
	CreatedAt   time.Time    `json:"createdAt"`
}
