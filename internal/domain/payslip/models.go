package payslip

import (
	"time"

	"salarydecoder/internal/domain/salary"
)

// Payslip is the flattened snapshot kept for the dashboard.
type Payslip struct {
	ID           string    `json:"id"`
	Month        string    `json:"month"`
	Basic        float64   `json:"basic"`
	GrossSalary  float64   `json:"grossSalary"`
	InHandSalary float64   `json:"inHandSalary"`
	CTC          float64   `json:"ctc"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Record is a stored payslip together with the inputs it was computed from.
type Record struct {
	Payslip
	Input salary.Input
}

type Page struct {
	Items  []Payslip `json:"items"`
	Total  int       `json:"total"`
	Limit  int       `json:"limit"`
	Offset int       `json:"offset"`
}

// Summary aggregates a user's saved payslips for the dashboard header.
type Summary struct {
	Count         int      `json:"count"`
	AverageInHand float64  `json:"averageInHand"`
	AverageCTC    float64  `json:"averageCtc"`
	Latest        *Payslip `json:"latest,omitempty"`
}
