// Package domain holds unit values, the identifiers recorded for every packed unit
package domain

import (
	"time"

	casesdom "caseline/internal/services/cases/domain"
)

// UnitValue is one recorded unit. IDs maps unit schema names to their normalized value;
// CaseID is the document id of the case the unit was packed into
type UnitValue struct {
	ID        string            `json:"id"`
	OrderID   string            `json:"orderId"`
	ProductID string            `json:"productId"`
	CaseID    string            `json:"caseId"`
	IDs       map[string]string `json:"ids"`
	Count     int               `json:"count"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
}

// UnitInput records a unit. Without CaseID the unit goes into the pair's open case
type UnitInput struct {
	OrderID   string            `json:"orderId" validate:"required"`
	ProductID string            `json:"productId" validate:"required"`
	CaseID    string            `json:"caseId,omitempty"`
	IDs       map[string]string `json:"ids,omitempty" validate:"max=20"`
	Count     int               `json:"count,omitempty" validate:"omitempty,min=1,max=100000" example:"1"`
}

// Recorded is the result of recording a unit. Next is set when the unit filled its case
// and a successor was minted
type Recorded struct {
	Unit UnitValue      `json:"unit"`
	Case casesdom.View  `json:"case"`
	Next *casesdom.View `json:"next,omitempty"`
}

// Filter narrows a unit listing; at least one field is required
type Filter struct {
	OrderID string
	CaseID  string
}

// Progress is the recorded share of one order line
type Progress struct {
	ProductID string  `json:"productId"`
	Recorded  int64   `json:"recorded"`
	Quantity  int     `json:"quantity"`
	Percent   float64 `json:"percent" example:"37.5"`
}
