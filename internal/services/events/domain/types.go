// Package domain holds case lifecycle events
package domain

import (
	"context"
	"time"
)

// Kind names what happened to a case
type Kind string

const (
	KindCaseMinted    Kind = "case_minted"
	KindCaseDestroyed Kind = "case_destroyed"
	KindUnitRecorded  Kind = "unit_recorded"
	KindUnitRemoved   Kind = "unit_removed"
)

// Event is one lifecycle fact. CaseID is the case document id, Identifier its minted caseId
type Event struct {
	At         time.Time `json:"at"`
	OrgID      string    `json:"-"`
	Kind       Kind      `json:"kind"`
	OrderID    string    `json:"orderId"`
	ProductID  string    `json:"productId"`
	CaseID     string    `json:"caseId"`
	Identifier string    `json:"identifier,omitempty"`
	Count      int       `json:"count"`
}

// Sink accepts events without blocking the caller
type Sink interface {
	Emit(ctx context.Context, e Event)
}

// Reader reads events back
type Reader interface {
	Recent(ctx context.Context, orgID, orderID string, limit int) ([]Event, error)
}

// Nop discards events
type Nop struct{}

// Emit implements Sink
func (Nop) Emit(context.Context, Event) {}
