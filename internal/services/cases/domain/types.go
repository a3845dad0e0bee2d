// Package domain holds cases, the containers units are packed into, and their lifecycle states
package domain

import "time"

// Case is one container of units for an (order, product) pair. CaseID is the minted
// identifier, ID the document id
type Case struct {
	ID        string    `json:"id"`
	CaseID    string    `json:"caseId" example:"20240115-001"`
	OrderID   string    `json:"orderId"`
	ProductID string    `json:"productId"`
	MaxSize   int       `json:"maxSize"`
	Count     int       `json:"count"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// State is where a case sits in the per pair lifecycle:
// no open case -> open (count < max) -> full (count == max) -> a new case is minted
type State string

const (
	StateOpen State = "open"
	StateFull State = "full"
)

// StateOf classifies c. A non positive max size never fills
func StateOf(c Case) State {
	if c.MaxSize > 0 && c.Count >= c.MaxSize {
		return StateFull
	}
	return StateOpen
}

// Room is how many more units fit
func (c Case) Room() int {
	if c.MaxSize <= 0 {
		return int(^uint(0) >> 1)
	}
	if r := c.MaxSize - c.Count; r > 0 {
		return r
	}
	return 0
}

// Empty reports whether no unit was recorded into c
func (c Case) Empty() bool { return c.Count == 0 }

// View is a case as served over http
type View struct {
	Case
	State State `json:"state"`
}

// ViewOf decorates c with its state
func ViewOf(c Case) View { return View{Case: c, State: StateOf(c)} }

// PairInput names an (order, product) pair
type PairInput struct {
	OrderID   string `json:"orderId" validate:"required"`
	ProductID string `json:"productId" validate:"required"`
}

// PreviewInput asks for identifiers a pattern would mint, without storing anything
type PreviewInput struct {
	Pattern  string `json:"pattern" validate:"required,max=64" example:"YYYYMMDD-###"`
	Previous string `json:"previous,omitempty" validate:"max=64"`
	Count    int    `json:"count,omitempty" validate:"omitempty,min=1,max=100"`
}

// Preview lists the identifiers following Previous
type Preview struct {
	Pattern  string   `json:"pattern"`
	Previous string   `json:"previous"`
	Next     []string `json:"next"`
}

// SweepResult reports a destroy pass
type SweepResult struct {
	Destroyed int `json:"destroyed"`
}
