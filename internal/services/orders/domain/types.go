// Package domain holds order and customer types
package domain

import (
	"time"
)

// Status is the fulfillment state of an order
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusDelivered Status = "delivered"
	StatusCompleted Status = "completed"
)

// Valid reports whether s is a known status
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusDelivered, StatusCompleted:
		return true
	}
	return false
}

// Terminal reports whether no further status change is allowed
func (s Status) Terminal() bool { return s == StatusCancelled || s == StatusCompleted }

// ExternalID is an identifier the customer uses for the order, e.g. a PO number
type ExternalID struct {
	Name  string `json:"name" validate:"required,max=100" example:"PO"`
	Value string `json:"value" validate:"required,max=200" example:"4500012345"`
}

// Item is one ordered product
type Item struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity" validate:"min=1" example:"240"`
	Notes     string `json:"notes,omitempty" validate:"max=2000"`
}

// Customer is who an order is shipped to
type Customer struct {
	ID        string    `json:"id,omitempty"`
	Name      string    `json:"name" validate:"required,max=200" example:"Acme Corp"`
	Email     string    `json:"email,omitempty" validate:"omitempty,email,max=320"`
	Phone     string    `json:"phone,omitempty" validate:"max=50"`
	Address   string    `json:"address,omitempty" validate:"max=1000"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// OrderInput is the body of an order create. Either CustomerID names an existing
// customer or Customer describes a new one
type OrderInput struct {
	CustomerID    string       `json:"customerId,omitempty" validate:"required_without=Customer"`
	Customer      *Customer    `json:"customer,omitempty" validate:"omitempty"`
	IDs           []ExternalID `json:"ids,omitempty" validate:"max=20,dive"`
	Documents     []string     `json:"documents,omitempty" validate:"max=50"`
	OrderItems    []Item       `json:"orderItems" validate:"required,min=1,max=200,dive"`
	DueDate       *time.Time   `json:"dueDate,omitempty"`
	OrderedDate   *time.Time   `json:"orderedDate,omitempty"`
	ShipToAddress string       `json:"shipToAddress,omitempty" validate:"max=1000"`
}

// Order is a stored order
type Order struct {
	ID            string       `json:"id"`
	CustomerID    string       `json:"customerId"`
	IDs           []ExternalID `json:"ids,omitempty"`
	Documents     []string     `json:"documents,omitempty"`
	OrderItems    []Item       `json:"orderItems"`
	Status        Status       `json:"status"`
	DueDate       *time.Time   `json:"dueDate,omitempty"`
	OrderedDate   *time.Time   `json:"orderedDate,omitempty"`
	ShipToAddress string       `json:"shipToAddress,omitempty"`
	CreatedAt     time.Time    `json:"createdAt"`
	UpdatedAt     time.Time    `json:"updatedAt"`
}

// Item returns the line for productID
func (o Order) Item(productID string) (Item, bool) {
	for _, it := range o.OrderItems {
		if it.ProductID == productID {
			return it, true
		}
	}
	return Item{}, false
}

// StatusInput is the body of a status change
type StatusInput struct {
	Status Status `json:"status" validate:"required,oneof=pending confirmed cancelled delivered completed"`
}

// Filter narrows an order listing
type Filter struct {
	Status     Status
	CustomerID string
}
