// Package domain holds product types and the contracts other modules use to read them
package domain

import (
	"time"

	"caseline/internal/core/normalize"
)

// Scope bounds identifier uniqueness
type Scope string

const (
	ScopeOrder        Scope = "order"
	ScopeOrganization Scope = "organization"
)

// Attribute is a free form name and value pair
type Attribute struct {
	Name  string `json:"name" validate:"required,max=100" example:"color"`
	Value string `json:"value" validate:"max=500" example:"red"`
}

// CaseSchema describes how cases of a product are identified and how many units they hold
type CaseSchema struct {
	Name           string   `json:"name" validate:"required,max=100" example:"Case"`
	Pattern        string   `json:"pattern" validate:"required,max=64,idpattern" example:"YYYYMMDD-###"`
	MaxSize        int      `json:"maxSize" validate:"min=1,max=100000" example:"24"`
	Unique         bool     `json:"unique"`
	AutoGen        bool     `json:"autoGen"`
	Scope          Scope    `json:"scope,omitempty" validate:"omitempty,oneof=order organization" example:"order"`
	LabelTemplates []string `json:"labelTemplates,omitempty" validate:"max=20"`
}

// UnitSchema describes one identifier recorded for every unit
type UnitSchema struct {
	Name           string           `json:"name" validate:"required,max=100,excludesall=." example:"serial"`
	Count          int              `json:"count,omitempty" validate:"omitempty,min=1,max=1000"`
	Pattern        string           `json:"pattern,omitempty" validate:"omitempty,max=256,regexp" example:"^SN[0-9]{6}$"`
	Transform      normalize.Casing `json:"transform,omitempty" validate:"omitempty,oneof=UPPERCASE LOWERCASE NONE" example:"UPPERCASE"`
	Unique         bool             `json:"unique"`
	DefaultValue   string           `json:"defaultValue,omitempty" validate:"max=200"`
	Scope          Scope            `json:"scope,omitempty" validate:"omitempty,oneof=order organization"`
	LabelTemplates []string         `json:"labelTemplates,omitempty" validate:"max=20"`
}

// ProductInput is the body of a product create
type ProductInput struct {
	Name                 string       `json:"name" validate:"required,max=200" example:"Widget 12-pack"`
	Description          string       `json:"description,omitempty" validate:"max=2000"`
	Customers            []string     `json:"customers,omitempty" validate:"max=200"`
	Attributes           []Attribute  `json:"attributes,omitempty" validate:"max=50,dive"`
	UnitIdentifierSchema []UnitSchema `json:"unitIdentifierSchema,omitempty" validate:"max=20,dive"`
	CaseIdentifierSchema CaseSchema   `json:"caseIdentifierSchema"`
}

// Product is a stored product
type Product struct {
	ID string `json:"id"`
	ProductInput
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Schema returns the unit schema named name
func (p Product) Schema(name string) (UnitSchema, bool) {
	for _, s := range p.UnitIdentifierSchema {
		if s.Name == name {
			return s, true
		}
	}
	return UnitSchema{}, false
}
