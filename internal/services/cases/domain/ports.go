package domain

import (
	"context"
	"time"
)

// Opener is what unit recording needs from cases
type Opener interface {
	Get(ctx context.Context, orgID, id string) (Case, error)
	// EnsureOpenCase returns the open case of the pair, minting one when there is none
	EnsureOpenCase(ctx context.Context, orgID, orderID, productID string) (Case, error)
	// OpenCase returns the open case of the pair without minting
	OpenCase(ctx context.Context, orgID, orderID, productID string) (Case, bool, error)
	AddUnits(ctx context.Context, orgID, id string, n int) error
}

// Sweeper is what the background sweeper needs from cases
type Sweeper interface {
	// EmptyBefore lists empty cases created before t
	EmptyBefore(ctx context.Context, orgID string, t time.Time, limit int) ([]Case, error)
	DestroyEmptyCases(ctx context.Context, cases []Case, orgID string) (int, error)
}
