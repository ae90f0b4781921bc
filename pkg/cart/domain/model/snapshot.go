package model

import "context"

// DefaultSnapshotName is the name the storefront persists its cart under.
const DefaultSnapshotName = "ecommerce-store"

// Snapshot is the persisted form of the cart.
type Snapshot struct {
	Items     []LineItem `json:"items"`
	ItemCount int        `json:"itemCount"`
}

type SnapshotRepository interface {
	// Load returns ErrSnapshotNotFound when nothing was saved under name.
	Load(ctx context.Context, name string) (Snapshot, error)
	Save(ctx context.Context, name string, snapshot Snapshot) error
}
