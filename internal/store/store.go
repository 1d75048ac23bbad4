// Package store holds the two persistence backends for contact records: one
// JSON document per record on disk, or one row per record in Postgres. The
// backends are independent, non-synchronized views over the same entity type;
// a record lives in exactly one of them.
package store

import (
	"context"

	"github.com/vizitka/card-scanner/internal/entity"
)

// Gateway is the contract both backends share. Identifiers are opaque: a
// filename for the file backend, a decimal row id for the relational one.
type Gateway interface {
	Save(ctx context.Context, c entity.Contact) (string, error)
	Load(ctx context.Context, id string) (entity.Contact, error)
}

// Catalog is the extended capability only the file backend satisfies:
// listing, in-place edits, and deletion. The relational backend deliberately
// stays append-and-read: rows are written once by the scan pipeline and only
// read back for listing and export, so it grows no edit surface.
type Catalog interface {
	Gateway
	List(ctx context.Context) ([]CatalogEntry, error)
	Update(ctx context.Context, id string, c entity.Contact) error
	Delete(ctx context.Context, id string) error
}

// CatalogEntry is one row of a catalog listing.
type CatalogEntry struct {
	ID          string // storage identifier (filename)
	DisplayName string
	Unreadable  bool // the file exists but does not decode
}
