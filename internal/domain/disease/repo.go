package disease

import "context"

// CatalogRepository provides access to the canonical name → coding pair
// catalog. There is deliberately no create operation: new diseases enter
// the catalog only through the seed set at construction time.
type CatalogRepository interface {
	// Get performs a case-sensitive exact key lookup. Returns ErrNotFound
	// if the name is absent.
	Get(ctx context.Context, name string) (*CodeEntry, error)

	// Names returns a sorted snapshot of the canonical names at the instant
	// of the call.
	Names(ctx context.Context) ([]string, error)

	// List returns a snapshot of all entries, sorted by name.
	List(ctx context.Context) ([]*Disease, error)

	// Update overwrites only the fields supplied in req; a nil field keeps
	// its previous value. Returns the updated entry, or ErrNotFound if the
	// name is absent. A failed update leaves the catalog unchanged.
	Update(ctx context.Context, name string, req UpdateRequest) (*CodeEntry, error)

	// Delete removes the entry. Returns ErrNotFound if the name is absent.
	Delete(ctx context.Context, name string) error
}
