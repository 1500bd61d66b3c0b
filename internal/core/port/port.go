package port

import (
	"context"

	"github.com/2loga/logbeauty/internal/core/domain"
)

// A CatalogStore is the remote document database holding the product
// collection. Subscriptions deliver full ordered snapshots, not diffs.
type CatalogStore interface {
	// Subscribe opens one live subscription to the product collection,
	// ordered by name ascending. The stream stays open until Stop or ctx
	// cancellation.
	Subscribe(ctx context.Context) (SnapshotStream, error)

	// Add appends a new document; the store assigns the id.
	Add(ctx context.Context, fields domain.ProductFields) (id string, err error)

	// Update overwrites the document's fields in place. The id never
	// changes.
	Update(ctx context.Context, id string, fields domain.ProductFields) error

	Delete(ctx context.Context, id string) error
}

// A SnapshotStream yields full collection snapshots in the store's own
// delivery order.
type SnapshotStream interface {
	// Next blocks until the next snapshot arrives or the stream fails.
	Next(ctx context.Context) ([]domain.ProductDocument, error)

	// Stop cancels the subscription. No snapshots are delivered after
	// Stop returns.
	Stop()
}

// A BlobStore is the remote object storage for product images.
type BlobStore interface {
	Upload(ctx context.Context, key string, data []byte) error
	URL(ctx context.Context, key string) (string, error)
}

// A FlagStore is the client-local persistence for the remembered-session
// flag. Values survive process restarts until explicitly deleted.
type FlagStore interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
	Delete(key string) error
	Close() error
}

// A Confirmer is the human-in-the-loop gate in front of destructive
// operations.
type Confirmer interface {
	Confirm(prompt string) bool
}

// ConfirmFunc adapts a plain function to the Confirmer port.
type ConfirmFunc func(prompt string) bool

func (f ConfirmFunc) Confirm(prompt string) bool { return f(prompt) }

// A CatalogReader exposes the synchronizer's current state to observers.
type CatalogReader interface {
	Products() []domain.Product
	Loading() bool
}
