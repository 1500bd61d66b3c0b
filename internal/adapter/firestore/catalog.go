package firestore

import (
	"context"
	"fmt"

	fs "cloud.google.com/go/firestore"
	"github.com/2loga/logbeauty/internal/core/domain"
	"github.com/2loga/logbeauty/internal/core/port"
)

var _ port.CatalogStore = (*CatalogStore)(nil)

// A CatalogStore adapts a Firestore collection to the catalog store port.
// Subscriptions order by name ascending; ties keep the store's own
// unspecified tie-break.
type CatalogStore struct {
	col *fs.CollectionRef
}

func NewCatalogStore(c Client, collection string) CatalogStore {
	return CatalogStore{col: c.cl.Collection(collection)}
}

func (s CatalogStore) Subscribe(ctx context.Context) (port.SnapshotStream, error) {
	const op = "CatalogStore.Subscribe"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	it := s.col.Query.OrderBy("name", fs.Asc).Snapshots(ctx)
	return snapshotStream{it}, nil
}

func (s CatalogStore) Add(
	ctx context.Context, fields domain.ProductFields,
) (string, error) {
	const op = "CatalogStore.Add"

	ref, _, err := s.col.Add(ctx, map[string]any(fields))
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return ref.ID, nil
}

func (s CatalogStore) Update(
	ctx context.Context, id string, fields domain.ProductFields,
) error {
	const op = "CatalogStore.Update"

	// Merge write: absent keys keep their stored values.
	_, err := s.col.Doc(id).Set(ctx, map[string]any(fields), fs.MergeAll)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s CatalogStore) Delete(ctx context.Context, id string) error {
	const op = "CatalogStore.Delete"

	if _, err := s.col.Doc(id).Delete(ctx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// A snapshotStream adapts the SDK's query snapshot iterator. Every event
// is a full materialization of the collection, not a diff.
type snapshotStream struct {
	it *fs.QuerySnapshotIterator
}

func (s snapshotStream) Next(ctx context.Context) ([]domain.ProductDocument, error) {
	const op = "snapshotStream.Next"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	snap, err := s.it.Next()
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("%s: %w", op, ctxErr)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	docs, err := snap.Documents.GetAll()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	ds := make([]domain.ProductDocument, len(docs))
	for i, d := range docs {
		ds[i] = domain.ProductDocument{ID: d.Ref.ID, Fields: d.Data()}
	}
	return ds, nil
}

func (s snapshotStream) Stop() {
	s.it.Stop()
}
