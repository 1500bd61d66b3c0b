package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/2loga/logbeauty/internal/core/domain"
	"github.com/2loga/logbeauty/internal/core/port"
)

var _ port.CatalogReader = (*CatalogSynchronizer)(nil)

// A CatalogSynchronizer keeps the live, ordered, in-memory product list
// consistent with the remote catalog store.
//
// It observes only: every delivered snapshot wholly replaces the local
// list, the list is never patched in place and never touched by mutations.
type CatalogSynchronizer struct {
	store port.CatalogStore

	mu       sync.RWMutex
	products []domain.Product
	loading  bool

	handlersMu sync.Mutex
	handlers   map[int]func([]domain.Product)
	nextHandle int
}

func NewCatalogSynchronizer(store port.CatalogStore) *CatalogSynchronizer {
	return &CatalogSynchronizer{
		store:    store,
		loading:  true,
		handlers: make(map[int]func([]domain.Product)),
	}
}

// Run subscribes to the product collection and pulls snapshots until ctx
// is done or the stream fails. On stream failure the loading spinner is
// stopped and the failure logged; there is no automatic retry.
func (s *CatalogSynchronizer) Run(ctx context.Context) {
	const op = "CatalogSynchronizer.Run"
	log := slog.With("op", op)

	stream, err := s.store.Subscribe(ctx)
	if err != nil {
		log.Error("failed to subscribe", "err", err)
		s.stopLoading()
		return
	}
	defer stream.Stop()

	log.Info("running")

	for {
		docs, err := stream.Next(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return
			}
			log.Error("subscription failed", "err", err)
			s.stopLoading()
			return
		}
		s.replace(docs)
	}
}

// Products returns a copy of the current list, in the store's delivery
// order for the name sort key.
func (s *CatalogSynchronizer) Products() []domain.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ps := make([]domain.Product, len(s.products))
	copy(ps, s.products)
	return ps
}

// Loading reports whether the first snapshot is still pending.
func (s *CatalogSynchronizer) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// OnSnapshot registers fn to be called with the new list after every
// replacement. The returned unsubscribe is idempotent.
func (s *CatalogSynchronizer) OnSnapshot(fn func([]domain.Product)) (unsubscribe func()) {
	s.handlersMu.Lock()
	defer s.handlersMu.Unlock()

	h := s.nextHandle
	s.nextHandle++
	s.handlers[h] = fn

	return func() {
		s.handlersMu.Lock()
		defer s.handlersMu.Unlock()
		delete(s.handlers, h)
	}
}

func (s *CatalogSynchronizer) replace(docs []domain.ProductDocument) {
	ps := make([]domain.Product, len(docs))
	for i, d := range docs {
		ps[i] = domain.ProductFromDocument(d)
	}

	s.mu.Lock()
	s.products = ps
	s.loading = false
	s.mu.Unlock()

	s.notify(ps)
}

func (s *CatalogSynchronizer) notify(ps []domain.Product) {
	s.handlersMu.Lock()
	defer s.handlersMu.Unlock()

	for _, fn := range s.handlers {
		fn(ps)
	}
}

func (s *CatalogSynchronizer) stopLoading() {
	s.mu.Lock()
	s.loading = false
	s.mu.Unlock()
}
