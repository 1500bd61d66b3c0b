package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/2loga/logbeauty/internal/core/domain"
	"github.com/2loga/logbeauty/internal/core/port"
	"github.com/2loga/logbeauty/internal/core/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStream struct {
	snaps   chan []domain.ProductDocument
	errs    chan error
	stopped chan struct{}
}

func newFakeStream() *fakeStream {
	return &fakeStream{
		snaps:   make(chan []domain.ProductDocument),
		errs:    make(chan error),
		stopped: make(chan struct{}),
	}
}

func (s *fakeStream) Next(ctx context.Context) ([]domain.ProductDocument, error) {
	select {
	case docs := <-s.snaps:
		return docs, nil
	case err := <-s.errs:
		return nil, err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (s *fakeStream) Stop() {
	close(s.stopped)
}

type fakeCatalog struct {
	stream       *fakeStream
	subscribeErr error
}

func (c fakeCatalog) Subscribe(ctx context.Context) (port.SnapshotStream, error) {
	if c.subscribeErr != nil {
		return nil, c.subscribeErr
	}
	return c.stream, nil
}

func (c fakeCatalog) Add(context.Context, domain.ProductFields) (string, error) {
	return "", nil
}

func (c fakeCatalog) Update(context.Context, string, domain.ProductFields) error {
	return nil
}

func (c fakeCatalog) Delete(context.Context, string) error {
	return nil
}

func awaitSnapshot(t *testing.T, ch <-chan []domain.Product) []domain.Product {
	t.Helper()
	select {
	case ps := <-ch:
		return ps
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for snapshot")
		return nil
	}
}

func TestCatalogSynchronizer(t *testing.T) {

	t.Run("OrderFollowsStoreDelivery", func(t *testing.T) {
		stream := newFakeStream()
		s := service.NewCatalogSynchronizer(fakeCatalog{stream: stream})

		got := make(chan []domain.Product, 1)
		s.OnSnapshot(func(ps []domain.Product) { got <- ps })

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go s.Run(ctx)

		// Store delivers lexicographic name order: Aurora before Blush.
		stream.snaps <- []domain.ProductDocument{
			{ID: "a", Fields: map[string]any{
				"name": "Aurora", "price": float64(40),
				"rating": int64(5), "stock": int64(3), "isNew": true,
			}},
			{ID: "b", Fields: map[string]any{
				"name": "Blush", "price": 25.5,
				"rating": int64(4), "stock": int64(0), "isNew": false,
			}},
		}

		ps := awaitSnapshot(t, got)
		require.Len(t, ps, 2)
		assert.Equal(t, "Aurora", ps[0].Name)
		assert.Equal(t, "Blush", ps[1].Name)
		assert.False(t, ps[1].InStock())
		assert.False(t, s.Loading())

		local := s.Products()
		require.Len(t, local, 2)
		assert.Equal(t, ps, local)
	})

	t.Run("EmptyFirstSnapshotStopsLoading", func(t *testing.T) {
		stream := newFakeStream()
		s := service.NewCatalogSynchronizer(fakeCatalog{stream: stream})
		require.True(t, s.Loading())

		got := make(chan []domain.Product, 1)
		s.OnSnapshot(func(ps []domain.Product) { got <- ps })

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go s.Run(ctx)

		stream.snaps <- nil

		ps := awaitSnapshot(t, got)
		assert.Empty(t, ps)
		assert.False(t, s.Loading())
	})

	t.Run("SnapshotReplacesWholesale", func(t *testing.T) {
		stream := newFakeStream()
		s := service.NewCatalogSynchronizer(fakeCatalog{stream: stream})

		got := make(chan []domain.Product, 1)
		s.OnSnapshot(func(ps []domain.Product) { got <- ps })

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go s.Run(ctx)

		stream.snaps <- []domain.ProductDocument{
			{ID: "a", Fields: map[string]any{"name": "Aurora"}},
			{ID: "b", Fields: map[string]any{"name": "Blush"}},
		}
		awaitSnapshot(t, got)

		stream.snaps <- []domain.ProductDocument{
			{ID: "b", Fields: map[string]any{"name": "Blush"}},
		}
		ps := awaitSnapshot(t, got)

		require.Len(t, ps, 1)
		assert.Equal(t, "Blush", ps[0].Name)
		assert.Len(t, s.Products(), 1)
	})

	t.Run("StreamErrorStopsWithoutRetry", func(t *testing.T) {
		stream := newFakeStream()
		s := service.NewCatalogSynchronizer(fakeCatalog{stream: stream})

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		done := make(chan struct{})
		go func() {
			s.Run(ctx)
			close(done)
		}()

		stream.errs <- errors.New("connection reset")

		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("synchronizer kept running after stream error")
		}

		assert.False(t, s.Loading())

		select {
		case <-stream.stopped:
		default:
			t.Fatal("stream was not stopped")
		}
	})

	t.Run("SubscribeErrorStopsLoading", func(t *testing.T) {
		s := service.NewCatalogSynchronizer(
			fakeCatalog{subscribeErr: errors.New("unavailable")},
		)

		s.Run(context.Background())

		assert.False(t, s.Loading())
		assert.Empty(t, s.Products())
	})

	t.Run("CancelStopsStream", func(t *testing.T) {
		stream := newFakeStream()
		s := service.NewCatalogSynchronizer(fakeCatalog{stream: stream})

		ctx, cancel := context.WithCancel(context.Background())

		done := make(chan struct{})
		go func() {
			s.Run(ctx)
			close(done)
		}()

		cancel()

		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("synchronizer did not stop on cancellation")
		}

		select {
		case <-stream.stopped:
		default:
			t.Fatal("stream was not stopped")
		}
	})

	t.Run("UnsubscribeStopsNotifications", func(t *testing.T) {
		stream := newFakeStream()
		s := service.NewCatalogSynchronizer(fakeCatalog{stream: stream})

		kept := make(chan []domain.Product, 2)
		removed := make(chan []domain.Product, 2)
		s.OnSnapshot(func(ps []domain.Product) { kept <- ps })
		unsubscribe := s.OnSnapshot(func(ps []domain.Product) { removed <- ps })

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go s.Run(ctx)

		stream.snaps <- []domain.ProductDocument{
			{ID: "a", Fields: map[string]any{"name": "Aurora"}},
		}
		awaitSnapshot(t, kept)
		awaitSnapshot(t, removed)

		unsubscribe()
		unsubscribe() // idempotent

		stream.snaps <- nil
		awaitSnapshot(t, kept)

		select {
		case <-removed:
			t.Fatal("unsubscribed handler was notified")
		default:
		}
	})
}
