package localstate

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/2loga/logbeauty/internal/core/port"
	"github.com/cockroachdb/pebble"
)

var _ port.FlagStore = (*FlagStore)(nil)

// A FlagStore is the client-local persistence analogue of the original
// storefront's localStorage: a small on-disk key-value store scoped to
// this client instance, surviving process restarts until explicitly
// cleared.
type FlagStore struct {
	db *pebble.DB
}

func NewFlagStore(dir string) (*FlagStore, error) {
	const op = "localstate.NewFlagStore"

	db, err := pebble.Open(filepath.Clean(dir), &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &FlagStore{db}, nil
}

func (s *FlagStore) Get(key string) (string, bool, error) {
	const op = "FlagStore.Get"

	v, closer, err := s.db.Get([]byte(key))
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("%s: %w", op, err)
	}
	defer closer.Close()

	return string(v), true, nil
}

func (s *FlagStore) Set(key, value string) error {
	const op = "FlagStore.Set"

	if err := s.db.Set([]byte(key), []byte(value), pebble.Sync); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *FlagStore) Delete(key string) error {
	const op = "FlagStore.Delete"

	if err := s.db.Delete([]byte(key), pebble.Sync); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *FlagStore) Close() error {
	const op = "FlagStore.Close"
	log := slog.With("op", op)

	if err := s.db.Close(); err != nil {
		log.Error("failed to close local state", "err", err)
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
