package blob

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"cloud.google.com/go/storage"
	"github.com/2loga/logbeauty/internal/core/port"
	"google.golang.org/api/option"
)

var _ port.BlobStore = (*Store)(nil)

// A Store adapts a hosted storage bucket to the blob store port. Product
// images are written by key and resolved to a public URL afterwards.
type Store struct {
	cl     *storage.Client
	bucket string
}

// NewStore connects to the object storage bucket. credentialsFile may be
// empty, falling back to application default credentials.
func NewStore(
	ctx context.Context, bucket, credentialsFile string,
) (Store, error) {
	const op = "blob.NewStore"
	log := slog.With("op", op)

	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	cl, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return Store{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("blob store client is ready", "bucket", bucket)
	return Store{cl: cl, bucket: bucket}, nil
}

func (s Store) Upload(ctx context.Context, key string, data []byte) error {
	const op = "blob.Store.Upload"

	w := s.cl.Bucket(s.bucket).Object(key).NewWriter(ctx)
	if _, err := bytes.NewReader(data).WriteTo(w); err != nil {
		_ = w.Close()
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// URL resolves the object's public URL after a successful upload.
func (s Store) URL(ctx context.Context, key string) (string, error) {
	const op = "blob.Store.URL"

	attrs, err := s.cl.Bucket(s.bucket).Object(key).Attrs(ctx)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return attrs.MediaLink, nil
}

func (s Store) Close() {
	const op = "blob.Store.Close"
	log := slog.With("op", op)

	log.Info("closing blob store client...")
	if err := s.cl.Close(); err != nil {
		log.Error("failed to close", "err", err)
		return
	}
	log.Info("blob store client is closed")
}
