package firestore

import (
	"context"
	"fmt"
	"log/slog"

	fs "cloud.google.com/go/firestore"
	"google.golang.org/api/option"
)

// A Client wraps the Firestore SDK client used by the catalog store.
type Client struct {
	cl *fs.Client
}

// NewClient connects to the hosted document database. credentialsFile may
// be empty, falling back to application default credentials.
func NewClient(
	ctx context.Context, projectID, credentialsFile string,
) (Client, error) {
	const op = "firestore.NewClient"
	log := slog.With("op", op)

	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	cl, err := fs.NewClient(ctx, projectID, opts...)
	if err != nil {
		return Client{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("document database client is ready", "project", projectID)
	return Client{cl}, nil
}

func (c Client) Close() {
	const op = "firestore.Client.Close"
	log := slog.With("op", op)

	log.Info("closing document database client...")
	if err := c.cl.Close(); err != nil {
		log.Error("failed to close", "err", err)
		return
	}
	log.Info("document database client is closed")
}
