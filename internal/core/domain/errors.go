package domain

import "errors"

var (
	// ErrValidation marks malformed or missing form input. The operation
	// is never submitted to the remote store.
	ErrValidation = errors.New("invalid form input")

	// ErrUpload marks a blob upload failure. The enclosing mutation is
	// aborted with no partial state written.
	ErrUpload = errors.New("image upload failed")

	// ErrStore marks a remote catalog store failure on subscribe, create,
	// update or delete. Never retried automatically.
	ErrStore = errors.New("catalog store failure")

	// ErrAuth marks a wrong admin password. No lockout, no rate limit.
	ErrAuth = errors.New("wrong password")

	// ErrBusy marks a create or update attempted while another submission
	// is still in flight.
	ErrBusy = errors.New("submission in progress")
)
