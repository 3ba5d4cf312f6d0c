package profile

import (
	"context"
	"errors"

	"doctqr-server/internal/models"
)

// Sentinel errors shared by the store and the resolver. Handlers match on
// these with errors.Is and map them onto HTTP statuses.
var (
	// ErrNotFound means no profile exists for the given key. It is a normal
	// outcome, not a failure: on the account path it distinguishes create
	// from update, on the public path it is the answer for any unknown or
	// mistyped token.
	ErrNotFound = errors.New("medical profile not found")

	// ErrUnavailable wraps transient storage failures. Safe for the caller
	// to retry with backoff.
	ErrUnavailable = errors.New("profile store unavailable")

	// ErrPublicIDTaken means an insert hit the unique index on public_id.
	// Never surfaced outside the resolver, which mints a fresh token and
	// retries a bounded number of times.
	ErrPublicIDTaken = errors.New("public id already in use")

	// ErrAccountTaken means an insert hit the unique index on user_id:
	// a concurrent first-time publish for the same account won the race.
	// The resolver converts this into an update of the winner's row.
	ErrAccountTaken = errors.New("account already has a medical profile")

	// ErrInvalidInput marks a payload rejected before any store call.
	ErrInvalidInput = errors.New("invalid medical data")
)

// Store is durable keyed storage for MedicalProfile documents.
type Store interface {
	// FindByAccount returns the profile owned by the given account, or
	// ErrNotFound.
	FindByAccount(ctx context.Context, accountID string) (*models.MedicalProfile, error)

	// FindByPublicID returns the profile behind a public token. Exact match
	// only - no prefix or fuzzy lookup, so tokens cannot be enumerated by
	// partial guesses. Returns ErrNotFound for anything unknown.
	FindByPublicID(ctx context.Context, publicID string) (*models.MedicalProfile, error)

	// Upsert inserts the profile when it has no row yet (empty ID) and
	// otherwise replaces its clinical fields in place, preserving PublicID,
	// UserID and CreatedAt. Inserts report ErrPublicIDTaken or
	// ErrAccountTaken when they lose against a unique index.
	Upsert(ctx context.Context, p *models.MedicalProfile) error
}

// AccountReader is the minimal view of the users table the resolver needs to
// join a display name onto a public profile. The full account record (email,
// credential hash) never crosses this boundary into the read path.
type AccountReader interface {
	FindByID(ctx context.Context, accountID string) (*models.User, error)
}
