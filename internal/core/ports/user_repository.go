package ports

import (
	"context"
	"time"

	"github.com/freshcodes/identity-gateway/internal/core/domain"
)

// UserRepository is the storage contract the verifier depends on. It maps
// one-to-one onto the four document-store primitives: point read, filtered
// scan, upsert, and partial patch. Implementations must return
// domain.ErrUserNotFound for a missing document and wrap any other store
// failure.
type UserRepository interface {
	// FindByKey performs a point lookup on the derived storage key.
	FindByKey(ctx context.Context, key string) (*domain.User, error)

	// FindFirstByUsername scans the collection for documents matching the
	// username and the user type discriminator, returning the oldest match
	// (ascending creation time) so the tie-break is deterministic.
	FindFirstByUsername(ctx context.Context, username string) (*domain.User, error)

	// Upsert creates the document or fully replaces an existing one.
	Upsert(ctx context.Context, user *domain.User) error

	// PatchRole mutates only the role and update timestamp of the document,
	// leaving every other field untouched.
	PatchRole(ctx context.Context, key, role string, updatedAt time.Time) error
}
