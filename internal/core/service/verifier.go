package service

import (
	"context"
	"errors"
	"time"

	"github.com/freshcodes/identity-gateway/internal/core/domain"
	"github.com/freshcodes/identity-gateway/internal/core/ports"
)

// Verifier implements ports.UserVerifier over a UserRepository. Every
// operation is a single store round trip except GetOrCreateUser, which may
// perform two (lookup, then upsert on a miss).
type Verifier struct {
	repo ports.UserRepository
	now  func() time.Time
}

func NewVerifier(repo ports.UserRepository) *Verifier {
	return &Verifier{repo: repo, now: func() time.Time { return time.Now().UTC() }}
}

// GetUser resolves an identifier via a point lookup on the derived storage key.
func (v *Verifier) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	return v.repo.FindByKey(ctx, domain.StorageKey(userID))
}

// GetUserByUsername resolves a user by the username secondary field. When
// multiple documents match, the oldest one wins (repository sort contract).
func (v *Verifier) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	return v.repo.FindFirstByUsername(ctx, username)
}

// Exists reports whether the identifier resolves to a user. A not-found
// outcome is (false, nil); operational failures are returned alongside false
// so the caller can choose to collapse them.
func (v *Verifier) Exists(ctx context.Context, userID string) (bool, error) {
	_, err := v.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// CreateUser builds a user with defaults and writes it with upsert semantics:
// no prior-existence check, a second call with the same email silently
// replaces the document.
func (v *Verifier) CreateUser(ctx context.Context, p domain.NewUserParams) (*domain.User, error) {
	if p.Role != "" && !domain.ValidRole(p.Role) {
		return nil, domain.ErrInvalidRole
	}

	user := domain.NewUser(p, v.now())
	if err := v.repo.Upsert(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// GetOrCreateUser returns the existing user for the email, creating one on a
// not-found outcome. Two concurrent callers resolving the same miss will both
// upsert; the replace-with-upsert write makes the final document
// last-writer-wins. There is no concurrency guard here.
func (v *Verifier) GetOrCreateUser(ctx context.Context, p domain.NewUserParams) (*domain.User, error) {
	user, err := v.GetUser(ctx, p.Email)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}
	return v.CreateUser(ctx, p)
}

// VerifyRole reports whether the identifier resolves to a user holding one of
// the required roles. Absent user or role mismatch is (false, nil).
func (v *Verifier) VerifyRole(ctx context.Context, userID string, requiredRoles []string) (bool, error) {
	user, err := v.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return false, nil
		}
		return false, err
	}
	return user.HasRole(requiredRoles), nil
}

// UpdateRole patches only the role field of the stored document. Returns
// domain.ErrUserNotFound when no document matched the identifier.
func (v *Verifier) UpdateRole(ctx context.Context, userID, newRole string) error {
	if !domain.ValidRole(newRole) {
		return domain.ErrInvalidRole
	}
	return v.repo.PatchRole(ctx, domain.StorageKey(userID), newRole, v.now())
}
