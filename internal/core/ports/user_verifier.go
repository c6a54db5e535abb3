package ports

import (
	"context"

	"github.com/freshcodes/identity-gateway/internal/core/domain"
)

// UserVerifier resolves identity claims against the user store. Failure
// surfacing is uniform across operations: domain.ErrUserNotFound is the typed
// not-found outcome, anything else is an operational error. Callers decide
// whether to collapse operational errors to a boolean.
type UserVerifier interface {
	GetUser(ctx context.Context, userID string) (*domain.User, error)
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)
	Exists(ctx context.Context, userID string) (bool, error)
	CreateUser(ctx context.Context, p domain.NewUserParams) (*domain.User, error)
	GetOrCreateUser(ctx context.Context, p domain.NewUserParams) (*domain.User, error)
	VerifyRole(ctx context.Context, userID string, requiredRoles []string) (bool, error)
	UpdateRole(ctx context.Context, userID, newRole string) error
}
