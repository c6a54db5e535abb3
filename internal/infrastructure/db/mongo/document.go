package mongo

import (
	"time"

	"github.com/freshcodes/identity-gateway/internal/core/domain"
)

// userDocument is the flat storage representation of a user. Field names match
// the documents written by earlier deployments, so decoding must tolerate
// missing keys: IsActive is a pointer so an absent flag reads as true, and
// every other optional field is re-defaulted in toUser.
type userDocument struct {
	ID          string     `bson:"_id"`
	Type        string     `bson:"type"`
	UserID      string     `bson:"user_id"`
	Email       string     `bson:"email"`
	Username    string     `bson:"username,omitempty"`
	Role        string     `bson:"role,omitempty"`
	DisplayName string     `bson:"display_name,omitempty"`
	IsActive    *bool      `bson:"is_active,omitempty"`
	Agents      []string   `bson:"agents"`
	CreatedAt   *time.Time `bson:"created_at,omitempty"`
	UpdatedAt   *time.Time `bson:"updated_at,omitempty"`
}

// newUserDocument maps a user to its storage shape. Pure, no failure modes.
func newUserDocument(u *domain.User) userDocument {
	doc := userDocument{
		ID:          u.StorageKey(),
		Type:        domain.DocType,
		UserID:      u.UserID,
		Email:       u.Email,
		Username:    u.Username,
		Role:        u.Role,
		DisplayName: u.DisplayName,
		IsActive:    &u.Active,
		Agents:      u.Agents,
	}
	if !u.CreatedAt.IsZero() {
		created := u.CreatedAt.UTC()
		doc.CreatedAt = &created
	}
	if !u.UpdatedAt.IsZero() {
		updated := u.UpdatedAt.UTC()
		doc.UpdatedAt = &updated
	}
	return doc
}

// toUser is the inverse mapping, substituting defaults for absent fields.
// It never fails on malformed input beyond what defaulting already covers.
func (d userDocument) toUser() *domain.User {
	u := &domain.User{
		UserID:      d.UserID,
		Email:       d.Email,
		Username:    d.Username,
		DisplayName: d.DisplayName,
		Role:        d.Role,
		Active:      d.IsActive == nil || *d.IsActive,
		Agents:      d.Agents,
	}
	if d.CreatedAt != nil {
		u.CreatedAt = d.CreatedAt.UTC()
	}
	if d.UpdatedAt != nil {
		u.UpdatedAt = d.UpdatedAt.UTC()
	}
	u.Normalize()
	return u
}
