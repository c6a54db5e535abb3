package domain

import (
	"errors"
	"strings"
	"time"
)

// Roles form a closed set. There is no hierarchy; authorization is a plain
// membership test against the roles a route requires.
const (
	RoleUser      = "user" // base role assigned when none is given
	RoleAdmin     = "admin"
	RoleModerator = "moderator"
	RoleViewer    = "viewer"
)

// StorageKeyPrefix is prepended to the user identifier to form the document id.
const StorageKeyPrefix = "user_"

// DocType discriminates user documents from anything else sharing the collection.
const DocType = "user"

var (
	ErrUserNotFound = errors.New("user not found")
	ErrInvalidRole  = errors.New("invalid role")
)

// User is the transient projection of a stored user document. The document
// store is the sole source of truth; this shape is rebuilt on every read and
// never cached by the core.
//
// UserID is the opaque identity claim carried by the request header, typically
// an email address. It is trusted as-is — this system propagates identity, it
// does not verify credentials.
type User struct {
	UserID      string    `json:"user_id"`
	Email       string    `json:"email"`
	Username    string    `json:"username"`
	DisplayName string    `json:"display_name"`
	Role        string    `json:"role"`
	Active      bool      `json:"is_active"`
	Agents      []string  `json:"agents"`
	CreatedAt   time.Time `json:"created_at,omitempty"`
	UpdatedAt   time.Time `json:"updated_at,omitempty"`
}

// NewUserParams carries the caller-supplied fields for user construction.
// Every field except Email is optional and defaulted by NewUser.
type NewUserParams struct {
	Email       string
	Username    string
	DisplayName string
	Role        string
	Agents      []string
}

// NewUser builds a User with construction-time defaults applied:
// username falls back to the local part of the email, display name to the
// username then the email, role to RoleUser, active to true. Timestamps are
// caller-supplied, never generated here.
func NewUser(p NewUserParams, now time.Time) *User {
	u := &User{
		UserID:      p.Email,
		Email:       p.Email,
		Username:    p.Username,
		DisplayName: p.DisplayName,
		Role:        p.Role,
		Active:      true,
		Agents:      p.Agents,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	u.Normalize()
	return u
}

// Normalize fills defaults for any optional field left empty, mirroring the
// construction-time rules. Safe to call on records decoded from storage with
// missing keys.
func (u *User) Normalize() {
	if u.Username == "" {
		u.Username = localPart(u.Email)
	}
	if u.DisplayName == "" {
		if u.Username != "" {
			u.DisplayName = u.Username
		} else {
			u.DisplayName = u.Email
		}
	}
	if u.Role == "" {
		u.Role = RoleUser
	}
	if u.Agents == nil {
		u.Agents = []string{}
	}
}

// StorageKey derives the document id for an identifier.
func StorageKey(userID string) string {
	return StorageKeyPrefix + userID
}

// StorageKey returns the document id under which this user is stored.
func (u *User) StorageKey() string {
	return StorageKey(u.UserID)
}

// HasRole reports whether the user's role is in the required set.
// An empty required set means no restriction.
func (u *User) HasRole(required []string) bool {
	if len(required) == 0 {
		return true
	}
	for _, r := range required {
		if u.Role == r {
			return true
		}
	}
	return false
}

// ValidRole reports whether role belongs to the closed role set.
func ValidRole(role string) bool {
	switch role {
	case RoleUser, RoleAdmin, RoleModerator, RoleViewer:
		return true
	}
	return false
}

func localPart(email string) string {
	if at := strings.IndexByte(email, '@'); at >= 0 {
		return email[:at]
	}
	return email
}
