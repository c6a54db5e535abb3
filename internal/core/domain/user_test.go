package domain

import (
	"testing"
	"time"
)

func TestNewUser_Defaults(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	u := NewUser(NewUserParams{Email: "a@b.com"}, now)

	if u.UserID != "a@b.com" {
		t.Fatalf("unexpected user id: %s", u.UserID)
	}
	if u.Username != "a" {
		t.Fatalf("expected username 'a', got %q", u.Username)
	}
	if u.DisplayName != "a" {
		t.Fatalf("expected display name 'a', got %q", u.DisplayName)
	}
	if u.Role != RoleUser {
		t.Fatalf("expected role %q, got %q", RoleUser, u.Role)
	}
	if !u.Active {
		t.Fatalf("expected active user")
	}
	if u.Agents == nil || len(u.Agents) != 0 {
		t.Fatalf("expected empty agents slice, got %v", u.Agents)
	}
	if !u.CreatedAt.Equal(now) || !u.UpdatedAt.Equal(now) {
		t.Fatalf("timestamps not caller-supplied: %v %v", u.CreatedAt, u.UpdatedAt)
	}
}

func TestNewUser_ExplicitFields(t *testing.T) {
	u := NewUser(NewUserParams{
		Email:       "carol@example.com",
		Username:    "cj",
		DisplayName: "Carol J.",
		Role:        RoleModerator,
		Agents:      []string{"agent-1"},
	}, time.Now().UTC())

	if u.Username != "cj" || u.DisplayName != "Carol J." || u.Role != RoleModerator {
		t.Fatalf("explicit fields overridden: %+v", u)
	}
	if len(u.Agents) != 1 || u.Agents[0] != "agent-1" {
		t.Fatalf("unexpected agents: %v", u.Agents)
	}
}

func TestNewUser_DisplayNameFallsBackToUsername(t *testing.T) {
	u := NewUser(NewUserParams{Email: "dave@example.com", Username: "dsmith"}, time.Now().UTC())
	if u.DisplayName != "dsmith" {
		t.Fatalf("expected display name from username, got %q", u.DisplayName)
	}
}

func TestNormalize_ToleratesMissingFields(t *testing.T) {
	u := &User{UserID: "e@f.org", Email: "e@f.org"}
	u.Normalize()

	if u.Username != "e" || u.Role != RoleUser || u.DisplayName != "e" {
		t.Fatalf("defaults not applied: %+v", u)
	}
	if u.Agents == nil {
		t.Fatalf("agents should be non-nil after normalize")
	}
}

func TestNormalize_NonEmailIdentifier(t *testing.T) {
	// The identity claim is opaque; a bare token without '@' is used verbatim.
	u := &User{UserID: "svc-batch-01", Email: "svc-batch-01"}
	u.Normalize()
	if u.Username != "svc-batch-01" {
		t.Fatalf("unexpected username: %q", u.Username)
	}
}

func TestStorageKey(t *testing.T) {
	if got := StorageKey("a@b.com"); got != "user_a@b.com" {
		t.Fatalf("unexpected storage key: %s", got)
	}
	u := &User{UserID: "a@b.com"}
	if u.StorageKey() != "user_a@b.com" {
		t.Fatalf("unexpected method storage key: %s", u.StorageKey())
	}
}

func TestHasRole(t *testing.T) {
	u := &User{Role: RoleViewer}
	if !u.HasRole(nil) {
		t.Fatalf("empty required set must allow")
	}
	if u.HasRole([]string{RoleAdmin}) {
		t.Fatalf("viewer must not pass admin check")
	}
	if !u.HasRole([]string{RoleAdmin, RoleViewer}) {
		t.Fatalf("viewer must pass when viewer is allowed")
	}
}

func TestValidRole(t *testing.T) {
	for _, r := range []string{RoleUser, RoleAdmin, RoleModerator, RoleViewer} {
		if !ValidRole(r) {
			t.Fatalf("expected %q to be valid", r)
		}
	}
	if ValidRole("superuser") {
		t.Fatalf("superuser must not be valid")
	}
}
