package domain

import (
	"strings"
	"testing"
	"time"
)

func newTestSession() *Session {
	now := time.Now()
	return &Session{
		ID:               "s-1",
		UserID:           42,
		Token:            "opaque",
		RefreshToken:     "opaque-refresh",
		ExpiresAt:        now.Add(24 * time.Hour),
		RefreshExpiresAt: now.Add(7 * 24 * time.Hour),
		IsActive:         true,
		LastAccessedAt:   now,
	}
}

func TestSessionIsValid(t *testing.T) {
	s := newTestSession()
	if !s.IsValid() {
		t.Fatal("fresh session should be valid")
	}

	expired := newTestSession()
	expired.ExpiresAt = time.Now().Add(-time.Minute)
	if expired.IsValid() {
		t.Error("expired session should not be valid")
	}

	inactive := newTestSession()
	inactive.IsActive = false
	if inactive.IsValid() {
		t.Error("inactive session should not be valid")
	}
}

func TestSessionRevoke(t *testing.T) {
	s := newTestSession()
	s.Revoke("Logged out", "user")

	if s.IsValid() {
		t.Error("revoked session should not be valid")
	}
	if s.CanRefresh() {
		t.Error("revoked session should not be refreshable")
	}
	if s.RevokedAt == nil {
		t.Error("RevokedAt should be set")
	}
	if s.RevokedReason != "Logged out" || s.RevokedBy != "user" {
		t.Errorf("unexpected revocation metadata: %q by %q", s.RevokedReason, s.RevokedBy)
	}
}

func TestSessionCanRefreshAfterAccessExpiry(t *testing.T) {
	// Access expiry alone does not block refresh; only the refresh window does.
	s := newTestSession()
	s.ExpiresAt = time.Now().Add(-time.Minute)

	if s.IsValid() {
		t.Error("session past access expiry should not be valid")
	}
	if !s.CanRefresh() {
		t.Error("session within refresh window should be refreshable")
	}

	s.RefreshExpiresAt = time.Now().Add(-time.Minute)
	if s.CanRefresh() {
		t.Error("session past refresh window should not be refreshable")
	}
}

func TestSessionExtend(t *testing.T) {
	s := newTestSession()
	before := s.ExpiresAt
	s.Extend(48)
	if !s.ExpiresAt.After(before) {
		t.Error("extend should push expiry forward")
	}

	revoked := newTestSession()
	revoked.Revoke("Password reset", "system")
	frozen := revoked.ExpiresAt
	revoked.Extend(48)
	if !revoked.ExpiresAt.Equal(frozen) {
		t.Error("extend on a revoked session should be a no-op")
	}
}

func TestSessionTouch(t *testing.T) {
	s := newTestSession()
	s.LastAccessedAt = time.Now().Add(-time.Hour)
	s.Touch()
	if time.Since(s.LastAccessedAt) > time.Second {
		t.Error("touch should update LastAccessedAt to now")
	}
}

func TestTokenMaterial(t *testing.T) {
	now := time.Now()

	var empty TokenMaterial
	if !empty.IsZero() {
		t.Error("zero value should report IsZero")
	}
	if empty.Usable(now) {
		t.Error("zero value should not be usable")
	}

	live := TokenMaterial{Hash: "abc", ExpiresAt: now.Add(time.Hour)}
	if live.IsZero() {
		t.Error("populated material should not report IsZero")
	}
	if !live.Usable(now) {
		t.Error("unexpired material should be usable")
	}

	stale := TokenMaterial{Hash: "abc", ExpiresAt: now.Add(-time.Hour)}
	if stale.Usable(now) {
		t.Error("expired material should not be usable")
	}
}

func TestUserFullName(t *testing.T) {
	tests := []struct {
		first, last, want string
	}{
		{"Ana", "Souza", "Ana Souza"},
		{"Ana", "", "Ana"},
		{"", "Souza", "Souza"},
		{"", "", ""},
	}
	for _, tt := range tests {
		u := &User{FirstName: tt.first, LastName: tt.last}
		if got := u.FullName(); got != tt.want {
			t.Errorf("FullName(%q, %q) = %q, want %q", tt.first, tt.last, got, tt.want)
		}
	}
}

func TestNormalizeEmail(t *testing.T) {
	if got := NormalizeEmail("  Ana.Souza@Example.COM  "); got != "ana.souza@example.com" {
		t.Errorf("NormalizeEmail = %q", got)
	}
	if !strings.EqualFold(NormalizeEmail("A@B.C"), "a@b.c") {
		t.Error("normalized emails should compare equal case-insensitively")
	}
}
