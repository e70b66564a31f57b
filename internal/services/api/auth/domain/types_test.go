package domain

import (
	"context"
	"testing"
	"time"
)

func TestParseStatus(t *testing.T) {
	t.Parallel()

	for _, ok := range []string{"pending", "active", "blocked"} {
		if _, valid := ParseStatus(ok); !valid {
			t.Fatalf("ParseStatus(%q) should be valid", ok)
		}
	}
	for _, bad := range []string{"", "Active", "deleted", "banned"} {
		if _, valid := ParseStatus(bad); valid {
			t.Fatalf("ParseStatus(%q) should be rejected", bad)
		}
	}
}

func TestParseAccessLevel(t *testing.T) {
	t.Parallel()

	for _, ok := range []string{"admin", "tech", "user"} {
		if _, valid := ParseAccessLevel(ok); !valid {
			t.Fatalf("ParseAccessLevel(%q) should be valid", ok)
		}
	}
	for _, bad := range []string{"", "root", "Admin", "superuser"} {
		if _, valid := ParseAccessLevel(bad); valid {
			t.Fatalf("ParseAccessLevel(%q) should be rejected", bad)
		}
	}
}

func TestRoleFor(t *testing.T) {
	t.Parallel()

	if RoleFor(LevelAdmin) != "admin" {
		t.Fatalf("admin level should mirror the admin role")
	}
	if RoleFor(LevelTech) != "user" || RoleFor(LevelUser) != "user" {
		t.Fatalf("non admin levels should mirror the user role")
	}
}

func TestSession_ValidAt(t *testing.T) {
	t.Parallel()

	now := time.Now()
	s := Session{ExpiresAt: now.Add(time.Hour)}
	if !s.ValidAt(now) {
		t.Fatalf("unrevoked unexpired session should be valid")
	}
	if s.ValidAt(now.Add(2 * time.Hour)) {
		t.Fatalf("expired session should be invalid")
	}
	rev := now
	s.RevokedAt = &rev
	if s.ValidAt(now) {
		t.Fatalf("revoked session should be invalid")
	}
}

func TestWithAuth_RoundTrip(t *testing.T) {
	t.Parallel()

	ctx := WithAuth(context.Background(), Identity{ID: 9, Username: "ada"}, Session{ID: "s1", UserID: 9})

	id, ok := IdentityFrom(ctx)
	if !ok || id.ID != 9 || id.Username != "ada" {
		t.Fatalf("IdentityFrom mismatch: %+v ok=%v", id, ok)
	}
	sess, ok := SessionFrom(ctx)
	if !ok || sess.ID != "s1" {
		t.Fatalf("SessionFrom mismatch: %+v ok=%v", sess, ok)
	}

	if _, ok := IdentityFrom(context.Background()); ok {
		t.Fatalf("empty context should carry no identity")
	}
}
