//go:build integration_pg
// +build integration_pg

package repo

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"promptstash/internal/platform/store"
	"promptstash/internal/services/api/auth/domain"
)

func startPostgres(t *testing.T) (dsn string, stop func()) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)

	req := tc.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "postgres",
			"POSTGRES_PASSWORD": "postgres",
			"POSTGRES_DB":       "postgres",
		},
		WaitingFor: wait.ForAll(
			wait.ForListeningPort("5432/tcp"),
			wait.ForLog("database system is ready to accept connections"),
		).WithDeadline(2 * time.Minute),
	}
	c, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		cancel()
		t.Fatalf("failed to start postgres container: %v", err)
	}

	host, err := c.Host(ctx)
	if err != nil {
		_ = c.Terminate(context.Background())
		cancel()
		t.Fatalf("failed to get container host: %v", err)
	}
	mp, err := c.MappedPort(ctx, "5432/tcp")
	if err != nil {
		_ = c.Terminate(context.Background())
		cancel()
		t.Fatalf("failed to get mapped port: %v", err)
	}

	dsn = fmt.Sprintf("postgres://postgres:postgres@%s:%s/postgres?sslmode=disable", host, mp.Port())
	stop = func() {
		_ = c.Terminate(context.Background())
		cancel()
	}
	return dsn, stop
}

const authSchema = `
create table if not exists users (
	id            bigint primary key,
	username      text not null default '',
	first_name    text not null default '',
	last_name     text not null default '',
	photo_url     text not null default '',
	role          text not null default 'user',
	status        text not null default 'pending',
	access_level  text not null default 'user',
	created_at    timestamptz not null default now(),
	last_login_at timestamptz
);
create table if not exists sessions (
	id         text primary key,
	token      text not null unique,
	user_id    bigint not null references users (id),
	created_at timestamptz not null,
	expires_at timestamptz not null,
	revoked_at timestamptz
);
`

func openRepo(t *testing.T, ctx context.Context, dsn string) (Repo, store.TxRunner) {
	t.Helper()

	s, err := store.Open(ctx, store.Config{PG: store.PGConfig{Enabled: true, URL: dsn, MaxConns: 2}})
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close(context.Background()) })

	if _, err := s.PG.Exec(ctx, authSchema); err != nil {
		t.Fatalf("create schema: %v", err)
	}
	return NewPG().Bind(s.PG), s.PG
}

func TestUpsertIdentity_Integration(t *testing.T) {
	dsn, stop := startPostgres(t)
	defer stop()

	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	r, pg := openRepo(t, ctx, dsn)

	id, err := r.UpsertIdentity(ctx, ProfilePatch{ID: 42, Username: "ada", FirstName: "Ada"})
	if err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	if id.Status != domain.StatusPending || id.AccessLevel != domain.LevelUser || id.Role != "user" {
		t.Fatalf("first sight defaults wrong: %+v", id)
	}
	if id.LastLoginAt == nil {
		t.Fatalf("first sight should stamp last_login_at")
	}

	// an operator promotes the account out of band
	if _, err := pg.Exec(ctx, `update users set status = 'active', access_level = 'admin', role = 'admin' where id = 42`); err != nil {
		t.Fatalf("promote: %v", err)
	}

	// a later login refreshes the profile but never touches the grants
	again, err := r.UpsertIdentity(ctx, ProfilePatch{ID: 42, Username: "", FirstName: "Ada L."})
	if err != nil {
		t.Fatalf("second upsert: %v", err)
	}
	if again.Status != domain.StatusActive || again.AccessLevel != domain.LevelAdmin || again.Role != "admin" {
		t.Fatalf("login must not reset grants: %+v", again)
	}
	if again.Username != "ada" {
		t.Fatalf("empty username must not erase the stored one, got %q", again.Username)
	}
	if again.FirstName != "Ada L." {
		t.Fatalf("non empty fields should refresh, got %q", again.FirstName)
	}
}

func TestSessionLifecycle_Integration(t *testing.T) {
	dsn, stop := startPostgres(t)
	defer stop()

	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	r, _ := openRepo(t, ctx, dsn)

	if _, err := r.UpsertIdentity(ctx, ProfilePatch{ID: 7, Username: "ada"}); err != nil {
		t.Fatalf("seed user: %v", err)
	}

	now := time.Now()
	live := domain.Session{
		ID: uuid.NewString(), Token: "tok-live", UserID: 7,
		CreatedAt: now, ExpiresAt: now.Add(time.Hour),
	}
	expired := domain.Session{
		ID: uuid.NewString(), Token: "tok-expired", UserID: 7,
		CreatedAt: now.Add(-2 * time.Hour), ExpiresAt: now.Add(-time.Hour),
	}
	for _, s := range []domain.Session{live, expired} {
		if err := r.CreateSession(ctx, s); err != nil {
			t.Fatalf("create session %s: %v", s.Token, err)
		}
	}

	id, sess, ok, err := r.ResolveToken(ctx, "tok-live")
	if err != nil || !ok {
		t.Fatalf("resolve live = (%v, %v)", ok, err)
	}
	if id.ID != 7 || sess.UserID != 7 || sess.Token != "tok-live" {
		t.Fatalf("resolve mismatch: id=%+v sess=%+v", id, sess)
	}

	if _, _, ok, err := r.ResolveToken(ctx, "tok-expired"); err != nil || ok {
		t.Fatalf("expired token resolve = (%v, %v), want (false, nil)", ok, err)
	}
	if _, _, ok, err := r.ResolveToken(ctx, "tok-never-issued"); err != nil || ok {
		t.Fatalf("unknown token resolve = (%v, %v), want (false, nil)", ok, err)
	}

	// revocation is immediate and idempotent
	existed, err := r.Revoke(ctx, "tok-live", time.Now())
	if err != nil || !existed {
		t.Fatalf("first revoke = (%v, %v)", existed, err)
	}
	if _, _, ok, _ := r.ResolveToken(ctx, "tok-live"); ok {
		t.Fatalf("revoked token must not resolve")
	}
	firstStamp := revokedAt(t, ctx, r, "tok-live")

	existed, err = r.Revoke(ctx, "tok-live", time.Now().Add(time.Minute))
	if err != nil || !existed {
		t.Fatalf("second revoke = (%v, %v)", existed, err)
	}
	if got := revokedAt(t, ctx, r, "tok-live"); !got.Equal(firstStamp) {
		t.Fatalf("revoked_at moved on second revoke: %v -> %v", firstStamp, got)
	}

	existed, err = r.Revoke(ctx, "tok-never-issued", time.Now())
	if err != nil || existed {
		t.Fatalf("revoking an unknown token = (%v, %v), want (false, nil)", existed, err)
	}
}

func revokedAt(t *testing.T, ctx context.Context, r Repo, token string) time.Time {
	t.Helper()
	q := r.(*queries)
	var at *time.Time
	if err := q.q.QueryRow(ctx, `select revoked_at from sessions where token = $1`, token).Scan(&at); err != nil {
		t.Fatalf("read revoked_at: %v", err)
	}
	if at == nil {
		t.Fatalf("revoked_at not set for %s", token)
	}
	return *at
}
