// Package repo provides postgres access for identities and sessions
package repo

import (
	"context"
	"time"

	"promptstash/internal/modkit/repokit"
	"promptstash/internal/services/api/auth/domain"
)

// ProfilePatch carries the mutable profile attributes of a login assertion
type ProfilePatch struct {
	ID        int64
	Username  string
	FirstName string
	LastName  string
	PhotoURL  string
}

// Repo is the persistence surface for the auth workflows
type Repo interface {
	// UpsertIdentity creates the identity on first sight with pending status
	// and user access level; on later sightings it refreshes only non empty
	// profile fields and stamps last_login_at
	UpsertIdentity(ctx context.Context, in ProfilePatch) (domain.Identity, error)

	// CreateSession persists a freshly issued session
	CreateSession(ctx context.Context, s domain.Session) error

	// ResolveToken returns the session and owning identity for token when it
	// exists, is unrevoked, and is unexpired, as a single predicate
	ResolveToken(ctx context.Context, token string) (domain.Identity, domain.Session, bool, error)

	// Revoke stamps revoked_at for token and reports whether it existed
	Revoke(ctx context.Context, token string, now time.Time) (bool, error)
}

type (
	// PG is a binder that can bind the repo to a Queryer or TxRunner
	PG struct{}
	// queries implements the Repo interface
	queries struct{ q repokit.Queryer }
)

// NewPG returns a binder that can bind the repo to a Queryer or TxRunner
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind wires a Queryer to the repo
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

const identityCols = `
id, username, first_name, last_name, photo_url, role, status::text, access_level::text, created_at, last_login_at`

func scanIdentity(scan func(dest ...any) error) (domain.Identity, error) {
	var (
		id            domain.Identity
		status, level string
	)
	err := scan(
		&id.ID, &id.Username, &id.FirstName, &id.LastName, &id.PhotoURL,
		&id.Role, &status, &level, &id.CreatedAt, &id.LastLoginAt,
	)
	if err != nil {
		return domain.Identity{}, err
	}
	id.Status = domain.Status(status)
	id.AccessLevel = domain.AccessLevel(level)
	return id, nil
}

func (r *queries) UpsertIdentity(ctx context.Context, in ProfilePatch) (domain.Identity, error) {
	const sql = `
insert into users (id, username, first_name, last_name, photo_url, role, status, access_level, created_at, last_login_at)
values ($1, $2, $3, $4, $5, 'user', 'pending', 'user', now(), now())
on conflict (id) do update set
	username      = coalesce(nullif(excluded.username, ''), users.username),
	first_name    = coalesce(nullif(excluded.first_name, ''), users.first_name),
	last_name     = coalesce(nullif(excluded.last_name, ''), users.last_name),
	photo_url     = coalesce(nullif(excluded.photo_url, ''), users.photo_url),
	last_login_at = now()
returning ` + identityCols
	row := r.q.QueryRow(ctx, sql, in.ID, in.Username, in.FirstName, in.LastName, in.PhotoURL)
	return scanIdentity(row.Scan)
}

func (r *queries) CreateSession(ctx context.Context, s domain.Session) error {
	const sql = `
insert into sessions (id, token, user_id, created_at, expires_at)
values ($1, $2, $3, $4, $5)
`
	_, err := r.q.Exec(ctx, sql, s.ID, s.Token, s.UserID, s.CreatedAt, s.ExpiresAt)
	return err
}

func (r *queries) ResolveToken(ctx context.Context, token string) (domain.Identity, domain.Session, bool, error) {
	// validity is one predicate so a concurrent revoke cannot slip between
	// an existence check and a validity check
	const sql = `
select
	s.id, s.token, s.user_id, s.created_at, s.expires_at, s.revoked_at,
	u.id, u.username, u.first_name, u.last_name, u.photo_url, u.role,
	u.status::text, u.access_level::text, u.created_at, u.last_login_at
from sessions s
join users u on u.id = s.user_id
where s.token = $1 and s.revoked_at is null and s.expires_at > now()
`
	rows, err := r.q.Query(ctx, sql, token)
	if err != nil {
		return domain.Identity{}, domain.Session{}, false, err
	}
	defer rows.Close()

	if !rows.Next() {
		return domain.Identity{}, domain.Session{}, false, rows.Err()
	}

	var (
		sess          domain.Session
		id            domain.Identity
		status, level string
	)
	err = rows.Scan(
		&sess.ID, &sess.Token, &sess.UserID, &sess.CreatedAt, &sess.ExpiresAt, &sess.RevokedAt,
		&id.ID, &id.Username, &id.FirstName, &id.LastName, &id.PhotoURL, &id.Role,
		&status, &level, &id.CreatedAt, &id.LastLoginAt,
	)
	if err != nil {
		return domain.Identity{}, domain.Session{}, false, err
	}
	id.Status = domain.Status(status)
	id.AccessLevel = domain.AccessLevel(level)
	return id, sess, true, rows.Err()
}

func (r *queries) Revoke(ctx context.Context, token string, now time.Time) (bool, error) {
	// idempotent: an already revoked session still counts as existing
	const sql = `
update sessions set revoked_at = coalesce(revoked_at, $2) where token = $1
`
	tag, err := r.q.Exec(ctx, sql, token, now)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
