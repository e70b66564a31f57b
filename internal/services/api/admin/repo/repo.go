// Package repo provides postgres access for user administration
package repo

import (
	"context"

	"promptstash/internal/modkit/repokit"
	"promptstash/internal/platform/store"
	authdom "promptstash/internal/services/api/auth/domain"
)

// Repo is the persistence surface for user administration
type Repo interface {
	// ListUsers returns all identities, newest first
	ListUsers(ctx context.Context) ([]authdom.Identity, error)

	// UpdateUser applies status/level/role and reports whether the user exists
	UpdateUser(ctx context.Context, id int64, status, level, role string) (authdom.Identity, bool, error)
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

func scanIdentity(scan func(dest ...any) error) (authdom.Identity, error) {
	var (
		id            authdom.Identity
		status, level string
	)
	err := scan(
		&id.ID, &id.Username, &id.FirstName, &id.LastName, &id.PhotoURL,
		&id.Role, &status, &level, &id.CreatedAt, &id.LastLoginAt,
	)
	if err != nil {
		return authdom.Identity{}, err
	}
	id.Status = authdom.Status(status)
	id.AccessLevel = authdom.AccessLevel(level)
	return id, nil
}

func (r *queries) ListUsers(ctx context.Context) ([]authdom.Identity, error) {
	const sql = `
select id, username, first_name, last_name, photo_url, role, status::text, access_level::text, created_at, last_login_at
from users
order by created_at desc
`
	return store.Many(ctx, r.q, func(row store.Row) (authdom.Identity, error) {
		return scanIdentity(row.Scan)
	}, sql)
}

func (r *queries) UpdateUser(ctx context.Context, id int64, status, level, role string) (authdom.Identity, bool, error) {
	// empty strings leave the column untouched
	const sql = `
update users set
	status       = coalesce(nullif($2, '')::text, status),
	access_level = coalesce(nullif($3, '')::text, access_level),
	role         = coalesce(nullif($4, '')::text, role)
where id = $1
returning id, username, first_name, last_name, photo_url, role, status::text, access_level::text, created_at, last_login_at
`
	rows, err := r.q.Query(ctx, sql, id, status, level, role)
	if err != nil {
		return authdom.Identity{}, false, err
	}
	defer rows.Close()

	if !rows.Next() {
		return authdom.Identity{}, false, rows.Err()
	}
	out, err := scanIdentity(rows.Scan)
	if err != nil {
		return authdom.Identity{}, false, err
	}
	return out, true, rows.Err()
}
