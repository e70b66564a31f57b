// Package repo provides postgres access for prompts and their versions
package repo

import (
	"context"

	"promptstash/internal/modkit/repokit"
	"promptstash/internal/platform/store"
	"promptstash/internal/services/api/prompts/domain"
)

// Repo is the persistence surface for the prompt store
type Repo interface {
	List(ctx context.Context, folder, search string) ([]domain.Prompt, error)
	GetBySlug(ctx context.Context, slug string) (domain.Prompt, bool, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	Create(ctx context.Context, p domain.Prompt) (domain.Prompt, error)
	Update(ctx context.Context, slug string, name, content, folder string) (domain.Prompt, bool, error)
	Delete(ctx context.Context, slug string) (bool, error)

	AppendVersion(ctx context.Context, promptID int64, content string) (domain.Version, error)
	ListVersions(ctx context.Context, promptID int64) ([]domain.Version, error)
	GetVersion(ctx context.Context, promptID, versionID int64) (domain.Version, bool, error)
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

const promptCols = `id, name, slug, content, folder, created_at, updated_at`

func scanPrompt(scan func(dest ...any) error) (domain.Prompt, error) {
	var p domain.Prompt
	err := scan(&p.ID, &p.Name, &p.Slug, &p.Content, &p.Folder, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

func (r *queries) List(ctx context.Context, folder, search string) ([]domain.Prompt, error) {
	const sql = `
select ` + promptCols + `
from prompts
where ($1 = '' or folder = $1)
and ($2 = '' or name ilike '%' || $2 || '%' or content ilike '%' || $2 || '%')
order by name asc
`
	rows, err := r.q.Query(ctx, sql, folder, search)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Prompt
	for rows.Next() {
		p, err := scanPrompt(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *queries) GetBySlug(ctx context.Context, slug string) (domain.Prompt, bool, error) {
	const sql = `select ` + promptCols + ` from prompts where slug = $1`
	rows, err := r.q.Query(ctx, sql, slug)
	if err != nil {
		return domain.Prompt{}, false, err
	}
	defer rows.Close()

	if !rows.Next() {
		return domain.Prompt{}, false, rows.Err()
	}
	p, err := scanPrompt(rows.Scan)
	if err != nil {
		return domain.Prompt{}, false, err
	}
	return p, true, rows.Err()
}

func (r *queries) SlugExists(ctx context.Context, slug string) (bool, error) {
	n, err := store.Scalar[int64](ctx, r.q, `select count(1) from prompts where slug = $1`, slug)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *queries) Create(ctx context.Context, p domain.Prompt) (domain.Prompt, error) {
	const sql = `
insert into prompts (name, slug, content, folder, created_at, updated_at)
values ($1, $2, $3, $4, now(), now())
returning ` + promptCols
	row := r.q.QueryRow(ctx, sql, p.Name, p.Slug, p.Content, p.Folder)
	return scanPrompt(row.Scan)
}

func (r *queries) Update(ctx context.Context, slug, name, content, folder string) (domain.Prompt, bool, error) {
	const sql = `
update prompts set
	name       = coalesce(nullif($2, ''), name),
	content    = coalesce(nullif($3, ''), content),
	folder     = coalesce(nullif($4, ''), folder),
	updated_at = now()
where slug = $1
returning ` + promptCols
	rows, err := r.q.Query(ctx, sql, slug, name, content, folder)
	if err != nil {
		return domain.Prompt{}, false, err
	}
	defer rows.Close()

	if !rows.Next() {
		return domain.Prompt{}, false, rows.Err()
	}
	p, err := scanPrompt(rows.Scan)
	if err != nil {
		return domain.Prompt{}, false, err
	}
	return p, true, rows.Err()
}

func (r *queries) Delete(ctx context.Context, slug string) (bool, error) {
	tag, err := r.q.Exec(ctx, `delete from prompts where slug = $1`, slug)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *queries) AppendVersion(ctx context.Context, promptID int64, content string) (domain.Version, error) {
	const sql = `
insert into prompt_versions (prompt_id, version, content, created_at)
values ($1, (select coalesce(max(version), 0) + 1 from prompt_versions where prompt_id = $1), $2, now())
returning id, prompt_id, version, content, created_at
`
	var v domain.Version
	row := r.q.QueryRow(ctx, sql, promptID, content)
	err := row.Scan(&v.ID, &v.PromptID, &v.Version, &v.Content, &v.CreatedAt)
	return v, err
}

func (r *queries) ListVersions(ctx context.Context, promptID int64) ([]domain.Version, error) {
	const sql = `
select id, prompt_id, version, content, created_at
from prompt_versions
where prompt_id = $1
order by version desc
`
	rows, err := r.q.Query(ctx, sql, promptID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Version
	for rows.Next() {
		var v domain.Version
		if err := rows.Scan(&v.ID, &v.PromptID, &v.Version, &v.Content, &v.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (r *queries) GetVersion(ctx context.Context, promptID, versionID int64) (domain.Version, bool, error) {
	const sql = `
select id, prompt_id, version, content, created_at
from prompt_versions
where prompt_id = $1 and id = $2
`
	rows, err := r.q.Query(ctx, sql, promptID, versionID)
	if err != nil {
		return domain.Version{}, false, err
	}
	defer rows.Close()

	if !rows.Next() {
		return domain.Version{}, false, rows.Err()
	}
	var v domain.Version
	if err := rows.Scan(&v.ID, &v.PromptID, &v.Version, &v.Content, &v.CreatedAt); err != nil {
		return domain.Version{}, false, err
	}
	return v, true, rows.Err()
}
