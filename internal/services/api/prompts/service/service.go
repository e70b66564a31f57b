// Package service contains the prompt store workflows
package service

import (
	"context"
	"fmt"

	"promptstash/internal/modkit/repokit"
	perr "promptstash/internal/platform/errors"
	"promptstash/internal/services/api/prompts/domain"
	"promptstash/internal/services/api/prompts/repo"
)

// slugAttempts bounds the uniqueness suffix search
const slugAttempts = 50

// Service defines the prompts service contract
type Service interface {
	domain.ServicePort
}

// Svc implements the prompts service
type Svc struct {
	Repo   repo.Repo
	binder repokit.Binder[repo.Repo]
	db     repokit.TxRunner
}

// New constructs a prompts service
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo]) *Svc {
	if db == nil {
		panic("prompts.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("prompts.Service requires a non nil Repo binder")
	}
	return &Svc{Repo: binder.Bind(db), binder: binder, db: db}
}

// List returns prompts filtered by folder and search text, ordered by name
func (s *Svc) List(ctx context.Context, q domain.ListQuery) ([]domain.PromptOut, error) {
	rows, err := s.Repo.List(ctx, q.Folder, q.Search)
	if err != nil {
		return nil, perr.FromPostgres(err, "list prompts")
	}
	out := make([]domain.PromptOut, 0, len(rows))
	for _, p := range rows {
		out = append(out, domain.Out(p))
	}
	return out, nil
}

// GetBySlug returns one prompt by its slug
func (s *Svc) GetBySlug(ctx context.Context, slug string) (domain.PromptOut, error) {
	p, found, err := s.Repo.GetBySlug(ctx, slug)
	if err != nil {
		return domain.PromptOut{}, perr.FromPostgres(err, "get prompt")
	}
	if !found {
		return domain.PromptOut{}, perr.NotFoundf("prompt %q not found", slug)
	}
	return domain.Out(p), nil
}

// Create stores a prompt under a unique slug and records its first version
func (s *Svc) Create(ctx context.Context, in domain.CreateInput) (domain.PromptOut, error) {
	var created domain.Prompt
	err := s.db.Tx(ctx, func(q repokit.Queryer) error {
		r := s.binder.Bind(q)

		slug, err := s.uniqueSlug(ctx, r, domain.Slugify(in.Name))
		if err != nil {
			return err
		}

		created, err = r.Create(ctx, domain.Prompt{
			Name:    in.Name,
			Slug:    slug,
			Content: in.Content,
			Folder:  in.Folder,
		})
		if err != nil {
			return err
		}

		_, err = r.AppendVersion(ctx, created.ID, created.Content)
		return err
	})
	if err != nil {
		return domain.PromptOut{}, perr.FromPostgres(err, "create prompt")
	}
	return domain.Out(created), nil
}

// Update patches a prompt; a content change appends a new version
func (s *Svc) Update(ctx context.Context, slug string, in domain.UpdateInput) (domain.PromptOut, error) {
	var updated domain.Prompt
	err := s.db.Tx(ctx, func(q repokit.Queryer) error {
		r := s.binder.Bind(q)

		before, found, err := r.GetBySlug(ctx, slug)
		if err != nil {
			return err
		}
		if !found {
			return perr.NotFoundf("prompt %q not found", slug)
		}

		updated, found, err = r.Update(ctx, slug, in.Name, in.Content, in.Folder)
		if err != nil {
			return err
		}
		if !found {
			return perr.NotFoundf("prompt %q not found", slug)
		}

		if in.Content != "" && in.Content != before.Content {
			if _, err := r.AppendVersion(ctx, updated.ID, updated.Content); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if perr.IsCode(err, perr.ErrorCodeNotFound) {
			return domain.PromptOut{}, err
		}
		return domain.PromptOut{}, perr.FromPostgres(err, "update prompt")
	}
	return domain.Out(updated), nil
}

// Delete removes a prompt by slug
func (s *Svc) Delete(ctx context.Context, slug string) error {
	found, err := s.Repo.Delete(ctx, slug)
	if err != nil {
		return perr.FromPostgres(err, "delete prompt")
	}
	if !found {
		return perr.NotFoundf("prompt %q not found", slug)
	}
	return nil
}

// ListVersions returns all versions of a prompt, newest first
func (s *Svc) ListVersions(ctx context.Context, promptID int64) ([]domain.VersionOut, error) {
	rows, err := s.Repo.ListVersions(ctx, promptID)
	if err != nil {
		return nil, perr.FromPostgres(err, "list versions")
	}
	out := make([]domain.VersionOut, 0, len(rows))
	for _, v := range rows {
		out = append(out, domain.VersionView(v))
	}
	return out, nil
}

// GetVersion returns one version of a prompt
func (s *Svc) GetVersion(ctx context.Context, promptID, versionID int64) (domain.VersionOut, error) {
	v, found, err := s.Repo.GetVersion(ctx, promptID, versionID)
	if err != nil {
		return domain.VersionOut{}, perr.FromPostgres(err, "get version")
	}
	if !found {
		return domain.VersionOut{}, perr.NotFoundf("version %d not found", versionID)
	}
	return domain.VersionView(v), nil
}

// uniqueSlug probes base, base-2, base-3, ... until a free slug is found
func (s *Svc) uniqueSlug(ctx context.Context, r repo.Repo, base string) (string, error) {
	slug := base
	for i := 2; i <= slugAttempts; i++ {
		exists, err := r.SlugExists(ctx, slug)
		if err != nil {
			return "", err
		}
		if !exists {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, i)
	}
	return "", perr.Conflictf("could not derive a unique slug for %q", base)
}
