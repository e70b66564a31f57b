package domain

import "context"

// ServicePort is consumed by handlers
type ServicePort interface {
	List(ctx context.Context, q ListQuery) ([]PromptOut, error)
	GetBySlug(ctx context.Context, slug string) (PromptOut, error)
	Create(ctx context.Context, in CreateInput) (PromptOut, error)
	Update(ctx context.Context, slug string, in UpdateInput) (PromptOut, error)
	Delete(ctx context.Context, slug string) error
	ListVersions(ctx context.Context, promptID int64) ([]VersionOut, error)
	GetVersion(ctx context.Context, promptID, versionID int64) (VersionOut, error)
}
