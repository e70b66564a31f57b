// Package service contains the user administration workflows
package service

import (
	"context"
	"fmt"

	"promptstash/internal/modkit/repokit"
	perr "promptstash/internal/platform/errors"
	"promptstash/internal/platform/logger"
	"promptstash/internal/platform/store"
	"promptstash/internal/services/api/admin/domain"
	"promptstash/internal/services/api/admin/repo"
	authdom "promptstash/internal/services/api/auth/domain"
	authsvc "promptstash/internal/services/api/auth/service"
)

// Service defines the admin service contract
type Service interface {
	domain.ServicePort
}

// Svc implements the admin service
type Svc struct {
	Repo   repo.Repo
	binder repokit.Binder[repo.Repo]
	db     repokit.TxRunner
	audit  *authsvc.Audit
}

// New constructs an admin service
// sink may be nil, audit events are then dropped
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo], sink store.Clickhouse) *Svc {
	if db == nil {
		panic("admin.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("admin.Service requires a non nil Repo binder")
	}
	return &Svc{
		Repo:   binder.Bind(db),
		binder: binder,
		db:     db,
		audit:  authsvc.NewAudit(sink, logger.Named("admin.audit")),
	}
}

// ListUsers returns all identities, newest first
func (s *Svc) ListUsers(ctx context.Context) ([]domain.UserRow, error) {
	ids, err := s.Repo.ListUsers(ctx)
	if err != nil {
		return nil, perr.FromPostgres(err, "list users")
	}
	out := make([]domain.UserRow, 0, len(ids))
	for _, id := range ids {
		out = append(out, domain.RowFromIdentity(id))
	}
	return out, nil
}

// UpdateUser patches status and access level for one identity
// unknown enum values are rejected before anything is written
func (s *Svc) UpdateUser(ctx context.Context, id int64, in domain.UserUpdate) (domain.UserRow, error) {
	var status, level, role string

	if in.Status != nil {
		st, ok := authdom.ParseStatus(*in.Status)
		if !ok {
			return domain.UserRow{}, perr.Validationf("unknown status %q", *in.Status)
		}
		status = string(st)
	}
	if in.AccessLevel != nil {
		lv, ok := authdom.ParseAccessLevel(*in.AccessLevel)
		if !ok {
			return domain.UserRow{}, perr.Validationf("unknown access_level %q", *in.AccessLevel)
		}
		level = string(lv)
		// keep the legacy role column mirrored to the access level
		role = authdom.RoleFor(lv)
	}

	// run under the acting admin so statement hooks see who made the change
	actorID, _ := store.ActorID(ctx)
	var (
		updated authdom.Identity
		found   bool
	)
	err := store.RunAsActor(ctx, s.db, actorID, func(ctx context.Context, q store.RowQuerier) error {
		var err error
		updated, found, err = s.binder.Bind(q).UpdateUser(ctx, id, status, level, role)
		return err
	})
	if err != nil {
		return domain.UserRow{}, perr.FromPostgres(err, "update user")
	}
	if !found {
		return domain.UserRow{}, perr.NotFoundf("user %d not found", id)
	}

	s.audit.Record(ctx, authsvc.EventAdminUpdate, id, fmt.Sprintf("status=%s access_level=%s", status, level))
	return domain.RowFromIdentity(updated), nil
}
