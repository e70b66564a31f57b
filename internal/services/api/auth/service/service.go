// Package service contains the authentication workflows
package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"promptstash/internal/modkit/repokit"
	perr "promptstash/internal/platform/errors"
	"promptstash/internal/platform/logger"
	"promptstash/internal/platform/store"
	"promptstash/internal/services/api/auth/domain"
	"promptstash/internal/services/api/auth/repo"
)

// Config carries the auth knobs validated at startup
type Config struct {
	BotToken   string
	CookieName string
	SessionTTL time.Duration
	Env        string
}

// Dev reports whether the service runs in the development environment
func (c Config) Dev() bool { return c.Env == "dev" }

// Service defines the auth service contract
type Service interface {
	domain.ServicePort
}

// Svc implements the auth service
type Svc struct {
	Repo   repo.Repo
	binder repokit.Binder[repo.Repo]
	db     repokit.TxRunner
	cfg    Config
	audit  *Audit

	// seam for tests
	now func() time.Time
}

// New constructs an auth service
// sink may be nil, audit events are then dropped
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo], cfg Config, sink store.Clickhouse) *Svc {
	if db == nil {
		panic("auth.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("auth.Service requires a non nil Repo binder")
	}
	return &Svc{
		Repo:   binder.Bind(db),
		binder: binder,
		db:     db,
		cfg:    cfg,
		audit:  NewAudit(sink, logger.Named("auth.audit")),
		now:    time.Now,
	}
}

// Login verifies the widget assertion, upserts the identity, and issues a session
func (s *Svc) Login(ctx context.Context, in domain.LoginInput) (domain.AuthResponse, error) {
	if s.cfg.BotToken == "" {
		// fail closed, a missing secret must never mean skip verification
		return domain.AuthResponse{}, perr.Internalf("bot token is not configured")
	}

	now := s.now()
	if !domain.Verify(in.Fields(), in.Hash, s.cfg.BotToken, now) {
		s.audit.Record(ctx, EventLoginDenied, in.ID, "signature rejected")
		return domain.AuthResponse{}, perr.Unauthorizedf("invalid login payload")
	}

	identity, err := s.Repo.UpsertIdentity(ctx, repo.ProfilePatch{
		ID:        in.ID,
		Username:  in.Username,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		PhotoURL:  in.PhotoURL,
	})
	if err != nil {
		return domain.AuthResponse{}, perr.FromPostgres(err, "upsert identity")
	}

	token, err := domain.NewToken()
	if err != nil {
		return domain.AuthResponse{}, perr.Internalf("issue session: %v", err)
	}

	sess := domain.Session{
		ID:        uuid.NewString(),
		Token:     token,
		UserID:    identity.ID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.cfg.SessionTTL),
	}
	if err := s.Repo.CreateSession(ctx, sess); err != nil {
		return domain.AuthResponse{}, perr.FromPostgres(err, "create session")
	}

	s.audit.Record(ctx, EventLoginOK, identity.ID, "")
	return domain.AuthResponse{Token: token, User: domain.PublicProfile(identity)}, nil
}

// Logout revokes the session for token; absence is a normal outcome
func (s *Svc) Logout(ctx context.Context, token string) (bool, error) {
	if token == "" {
		return false, nil
	}
	// resolve first so the audit event can carry the owner, the revoke below
	// is still the only authority on existence
	var userID int64
	if id, _, ok, rerr := s.Repo.ResolveToken(ctx, token); rerr == nil && ok {
		userID = id.ID
	}

	existed, err := s.Repo.Revoke(ctx, token, s.now())
	if err != nil {
		return false, perr.FromPostgres(err, "revoke session")
	}
	if existed {
		s.audit.Record(ctx, EventLogout, userID, "")
	}
	return existed, nil
}

// Resolve returns the identity and session for a currently valid token
func (s *Svc) Resolve(ctx context.Context, token string) (domain.Identity, domain.Session, bool, error) {
	if token == "" {
		return domain.Identity{}, domain.Session{}, false, nil
	}
	id, sess, ok, err := s.Repo.ResolveToken(ctx, token)
	if err != nil {
		return domain.Identity{}, domain.Session{}, false, perr.FromPostgres(err, "resolve session")
	}
	return id, sess, ok, nil
}

// CookieName exposes the configured session cookie name
func (s *Svc) CookieName() string { return s.cfg.CookieName }
