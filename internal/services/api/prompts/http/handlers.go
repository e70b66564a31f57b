// Package http provides http transport for the prompt store
package http

import (
	stdhttp "net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	perr "promptstash/internal/platform/errors"
	phttp "promptstash/internal/platform/net/http"
	"promptstash/internal/platform/net/http/bind"

	"promptstash/internal/modkit/httpkit"
	"promptstash/internal/services/api/prompts/domain"
	svc "promptstash/internal/services/api/prompts/service"
)

// Register mounts prompt endpoints on the given router
// mutate must wrap handlers with the content-mutation authorization policy
func Register(r httpkit.Router, s svc.Service, mutate func(stdhttp.Handler) stdhttp.Handler) {
	h := &handlers{svc: s}

	// one param name for the first segment: the router rejects mixed keys
	// at the same position, so version routes parse {slug} as the numeric id
	httpkit.Get(r, "/", h.list)
	httpkit.Get(r, "/{slug}", h.getBySlug)
	httpkit.Get(r, "/{slug}/versions", h.listVersions)
	httpkit.Get(r, "/{slug}/versions/{versionID}", h.getVersion)

	r.Group(func(mr httpkit.Router) {
		mr.Use(mutate)
		mr.Post("/", h.create)
		mr.Put("/{slug}", h.update)
		mr.Delete("/{slug}", h.del)
	})
}

type handlers struct{ svc svc.Service }

// swagger:route GET /prompts Prompts promptsList
// @Summary List prompts with optional folder and search filters
// @Tags Prompts
// @Produce json
// @Param folder query string false "Folder filter"
// @Param search query string false "Name and content substring search"
// @Success 200 {array} domain.PromptOut "prompts"
// @Router /prompts [get]
func (h *handlers) list(r *stdhttp.Request) (any, error) {
	q := domain.ListQuery{
		Folder: r.URL.Query().Get("folder"),
		Search: r.URL.Query().Get("search"),
	}
	return h.svc.List(r.Context(), q)
}

// swagger:route GET /prompts/{slug} Prompts promptsGet
// @Summary Get one prompt by slug
// @Tags Prompts
// @Produce json
// @Param slug path string true "Prompt slug"
// @Success 200 {object} domain.PromptOut "prompt"
// @Failure 404 "unknown slug"
// @Router /prompts/{slug} [get]
func (h *handlers) getBySlug(r *stdhttp.Request) (any, error) {
	return h.svc.GetBySlug(r.Context(), chi.URLParam(r, "slug"))
}

// swagger:route POST /prompts Prompts promptsCreate
// @Summary Create a prompt
// @Tags Prompts
// @Accept json
// @Produce json
// @Param payload body domain.CreateInput true "Prompt"
// @Success 201 {object} domain.PromptOut "created"
// @Router /prompts [post]
func (h *handlers) create(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	in, err := bind.ParseJSON[domain.CreateInput](r)
	if err != nil {
		phttp.RespondError(w, r, err)
		return
	}
	out, err := h.svc.Create(r.Context(), in)
	if err != nil {
		phttp.RespondError(w, r, err)
		return
	}
	phttp.RespondCreated(w, r, out)
}

// swagger:route PUT /prompts/{slug} Prompts promptsUpdate
// @Summary Update a prompt, appending a version on content change
// @Tags Prompts
// @Accept json
// @Produce json
// @Param slug path string true "Prompt slug"
// @Param payload body domain.UpdateInput true "Patch"
// @Success 200 {object} domain.PromptOut "updated"
// @Failure 404 "unknown slug"
// @Router /prompts/{slug} [put]
func (h *handlers) update(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	in, err := bind.ParseJSON[domain.UpdateInput](r)
	if err != nil {
		phttp.RespondError(w, r, err)
		return
	}
	out, err := h.svc.Update(r.Context(), chi.URLParam(r, "slug"), in)
	if err != nil {
		phttp.RespondError(w, r, err)
		return
	}
	phttp.RespondOK(w, r, out)
}

// swagger:route DELETE /prompts/{slug} Prompts promptsDelete
// @Summary Delete a prompt
// @Tags Prompts
// @Param slug path string true "Prompt slug"
// @Success 204 "deleted"
// @Failure 404 "unknown slug"
// @Router /prompts/{slug} [delete]
func (h *handlers) del(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "slug")); err != nil {
		phttp.RespondError(w, r, err)
		return
	}
	phttp.RespondNoContent(w, r)
}

// swagger:route GET /prompts/{id}/versions Prompts promptsVersions
// @Summary List versions of a prompt, newest first
// @Tags Prompts
// @Produce json
// @Param id path int true "Prompt id"
// @Success 200 {array} domain.VersionOut "versions"
// @Router /prompts/{id}/versions [get]
func (h *handlers) listVersions(r *stdhttp.Request) (any, error) {
	id, err := promptID(r)
	if err != nil {
		return nil, err
	}
	return h.svc.ListVersions(r.Context(), id)
}

// swagger:route GET /prompts/{id}/versions/{versionID} Prompts promptsVersion
// @Summary Get one version of a prompt
// @Tags Prompts
// @Produce json
// @Param id path int true "Prompt id"
// @Param versionID path int true "Version id"
// @Success 200 {object} domain.VersionOut "version"
// @Failure 404 "unknown version"
// @Router /prompts/{id}/versions/{versionID} [get]
func (h *handlers) getVersion(r *stdhttp.Request) (any, error) {
	id, err := promptID(r)
	if err != nil {
		return nil, err
	}
	vid, err := strconv.ParseInt(chi.URLParam(r, "versionID"), 10, 64)
	if err != nil {
		return nil, perr.Validationf("invalid version id")
	}
	return h.svc.GetVersion(r.Context(), id, vid)
}

func promptID(r *stdhttp.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "slug"), 10, 64)
	if err != nil {
		return 0, perr.Validationf("invalid prompt id")
	}
	return id, nil
}
