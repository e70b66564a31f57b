// Package http provides http transport for user administration
package http

import (
	stdhttp "net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	perr "promptstash/internal/platform/errors"
	phttp "promptstash/internal/platform/net/http"
	"promptstash/internal/platform/net/http/bind"

	"promptstash/internal/modkit/httpkit"
	"promptstash/internal/services/api/admin/domain"
	svc "promptstash/internal/services/api/admin/service"
)

// Register mounts admin endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	httpkit.Get(r, "/users", h.listUsers)
	r.Patch("/users/{id}", h.updateUser)
}

type handlers struct{ svc svc.Service }

// swagger:route GET /admin/users Admin adminListUsers
// @Summary List identities, newest first
// @Tags Admin
// @Produce json
// @Success 200 {array} domain.UserRow "users"
// @Failure 403 "insufficient access level"
// @Router /admin/users [get]
func (h *handlers) listUsers(r *stdhttp.Request) (any, error) {
	return h.svc.ListUsers(r.Context())
}

// swagger:route PATCH /admin/users/{id} Admin adminUpdateUser
// @Summary Patch a user's status or access level
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path int true "User id"
// @Param payload body domain.UserUpdate true "Patch"
// @Success 200 {object} domain.UserRow "updated"
// @Failure 400 "unknown enum value"
// @Failure 404 "unknown user"
// @Router /admin/users/{id} [patch]
func (h *handlers) updateUser(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		phttp.RespondError(w, r, perr.Validationf("invalid user id"))
		return
	}
	in, err := bind.ParseJSON[domain.UserUpdate](r)
	if err != nil {
		phttp.RespondError(w, r, err)
		return
	}
	out, err := h.svc.UpdateUser(r.Context(), id, in)
	if err != nil {
		phttp.RespondError(w, r, err)
		return
	}
	phttp.RespondOK(w, r, out)
}
