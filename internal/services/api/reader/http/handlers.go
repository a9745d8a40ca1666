// Package http provides http transport for reader
package http

import (
	stdhttp "net/http"

	"github.com/go-chi/chi/v5"

	"newsstand/internal/modkit/httpkit"
	perr "newsstand/internal/platform/errors"
	pnet "newsstand/internal/platform/net"
	"newsstand/internal/services/api/reader/domain"
	svc "newsstand/internal/services/api/reader/service"
)

// Register mounts reader endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	httpkit.Get(r, "/items/{id}/access", h.access)
	httpkit.PostJSON[domain.OpenInput](r, "/open", h.open)
	httpkit.PostJSON[domain.NavigateInput](r, "/navigate", h.navigate)
	httpkit.Get(r, "/position", h.position)
	httpkit.Get(r, "/quota", h.quota)
	httpkit.PostJSON[domain.CompleteInput](r, "/complete", h.complete)
}

type handlers struct{ svc svc.Service }

// caller maps the identity middleware's context values to a domain Caller
// the session provider is external, a missing user id is a 401
func caller(r *stdhttp.Request) (domain.Caller, error) {
	uid := pnet.UserID(r.Context())
	if uid == "" {
		return domain.Caller{}, perr.Unauthorizedf("missing X-User-ID header")
	}
	return domain.Caller{UserID: uid, Tier: pnet.UserTier(r.Context())}, nil
}

// swagger:route GET /reader/items/{id}/access Reader readerAccess
// @Summary Access decision for one item
// @Tags Reader
// @Produce json
// @Param id path string true "Item id"
// @Success 200 {object} domain.AccessResult "ok"
// @Router /reader/items/{id}/access [get]
func (h *handlers) access(r *stdhttp.Request) (any, error) {
	c, err := caller(r)
	if err != nil {
		return nil, err
	}
	return h.svc.Access(r.Context(), c, chi.URLParam(r, "id"))
}

// swagger:route POST /reader/open Reader readerOpen
// @Summary Open an item, burning guest quota when the decision says so
// @Tags Reader
// @Accept json
// @Produce json
// @Param payload body domain.OpenInput true "Item"
// @Success 200 {object} domain.OpenResult "ok"
// @Router /reader/open [post]
func (h *handlers) open(r *stdhttp.Request, in domain.OpenInput) (any, error) {
	c, err := caller(r)
	if err != nil {
		return nil, err
	}
	return h.svc.Open(r.Context(), c, in)
}

// swagger:route POST /reader/navigate Reader readerNavigate
// @Summary Move the reading position
// @Tags Reader
// @Accept json
// @Produce json
// @Param payload body domain.NavigateInput true "Move"
// @Success 200 {object} domain.Position "ok"
// @Router /reader/navigate [post]
func (h *handlers) navigate(r *stdhttp.Request, in domain.NavigateInput) (any, error) {
	c, err := caller(r)
	if err != nil {
		return nil, err
	}
	return h.svc.Navigate(r.Context(), c, in)
}

// swagger:route GET /reader/position Reader readerPosition
// @Summary Current reading position
// @Tags Reader
// @Produce json
// @Success 200 {object} domain.Position "ok"
// @Router /reader/position [get]
func (h *handlers) position(r *stdhttp.Request) (any, error) {
	c, err := caller(r)
	if err != nil {
		return nil, err
	}
	return h.svc.Position(r.Context(), c)
}

// swagger:route GET /reader/quota Reader readerQuota
// @Summary Guest quota standing for today
// @Tags Reader
// @Produce json
// @Success 200 {object} domain.QuotaResult "ok"
// @Router /reader/quota [get]
func (h *handlers) quota(r *stdhttp.Request) (any, error) {
	c, err := caller(r)
	if err != nil {
		return nil, err
	}
	return h.svc.Quota(r.Context(), c)
}

// swagger:route POST /reader/complete Reader readerComplete
// @Summary Mark an item finished
// @Tags Reader
// @Accept json
// @Produce json
// @Param payload body domain.CompleteInput true "Item"
// @Success 200 {object} domain.CompleteResult "ok"
// @Router /reader/complete [post]
func (h *handlers) complete(r *stdhttp.Request, in domain.CompleteInput) (any, error) {
	c, err := caller(r)
	if err != nil {
		return nil, err
	}
	return h.svc.Complete(r.Context(), c, in)
}
