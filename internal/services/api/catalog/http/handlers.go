// Package http provides http transport for catalog
package http

import (
	stdhttp "net/http"

	"newsstand/internal/modkit/httpkit"
	"newsstand/internal/services/api/catalog/domain"
	svc "newsstand/internal/services/api/catalog/service"
)

// Register mounts catalog endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}
	httpkit.PostJSON[domain.RangeInput](r, "/range", h.loadRange)
	httpkit.PostJSON[domain.MoreInput](r, "/more", h.loadMore)
	httpkit.Get(r, "/items", h.items)
	httpkit.Post(r, "/reset", h.reset)
}

type handlers struct{ svc svc.Service }

// swagger:route POST /catalog/range Catalog catalogRange
// @Summary Merge a date window into the working set
// @Tags Catalog
// @Accept json
// @Produce json
// @Param payload body domain.RangeInput true "Window"
// @Success 200 {object} domain.LoadResult "ok"
// @Router /catalog/range [post]
func (h *handlers) loadRange(r *stdhttp.Request, in domain.RangeInput) (any, error) {
	return h.svc.LoadRange(r.Context(), in)
}

// swagger:route POST /catalog/more Catalog catalogMore
// @Summary Merge one catalog page into the working set
// @Tags Catalog
// @Accept json
// @Produce json
// @Param payload body domain.MoreInput true "Page"
// @Success 200 {object} domain.LoadResult "ok"
// @Router /catalog/more [post]
func (h *handlers) loadMore(r *stdhttp.Request, in domain.MoreInput) (any, error) {
	return h.svc.LoadMore(r.Context(), in)
}

// swagger:route GET /catalog/items Catalog catalogItems
// @Summary Working set in feed order
// @Tags Catalog
// @Produce json
// @Success 200 {array} domain.FeedItem "ok"
// @Router /catalog/items [get]
func (h *handlers) items(r *stdhttp.Request) (any, error) {
	return h.svc.Items(r.Context())
}

// swagger:route POST /catalog/reset Catalog catalogReset
// @Summary Drop the working set and start a fresh generation
// @Tags Catalog
// @Produce json
// @Success 200 {object} domain.ResetResult "ok"
// @Router /catalog/reset [post]
func (h *handlers) reset(r *stdhttp.Request) (any, error) {
	return h.svc.Reset(r.Context())
}
