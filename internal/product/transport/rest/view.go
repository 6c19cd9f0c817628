package rest

import (
	"log/slog"
	"net/http"

	"github.com/abgdnv/filecommerce/internal/product/view"
	"github.com/abgdnv/filecommerce/pkg/web"
	"github.com/go-chi/chi/v5"
)

// ViewHandler serves the read-only paginated product listing.
type ViewHandler struct {
	pager  *view.Pager
	logger *slog.Logger
}

// NewViewHandler creates a handler over the given pager.
func NewViewHandler(pager *view.Pager, logger *slog.Logger) *ViewHandler {
	return &ViewHandler{
		pager:  pager,
		logger: logger.With("component", "view"),
	}
}

// RegisterRoutes registers the listing route.
func (h *ViewHandler) RegisterRoutes(r *chi.Mux) {
	r.Get("/products", h.Page)
}

// Page returns one page of products with navigation metadata. All query
// parameters are optional and fall back to page 1, limit 10, ascending.
func (h *ViewHandler) Page(w http.ResponseWriter, r *http.Request) {
	query := view.PageQuery{
		Page:  web.QueryInt(r, "page", 1, 1),
		Limit: web.QueryInt(r, "limit", 10, 1),
		Sort:  web.QueryString(r, "sort", "asc"),
		Query: r.URL.Query().Get("query"),
	}
	h.logger.DebugContext(r.Context(), "Received request for product page",
		"page", query.Page, "limit", query.Limit, "sort", query.Sort, "query", query.Query)

	page, err := h.pager.Page(r.Context(), query)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Error building product page", "error", err)
		web.RespondError(w, h.logger, http.StatusInternalServerError, "Failed to fetch products")
		return
	}
	web.RespondJSON(w, h.logger, http.StatusOK, page)
}
