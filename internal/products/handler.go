package products

import (
	"log/slog"
	"net/http"

	"github.com/JaimeStill/product-catalog/pkg/handlers"
	"github.com/JaimeStill/product-catalog/pkg/pagination"
	"github.com/JaimeStill/product-catalog/pkg/routes"
	"github.com/google/uuid"
)

// Handler provides HTTP endpoints for product operations.
type Handler struct {
	sys         System
	assets      Assets
	logger      *slog.Logger
	pagination  pagination.Config
	maxBodySize int64
	trustProxy  bool
}

// NewHandler creates a product handler. Replace and delete go through assets.
// trustProxy lets X-Forwarded-* headers decide the origin of image URLs.
func NewHandler(sys System, assets Assets, logger *slog.Logger, pagination pagination.Config, maxBodySize int64, trustProxy bool) *Handler {
	return &Handler{
		sys:         sys,
		assets:      assets,
		logger:      logger.With("handler", "products"),
		pagination:  pagination,
		maxBodySize: maxBodySize,
		trustProxy:  trustProxy,
	}
}

// Routes returns the product endpoint route group, relative to the module prefix.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Tags:        []string{"Products"},
		Description: "Product catalog records",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "", Handler: h.Create, OpenAPI: Spec.Create},
			{Method: "GET", Pattern: "/count", Handler: h.Count, OpenAPI: Spec.Count},
			{Method: "GET", Pattern: "", Handler: h.List, OpenAPI: Spec.List},
			{Method: "PATCH", Pattern: "", Handler: h.UpdateAll, OpenAPI: Spec.UpdateAll},
			{Method: "GET", Pattern: "/{id}", Handler: h.Find, OpenAPI: Spec.Find},
			{Method: "PATCH", Pattern: "/{id}", Handler: h.Update, OpenAPI: Spec.Update},
			{Method: "PUT", Pattern: "/{id}", Handler: h.Replace, OpenAPI: Spec.Replace},
			{Method: "DELETE", Pattern: "/{id}", Handler: h.Delete, OpenAPI: Spec.Delete},
		},
		Schemas: Spec.Schemas(),
	}
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var cmd CreateCommand
	if err := handlers.DecodeJSON(w, r, h.maxBodySize, &cmd); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	p, err := h.sys.Create(r.Context(), cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, p)
}

func (h *Handler) Count(w http.ResponseWriter, r *http.Request) {
	filters := FiltersFromQuery(r.URL.Query())

	n, err := h.sys.Count(r.Context(), filters)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, map[string]int64{"count": int64(n)})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	values := r.URL.Query()
	page := pagination.PageRequestFromQuery(values, h.pagination)
	filters := FiltersFromQuery(values)
	// search is carried by the page request
	filters.Search = nil

	result, err := h.sys.List(r.Context(), page, filters)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) UpdateAll(w http.ResponseWriter, r *http.Request) {
	patch, ok := h.decodePatch(w, r)
	if !ok {
		return
	}

	n, err := h.sys.UpdateAll(r.Context(), patch, FiltersFromQuery(r.URL.Query()))
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, map[string]int64{"count": n})
}

func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	p, err := h.sys.Find(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, p)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	patch, ok := h.decodePatch(w, r)
	if !ok {
		return
	}

	if err := h.sys.Update(r.Context(), id, patch); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondNoContent(w)
}

func (h *Handler) Replace(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	var cmd ReplaceCommand
	if err := handlers.DecodeJSON(w, r, h.maxBodySize, &cmd); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	if err := h.assets.ReplaceRecord(r.Context(), id, cmd, handlers.Origin(r, h.trustProxy)); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondNoContent(w)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	if err := h.assets.DeleteRecord(r.Context(), id); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondNoContent(w)
}

func (h *Handler) pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return uuid.Nil, false
	}
	return id, true
}

func (h *Handler) decodePatch(w http.ResponseWriter, r *http.Request) (Patch, bool) {
	var data map[string]any
	if err := handlers.DecodeJSON(w, r, h.maxBodySize, &data); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return Patch{}, false
	}

	patch, err := PatchFromMap(data)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return Patch{}, false
	}
	return patch, true
}
