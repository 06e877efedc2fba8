package assets

import (
	"bytes"
	"log/slog"
	"net/http"

	"github.com/gabriel-vasile/mimetype"

	"github.com/JaimeStill/product-catalog/pkg/handlers"
	"github.com/JaimeStill/product-catalog/pkg/routes"
)

// Handler serves stored preview images.
type Handler struct {
	manager *Manager
	logger  *slog.Logger
}

func NewHandler(manager *Manager, logger *slog.Logger) *Handler {
	return &Handler{
		manager: manager,
		logger:  logger.With("handler", "assets"),
	}
}

// Routes returns the image route group, relative to the module prefix.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Tags:        []string{"Product Images"},
		Description: "Stored product preview images",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "/{filename}", Handler: h.Serve, OpenAPI: Spec.Serve},
		},
	}
}

// Serve handles GET /{filename}. Range and conditional requests are
// answered by http.ServeContent.
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	img, err := h.manager.ServeImage(r.Context(), r.PathValue("filename"))
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	w.Header().Set("Content-Type", mimetype.Detect(img.Data).String())
	w.Header().Set("X-Content-Type-Options", "nosniff")
	http.ServeContent(w, r, img.Name, img.ModTime, bytes.NewReader(img.Data))
}
