package docs

import (
	"log/slog"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/go-chi/chi/v5"
	"github.com/shopkit/product-api/pkg/web"
)

// swaggerUI is a minimal page loading Swagger UI from a CDN and pointing it at
// the generated specification.
const swaggerUI = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8"/>
  <title>Product API Docs</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css"/>
</head>
<body>
<div id="swagger-ui"></div>
<script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
<script>
  SwaggerUIBundle({
    url: "/docs/openapi.json",
    dom_id: "#swagger-ui",
  });
</script>
</body>
</html>`

// Handler serves the documentation UI and the OpenAPI document.
type Handler struct {
	spec   *openapi3.T
	logger *slog.Logger
}

// NewHandler creates a documentation handler for the given specification.
func NewHandler(spec *openapi3.T, logger *slog.Logger) *Handler {
	return &Handler{
		spec:   spec,
		logger: logger.With("component", "docs"),
	}
}

// RegisterRoutes registers the documentation routes.
func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Get("/docs", h.ServeUI)
	r.Get("/docs/openapi.json", h.ServeSpec)
}

// ServeUI serves the interactive documentation page.
func (h *Handler) ServeUI(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(swaggerUI))
}

// ServeSpec serves the OpenAPI document as JSON.
func (h *Handler) ServeSpec(w http.ResponseWriter, r *http.Request) {
	payload, err := h.spec.MarshalJSON()
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Error marshalling OpenAPI spec", "error", err)
		web.RespondError(w, h.logger, http.StatusInternalServerError, "Failed to render API specification")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(payload)
}
