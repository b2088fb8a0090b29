// Package app contains the application setup for the product API.
package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopkit/product-api/internal/config"
	"github.com/shopkit/product-api/internal/docs"
	"github.com/shopkit/product-api/internal/service"
	"github.com/shopkit/product-api/internal/store"
	"github.com/shopkit/product-api/internal/transport/rest"
	"github.com/shopkit/product-api/pkg/server"
	"github.com/shopkit/product-api/pkg/web"
)

type Dependencies struct {
	ProductService service.ProductService
	Logger         *slog.Logger
}

func SetupDependencies(dbPool *pgxpool.Pool, logger *slog.Logger) *Dependencies {
	pService := service.NewService(store.NewPgStore(dbPool))

	return &Dependencies{
		ProductService: pService,
		Logger:         logger,
	}
}

// SetupHttpHandler initializes the HTTP routes and global middleware for the
// product API. Also used by handler tests to exercise the full pipeline.
func SetupHttpHandler(deps *Dependencies, corsOrigin string) http.Handler {
	mux := server.NewChiRouter(deps.Logger)
	mux.Use(web.CORS(deps.Logger, corsOrigin))
	mux.Use(web.JSONBodyParser(deps.Logger))
	wireRoutes(mux, deps)
	return mux
}

// wireRoutes sets up the HTTP routes for the product API.
func wireRoutes(mux *chi.Mux, deps *Dependencies) {
	productHandler := rest.NewHandler(deps.ProductService, deps.Logger)
	productHandler.RegisterRoutes(mux)

	docsHandler := docs.NewHandler(docs.NewSpec(), deps.Logger)
	docsHandler.RegisterRoutes(mux)
}

// SetupHttpServer creates and configures an HTTP server for the product API.
func SetupHttpServer(deps *Dependencies, cfg *config.Config) *http.Server {

	mux := SetupHttpHandler(deps, cfg.CORS.Origin)

	httpCfg := server.HTTPConfig{
		Port:           cfg.HTTPServer.Port,
		MaxHeaderBytes: cfg.HTTPServer.MaxHeaderBytes,
		ReadTimeout:    cfg.HTTPServer.Timeout.Read,
		WriteTimeout:   cfg.HTTPServer.Timeout.Write,
		IdleTimeout:    cfg.HTTPServer.Timeout.Idle,
		ReadHeader:     cfg.HTTPServer.Timeout.ReadHeader,
	}

	return server.NewHTTPServer(httpCfg, mux)
}
