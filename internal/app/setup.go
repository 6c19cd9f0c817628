// Package app contains the application setup for the shop service.
package app

import (
	"fmt"
	"log/slog"
	"net/http"

	cartservice "github.com/abgdnv/filecommerce/internal/cart/service"
	cartstore "github.com/abgdnv/filecommerce/internal/cart/store"
	cartrest "github.com/abgdnv/filecommerce/internal/cart/transport/rest"
	"github.com/abgdnv/filecommerce/internal/config"
	productservice "github.com/abgdnv/filecommerce/internal/product/service"
	productstore "github.com/abgdnv/filecommerce/internal/product/store"
	productrest "github.com/abgdnv/filecommerce/internal/product/transport/rest"
	"github.com/abgdnv/filecommerce/internal/product/view"
	"github.com/abgdnv/filecommerce/pkg/server"
	"github.com/go-chi/chi/v5"
)

type Dependencies struct {
	ProductService productservice.ProductService
	CartService    cartservice.CartService
	Logger         *slog.Logger
}

// SetupDependencies loads both collection files and builds the service
// layer on top of them. A file that exists but cannot be read or parsed
// fails startup for either collection.
func SetupDependencies(cfg *config.Config, logger *slog.Logger) (*Dependencies, error) {
	pStore, err := productstore.NewFileStore(cfg.Storage.ProductsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to open product store: %w", err)
	}
	cStore, err := cartstore.NewFileStore(cfg.Storage.CartsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to open cart store: %w", err)
	}

	return &Dependencies{
		ProductService: productservice.NewService(pStore),
		CartService:    cartservice.NewService(cStore),
		Logger:         logger,
	}, nil
}

// SetupHttpHandler initializes the HTTP routes for the shop application.
// Used by tests to run the full router in-process.
func SetupHttpHandler(deps *Dependencies) http.Handler {
	mux := server.NewChiRouter(deps.Logger)
	wireRoutes(mux, deps)
	return mux
}

// wireRoutes sets up the HTTP routes for the shop application.
func wireRoutes(mux *chi.Mux, deps *Dependencies) {
	productHandler := productrest.NewHandler(deps.ProductService, deps.Logger)
	productHandler.RegisterRoutes(mux)

	cartHandler := cartrest.NewHandler(deps.CartService, deps.Logger)
	cartHandler.RegisterRoutes(mux)

	viewHandler := productrest.NewViewHandler(view.NewPager(deps.ProductService), deps.Logger)
	viewHandler.RegisterRoutes(mux)

	mux.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("Welcome to the shop!"))
	})
}

// SetupHttpServer creates and configures an HTTP server for the shop application.
func SetupHttpServer(deps *Dependencies, cfg *config.Config) *http.Server {

	mux := SetupHttpHandler(deps)

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
