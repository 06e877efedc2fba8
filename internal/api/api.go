// Package api assembles the product and image modules, their routes and
// the OpenAPI document describing them.
package api

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/JaimeStill/product-catalog/internal/assets"
	"github.com/JaimeStill/product-catalog/internal/config"
	"github.com/JaimeStill/product-catalog/internal/docs"
	"github.com/JaimeStill/product-catalog/internal/infrastructure"
	"github.com/JaimeStill/product-catalog/internal/products"
	"github.com/JaimeStill/product-catalog/pkg/lifecycle"
	"github.com/JaimeStill/product-catalog/pkg/middleware"
	"github.com/JaimeStill/product-catalog/pkg/module"
	"github.com/JaimeStill/product-catalog/pkg/openapi"
	"github.com/JaimeStill/product-catalog/pkg/routes"
)

const productsPrefix = "/products"

// API is the mounted HTTP surface of the service.
type API struct {
	Products *module.Module
	Images   *module.Module
	Spec     []byte
	Docs     *docs.Handler

	specPath string
	domain   *Domain
}

// New builds the domain systems and their modules.
func New(cfg *config.Config, infra *infrastructure.Infrastructure) (*API, error) {
	runtime := NewRuntime(cfg, infra)
	domain := NewDomain(runtime)

	spec := openapi.NewSpec(cfg.API.OpenAPI.Title, cfg.Version)
	spec.SetDescription(cfg.API.OpenAPI.Description)
	if cfg.Domain != "" {
		spec.AddServer(cfg.Domain)
	}

	productsHandler := products.NewHandler(
		domain.Products,
		domain.Assets,
		runtime.Logger,
		runtime.Pagination,
		runtime.MaxBodySize,
		runtime.TrustProxy,
	)
	productsMux := http.NewServeMux()
	routes.Register(productsMux, productsPrefix, spec, productsHandler.Routes())

	imagesHandler := assets.NewHandler(domain.Assets, runtime.Logger)
	imagesMux := http.NewServeMux()
	routes.Register(imagesMux, cfg.Assets.RoutePrefix, spec, imagesHandler.Routes())

	specBytes, err := openapi.MarshalJSON(spec)
	if err != nil {
		return nil, fmt.Errorf("marshal openapi spec: %w", err)
	}

	docsHandler, err := docs.NewHandler(cfg.API.OpenAPI.Title, cfg.API.OpenAPI.Path)
	if err != nil {
		return nil, err
	}

	return &API{
		Products: newModule(productsPrefix, productsMux, &cfg.API.CORS, runtime.Logger),
		Images:   newModule(cfg.Assets.RoutePrefix, imagesMux, &cfg.API.CORS, runtime.Logger),
		Spec:     specBytes,
		Docs:     docsHandler,
		specPath: cfg.API.OpenAPI.Path,
		domain:   domain,
	}, nil
}

// Start runs the asset queue under the coordinator. The queue drains only
// after every channel in after is closed.
func (a *API) Start(lc *lifecycle.Coordinator, after ...<-chan struct{}) error {
	return a.domain.Queue.Start(lc, after...)
}

// Mount attaches the modules, the OpenAPI document and its reference page to router.
func (a *API) Mount(router *module.Router) {
	router.Mount(a.Products)
	router.Mount(a.Images)
	router.HandleNative("GET "+a.specPath, openapi.ServeSpec(a.Spec))
	router.HandleNative("GET /docs", a.Docs.Serve)
}

func newModule(prefix string, handler http.Handler, cors *middleware.CORSConfig, logger *slog.Logger) *module.Module {
	m := module.New(prefix, handler)
	m.Use(middleware.Recover(logger))
	m.Use(middleware.Logger(logger))
	m.Use(middleware.CORS(cors))
	return m
}
