package api

import (
	"github.com/JaimeStill/product-catalog/internal/assets"
	"github.com/JaimeStill/product-catalog/internal/products"
)

// Domain holds the domain systems that comprise the API.
type Domain struct {
	Products products.System
	Assets   *assets.Manager
	Queue    *assets.Queue
}

// NewDomain creates all domain systems from the API runtime.
func NewDomain(runtime *Runtime) *Domain {
	cfg := runtime.Assets

	productsSys := products.New(
		runtime.DB,
		runtime.Logger,
		runtime.Pagination,
	)

	reporter := assets.NewLogReporter(runtime.Logger)

	queue := assets.NewQueue(
		assets.QueueConfig{
			Workers:     cfg.Workers,
			QueueSize:   cfg.QueueSize,
			TaskTimeout: cfg.TaskTimeoutDuration(),
		},
		reporter,
		runtime.Logger,
	)

	manager := assets.New(
		productsSys,
		runtime.Files,
		queue,
		reporter,
		assets.Config{
			Directory:   cfg.Directory,
			RoutePrefix: cfg.RoutePrefix,
		},
		runtime.Logger,
	)

	return &Domain{
		Products: productsSys,
		Assets:   manager,
		Queue:    queue,
	}
}
