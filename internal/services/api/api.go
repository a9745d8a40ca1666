// Package api provides the HTTP API for the application
package api

import (
	"newsstand/internal/platform/config"
	"newsstand/internal/platform/logger"
	phttp "newsstand/internal/platform/net/http"
	"newsstand/internal/platform/store"

	"newsstand/internal/modkit"
	"newsstand/internal/modkit/httpkit"
	"newsstand/internal/modkit/module"
	"newsstand/internal/modkit/swaggerkit"

	catalogdom "newsstand/internal/services/api/catalog/domain"
	catalogmod "newsstand/internal/services/api/catalog/module"
	metamod "newsstand/internal/services/api/meta/module"
	readermod "newsstand/internal/services/api/reader/module"
)

// Options are the API options
type Options struct {
	Config        config.Conf
	Store         *store.Store
	Logger        *logger.Logger
	EnableSwagger bool
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) {
	// shared deps for modules
	deps := modkit.Deps{
		Log: *opt.Logger,
		Cfg: opt.Config,
		PG:  opt.Store.PG,
		CH:  opt.Store.CH,
	}

	// the catalog module owns the shared window loader; construct it first
	// and hand its feed port to the reader module
	catalog := catalogmod.New(deps)
	feed := module.MustPortsOf[catalogdom.FeedPort](catalog)

	reader := readermod.New(
		deps,
		modkit.WithPorts(readermod.Ports{Feed: feed}),
	)

	mods := []module.Module{
		metamod.New(deps),
		catalog,
		reader,
	}

	// versioned API with a common middleware stack
	httpkit.MountAPIV1(r, httpkit.CommonStack(), func(api httpkit.Router) {
		swaggerkit.Mount(r, opt.EnableSwagger)

		for _, m := range mods {
			// register each module's ports under its own name (for cross-module lookups)
			module.Register(m.Name(), m.Ports())

			// mount module routes under its prefix
			m.MountRoutes(api)
		}
	})
}
