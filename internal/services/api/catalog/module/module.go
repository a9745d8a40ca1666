// Package module wires the catalog feed into the API using modkit
package module

import (
	"net/http"

	catalogadapter "newsstand/internal/adapters/catalog"
	"newsstand/internal/core/window"
	modkit "newsstand/internal/modkit"
	"newsstand/internal/modkit/httpkit"
	str "newsstand/internal/platform/strings"
	cataloghttp "newsstand/internal/services/api/catalog/http"
	catalogsvc "newsstand/internal/services/api/catalog/service"
)

// Module implements the modkit.Module interface
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws       []func(http.Handler) http.Handler
	ports     any
	swaggerOn bool

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)

	svc catalogsvc.Service
}

// New constructs a catalog module with the provided dependencies and options
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("catalog"),
		modkit.WithPrefix("/catalog"),
	}, opts...)...)

	o := FromConfig(deps.Cfg)
	client := catalogadapter.NewClient(catalogadapter.Options{
		BaseURL:    o.BaseURL,
		Timeout:    o.Timeout,
		MaxRetries: o.MaxRetries,
	})
	loader := window.NewLoader(client, deps.Log, window.Config{
		MinBatch:       o.MinBatch,
		PrefetchMargin: o.PrefetchMargin,
		PageEdge:       o.PageEdge,
		FetchTimeout:   o.Timeout,
	})
	svc := catalogsvc.New(loader)

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		swaggerOn: b.SwaggerOn,
		subrouter: b.Subrouter,
		svc:       svc,
	}
	m.ports = Ports{Feed: catalogsvc.Feed{Loader: loader}}

	external := b.Register
	m.register = func(r httpkit.Router) {
		cataloghttp.Register(r, m.svc)
		if external != nil {
			external(r)
		}
	}
	return m
}

// MountRoutes implements the modkit.Module interface
func (m *Module) MountRoutes(r httpkit.Router) {
	r.Route(m.prefix, func(rr httpkit.Router) {
		for _, mw := range m.mws {
			rr.Use(mw)
		}
		if m.subrouter != nil {
			rr = m.subrouter(rr)
		}
		if m.register != nil {
			m.register(rr)
		}
	})
}

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.name, "module name") }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return str.MustPrefix(m.prefix) }
