// Package module wires reader into the API using modkit
package module

import (
	"net/http"

	modkit "newsstand/internal/modkit"
	"newsstand/internal/modkit/httpkit"
	str "newsstand/internal/platform/strings"
	catalogdom "newsstand/internal/services/api/catalog/domain"
	readerhttp "newsstand/internal/services/api/reader/http"
	readerrepo "newsstand/internal/services/api/reader/repo"
	readersvc "newsstand/internal/services/api/reader/service"
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

	svc readersvc.Service
}

// Ports declares the injected catalog port this module requires
type Ports struct {
	Feed catalogdom.FeedPort
}

// New constructs a reader module with the provided dependencies and options
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("reader"),
		modkit.WithPrefix("/reader"),
	}, opts...)...)

	var injected Ports
	if p, ok := b.Ports.(Ports); ok {
		injected = p
	}
	if injected.Feed == nil {
		panic("reader module requires the catalog Feed port")
	}

	o := FromConfig(deps.Cfg)
	svc := readersvc.New(
		deps.PG,
		readerrepo.NewPG(),
		injected.Feed,
		readerrepo.NewEventSink(deps.CH),
		deps.Log,
		readersvc.Options{
			Policy:          o.Policy,
			Placement:       o.Placement,
			GuestWindowDays: o.GuestWindowDays,
		},
	)

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		swaggerOn: b.SwaggerOn,
		subrouter: b.Subrouter,
		svc:       svc,
	}
	m.ports = adaptReaderPort{svc: svc}

	external := b.Register
	m.register = func(r httpkit.Router) {
		readerhttp.Register(r, m.svc)
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
