// Package api assembles the caseline modules and mounts the HTTP API
package api

//go:generate swag init --v3.1 -g main.go -d ../../../cmd/caseline-api,.,../products/http,../orders/http,../cases/http,../units/http,../events/http,./meta -o ./docs --outputTypes go --parseDependency

import (
	"context"

	"caseline/internal/modkit"
	"caseline/internal/modkit/httpkit"
	"caseline/internal/modkit/module"
	"caseline/internal/modkit/swaggerkit"
	"caseline/internal/platform/config"
	"caseline/internal/platform/logger"
	phttp "caseline/internal/platform/net/http"
	"caseline/internal/platform/net/middleware"
	"caseline/internal/services/api/meta"
	casesdom "caseline/internal/services/cases/domain"
	casesmod "caseline/internal/services/cases/module"
	eventsmod "caseline/internal/services/events/module"
	ordersdom "caseline/internal/services/orders/domain"
	ordersmod "caseline/internal/services/orders/module"
	productsdom "caseline/internal/services/products/domain"
	productsmod "caseline/internal/services/products/module"
	sweepermod "caseline/internal/services/sweeper/module"
	unitsmod "caseline/internal/services/units/module"

	"golang.org/x/sync/errgroup"
)

// ServiceName names the API in logs, health and version payloads
const ServiceName = "caseline-api"

// Modules is the assembled module graph
type Modules struct {
	Products *productsmod.Module
	Orders   *ordersmod.Module
	Events   *eventsmod.Module
	Cases    *casesmod.Module
	Units    *unitsmod.Module
	Registry *module.Registry
}

// Assemble builds the domain modules in dependency order, products, orders, events,
// cases and then units, and registers their ports
func Assemble(ctx context.Context, deps modkit.Deps) *Modules {
	reg := module.NewRegistry()
	products := productsmod.New(deps)
	reg.Register(products)

	orders := ordersmod.New(deps, modkit.WithPorts(ordersmod.Needs{
		Products: module.MustPortsOf[productsdom.ServicePort](products),
	}))
	reg.Register(orders)

	events := eventsmod.New(ctx, deps)
	reg.Register(events)

	cases := casesmod.New(deps, modkit.WithPorts(casesmod.Needs{
		Products: products.Service(),
		Orders:   module.MustPortsOf[ordersdom.ServicePort](orders),
		Events:   events.Sink(),
	}))
	reg.Register(cases)

	units := unitsmod.New(deps, modkit.WithPorts(unitsmod.Needs{
		Products: products.Service(),
		Orders:   orders.Service(),
		Cases:    cases.Service(),
		Events:   events.Sink(),
	}))
	reg.Register(units)

	return &Modules{Products: products, Orders: orders, Events: events, Cases: cases, Units: units, Registry: reg}
}

func (m *Modules) routed() []module.Module {
	return []module.Module{m.Products, m.Orders, m.Cases, m.Units, m.Events}
}

// Options are the API options
type Options struct {
	// Config is scoped to CORE_API_
	Config         config.Conf
	Deps           modkit.Deps
	EnableSwagger  bool
	EnableProfiler bool
	// Sweep runs the empty case sweeper inside the API process
	Sweep bool
}

// App is a mounted API; Run drives its background work
type App struct {
	Modules *Modules
	sweeper *sweepermod.Module
}

// Mount assembles the modules and mounts /api/v1, the docs, pprof and /metrics on r.
// Every module route sits behind bearer auth from CORE_API_TOKENS (token:user:org,...)
func Mount(ctx context.Context, r phttp.Router, opt Options) *App {
	log := logger.Named("api")
	deps := opt.Deps
	mods := Assemble(ctx, deps)

	var auth middleware.AuthPort
	if tokens := middleware.TokensFromTuples(opt.Config.MayTuples("TOKENS", 3)); len(tokens) > 0 {
		auth = tokens
	} else {
		log.Warn().Msg("CORE_API_TOKENS is empty, every module route answers 403")
	}

	md := meta.Deps{ServiceName: ServiceName, Now: deps.Clock}
	if deps.Store != nil {
		md.Guard = deps.Store
	}
	metaMod := meta.New(md)
	mods.Registry.Register(metaMod)

	stack := httpkit.CommonStack(httpkit.StackFromConfig(opt.Config, deps.Metrics.ObserveRequest))
	httpkit.MountAPIV1(r, stack, func(api httpkit.Router) {
		metaMod.MountRoutes(api)
		httpkit.Protected(api, auth, func(sec httpkit.Router) {
			for _, m := range mods.routed() {
				m.MountRoutes(sec)
			}
		})
	})

	swaggerkit.Mount(r, swaggerkit.Options{
		Enabled:     opt.EnableSwagger,
		TitleSuffix: opt.Config.MayString("DOCS_TITLE_SUFFIX", ""),
	})
	phttp.MountProfiler(r, "/debug", opt.EnableProfiler)
	r.Handle("/metrics", deps.Metrics.Handler())

	app := &App{Modules: mods}
	if opt.Sweep {
		app.sweeper = sweepermod.New(deps, nil, modkit.WithPorts(sweepermod.Needs{
			Cases: module.MustPortsOf[casesdom.Sweeper](mods.Cases),
		}))
		mods.Registry.Register(app.sweeper)
	}
	log.Info().Strs("modules", mods.Registry.Names()).Bool("sweeper", opt.Sweep).Msg("api mounted")
	return app
}

// Run flushes case events and, when enabled, sweeps empty cases until ctx ends
func (a *App) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return a.Modules.Events.Run(ctx) })
	if a.sweeper != nil {
		g.Go(func() error { return a.sweeper.Service().Run(ctx) })
	}
	return g.Wait()
}
