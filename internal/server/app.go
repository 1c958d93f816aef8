package server

import (
	"github.com/nhdewitt/rig/internal/middleware"
	"github.com/nhdewitt/rig/internal/router"
	"github.com/nhdewitt/rig/internal/static"
)

// Builder collects routes and middleware. Build freezes them into an App.
type Builder struct {
	cfg    Config
	router *router.Router
	chain  middleware.Chain
	err    error
}

func NewBuilder(cfg Config) *Builder {
	return &Builder{
		cfg:    cfg,
		router: router.New(),
	}
}

// Route registers h for path and methods. An empty methods list means GET.
// The first registration error is reported by Build.
func (b *Builder) Route(path string, methods []string, h Handler) *Builder {
	if b.err != nil {
		return b
	}
	b.err = b.router.Handle(path, methods, h)
	return b
}

func (b *Builder) Use(mw Middleware) *Builder {
	b.chain.Use(mw)
	return b
}

func (b *Builder) Build() (*App, error) {
	if b.err != nil {
		return nil, b.err
	}
	if err := b.cfg.Validate(); err != nil {
		return nil, err
	}
	return &App{
		cfg:    b.cfg,
		router: b.router.Clone(),
		chain:  b.chain.Clone(),
		static: static.New(b.cfg.StaticPrefix, b.cfg.StaticRoot),
	}, nil
}

// App is the read-only configuration shared by every connection.
type App struct {
	cfg    Config
	router *router.Router
	chain  *middleware.Chain
	static *static.Resolver
}

func (a *App) Config() Config {
	return a.cfg
}
