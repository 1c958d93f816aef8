package middleware

import (
	"github.com/rs/zerolog"

	"github.com/nhdewitt/rig/internal/request"
)

// Func observes a request before it is dispatched. It cannot change the
// request or stop it from being handled.
type Func func(req *request.Request)

type Chain struct {
	fns []Func
}

func (c *Chain) Use(fn Func) {
	if fn == nil {
		return
	}
	c.fns = append(c.fns, fn)
}

// Run calls every Func in registration order.
func (c *Chain) Run(req *request.Request) {
	for _, fn := range c.fns {
		fn(req)
	}
}

func (c *Chain) Len() int {
	return len(c.fns)
}

func (c *Chain) Clone() *Chain {
	return &Chain{fns: append([]Func(nil), c.fns...)}
}

// Logger logs the method and path of every request at info level.
func Logger(log zerolog.Logger) Func {
	return func(req *request.Request) {
		log.Info().
			Str("method", req.Method()).
			Str("path", req.Path()).
			Int("body_fields", len(req.Body)).
			Msg("request")
	}
}
