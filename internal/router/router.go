// Package router maps exact request paths to handlers and their allowed
// methods. There are no wildcards, path parameters or trailing-slash rules.
package router

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/nhdewitt/rig/internal/request"
)

// Handler turns a request into raw response bytes. A non-nil error is a
// handler fault.
type Handler func(req *request.Request) ([]byte, error)

type Outcome int

const (
	Matched Outcome = iota
	MethodNotAllowed
	NotFound
)

func (o Outcome) String() string {
	switch o {
	case Matched:
		return "matched"
	case MethodNotAllowed:
		return "method not allowed"
	case NotFound:
		return "not found"
	default:
		return "unknown"
	}
}

var (
	ErrEmptyPath  = errors.New("route path is empty")
	ErrNilHandler = errors.New("route handler is nil")
)

var defaultMethods = []string{"GET"}

type route struct {
	methods map[string]struct{}
	handler Handler
}

type Router struct {
	routes map[string]route
}

func New() *Router {
	return &Router{routes: map[string]route{}}
}

// Handle registers handler for path. With no methods the route accepts GET
// only. Registering the same path again replaces the earlier route.
func (rt *Router) Handle(path string, methods []string, handler Handler) error {
	if path == "" {
		return ErrEmptyPath
	}
	if handler == nil {
		return fmt.Errorf("%w: %s", ErrNilHandler, path)
	}
	if len(methods) == 0 {
		methods = defaultMethods
	}

	set := make(map[string]struct{}, len(methods))
	for _, m := range methods {
		set[m] = struct{}{}
	}
	rt.routes[path] = route{methods: set, handler: handler}
	return nil
}

func (rt *Router) Resolve(path, method string) (Handler, Outcome) {
	r, ok := rt.routes[path]
	if !ok {
		return nil, NotFound
	}
	if _, ok := r.methods[method]; !ok {
		return nil, MethodNotAllowed
	}
	return r.handler, Matched
}

// Methods returns the sorted allowed methods for path, or nil if the path is
// not registered.
func (rt *Router) Methods(path string) []string {
	r, ok := rt.routes[path]
	if !ok {
		return nil
	}
	return slices.Sorted(maps.Keys(r.methods))
}

func (rt *Router) Len() int {
	return len(rt.routes)
}

// Clone returns a copy that later Handle calls on rt do not affect.
func (rt *Router) Clone() *Router {
	return &Router{routes: maps.Clone(rt.routes)}
}
