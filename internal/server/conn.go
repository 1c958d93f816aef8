package server

import (
	"errors"
	"fmt"
	"io"
	"net"
	"time"

	"github.com/rs/zerolog"

	"github.com/nhdewitt/rig/internal/request"
	"github.com/nhdewitt/rig/internal/response"
	"github.com/nhdewitt/rig/internal/router"
	"github.com/nhdewitt/rig/internal/static"
)

type connState int

const (
	stateReading connState = iota
	stateParsed
	stateMiddlewareRun
	stateDispatching
	stateResponding
	stateClosed
)

func (s connState) String() string {
	switch s {
	case stateReading:
		return "reading"
	case stateParsed:
		return "parsed"
	case stateMiddlewareRun:
		return "middleware"
	case stateDispatching:
		return "dispatching"
	case stateResponding:
		return "responding"
	case stateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

var errEmptyResponse = errors.New("handler returned an empty response")

// connection serves exactly one request and is closed exactly once.
type connection struct {
	app   *App
	conn  net.Conn
	state connState
	log   zerolog.Logger
}

func newConnection(app *App, conn net.Conn, log zerolog.Logger) *connection {
	return &connection{
		app:   app,
		conn:  conn,
		state: stateReading,
		log:   log.With().Str("remote", conn.RemoteAddr().String()).Logger(),
	}
}

func (c *connection) serve() {
	defer c.close()

	cfg := c.app.cfg
	if cfg.ReadTimeout > 0 {
		_ = c.conn.SetReadDeadline(time.Now().Add(cfg.ReadTimeout))
	}
	buf := make([]byte, cfg.BufferSize)
	n, err := c.conn.Read(buf)
	if n == 0 {
		if err != nil && !errors.Is(err, io.EOF) {
			c.log.Debug().Err(err).Stringer("state", c.state).Msg("read failed")
		}
		return
	}

	resp := c.respond(buf[:n])

	c.state = stateResponding
	if cfg.WriteTimeout > 0 {
		_ = c.conn.SetWriteDeadline(time.Now().Add(cfg.WriteTimeout))
	}
	if _, err := c.conn.Write(resp); err != nil {
		c.log.Debug().Err(err).Stringer("state", c.state).Msg("write failed")
	}
}

func (c *connection) close() {
	c.state = stateClosed
	if err := c.conn.Close(); err != nil {
		c.log.Debug().Err(err).Msg("close failed")
	}
}

// respond never fails: parse errors, handler errors and panics all turn
// into a fallback response.
func (c *connection) respond(data []byte) (resp []byte) {
	defer func() {
		if r := recover(); r != nil {
			c.log.Error().
				Err(fmt.Errorf("panic: %v", r)).
				Stringer("state", c.state).
				Msg("request failed")
			resp = response.InternalServerError()
		}
	}()

	req, err := request.Parse(data)
	if err != nil {
		c.log.Debug().Err(err).Msg("bad request")
		return fallback(statusFor(err))
	}
	c.state = stateParsed

	c.state = stateMiddlewareRun
	c.app.chain.Run(req)

	c.state = stateDispatching
	resp, err = c.app.dispatch(req)
	if err != nil {
		code := statusFor(err)
		if code == response.StatusInternalServerError {
			c.log.Error().
				Err(err).
				Str("method", req.Method()).
				Str("path", req.Path()).
				Msg("handler failed")
		}
		return fallback(code)
	}
	return resp
}

func (a *App) dispatch(req *request.Request) ([]byte, error) {
	if a.static.Matches(req.Path()) {
		data, err := a.static.Read(req.Path())
		if err != nil {
			return nil, err
		}
		return response.OK(data), nil
	}

	h, outcome := a.router.Resolve(req.Path(), req.Method())
	switch outcome {
	case router.NotFound:
		return response.NotFound(), nil
	case router.MethodNotAllowed:
		return response.MethodNotAllowed(), nil
	}

	resp, err := h(req)
	if err != nil {
		return nil, err
	}
	if len(resp) == 0 {
		return nil, errEmptyResponse
	}
	return resp, nil
}

func statusFor(err error) response.StatusCode {
	switch {
	case errors.Is(err, request.ErrMalformedRequestLine),
		errors.Is(err, request.ErrInvalidContentLength):
		return response.StatusBadRequest
	case errors.Is(err, static.ErrForbidden):
		return response.StatusForbidden
	case errors.Is(err, static.ErrNotFound):
		return response.StatusNotFound
	default:
		return response.StatusInternalServerError
	}
}

func fallback(code response.StatusCode) []byte {
	switch code {
	case response.StatusBadRequest:
		return response.BadRequest()
	case response.StatusForbidden:
		return response.Forbidden()
	case response.StatusNotFound:
		return response.NotFound()
	case response.StatusMethodNotAllowed:
		return response.MethodNotAllowed()
	case response.StatusServiceUnavailable:
		return response.ServiceUnavailable()
	default:
		return response.InternalServerError()
	}
}
