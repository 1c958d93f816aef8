package server

import (
	"errors"
	"net"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/nhdewitt/rig/internal/response"
)

const rejectTimeout = time.Second

// Server accepts connections and hands them to a fixed pool of workers
// through a bounded queue. When the queue is full new connections are
// answered with 503 and closed.
type Server struct {
	app         *App
	listener    net.Listener
	isListening atomic.Bool
	queue       chan net.Conn
	group       errgroup.Group
	log         zerolog.Logger
}

// Serve binds the configured address and starts serving in the background.
func Serve(app *App) (*Server, error) {
	listener, err := net.Listen("tcp", app.cfg.Addr())
	if err != nil {
		return nil, err
	}
	s := &Server{
		app:      app,
		listener: listener,
		queue:    make(chan net.Conn, app.cfg.QueueSize),
		log:      app.cfg.Logger,
	}
	s.isListening.Store(true)

	for range app.cfg.Workers {
		s.group.Go(s.work)
	}
	s.group.Go(s.listen)

	s.log.Info().
		Str("addr", listener.Addr().String()).
		Int("workers", app.cfg.Workers).
		Int("queue", app.cfg.QueueSize).
		Msg("server listening")
	return s, nil
}

// ListenAndServe serves app on the calling goroutine. It only returns if the
// address cannot be bound or the listener fails.
func ListenAndServe(app *App) error {
	s, err := Serve(app)
	if err != nil {
		return err
	}
	return s.Wait()
}

func (s *Server) Addr() net.Addr {
	return s.listener.Addr()
}

// Close stops accepting, lets the workers finish every queued connection and
// waits for them.
func (s *Server) Close() error {
	if !s.isListening.CompareAndSwap(true, false) {
		return nil
	}

	err := s.listener.Close()
	if werr := s.group.Wait(); werr != nil {
		err = werr
	}
	s.log.Info().Msg("server stopped")
	return err
}

// Wait blocks until the accept loop and all workers have returned.
func (s *Server) Wait() error {
	return s.group.Wait()
}

func (s *Server) listen() error {
	defer close(s.queue)

	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if !s.isListening.Load() {
				return nil
			}
			if errors.Is(err, net.ErrClosed) {
				return err
			}
			s.log.Warn().Err(err).Msg("error accepting connection")
			continue
		}

		select {
		case s.queue <- conn:
		default:
			s.reject(conn)
		}
	}
}

func (s *Server) work() error {
	for conn := range s.queue {
		newConnection(s.app, conn, s.log).serve()
	}
	return nil
}

func (s *Server) reject(conn net.Conn) {
	defer conn.Close()

	s.log.Warn().Str("remote", conn.RemoteAddr().String()).Msg("queue full, rejecting connection")
	_ = conn.SetWriteDeadline(time.Now().Add(rejectTimeout))
	if _, err := conn.Write(response.ServiceUnavailable()); err != nil {
		s.log.Debug().Err(err).Msg("write failed")
	}
}
