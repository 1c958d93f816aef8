package server

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const (
	DefaultHost         = "127.0.0.1"
	DefaultPort         = 8080
	DefaultStaticPrefix = "static"
	DefaultBufferSize   = 1024
	DefaultWorkers      = 64
	DefaultQueueSize    = 128
	DefaultReadTimeout  = 10 * time.Second
	DefaultWriteTimeout = 10 * time.Second
)

var ErrInvalidConfig = errors.New("invalid server config")

type Config struct {
	Host string
	// Port 0 lets the kernel pick a free port.
	Port         int
	StaticPrefix string
	// StaticRoot is the directory StaticPrefix is resolved against.
	StaticRoot string
	// BufferSize bounds the single read taken from each connection.
	BufferSize int
	Workers    int
	QueueSize  int
	// Zero disables the deadline.
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	Logger       zerolog.Logger
}

func DefaultConfig() Config {
	return Config{
		Host:         DefaultHost,
		Port:         DefaultPort,
		StaticPrefix: DefaultStaticPrefix,
		StaticRoot:   ".",
		BufferSize:   DefaultBufferSize,
		Workers:      DefaultWorkers,
		QueueSize:    DefaultQueueSize,
		ReadTimeout:  DefaultReadTimeout,
		WriteTimeout: DefaultWriteTimeout,
		Logger:       zerolog.Nop(),
	}
}

func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

func (c Config) Validate() error {
	switch {
	case c.Port < 0 || c.Port > 65535:
		return fmt.Errorf("%w: port %d out of range", ErrInvalidConfig, c.Port)
	case strings.Trim(c.StaticPrefix, "/") == "":
		return fmt.Errorf("%w: static prefix is empty", ErrInvalidConfig)
	case strings.Contains(strings.Trim(c.StaticPrefix, "/"), ".."):
		return fmt.Errorf("%w: static prefix %q", ErrInvalidConfig, c.StaticPrefix)
	case c.BufferSize <= 0:
		return fmt.Errorf("%w: buffer size %d", ErrInvalidConfig, c.BufferSize)
	case c.Workers <= 0:
		return fmt.Errorf("%w: workers %d", ErrInvalidConfig, c.Workers)
	case c.QueueSize < 0:
		return fmt.Errorf("%w: queue size %d", ErrInvalidConfig, c.QueueSize)
	case c.ReadTimeout < 0 || c.WriteTimeout < 0:
		return fmt.Errorf("%w: negative timeout", ErrInvalidConfig)
	}
	return nil
}
