package server

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhdewitt/rig/internal/request"
	"github.com/nhdewitt/rig/internal/response"
	"github.com/nhdewitt/rig/internal/static"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "127.0.0.1:8080", cfg.Addr())
	assert.Equal(t, "static", cfg.StaticPrefix)
	assert.Equal(t, 1024, cfg.BufferSize)
}

func TestConfigAddrIPv6(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Host = "::1"
	cfg.Port = 9000
	assert.Equal(t, "[::1]:9000", cfg.Addr())
}

func TestConfigValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"negative port", func(c *Config) { c.Port = -1 }},
		{"port too large", func(c *Config) { c.Port = 70000 }},
		{"empty prefix", func(c *Config) { c.StaticPrefix = "/" }},
		{"traversal prefix", func(c *Config) { c.StaticPrefix = "../etc" }},
		{"zero buffer", func(c *Config) { c.BufferSize = 0 }},
		{"no workers", func(c *Config) { c.Workers = 0 }},
		{"negative queue", func(c *Config) { c.QueueSize = -1 }},
		{"negative timeout", func(c *Config) { c.ReadTimeout = -time.Second }},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cfg := DefaultConfig()
			c.mutate(&cfg)
			require.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}

	cfg := DefaultConfig()
	cfg.Port = 0
	cfg.QueueSize = 0
	cfg.ReadTimeout = 0
	require.NoError(t, cfg.Validate())
}

func TestStatusFor(t *testing.T) {
	cases := []struct {
		err  error
		want response.StatusCode
	}{
		{fmt.Errorf("parse: %w", request.ErrMalformedRequestLine), response.StatusBadRequest},
		{request.ErrInvalidContentLength, response.StatusBadRequest},
		{fmt.Errorf("%w: /static/../x", static.ErrForbidden), response.StatusForbidden},
		{static.ErrNotFound, response.StatusNotFound},
		{errEmptyResponse, response.StatusInternalServerError},
		{errors.New("anything else"), response.StatusInternalServerError},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, statusFor(c.err), "error %v", c.err)
	}
}
