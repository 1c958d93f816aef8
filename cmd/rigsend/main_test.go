package main

import (
	"net"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhdewitt/rig/internal/request"
	"github.com/nhdewitt/rig/internal/response"
	"github.com/nhdewitt/rig/internal/server"
)

func TestBuildRequest(t *testing.T) {
	got := buildRequest("POST", "/submit", "localhost:8080", "username=Alice")
	want := "POST /submit HTTP/1.1\r\n" +
		"Host: localhost:8080\r\n" +
		"Content-Type: application/x-www-form-urlencoded\r\n" +
		"Content-Length: 14\r\n" +
		"\r\n" +
		"username=Alice"
	assert.Equal(t, want, string(got))

	req, err := request.Parse(got)
	require.NoError(t, err)
	assert.Equal(t, "Alice", req.Body.Get("username"))

	got = buildRequest("GET", "/", "x", "")
	assert.Equal(t, "GET / HTTP/1.1\r\nHost: x\r\n\r\n", string(got))
}

func TestReadRaw(t *testing.T) {
	got, err := readRaw(strings.NewReader("GET / HTTP/1.1\nHost: x\n\n"))
	require.NoError(t, err)
	assert.Equal(t, "GET / HTTP/1.1\r\nHost: x\r\n\r\n", string(got))

	got, err = readRaw(strings.NewReader("POST / HTTP/1.1\r\nContent-Length: 3\r\n\r\na=1"))
	require.NoError(t, err)
	assert.Equal(t, "POST / HTTP/1.1\r\nContent-Length: 3\r\n\r\na=1", string(got))
}

func TestSendAgainstServer(t *testing.T) {
	cfg := server.DefaultConfig()
	cfg.Port = 0
	app, err := server.NewBuilder(cfg).
		Route("/submit", []string{"POST"}, func(req *request.Request) ([]byte, error) {
			return response.OK([]byte("hi " + req.Body.Get("username"))), nil
		}).
		Build()
	require.NoError(t, err)
	srv, err := server.Serve(app)
	require.NoError(t, err)
	defer srv.Close()

	addr := srv.Addr().String()
	resp, err := send(addr, buildRequest("POST", "/submit", addr, "username=Alice"), 5*time.Second)
	require.NoError(t, err)
	assert.Equal(t, "HTTP/1.1 200 OK\r\n\r\nhi Alice", string(resp))
}

func TestSendDialError(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	_, err = send(addr, []byte("GET / HTTP/1.1\r\n\r\n"), time.Second)
	require.Error(t, err)
}
