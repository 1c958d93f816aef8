package main

import (
	"flag"
	"fmt"
	"io"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// buildRequest assembles a request the server can parse from a single read.
// A non-empty form is sent as an urlencoded body.
func buildRequest(method, path, host, form string) []byte {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s %s HTTP/1.1\r\n", method, path)
	fmt.Fprintf(&sb, "Host: %s\r\n", host)
	if form != "" {
		sb.WriteString("Content-Type: application/x-www-form-urlencoded\r\n")
		sb.WriteString("Content-Length: " + strconv.Itoa(len(form)) + "\r\n")
	}
	sb.WriteString("\r\n")
	sb.WriteString(form)
	return []byte(sb.String())
}

// readRaw reads a request typed by hand and converts bare LF line endings
// to CRLF.
func readRaw(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	text := strings.ReplaceAll(string(data), "\r\n", "\n")
	return []byte(strings.ReplaceAll(text, "\n", "\r\n")), nil
}

func send(addr string, payload []byte, timeout time.Duration) ([]byte, error) {
	conn, err := net.DialTimeout("tcp", addr, timeout)
	if err != nil {
		return nil, fmt.Errorf("error dialing %s: %w", addr, err)
	}
	defer conn.Close()
	_ = conn.SetDeadline(time.Now().Add(timeout))

	if _, err := conn.Write(payload); err != nil {
		return nil, fmt.Errorf("write error: %w", err)
	}
	return io.ReadAll(conn)
}

func main() {
	addr := flag.String("addr", "127.0.0.1:8080", "server address")
	method := flag.String("method", "GET", "request method")
	path := flag.String("path", "/", "request path")
	form := flag.String("data", "", "urlencoded form body, e.g. username=Alice")
	raw := flag.Bool("raw", false, "read the raw request from stdin instead")
	timeout := flag.Duration("timeout", 5*time.Second, "dial and I/O timeout")
	flag.Parse()

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr})

	payload := buildRequest(*method, *path, *addr, *form)
	if *raw {
		var err error
		if payload, err = readRaw(os.Stdin); err != nil {
			log.Fatal().Err(err).Msg("input error")
		}
	}

	resp, err := send(*addr, payload, *timeout)
	if err != nil {
		log.Fatal().Err(err).Msg("request failed")
	}
	os.Stdout.Write(resp)
}
