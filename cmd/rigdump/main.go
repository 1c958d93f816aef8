package main

import (
	"flag"
	"fmt"
	"io"
	"net"
	"os"

	"github.com/rs/zerolog"

	"github.com/nhdewitt/rig/internal/request"
	"github.com/nhdewitt/rig/internal/server"
)

func dump(w io.Writer, req *request.Request) {
	fmt.Fprintln(w, "Request line:")
	fmt.Fprintf(w, "- Method: %s\n", req.RequestLine.Method)
	fmt.Fprintf(w, "- Target: %s\n", req.RequestLine.Target)
	fmt.Fprintf(w, "- Version: %s\n", req.RequestLine.Version)
	fmt.Fprintln(w, "Headers:")
	for k, v := range req.Headers.All() {
		fmt.Fprintf(w, "- %s: %s\n", k, v)
	}
	if len(req.Body) > 0 {
		fmt.Fprintln(w, "Body:")
		for k, vs := range req.Body {
			for _, v := range vs {
				fmt.Fprintf(w, "- %s=%s\n", k, v)
			}
		}
	}
}

func main() {
	addr := flag.String("addr", ":42069", "address to listen on")
	size := flag.Int("buffer", server.DefaultBufferSize, "bytes read from each connection")
	flag.Parse()

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	listener, err := net.Listen("tcp", *addr)
	if err != nil {
		log.Fatal().Err(err).Msg("error listening")
	}
	defer listener.Close()

	log.Info().Str("addr", listener.Addr().String()).Msg("listening for TCP traffic")
	for {
		c, err := listener.Accept()
		if err != nil {
			log.Fatal().Err(err).Msg("error accepting connection")
		}
		log.Info().Stringer("remote", c.RemoteAddr()).Msg("connection accepted")

		buf := make([]byte, *size)
		n, err := c.Read(buf)
		c.Close()
		if n == 0 {
			log.Warn().Err(err).Msg("empty read")
			continue
		}

		req, err := request.Parse(buf[:n])
		if err != nil {
			log.Error().Err(err).Msg("error parsing request")
			continue
		}
		dump(os.Stdout, req)
	}
}
