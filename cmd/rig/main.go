package main

import (
	"flag"
	"fmt"
	"html"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/nhdewitt/rig/internal/middleware"
	"github.com/nhdewitt/rig/internal/request"
	"github.com/nhdewitt/rig/internal/response"
	"github.com/nhdewitt/rig/internal/server"
	"github.com/nhdewitt/rig/internal/widget"
)

type htmlPage struct {
	title   string
	heading string
	content string
}

func (p htmlPage) render() []byte {
	body := fmt.Appendf(nil, `
<html>
	<head><title>%s</title></head>
	<body>
		<h1>%s</h1>
		%s
	</body>
</html>
`, p.title, p.heading, p.content)

	h := response.GetDefaultHeaders(len(body))
	h.Set("Content-Type", "text/html")
	return response.Build(response.StatusOK, h, body)
}

func Home(*request.Request) ([]byte, error) {
	form := widget.Form{
		Action: "/submit",
		Method: "POST",
		Children: []widget.Widget{
			widget.TextBox{Name: "username", Placeholder: "Enter your name"},
			widget.Break{},
			widget.Button{Text: "Click Me", OnClick: "alert('Hello!')"},
		},
	}
	return htmlPage{
		title:   "Home",
		heading: "Welcome to the Custom Web Framework!",
		content: widget.Render(form),
	}.render(), nil
}

func Submit(req *request.Request) ([]byte, error) {
	username := req.Body.Get("username")
	return htmlPage{
		title:   "Submit",
		heading: "Form Submitted!",
		content: fmt.Sprintf("<p>Thank you, %s!</p>", html.EscapeString(username)),
	}.render(), nil
}

func newLogger(level string) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), err
	}
	out := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	return zerolog.New(out).Level(lvl).With().Timestamp().Logger(), nil
}

func main() {
	cfg := server.DefaultConfig()
	flag.StringVar(&cfg.Host, "host", cfg.Host, "address to bind")
	flag.IntVar(&cfg.Port, "port", cfg.Port, "port to listen on")
	flag.StringVar(&cfg.StaticPrefix, "static", cfg.StaticPrefix, "URL prefix and directory for static files")
	flag.StringVar(&cfg.StaticRoot, "root", cfg.StaticRoot, "directory the static prefix is resolved against")
	flag.IntVar(&cfg.Workers, "workers", cfg.Workers, "number of connection workers")
	flag.IntVar(&cfg.QueueSize, "queue", cfg.QueueSize, "connections allowed to wait for a worker")
	flag.DurationVar(&cfg.ReadTimeout, "read-timeout", cfg.ReadTimeout, "per-connection read timeout, 0 disables")
	flag.DurationVar(&cfg.WriteTimeout, "write-timeout", cfg.WriteTimeout, "per-connection write timeout, 0 disables")
	logLevel := flag.String("log-level", "info", "log level (debug, info, warn, error)")
	flag.Parse()

	log, err := newLogger(*logLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid log level: %v\n", err)
		os.Exit(2)
	}
	cfg.Logger = log

	app, err := server.NewBuilder(cfg).
		Use(middleware.Logger(log)).
		Route("/", []string{"GET"}, Home).
		Route("/submit", []string{"POST"}, Submit).
		Build()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	srv, err := server.Serve(app)
	if err != nil {
		log.Fatal().Err(err).Msg("error starting server")
	}
	log.Info().Msgf("Server running on http://%s", srv.Addr())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	if err := srv.Close(); err != nil {
		log.Error().Err(err).Msg("error stopping server")
	}
	log.Info().Msg("Server gracefully stopped")
}
