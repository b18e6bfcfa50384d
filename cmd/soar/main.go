// Command soar builds and serves the demo site shipped with Soar.
//
//	soar build --output=dist
//	soar serve --port=8000
//	soar publish --bucket=my-site
package main

import (
	"log/slog"
	"os"

	"github.com/vango-dev/soar/internal/config"
	"github.com/vango-dev/soar/internal/errors"
	"github.com/vango-dev/soar/pkg/middleware"
	"github.com/vango-dev/soar/pkg/site"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	site.Version, site.Commit, site.Date = version, commit, date

	cfg, err := config.LoadFromWorkingDir()
	if err != nil {
		errors.PrintError(err)
		os.Exit(1)
	}

	level := slog.LevelInfo
	if os.Getenv("SOAR_DEBUG") != "" {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	s, err := site.New(cfg,
		site.WithLogger(logger),
		site.WithStatic("static"),
		site.WithMiddleware(
			middleware.Logging(logger),
			middleware.OpenTelemetry(),
			middleware.Prometheus(),
		),
	)
	if err != nil {
		errors.PrintError(err)
		os.Exit(1)
	}
	if err := register(s); err != nil {
		errors.PrintError(err)
		os.Exit(1)
	}

	site.Execute(s)
}
