package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	cli "github.com/urfave/cli/v3"

	"github.com/mchmarny/docnav/pkg/content"
	"github.com/mchmarny/docnav/pkg/docs"
	"github.com/mchmarny/docnav/pkg/logger"
	"github.com/mchmarny/docnav/pkg/menu"
	"github.com/mchmarny/docnav/pkg/metric"
	"github.com/mchmarny/docnav/pkg/server"
)

var (
	version = "v0.0.0"  // Set at build time via -ldflags "-X main.version=version"
	commit  = "none"    // Set at build time via -ldflags "-X main.commit=commit"
	date    = "unknown" // Set at build time via -ldflags "-X main.date=date"
)

func main() {
	if err := newApp().Run(context.Background(), os.Args); err != nil {
		slog.Error("command failed", "error", err)
		os.Exit(1)
	}
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:    "docnav",
		Usage:   "Documentation menus, pagination and breadcrumbs",
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "content",
				Usage:   "Content root holding the menus and shared namespaces",
				Value:   "content",
				Sources: cli.EnvVars("DOCNAV_CONTENT"),
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (debug, info, warn, error)",
				Sources: cli.EnvVars(logger.EnvVarLogLevel),
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			logger.SetDefaultLoggerWithLevel("docnav", version, cmd.String("log-level"))
			return ctx, nil
		},
		Commands: []*cli.Command{
			serveCmd(),
			menuCmd(),
			paginationCmd(),
			breadcrumbsCmd(),
			snippetCmd(),
		},
	}
}

func serveCmd() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the menu API over HTTP",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "port",
				Usage:   "Port to run the server on",
				Value:   server.DefaultPort,
				Sources: cli.EnvVars("DOCNAV_PORT"),
			},
			&cli.DurationFlag{
				Name:    "read-timeout",
				Usage:   "Maximum duration for reading a request",
				Value:   server.DefaultReadTimeout,
				Sources: cli.EnvVars("DOCNAV_READ_TIMEOUT"),
			},
			&cli.DurationFlag{
				Name:    "write-timeout",
				Usage:   "Maximum duration for writing a response",
				Value:   server.DefaultWriteTimeout,
				Sources: cli.EnvVars("DOCNAV_WRITE_TIMEOUT"),
			},
			&cli.DurationFlag{
				Name:    "idle-timeout",
				Usage:   "Maximum keep-alive idle time",
				Value:   server.DefaultIdleTimeout,
				Sources: cli.EnvVars("DOCNAV_IDLE_TIMEOUT"),
			},
			&cli.DurationFlag{
				Name:    "shutdown-timeout",
				Usage:   "Grace period for in-flight requests on shutdown",
				Value:   server.DefaultShutdownTimeout,
				Sources: cli.EnvVars("DOCNAV_SHUTDOWN_TIMEOUT"),
			},
			&cli.IntFlag{
				Name:    "max-header-bytes",
				Usage:   "Maximum size of request headers",
				Value:   server.DefaultMaxHeaderBytes,
				Sources: cli.EnvVars("DOCNAV_MAX_HEADER_BYTES"),
			},
			&cli.StringFlag{
				Name:    "tls-cert",
				Usage:   "TLS certificate file, enables HTTPS together with --tls-key",
				Sources: cli.EnvVars("DOCNAV_TLS_CERT"),
			},
			&cli.StringFlag{
				Name:    "tls-key",
				Usage:   "TLS private key file",
				Sources: cli.EnvVars("DOCNAV_TLS_KEY"),
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			reg := prometheus.NewRegistry()

			opts, err := serverOptions(cmd)
			if err != nil {
				return err
			}
			opts = append(opts,
				server.WithRegistry(reg),
				server.WithPrometheusMetrics(),
				server.WithErrorLog(logger.NewLogLogger(slog.LevelError, false)),
			)

			slog.Info("starting docnav", "commit", commit, "date", date)

			r := menu.NewResolver(
				content.NewDir(cmd.String("content")),
				menu.WithDiagnostics(slog.Default()),
				menu.WithCounter(metric.NewResolutionCounter(reg)),
			)

			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()

			return menu.Run(ctx, r, opts...)
		},
	}
}

// serverOptions maps the serve flags to server options.
func serverOptions(cmd *cli.Command) ([]server.Option, error) {
	opts := []server.Option{
		server.WithPort(int(cmd.Int("port"))),
		server.WithReadTimeout(cmd.Duration("read-timeout")),
		server.WithWriteTimeout(cmd.Duration("write-timeout")),
		server.WithIdleTimeout(cmd.Duration("idle-timeout")),
		server.WithShutdownTimeout(cmd.Duration("shutdown-timeout")),
		server.WithMaxHeaderBytes(int(cmd.Int("max-header-bytes"))),
	}

	cert, key := cmd.String("tls-cert"), cmd.String("tls-key")
	switch {
	case cert != "" && key != "":
		opts = append(opts, server.WithTLS(server.TLSConfig{CertFile: cert, KeyFile: key}))
	case cert != "" || key != "":
		return nil, fmt.Errorf("--tls-cert and --tls-key must be set together")
	}

	return opts, nil
}

func menuCmd() *cli.Command {
	return &cli.Command{
		Name:      "menu",
		Usage:     "Print a resolved menu tree",
		ArgsUsage: "<id>",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			id := cmd.Args().First()
			if id == "" {
				return fmt.Errorf("menu id argument is required")
			}
			return printJSON(cmd.Writer, resolver(cmd).Resolve(ctx, id))
		},
	}
}

func paginationCmd() *cli.Command {
	return &cli.Command{
		Name:      "pagination",
		Usage:     "Print the previous and next pages of a path",
		ArgsUsage: "<id> <path>",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			id, path, err := idAndPath(cmd)
			if err != nil {
				return err
			}
			tree := resolver(cmd).Resolve(ctx, id)
			return printJSON(cmd.Writer, menu.Paginate(tree, path))
		},
	}
}

func breadcrumbsCmd() *cli.Command {
	return &cli.Command{
		Name:      "breadcrumbs",
		Usage:     "Print the breadcrumb trail of a path",
		ArgsUsage: "<id> <path>",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			id, path, err := idAndPath(cmd)
			if err != nil {
				return err
			}
			tree := resolver(cmd).Resolve(ctx, id)
			return printJSON(cmd.Writer, menu.Breadcrumbs(tree, path))
		},
	}
}

func snippetCmd() *cli.Command {
	return &cli.Command{
		Name:      "snippet",
		Usage:     "Print a code snippet, optionally limited to a region",
		ArgsUsage: "<file> [region]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "dir",
				Usage:   "Snippet directory",
				Value:   "content/snippets",
				Sources: cli.EnvVars("DOCNAV_SNIPPETS"),
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			file := cmd.Args().Get(0)
			if file == "" {
				return fmt.Errorf("file argument is required")
			}
			s := docs.Snippets{Root: cmd.String("dir")}
			_, err := fmt.Fprintln(cmd.Writer, s.Load(file, cmd.Args().Get(1)))
			return err
		},
	}
}

func resolver(cmd *cli.Command) *menu.Resolver {
	return menu.NewResolver(content.NewDir(cmd.String("content")))
}

func idAndPath(cmd *cli.Command) (string, string, error) {
	id, path := cmd.Args().Get(0), cmd.Args().Get(1)
	if id == "" || path == "" {
		return "", "", fmt.Errorf("menu id and path arguments are required")
	}
	return id, path, nil
}

func printJSON(w io.Writer, v any) error {
	if w == nil {
		w = os.Stdout
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
