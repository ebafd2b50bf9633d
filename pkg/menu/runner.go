package menu

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/mchmarny/docnav/pkg/server"
)

// Run serves the menu API backed by the provided resolver and blocks until
// the context is canceled or an error occurs.
func Run(ctx context.Context, r *Resolver, opt ...server.Option) error {
	opt = append(opt, server.WithSimpleHealth())

	NewAPI(r).RegisterHandlers(func(pattern string, h http.Handler) {
		opt = append(opt, server.WithHandler(pattern, h))
	})

	slog.Info("starting menu api")

	return server.New(opt...).Serve(ctx)
}
