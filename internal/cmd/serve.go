package cmd

import (
	"context"

	"github.com/urfave/cli/v3"
	"github.com/zhulik/pal"

	"xwitter/internal/api"
	"xwitter/internal/backend"
	"xwitter/internal/cmd/flags"
	"xwitter/internal/metrics"
	"xwitter/internal/postdetails"
	"xwitter/internal/store"
)

var serveCmd = &cli.Command{
	Name:  "serve",
	Usage: "Serve the Xwitter BFF proxy",
	Flags: []cli.Flag{
		flags.Addr,
		flags.MetricsAddr,
		flags.SecureCookies,
		flags.BackendURL,
		flags.BackendTimeout,
		flags.Store,
		flags.CacheTTL,
		flags.NATSURL,
		flags.NATSInit,
		flags.NATSBucket,
	},
	Action: func(ctx context.Context, c *cli.Command) error {
		return run(ctx, c,
			pal.Provide(&store.Store{}),
			pal.Provide(&backend.Client{}),
			pal.Provide(&postdetails.Service{}),
			pal.Provide(&api.Server{}),
			pal.Provide(&metrics.Server{}),
			pal.Provide(&metrics.Collector{}),
		)
	},
}
