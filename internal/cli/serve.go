package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/ontoview/internal/api"
	"github.com/matzehuels/ontoview/pkg/session"
)

func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API",
		Long: `Serve the ontology session API over HTTP.

Clients create a session, load a document into it by URL or upload, and
query it. Idle sessions expire after server.session_ttl.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if addr == "" {
				addr = c.Config.Server.Addr
			}

			runner, err := c.newRunner(ctx, noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			store := session.NewMemoryStore(c.Config.Server.SessionTTL.Duration)
			srv := api.NewServer(runner, store, c.Logger, c.Config)

			printInfo("Listening on %s", StyleHighlight.Render(addr))
			return srv.ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	return cmd
}
