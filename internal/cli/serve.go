package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/pageza/recipe-realm/backend/internal/server"
	"github.com/spf13/cobra"
)

func newServeCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv, cleanup, err := server.Bootstrap(ctx, rt.cfg, rt.logger)
			if err != nil {
				return err
			}
			defer cleanup()
			return srv.Run(ctx)
		},
	}
}
