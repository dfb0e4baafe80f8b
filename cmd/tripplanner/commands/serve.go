package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"tripplanner/internal/server"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the planner JSON API",
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := buildWire()
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv := server.New(w.Sessions, w.App, w.Metrics, w.Logger)
			return srv.ListenAndServe(ctx, cfg.Listen)
		},
	}
	cmd.Flags().String("listen", ":8080", "HTTP listen address")
	cmd.Flags().Duration("session-ttl", 0, "idle lifetime of a session (default 12h)")
	_ = viper.BindPFlag("listen", cmd.Flags().Lookup("listen"))
	_ = viper.BindPFlag("session_ttl", cmd.Flags().Lookup("session-ttl"))
	return cmd
}
