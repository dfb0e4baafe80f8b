package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"tripplanner/internal/shell"
)

func shellCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Plan a trip interactively (type help for commands)",
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := buildWire()
			if err != nil {
				return err
			}
			sess, err := w.Sessions.CreateSession()
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()

			fmt.Fprintln(cmd.OutOrStdout(), "tripplanner shell - type help for commands")
			return shell.New(w.App, sess, cmd.OutOrStdout()).Run(ctx, cmd.InOrStdin())
		},
	}
}
