package commands

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"tripplanner/internal/app"
)

var (
	cfgFile    string
	home       string
	passphrase string

	cfg    app.Config
	logger *slog.Logger
)

func Execute() error {
	root := &cobra.Command{
		Use:           "tripplanner",
		Short:         "Session-scoped trip planner with AI travel advice",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			c, err := app.LoadConfig(viper.GetViper())
			if err != nil {
				return err
			}
			if err := os.MkdirAll(c.Home, 0o700); err != nil {
				return err
			}
			l, err := app.NewLogger(os.Stderr, c.Log)
			if err != nil {
				return err
			}
			cfg, logger = c, l
			slog.SetDefault(l)
			return nil
		},
	}

	cobra.OnInitialize(initConfig)

	root.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default $HOME/.tripplanner.yaml)")
	root.PersistentFlags().StringVar(&home, "home", "", "data dir (default ~/.tripplanner)")
	root.PersistentFlags().StringVarP(&passphrase, "passphrase", "p", "", "passphrase for the secrets file")
	root.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	root.PersistentFlags().String("log-format", "text", "log format (text, json)")
	bindFlag(root, "home", "home")
	bindFlag(root, "passphrase", "passphrase")
	bindFlag(root, "log.level", "log-level")
	bindFlag(root, "log.format", "log-format")

	root.AddCommand(serveCmd(), shellCmd(), secretCmd(), versionCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return err
	}
	return nil
}

func bindFlag(cmd *cobra.Command, key, flag string) {
	f := cmd.PersistentFlags().Lookup(flag)
	if f == nil {
		f = cmd.Flags().Lookup(flag)
	}
	_ = viper.BindPFlag(key, f)
}

func initConfig() {
	// A missing .env file is fine.
	_ = godotenv.Load()

	app.SetDefaults(viper.GetViper())
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else if dir, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(dir)
		viper.SetConfigName(".tripplanner")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("TRIPPLANNER")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			fmt.Fprintln(os.Stderr, "warning: reading config:", err)
		}
	}
}

// buildWire resolves the inference token and builds the dependency graph.
func buildWire() (*app.Wire, error) {
	return app.NewWire(cfg, logger)
}
