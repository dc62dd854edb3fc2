package main

import (
	"context"
	"os"

	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var log = logrus.WithField("module", "cmd/mapo")

func main() {
	rootCmd := &cobra.Command{
		Use:           "mapo",
		Short:         "Mapo-gu district management simulation",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(simulateCmd())

	if err := rootCmd.Execute(); err != nil {
		log.WithError(err).Error("command failed")
		os.Exit(1)
	}
}

func setup() (Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return Config{}, err
	}
	if err := configureLogging(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func serveCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the game over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := setup()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.HTTPAddr = addr
			}
			a := buildApp(cfg)
			if _, err := a.provider.Catalog(context.Background()); err != nil {
				return err
			}

			s := server.Default(server.WithHostPorts(cfg.HTTPAddr))
			a.handler.RegisterRoutes(s)
			log.WithField("addr", cfg.HTTPAddr).Info("mapo server listening")
			s.Spin()
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides MAPO_HTTP_ADDR)")
	return cmd
}
