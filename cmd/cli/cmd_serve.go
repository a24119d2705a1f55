package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"fleetdelivery/cmd"
)

var serveEnvFile string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API and the batch scheduling job",
	Long: `Run the HTTP API and the batch scheduling job until interrupted.

Configuration comes from the environment, optionally seeded from an env file
(HTTP_PORT, DB_*, REDIS_ADDR, ESTIMATE_CACHE_TTL, OFFERS_FILE, BATCH_SCHEDULE,
RATE_LIMIT, RATE_BURST, LOG_LEVEL, OTEL_SERVICE_NAME).`,
	RunE: func(c *cobra.Command, _ []string) error {
		config, err := cmd.LoadConfig(serveEnvFile)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(c.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return cmd.RunServer(ctx, config, cmd.NewLogger(config))
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveEnvFile, "env-file", ".env", "Env file to load before reading the environment")
	rootCmd.AddCommand(serveCmd)
}
