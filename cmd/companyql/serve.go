package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/gartstein/companyql/internal/directory/handlers"
	"github.com/gartstein/companyql/internal/directory/metrics"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:     "serve",
	Aliases: []string{"s"},
	Short:   "Start the GraphQL server",
	Long: `Start an HTTP server that serves the GraphQL API.

The server exposes:
  - GraphQL endpoint at /graphql (POST)
  - GraphQL Playground at /graphql (GET) when GRAPHQL_PLAYGROUND is true
  - Database health at /health
  - Prometheus metrics at /metrics`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("port") {
			cfg.AppPort = servePort
		}

		repo, err := openRepository(cfg, cfg.DBConfig(), logger)
		if err != nil {
			return err
		}
		defer repo.Close()

		schema, err := newSchema(repo, logger)
		if err != nil {
			return err
		}

		router := handlers.NewRouter(handlers.RouterConfig{
			Schema:     schema,
			DB:         repo,
			Metrics:    metrics.NewCollection(),
			Playground: cfg.Playground,
			Logger:     logger,
		})

		server := handlers.NewServer(cfg.AppPort, router, logger)
		if err := server.Start(); err != nil {
			return err
		}

		waitForShutdown(server, logger)
		return nil
	},
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "Port to listen on (overrides APP_PORT)")
	rootCmd.AddCommand(serveCmd)
}

// waitForShutdown blocks until an interrupt or SIGTERM is received, then shuts down the server.
func waitForShutdown(server *handlers.Server, logger *zap.Logger) {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	server.Stop()
	logger.Info("Server stopped properly")
}
