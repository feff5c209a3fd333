package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/gartstein/companyql/internal/directory/config"
	"github.com/gartstein/companyql/internal/directory/controller"
	"github.com/gartstein/companyql/internal/directory/db"
	e "github.com/gartstein/companyql/internal/directory/errors"
	"github.com/gartstein/companyql/internal/directory/graph"
	graphql "github.com/graph-gophers/graphql-go"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	configPath string

	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "companyql",
	Short: "Read-only GraphQL API over companies and their employees",
	Long: `companyql serves Company and Employee records from a relational
database over GraphQL.

Settings come from the --config YAML file and the environment; environment
variables use the same keys and take precedence.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		logger, err = initLogger(cfg)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config.yaml", "Path to the YAML config file")
}

// initLogger initializes a Zap production logger at the configured level.
func initLogger(cfg *config.Config) (*zap.Logger, error) {
	level, err := cfg.Level()
	if err != nil {
		return nil, err
	}
	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(level)
	return zc.Build()
}

// openRepository connects to the database, retrying transient failures up
// to DB_CONNECT_RETRIES times with exponential backoff.
func openRepository(cfg *config.Config, dbConf *db.Config, logger *zap.Logger) (*db.Repository, error) {
	var repo *db.Repository
	op := func() error {
		var err error
		repo, err = db.NewRepository(dbConf, logger)
		if errors.Is(err, e.ErrInvalidInput) {
			return backoff.Permanent(err)
		}
		return err
	}

	policy := backoff.WithMaxRetries(backoff.NewExponentialBackOff(), uint64(cfg.DBConnectRetries))
	notify := func(err error, wait time.Duration) {
		logger.Warn("Database not ready, retrying", zap.Error(err), zap.Duration("wait", wait))
	}
	if err := backoff.RetryNotify(op, policy, notify); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	return repo, nil
}

// newSchema wires the services over repo into the executable schema.
func newSchema(repo *db.Repository, logger *zap.Logger) (*graphql.Schema, error) {
	return graph.NewSchema(
		controller.NewCompanyService(repo),
		controller.NewEmployeeService(repo, logger),
		logger,
	)
}
