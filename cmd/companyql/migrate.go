package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the company and employee tables",
	Long: `Synchronize the database schema once and exit, regardless of DB_SYNC.
Tables are created or altered to match the row models; nothing is dropped.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dbConf := cfg.DBConfig()
		dbConf.Sync = true

		repo, err := openRepository(cfg, dbConf, logger)
		if err != nil {
			return err
		}
		defer repo.Close()

		logger.Info("Schema synchronized", zap.String("driver", dbConf.Driver), zap.String("database", dbConf.DBName))
		fmt.Fprintln(cmd.OutOrStdout(), "Schema synchronized")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
