package main

import (
	"fmt"

	"github.com/gartstein/companyql/internal/directory/seed"
	"github.com/spf13/cobra"
)

var seedOpts seed.Options

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Populate the database with fake companies and employees",
	Long: `Insert generated companies and employees for local development.
The tables are synchronized first, so seed works against an empty database.

Examples:
  # Five companies with ten employees each
  companyql seed

  # Reproducible data set
  companyql seed --companies 3 --employees 4 --seed 42`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dbConf := cfg.DBConfig()
		dbConf.Sync = true

		repo, err := openRepository(cfg, dbConf, logger)
		if err != nil {
			return err
		}
		defer repo.Close()

		res, err := seed.Populate(cmd.Context(), repo, seedOpts, logger)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Inserted %d companies and %d employees\n", res.Companies, res.Employees)
		return nil
	},
}

func init() {
	seedCmd.Flags().IntVar(&seedOpts.Companies, "companies", 5, "Number of companies to create")
	seedCmd.Flags().IntVar(&seedOpts.EmployeesPerCompany, "employees", 10, "Employees per company")
	seedCmd.Flags().Int64Var(&seedOpts.Seed, "seed", 0, "Random seed (0 picks one)")
	rootCmd.AddCommand(seedCmd)
}
