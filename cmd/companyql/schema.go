package main

import (
	"fmt"

	"github.com/gartstein/companyql/internal/directory/graph"
	"github.com/spf13/cobra"
)

var schemaRaw bool

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the GraphQL schema",
	Long: `Print the GraphQL schema document served by the API. By default the
document is validated and normalised; --raw prints it as embedded.`,
	Args: cobra.NoArgs,
	// the schema needs neither config nor database
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	RunE: func(cmd *cobra.Command, args []string) error {
		if schemaRaw {
			_, err := fmt.Fprint(cmd.OutOrStdout(), graph.SDL())
			return err
		}
		return graph.FormatSchema(cmd.OutOrStdout())
	},
}

func init() {
	schemaCmd.Flags().BoolVar(&schemaRaw, "raw", false, "Print the schema document as embedded")
	rootCmd.AddCommand(schemaCmd)
}
