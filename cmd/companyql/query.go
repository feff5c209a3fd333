package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	graphql "github.com/graph-gophers/graphql-go"
	"github.com/spf13/cobra"
	"github.com/tidwall/pretty"
)

var (
	queryJSON      bool
	queryVariables string
	queryOperation string
)

var queryCmd = &cobra.Command{
	Use:     "query <document>",
	Aliases: []string{"graphql"},
	Short:   "Execute a GraphQL query in-process",
	Long: `Execute a GraphQL query against the configured database without
starting the server.

Examples:
  companyql query '{ Companies { id name } }'
  companyql query '{ Employee(id: "1") { employeeName company { name } } }'
  companyql query -v '{"id": "1"}' 'query Get($id: String!) { Company(id: $id) { name } }'
  echo '{ Employees { id } }' | companyql query`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var document string
		if len(args) == 1 {
			document = args[0]
		} else {
			stdin, err := readFromStdin()
			if err != nil {
				return err
			}
			if stdin == "" {
				return fmt.Errorf("no query provided (pass as argument or pipe to stdin)")
			}
			document = stdin
		}

		var variables map[string]interface{}
		if queryVariables != "" {
			if err := json.Unmarshal([]byte(queryVariables), &variables); err != nil {
				return fmt.Errorf("invalid variables JSON: %w", err)
			}
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
		return runQuery(cmd.Context(), schema, cmd.OutOrStdout(), document, queryOperation, variables, queryJSON)
	},
}

func init() {
	queryCmd.Flags().BoolVar(&queryJSON, "json", false, "Print the raw JSON response")
	queryCmd.Flags().StringVarP(&queryVariables, "variables", "v", "", "Query variables as a JSON object")
	queryCmd.Flags().StringVarP(&queryOperation, "operation", "o", "", "Operation name for multi-operation documents")
	rootCmd.AddCommand(queryCmd)
}

// runQuery executes document and writes the response envelope to w. The
// envelope is written even when it carries errors.
func runQuery(ctx context.Context, schema *graphql.Schema, w io.Writer, document, operation string, variables map[string]interface{}, raw bool) error {
	resp := schema.Exec(ctx, document, operation, variables)

	out, err := json.Marshal(resp)
	if err != nil {
		return fmt.Errorf("failed to encode response: %w", err)
	}
	if !raw {
		out = pretty.Color(pretty.Pretty(out), nil)
	}
	if _, err := fmt.Fprintln(w, strings.TrimRight(string(out), "\n")); err != nil {
		return err
	}

	if len(resp.Errors) > 0 {
		msgs := make([]string, 0, len(resp.Errors))
		for _, qe := range resp.Errors {
			msgs = append(msgs, qe.Message)
		}
		return fmt.Errorf("graphql: %s", strings.Join(msgs, "; "))
	}
	return nil
}

// readFromStdin reads the query from stdin if data is piped in.
func readFromStdin() (string, error) {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return "", fmt.Errorf("checking stdin: %w", err)
	}
	if (stat.Mode() & os.ModeCharDevice) != 0 {
		return "", nil
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("reading stdin: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}
