package graph

import (
	_ "embed"
	"fmt"
	"io"

	"github.com/gartstein/companyql/internal/directory/db"
	graphql "github.com/graph-gophers/graphql-go"
	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/formatter"
	"go.uber.org/zap"
)

//go:embed schema.graphql
var schemaSDL string

// SDL returns the raw schema document.
func SDL() string {
	return schemaSDL
}

// LoadSchema parses and validates the schema document.
func LoadSchema() (*ast.Schema, error) {
	s, err := gqlparser.LoadSchema(&ast.Source{Name: "schema.graphql", Input: schemaSDL})
	if err != nil {
		return nil, fmt.Errorf("invalid graphql schema: %w", err)
	}
	return s, nil
}

// FormatSchema writes the normalised schema document to w.
func FormatSchema(w io.Writer) error {
	s, err := LoadSchema()
	if err != nil {
		return err
	}
	formatter.NewFormatter(w, formatter.WithIndent("  ")).FormatSchema(s)
	return nil
}

// checkMappings ensures every mapped entity field is declared on the object
// type of the same name.
func checkMappings(s *ast.Schema, mappings ...db.Mapping) error {
	for _, m := range mappings {
		def, ok := s.Types[m.Entity]
		if !ok || def.Kind != ast.Object {
			return fmt.Errorf("schema has no object type %s", m.Entity)
		}
		for _, c := range m.Columns {
			if def.Fields.ForName(c.Field) == nil {
				return fmt.Errorf("%s.%s is mapped but not declared in the schema", m.Entity, c.Field)
			}
		}
	}
	return nil
}

// NewSchema validates the schema document against the entity mappings and
// binds it to the resolvers.
func NewSchema(companies CompanyController, employees EmployeeController, logger *zap.Logger) (*graphql.Schema, error) {
	s, err := LoadSchema()
	if err != nil {
		return nil, err
	}
	if err := checkMappings(s, db.CompanyMapping, db.EmployeeMapping); err != nil {
		return nil, err
	}

	resolver := NewResolver(companies, employees, logger)
	schema, err := graphql.ParseSchema(schemaSDL, resolver,
		graphql.Logger(&panicLogger{logger: resolver.logger}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to bind graphql schema: %w", err)
	}
	return schema, nil
}
