package graph

import (
	"bytes"
	"testing"

	"github.com/gartstein/companyql/internal/directory/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vektah/gqlparser/v2/ast"
)

func TestLoadSchema(t *testing.T) {
	s, err := LoadSchema()
	require.NoError(t, err)

	require.NotNil(t, s.Query)
	for _, name := range []string{"Company", "Companies", "Employee", "Employees"} {
		assert.NotNil(t, s.Query.Fields.ForName(name), "Query.%s should be declared", name)
	}

	company := s.Query.Fields.ForName("Company")
	assert.False(t, company.Type.NonNull, "Company lookup should be nullable")
	assert.Equal(t, "String", company.Arguments.ForName("id").Type.Name())
}

func TestCheckMappings(t *testing.T) {
	s, err := LoadSchema()
	require.NoError(t, err)

	assert.NoError(t, checkMappings(s, db.CompanyMapping, db.EmployeeMapping))

	extra := db.Mapping{
		Entity:  "Company",
		Table:   "company",
		Columns: []db.Column{{Field: "founded", Name: "founded"}},
	}
	assert.ErrorContains(t, checkMappings(s, extra), "Company.founded")

	missing := db.Mapping{Entity: "Department", Table: "department"}
	assert.ErrorContains(t, checkMappings(s, missing), "no object type Department")
}

func TestCheckMappingsRejectsNonObject(t *testing.T) {
	s := &ast.Schema{Types: map[string]*ast.Definition{
		"Company": {Kind: ast.Scalar, Name: "Company"},
	}}
	assert.Error(t, checkMappings(s, db.CompanyMapping))
}

func TestFormatSchema(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, FormatSchema(&buf))

	out := buf.String()
	assert.Contains(t, out, "type Company")
	assert.Contains(t, out, "type Employee")
	assert.Contains(t, out, "Company(id: String!): Company")
	assert.Contains(t, out, "Employees: [Employee]")
}

func TestSDL(t *testing.T) {
	assert.Contains(t, SDL(), "type Query")
}
