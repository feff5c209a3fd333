package db

import (
	"fmt"
	"strings"

	"gorm.io/gorm/schema"
)

// Column describes how one entity field is stored.
type Column struct {
	// Field is the entity field name exposed through GraphQL.
	Field string
	// Name is the column name in the table.
	Name string
	// Type is the SQL type family of the column, one of TypeInteger or
	// TypeVarchar.
	Type string
	// Size is the maximum length for varchar columns, zero otherwise.
	Size int
	// Nullable reports whether the column accepts NULL.
	Nullable bool
	// PrimaryKey marks the surrogate key column.
	PrimaryKey bool
	// Generated marks values assigned by the database on insert.
	Generated bool
	// References is "table.column" for foreign keys.
	References string
}

// Column type families. Integer columns hold 32-bit values, matching the
// GraphQL Int they are served as.
const (
	TypeInteger = "integer"
	TypeVarchar = "varchar"
)

// Mapping is the hand-written correspondence between an entity and its table.
type Mapping struct {
	Entity  string
	Table   string
	Columns []Column
}

// CompanyMapping maps Company onto the company table.
var CompanyMapping = Mapping{
	Entity: "Company",
	Table:  "company",
	Columns: []Column{
		{Field: "id", Name: "id", Type: TypeInteger, PrimaryKey: true, Generated: true},
		{Field: "name", Name: "name", Type: TypeVarchar, Size: 50},
	},
}

// EmployeeMapping maps Employee onto the employee table.
var EmployeeMapping = Mapping{
	Entity: "Employee",
	Table:  "employee",
	Columns: []Column{
		{Field: "id", Name: "id", Type: TypeInteger, PrimaryKey: true, Generated: true},
		{Field: "companyId", Name: "companyId", Type: TypeInteger, References: "company.id"},
		{Field: "employeeName", Name: "employeeName", Type: TypeVarchar, Size: 50},
		{Field: "gender", Name: "gender", Type: TypeVarchar, Size: 6, Nullable: true},
		{Field: "email", Name: "email", Type: TypeVarchar, Size: 50, Nullable: true},
	},
}

// PrimaryKey returns the key column. Every mapping declares exactly one.
func (m Mapping) PrimaryKey() Column {
	for _, c := range m.Columns {
		if c.PrimaryKey {
			return c
		}
	}
	panic(fmt.Sprintf("mapping %s has no primary key", m.Entity))
}

// ColumnNames lists the mapped columns in declaration order.
func (m Mapping) ColumnNames() []string {
	names := make([]string, 0, len(m.Columns))
	for _, c := range m.Columns {
		names = append(names, c.Name)
	}
	return names
}

// Column looks a column up by its entity field name.
func (m Mapping) Column(field string) (Column, bool) {
	for _, c := range m.Columns {
		if c.Field == field {
			return c, true
		}
	}
	return Column{}, false
}

// ForeignKey returns the column that references table.
func (m Mapping) ForeignKey(table string) (Column, bool) {
	for _, c := range m.Columns {
		if strings.HasPrefix(c.References, table+".") {
			return c, true
		}
	}
	return Column{}, false
}

// Verify checks the mapping against the schema gorm parsed from a row struct,
// so the two descriptions cannot drift apart.
func (m Mapping) Verify(s *schema.Schema) error {
	if s.Table != m.Table {
		return fmt.Errorf("%s: mapped to table %q but row model uses %q", m.Entity, m.Table, s.Table)
	}
	for _, c := range m.Columns {
		f, ok := s.FieldsByDBName[c.Name]
		if !ok {
			return fmt.Errorf("%s.%s: column %q missing from row model", m.Entity, c.Field, c.Name)
		}
		if !typeMatches(c, f) {
			return fmt.Errorf("%s.%s: type %s, row model has %s(%d)", m.Entity, c.Field, c.Type, f.GORMDataType, f.Size)
		}
		if f.PrimaryKey != c.PrimaryKey {
			return fmt.Errorf("%s.%s: primary key mismatch", m.Entity, c.Field)
		}
		if f.AutoIncrement != c.Generated {
			return fmt.Errorf("%s.%s: generated value mismatch", m.Entity, c.Field)
		}
		if c.Size > 0 && f.Size != c.Size {
			return fmt.Errorf("%s.%s: size %d, row model has %d", m.Entity, c.Field, c.Size, f.Size)
		}
		if !c.PrimaryKey && f.NotNull == c.Nullable {
			return fmt.Errorf("%s.%s: nullability mismatch", m.Entity, c.Field)
		}
	}
	return nil
}

// typeMatches compares the type family with gorm's parsed data type. Integer
// columns must be backed by a 32-bit field so synchronized tables cannot
// store values the API would truncate.
func typeMatches(c Column, f *schema.Field) bool {
	switch c.Type {
	case TypeInteger:
		return f.GORMDataType == schema.Int && f.Size == 32
	case TypeVarchar:
		return f.GORMDataType == schema.String
	default:
		return false
	}
}
