package db

import (
	"errors"
	"fmt"
	"sync"

	e "github.com/gartstein/companyql/internal/directory/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/schema"
)

// table is the generic find / find-by-id access over one mapped row type.
// It carries no connection so the same table serves plain and transactional
// handles.
type table[T any] struct {
	mapping Mapping
}

func newTable[T any](db *gorm.DB, m Mapping) (table[T], error) {
	var row T
	s, err := schema.Parse(&row, &sync.Map{}, db.NamingStrategy)
	if err != nil {
		return table[T]{}, fmt.Errorf("failed to parse %s row model: %w", m.Entity, err)
	}
	if err := m.Verify(s); err != nil {
		return table[T]{}, fmt.Errorf("invalid mapping: %w", err)
	}
	return table[T]{mapping: m}, nil
}

// scope restricts a query to the mapped table and columns. Relationship
// fields are never selected, which keeps them lazy.
func (t table[T]) scope(db *gorm.DB) *gorm.DB {
	return db.Table(t.mapping.Table).Select(t.mapping.ColumnNames())
}

func (t table[T]) findByID(db *gorm.DB, id int) (*T, error) {
	var row T
	pk := t.mapping.PrimaryKey()
	err := t.scope(db).
		Where(clause.Eq{Column: clause.Column{Name: pk.Name}, Value: id}).
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, e.ErrNotFound
		}
		return nil, err
	}
	return &row, nil
}

// find returns every matching row in storage order; no ORDER BY is added.
func (t table[T]) find(db *gorm.DB, conds ...clause.Expression) ([]T, error) {
	rows := make([]T, 0)
	q := t.scope(db)
	for _, cond := range conds {
		q = q.Where(cond)
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (t table[T]) findBy(db *gorm.DB, field string, value interface{}) ([]T, error) {
	col, ok := t.mapping.Column(field)
	if !ok {
		return nil, fmt.Errorf("%s has no mapped field %q", t.mapping.Entity, field)
	}
	return t.find(db, clause.Eq{Column: clause.Column{Name: col.Name}, Value: value})
}
