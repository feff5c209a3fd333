// Package models contains the storage rows for the application,
// configured to work using GORM as the ORM.
package models

// Company is a row of the company table.
type Company struct {
	ID   int32  `gorm:"column:id;primaryKey;autoIncrement"`
	Name string `gorm:"column:name;type:varchar(50);size:50;not null"`
}

// TableName pins the table name; gorm would otherwise pluralise it.
func (Company) TableName() string {
	return "company"
}
