package models

// Employee is a row of the employee table.
// Company is declared only so schema synchronization emits the foreign key
// constraint; it is never preloaded.
type Employee struct {
	ID           int32    `gorm:"column:id;primaryKey;autoIncrement"`
	CompanyID    int32    `gorm:"column:companyId;not null"`
	Company      *Company `gorm:"foreignKey:CompanyID;references:ID"`
	EmployeeName string   `gorm:"column:employeeName;type:varchar(50);size:50;not null"`
	Gender       *string  `gorm:"column:gender;type:varchar(6);size:6"`
	Email        *string  `gorm:"column:email;type:varchar(50);size:50"`
}

// TableName pins the table name; gorm would otherwise pluralise it.
func (Employee) TableName() string {
	return "employee"
}
