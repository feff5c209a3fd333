package models

// Employee defines the domain model for an employee entity.
// Optional columns that are NULL in storage are projected as empty strings.
type Employee struct {
	// ID is the database-generated surrogate key.
	ID int
	// CompanyID references the Company the employee belongs to.
	CompanyID int
	// EmployeeName is the employee's display name.
	EmployeeName string
	// Gender is a short free-form code such as "F" or "M".
	Gender string
	// Email is the employee's address.
	Email string
}
