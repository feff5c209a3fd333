// Package models defines the core domain models for the Company and Employee
// entities as the resolvers see them, independent of their storage layout.
package models

// Company defines the domain model for a company entity.
type Company struct {
	// ID is the database-generated surrogate key.
	ID int
	// Name is the company's name, at most 50 characters.
	Name string
}
