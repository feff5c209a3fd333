// Package graph binds the GraphQL schema to the company and employee services.
// Root queries forward their arguments to one service call; relationship
// fields issue their own second call only when selected.
package graph

import (
	"context"
	"errors"

	e "github.com/gartstein/companyql/internal/directory/errors"
	"github.com/gartstein/companyql/internal/directory/models"
	"go.uber.org/zap"
)

// CompanyController defines the company operations the resolvers invoke.
type CompanyController interface {
	GetCompany(ctx context.Context, id string) (*models.Company, error)
	ListCompanies(ctx context.Context) ([]*models.Company, error)
	CompanyEmployees(ctx context.Context, company *models.Company) ([]*models.Employee, error)
}

// EmployeeController defines the employee operations the resolvers invoke.
type EmployeeController interface {
	GetEmployee(ctx context.Context, id string) (*models.Employee, error)
	ListEmployees(ctx context.Context) ([]*models.Employee, error)
	EmployeeCompany(ctx context.Context, employee *models.Employee) (*models.Company, error)
}

// Resolver is the root resolver for the Query type.
type Resolver struct {
	companies CompanyController
	employees EmployeeController
	logger    *zap.Logger
}

// NewResolver creates a root resolver with the given services.
func NewResolver(companies CompanyController, employees EmployeeController, logger *zap.Logger) *Resolver {
	return &Resolver{
		companies: companies,
		employees: employees,
		logger:    logger.Named("graphql"),
	}
}

// Company resolves Query.Company. A missing row resolves to null.
func (r *Resolver) Company(ctx context.Context, args struct{ ID string }) (*CompanyResolver, error) {
	company, err := r.companies.GetCompany(ctx, args.ID)
	if err != nil {
		if errors.Is(err, e.ErrNotFound) {
			return nil, nil
		}
		r.logger.Error("Company query failed", zap.String("id", args.ID), zap.Error(err))
		return nil, err
	}
	return newCompanyResolver(r, company), nil
}

// Companies resolves Query.Companies.
func (r *Resolver) Companies(ctx context.Context) (*[]*CompanyResolver, error) {
	companies, err := r.companies.ListCompanies(ctx)
	if err != nil {
		r.logger.Error("Companies query failed", zap.Error(err))
		return nil, err
	}
	resolvers := newCompanyResolvers(r, companies)
	return &resolvers, nil
}

// Employee resolves Query.Employee. A missing row resolves to null.
func (r *Resolver) Employee(ctx context.Context, args struct{ ID string }) (*EmployeeResolver, error) {
	employee, err := r.employees.GetEmployee(ctx, args.ID)
	if err != nil {
		if errors.Is(err, e.ErrNotFound) {
			return nil, nil
		}
		r.logger.Error("Employee query failed", zap.String("id", args.ID), zap.Error(err))
		return nil, err
	}
	return newEmployeeResolver(r, employee), nil
}

// Employees resolves Query.Employees.
func (r *Resolver) Employees(ctx context.Context) (*[]*EmployeeResolver, error) {
	employees, err := r.employees.ListEmployees(ctx)
	if err != nil {
		r.logger.Error("Employees query failed", zap.Error(err))
		return nil, err
	}
	resolvers := newEmployeeResolvers(r, employees)
	return &resolvers, nil
}
