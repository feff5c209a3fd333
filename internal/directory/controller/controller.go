// Package controller implements the service layer for the Company and
// Employee query surfaces. Each method coerces wire input and delegates to a
// single repository call; relationships are fetched by an explicit second call.
package controller

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	e "github.com/gartstein/companyql/internal/directory/errors"
	"github.com/gartstein/companyql/internal/directory/models"
	"go.uber.org/zap"
)

// CompanyRepository defines the storage interface for Company objects.
type CompanyRepository interface {
	GetCompany(ctx context.Context, id int) (*models.Company, error)
	ListCompanies(ctx context.Context) ([]*models.Company, error)
	ListEmployeesByCompany(ctx context.Context, companyID int) ([]*models.Employee, error)
}

// EmployeeRepository defines the storage interface for Employee objects.
type EmployeeRepository interface {
	GetEmployee(ctx context.Context, id int) (*models.Employee, error)
	ListEmployees(ctx context.Context) ([]*models.Employee, error)
	GetCompany(ctx context.Context, id int) (*models.Company, error)
}

// ParseID coerces a wire identifier to the integer key type. Keys are
// 32-bit, like the GraphQL Int they are served as.
func ParseID(raw string) (int, error) {
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: id %q is not a 32-bit integer", e.ErrInvalidInput, raw)
	}
	return int(id), nil
}

// CompanyService provides read access to companies and their employees.
type CompanyService struct {
	repo CompanyRepository
}

// NewCompanyService constructs a CompanyService over a repository.
func NewCompanyService(repo CompanyRepository) *CompanyService {
	return &CompanyService{repo: repo}
}

// GetCompany retrieves a Company by its wire ID, returning ErrNotFound if
// no row matches.
func (s *CompanyService) GetCompany(ctx context.Context, id string) (*models.Company, error) {
	key, err := ParseID(id)
	if err != nil {
		return nil, err
	}

	company, err := s.repo.GetCompany(ctx, key)
	if err != nil {
		if errors.Is(err, e.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get company: %w", err)
	}
	return company, nil
}

// ListCompanies returns every company in storage order.
func (s *CompanyService) ListCompanies(ctx context.Context) ([]*models.Company, error) {
	companies, err := s.repo.ListCompanies(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list companies: %w", err)
	}
	return companies, nil
}

// CompanyEmployees loads the employees of an already fetched company.
// The result is never nil.
func (s *CompanyService) CompanyEmployees(ctx context.Context, company *models.Company) ([]*models.Employee, error) {
	employees, err := s.repo.ListEmployeesByCompany(ctx, company.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees of company %d: %w", company.ID, err)
	}
	if employees == nil {
		employees = []*models.Employee{}
	}
	return employees, nil
}

// EmployeeService provides read access to employees and their company.
type EmployeeService struct {
	repo   EmployeeRepository
	logger *zap.Logger
}

// NewEmployeeService constructs an EmployeeService with a repository and a logger.
func NewEmployeeService(repo EmployeeRepository, logger *zap.Logger) *EmployeeService {
	return &EmployeeService{
		repo:   repo,
		logger: logger.Named("employee_service"),
	}
}

// GetEmployee retrieves an Employee by its wire ID, returning ErrNotFound if
// no row matches.
func (s *EmployeeService) GetEmployee(ctx context.Context, id string) (*models.Employee, error) {
	key, err := ParseID(id)
	if err != nil {
		return nil, err
	}

	employee, err := s.repo.GetEmployee(ctx, key)
	if err != nil {
		if errors.Is(err, e.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get employee: %w", err)
	}
	return employee, nil
}

// ListEmployees returns every employee in storage order.
func (s *EmployeeService) ListEmployees(ctx context.Context) ([]*models.Employee, error) {
	employees, err := s.repo.ListEmployees(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	return employees, nil
}

// EmployeeCompany loads the company an already fetched employee references.
// A dangling reference is reported rather than hidden, since the field is
// non-nullable.
func (s *EmployeeService) EmployeeCompany(ctx context.Context, employee *models.Employee) (*models.Company, error) {
	company, err := s.repo.GetCompany(ctx, employee.CompanyID)
	if err != nil {
		if errors.Is(err, e.ErrNotFound) {
			s.logger.Warn("Employee references missing company",
				zap.Int("employee_id", employee.ID),
				zap.Int("company_id", employee.CompanyID),
			)
		}
		return nil, fmt.Errorf("failed to get company %d of employee %d: %w", employee.CompanyID, employee.ID, err)
	}
	return company, nil
}
