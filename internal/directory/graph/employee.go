package graph

import (
	"context"

	"github.com/gartstein/companyql/internal/directory/models"
	"go.uber.org/zap"
)

// EmployeeResolver resolves the fields of the Employee type.
type EmployeeResolver struct {
	root     *Resolver
	employee *models.Employee
}

func newEmployeeResolver(root *Resolver, employee *models.Employee) *EmployeeResolver {
	return &EmployeeResolver{root: root, employee: employee}
}

func newEmployeeResolvers(root *Resolver, employees []*models.Employee) []*EmployeeResolver {
	resolvers := make([]*EmployeeResolver, 0, len(employees))
	for _, emp := range employees {
		resolvers = append(resolvers, newEmployeeResolver(root, emp))
	}
	return resolvers
}

func (r *EmployeeResolver) ID() int32 {
	return int32(r.employee.ID)
}

func (r *EmployeeResolver) CompanyID() int32 {
	return int32(r.employee.CompanyID)
}

func (r *EmployeeResolver) EmployeeName() string {
	return r.employee.EmployeeName
}

func (r *EmployeeResolver) Gender() string {
	return r.employee.Gender
}

func (r *EmployeeResolver) Email() string {
	return r.employee.Email
}

// Company issues the second lookup for the referenced company.
func (r *EmployeeResolver) Company(ctx context.Context) (*CompanyResolver, error) {
	company, err := r.root.employees.EmployeeCompany(ctx, r.employee)
	if err != nil {
		r.root.logger.Error("Employee.company failed", zap.Int("employee_id", r.employee.ID), zap.Error(err))
		return nil, err
	}
	return newCompanyResolver(r.root, company), nil
}
