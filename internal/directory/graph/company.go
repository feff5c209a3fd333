package graph

import (
	"context"

	"github.com/gartstein/companyql/internal/directory/models"
	"go.uber.org/zap"
)

// CompanyResolver resolves the fields of the Company type.
type CompanyResolver struct {
	root    *Resolver
	company *models.Company
}

func newCompanyResolver(root *Resolver, company *models.Company) *CompanyResolver {
	return &CompanyResolver{root: root, company: company}
}

func newCompanyResolvers(root *Resolver, companies []*models.Company) []*CompanyResolver {
	resolvers := make([]*CompanyResolver, 0, len(companies))
	for _, c := range companies {
		resolvers = append(resolvers, newCompanyResolver(root, c))
	}
	return resolvers
}

func (c *CompanyResolver) ID() int32 {
	return int32(c.company.ID)
}

func (c *CompanyResolver) Name() string {
	return c.company.Name
}

// Employees issues the second lookup for the company's employees.
func (c *CompanyResolver) Employees(ctx context.Context) ([]*EmployeeResolver, error) {
	employees, err := c.root.companies.CompanyEmployees(ctx, c.company)
	if err != nil {
		c.root.logger.Error("Company.employees failed", zap.Int("company_id", c.company.ID), zap.Error(err))
		return nil, err
	}
	return newEmployeeResolvers(c.root, employees), nil
}
