// Package seed populates the company and employee tables with fake rows for
// local development. The query service itself never writes.
package seed

import (
	"context"
	"fmt"
	"math/rand"
	"strings"

	"github.com/gartstein/companyql/internal/directory/db"
	dbmodels "github.com/gartstein/companyql/internal/directory/db/models"
	"github.com/gartstein/companyql/internal/pkg/utils"
	"github.com/jaswdr/faker"
	"go.uber.org/zap"
)

// Options controls how many rows are generated.
type Options struct {
	Companies           int
	EmployeesPerCompany int
	// Seed makes the generated data reproducible. Zero picks a random seed.
	Seed int64
}

// Result reports the rows written.
type Result struct {
	Companies int
	Employees int
}

// Populate writes the generated rows in a single transaction.
func Populate(ctx context.Context, repo *db.Repository, opts Options, logger *zap.Logger) (*Result, error) {
	if opts.Companies < 0 || opts.EmployeesPerCompany < 0 {
		return nil, fmt.Errorf("seed counts must not be negative")
	}

	seed := opts.Seed
	if seed == 0 {
		seed = rand.Int63()
	}
	fake := faker.NewWithSeed(rand.NewSource(seed))
	logger = logger.Named("seed")

	res := &Result{}
	err := repo.WithTransaction(ctx, func(tx *db.Repository) error {
		for i := 0; i < opts.Companies; i++ {
			company := &dbmodels.Company{Name: fit(fake.Company().Name(), db.CompanyMapping, "name")}
			if err := tx.Insert(ctx, company); err != nil {
				return fmt.Errorf("failed to insert company: %w", err)
			}
			res.Companies++

			for j := 0; j < opts.EmployeesPerCompany; j++ {
				if err := tx.Insert(ctx, newEmployee(fake, company.ID, j)); err != nil {
					return fmt.Errorf("failed to insert employee: %w", err)
				}
				res.Employees++
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Database seeded",
		zap.Int64("seed", seed),
		zap.Int("companies", res.Companies),
		zap.Int("employees", res.Employees),
	)
	return res, nil
}

// newEmployee alternates gender; every third employee has no email.
func newEmployee(fake faker.Faker, companyID int32, n int) *dbmodels.Employee {
	p := fake.Person()

	var name, gender string
	if n%2 == 0 {
		name, gender = p.FirstNameFemale()+" "+p.LastName(), "F"
	} else {
		name, gender = p.FirstNameMale()+" "+p.LastName(), "M"
	}

	employee := &dbmodels.Employee{
		CompanyID:    companyID,
		EmployeeName: fit(name, db.EmployeeMapping, "employeeName"),
		Gender:       utils.Ptr(gender),
	}
	if n%3 != 2 {
		employee.Email = utils.Ptr(fit(strings.ToLower(fake.Internet().Email()), db.EmployeeMapping, "email"))
	}
	return employee
}

// fit truncates s to the mapped column size.
func fit(s string, m db.Mapping, field string) string {
	c, ok := m.Column(field)
	if !ok || c.Size == 0 || len(s) <= c.Size {
		return s
	}
	return s[:c.Size]
}
