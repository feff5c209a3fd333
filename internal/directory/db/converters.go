package db

import (
	dbmodels "github.com/gartstein/companyql/internal/directory/db/models"
	"github.com/gartstein/companyql/internal/directory/models"
	"github.com/gartstein/companyql/internal/pkg/utils"
)

// rowToCompany converts a stored company row into the domain model.
func rowToCompany(row *dbmodels.Company) *models.Company {
	return &models.Company{
		ID:   int(row.ID),
		Name: row.Name,
	}
}

// rowToEmployee converts a stored employee row into the domain model.
// NULL gender and email become empty strings.
func rowToEmployee(row *dbmodels.Employee) *models.Employee {
	return &models.Employee{
		ID:           int(row.ID),
		CompanyID:    int(row.CompanyID),
		EmployeeName: row.EmployeeName,
		Gender:       utils.Deref(row.Gender),
		Email:        utils.Deref(row.Email),
	}
}

func rowsToEmployees(rows []dbmodels.Employee) []*models.Employee {
	employees := make([]*models.Employee, 0, len(rows))
	for i := range rows {
		employees = append(employees, rowToEmployee(&rows[i]))
	}
	return employees
}
