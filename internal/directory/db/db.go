// Package db implements read access to the company and employee tables
// through gorm, driven by the hand-written mappings in mapping.go.
package db

import (
	"context"
	"fmt"

	dbmodels "github.com/gartstein/companyql/internal/directory/db/models"
	e "github.com/gartstein/companyql/internal/directory/errors"
	"github.com/gartstein/companyql/internal/directory/models"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Supported values for Config.Driver.
const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Repository struct {
	db        *gorm.DB
	companies table[dbmodels.Company]
	employees table[dbmodels.Employee]
}

type Config struct {
	Driver   string
	Host     string
	Port     int
	User     string
	Password string
	// DBName is the database name, or the file path for sqlite.
	DBName  string
	SSLMode string
	// Sync creates or updates both tables when the repository is opened.
	Sync bool
}

// Dialector builds the gorm dialector for the configured driver.
func (c *Config) Dialector() (gorm.Dialector, error) {
	switch c.Driver {
	case DriverPostgres:
		dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
		return postgres.Open(dsn), nil
	case DriverMySQL:
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True",
			c.User, c.Password, c.Host, c.Port, c.DBName)
		return mysql.Open(dsn), nil
	case DriverSQLite:
		return sqlite.Open(c.DBName), nil
	default:
		return nil, fmt.Errorf("%w: unsupported database driver %q", e.ErrInvalidInput, c.Driver)
	}
}

func NewRepository(cfg *Config, logger *zap.Logger) (*Repository, error) {
	dialector, err := cfg.Dialector()
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{Logger: NewLogger(logger)})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return setupRepository(db, cfg.Sync)
}

// setupRepository builds the repository over an open handle and optionally
// synchronizes the schema. The handle's pool is closed if either step fails.
func setupRepository(db *gorm.DB, sync bool) (*Repository, error) {
	repo, err := newRepository(db)
	if err == nil && sync {
		err = repo.Sync(context.Background())
	}
	if err != nil {
		if sqlDB, dbErr := db.DB(); dbErr == nil {
			_ = sqlDB.Close()
		}
		return nil, err
	}
	return repo, nil
}

// newRepository verifies both mappings against the row models before use.
func newRepository(db *gorm.DB) (*Repository, error) {
	companies, err := newTable[dbmodels.Company](db, CompanyMapping)
	if err != nil {
		return nil, err
	}
	employees, err := newTable[dbmodels.Employee](db, EmployeeMapping)
	if err != nil {
		return nil, err
	}
	return &Repository{db: db, companies: companies, employees: employees}, nil
}

func (r *Repository) GetCompany(ctx context.Context, id int) (*models.Company, error) {
	row, err := r.companies.findByID(r.db.WithContext(ctx), id)
	if err != nil {
		return nil, err
	}
	return rowToCompany(row), nil
}

func (r *Repository) ListCompanies(ctx context.Context) ([]*models.Company, error) {
	rows, err := r.companies.find(r.db.WithContext(ctx))
	if err != nil {
		return nil, err
	}
	companies := make([]*models.Company, 0, len(rows))
	for i := range rows {
		companies = append(companies, rowToCompany(&rows[i]))
	}
	return companies, nil
}

func (r *Repository) GetEmployee(ctx context.Context, id int) (*models.Employee, error) {
	row, err := r.employees.findByID(r.db.WithContext(ctx), id)
	if err != nil {
		return nil, err
	}
	return rowToEmployee(row), nil
}

func (r *Repository) ListEmployees(ctx context.Context) ([]*models.Employee, error) {
	rows, err := r.employees.find(r.db.WithContext(ctx))
	if err != nil {
		return nil, err
	}
	return rowsToEmployees(rows), nil
}

// ListEmployeesByCompany follows the employee foreign key back to companyID.
func (r *Repository) ListEmployeesByCompany(ctx context.Context, companyID int) ([]*models.Employee, error) {
	fk, ok := EmployeeMapping.ForeignKey(CompanyMapping.Table)
	if !ok {
		return nil, fmt.Errorf("employee mapping has no foreign key to %s", CompanyMapping.Table)
	}
	rows, err := r.employees.findBy(r.db.WithContext(ctx), fk.Field, companyID)
	if err != nil {
		return nil, err
	}
	return rowsToEmployees(rows), nil
}

// Sync creates or alters both tables to match the row models.
func (r *Repository) Sync(ctx context.Context) error {
	if err := r.db.WithContext(ctx).AutoMigrate(&dbmodels.Company{}, &dbmodels.Employee{}); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

// Insert writes rows directly. It is used by out-of-band population only;
// the query surface never writes.
func (r *Repository) Insert(ctx context.Context, value interface{}) error {
	return r.db.WithContext(ctx).Create(value).Error
}

func (r *Repository) WithTransaction(ctx context.Context, fn func(repo *Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Repository{db: tx, companies: r.companies, employees: r.employees})
	})
}

func (r *Repository) Ping(ctx context.Context) error {
	db, err := r.db.DB()
	if err != nil {
		return err
	}
	return db.PingContext(ctx)
}

func (r *Repository) Close() error {
	db, err := r.db.DB()
	if err != nil {
		return err
	}
	return db.Close()
}
