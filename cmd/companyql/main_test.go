package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gartstein/companyql/internal/directory/config"
	"github.com/gartstein/companyql/internal/directory/db"
	dbmodels "github.com/gartstein/companyql/internal/directory/db/models"
	e "github.com/gartstein/companyql/internal/directory/errors"
	"github.com/gartstein/companyql/internal/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"
)

func sqliteConfig(t *testing.T) *config.Config {
	cfg := config.Default()
	cfg.DBType = db.DriverSQLite
	cfg.DBName = filepath.Join(t.TempDir(), "companyql.db")
	cfg.DBSync = true
	cfg.DBConnectRetries = 0
	return cfg
}

func TestInitLogger(t *testing.T) {
	cfg := config.Default()
	cfg.LogLevel = "warn"

	l, err := initLogger(cfg)
	require.NoError(t, err)
	assert.False(t, l.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, l.Core().Enabled(zapcore.WarnLevel))
}

func TestOpenRepositoryInvalidDriverIsPermanent(t *testing.T) {
	cfg := config.Default()
	cfg.DBConnectRetries = 5
	core, recorded := observer.New(zap.WarnLevel)

	_, err := openRepository(cfg, &db.Config{Driver: "oracle"}, zap.New(core))
	assert.ErrorIs(t, err, e.ErrInvalidInput)
	assert.Zero(t, recorded.FilterMessage("Database not ready, retrying").Len(), "configuration errors are not retried")
}

func TestOpenRepositoryRetriesConnectFailures(t *testing.T) {
	cfg := config.Default()
	cfg.DBConnectRetries = 1
	core, recorded := observer.New(zap.WarnLevel)

	unreachable := &db.Config{Driver: db.DriverSQLite, DBName: filepath.Join(t.TempDir(), "missing", "dir", "x.db")}
	_, err := openRepository(cfg, unreachable, zap.New(core))
	require.Error(t, err)
	assert.Equal(t, 1, recorded.FilterMessage("Database not ready, retrying").Len())
}

func TestRunQuery(t *testing.T) {
	cfg := sqliteConfig(t)
	logger := zaptest.NewLogger(t)

	repo, err := openRepository(cfg, cfg.DBConfig(), logger)
	require.NoError(t, err)
	defer repo.Close()

	ctx := context.Background()
	require.NoError(t, repo.Insert(ctx, &dbmodels.Company{ID: 1, Name: "Acme"}))
	require.NoError(t, repo.Insert(ctx, &dbmodels.Employee{
		ID: 1, CompanyID: 1, EmployeeName: "Jo", Gender: utils.Ptr("F"), Email: utils.Ptr("jo@x.com"),
	}))

	schema, err := newSchema(repo, logger)
	require.NoError(t, err)

	t.Run("raw", func(t *testing.T) {
		var out bytes.Buffer
		err := runQuery(ctx, schema, &out, `{ Employee(id: "1") { employeeName company { name } } }`, "", nil, true)
		require.NoError(t, err)
		assert.JSONEq(t, `{"data":{"Employee":{"employeeName":"Jo","company":{"name":"Acme"}}}}`, out.String())
	})

	t.Run("variables", func(t *testing.T) {
		var out bytes.Buffer
		doc := `query Get($id: String!) { Company(id: $id) { name } }`
		err := runQuery(ctx, schema, &out, doc, "Get", map[string]interface{}{"id": "1"}, true)
		require.NoError(t, err)
		assert.JSONEq(t, `{"data":{"Company":{"name":"Acme"}}}`, out.String())
	})

	t.Run("pretty", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, runQuery(ctx, schema, &out, `{ Companies { id } }`, "", nil, false))
		assert.Contains(t, out.String(), "Companies")
		assert.Greater(t, strings.Count(out.String(), "\n"), 1, "pretty output is indented")
	})

	t.Run("errors", func(t *testing.T) {
		var out bytes.Buffer
		err := runQuery(ctx, schema, &out, `{ Company(id: "abc") { id } }`, "", nil, true)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid input")
		assert.Contains(t, out.String(), `"errors"`, "the envelope is still printed")
	})
}

func TestSchemaCommand(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"schema"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, out.String(), "type Company")
	assert.Contains(t, out.String(), "Employees: [Employee]")
}
