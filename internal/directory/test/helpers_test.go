package test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gartstein/companyql/internal/directory/controller"
	"github.com/gartstein/companyql/internal/directory/db"
	"github.com/gartstein/companyql/internal/directory/graph"
	"github.com/gartstein/companyql/internal/directory/handlers"
	"github.com/gartstein/companyql/internal/directory/metrics"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type gqlResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []struct {
		Message string `json:"message"`
		Path    []any  `json:"path"`
	} `json:"errors"`
}

// newStack serves repo through the full HTTP router on a test server.
func newStack(t *testing.T, repo *db.Repository, logger *zap.Logger) *httptest.Server {
	t.Helper()
	schema, err := graph.NewSchema(
		controller.NewCompanyService(repo),
		controller.NewEmployeeService(repo, logger),
		logger,
	)
	require.NoError(t, err)

	srv := httptest.NewServer(handlers.NewRouter(handlers.RouterConfig{
		Schema:  schema,
		DB:      repo,
		Metrics: metrics.NewCollection(),
		Logger:  logger,
	}))
	t.Cleanup(srv.Close)
	return srv
}

func query(t *testing.T, ctx context.Context, srv *httptest.Server, document string) gqlResponse {
	t.Helper()
	body, err := json.Marshal(map[string]string{"query": document})
	require.NoError(t, err)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, srv.URL+"/graphql", bytes.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var out gqlResponse
	require.NoError(t, json.Unmarshal(raw, &out), "response: %s", raw)
	return out
}
