package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/99designs/gqlgen/graphql/playground"
	"github.com/gartstein/companyql/internal/directory/metrics"
	graphql "github.com/graph-gophers/graphql-go"
	"github.com/graph-gophers/graphql-go/relay"
	"go.uber.org/zap"
)

const healthTimeout = 2 * time.Second

// Pinger reports whether the database is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// RouterConfig carries the collaborators served by NewRouter.
type RouterConfig struct {
	Schema     *graphql.Schema
	DB         Pinger
	Metrics    *metrics.Collection
	Playground bool
	Logger     *zap.Logger
}

// NewRouter builds the route table:
//
//	POST /graphql  GraphQL over HTTP
//	GET  /graphql  playground (when enabled)
//	GET  /health   database reachability
//	GET  /metrics  Prometheus exposition
func NewRouter(cfg RouterConfig) http.Handler {
	logger := cfg.Logger.Named("http")
	api := &relay.Handler{Schema: cfg.Schema}
	ui := playground.Handler("companyql", "/graphql")

	graphqlHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost:
			api.ServeHTTP(w, r)
		case r.Method == http.MethodGet && cfg.Playground:
			ui.ServeHTTP(w, r)
		default:
			w.Header().Set("Allow", http.MethodPost)
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		}
	})

	mux := http.NewServeMux()
	mux.Handle("/graphql", instrument("/graphql", cfg.Metrics, graphqlHandler))
	mux.Handle("/health", instrument("/health", cfg.Metrics, healthHandler(cfg.DB, cfg.Metrics, logger)))
	mux.Handle("/metrics", cfg.Metrics.Handler())

	return withRequestID(withLogging(logger, mux))
}

func healthHandler(db Pinger, m *metrics.Collection, logger *zap.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.Header().Set("Allow", http.MethodGet)
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
		defer cancel()

		status, code := "ok", http.StatusOK
		if err := db.Ping(ctx); err != nil {
			logger.Warn("Database health check failed", zap.Error(err), zap.String("request_id", RequestID(r.Context())))
			status, code = "unavailable", http.StatusServiceUnavailable
		}
		m.SetDBUp(code == http.StatusOK)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		_ = json.NewEncoder(w).Encode(map[string]string{"status": status})
	})
}
