// AngelaMos | 2026
// handler_test.go

package admin

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedSizes map[string]int

func (f fixedSizes) CollectionSizes(context.Context) (map[string]int, error) {
	return f, nil
}

type failingSizes struct{}

func (failingSizes) CollectionSizes(context.Context) (map[string]int, error) {
	return nil, errors.New("redis down")
}

func passThrough(next http.Handler) http.Handler { return next }

func newRouter(cfg HandlerConfig, ownerOnly func(http.Handler) http.Handler) http.Handler {
	r := chi.NewRouter()
	NewHandler(cfg).RegisterRoutes(r, passThrough, ownerOnly)
	return r
}

func get(t *testing.T, h http.Handler, path string) (*httptest.ResponseRecorder, json.RawMessage) {
	t.Helper()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

	var env struct {
		Data json.RawMessage `json:"data"`
	}
	if rec.Code < http.StatusInternalServerError {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	}
	return rec, env.Data
}

func TestSystemStats(t *testing.T) {
	r := newRouter(HandlerConfig{
		DBStats:    func() sql.DBStats { return sql.DBStats{MaxOpenConnections: 25, InUse: 2} },
		RedisStats: func() *redis.PoolStats { return &redis.PoolStats{TotalConns: 4} },
		DBPing:     func(context.Context) error { return nil },
		RedisPing:  func(context.Context) error { return errors.New("timeout") },
		Ledger:     fixedSizes{"entries": 7},
	}, passThrough)

	rec, data := get(t, r, "/admin/stats")
	require.Equal(t, http.StatusOK, rec.Code)

	var stats SystemStatsResponse
	require.NoError(t, json.Unmarshal(data, &stats))
	assert.True(t, stats.Database.Healthy)
	assert.Equal(t, 25, stats.Database.Stats.MaxOpenConnections)
	assert.False(t, stats.Redis.Healthy)
	assert.Equal(t, uint32(4), stats.Redis.Stats.TotalConns)
	assert.NotEmpty(t, stats.Runtime.GoVersion)
	assert.Equal(t, 7, stats.Ledger["entries"])
}

func TestLedgerStats(t *testing.T) {
	rec, data := get(t, newRouter(HandlerConfig{Ledger: fixedSizes{"clothes": 3}}, passThrough), "/admin/stats/ledger")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"clothes":3}`, string(data))

	rec, _ = get(t, newRouter(HandlerConfig{}, passThrough), "/admin/stats/ledger")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = get(t, newRouter(HandlerConfig{Ledger: failingSizes{}}, passThrough), "/admin/stats/ledger")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestOwnerGateApplies(t *testing.T) {
	deny := func(http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		})
	}
	r := newRouter(HandlerConfig{}, deny)

	for _, path := range []string{
		"/admin/stats",
		"/admin/stats/db",
		"/admin/stats/redis",
		"/admin/stats/runtime",
		"/admin/stats/ledger",
	} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusForbidden, rec.Code, path)
	}
}
