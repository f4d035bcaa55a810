package telemetry

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/erp/inventory/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScrapeRegistry_ServesRuntimeMetrics(t *testing.T) {
	reg, err := NewScrapeRegistry(ScrapeConfig{ServiceName: "inventory-service", Version: "test"})
	require.NoError(t, err)

	srv := httptest.NewServer(reg.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "go_goroutines")
	assert.Contains(t, string(body), `inventory_build_info{service="inventory-service",version="test"} 1`)
}

func TestScrapeRegistry_DBStats(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	sqlDB, err := db.DB()
	require.NoError(t, err)

	reg, err := NewScrapeRegistry(ScrapeConfig{DB: sqlDB, DBName: "inventory"})
	require.NoError(t, err)

	families, err := reg.Registry().Gather()
	require.NoError(t, err)

	names := map[string]bool{}
	for _, f := range families {
		names[f.GetName()] = true
	}
	assert.True(t, names["go_sql_open_connections"])
	assert.True(t, names["inventory_build_info"])
}
