package service

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/usedcar-api/pkg/jobs"
)

func TestMetricsServiceSnapshot(t *testing.T) {
	m := NewMetricsService()

	m.ObserveHTTPRequest("GET", "/api/v1/cars", 200, 10*time.Millisecond)
	m.ObserveHTTPRequest("GET", "/api/v1/cars", 200, 30*time.Millisecond)
	m.RecordCacheOperation(true, time.Millisecond)
	m.RecordCacheOperation(false, time.Millisecond)
	m.RecordCacheOperation(true, time.Millisecond)
	m.ObserveSearch(12, time.Millisecond)

	snap := m.Snapshot()
	assert.Equal(t, uint64(2), snap.RequestsTotal)
	assert.InDelta(t, 20.0, snap.AverageRequestDurationMs, 0.001)
	assert.Equal(t, uint64(2), snap.CacheHits)
	assert.Equal(t, uint64(1), snap.CacheMisses)
	assert.InDelta(t, 2.0/3.0, snap.CacheHitRatio, 0.0001)
	assert.Equal(t, uint64(1), snap.SearchesTotal)
	assert.Positive(t, snap.Goroutines)
}

func TestMetricsServiceExposesCollectors(t *testing.T) {
	m := NewMetricsService()
	m.SetCatalogSize(42)
	m.ObserveJob(jobs.Job{Type: "catalog.refresh"}, nil, time.Second)
	m.ObserveJob(jobs.Job{Type: "catalog.refresh"}, errors.New("boom"), time.Second)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "catalog_active_cars 42")
	assert.Contains(t, body, `jobs_total{result="failure",type="catalog.refresh"} 1`)
	assert.Contains(t, body, `jobs_total{result="success",type="catalog.refresh"} 1`)
}

func TestMetricsServiceNilSafe(t *testing.T) {
	var m *MetricsService

	m.ObserveSearch(1, time.Millisecond)
	m.RecordCacheOperation(true, time.Millisecond)
	assert.Zero(t, m.Snapshot().RequestsTotal)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
