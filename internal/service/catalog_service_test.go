package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/usedcar-api/internal/dto"
	"github.com/noah-isme/usedcar-api/internal/models"
	appErrors "github.com/noah-isme/usedcar-api/pkg/errors"
	"github.com/noah-isme/usedcar-api/pkg/jobs"
)

func int64Ptr(v int64) *int64 { return &v }
func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }

type catalogRepoStub struct {
	mu    sync.Mutex
	cars  []models.Car
	calls int
	err   error
}

func (s *catalogRepoStub) ListActive(ctx context.Context) ([]models.Car, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	out := []models.Car{}
	for _, c := range s.cars {
		if c.Status == models.CarStatusActive {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *catalogRepoStub) FindByID(ctx context.Context, id string) (*models.Car, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.cars {
		if c.ID == id {
			car := c
			return &car, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (s *catalogRepoStub) loads() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func sampleCatalog() []models.Car {
	return []models.Car{
		{ID: "tata-2019", Brand: "Tata", Model: "Nexon", BodyType: "SUV", CarPrice: int64Ptr(500000), ManufacturingYear: intPtr(2019), Address: models.Address{City: strPtr("Pune"), State: strPtr("Maharashtra")}, Status: models.CarStatusActive},
		{ID: "honda-2021", Brand: "Honda", Model: "City", BodyType: "Sedan", CarPrice: int64Ptr(800000), ManufacturingYear: intPtr(2021), Address: models.Address{City: strPtr("Mumbai"), State: strPtr("Maharashtra")}, Status: models.CarStatusActive},
		{ID: "tata-2022", Brand: "Tata", Model: "Punch", BodyType: "SUV", CarPrice: int64Ptr(300000), ManufacturingYear: intPtr(2022), Address: models.Address{City: strPtr("Pune")}, Status: models.CarStatusActive},
		{ID: "sold-1", Brand: "Maruti", Model: "Swift", Status: models.CarStatusSold},
		{ID: "gone-1", Brand: "Kia", Model: "Seltos", Status: models.CarStatusInactive},
	}
}

func newCatalogFixture(t *testing.T) (*CatalogService, *catalogRepoStub, *memoryCache) {
	t.Helper()
	repo := &catalogRepoStub{cars: sampleCatalog()}
	cacheRepo := newMemoryCache()
	metrics := NewMetricsService()
	cache := NewCacheService(cacheRepo, metrics, time.Minute, nil, true)
	svc := NewCatalogService(repo, cache, metrics, nil, CatalogConfig{DefaultPageSize: 2, MaxPageSize: 5})
	return svc, repo, cacheRepo
}

func carIDs(cars []models.Car) []string {
	out := make([]string, len(cars))
	for i, c := range cars {
		out[i] = c.ID
	}
	return out
}

func TestCatalogServiceSearchFiltersSortsAndCaches(t *testing.T) {
	svc, repo, cacheRepo := newCatalogFixture(t)
	ctx := context.Background()

	query := models.CarQuery{Filter: models.CarFilter{Brand: []string{"Tata"}}, Sort: models.SortYearNewToOld}
	cars, page, hit, err := svc.Search(ctx, query)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, []string{"tata-2022", "tata-2019"}, carIDs(cars))
	assert.Equal(t, &models.Pagination{Page: 1, PageSize: 2, TotalCount: 2}, page)
	assert.True(t, cacheRepo.has(catalogCacheKey))

	_, _, hit, err = svc.Search(ctx, models.CarQuery{SearchTerm: "HON"})
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, 1, repo.loads())
}

func TestCatalogServiceSearchPaginates(t *testing.T) {
	svc, _, _ := newCatalogFixture(t)
	ctx := context.Background()

	cars, page, _, err := svc.Search(ctx, models.CarQuery{Sort: models.SortPriceLowToHigh, Page: 2, PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, []string{"honda-2021"}, carIDs(cars))
	assert.Equal(t, 3, page.TotalCount)

	cars, page, _, err = svc.Search(ctx, models.CarQuery{Page: 9})
	require.NoError(t, err)
	assert.NotNil(t, cars)
	assert.Empty(t, cars)
	assert.Equal(t, 9, page.Page)

	_, page, _, err = svc.Search(ctx, models.CarQuery{Page: -1, PageSize: 500})
	require.NoError(t, err)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 5, page.PageSize)
}

func TestCatalogServiceSearchLoadFailure(t *testing.T) {
	svc, repo, _ := newCatalogFixture(t)
	repo.err = errors.New("db down")

	_, _, _, err := svc.Search(context.Background(), models.CarQuery{})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInternal.Code, appErrors.FromError(err).Code)
}

func TestCatalogServiceMatchingIgnoresPagination(t *testing.T) {
	svc, _, _ := newCatalogFixture(t)

	cars, err := svc.Matching(context.Background(), models.CarQuery{Filter: models.CarFilter{Location: []string{"Maharashtra"}}, Page: 5, PageSize: 1})
	require.NoError(t, err)
	assert.Equal(t, []string{"tata-2019", "honda-2021"}, carIDs(cars))
}

func TestCatalogServiceGet(t *testing.T) {
	svc, _, _ := newCatalogFixture(t)
	ctx := context.Background()

	car, err := svc.Get(ctx, "sold-1")
	require.NoError(t, err)
	assert.Equal(t, models.CarStatusSold, car.Status)

	_, err = svc.Get(ctx, "gone-1")
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)

	_, err = svc.Get(ctx, "missing")
	assert.Equal(t, appErrors.ErrNotFound.Status, appErrors.FromError(err).Status)
}

func TestCatalogServiceFacetsAndBrowse(t *testing.T) {
	svc, _, _ := newCatalogFixture(t)
	ctx := context.Background()

	summary, hit, err := svc.Facets(ctx)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, 3, summary.Total)
	assert.Equal(t, &models.PriceRange{Min: 300000, Max: 800000}, summary.PriceRange)

	browse, hit, err := svc.Browse(ctx, dto.BrowseByCity, 1)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, []models.FacetOption{{Value: "Pune", Count: 2}}, browse.Options)

	browse, _, err = svc.Browse(ctx, dto.BrowseByBodyType, 0)
	require.NoError(t, err)
	assert.Len(t, browse.Options, 2)

	_, _, err = svc.Browse(ctx, "colour", 5)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestCatalogServiceRefreshReloads(t *testing.T) {
	svc, repo, cacheRepo := newCatalogFixture(t)
	ctx := context.Background()

	n, err := svc.Warm(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.True(t, cacheRepo.has(facetsCacheKey))

	repo.mu.Lock()
	repo.cars = append(repo.cars, models.Car{ID: "new-1", Brand: "Tata", Model: "Harrier", Status: models.CarStatusActive})
	repo.mu.Unlock()

	cars, _, hit, err := svc.Search(ctx, models.CarQuery{Filter: models.CarFilter{Brand: []string{"Tata"}}, PageSize: 5})
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Len(t, cars, 2)

	require.NoError(t, svc.Refresh(ctx, jobs.Job{ID: "job-1", Type: JobCatalogRefresh, Payload: map[string]string{"carId": "new-1"}}))
	assert.Contains(t, cacheRepo.deleted, catalogCacheKey)

	cars, _, _, err = svc.Search(ctx, models.CarQuery{Filter: models.CarFilter{Brand: []string{"Tata"}}, PageSize: 5})
	require.NoError(t, err)
	assert.Len(t, cars, 3)
}

func TestCatalogServiceWithoutCache(t *testing.T) {
	repo := &catalogRepoStub{cars: sampleCatalog()}
	svc := NewCatalogService(repo, nil, nil, nil, CatalogConfig{})

	for i := 0; i < 3; i++ {
		_, page, hit, err := svc.Search(context.Background(), models.CarQuery{})
		require.NoError(t, err)
		assert.False(t, hit)
		assert.Equal(t, 12, page.PageSize)
	}
	assert.Equal(t, 3, repo.loads())
}

func TestCatalogServiceConcurrentSearches(t *testing.T) {
	svc, _, _ := newCatalogFixture(t)
	brands := []string{"Tata", "Honda"}

	var wg sync.WaitGroup
	errs := make(chan error, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			brand := brands[i%2]
			cars, _, _, err := svc.Search(context.Background(), models.CarQuery{Filter: models.CarFilter{Brand: []string{brand}}, PageSize: 5})
			if err != nil {
				errs <- err
				return
			}
			for _, c := range cars {
				if c.Brand != brand {
					errs <- fmt.Errorf("got %s for %s", c.Brand, brand)
				}
			}
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}
}
