package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/usedcar-api/internal/dto"
	"github.com/noah-isme/usedcar-api/internal/models"
	appErrors "github.com/noah-isme/usedcar-api/pkg/errors"
	"github.com/noah-isme/usedcar-api/pkg/jobs"
)

type listingRepoStub struct {
	cars map[string]models.Car
	seq  int
}

func (s *listingRepoStub) FindByID(ctx context.Context, id string) (*models.Car, error) {
	car, ok := s.cars[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &car, nil
}

func (s *listingRepoStub) ListBySeller(ctx context.Context, sellerID string, statuses ...models.CarStatus) ([]models.Car, error) {
	out := []models.Car{}
	for _, c := range s.cars {
		if c.SellerID == sellerID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *listingRepoStub) Create(ctx context.Context, car *models.Car) error {
	s.seq++
	car.ID = "new-" + string(rune('0'+s.seq))
	s.cars[car.ID] = *car
	return nil
}

func (s *listingRepoStub) Update(ctx context.Context, car *models.Car) error {
	if _, ok := s.cars[car.ID]; !ok {
		return sql.ErrNoRows
	}
	s.cars[car.ID] = *car
	return nil
}

func (s *listingRepoStub) UpdateStatus(ctx context.Context, id string, status models.CarStatus) error {
	car, ok := s.cars[id]
	if !ok {
		return sql.ErrNoRows
	}
	car.Status = status
	s.cars[id] = car
	return nil
}

type enqueuerStub struct {
	jobs []jobs.Job
	err  error
}

func (e *enqueuerStub) Enqueue(job jobs.Job) error {
	if e.err != nil {
		return e.err
	}
	e.jobs = append(e.jobs, job)
	return nil
}

func validListing() dto.ListingRequest {
	price := int64(725000)
	year := 2020
	return dto.ListingRequest{
		Brand:             " Hyundai ",
		Model:             "Creta",
		FuelType:          "Diesel",
		Transmission:      "Manual",
		BodyType:          "SUV",
		Ownership:         "1st Owner",
		CarPrice:          &price,
		ManufacturingYear: &year,
		Images:            []string{"https://img.example.com/creta.jpg"},
		City:              strPtr("Pune"),
	}
}

func newListingFixture() (*ListingService, *listingRepoStub, *enqueuerStub) {
	repo := &listingRepoStub{cars: map[string]models.Car{
		"mine":  {ID: "mine", SellerID: "s1", Brand: "Tata", Status: models.CarStatusActive},
		"sold":  {ID: "sold", SellerID: "s1", Status: models.CarStatusSold},
		"gone":  {ID: "gone", SellerID: "s1", Status: models.CarStatusInactive},
		"other": {ID: "other", SellerID: "s2", Status: models.CarStatusActive},
	}}
	queue := &enqueuerStub{}
	return NewListingService(repo, queue, nil, nil), repo, queue
}

func TestListingServiceCreate(t *testing.T) {
	svc, repo, queue := newListingFixture()

	car, err := svc.Create(context.Background(), "s1", validListing())
	require.NoError(t, err)
	assert.Equal(t, "Hyundai", car.Brand)
	assert.Equal(t, "s1", car.SellerID)
	assert.Equal(t, models.CarStatusActive, car.Status)
	assert.Equal(t, "Pune", car.City())
	assert.Contains(t, repo.cars, car.ID)

	require.Len(t, queue.jobs, 1)
	assert.Equal(t, JobCatalogRefresh, queue.jobs[0].Type)
	assert.Equal(t, JobCatalogRefresh, queue.jobs[0].Key)
	assert.Equal(t, car.ID, queue.jobs[0].Payload["carId"])
}

func TestListingServiceCreateValidation(t *testing.T) {
	svc, _, queue := newListingFixture()

	req := validListing()
	req.Brand = ""
	_, err := svc.Create(context.Background(), "s1", req)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)

	req = validListing()
	req.Images = []string{"not a url"}
	_, err = svc.Create(context.Background(), "s1", req)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	assert.Empty(t, queue.jobs)
}

func TestListingServiceUpdate(t *testing.T) {
	svc, repo, queue := newListingFixture()
	ctx := context.Background()

	car, err := svc.Update(ctx, "s1", "mine", validListing())
	require.NoError(t, err)
	assert.Equal(t, "Creta", repo.cars["mine"].Model)
	assert.Equal(t, models.CarStatusActive, car.Status)
	assert.Len(t, queue.jobs, 1)

	_, err = svc.Update(ctx, "s1", "other", validListing())
	assert.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)

	_, err = svc.Update(ctx, "s1", "sold", validListing())
	assert.Equal(t, appErrors.ErrListingSold.Code, appErrors.FromError(err).Code)

	_, err = svc.Update(ctx, "s1", "missing", validListing())
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestListingServiceUpdateRemovedListing(t *testing.T) {
	svc, repo, queue := newListingFixture()

	_, err := svc.Update(context.Background(), "s1", "gone", validListing())

	assert.Equal(t, appErrors.ErrConflict.Code, appErrors.FromError(err).Code)
	assert.Equal(t, models.CarStatusInactive, repo.cars["gone"].Status)
	assert.Empty(t, repo.cars["gone"].Model)
	assert.Empty(t, queue.jobs)
}

func TestListingServiceMarkSold(t *testing.T) {
	svc, repo, queue := newListingFixture()
	ctx := context.Background()

	car, err := svc.MarkSold(ctx, "s1", "mine")
	require.NoError(t, err)
	assert.Equal(t, models.CarStatusSold, car.Status)
	assert.Equal(t, models.CarStatusSold, repo.cars["mine"].Status)
	assert.Len(t, queue.jobs, 1)

	_, err = svc.MarkSold(ctx, "s1", "mine")
	assert.ErrorIs(t, err, appErrors.ErrListingSold)

	_, err = svc.MarkSold(ctx, "s1", "gone")
	assert.Equal(t, appErrors.ErrConflict.Code, appErrors.FromError(err).Code)

	_, err = svc.MarkSold(ctx, "s2", "mine")
	assert.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)
}

func TestListingServiceDeleteIsSoft(t *testing.T) {
	svc, repo, queue := newListingFixture()
	ctx := context.Background()

	require.NoError(t, svc.Delete(ctx, "s1", "mine"))
	assert.Equal(t, models.CarStatusInactive, repo.cars["mine"].Status)
	require.NoError(t, svc.Delete(ctx, "s1", "mine"))
	assert.Len(t, queue.jobs, 1)

	err := svc.Delete(ctx, "s1", "other")
	assert.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)
}

func TestListingServiceEnqueueFailureDoesNotFailMutation(t *testing.T) {
	svc, _, queue := newListingFixture()
	queue.err = errors.New("queue stopped")

	_, err := svc.MarkSold(context.Background(), "s1", "mine")
	assert.NoError(t, err)
}

func TestListingServiceListMine(t *testing.T) {
	svc, _, _ := newListingFixture()

	cars, err := svc.ListMine(context.Background(), "s1")
	require.NoError(t, err)
	assert.Len(t, cars, 3)
}
