package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/usedcar-api/internal/models"
)

func TestSellerRepositoryFindByID(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewSellerRepository(db)

	mock.ExpectQuery("FROM sellers WHERE id = \\$1").
		WithArgs("seller-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "seller_type", "phone", "email", "city", "state", "avatar_url", "verified", "created_at"}).
			AddRow("seller-1", "Sharma Motors", "dealer", "9800000000", "sales@sharma.test", "Pune", "Maharashtra", nil, true, time.Now()))

	seller, err := repo.FindByID(context.Background(), "seller-1")
	require.NoError(t, err)
	assert.Equal(t, models.SellerTypeDealer, seller.Type)
	assert.True(t, seller.Verified)
	assert.Nil(t, seller.AvatarURL)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSellerRepositoryFindByIDMissing(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewSellerRepository(db)

	mock.ExpectQuery("FROM sellers").WithArgs("nope").WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByID(context.Background(), "nope")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestEnquiryRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewEnquiryRepository(db)

	mock.ExpectExec("INSERT INTO enquiries").
		WithArgs(sqlmock.AnyArg(), "car-1", "buyer-1", "seller-1", "Asha", "9811111111", nil, "Is it available?", "open", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	enquiry := &models.Enquiry{CarID: "car-1", BuyerID: "buyer-1", SellerID: "seller-1", Name: "Asha", Phone: "9811111111", Message: "Is it available?"}
	require.NoError(t, repo.Create(context.Background(), enquiry))
	assert.NotEmpty(t, enquiry.ID)
	assert.Equal(t, models.EnquiryStatusOpen, enquiry.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnquiryRepositoryListBySeller(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewEnquiryRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM enquiries e JOIN cars c ON c.id = e.car_id WHERE e.seller_id = $1 ORDER BY e.created_at DESC")).
		WithArgs("seller-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "car_id", "buyer_id", "seller_id", "name", "phone", "email", "message", "status", "created_at", "car_brand", "car_model"}).
			AddRow("enq-1", "car-1", "buyer-1", "seller-1", "Asha", "9811111111", nil, "Hi", "open", time.Now(), "Tata", "Nexon"))

	enquiries, err := repo.ListBySeller(context.Background(), "seller-1")
	require.NoError(t, err)
	require.Len(t, enquiries, 1)
	assert.Equal(t, "Nexon", enquiries[0].CarModel)
	assert.Equal(t, "car-1", enquiries[0].CarID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnquiryRepositoryExistsOpen(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewEnquiryRepository(db)

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("buyer-1", "car-1", "open").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.ExistsOpen(context.Background(), "buyer-1", "car-1")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestSavedListingRepositorySaveAndDelete(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewSavedListingRepository(db)

	mock.ExpectExec("INSERT INTO saved_listings .* ON CONFLICT \\(user_id, car_id\\) DO NOTHING").
		WithArgs("user-1", "car-1", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM saved_listings").
		WithArgs("user-1", "car-2").
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.Save(context.Background(), "user-1", "car-1"))
	removed, err := repo.Delete(context.Background(), "user-1", "car-2")
	require.NoError(t, err)
	assert.False(t, removed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSavedListingRepositoryListCars(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewSavedListingRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT c.id, c.seller_id`) + `.*` + regexp.QuoteMeta(`c.city AS "address.city"`) + `.*` +
		regexp.QuoteMeta("FROM saved_listings s JOIN cars c ON c.id = s.car_id")).
		WithArgs("user-1").
		WillReturnRows(carRows())

	cars, err := repo.ListCars(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Len(t, cars, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPackageRepositoryListByUser(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewPackageRepository(db)

	now := time.Now()
	mock.ExpectQuery("FROM listing_packages WHERE user_id = \\$1").
		WithArgs("user-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "name", "listing_limit", "listings_used", "amount_paid", "purchased_at", "expires_at"}).
			AddRow("pkg-1", "user-1", "Premium 5", 5, 2, int64(1999), now.Add(-24*time.Hour), now.Add(29*24*time.Hour)))

	packages, err := repo.ListByUser(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, packages, 1)
	assert.Equal(t, 5, packages[0].ListingLimit)
	assert.False(t, packages[0].Active)
	assert.NoError(t, mock.ExpectationsWereMet())
}
