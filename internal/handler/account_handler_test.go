package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/usedcar-api/internal/dto"
	"github.com/noah-isme/usedcar-api/internal/middleware"
	"github.com/noah-isme/usedcar-api/internal/models"
	appErrors "github.com/noah-isme/usedcar-api/pkg/errors"
)

type fakeSaved struct {
	userID  string
	saved   []string
	removed string
}

func (f *fakeSaved) Save(_ context.Context, userID string, req dto.SaveListingRequest) error {
	f.userID = userID
	f.saved = append(f.saved, req.CarID)
	return nil
}

func (f *fakeSaved) Remove(_ context.Context, userID, carID string) error {
	f.userID = userID
	if carID == "unknown" {
		return appErrors.Clone(appErrors.ErrNotFound, "listing is not saved")
	}
	f.removed = carID
	return nil
}

func (f *fakeSaved) List(_ context.Context, userID string) ([]models.Car, error) {
	f.userID = userID
	return []models.Car{{ID: "car-1"}}, nil
}

type fakeEnquiries struct {
	buyer string
	req   dto.CreateEnquiryRequest
	err   error
}

func (f *fakeEnquiries) Create(_ context.Context, buyerID string, req dto.CreateEnquiryRequest) (*models.Enquiry, error) {
	f.buyer, f.req = buyerID, req
	if f.err != nil {
		return nil, f.err
	}
	return &models.Enquiry{ID: "enq-1", CarID: req.CarID, BuyerID: buyerID}, nil
}

func (f *fakeEnquiries) ListSent(context.Context, string) ([]models.EnquiryDetail, error) {
	return []models.EnquiryDetail{}, nil
}

func (f *fakeEnquiries) ListReceived(_ context.Context, sellerID string) ([]models.EnquiryDetail, error) {
	return []models.EnquiryDetail{{Enquiry: models.Enquiry{ID: "enq-2", SellerID: sellerID}}}, nil
}

type fakePackages struct{}

func (fakePackages) ListBought(context.Context, string) ([]models.ListingPackage, error) {
	return []models.ListingPackage{{ID: "pkg-1", Active: true}}, nil
}

func accountRouter(saved *fakeSaved, enquiries *fakeEnquiries) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewAccountHandler(saved, enquiries, fakePackages{})
	r := gin.New()
	me := r.Group("/me", middleware.RequireIdentity())
	me.GET("/saved", h.ListSaved)
	me.POST("/saved", h.Save)
	me.DELETE("/saved/:carId", h.Unsave)
	me.GET("/enquiries", h.SentEnquiries)
	me.POST("/enquiries", h.SendEnquiry)
	me.GET("/enquiries/received", h.ReceivedEnquiries)
	me.GET("/packages", h.Packages)
	return r
}

func doRequest(r http.Handler, method, target, body, user string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if user != "" {
		req.Header.Set(middleware.UserHeader, user)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestAccountRoutesRequireIdentity(t *testing.T) {
	r := accountRouter(&fakeSaved{}, &fakeEnquiries{})

	for _, target := range []string{"/me/saved", "/me/enquiries", "/me/packages"} {
		rec := doRequest(r, http.MethodGet, target, "", "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code, target)
	}
}

func TestAccountSavedListings(t *testing.T) {
	saved := &fakeSaved{}
	r := accountRouter(saved, &fakeEnquiries{})

	rec := doRequest(r, http.MethodPost, "/me/saved", `{"carId":"car-9"}`, "u1")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "u1", saved.userID)
	assert.Equal(t, []string{"car-9"}, saved.saved)

	rec = doRequest(r, http.MethodPost, "/me/saved", `{"carId":`, "u1")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(r, http.MethodGet, "/me/saved", "", "u1")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"car-1"`)

	rec = doRequest(r, http.MethodDelete, "/me/saved/car-9", "", "u1")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "car-9", saved.removed)

	rec = doRequest(r, http.MethodDelete, "/me/saved/unknown", "", "u1")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAccountEnquiries(t *testing.T) {
	enquiries := &fakeEnquiries{}
	r := accountRouter(&fakeSaved{}, enquiries)

	rec := doRequest(r, http.MethodPost, "/me/enquiries", `{"carId":"car-1","name":"Asha","phone":"9876543210","message":"Still available?"}`, "buyer-1")
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "buyer-1", enquiries.buyer)
	assert.Equal(t, "Still available?", enquiries.req.Message)

	enquiries.err = appErrors.Clone(appErrors.ErrForbidden, "cannot enquire about your own listing")
	rec = doRequest(r, http.MethodPost, "/me/enquiries", `{"carId":"car-1","name":"Asha","phone":"9876543210"}`, "seller-1")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doRequest(r, http.MethodGet, "/me/enquiries/received", "", "seller-1")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"enq-2"`)

	rec = doRequest(r, http.MethodGet, "/me/packages", "", "seller-1")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"active":true`)
}
