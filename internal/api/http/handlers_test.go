package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"fashionswap-backend/internal/domain"
	"fashionswap-backend/internal/repository"
	"fashionswap-backend/internal/security"
	"fashionswap-backend/internal/storage"
	"fashionswap-backend/internal/utils"
)

type mockListingService struct {
	mock.Mock
}

func (m *mockListingService) ListItem(ctx context.Context, ownerAddress string, listing *domain.Listing) (*domain.Listing, error) {
	args := m.Called(ctx, ownerAddress, listing)
	return args.Get(0).(*domain.Listing), args.Error(1)
}
func (m *mockListingService) GetListing(ctx context.Context, id string) (*domain.Listing, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(*domain.Listing), args.Error(1)
}
func (m *mockListingService) SearchListings(ctx context.Context, filter domain.ListingFilter) ([]domain.Listing, int32, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.Listing), args.Get(1).(int32), args.Error(2)
}
func (m *mockListingService) Quote(ctx context.Context, itemID string, days int) (*domain.Listing, domain.RentalQuote, error) {
	args := m.Called(ctx, itemID, days)
	if args.Get(0) == nil {
		return nil, domain.RentalQuote{}, args.Error(2)
	}
	return args.Get(0).(*domain.Listing), args.Get(1).(domain.RentalQuote), args.Error(2)
}

type fakePinger struct{ err error }

func (p fakePinger) PingContext(context.Context) error { return p.err }

const testSecret = "http-handler-test-secret-0123456789"

func newTestRouter(t *testing.T, db Pinger) (http.Handler, *mockListingService) {
	t.Helper()
	images, err := storage.NewLocalImageStore("http://img.test", t.TempDir())
	require.NoError(t, err)
	svc := new(mockListingService)
	h := NewHandler(svc, images, security.NewTokenManager(testSecret), db, 1<<20)
	return h.Router(), svc
}

func TestHealth(t *testing.T) {
	router, _ := newTestRouter(t, fakePinger{})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	router, _ = newTestRouter(t, fakePinger{err: errors.New("connection refused")})
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestQuote(t *testing.T) {
	router, svc := newTestRouter(t, fakePinger{})
	quote, err := utils.ComputeCost(domain.ListingTerms{DailyPrice: decimal.NewFromInt(12), WeeklyPrice: decimal.NewFromInt(24)}, 7)
	require.NoError(t, err)
	svc.On("Quote", mock.Anything, "item-1", 7).Return(&domain.Listing{ID: "item-1"}, quote, nil)
	svc.On("Quote", mock.Anything, "item-1", 0).Return(nil, domain.RentalQuote{}, utils.ErrInvalidArgument)
	svc.On("Quote", mock.Anything, "missing", 7).Return(nil, domain.RentalQuote{}, repository.ErrNotFound)

	t.Run("Success", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/listings/item-1/quote?days=7", nil))
		require.Equal(t, http.StatusOK, rec.Code)

		var body quoteResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "item-1", body.ItemID)
		assert.True(t, decimal.RequireFromString("24.024").Equal(body.Quote.Total))
		assert.True(t, decimal.RequireFromString("12").Equal(body.Quote.DepositAmount))
	})

	tests := []struct {
		name string
		url  string
		code int
	}{
		{"Days not a number", "/api/v1/listings/item-1/quote?days=three", http.StatusBadRequest},
		{"Days out of range", "/api/v1/listings/item-1/quote?days=0", http.StatusBadRequest},
		{"Unknown listing", "/api/v1/listings/missing/quote?days=7", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.url, nil))
			assert.Equal(t, tt.code, rec.Code)
		})
	}
}

func TestImageUploadAndDownload(t *testing.T) {
	router, _ := newTestRouter(t, fakePinger{})
	token, err := security.NewTokenManager(testSecret).GenerateAccessToken("0xowner", time.Hour)
	require.NoError(t, err)

	var photo bytes.Buffer
	require.NoError(t, png.Encode(&photo, image.NewRGBA(image.Rect(0, 0, 20, 10))))

	t.Run("Requires token", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/api/v1/images", bytes.NewReader(photo.Bytes())))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("Rejects non-images", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPut, "/api/v1/images", bytes.NewReader([]byte("plain text")))
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Round trip", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPut, "/api/v1/images", bytes.NewReader(photo.Bytes()))
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		require.Equal(t, http.StatusCreated, rec.Code)

		var body map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "http://img.test/api/v1/images/"+body["key"], body["image_url"])

		rec = httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/images/"+body["key"], nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "image/jpeg", rec.Header().Get("Content-Type"))
		assert.NotEmpty(t, rec.Body.Bytes())
	})

	t.Run("Unknown key", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/images/nope.jpg", nil))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
