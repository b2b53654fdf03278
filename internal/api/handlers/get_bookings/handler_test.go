package get_bookings

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AdmissionService/internal/service/bookings"
	"github.com/m04kA/SMC-AdmissionService/internal/service/bookings/models"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeService struct {
	err error
	got *models.GetBookingsRequest
}

func (s *fakeService) List(_ context.Context, req *models.GetBookingsRequest) (*models.BookingListResponse, error) {
	s.got = req
	if s.err != nil {
		return nil, s.err
	}
	return &models.BookingListResponse{Bookings: []models.BookingResponse{{ID: 1, Status: "pending"}}}, nil
}

func TestHandle_PassesFilters(t *testing.T) {
	svc := &fakeService{}
	rec := httptest.NewRecorder()

	NewHandler(svc, nopLogger{}).Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/bookings?date=2024-06-24&status=pending", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.got.Date)
	require.NotNil(t, svc.got.Status)
	assert.Equal(t, "2024-06-24", *svc.got.Date)
	assert.Equal(t, "pending", *svc.got.Status)
	assert.Contains(t, rec.Body.String(), `"bookings":[`)
}

func TestHandle_NoFilters(t *testing.T) {
	svc := &fakeService{}
	rec := httptest.NewRecorder()

	NewHandler(svc, nopLogger{}).Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/bookings", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, svc.got.Date)
	assert.Nil(t, svc.got.Status)
}

func TestHandle_Errors(t *testing.T) {
	rec := httptest.NewRecorder()
	NewHandler(&fakeService{err: fmt.Errorf("%w: bad status", bookings.ErrInvalidInput)}, nopLogger{}).
		Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/bookings?status=x", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	NewHandler(&fakeService{err: bookings.ErrInternal}, nopLogger{}).
		Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/bookings", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
