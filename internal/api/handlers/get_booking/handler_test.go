package get_booking

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-AdmissionService/internal/service/bookings"
	"github.com/m04kA/SMC-AdmissionService/internal/service/bookings/models"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeService struct{}

func (fakeService) GetByID(_ context.Context, id int64) (*models.BookingResponse, error) {
	if id != 5 {
		return nil, bookings.ErrBookingNotFound
	}
	return &models.BookingResponse{ID: 5, Status: "approved", AppointmentDate: "2024-06-24"}, nil
}

func serve(path string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/bookings/{bookingId}", NewHandler(fakeService{}, nopLogger{}).Handle)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestHandle(t *testing.T) {
	rec := serve("/api/v1/bookings/5")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"appointmentDate":"2024-06-24"`)

	assert.Equal(t, http.StatusNotFound, serve("/api/v1/bookings/6").Code)
	assert.Equal(t, http.StatusBadRequest, serve("/api/v1/bookings/x").Code)
}
