package get_availability

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	getAvailability "github.com/m04kA/SMC-AdmissionService/internal/usecase/get_availability"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeUseCase struct {
	resp *getAvailability.Response
	err  error
}

func (u *fakeUseCase) Execute(context.Context) (*getAvailability.Response, error) {
	return u.resp, u.err
}

func day(d int) time.Time {
	return time.Date(2024, time.June, d, 0, 0, 0, 0, time.UTC)
}

func TestHandle_OK(t *testing.T) {
	next := day(20)
	uc := &fakeUseCase{resp: &getAvailability.Response{
		UnavailableDates:  []time.Time{day(18), day(19)},
		NextAvailableDate: &next,
		FirstEligibleDate: day(18),
		LastEligibleDate:  time.Date(2024, time.September, 3, 0, 0, 0, 0, time.UTC),
	}}

	rec := httptest.NewRecorder()
	NewHandler(uc, nopLogger{}).Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/availability", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{
		"unavailableDates": ["2024-06-18", "2024-06-19"],
		"nextAvailableDate": "2024-06-20",
		"firstEligibleDate": "2024-06-18",
		"lastEligibleDate": "2024-09-03"
	}`, rec.Body.String())
}

func TestHandle_NoFreeDate(t *testing.T) {
	uc := &fakeUseCase{resp: &getAvailability.Response{FirstEligibleDate: day(18), LastEligibleDate: day(18)}}

	rec := httptest.NewRecorder()
	NewHandler(uc, nopLogger{}).Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/availability", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"nextAvailableDate":null`)
	assert.Contains(t, rec.Body.String(), `"unavailableDates":[]`)
}

func TestHandle_StoreUnavailable(t *testing.T) {
	uc := &fakeUseCase{err: fmt.Errorf("%w: timeout", getAvailability.ErrStoreUnavailable)}

	rec := httptest.NewRecorder()
	NewHandler(uc, nopLogger{}).Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/availability", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
