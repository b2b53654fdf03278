package get_availability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AdmissionService/internal/domain"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixedClock time.Time

func (c fixedClock) Now() time.Time { return time.Time(c) }

type fakeStore struct {
	dates    []time.Time
	err      error
	from     time.Time
	capacity int
}

func (s *fakeStore) FullyBookedDates(_ context.Context, from time.Time, capacity int) ([]time.Time, error) {
	s.from = from
	s.capacity = capacity
	return s.dates, s.err
}

func day(m time.Month, d int) time.Time {
	return time.Date(2024, m, d, 0, 0, 0, 0, time.UTC)
}

// 2024-06-03 понедельник, первая допустимая дата 2024-06-18 (вторник)
var now = time.Date(2024, time.June, 3, 15, 30, 0, 0, time.UTC)

func TestExecute_NextAvailableSkipsFullDates(t *testing.T) {
	store := &fakeStore{dates: []time.Time{day(6, 10), day(6, 18), day(6, 19)}}
	uc := NewUseCase(store, 10, domain.DefaultPolicyWindow(), nopLogger{}).WithTimeProvider(fixedClock(now))

	resp, err := uc.Execute(context.Background())
	require.NoError(t, err)

	assert.Equal(t, day(6, 3), store.from)
	assert.Equal(t, 10, store.capacity)
	assert.Equal(t, []time.Time{day(6, 10), day(6, 18), day(6, 19)}, resp.UnavailableDates)
	assert.Equal(t, day(6, 18), resp.FirstEligibleDate)
	assert.Equal(t, day(9, 3), resp.LastEligibleDate)
	require.NotNil(t, resp.NextAvailableDate)
	assert.Equal(t, day(6, 20), *resp.NextAvailableDate)
}

func TestExecute_NextAvailableSkipsWeekend(t *testing.T) {
	// 2024-06-20 и 2024-06-21 заполнены, 22-23 выходные
	store := &fakeStore{dates: []time.Time{day(6, 18), day(6, 19), day(6, 20), day(6, 21)}}
	uc := NewUseCase(store, 10, domain.DefaultPolicyWindow(), nopLogger{}).WithTimeProvider(fixedClock(now))

	resp, err := uc.Execute(context.Background())
	require.NoError(t, err)
	require.NotNil(t, resp.NextAvailableDate)
	assert.Equal(t, day(6, 24), *resp.NextAvailableDate)
}

func TestExecute_StoreUnavailable(t *testing.T) {
	store := &fakeStore{err: errors.New("connection refused")}
	uc := NewUseCase(store, 10, domain.DefaultPolicyWindow(), nopLogger{}).WithTimeProvider(fixedClock(now))

	_, err := uc.Execute(context.Background())
	assert.ErrorIs(t, err, ErrStoreUnavailable)
}

func TestExecute_EmptyStore(t *testing.T) {
	uc := NewUseCase(&fakeStore{}, 0, domain.DefaultPolicyWindow(), nopLogger{}).WithTimeProvider(fixedClock(now))

	resp, err := uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Empty(t, resp.UnavailableDates)
	require.NotNil(t, resp.NextAvailableDate)
	assert.Equal(t, day(6, 18), *resp.NextAvailableDate)
}
