package check_date

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
	count int
	err   error
	calls int
}

func (s *fakeStore) CountByDate(context.Context, time.Time) (int, error) {
	s.calls++
	return s.count, s.err
}

var today = time.Date(2024, time.June, 3, 12, 0, 0, 0, time.UTC)

func newUseCase(store *fakeStore) *UseCase {
	return NewUseCase(store, 10, domain.DefaultPolicyWindow(), nopLogger{}).WithTimeProvider(fixedClock(today))
}

func TestExecute_Verdicts(t *testing.T) {
	tests := []struct {
		name    string
		date    time.Time
		verdict domain.DateRangeVerdict
	}{
		{"past", today.AddDate(0, 0, -1), domain.VerdictPast},
		{"boundary too soon", today.AddDate(0, 0, 14), domain.VerdictTooSoon},
		{"first eligible", today.AddDate(0, 0, 15), domain.VerdictOK},
		{"too far", today.AddDate(0, 3, 1), domain.VerdictTooFar},
		{"saturday", time.Date(2024, time.June, 29, 0, 0, 0, 0, time.UTC), domain.VerdictWeekend},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeStore{}
			resp, err := newUseCase(store).Execute(context.Background(), &Request{Date: tt.date})
			require.NoError(t, err)

			assert.Equal(t, tt.verdict, resp.Verdict)
			if tt.verdict != domain.VerdictOK {
				assert.Zero(t, store.calls)
				assert.False(t, resp.Available())
			}
		})
	}
}

func TestExecute_Full(t *testing.T) {
	resp, err := newUseCase(&fakeStore{count: 10}).Execute(context.Background(), &Request{Date: today.AddDate(0, 0, 15)})
	require.NoError(t, err)

	assert.True(t, resp.CapacityKnown)
	assert.True(t, resp.Full)
	require.NotNil(t, resp.CurrentBookings)
	assert.Equal(t, 10, *resp.CurrentBookings)
	assert.False(t, resp.Available())
}

func TestExecute_StoreDownFailsOpen(t *testing.T) {
	resp, err := newUseCase(&fakeStore{err: errors.New("timeout")}).Execute(context.Background(), &Request{Date: today.AddDate(0, 0, 15)})
	require.NoError(t, err)

	assert.False(t, resp.CapacityKnown)
	assert.False(t, resp.Full)
	assert.Nil(t, resp.CurrentBookings)
	assert.True(t, resp.Available())
}

func TestExecute_MissingDate(t *testing.T) {
	_, err := newUseCase(&fakeStore{}).Execute(context.Background(), &Request{})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestNewUseCase_DefaultsToWallClock(t *testing.T) {
	uc := NewUseCase(&fakeStore{}, 0, domain.DefaultPolicyWindow(), nopLogger{})

	assert.Equal(t, domain.DefaultCapacityPerDate, uc.capacity)
	assert.WithinDuration(t, time.Now(), uc.timeProvider.Now(), time.Second)
}
