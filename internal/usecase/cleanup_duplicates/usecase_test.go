package cleanup_duplicates

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

type fakeStore struct {
	bookings []*domain.Booking
	listErr  error
	failIDs  map[int64]bool
	deleted  []int64
}

func (s *fakeStore) ListByCreation(context.Context) ([]*domain.Booking, error) {
	return s.bookings, s.listErr
}

func (s *fakeStore) Delete(_ context.Context, id int64) error {
	if s.failIDs[id] {
		return errors.New("delete failed")
	}
	s.deleted = append(s.deleted, id)
	return nil
}

var (
	date = time.Date(2024, time.June, 24, 0, 0, 0, 0, time.UTC)
	t0   = time.Date(2024, time.June, 1, 8, 0, 0, 0, time.UTC)
)

func booking(id int64, email, reg string, status domain.BookingStatus, createdMinutes int) *domain.Booking {
	return &domain.Booking{
		ID:              id,
		Email:           email,
		Reg:             reg,
		AppointmentDate: date,
		Status:          status,
		CreatedAt:       t0.Add(time.Duration(createdMinutes) * time.Minute),
	}
}

func TestExecute_KeepsRowWithStatusThenEarliest(t *testing.T) {
	store := &fakeStore{bookings: []*domain.Booking{
		booking(1, "a@b.com", "191-D-1", "", 0),
		booking(2, "A@B.com", "191-d-1", domain.StatusApproved, 5),
		booking(3, "a@b.com", "191-D-1", domain.StatusPending, 3),
		booking(4, "c@d.com", "05-C-2", "", 1),
		booking(5, "c@d.com", "05-C-2", "", 2),
		booking(6, "solo@x.ie", "10-KY-3", "", 4),
	}}

	resp, err := NewUseCase(store, nopLogger{}).Execute(context.Background())
	require.NoError(t, err)

	// группа a@b.com: есть статус у 2 и 3, остаётся более ранняя 3
	// группа c@d.com: статуса нет, остаётся ранняя 4
	assert.ElementsMatch(t, []int64{1, 2, 5}, store.deleted)
	assert.Equal(t, 3, resp.DeletedCount)
	assert.Equal(t, 2, resp.DuplicateGroups)
	assert.Empty(t, resp.FailedIDs)
}

func TestExecute_DeleteFailureIsSkipped(t *testing.T) {
	store := &fakeStore{
		bookings: []*domain.Booking{
			booking(1, "a@b.com", "R1", "", 0),
			booking(2, "a@b.com", "R1", "", 1),
			booking(3, "a@b.com", "R1", "", 2),
		},
		failIDs: map[int64]bool{2: true},
	}

	resp, err := NewUseCase(store, nopLogger{}).Execute(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []int64{3}, store.deleted)
	assert.Equal(t, 1, resp.DeletedCount)
	assert.Equal(t, []int64{2}, resp.FailedIDs)
}

func TestExecute_NoDuplicates(t *testing.T) {
	store := &fakeStore{bookings: []*domain.Booking{booking(1, "a@b.com", "R1", "", 0)}}

	resp, err := NewUseCase(store, nopLogger{}).Execute(context.Background())
	require.NoError(t, err)
	assert.Zero(t, resp.DeletedCount)
	assert.Zero(t, resp.DuplicateGroups)
}

func TestExecute_ListFailure(t *testing.T) {
	store := &fakeStore{listErr: errors.New("connection reset")}

	_, err := NewUseCase(store, nopLogger{}).Execute(context.Background())
	assert.ErrorIs(t, err, ErrStoreUnavailable)
}
