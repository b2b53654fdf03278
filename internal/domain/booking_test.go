package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookingStatus_Transitions(t *testing.T) {
	all := []BookingStatus{StatusPending, StatusApproved, StatusDeclined, StatusCompleted}

	legal := map[BookingStatus]map[BookingStatus]bool{
		StatusPending:  {StatusApproved: true, StatusDeclined: true, StatusCompleted: true},
		StatusApproved: {StatusCompleted: true},
	}

	for _, from := range all {
		for _, to := range all {
			assert.Equal(t, legal[from][to], from.CanTransitionTo(to), "%s -> %s", from, to)
		}
	}
}

func TestBookingStatus_Terminal(t *testing.T) {
	assert.False(t, StatusPending.IsTerminal())
	assert.False(t, StatusApproved.IsTerminal())
	assert.True(t, StatusDeclined.IsTerminal())
	assert.True(t, StatusCompleted.IsTerminal())
}

func TestBookingStatus_EmptyBehavesAsPending(t *testing.T) {
	var empty BookingStatus
	assert.Equal(t, StatusPending, empty.Effective())
	assert.True(t, empty.CanTransitionTo(StatusApproved))
}

func TestParseBookingStatus(t *testing.T) {
	status, err := ParseBookingStatus("approved")
	require.NoError(t, err)
	assert.Equal(t, StatusApproved, status)

	_, err = ParseBookingStatus("cancelled")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestBookingRequest_NormalizeAndFingerprint(t *testing.T) {
	req := BookingRequest{
		Name:            "  Jane ",
		Email:           " A@B.com ",
		PhoneNumber:     " 0851234567",
		CarReg:          " 191-d-1 ",
		AppointmentDate: time.Date(2024, time.June, 24, 15, 30, 0, 0, time.UTC),
	}

	n := req.Normalize()
	assert.Equal(t, "Jane", n.Name)
	assert.Equal(t, "a@b.com", n.Email)
	assert.Equal(t, "191-D-1", n.CarReg)
	assert.Equal(t, "0851234567", n.PhoneNumber)
	assert.Equal(t, time.Date(2024, time.June, 24, 0, 0, 0, 0, time.UTC), n.AppointmentDate)
	assert.Equal(t, "a@b.com|191-D-1|2024-06-24", n.Fingerprint())

	// Fingerprint не зависит от регистра и пробелов исходной заявки
	assert.Equal(t, n.Fingerprint(), req.Fingerprint())
}

func TestBooking_Key(t *testing.T) {
	b := Booking{Email: "a@b.com", Reg: "191-D-1", AppointmentDate: time.Date(2024, time.June, 24, 0, 0, 0, 0, time.UTC)}
	assert.Equal(t, "a@b.com|191-D-1|2024-06-24", b.Key())
}
