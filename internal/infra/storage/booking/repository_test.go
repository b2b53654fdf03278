package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AdmissionService/internal/domain"
)

var testDate = time.Date(2024, time.June, 24, 0, 0, 0, 0, time.UTC)

func TestCountByDateQuery(t *testing.T) {
	query, args, err := countByDateQuery(testDate)
	require.NoError(t, err)

	assert.Equal(t, "SELECT COUNT(*) FROM bookings WHERE appointment_date = $1", query)
	assert.Equal(t, []interface{}{"2024-06-24"}, args)
}

func TestFindByKeyQuery_NormalizesKey(t *testing.T) {
	query, args, err := findByKeyQuery(" A@B.com", "191-d-1 ", testDate)
	require.NoError(t, err)

	assert.Contains(t, query, "email = $1")
	assert.Contains(t, query, "reg = $2")
	assert.Contains(t, query, "appointment_date = $3")
	assert.Contains(t, query, "LIMIT 1")
	assert.Equal(t, []interface{}{"a@b.com", "191-D-1", "2024-06-24"}, args)
}

func TestUpdateStatusQuery(t *testing.T) {
	t.Run("from pending also matches rows without status", func(t *testing.T) {
		query, args, err := updateStatusQuery(7, domain.StatusPending, domain.StatusApproved)
		require.NoError(t, err)

		assert.Contains(t, query, "UPDATE bookings SET status = $1")
		assert.Contains(t, query, "(status = $3 OR status = $4 OR status IS NULL)")
		assert.Contains(t, query, "RETURNING id, name, email")
		assert.Equal(t, []interface{}{"approved", int64(7), "pending", ""}, args)
	})

	t.Run("from approved", func(t *testing.T) {
		query, args, err := updateStatusQuery(7, domain.StatusApproved, domain.StatusCompleted)
		require.NoError(t, err)

		assert.NotContains(t, query, "IS NULL")
		assert.Equal(t, []interface{}{"completed", int64(7), "approved"}, args)
	})
}

func TestFullyBookedDatesQuery(t *testing.T) {
	query, args, err := fullyBookedDatesQuery(testDate, 10)
	require.NoError(t, err)

	assert.Contains(t, query, "GROUP BY appointment_date")
	assert.Contains(t, query, "HAVING COUNT(*) >= $2")
	assert.Equal(t, []interface{}{"2024-06-24", 10}, args)
}
