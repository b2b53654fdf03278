package dbmetrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOperation(t *testing.T) {
	cases := []struct {
		query string
		want  string
	}{
		{"SELECT id FROM bookings", "SELECT"},
		{"  update bookings SET status = $1", "UPDATE"},
		{"", "unknown"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, operation(tc.query), tc.query)
	}
}
