package reaction

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDateTime(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2024-01-02T03:04:05Z", "2024-01-02T03:04:05Z"},
		{"2024-01-02T03:04:05+0000", "2024-01-02T03:04:05Z"},
		{"2024-01-02T03:04:05.5+02:00", "2024-01-02T01:04:05Z"},
		{"2024-01-02 03:04:05 UTC", "2024-01-02T03:04:05Z"},
		{"2024-01-02", "2024-01-02T00:00:00Z"},
		{"  2024-01-02  ", "2024-01-02T00:00:00Z"},
		{"Jan 2 2024", "2024-01-02T00:00:00Z"},
		{"Jan 2, 2024", "2024-01-02T00:00:00Z"},
		{"January 2nd, 2024", "2024-01-02T00:00:00Z"},
		{"2 Jan 2024 15:04", "2024-01-02T15:04:00Z"},
		{"1/2/2024", "2024-01-02T00:00:00Z"},
		{"01/02/2024 3:04 PM", "2024-01-02T15:04:00Z"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDateTime(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.UTC().Format(time.RFC3339))
		})
	}

	for _, bad := range []string{"", "   ", "last tuesday", "not a date"} {
		_, err := ParseDateTime(bad)
		assert.Error(t, err, bad)
	}
}

func TestDateTime_Time(t *testing.T) {
	var unset *DateTime
	_, err := unset.Time()
	assert.Error(t, err)

	ts, err := (&DateTime{Value: "March 4th, 2021"}).Time()
	require.NoError(t, err)
	assert.True(t, time.Date(2021, 3, 4, 0, 0, 0, 0, time.UTC).Equal(ts), ts)
}
