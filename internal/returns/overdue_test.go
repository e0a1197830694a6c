package returns

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCommitment(t *testing.T) {
	testCases := []struct {
		in   string
		want time.Time
	}{
		{"2025-01-01T00:00:00Z", time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)},
		{"2025-01-01T05:00:00+05:00", time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)},
		{"2024-12-31T19:00:00-05:00", time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)},
		{"2025-01-01T00:00:00.123456Z", time.Date(2025, 1, 1, 0, 0, 0, 123456000, time.UTC)},
		// naive values are taken as UTC
		{"2025-01-01T00:00:00", time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)},
		{"2025-01-01T00:00:00.500", time.Date(2025, 1, 1, 0, 0, 0, 500000000, time.UTC)},
		{"2025-01-01 00:00:00", time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)},
		{"2025-01-01", time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)},
	}
	for _, tt := range testCases {
		got, err := ParseCommitment(tt.in)
		require.NoError(t, err, "input %q", tt.in)
		assert.True(t, got.Equal(tt.want), "input %q: got %v, want %v", tt.in, got, tt.want)
		assert.Equal(t, time.UTC, got.Location(), "input %q", tt.in)
	}
}

func TestParseCommitmentMalformed(t *testing.T) {
	for _, in := range []string{"", "mañana", "01/02/2025", "2025-13-40T99:00:00Z"} {
		_, err := ParseCommitment(in)
		require.Error(t, err, "input %q", in)

		var api *APIError
		require.ErrorAs(t, err, &api)
		assert.Equal(t, CodeMalformedTimestamp, api.Code)
	}
}

func TestIsOverdueTimezoneIndependence(t *testing.T) {
	// the same two instants expressed in different zones must give the
	// same verdict
	lima := time.FixedZone("America/Lima", -5*3600)
	tokyo := time.FixedZone("Asia/Tokyo", 9*3600)

	commitmentUTC := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	nowUTC := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)

	want := IsOverdue(commitmentUTC, nowUTC)
	assert.True(t, want)
	assert.Equal(t, want, IsOverdue(commitmentUTC.In(lima), nowUTC.In(tokyo)))
	assert.Equal(t, want, IsOverdue(commitmentUTC.In(tokyo), nowUTC.In(lima)))
}

func TestIsOverdueBoundaryIsStrict(t *testing.T) {
	at := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	assert.False(t, IsOverdue(at, at))
	assert.False(t, IsOverdue(at, at.Add(-time.Nanosecond)))
	assert.True(t, IsOverdue(at, at.Add(time.Nanosecond)))
}

func TestIsOverdueMonotonicInNow(t *testing.T) {
	commitment := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	n1 := commitment.Add(time.Minute)
	require.True(t, IsOverdue(commitment, n1))

	for _, step := range []time.Duration{time.Second, time.Hour, 24 * time.Hour, 365 * 24 * time.Hour} {
		assert.True(t, IsOverdue(commitment, n1.Add(step)))
	}
}
