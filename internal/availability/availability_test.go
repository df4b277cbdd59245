package availability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDay(t *testing.T) {
	d, err := ParseDay("2026-07-04")
	require.NoError(t, err)
	assert.Equal(t, "2026-07-04", d.Format("2006-01-02"))

	d, err = ParseDay("2026-07-04T18:30:00Z")
	require.NoError(t, err)
	assert.Equal(t, "2026-07-04", d.Format("2006-01-02"))

	_, err = ParseDay("not-a-date")
	assert.Error(t, err)
}

func TestDay(t *testing.T) {
	assert.Equal(t, "2026-07-04", Day("2026-07-04T18:30:00Z"))
	assert.Equal(t, "2026-07-04", Day("2026-07-04"))
	assert.Equal(t, "short", Day("short"))
}

func TestNights(t *testing.T) {
	tests := []struct {
		name     string
		checkIn  string
		checkOut string
		want     int32
		wantErr  bool
	}{
		{"three nights", "2026-07-01", "2026-07-04", 3, false},
		{"single night", "2026-07-01", "2026-07-02", 1, false},
		{"partial day rounds up", "2026-07-01T22:00:00Z", "2026-07-02T10:00:00Z", 1, false},
		{"timestamps spanning days", "2026-07-01T15:00:00Z", "2026-07-04T11:00:00Z", 3, false},
		{"checkout equals checkin", "2026-07-01", "2026-07-01", 0, true},
		{"checkout before checkin", "2026-07-04", "2026-07-01", 0, true},
		{"garbage input", "nope", "2026-07-01", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Nights(tt.checkIn, tt.checkOut)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDatesInRange(t *testing.T) {
	dates, err := DatesInRange("2026-07-01", "2026-07-04")
	require.NoError(t, err)
	// The checkout day itself is never occupied.
	assert.Equal(t, []string{"2026-07-01", "2026-07-02", "2026-07-03"}, dates)

	dates, err = DatesInRange("2026-07-01", "2026-07-02")
	require.NoError(t, err)
	assert.Equal(t, []string{"2026-07-01"}, dates)

	// Month boundary.
	dates, err = DatesInRange("2026-07-30", "2026-08-02")
	require.NoError(t, err)
	assert.Equal(t, []string{"2026-07-30", "2026-07-31", "2026-08-01"}, dates)
}

func TestIsRangeBlocked(t *testing.T) {
	blocked := map[string]bool{"2026-07-03": true}

	assert.True(t, IsRangeBlocked("2026-07-01", "2026-07-04", blocked))
	assert.False(t, IsRangeBlocked("2026-07-01", "2026-07-03", blocked))

	// A stay starting on the checkout day of the block is free.
	assert.False(t, IsRangeBlocked("2026-07-04", "2026-07-06", blocked))

	// Unparseable ranges cannot be proven free.
	assert.True(t, IsRangeBlocked("bad", "2026-07-04", blocked))
}

func TestIsRangeBlocked_BackToBackStays(t *testing.T) {
	// An existing stay occupies the 1st through the 3rd and checks out on
	// the 4th; a new stay may check in on the 4th.
	existing, err := DatesInRange("2026-07-01", "2026-07-04")
	require.NoError(t, err)
	blocked := make(map[string]bool)
	for _, d := range existing {
		blocked[d] = true
	}

	assert.False(t, IsRangeBlocked("2026-07-04", "2026-07-07", blocked))
	assert.True(t, IsRangeBlocked("2026-07-03", "2026-07-05", blocked))
}

func TestMaxCheckoutDate(t *testing.T) {
	t.Run("bounded by first block", func(t *testing.T) {
		blocked := map[string]bool{"2026-07-10": true}
		got, ok := MaxCheckoutDate("2026-07-05", blocked)
		assert.True(t, ok)
		assert.Equal(t, "2026-07-09", got)
	})

	t.Run("no blocks hits lookahead boundary", func(t *testing.T) {
		got, ok := MaxCheckoutDate("2026-07-05", map[string]bool{})
		assert.True(t, ok)
		assert.Equal(t, "2026-10-05", got)
	})

	t.Run("next day blocked means no stay possible", func(t *testing.T) {
		blocked := map[string]bool{"2026-07-06": true}
		got, ok := MaxCheckoutDate("2026-07-05", blocked)
		assert.False(t, ok)
		assert.Equal(t, "", got)
	})

	t.Run("block beyond lookahead is ignored", func(t *testing.T) {
		blocked := map[string]bool{"2026-12-01": true}
		got, ok := MaxCheckoutDate("2026-07-05", blocked)
		assert.True(t, ok)
		assert.Equal(t, "2026-10-05", got)
	})

	t.Run("invalid check-in", func(t *testing.T) {
		_, ok := MaxCheckoutDate("garbage", nil)
		assert.False(t, ok)
	})
}
