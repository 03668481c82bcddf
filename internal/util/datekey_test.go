package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"audiobio/internal/common"
)

func TestCanonicalKey(t *testing.T) {
	tests := []struct {
		name  string
		day   int
		month int
		year  int
		want  string
	}{
		{"first of january", 1, 1, 2021, "01_JAN_2021"},
		{"single digit padded", 5, 3, 2023, "05_MAR_2023"},
		{"leap day", 29, 2, 2024, "29_FEB_2024"},
		{"end of december", 31, 12, 1999, "31_DEC_1999"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CanonicalKey(tt.day, tt.month, tt.year)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.True(t, IsValidKey(got))
		})
	}
}

func TestCanonicalKeyRejectsImpossibleDates(t *testing.T) {
	tests := []struct {
		name  string
		day   int
		month int
		year  int
	}{
		{"month zero", 1, 0, 2023},
		{"month thirteen", 1, 13, 2023},
		{"day zero", 0, 1, 2023},
		{"day thirty two", 32, 1, 2023},
		{"feb 30 non leap", 30, 2, 2023},
		{"feb 30 leap", 30, 2, 2024},
		{"feb 29 non leap", 29, 2, 2023},
		{"year zero", 1, 1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := CanonicalKey(tt.day, tt.month, tt.year)
			assert.ErrorIs(t, err, common.ErrInvalidDate)
		})
	}
}

func TestCanonicalKeyIsIdempotent(t *testing.T) {
	key, err := CanonicalKey(14, 7, 2023)
	require.NoError(t, err)

	parsed, err := ParseKey(key)
	require.NoError(t, err)

	again, err := CanonicalKey(parsed.Day(), int(parsed.Month()), parsed.Year())
	require.NoError(t, err)
	assert.Equal(t, key, again)
}

func TestIsValidKey(t *testing.T) {
	assert.True(t, IsValidKey("01_JAN_2021"))
	assert.True(t, IsValidKey("29_FEB_2024"))

	assert.False(t, IsValidKey("01_Jan_2021"), "mixed case is not canonical")
	assert.False(t, IsValidKey("1_JAN_2021"), "day must be zero padded")
	assert.False(t, IsValidKey("01_JANUARY_2021"))
	assert.False(t, IsValidKey("30_FEB_2021"))
	assert.False(t, IsValidKey("01-JAN-2021"))
	assert.False(t, IsValidKey(""))
}

func TestDaysInMonth(t *testing.T) {
	assert.Equal(t, 29, DaysInMonth(2, 2024))
	assert.Equal(t, 28, DaysInMonth(2, 2023))
	assert.Equal(t, 28, DaysInMonth(2, 2100), "century non leap")
	assert.Equal(t, 29, DaysInMonth(2, 2000), "quadricentennial leap")
	assert.Equal(t, 31, DaysInMonth(1, 2023))
	assert.Equal(t, 30, DaysInMonth(4, 2023))
}

func TestKeyAndTitleFromTime(t *testing.T) {
	moment := time.Date(2023, time.August, 9, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, "09_AUG_2023", KeyFromTime(moment))
	assert.Equal(t, "09-Aug-2023", TitleFromTime(moment))
}

func TestTodayKeyIsCanonical(t *testing.T) {
	assert.True(t, IsValidKey(TodayKey()))
	assert.Equal(t, KeyFromTime(time.Now().UTC()), TodayKey())
}

func TestTodayKeyInLocation(t *testing.T) {
	loc, err := time.LoadLocation("Pacific/Kiritimati") // UTC+14, first to roll over
	require.NoError(t, err)
	key := TodayKeyIn(loc)
	assert.True(t, IsValidKey(key))
	assert.Equal(t, KeyFromTime(time.Now().In(loc)), key)
}

func TestParseKeyRejectsMalformed(t *testing.T) {
	_, err := ParseKey("not_a_date")
	assert.ErrorIs(t, err, common.ErrInvalidDate)
}
