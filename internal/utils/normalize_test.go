package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Pune Warriors", "pune-warriors"},
		{"  Mumbai  XI  ", "mumbai-xi"},
		{"Café Strikers", "cafe-strikers"},
		{"Under_19 Colts", "under-19-colts"},
		{"---", ""},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Slugify(tt.in), "input %q", tt.in)
	}
}

func TestNormalizeNameLower(t *testing.T) {
	assert.Equal(t, "pune warriors", NormalizeNameLower("  Pune   Warriors "))
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2026-03-15")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC), d)

	_, err = ParseDate("not-a-date")
	assert.ErrorIs(t, err, ErrInvalidTimeFormat)

	today, err := ParseDate("")
	require.NoError(t, err)
	assert.Equal(t, 0, today.Hour())
}

func TestTrimMax(t *testing.T) {
	assert.Equal(t, "abc", TrimMax("  abc  ", 10))
	assert.Equal(t, "abcde", TrimMax("abcdefgh", 5))
}
