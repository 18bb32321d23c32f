package timezone

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocation_FallsBackToDefault(t *testing.T) {
	assert.Equal(t, DefaultTimezone, Location("").String())
	assert.Equal(t, DefaultTimezone, Location("Mars/Olympus").String())
	assert.Equal(t, "Europe/Lisbon", Location("Europe/Lisbon").String())
}

func TestClock_NowIn(t *testing.T) {
	fixed := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	c := Fixed(fixed)

	got := c.NowIn("America/Sao_Paulo")
	assert.True(t, got.Equal(fixed))
	assert.Equal(t, 9, got.Hour())
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("America/Sao_Paulo", "2026-02-14")
	require.NoError(t, err)
	assert.Equal(t, 0, d.Hour())
	assert.Equal(t, "America/Sao_Paulo", d.Location().String())
	assert.True(t, StartOfDay(d.Add(5*time.Hour)).Equal(d))

	_, err = ParseDate("America/Sao_Paulo", "14/02/2026")
	assert.Error(t, err)
}
