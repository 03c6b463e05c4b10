package clock_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/dompet/internal/clock"
)

func TestLoadLocation(t *testing.T) {
	loc, err := clock.LoadLocation("Asia/Jakarta")
	require.NoError(t, err)
	assert.Equal(t, "Asia/Jakarta", loc.String())

	loc, err = clock.LoadLocation("")
	require.NoError(t, err)
	assert.Equal(t, clock.WIB, loc)

	loc, err = clock.LoadLocation("Mars/Olympus")
	assert.Error(t, err)
	assert.Equal(t, clock.WIB, loc)
}

func TestLocal_Now(t *testing.T) {
	loc, err := clock.LoadLocation("Asia/Jakarta")
	require.NoError(t, err)

	now := clock.NewLocal(loc).Now()
	_, offset := now.Zone()
	assert.Equal(t, 7*60*60, offset)
	assert.WithinDuration(t, time.Now(), now, time.Minute)
}

func TestFixed(t *testing.T) {
	at := time.Date(2024, 5, 17, 9, 30, 0, 0, clock.WIB)
	assert.Equal(t, at, clock.Fixed{T: at}.Now())
}
