package watchdog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpiredIsFalseBeforeBudgetElapses(t *testing.T) {
	PollInterval = time.Millisecond
	w := Start(time.Hour)
	defer w.Stop()
	assert.False(t, w.Expired())
	assert.Greater(t, w.Remaining(), time.Duration(0))
}

func TestExpiredBecomesTrueAfterBudgetElapses(t *testing.T) {
	PollInterval = time.Millisecond
	w := Start(5 * time.Millisecond)
	defer w.Stop()

	require.Eventually(t, w.Expired, 500*time.Millisecond, 2*time.Millisecond)
	assert.Equal(t, time.Duration(0), w.Remaining())
}

func TestStopReleasesPollingGoroutineWithoutPanicking(t *testing.T) {
	w := Start(time.Hour)
	assert.NotPanics(t, w.Stop)
	assert.NotPanics(t, w.Stop)
}
