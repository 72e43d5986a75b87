package retry

import (
	"errors"
	"testing"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/stretchr/testify/assert"
)

func TestRetryConfig_ToRetryOptions(t *testing.T) {
	cfg := &RetryConfig{Attempts: 3, Delay: time.Millisecond, MaxDelay: time.Millisecond}

	calls := 0
	err := retry.Do(func() error {
		calls++
		return errors.New("boom")
	}, cfg.ToRetryOptions()...)

	assert.Error(t, err)
	assert.Equal(t, 3, calls)
}

func TestDefaultRetryConfig(t *testing.T) {
	cfg := DefaultRetryConfig()
	assert.Equal(t, uint(2), cfg.Attempts)
	assert.LessOrEqual(t, cfg.Delay, cfg.MaxDelay)
}
