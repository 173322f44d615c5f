package camunda

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scholarship-workers/internal/common/config"
	"scholarship-workers/internal/common/errors"
)

func fastRetry() RetryConfig {
	return RetryConfig{MaxRetries: 3, BaseDelay: time.Millisecond, MaxDelay: 2 * time.Millisecond}
}

func TestExecuteWithRetry_RetriesTransientErrors(t *testing.T) {
	calls := 0
	err := executeWithRetry(context.Background(), fastRetry(), "complete job", func(context.Context) error {
		calls++
		if calls < 3 {
			return fmt.Errorf("rpc error: code = Unavailable")
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestExecuteWithRetry_GivesUp(t *testing.T) {
	calls := 0
	err := executeWithRetry(context.Background(), fastRetry(), "complete job", func(context.Context) error {
		calls++
		return fmt.Errorf("connection refused")
	})

	require.Error(t, err)
	assert.Equal(t, 4, calls)
	assert.Equal(t, errors.ErrCodeExternalService, errors.CodeOf(err))
	assert.Contains(t, err.Error(), "after 4 attempts")
}

func TestExecuteWithRetry_PermanentErrorIsNotRetried(t *testing.T) {
	calls := 0
	err := executeWithRetry(context.Background(), fastRetry(), "throw error", func(context.Context) error {
		calls++
		return fmt.Errorf("job not found")
	})

	assert.Equal(t, 1, calls)
	assert.Equal(t, errors.ErrCodeResourceNotFound, errors.CodeOf(err))
}

func TestExecuteWithRetry_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := executeWithRetry(ctx, RetryConfig{MaxRetries: 3, BaseDelay: time.Hour}, "publish", func(context.Context) error {
		return fmt.Errorf("deadline exceeded")
	})

	assert.Equal(t, errors.ErrCodeTimeout, errors.CodeOf(err))
}

func TestMapZeebeError(t *testing.T) {
	tests := []struct {
		msg  string
		code errors.ErrorCode
	}{
		{"context deadline exceeded", errors.ErrCodeTimeout},
		{"process not found", errors.ErrCodeResourceNotFound},
		{"resource already exists", errors.ErrCodeBusinessRule},
		{"permission denied", errors.ErrCodeAuthenticationFailed},
		{"something odd", errors.ErrCodeExternalService},
	}

	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			err := mapZeebeError(fmt.Errorf("%s", tt.msg), "op", 0)
			assert.Equal(t, tt.code, errors.CodeOf(err))
		})
	}
}

func TestConfigFrom(t *testing.T) {
	cfg := ConfigFrom(config.CamundaConfig{BrokerAddress: "zeebe:26500", RequestTimeout: 1500})

	assert.Equal(t, "zeebe:26500", cfg.GatewayAddress)
	assert.Equal(t, 1500*time.Millisecond, cfg.RequestTimeout)
	assert.Equal(t, DefaultRetryConfig, cfg.Retry)
}
