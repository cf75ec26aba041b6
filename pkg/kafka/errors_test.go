package kafka

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorType
	}{
		{"nil", nil, ErrorTypeUnknown},
		{"explicit transient", NewTransientError("gmail send failed", errors.New("boom")), ErrorTypeTransient},
		{"explicit permanent", NewPermanentError("bad payload", errors.New("boom")), ErrorTypePermanent},
		{"wrapped transient", fmt.Errorf("handler: %w", NewTransientError("x", nil)), ErrorTypeTransient},
		{"deadline", fmt.Errorf("send: %w", context.DeadlineExceeded), ErrorTypeTransient},
		{"cancelled", context.Canceled, ErrorTypePermanent},
		{"network pattern", errors.New("dial tcp: Connection Refused"), ErrorTypeTransient},
		{"unknown defaults to permanent", errors.New("something odd"), ErrorTypePermanent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyError(tt.err))
		})
	}
}

func TestShouldRetry(t *testing.T) {
	transient := NewTransientError("x", nil)

	assert.True(t, ShouldRetry(transient, 0, 3))
	assert.False(t, ShouldRetry(transient, 3, 3))
	assert.False(t, ShouldRetry(NewPermanentError("x", nil), 0, 3))
	assert.False(t, ShouldRetry(nil, 0, 3))
}

func TestKafkaError_Unwrap(t *testing.T) {
	cause := errors.New("root")
	err := NewTransientError("wrapped", cause).WithDetail("attempt", 1)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "wrapped: root", err.Error())
	assert.Equal(t, 1, err.Details["attempt"])
}
