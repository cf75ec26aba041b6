package kafka

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessageBuilder_Build(t *testing.T) {
	msg := NewMessage().
		WithKey("booking-1").
		WithValue(map[string]string{"recipientEmail": "mentor@example.com"}).
		WithEventType("booking.created").
		WithCorrelationID("req-1").
		WithSource("booking-api").
		Build()

	assert.Equal(t, "booking-1", msg.Key)
	assert.JSONEq(t, `{"recipientEmail":"mentor@example.com"}`, string(msg.Value))
	assert.Equal(t, "booking.created", msg.GetEventType())
	assert.Equal(t, "req-1", msg.GetCorrelationID())
	assert.NotEmpty(t, msg.GetEventID())

	ts, err := time.Parse(time.RFC3339, msg.Headers[HeaderTimestamp])
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now(), ts, 2*time.Second)
}

func TestMessageBuilder_EmptyCorrelationIDIsOmitted(t *testing.T) {
	msg := NewMessage().WithKey("k").WithRawValue([]byte("{}")).WithCorrelationID("").Build()
	_, ok := msg.GetHeader(HeaderCorrelationID)
	assert.False(t, ok)
}

func TestMessageBuilder_BuildEReportsEncodingError(t *testing.T) {
	_, err := NewMessage().WithKey("k").WithValue(make(chan int)).BuildE()
	require.Error(t, err)
	assert.Equal(t, ErrorTypePermanent, ClassifyError(err))
}

func TestMessage_DecodeValue(t *testing.T) {
	msg := NewMessage().WithKey("k").WithValue(struct {
		Bucket string `json:"bucket"`
	}{Bucket: "mentor_imports"}).Build()

	var out struct {
		Bucket string `json:"bucket"`
	}
	require.NoError(t, msg.DecodeValue(&out))
	assert.Equal(t, "mentor_imports", out.Bucket)
}

func TestMessage_RetryCountPastSingleDigit(t *testing.T) {
	msg := Message{}
	for range 12 {
		msg.IncrementRetryCount()
	}
	assert.Equal(t, 12, msg.GetRetryCount())
	assert.Equal(t, "12", msg.Headers[HeaderRetryCount])
}
