package notifications

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"mentorbooking/pkg/kafka"
	"mentorbooking/pkg/logger"
	"mentorbooking/pkg/middleware"
	"mentorbooking/pkg/model"
	"mentorbooking/pkg/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sessionStart = time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

func sampleNotification() model.Notification {
	return model.Notification{
		EventType:      model.NotificationBookingCreated,
		RecipientEmail: "mentor@example.com",
		TemplateID:     "MentorBookingTemplate",
		BookingID:      "b-1",
		Payload: model.NotificationPayload{
			CounterpartyEmail: "student@example.com",
			StartTime:         sessionStart,
			EndTime:           sessionStart.Add(30 * time.Minute),
		},
	}
}

type publisherFunc func(ctx context.Context, msg kafka.Message) error

func (f publisherFunc) Publish(ctx context.Context, msg kafka.Message) error {
	return f(ctx, msg)
}

func TestKafkaDispatcher_PublishesKeyedMessage(t *testing.T) {
	var got kafka.Message
	d := NewKafkaDispatcher(publisherFunc(func(ctx context.Context, msg kafka.Message) error {
		got = msg
		return nil
	}))

	ctx := context.WithValue(context.Background(), middleware.RequestIDKey, "req-42")
	require.NoError(t, d.Dispatch(ctx, sampleNotification()))

	assert.Equal(t, "b-1", got.Key)
	assert.Equal(t, "booking.created", got.GetEventType())
	assert.Equal(t, "req-42", got.GetCorrelationID())
	assert.NotEmpty(t, got.GetEventID())

	var decoded model.Notification
	require.NoError(t, json.Unmarshal(got.Value, &decoded))
	assert.Equal(t, "mentor@example.com", decoded.RecipientEmail)
	assert.True(t, decoded.Payload.StartTime.Equal(sessionStart))
}

func TestKafkaDispatcher_WrapsPublishError(t *testing.T) {
	cause := errors.New("broker unreachable")
	d := NewKafkaDispatcher(publisherFunc(func(ctx context.Context, msg kafka.Message) error {
		return cause
	}))

	err := d.Dispatch(context.Background(), sampleNotification())
	require.Error(t, err)
	assert.True(t, errors.Is(err, cause))
	assert.Contains(t, err.Error(), "b-1")
}

func TestDefaultCatalogue_Render(t *testing.T) {
	c, err := LoadCatalogue("")
	require.NoError(t, err)
	assert.True(t, c.Has("MentorBookingTemplate"))
	assert.True(t, c.Has("StudentBookingTemplate"))

	email, err := c.Render(sampleNotification())
	require.NoError(t, err)
	assert.Equal(t, "mentor@example.com", email.To)
	assert.Equal(t, "Booking successfully created", email.Subject)
	assert.Contains(t, email.Body, "student@example.com")
	assert.Contains(t, email.Body, "01 September 2026, 10:00:00 UTC")
	assert.Contains(t, email.Body, "01 September 2026, 10:30:00 UTC")

	cancelled := sampleNotification()
	cancelled.EventType = model.NotificationBookingCancelled
	email, err = c.Render(cancelled)
	require.NoError(t, err)
	assert.Equal(t, "Booking successfully cancelled", email.Subject)
}

func TestParseCatalogue_Errors(t *testing.T) {
	_, err := ParseCatalogue([]byte("templates: {}"))
	assert.Error(t, err)

	_, err = ParseCatalogue([]byte("templates:\n  Broken:\n    subject: \"{{.Event\"\n    body: x\n"))
	assert.Error(t, err)

	c, err := ParseCatalogue([]byte("templates:\n  Custom:\n    subject: \"Hi {{.Event}}\"\n    body: \"{{.CounterpartyEmail}}\"\n"))
	require.NoError(t, err)
	n := sampleNotification()
	n.TemplateID = "Custom"
	email, err := c.Render(n)
	require.NoError(t, err)
	assert.Equal(t, "Hi created", email.Subject)
	assert.Equal(t, "student@example.com", email.Body)
}

func TestEncodeMessage(t *testing.T) {
	raw := encodeMessage("noreply@example.com", Email{
		To:      "mentor@example.com",
		Subject: "Booking successfully created",
		Body:    "hello",
	})

	decoded, err := base64.URLEncoding.DecodeString(raw)
	require.NoError(t, err)
	text := string(decoded)
	assert.True(t, strings.HasPrefix(text, "From: noreply@example.com\r\n"))
	assert.Contains(t, text, "To: mentor@example.com\r\n")
	assert.Contains(t, text, "Subject: Booking successfully created\r\n")
	assert.True(t, strings.HasSuffix(text, "\r\n\r\nhello"))
}

type fakeSender struct {
	sent []Email
	err  error
}

func (f *fakeSender) Send(ctx context.Context, email Email) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, email)
	return nil
}

func newTestWorker(t *testing.T, sender Sender) *Worker {
	t.Helper()
	c, err := LoadCatalogue("")
	require.NoError(t, err)
	return NewWorker(c, sender, validation.New(), logger.NewNop())
}

func messageFor(t *testing.T, value any) kafka.Message {
	t.Helper()
	msg, err := kafka.NewMessage().WithKey("b-1").WithValue(value).BuildE()
	require.NoError(t, err)
	return msg
}

func TestWorker_SendsRenderedEmail(t *testing.T) {
	sender := &fakeSender{}
	w := newTestWorker(t, sender)

	require.NoError(t, w.Handle(context.Background(), messageFor(t, sampleNotification())))
	require.Len(t, sender.sent, 1)
	assert.Equal(t, "mentor@example.com", sender.sent[0].To)
}

func TestWorker_InvalidMessagesArePermanent(t *testing.T) {
	badRecipient := sampleNotification()
	badRecipient.RecipientEmail = "not-an-email"

	unknownTemplate := sampleNotification()
	unknownTemplate.TemplateID = "Nope"

	badEvent := sampleNotification()
	badEvent.EventType = "booking.moved"

	tests := []struct {
		name string
		msg  kafka.Message
	}{
		{name: "not json", msg: kafka.Message{Value: []byte("{")}},
		{name: "bad recipient", msg: messageFor(t, badRecipient)},
		{name: "unknown template", msg: messageFor(t, unknownTemplate)},
		{name: "unknown event", msg: messageFor(t, badEvent)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sender := &fakeSender{}
			err := newTestWorker(t, sender).Handle(context.Background(), tt.msg)
			require.Error(t, err)
			assert.Equal(t, kafka.ErrorTypePermanent, kafka.ClassifyError(err))
			assert.Empty(t, sender.sent)
		})
	}
}

func TestWorker_SendFailureIsTransient(t *testing.T) {
	sender := &fakeSender{err: errors.New("googleapi: Error 503")}

	err := newTestWorker(t, sender).Handle(context.Background(), messageFor(t, sampleNotification()))
	require.Error(t, err)
	assert.Equal(t, kafka.ErrorTypeTransient, kafka.ClassifyError(err))
}
