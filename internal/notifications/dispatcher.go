package notifications

import (
	"context"
	"fmt"

	"mentorbooking/pkg/kafka"
	"mentorbooking/pkg/middleware"
	"mentorbooking/pkg/model"
)

const (
	notificationSchemaVersion = "1"
	notificationSource        = "booking-api"
)

type Publisher interface {
	Publish(ctx context.Context, msg kafka.Message) error
}

// KafkaDispatcher hands booking notifications to the notifications topic.
// Delivery happens in the notifications worker.
type KafkaDispatcher struct {
	publisher Publisher
}

func NewKafkaDispatcher(publisher Publisher) *KafkaDispatcher {
	return &KafkaDispatcher{publisher: publisher}
}

func (d *KafkaDispatcher) Dispatch(ctx context.Context, notification model.Notification) error {
	msg, err := kafka.NewMessage().
		WithKey(notification.BookingID).
		WithValue(notification).
		WithEventType(string(notification.EventType)).
		WithCorrelationID(middleware.RequestIDFromContext(ctx)).
		WithSchemaVersion(notificationSchemaVersion).
		WithSource(notificationSource).
		BuildE()
	if err != nil {
		return err
	}

	if err := d.publisher.Publish(ctx, msg); err != nil {
		return fmt.Errorf("failed to publish %s notification for booking %s: %w",
			notification.EventType, notification.BookingID, err)
	}
	return nil
}
