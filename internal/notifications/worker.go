package notifications

import (
	"context"
	"fmt"

	"mentorbooking/pkg/kafka"
	"mentorbooking/pkg/logger"
	"mentorbooking/pkg/model"
	"mentorbooking/pkg/validation"
)

// Worker turns notification messages into sent email. Malformed messages
// fail permanently so the consumer parks them in the DLQ; send failures are
// transient and retried.
type Worker struct {
	catalogue *Catalogue
	sender    Sender
	validator *validation.Validator
	log       *logger.Logger
}

func NewWorker(catalogue *Catalogue, sender Sender, validator *validation.Validator, log *logger.Logger) *Worker {
	return &Worker{
		catalogue: catalogue,
		sender:    sender,
		validator: validator,
		log:       log,
	}
}

func (w *Worker) Handle(ctx context.Context, msg kafka.Message) error {
	var n model.Notification
	if err := msg.DecodeValue(&n); err != nil {
		return kafka.NewPermanentError("failed to decode notification", err).
			WithDetail("event_id", msg.GetEventID())
	}

	if err := w.validator.Struct(n); err != nil {
		return kafka.NewPermanentError("invalid notification", err).
			WithDetail("booking_id", n.BookingID)
	}
	if !w.catalogue.Has(n.TemplateID) {
		return kafka.NewPermanentError(fmt.Sprintf("unknown template %q", n.TemplateID), kafka.ErrInvalidMessage).
			WithDetail("booking_id", n.BookingID)
	}

	email, err := w.catalogue.Render(n)
	if err != nil {
		return kafka.NewPermanentError("failed to render notification", err).
			WithDetail("booking_id", n.BookingID)
	}

	if err := w.sender.Send(ctx, email); err != nil {
		return kafka.NewTransientError("failed to send notification email", err).
			WithDetail("booking_id", n.BookingID)
	}

	w.log.Info("Notification email sent",
		"booking_id", n.BookingID,
		"event", n.EventType,
		"template_id", n.TemplateID,
		"recipient", n.RecipientEmail,
		"correlation_id", msg.GetCorrelationID(),
	)
	return nil
}
