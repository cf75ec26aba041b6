package kafka

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	kafka_config "mentorbooking/pkg/kafka/config"
	"mentorbooking/pkg/logger"

	"github.com/segmentio/kafka-go"
)

const fetchErrorBackoff = 1 * time.Second

// deadLetterWriter is satisfied by *kafka.Writer.
type deadLetterWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type Consumer struct {
	reader       *kafka.Reader
	dlqWriter    deadLetterWriter
	topic        string
	groupID      string
	dlqTopic     string
	maxRetries   int
	retryBackoff time.Duration
	handler      MessageHandler
	middleware   []ConsumerMiddleware
	log          *logger.Logger
	closed       bool
	mu           sync.RWMutex
	wg           sync.WaitGroup
}

type ConsumerMiddleware func(ctx context.Context, msg Message, next MessageHandler) error

// NewConsumer joins stream.GroupID on stream.Topic. Messages that still fail
// after the configured retries are parked on stream.DLQ.
func NewConsumer(cfg *kafka_config.Config, log *logger.Logger, stream kafka_config.Stream, handler MessageHandler) (*Consumer, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if log == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}
	if len(cfg.Brokers) == 0 {
		return nil, fmt.Errorf("at least one broker is required")
	}
	if stream.Topic == "" {
		return nil, fmt.Errorf("%s topic cannot be empty", stream.Name)
	}
	if stream.GroupID == "" {
		return nil, fmt.Errorf("%s group ID cannot be empty", stream.Name)
	}
	if handler == nil {
		return nil, fmt.Errorf("message handler cannot be nil")
	}
	topic, groupID, dlqTopic := stream.Topic, stream.GroupID, stream.DLQ

	// CommitInterval is left at zero so every commit is synchronous.
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        cfg.Brokers,
		Topic:          topic,
		GroupID:        groupID,
		SessionTimeout: cfg.SessionTimeout,
		StartOffset:    cfg.StartOffset,
		Logger:         kafka.LoggerFunc(func(msg string, args ...any) {}),
		ErrorLogger:    errorLogger(log, topic),
	})

	consumer := &Consumer{
		reader:       reader,
		topic:        topic,
		groupID:      groupID,
		dlqTopic:     dlqTopic,
		maxRetries:   cfg.HandlerRetries,
		retryBackoff: cfg.RetryBackoff,
		handler:      handler,
		middleware:   make([]ConsumerMiddleware, 0),
		log:          log,
	}

	if dlqTopic != "" {
		consumer.dlqWriter = newDLQWriter(cfg.Brokers, dlqTopic, compressionCodec(cfg.Compression), log)
	}

	return consumer, nil
}

func (c *Consumer) Use(middleware ConsumerMiddleware) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.middleware = append(c.middleware, middleware)
}

// Start blocks consuming messages until ctx is cancelled. Offsets are
// committed after the handler returns, whether it succeeded or the message
// was dead-lettered. A message that can be neither handled nor dead-lettered
// stops Start with ErrDeadLetterFailed and stays uncommitted.
func (c *Consumer) Start(ctx context.Context) error {
	c.mu.RLock()
	if c.closed {
		c.mu.RUnlock()
		return ErrConsumerClosed
	}
	c.mu.RUnlock()

	c.wg.Add(1)
	defer c.wg.Done()

	c.log.Info("Kafka consumer started", "topic", c.topic, "group_id", c.groupID)

	for {
		kafkaMsg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) || ctx.Err() != nil {
				return ctx.Err()
			}
			c.log.Error("kafka consumer error fetching message", "topic", c.topic, "error", err)
			if !sleepCtx(ctx, fetchErrorBackoff) {
				return ctx.Err()
			}
			continue
		}

		msg := convertMessage(kafkaMsg)

		if err := c.processMessage(ctx, msg); err != nil {
			c.log.Error("kafka consumer error processing message",
				"topic", msg.Topic,
				"partition", msg.Partition,
				"offset", msg.Offset,
				"event_id", msg.GetEventID(),
				"error", err,
			)
			if ctx.Err() != nil {
				return ctx.Err()
			}
			// Committing a later offset would skip this one, so stop and let
			// the group redeliver from the last commit.
			if errors.Is(err, ErrDeadLetterFailed) {
				return err
			}
		}

		if err := c.reader.CommitMessages(ctx, kafkaMsg); err != nil {
			c.log.Error("kafka consumer error committing offset", "topic", c.topic, "offset", kafkaMsg.Offset, "error", err)
		}
	}
}

func (c *Consumer) buildHandler() MessageHandler {
	c.mu.RLock()
	middleware := c.middleware
	c.mu.RUnlock()

	handler := c.handler
	for i := len(middleware) - 1; i >= 0; i-- {
		mw := middleware[i]
		next := handler
		handler = func(ctx context.Context, m Message) error {
			return mw(ctx, m, next)
		}
	}
	return handler
}

// processMessage runs the handler, retrying transient failures with a linear
// backoff, and dead-letters the message when retries are exhausted. It
// returns ErrDeadLetterFailed when the message could not be dead-lettered.
func (c *Consumer) processMessage(ctx context.Context, msg Message) error {
	handler := c.buildHandler()

	for {
		err := handler(ctx, msg)
		if err == nil {
			return nil
		}

		retries := msg.GetRetryCount()
		if ShouldRetry(err, retries, c.maxRetries) {
			msg.IncrementRetryCount()
			c.log.Warn("retrying message",
				"attempt", retries+1,
				"max_retries", c.maxRetries,
				"event_id", msg.GetEventID(),
				"error", err,
			)
			if !sleepCtx(ctx, c.retryBackoff*time.Duration(retries+1)) {
				return ctx.Err()
			}
			continue
		}

		if c.dlqWriter == nil {
			return fmt.Errorf("%w: no DLQ configured: %w", ErrDeadLetterFailed, err)
		}
		if dlqErr := c.sendToDLQ(ctx, msg, err); dlqErr != nil {
			c.log.Error("failed to send message to DLQ", "dlq_topic", c.dlqTopic, "error", dlqErr, "original_error", err)
			return fmt.Errorf("%w: %w", ErrDeadLetterFailed, errors.Join(err, dlqErr))
		}
		c.log.Warn("message sent to DLQ", "dlq_topic", c.dlqTopic, "retries", retries, "error", err)
		return err
	}
}

func (c *Consumer) sendToDLQ(ctx context.Context, msg Message, originalErr error) error {
	msg.Headers = withDLQHeaders(msg.Headers, c.topic, originalErr)
	msg.Headers["dlq-consumer-group"] = c.groupID
	return c.dlqWriter.WriteMessages(ctx, toKafkaMessage(msg, time.Now()))
}

func convertMessage(kafkaMsg kafka.Message) Message {
	msg := Message{
		Key:       string(kafkaMsg.Key),
		Value:     kafkaMsg.Value,
		Headers:   make(map[string]string, len(kafkaMsg.Headers)),
		Topic:     kafkaMsg.Topic,
		Partition: kafkaMsg.Partition,
		Offset:    kafkaMsg.Offset,
		Timestamp: kafkaMsg.Time,
	}
	for _, header := range kafkaMsg.Headers {
		msg.Headers[header.Key] = string(header.Value)
	}
	return msg
}

func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// Close waits for Start to return before closing the reader. Cancel the
// context passed to Start first.
func (c *Consumer) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	c.mu.Unlock()

	c.wg.Wait()

	var err error
	if c.reader != nil {
		err = c.reader.Close()
	}
	if c.dlqWriter != nil {
		if dlqErr := c.dlqWriter.Close(); err == nil {
			err = dlqErr
		}
	}
	return err
}
