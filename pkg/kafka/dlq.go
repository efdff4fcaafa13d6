package kafka

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/segmentio/kafka-go"
)

// DLQTopic names the dead-letter topic of a source topic.
func DLQTopic(topic string) string {
	return TopicPrefix + ".dlq." + topic
}

// DLQ forwards poison messages with their origin recorded in headers.
type DLQ struct {
	writer MessageWriter
	logger *slog.Logger
}

// NewDLQ builds a writer for dead-letter topics.
func NewDLQ(brokers []string, logger *slog.Logger) *DLQ {
	return NewDLQWithWriter(&kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		RequiredAcks:           kafka.RequireAll,
		AllowAutoTopicCreation: true,
	}, logger)
}

func NewDLQWithWriter(w MessageWriter, logger *slog.Logger) *DLQ {
	return &DLQ{writer: w, logger: logger}
}

// Publish copies msg to its dead-letter topic.
func (d *DLQ) Publish(ctx context.Context, msg kafka.Message, cause error, group string) error {
	topic := DLQTopic(msg.Topic)
	headers := append(append([]kafka.Header(nil), msg.Headers...),
		kafka.Header{Key: "dlq.original_topic", Value: []byte(msg.Topic)},
		kafka.Header{Key: "dlq.original_partition", Value: []byte(strconv.Itoa(msg.Partition))},
		kafka.Header{Key: "dlq.original_offset", Value: []byte(strconv.FormatInt(msg.Offset, 10))},
		kafka.Header{Key: "dlq.consumer_group", Value: []byte(group)},
	)
	if cause != nil {
		headers = append(headers, kafka.Header{Key: "dlq.error", Value: []byte(cause.Error())})
	}

	if err := d.writer.WriteMessages(ctx, kafka.Message{
		Topic:   topic,
		Key:     msg.Key,
		Value:   msg.Value,
		Headers: headers,
	}); err != nil {
		return fmt.Errorf("publish to %s: %w", topic, err)
	}
	d.logger.WarnContext(ctx, "message dead-lettered",
		slog.String("dlq_topic", topic),
		slog.Int64("offset", msg.Offset),
	)
	return nil
}

func (d *DLQ) Close() error { return d.writer.Close() }
