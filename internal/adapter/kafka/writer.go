// Package kafka publishes upload receipts for downstream consumers.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/gdevine/face-neutronprobe-hiev/internal/config"
	"github.com/gdevine/face-neutronprobe-hiev/internal/domain"
)

// Writer produces upload-receipt messages to the configured topic.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the receipt topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaReceiptTopic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w, logger: logger}
}

// PublishReceipt serializes and publishes one upload receipt.
func (w *Writer) PublishReceipt(ctx context.Context, receipt domain.UploadReceipt) error {
	msg, err := serializeToMessage(receipt)
	if err != nil {
		return err
	}
	return w.writer.WriteMessages(ctx, msg)
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeToMessage marshals a receipt into a Kafka message keyed by
// filename, so receipts for re-uploads of the same file land in order.
func serializeToMessage(receipt domain.UploadReceipt) (kafkago.Message, error) {
	data, err := json.Marshal(receipt)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize upload receipt: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(receipt.File),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "kind", Value: []byte(receipt.Kind)},
			{Key: "uploaded_at", Value: []byte(receipt.UploadedAt.Format(time.RFC3339))},
		},
	}, nil
}
