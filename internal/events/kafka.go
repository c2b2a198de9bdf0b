package events

import (
	"context"
	"encoding/json"

	"github.com/segmentio/kafka-go"

	"github.com/Goutham227347/Ground-Water/internal/config"
)

const eventTypeHeader = "event_type"

const alertEventType = "groundwater.alert"

// KafkaPublisher writes alert events to a Kafka topic. Messages are keyed by
// station code so one station's alerts stay ordered within a partition.
type KafkaPublisher struct {
	writer *kafka.Writer
}

// NewKafkaPublisher builds a publisher against the configured brokers.
func NewKafkaPublisher(cfg config.KafkaConfig) *KafkaPublisher {
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(cfg.Brokers...),
			Topic:        cfg.Topic,
			Balancer:     &kafka.LeastBytes{},
			RequiredAcks: kafka.RequireAll,
		},
	}
}

var _ Publisher = (*KafkaPublisher)(nil)

func (p *KafkaPublisher) PublishAlert(ctx context.Context, ev AlertEvent) error {
	msg, err := buildMessage(ev)
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, msg)
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

func buildMessage(ev AlertEvent) (kafka.Message, error) {
	b, err := json.Marshal(ev)
	if err != nil {
		return kafka.Message{}, err
	}
	return kafka.Message{
		Key:   []byte(ev.StationCode),
		Value: b,
		Headers: []kafka.Header{
			{Key: eventTypeHeader, Value: []byte(alertEventType)},
		},
	}, nil
}
