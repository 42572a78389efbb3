package notify

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/segmentio/kafka-go"
)

// KafkaNotifier publishes price-drop events to a topic. It is wired only
// when brokers are configured; an empty broker list leaves the default log
// sink in place.
type KafkaNotifier struct {
	writer *kafka.Writer
}

func NewKafkaNotifier(brokersCSV, topic string) *KafkaNotifier {
	brokers := []string{}
	for _, b := range strings.Split(brokersCSV, ",") {
		b = strings.TrimSpace(b)
		if b != "" {
			brokers = append(brokers, b)
		}
	}
	if len(brokers) == 0 {
		return nil
	}
	if topic == "" {
		topic = "shopnest.price-drops"
	}
	return &KafkaNotifier{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireOne,
		},
	}
}

func (n *KafkaNotifier) NotifyPriceDrop(ctx context.Context, d PriceDrop) error {
	payload, err := json.Marshal(d)
	if err != nil {
		return err
	}
	return n.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(d.ProductID),
		Value: payload,
	})
}

func (n *KafkaNotifier) Close() error { return n.writer.Close() }
