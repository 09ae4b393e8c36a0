package messaging

import (
	"context"
	"errors"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/wyfcoding/optioncalc/internal/options/domain"
	"github.com/wyfcoding/optioncalc/pkg/mq"
)

type captureWriter struct {
	msgs []kafka.Message
	err  error
}

func (w *captureWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *captureWriter) Close() error { return nil }

func TestKafkaEventPublisher_Publish(t *testing.T) {
	w := &captureWriter{}
	pub := NewKafkaEventPublisher(mq.NewProducerWithWriter(w), "contracts", "optioncalc")

	event := domain.ContractOptimizedEvent{
		Environment: domain.Environment{Stock: 100, RiskFree: 0.05, Vol: 0.2},
		Movement:    domain.Movement{Stock: 110, Time: 0.5},
		Answer:      domain.Answer{Kind: domain.OptionTypeCall, Contract: domain.Contract{Strike: 95, Expiry: 0.5001}},
	}
	if err := pub.Publish(context.Background(), domain.ContractOptimizedEventType, "CALL", event); err != nil {
		t.Fatalf("Publish: %v", err)
	}

	if len(w.msgs) != 1 {
		t.Fatalf("messages = %d", len(w.msgs))
	}
	msg := w.msgs[0]
	if msg.Topic != "contracts" || string(msg.Key) != "CALL" {
		t.Fatalf("topic=%s key=%s", msg.Topic, msg.Key)
	}
	headers := map[string]string{}
	for _, h := range msg.Headers {
		headers[h.Key] = string(h.Value)
	}
	if headers["event_type"] != domain.ContractOptimizedEventType || headers["source"] != "optioncalc" {
		t.Fatalf("headers = %v", headers)
	}
}

func TestKafkaEventPublisher_WrapsError(t *testing.T) {
	boom := errors.New("no brokers")
	pub := NewKafkaEventPublisher(mq.NewProducerWithWriter(&captureWriter{err: boom}), "contracts", "optioncalc")

	if err := pub.Publish(context.Background(), "X", "k", struct{}{}); !errors.Is(err, boom) {
		t.Fatalf("err = %v", err)
	}
}
