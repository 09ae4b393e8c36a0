package messaging

import (
	"context"
	"fmt"

	"github.com/wyfcoding/optioncalc/internal/options/domain"
)

// Producer 发送 JSON 消息的能力，由 pkg/mq.KafkaProducer 实现
type Producer interface {
	SendJSON(ctx context.Context, topic, key string, value any, headers map[string]string) error
}

// KafkaEventPublisher 实现 domain.EventPublisher，把领域事件写入 Kafka topic
type KafkaEventPublisher struct {
	producer Producer
	topic    string
	source   string
}

// NewKafkaEventPublisher 创建 KafkaEventPublisher，source 写入消息头用于标识服务
func NewKafkaEventPublisher(producer Producer, topic, source string) *KafkaEventPublisher {
	return &KafkaEventPublisher{producer: producer, topic: topic, source: source}
}

// Publish 事件类型写入 event_type 消息头，key 决定分区
func (p *KafkaEventPublisher) Publish(ctx context.Context, eventType string, key string, event any) error {
	headers := map[string]string{
		"event_type": eventType,
		"source":     p.source,
	}
	if err := p.producer.SendJSON(ctx, p.topic, key, event, headers); err != nil {
		return fmt.Errorf("publish %s: %w", eventType, err)
	}
	return nil
}

var _ domain.EventPublisher = (*KafkaEventPublisher)(nil)
