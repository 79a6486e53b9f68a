package messaging

import (
	"context"

	"github.com/wyfcoding/marketstore/internal/storefront/domain"
	"github.com/wyfcoding/marketstore/pkg/mq"
)

// KafkaSearchPublisher 将搜索分析事件发送到 Kafka
type KafkaSearchPublisher struct {
	producer *mq.KafkaProducer
	topic    string
}

// NewKafkaSearchPublisher 创建搜索事件发布器
func NewKafkaSearchPublisher(producer *mq.KafkaProducer, topic string) domain.EventPublisher {
	return &KafkaSearchPublisher{
		producer: producer,
		topic:    topic,
	}
}

// PublishSearchExecuted 发布搜索解析完成事件
// 使用 keyword 做 Key，便于下游按词聚合
func (p *KafkaSearchPublisher) PublishSearchExecuted(ctx context.Context, event domain.SearchExecutedEvent) error {
	return p.producer.SendMessage(ctx, p.topic, event.Keyword, event)
}
