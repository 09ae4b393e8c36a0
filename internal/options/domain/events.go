package domain

import (
	"context"
	"time"
)

const (
	ContractOptimizedEventType = "ContractOptimized"
)

// ContractOptimizedEvent 最优合约计算完成事件
type ContractOptimizedEvent struct {
	Environment Environment `json:"environment"`
	Movement    Movement    `json:"movement"`
	Answer      Answer      `json:"answer"`
	CachedHit   bool        `json:"cached_hit"`
	OccurredOn  time.Time   `json:"occurred_on"`
}

// EventPublisher 领域事件发布接口
type EventPublisher interface {
	Publish(ctx context.Context, eventType string, key string, event any) error
}

// AnswerCache 最优合约结果缓存。优化器是确定性的，相同输入的结果可以直接复用。
type AnswerCache interface {
	Get(ctx context.Context, env Environment, predict Movement) (*Answer, bool, error)
	Set(ctx context.Context, env Environment, predict Movement, answer *Answer) error
}
