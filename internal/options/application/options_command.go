package application

import (
	"context"
	"fmt"
	"time"

	"github.com/wyfcoding/optioncalc/internal/options/domain"
	"github.com/wyfcoding/optioncalc/pkg/logger"
	"github.com/wyfcoding/optioncalc/pkg/metrics"
)

// OptionsCommandService 求解最优合约。
// 结果缓存与事件发布都是可选的，对应依赖为 nil 时跳过。
type OptionsCommandService struct {
	publisher domain.EventPublisher
	cache     domain.AnswerCache
	metrics   metrics.Collector
	now       func() time.Time
}

// NewOptionsCommandService 创建 OptionsCommandService
func NewOptionsCommandService(publisher domain.EventPublisher, cache domain.AnswerCache, collector metrics.Collector) *OptionsCommandService {
	if collector == nil {
		collector = metrics.Nop{}
	}
	return &OptionsCommandService{
		publisher: publisher,
		cache:     cache,
		metrics:   collector,
		now:       time.Now,
	}
}

// Calculate 预测上涨（或持平）选看涨、下跌选看跌，在 start = end 的假设下求 ROI 最优的合约
func (c *OptionsCommandService) Calculate(ctx context.Context, cmd CalculateCommand) (*AnswerDTO, error) {
	if err := firstError(validateEnvironment("env", cmd.Env), validateMovement("movement", cmd.Movement)); err != nil {
		return nil, fmt.Errorf("calculate: %w", err)
	}

	answer, cached := c.lookup(ctx, cmd)
	if answer == nil {
		start := c.now()
		solved := domain.Solve(cmd.Env, cmd.Movement)
		answer = &solved
		c.metrics.RecordOptimization(string(answer.Kind), false, c.now().Sub(start))
	} else {
		c.metrics.RecordOptimization(string(answer.Kind), true, 0)
	}

	ok := isFiniteAnswer(answer)
	if !ok {
		c.metrics.RecordNonFinite("calculate")
		logger.Warn(ctx, "best contract is not finite",
			"stock", cmd.Env.Stock,
			"predict_stock", cmd.Movement.Stock,
			"predict_time", cmd.Movement.Time,
			"strike", answer.Contract.Strike,
		)
	}

	if ok && !cached {
		c.store(ctx, cmd, answer)
	}
	if ok {
		c.publish(ctx, cmd, answer, cached)
	}

	logger.Info(ctx, "best contract calculated",
		"kind", answer.Kind,
		"strike", answer.Contract.Strike,
		"expiry", answer.Contract.Expiry,
		"roi", answer.ROI,
		"cached", cached,
	)

	var ranges map[domain.Adjustable]RangeSet
	if ok {
		ranges = answerRanges(cmd, answer)
	}
	return toAnswerDTO(answer, ranges, cached), nil
}

// lookup 缓存读失败只记录日志，不影响计算
func (c *OptionsCommandService) lookup(ctx context.Context, cmd CalculateCommand) (*domain.Answer, bool) {
	if c.cache == nil {
		return nil, false
	}
	answer, found, err := c.cache.Get(ctx, cmd.Env, cmd.Movement)
	if err != nil {
		c.metrics.RecordDependencyError("cache")
		logger.Warn(ctx, "answer cache read failed", "error", err)
		return nil, false
	}
	if !found {
		return nil, false
	}
	return answer, true
}

func (c *OptionsCommandService) store(ctx context.Context, cmd CalculateCommand, answer *domain.Answer) {
	if c.cache == nil {
		return
	}
	if err := c.cache.Set(ctx, cmd.Env, cmd.Movement, answer); err != nil {
		c.metrics.RecordDependencyError("cache")
		logger.Warn(ctx, "answer cache write failed", "error", err)
	}
}

// publish 事件发布失败只记录日志，计算结果照常返回
func (c *OptionsCommandService) publish(ctx context.Context, cmd CalculateCommand, answer *domain.Answer, cached bool) {
	if c.publisher == nil {
		return
	}
	event := domain.ContractOptimizedEvent{
		Environment: cmd.Env,
		Movement:    cmd.Movement,
		Answer:      *answer,
		CachedHit:   cached,
		OccurredOn:  c.now(),
	}
	key := string(answer.Kind)
	if err := c.publisher.Publish(ctx, domain.ContractOptimizedEventType, key, event); err != nil {
		c.metrics.RecordDependencyError("publisher")
		logger.Error(ctx, "failed to publish contract optimized event", "error", err)
	}
}

func isFiniteAnswer(a *domain.Answer) bool {
	return allFinite(a.Contract.Strike, a.Contract.Expiry, a.BuyPrice, a.SellPrice, a.ROI, a.PracticalROI)
}

// answerRanges 以最优合约为中心的各变量区间
func answerRanges(cmd CalculateCommand, a *domain.Answer) map[domain.Adjustable]RangeSet {
	s := domain.Scenario{Start: cmd.Env, End: cmd.Env, Contract: a.Contract, Movement: cmd.Movement}
	ranges := make(map[domain.Adjustable]RangeSet, len(domain.Adjustables()))
	for _, adj := range domain.Adjustables() {
		ranges[adj] = RangeSet{Default: s.DefaultRange(adj), Valid: s.ValidRange(adj)}
	}
	return ranges
}
