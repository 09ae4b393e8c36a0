package application

import (
	"context"

	"github.com/wyfcoding/optioncalc/internal/options/domain"
	"github.com/wyfcoding/optioncalc/pkg/metrics"
)

// OptionsService 期权收益分析门面服务。
type OptionsService struct {
	Command *OptionsCommandService
	Query   *OptionsQueryService
}

// NewOptionsService 构造函数。publisher 与 cache 可以为 nil。
func NewOptionsService(publisher domain.EventPublisher, cache domain.AnswerCache, collector metrics.Collector) *OptionsService {
	return &OptionsService{
		Command: NewOptionsCommandService(publisher, cache, collector),
		Query:   NewOptionsQueryService(collector),
	}
}

// --- Command Facade ---

func (s *OptionsService) Calculate(ctx context.Context, cmd CalculateCommand) (*AnswerDTO, error) {
	return s.Command.Calculate(ctx, cmd)
}

// --- Query Facade ---

func (s *OptionsService) Price(ctx context.Context, query PriceQuery) (*PriceResult, error) {
	return s.Query.Price(ctx, query)
}

func (s *OptionsService) ROI(ctx context.Context, query ROIQuery) (*ROIResult, error) {
	return s.Query.ROI(ctx, query)
}

func (s *OptionsService) PayoffCurve(ctx context.Context, query CurveQuery) (*CurveResult, error) {
	return s.Query.PayoffCurve(ctx, query)
}
