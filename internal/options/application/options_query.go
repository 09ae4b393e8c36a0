package application

import (
	"context"
	"fmt"
	"math"

	"github.com/wyfcoding/optioncalc/internal/options/domain"
	"github.com/wyfcoding/optioncalc/pkg/logger"
	"github.com/wyfcoding/optioncalc/pkg/metrics"
)

// maxCurvePoints 单条曲线允许的最大采样点数
const maxCurvePoints = 10 * domain.ChartResolution

// OptionsQueryService 无状态的定价、ROI 与收益曲线查询
type OptionsQueryService struct {
	metrics metrics.Collector
}

// NewOptionsQueryService 创建 OptionsQueryService，collector 为 nil 时不记录指标
func NewOptionsQueryService(collector metrics.Collector) *OptionsQueryService {
	if collector == nil {
		collector = metrics.Nop{}
	}
	return &OptionsQueryService{metrics: collector}
}

// Price 计算理论价格、dual delta 与对到期时间的偏导
func (q *OptionsQueryService) Price(ctx context.Context, query PriceQuery) (*PriceResult, error) {
	pricer, err := parsePricer(query.Kind)
	if err != nil {
		return nil, fmt.Errorf("price: %w", err)
	}
	if err := firstError(validateEnvironment("env", query.Env), validateContract("contract", query.Contract)); err != nil {
		return nil, fmt.Errorf("price: %w", err)
	}

	price := pricer.Price(query.Env, query.Contract)
	wrtStrike := pricer.PriceWrtStrike(query.Env, query.Contract)
	wrtTime := pricer.PriceWrtTime(query.Env, query.Contract)

	q.metrics.RecordEvaluation(string(pricer.Kind()), "price")
	if !allFinite(price, wrtStrike, wrtTime) {
		q.metrics.RecordNonFinite("price")
	}
	logger.Debug(ctx, "option priced", "kind", pricer.Kind(), "strike", query.Contract.Strike, "price", price)

	return &PriceResult{
		Kind:           pricer.Kind(),
		Price:          finite(price),
		PriceWrtStrike: finite(wrtStrike),
		PriceWrtTime:   finite(wrtTime),
	}, nil
}

// ROI 计算入场价、离场价、ROI 及其偏导，以及按报价规则取整后的实际 ROI
func (q *OptionsQueryService) ROI(ctx context.Context, query ROIQuery) (*ROIResult, error) {
	pricer, err := parsePricer(query.Kind)
	if err != nil {
		return nil, fmt.Errorf("roi: %w", err)
	}
	if err := validateScenario(query.Scenario); err != nil {
		return nil, fmt.Errorf("roi: %w", err)
	}

	m := domain.NewROIModel(pricer)
	s := query.Scenario
	entry, exit := m.BuySellPrices(s.Start, s.End, s.Contract, s.Movement)
	roi := m.ROI(s.Start, s.End, s.Contract, s.Movement)
	wrtStrike := m.ROIWrtStrike(s.Start, s.End, s.Contract, s.Movement)
	wrtTime := m.ROIWrtTime(s.Start, s.End, s.Contract, s.Movement)
	buy, sell := m.BuySellPricesPractical(s.Start, s.End, s.Contract, s.Movement)
	practical := m.ROIPractical(s.Start, s.End, s.Contract, s.Movement)

	q.metrics.RecordEvaluation(string(pricer.Kind()), "roi")
	if !allFinite(entry, exit, roi, wrtStrike, wrtTime) {
		q.metrics.RecordNonFinite("roi")
	}
	logger.Debug(ctx, "roi evaluated", "kind", pricer.Kind(), "strike", s.Contract.Strike, "roi", roi)

	return &ROIResult{
		Kind:          pricer.Kind(),
		EntryPrice:    finite(entry),
		ExitPrice:     finite(exit),
		ROI:           finite(roi),
		ROIWrtStrike:  finite(wrtStrike),
		ROIWrtTime:    finite(wrtTime),
		PracticalBuy:  buy,
		PracticalSell: sell,
		PracticalROI:  finite(practical),
	}, nil
}

// PayoffCurve 只扫描一个变量，其余输入固定，计算 ROI 或名义价格曲线
func (q *OptionsQueryService) PayoffCurve(ctx context.Context, query CurveQuery) (*CurveResult, error) {
	pricer, err := parsePricer(query.Kind)
	if err != nil {
		return nil, fmt.Errorf("payoff: %w", err)
	}
	if err := validateScenario(query.Scenario); err != nil {
		return nil, fmt.Errorf("payoff: %w", err)
	}

	axis := domain.PayoffAxis(query.Axis)
	if query.Axis == "" {
		axis = domain.PayoffROI
	}
	if !axis.Valid() {
		return nil, fmt.Errorf("payoff: %w", invalid("axis", "must be roi or nominal"))
	}
	adj := domain.Adjustable(query.Variable)
	if !adj.Valid() {
		return nil, fmt.Errorf("payoff: %w", invalid("variable", fmt.Sprintf("must be one of %v", domain.Adjustables())))
	}

	n := query.Points
	if n == 0 {
		n = domain.ChartResolution
	}
	if n < 2 || n > maxCurvePoints {
		return nil, fmt.Errorf("payoff: %w", invalid("points", fmt.Sprintf("must be between 2 and %d", maxCurvePoints)))
	}

	rng := query.Scenario.DefaultRange(adj)
	if query.Range != nil {
		rng = *query.Range
	}
	if err := validateRange(rng, query.Scenario.ValidRange(adj)); err != nil {
		return nil, fmt.Errorf("payoff: %w", err)
	}

	curve := domain.NewROIModel(pricer).SweepPayoff(query.Scenario, axis, adj, rng, n)

	result := &CurveResult{
		Kind:      pricer.Kind(),
		Axis:      curve.Axis,
		Variable:  curve.Variable,
		Range:     curve.Range,
		Current:   finite(curve.Current),
		Benchmark: finite(curve.Benchmark),
		Points:    make([]CurvePoint, len(curve.Points)),
	}
	nonFinite := 0
	for i, p := range curve.Points {
		result.Points[i] = CurvePoint{X: p.X, Y: finite(p.Y)}
		if result.Points[i].Y == nil {
			nonFinite++
		}
	}

	q.metrics.RecordEvaluation(string(pricer.Kind()), "payoff")
	if nonFinite > 0 {
		q.metrics.RecordNonFinite("payoff")
	}
	logger.Debug(ctx, "payoff curve computed", "kind", pricer.Kind(), "axis", axis, "variable", adj, "points", n, "non_finite", nonFinite)

	return result, nil
}

func parsePricer(kind string) (domain.Pricer, error) {
	t, ok := domain.ParseOptionType(kind)
	if !ok {
		return nil, invalid("kind", "must be CALL or PUT")
	}
	p, _ := domain.NewPricer(t)
	return p, nil
}

func validateEnvironment(prefix string, env domain.Environment) error {
	return firstError(
		checkNonNegative(prefix+".stock", env.Stock),
		checkNonNegative(prefix+".risk_free", env.RiskFree),
		checkNonNegative(prefix+".vol", env.Vol),
		checkNonNegative(prefix+".div_yield", env.DivYield),
	)
}

func validateContract(prefix string, c domain.Contract) error {
	return firstError(
		checkNonNegative(prefix+".strike", c.Strike),
		checkNonNegative(prefix+".expiry", c.Expiry),
	)
}

func validateMovement(prefix string, m domain.Movement) error {
	return firstError(
		checkNonNegative(prefix+".stock", m.Stock),
		checkNonNegative(prefix+".time", m.Time),
	)
}

func validateScenario(s domain.Scenario) error {
	return firstError(
		validateEnvironment("start", s.Start),
		validateEnvironment("end", s.End),
		validateContract("contract", s.Contract),
		validateMovement("movement", s.Movement),
	)
}

// validateRange 端点有限、跨度有限，且落在变量的合法区间 valid 内
func validateRange(r, valid domain.Range) error {
	if err := firstError(checkFinite("range.min", r.Min), checkFinite("range.max", r.Max)); err != nil {
		return err
	}
	if r.Min > r.Max {
		return invalid("range", "min must not exceed max")
	}
	if math.IsInf(r.Max-r.Min, 0) {
		return invalid("range", "span is too large")
	}
	if !valid.Contains(r.Min) || !valid.Contains(r.Max) {
		return invalid("range", fmt.Sprintf("must lie within [%g, %g]", valid.Min, valid.Max))
	}
	return nil
}
