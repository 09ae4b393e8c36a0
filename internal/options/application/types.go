package application

import (
	"math"

	"github.com/shopspring/decimal"
	"github.com/wyfcoding/optioncalc/internal/options/domain"
)

// PriceQuery 单点定价查询
type PriceQuery struct {
	Kind     string
	Env      domain.Environment
	Contract domain.Contract
}

// ROIQuery 单点 ROI 查询
type ROIQuery struct {
	Kind     string
	Scenario domain.Scenario
}

// CurveQuery 收益曲线查询
type CurveQuery struct {
	Kind     string
	Scenario domain.Scenario
	// Axis roi 或 nominal，默认 roi
	Axis string
	// Variable 横轴变量
	Variable string
	// Range 为空时使用该变量的默认区间
	Range *domain.Range
	// Points 为 0 时使用 domain.ChartResolution
	Points int
}

// CalculateCommand 求最优合约的命令
type CalculateCommand struct {
	Env      domain.Environment
	Movement domain.Movement
}

// PriceResult 定价结果。NaN/Inf 编码为 null。
type PriceResult struct {
	Kind           domain.OptionType `json:"kind"`
	Price          *float64          `json:"price"`
	PriceWrtStrike *float64          `json:"price_wrt_strike"`
	PriceWrtTime   *float64          `json:"price_wrt_time"`
}

// ROIResult ROI 查询结果
type ROIResult struct {
	Kind          domain.OptionType `json:"kind"`
	EntryPrice    *float64          `json:"entry_price"`
	ExitPrice     *float64          `json:"exit_price"`
	ROI           *float64          `json:"roi"`
	ROIWrtStrike  *float64          `json:"roi_wrt_strike"`
	ROIWrtTime    *float64          `json:"roi_wrt_time"`
	PracticalBuy  decimal.Decimal   `json:"practical_buy"`
	PracticalSell decimal.Decimal   `json:"practical_sell"`
	PracticalROI  *float64          `json:"practical_roi"`
}

// CurvePoint 曲线上的点
type CurvePoint struct {
	X float64  `json:"x"`
	Y *float64 `json:"y"`
}

// CurveResult 收益曲线
type CurveResult struct {
	Kind      domain.OptionType `json:"kind"`
	Axis      domain.PayoffAxis `json:"axis"`
	Variable  domain.Adjustable `json:"variable"`
	Range     domain.Range      `json:"range"`
	Current   *float64          `json:"current"`
	Benchmark *float64          `json:"benchmark"`
	Points    []CurvePoint      `json:"points"`
}

// RangeSet 可调变量的默认展示区间与允许区间
type RangeSet struct {
	Default domain.Range `json:"default"`
	Valid   domain.Range `json:"valid"`
}

// AnswerDTO 最优合约计算结果
type AnswerDTO struct {
	Kind          domain.OptionType              `json:"kind"`
	Strike        *float64                       `json:"strike"`
	Expiry        *float64                       `json:"expiry"`
	BuyPrice      *float64                       `json:"buy_price"`
	SellPrice     *float64                       `json:"sell_price"`
	ROI           *float64                       `json:"roi"`
	PracticalBuy  decimal.Decimal                `json:"practical_buy"`
	PracticalSell decimal.Decimal                `json:"practical_sell"`
	PracticalROI  *float64                       `json:"practical_roi"`
	Ranges        map[domain.Adjustable]RangeSet `json:"ranges"`
	Cached        bool                           `json:"cached"`
}

// finite 非有限值返回 nil，JSON 中为 null
func finite(x float64) *float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return nil
	}
	return &x
}

func allFinite(xs ...float64) bool {
	for _, x := range xs {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}

func toAnswerDTO(a *domain.Answer, ranges map[domain.Adjustable]RangeSet, cached bool) *AnswerDTO {
	return &AnswerDTO{
		Kind:          a.Kind,
		Strike:        finite(a.Contract.Strike),
		Expiry:        finite(a.Contract.Expiry),
		BuyPrice:      finite(a.BuyPrice),
		SellPrice:     finite(a.SellPrice),
		ROI:           finite(a.ROI),
		PracticalBuy:  a.PracticalBuy,
		PracticalSell: a.PracticalSell,
		PracticalROI:  finite(a.PracticalROI),
		Ranges:        ranges,
		Cached:        cached,
	}
}
