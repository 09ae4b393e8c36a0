package domain

import "math"

// Adjustable 情景分析中可以单独调整的变量
type Adjustable string

const (
	AdjustStrike   Adjustable = "strike"    // 行权价
	AdjustExpiry   Adjustable = "expiry"    // 合约到期时间
	AdjustEndPrice Adjustable = "end_price" // 预测的标的价格
	AdjustEndTime  Adjustable = "end_time"  // 预测实现时长
	AdjustEndVol   Adjustable = "end_vol"   // 预测结束时的波动率
)

// Adjustables 全部可调变量，顺序固定
func Adjustables() []Adjustable {
	return []Adjustable{AdjustStrike, AdjustExpiry, AdjustEndPrice, AdjustEndTime, AdjustEndVol}
}

// Valid 是否为已知变量
func (a Adjustable) Valid() bool {
	switch a {
	case AdjustStrike, AdjustExpiry, AdjustEndPrice, AdjustEndTime, AdjustEndVol:
		return true
	}
	return false
}

// Range 闭区间 [Min, Max]
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Contains 判断 x 是否在区间内
func (r Range) Contains(x float64) bool {
	return x >= r.Min && x <= r.Max
}

// Linspace 在区间内等距取 n 个点，包含两个端点
func (r Range) Linspace(n int) []float64 {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []float64{r.Min}
	}
	xs := make([]float64, n)
	step := (r.Max - r.Min) / float64(n-1)
	for i := range xs {
		if math.IsInf(step, 0) {
			// 跨度溢出时按权重插值
			t := float64(i) / float64(n-1)
			xs[i] = r.Min*(1-t) + r.Max*t
			continue
		}
		xs[i] = r.Min + float64(i)*step
	}
	xs[n-1] = r.Max
	return xs
}

// Scenario 一次完整的 ROI 查询所需的全部输入
type Scenario struct {
	Start    Environment `json:"start"`
	End      Environment `json:"end"`
	Contract Contract    `json:"contract"`
	Movement Movement    `json:"movement"`
}

// Value 读取某个可调变量的当前值
func (s Scenario) Value(a Adjustable) float64 {
	switch a {
	case AdjustStrike:
		return s.Contract.Strike
	case AdjustExpiry:
		return s.Contract.Expiry
	case AdjustEndPrice:
		return s.Movement.Stock
	case AdjustEndTime:
		return s.Movement.Time
	case AdjustEndVol:
		return s.End.Vol
	}
	return math.NaN()
}

// With 返回替换了某个可调变量后的新情景
func (s Scenario) With(a Adjustable, x float64) Scenario {
	switch a {
	case AdjustStrike:
		s.Contract.Strike = x
	case AdjustExpiry:
		s.Contract.Expiry = x
	case AdjustEndPrice:
		s.Movement.Stock = x
	case AdjustEndTime:
		s.Movement.Time = x
	case AdjustEndVol:
		s.End.Vol = x
	}
	return s
}

// DefaultRange 图表/滑块默认展示的"合理"区间
func (s Scenario) DefaultRange(a Adjustable) Range {
	switch a {
	case AdjustStrike:
		return Range{0, 2 * s.Contract.Strike}
	case AdjustExpiry:
		return Range{s.Movement.Time, 2 * s.Movement.Time}
	case AdjustEndPrice:
		return Range{0, 2 * s.Movement.Stock}
	case AdjustEndTime:
		return Range{0, s.Contract.Expiry}
	case AdjustEndVol:
		return Range{0, 2 * s.End.Vol}
	}
	return Range{}
}

// ValidRange 变量允许取值的最宽区间。上界用 math.MaxFloat64 表示无界，便于 JSON 编码。
func (s Scenario) ValidRange(a Adjustable) Range {
	switch a {
	case AdjustExpiry:
		return Range{s.Movement.Time, math.MaxFloat64}
	case AdjustEndTime:
		return Range{0, s.Contract.Expiry}
	case AdjustStrike, AdjustEndPrice, AdjustEndVol:
		return Range{0, math.MaxFloat64}
	}
	return Range{}
}
