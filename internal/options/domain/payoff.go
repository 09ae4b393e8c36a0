package domain

// ChartResolution 每条收益曲线的采样点数
const ChartResolution = 501

// PayoffAxis 收益曲线的纵轴含义
type PayoffAxis string

const (
	PayoffROI     PayoffAxis = "roi"     // 收益率
	PayoffNominal PayoffAxis = "nominal" // 预测实现时的期权价格
)

// Valid 是否为已知纵轴
func (p PayoffAxis) Valid() bool {
	return p == PayoffROI || p == PayoffNominal
}

// PayoffPoint 曲线上的一个点
type PayoffPoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// PayoffCurve 固定其它变量、只扫描 adj 得到的收益曲线
type PayoffCurve struct {
	Axis      PayoffAxis    `json:"axis"`
	Variable  Adjustable    `json:"variable"`
	Range     Range         `json:"range"`
	Current   float64       `json:"current"`   // adj 在情景中的当前取值
	Benchmark float64       `json:"benchmark"` // ROI 为 1，名义价格为入场价
	Points    []PayoffPoint `json:"points"`
}

// Payoff 在情景 s 上计算单点收益
func (m *ROIModel) Payoff(s Scenario, axis PayoffAxis) float64 {
	if axis == PayoffNominal {
		env, c := s.Movement.Apply(s.End, s.Contract)
		return m.pricer.Price(env, c)
	}
	return m.ROI(s.Start, s.End, s.Contract, s.Movement)
}

// SweepPayoff 在 rng 上等距采样 n 个点计算收益曲线
func (m *ROIModel) SweepPayoff(s Scenario, axis PayoffAxis, adj Adjustable, rng Range, n int) PayoffCurve {
	curve := PayoffCurve{
		Axis:      axis,
		Variable:  adj,
		Range:     rng,
		Current:   s.Value(adj),
		Benchmark: 1,
	}
	if axis == PayoffNominal {
		curve.Benchmark = m.pricer.Price(s.Start, s.Contract)
	}

	xs := rng.Linspace(n)
	curve.Points = make([]PayoffPoint, len(xs))
	for i, x := range xs {
		curve.Points[i] = PayoffPoint{X: x, Y: m.Payoff(s.With(adj, x), axis)}
	}
	return curve
}
