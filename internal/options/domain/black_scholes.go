package domain

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// Pricer Black-Scholes-Merton 定价能力。
// 所有方法对非法输入（负波动率、零到期时间等）不做校验，直接返回 NaN/Inf。
type Pricer interface {
	// Kind 期权类型
	Kind() OptionType
	// Price 理论价格
	Price(env Environment, c Contract) float64
	// PriceWrtStrike 价格对行权价的一阶偏导（dual delta）
	PriceWrtStrike(env Environment, c Contract) float64
	// PriceWrtTime 价格对剩余到期时间的一阶偏导
	PriceWrtTime(env Environment, c Contract) float64
}

// NewPricer 根据期权类型返回对应的定价器
func NewPricer(t OptionType) (Pricer, bool) {
	switch t {
	case OptionTypeCall:
		return Call{}, true
	case OptionTypePut:
		return Put{}, true
	}
	return nil, false
}

// bsmTerms 公式中 Call 与 Put 共用的中间量
type bsmTerms struct {
	d1, d2   float64
	sqrtT    float64
	stockPV  float64 // S·e^(−qT)
	strikePV float64 // K·e^(−rT)
}

func newBSMTerms(env Environment, c Contract) bsmTerms {
	sqrtT := math.Sqrt(c.Expiry)
	d1 := (math.Log(env.Stock/c.Strike) + c.Expiry*(env.RiskFree-env.DivYield+env.Vol*env.Vol/2)) / (env.Vol * sqrtT)
	return bsmTerms{
		d1:       d1,
		d2:       d1 - env.Vol*sqrtT,
		sqrtT:    sqrtT,
		stockPV:  env.Stock * math.Exp(-env.DivYield*c.Expiry),
		strikePV: c.Strike * math.Exp(-env.RiskFree*c.Expiry),
	}
}

// gammaTerm 时间偏导中的公共项 (S·σ·e^(−qT) / 2√T)·φ(d1)
func (t bsmTerms) gammaTerm(env Environment, c Contract) float64 {
	return (env.Stock * env.Vol * math.Exp(-env.DivYield*c.Expiry)) / (2 * t.sqrtT) * normPdf(t.d1)
}

// Call 看涨期权
type Call struct{}

func (Call) Kind() OptionType { return OptionTypeCall }

// Price N(d1)·S·e^(−qT) − N(d2)·K·e^(−rT)
func (Call) Price(env Environment, c Contract) float64 {
	t := newBSMTerms(env, c)
	return normCdf(t.d1)*t.stockPV - normCdf(t.d2)*t.strikePV
}

// PriceWrtStrike −e^(−rT)·N(d2)
func (Call) PriceWrtStrike(env Environment, c Contract) float64 {
	t := newBSMTerms(env, c)
	return -math.Exp(-env.RiskFree*c.Expiry) * normCdf(t.d2)
}

func (Call) PriceWrtTime(env Environment, c Contract) float64 {
	t := newBSMTerms(env, c)
	a := t.gammaTerm(env, c)
	b := env.RiskFree * c.Strike * math.Exp(-env.RiskFree*c.Expiry) * normCdf(t.d2)
	q := -env.DivYield * env.Stock * math.Exp(-env.DivYield*c.Expiry) * normCdf(t.d1)
	return a + b + q
}

// Put 看跌期权
type Put struct{}

func (Put) Kind() OptionType { return OptionTypePut }

// Price N(−d2)·K·e^(−rT) − N(−d1)·S·e^(−qT)
func (Put) Price(env Environment, c Contract) float64 {
	t := newBSMTerms(env, c)
	return normCdf(-t.d2)*t.strikePV - normCdf(-t.d1)*t.stockPV
}

// PriceWrtStrike e^(−rT)·(1 − N(d2))
func (Put) PriceWrtStrike(env Environment, c Contract) float64 {
	t := newBSMTerms(env, c)
	return math.Exp(-env.RiskFree*c.Expiry) * (1 - normCdf(t.d2))
}

// PriceWrtTime 后两项使用 φ(−d2)、φ(−d1) 而不是 N(·)，与 Call 不对称。
func (Put) PriceWrtTime(env Environment, c Contract) float64 {
	t := newBSMTerms(env, c)
	a := t.gammaTerm(env, c)
	b := env.RiskFree * c.Strike * math.Exp(-env.RiskFree*c.Expiry) * normPdf(-t.d2)
	q := -env.DivYield * env.Stock * math.Exp(-env.DivYield*c.Expiry) * normPdf(-t.d1)
	return a + b + q
}

// normCdf 标准正态分布累积分布函数
func normCdf(x float64) float64 {
	return distuv.UnitNormal.CDF(x)
}

// normPdf 标准正态分布概率密度函数
func normPdf(x float64) float64 {
	return distuv.UnitNormal.Prob(x)
}
