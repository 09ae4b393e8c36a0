// 包 期权收益分析服务的领域模型
package domain

import (
	"math"
	"strings"
)

// OptionType 期权类型
type OptionType string

const (
	OptionTypeCall OptionType = "CALL" // 看涨期权
	OptionTypePut  OptionType = "PUT"  // 看跌期权
)

// ParseOptionType 解析期权类型，大小写不敏感
func ParseOptionType(s string) (OptionType, bool) {
	switch OptionType(strings.ToUpper(strings.TrimSpace(s))) {
	case OptionTypeCall:
		return OptionTypeCall, true
	case OptionTypePut:
		return OptionTypePut, true
	}
	return "", false
}

// Environment 影响期权价格的市场环境。
// 所有字段都不应为负数，引擎本身不做校验。
type Environment struct {
	Stock    float64 `json:"stock"`     // 标的当前价格
	RiskFree float64 `json:"risk_free"` // 连续复利无风险利率
	Vol      float64 `json:"vol"`       // 年化波动率，例如 4% 记为 0.04
	DivYield float64 `json:"div_yield"` // 连续股息率，例如 16% 记为 0.16
}

// Contract 期权合约自身的条款
type Contract struct {
	Strike float64 `json:"strike"` // 行权价
	Expiry float64 `json:"expiry"` // 剩余到期时间，单位与利率/波动率的年化单位一致
}

// Movement 对标的未来价格的预测
type Movement struct {
	Stock float64 `json:"stock"` // 预测到达的标的价格
	Time  float64 `json:"time"`  // 预测实现所需的时间
}

// Apply 把环境和合约"快进"到预测结束时刻。
// 只覆盖 env.Stock 与 c.Expiry，到期时间截断为非负。
func (m Movement) Apply(env Environment, c Contract) (Environment, Contract) {
	env.Stock = m.Stock
	c.Expiry = clampMin(c.Expiry-m.Time, 0)
	return env, c
}

// clampMin 返回 max(x, lo)，x 为 NaN 时取 lo
func clampMin(x, lo float64) float64 {
	if math.IsNaN(x) || x < lo {
		return lo
	}
	return x
}
