package domain

import "github.com/shopspring/decimal"

// ROIFloorThreshold ROI 计算中的价格阈值。
// 入场价低于该值时按该值计算，离场价不高于该值时视为 0。
const ROIFloorThreshold = 0.00001

// ROIModel 在定价器之上计算"现在买入、预测实现时卖出"的收益率及其偏导
type ROIModel struct {
	pricer Pricer
}

// NewROIModel 创建 ROIModel
func NewROIModel(p Pricer) *ROIModel {
	return &ROIModel{pricer: p}
}

// Pricer 返回底层定价器
func (m *ROIModel) Pricer() Pricer {
	return m.pricer
}

// BuySellPrices 返回入场价与离场价。
// 入场价在 start 环境下定价；离场价先把 predict 作用于 (end, c) 再定价。
func (m *ROIModel) BuySellPrices(start, end Environment, c Contract, predict Movement) (entry, exit float64) {
	exitEnv, exitCon := predict.Apply(end, c)
	return m.pricer.Price(start, c), m.pricer.Price(exitEnv, exitCon)
}

// ROI 离场价 / 入场价
func (m *ROIModel) ROI(start, end Environment, c Contract, predict Movement) float64 {
	entry, exit := m.flooredPrices(start, end, c, predict)
	return exit / entry
}

// ROIWrtStrike ROI 对行权价的一阶偏导
func (m *ROIModel) ROIWrtStrike(start, end Environment, c Contract, predict Movement) float64 {
	return m.quotientRule(start, end, c, predict, m.pricer.PriceWrtStrike)
}

// ROIWrtTime ROI 对到期时间的一阶偏导
func (m *ROIModel) ROIWrtTime(start, end Environment, c Contract, predict Movement) float64 {
	return m.quotientRule(start, end, c, predict, m.pricer.PriceWrtTime)
}

// BuySellPricesPractical 按市场报价规则取整后的买入价与卖出价
func (m *ROIModel) BuySellPricesPractical(start, end Environment, c Contract, predict Movement) (buy, sell decimal.Decimal) {
	entry, exit := m.BuySellPrices(start, end, c, predict)
	return RoundAsBuyPrice(entry), RoundAsSellPrice(exit)
}

// ROIPractical 投资者实际能实现的 ROI。买入价至少为 0.01，不会除零。
func (m *ROIModel) ROIPractical(start, end Environment, c Contract, predict Movement) float64 {
	buy, sell := m.BuySellPricesPractical(start, end, c, predict)
	return sell.Div(buy).InexactFloat64()
}

// flooredPrices 应用 ROIFloorThreshold 后的入场价与离场价
func (m *ROIModel) flooredPrices(start, end Environment, c Contract, predict Movement) (entry, exit float64) {
	entry, exit = m.BuySellPrices(start, end, c, predict)
	entry = clampMin(entry, ROIFloorThreshold)
	if exit <= ROIFloorThreshold {
		exit = 0
	}
	return entry, exit
}

// quotientRule (entry·exit' − exit·entry') / entry²
func (m *ROIModel) quotientRule(start, end Environment, c Contract, predict Movement, partial func(Environment, Contract) float64) float64 {
	entry, exit := m.flooredPrices(start, end, c, predict)
	exitEnv, exitCon := predict.Apply(end, c)
	entryD := partial(start, c)
	exitD := partial(exitEnv, exitCon)
	return (entry*exitD - exit*entryD) / (entry * entry)
}
