package domain

import (
	"math"

	"github.com/shopspring/decimal"
)

const (
	// PriceDecimals 报价保留的小数位
	PriceDecimals int32 = 2

	minBuyPrice  = 0.001
	minSellPrice = 0.0
)

var (
	defaultBuyPrice  = decimal.New(1, -PriceDecimals) // 0.01
	defaultSellPrice = decimal.New(0, -PriceDecimals) // 0.00
)

// RoundAsBuyPrice 把理论价格转换为可成交的买入价。
// 下限 0.001 后按远离零方向保留两位小数，结果最少为 0.01。
func RoundAsBuyPrice(x float64) decimal.Decimal {
	d, ok := toDecimal(clampMin(x, minBuyPrice))
	if !ok {
		return defaultBuyPrice
	}
	return d.RoundUp(PriceDecimals)
}

// RoundAsSellPrice 把理论价格转换为可成交的卖出价。
// 下限 0 后按向零方向保留两位小数，允许结果为 0.00。
func RoundAsSellPrice(x float64) decimal.Decimal {
	d, ok := toDecimal(clampMin(x, minSellPrice))
	if !ok {
		return defaultSellPrice
	}
	return d.RoundDown(PriceDecimals)
}

// toDecimal decimal.NewFromFloat 遇到 ±Inf 会 panic，这里改为返回 false
func toDecimal(x float64) (decimal.Decimal, bool) {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return decimal.Zero, false
	}
	return decimal.NewFromFloat(x), true
}
