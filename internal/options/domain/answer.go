package domain

import "github.com/shopspring/decimal"

// Answer 给定市场环境与预测时，ROI 最优的合约及其买卖价格
type Answer struct {
	Kind          OptionType      `json:"kind"`
	Contract      Contract        `json:"contract"`
	BuyPrice      float64         `json:"buy_price"`
	SellPrice     float64         `json:"sell_price"`
	ROI           float64         `json:"roi"`
	PracticalBuy  decimal.Decimal `json:"practical_buy"`
	PracticalSell decimal.Decimal `json:"practical_sell"`
	PracticalROI  float64         `json:"practical_roi"`
}

// ChooseOptionType 预测上涨（或持平）用看涨期权，否则用看跌期权
func ChooseOptionType(env Environment, predict Movement) OptionType {
	if predict.Stock >= env.Stock {
		return OptionTypeCall
	}
	return OptionTypePut
}

// Solve 假设除标的价格外环境保持不变，求出最优合约并给出买卖价格
func Solve(env Environment, predict Movement) Answer {
	kind := ChooseOptionType(env, predict)
	pricer, _ := NewPricer(kind)
	model := NewROIModel(pricer)

	best := model.FindBestContract(env, env, predict)
	buy, sell := model.BuySellPrices(env, env, best, predict)
	practicalBuy, practicalSell := model.BuySellPricesPractical(env, env, best, predict)

	return Answer{
		Kind:          kind,
		Contract:      best,
		BuyPrice:      buy,
		SellPrice:     sell,
		ROI:           model.ROI(env, env, best, predict),
		PracticalBuy:  practicalBuy,
		PracticalSell: practicalSell,
		PracticalROI:  model.ROIPractical(env, env, best, predict),
	}
}
