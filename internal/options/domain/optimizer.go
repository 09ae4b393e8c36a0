package domain

import "math"

const (
	// OptimizerIterations 梯度上升的固定迭代次数，没有收敛判断
	OptimizerIterations = 5000
	// ExpiryEpsilon 保证到期时间严格大于预测时长，离场时刻的 √T 不为 0
	ExpiryEpsilon = 0.0001

	learningRate = 0.1
	maxStep      = 0.01
)

// FindBestContract 用梯度上升寻找 ROI 最大的合约。
// 到期时间固定为预测时长加 ExpiryEpsilon，只优化行权价。
// 行权价可能漂移为负，此后梯度为 NaN，迭代照常进行到结束。
func (m *ROIModel) FindBestContract(start, end Environment, predict Movement) Contract {
	answer := Contract{Strike: predict.Stock, Expiry: predict.Time + ExpiryEpsilon}

	for range OptimizerIterations {
		grad := m.ROIWrtStrike(start, end, answer, predict)
		// 单步位移 |step·grad| 不超过 maxStep
		step := math.Min(learningRate, maxStep/math.Abs(grad))
		answer.Strike += step * grad
	}

	return answer
}
