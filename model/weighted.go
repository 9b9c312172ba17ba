package model

import (
	"github.com/rushteam/foodrank/core"
)

// WeightedSum 实现了五目标线性加权打分。
//
// 预测原理：
//
//	score = w_rating·n_rating + w_price·n_price + w_value·n_value + w_bags·n_bags + w_dist·n_dist
//
// 与 LR 不同，这里没有偏置项和 Sigmoid：分数的绝对尺度不是契约，
// 只有它诱导出的相对顺序有意义。权重原样使用，不归一化、不校验范围，
// 负权重会反转对应项的贡献。
type WeightedSum struct {
	terms []term
}

type term struct {
	feature string
	weight  float64
}

// NewWeightedSum 根据权重向量构建模型，累加顺序固定为 core.FeatureOrder。
func NewWeightedSum(w core.WeightVector) *WeightedSum {
	terms := make([]term, 0, len(core.FeatureOrder))
	for _, f := range core.FeatureOrder {
		terms = append(terms, term{feature: f, weight: w.Of(f)})
	}
	return &WeightedSum{terms: terms}
}

func (m *WeightedSum) Name() string { return "weighted_sum" }

// Predict 缺失的特征按 0 计入。
func (m *WeightedSum) Predict(features map[string]float64) (float64, error) {
	score := 0.0
	for _, t := range m.terms {
		score += t.weight * features[t.feature]
	}
	return score, nil
}

// Weights 返回模型使用的权重（按 FeatureOrder）。
func (m *WeightedSum) Weights() map[string]float64 {
	out := make(map[string]float64, len(m.terms))
	for _, t := range m.terms {
		out[t.feature] = t.weight
	}
	return out
}
