package feature

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// DegenerateValue 常数列（max == min）归一化后的取值：中性中点，既不奖励也不惩罚任何门店。
const DegenerateValue = 0.5

// MinMaxNormalize Min-Max 归一化
// 公式: x' = (x - min) / (max - min)
// 特点: 将值缩放到 [0, 1] 区间；整列相等时每个值都为 0.5。
//
// 输入需已完成缺失值填充（见 Fill）。返回新切片，不修改输入。
func MinMaxNormalize(values []float64) []float64 {
	out := make([]float64, len(values))
	if len(values) == 0 {
		return out
	}

	min := floats.Min(values)
	max := floats.Max(values)
	if max == min {
		for i := range out {
			out[i] = DegenerateValue
		}
		return out
	}

	rangeVal := max - min
	if math.IsInf(rangeVal, 0) {
		// 极差超出 float64 范围时按一半计算，比值不变
		half := max/2 - min/2
		for i, v := range values {
			out[i] = clamp01((v/2 - min/2) / half)
		}
		return out
	}
	for i, v := range values {
		out[i] = clamp01((v - min) / rangeVal)
	}
	return out
}

// Invert 对"越小越好"的特征（价格、距离）取反：x' = 1 - x。
// 取反后数值越大越有利。返回新切片。
func Invert(normalized []float64) []float64 {
	out := make([]float64, len(normalized))
	for i, v := range normalized {
		out[i] = 1 - v
	}
	return out
}

// clamp01 吸收 (v-min)/range 在端点处的舍入误差；NaN 视为 0
func clamp01(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
