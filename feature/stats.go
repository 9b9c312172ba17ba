package feature

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// FeatureStatistics 特征统计信息
type FeatureStatistics struct {
	Count  int
	Sum    float64
	Mean   float64
	Std    float64 // 总体标准差
	Min    float64
	Max    float64
	Median float64
	P25    float64
	P75    float64
}

// ComputeStatistics 计算特征统计信息，values 为空时返回零值。不修改输入。
func ComputeStatistics(values []float64) *FeatureStatistics {
	if len(values) == 0 {
		return &FeatureStatistics{}
	}

	mean, variance := stat.PopMeanVariance(values, nil)
	sorted := sortedCopy(values)
	return &FeatureStatistics{
		Count:  len(values),
		Sum:    floats.Sum(values),
		Mean:   mean,
		Std:    math.Sqrt(variance),
		Min:    floats.Min(values),
		Max:    floats.Max(values),
		Median: computePercentile(sorted, 0.5),
		P25:    computePercentile(sorted, 0.25),
		P75:    computePercentile(sorted, 0.75),
	}
}

// Median 中位数（线性插值，偶数个时为中间两数均值）。values 为空时返回 NaN。
func Median(values []float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	return computePercentile(sortedCopy(values), 0.5)
}

func sortedCopy(values []float64) []float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	return sorted
}

// computePercentile 计算分位数（相邻两点线性插值，偶数个时中位数为中间两数均值），sorted 需升序。
// stat.Quantile 的 LinInterp 定义不同，这里保持与表格工具一致的取法。
func computePercentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1
	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}
	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}
