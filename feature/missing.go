package feature

import (
	"fmt"

	"github.com/rushteam/foodrank/core"
)

// FillPolicy 缺失值填充策略。每个特征列在归一化之前必须显式选定一种策略。
type FillPolicy int

const (
	// FillZero 缺失视为最差（0.0）：评分、估值、餐袋数
	FillZero FillPolicy = iota
	// FillMedian 缺失视为典型值（列中位数）：价格、距离
	FillMedian
)

func (p FillPolicy) String() string {
	switch p {
	case FillZero:
		return "zero"
	case FillMedian:
		return "median"
	default:
		return fmt.Sprintf("FillPolicy(%d)", int(p))
	}
}

// ParseFillPolicy 从配置字符串解析填充策略。
func ParseFillPolicy(s string) (FillPolicy, error) {
	switch s {
	case "zero":
		return FillZero, nil
	case "median":
		return FillMedian, nil
	default:
		return FillZero, fmt.Errorf("unknown fill policy: %q", s)
	}
}

// Fill 按策略把可缺失列转换为完整数值列，返回新切片与填充值。
//
// FillMedian 使用非缺失值的中位数（偶数个时取中间两数均值）；
// 整列缺失时中位数无定义，回退为 0.0，归一化后整列为 0.5。
func Fill(values []core.OptionalFloat, policy FillPolicy) ([]float64, float64) {
	fill := 0.0
	if policy == FillMedian {
		present := make([]float64, 0, len(values))
		for _, v := range values {
			if v.Valid {
				present = append(present, v.Value)
			}
		}
		if len(present) > 0 {
			fill = Median(present)
		}
	}

	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = v.Or(fill)
	}
	return out, fill
}
