package feature

import (
	"context"
	"strconv"

	"github.com/rushteam/foodrank/core"
	"github.com/rushteam/foodrank/pipeline"
	"github.com/rushteam/foodrank/pkg/utils"
)

// Column 描述一个待归一化的原始特征列。
type Column struct {
	// Feature 归一化结果写入的特征名（core.FeatureRating 等）
	Feature string
	// Raw 从门店中取原始值
	Raw func(it *core.ScoredStore) core.OptionalFloat
	// Fill 缺失值填充策略
	Fill FillPolicy
	// LowerIsBetter 为 true 时归一化后取反（价格、距离）
	LowerIsBetter bool
}

// DefaultColumns 返回五个目标的默认列定义：
//
//	rating    FillZero    n_rating
//	price     FillMedian  n_price = 1 - normalize(price)
//	valuation FillZero    n_value
//	bags      FillZero    n_bags
//	distance  FillMedian  n_dist  = 1 - normalize(distance)
func DefaultColumns() []Column {
	return []Column{
		{
			Feature: core.FeatureRating,
			Raw:     func(it *core.ScoredStore) core.OptionalFloat { return it.Rating },
			Fill:    FillZero,
		},
		{
			Feature:       core.FeaturePrice,
			Raw:           func(it *core.ScoredStore) core.OptionalFloat { return it.Price },
			Fill:          FillMedian,
			LowerIsBetter: true,
		},
		{
			Feature: core.FeatureValue,
			Raw:     func(it *core.ScoredStore) core.OptionalFloat { return core.Some(it.Valuation) },
			Fill:    FillZero,
		},
		{
			Feature: core.FeatureBags,
			Raw:     func(it *core.ScoredStore) core.OptionalFloat { return it.Bags },
			Fill:    FillZero,
		},
		{
			Feature:       core.FeatureDistance,
			Raw:           func(it *core.ScoredStore) core.OptionalFloat { return it.DistanceKM },
			Fill:          FillMedian,
			LowerIsBetter: true,
		},
	}
}

// NormalizeNode 对整张门店表逐列做缺失值填充 + Min-Max 归一化，
// 结果写入 ScoredStore.Features，每个值都在 [0,1] 内。
//
// 归一化范围取自当前整张表，与查询的顾客无关：同一门店在同一数据集下
// 无论哪位顾客查询，n_price 都相同；不同数据集之间的分数不可比。
type NormalizeNode struct {
	// Columns 列定义；为空时使用 DefaultColumns()
	Columns []Column
}

func (n *NormalizeNode) Name() string        { return "feature.normalize" }
func (n *NormalizeNode) Kind() pipeline.Kind { return pipeline.KindFeature }

func (n *NormalizeNode) Process(
	_ context.Context,
	_ *core.RecommendContext,
	items []*core.ScoredStore,
) ([]*core.ScoredStore, error) {
	if len(items) == 0 {
		return items, nil
	}

	columns := n.Columns
	if len(columns) == 0 {
		columns = DefaultColumns()
	}

	live := make([]*core.ScoredStore, 0, len(items))
	for _, it := range items {
		if it != nil {
			live = append(live, it)
		}
	}

	raw := make([]core.OptionalFloat, len(live))
	for _, col := range columns {
		for i, it := range live {
			raw[i] = col.Raw(it)
		}

		filled, fillValue := Fill(raw, col.Fill)
		normalized := MinMaxNormalize(filled)
		if col.LowerIsBetter {
			normalized = Invert(normalized)
		}

		for i, it := range live {
			if it.Features == nil {
				it.Features = make(map[string]float64, len(columns))
			}
			it.Features[col.Feature] = normalized[i]
			if !raw[i].Valid {
				it.PutLabel("fill_"+col.Feature, utils.Label{
					Value:  col.Fill.String() + "=" + strconv.FormatFloat(fillValue, 'f', -1, 64),
					Source: "feature",
				})
			}
		}
	}
	return items, nil
}
