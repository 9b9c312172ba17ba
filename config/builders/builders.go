// Package builders 注册内置 Node 的配置构建器。
//
//	import _ "github.com/rushteam/foodrank/config/builders"
//
// 支持的类型：recall.table、feature.enrich、feature.normalize、
// rank.weighted、filter.expr、rerank.topn。
package builders

import (
	"fmt"

	"github.com/rushteam/foodrank/config"
	"github.com/rushteam/foodrank/core"
	"github.com/rushteam/foodrank/feature"
	"github.com/rushteam/foodrank/filter"
	"github.com/rushteam/foodrank/model"
	"github.com/rushteam/foodrank/pipeline"
	"github.com/rushteam/foodrank/pkg/conv"
	"github.com/rushteam/foodrank/pkg/logging"
	"github.com/rushteam/foodrank/rank"
	"github.com/rushteam/foodrank/recall"
	"github.com/rushteam/foodrank/rerank"
)

func init() {
	config.Register("recall.table", BuildTableNode)
	config.Register("feature.enrich", BuildEnrichNode)
	config.Register("feature.normalize", BuildNormalizeNode)
	config.Register("rank.weighted", BuildWeightedNode)
	config.Register("filter.expr", BuildFilterNode)
	config.Register("rerank.topn", BuildTopNNode)
}

// BuildTableNode 门店表来自请求，无配置项。
func BuildTableNode(map[string]any) (pipeline.Node, error) {
	return &recall.TableNode{}, nil
}

// BuildEnrichNode 配置：workers（并发 worker 数，<= 1 时串行）
func BuildEnrichNode(cfg map[string]any) (pipeline.Node, error) {
	workers := conv.ConfigGetInt64(cfg, "workers", 0)
	if workers < 0 {
		return nil, fmt.Errorf("workers must be >= 0, got %d", workers)
	}
	return &feature.EnrichNode{Workers: int(workers)}, nil
}

// BuildNormalizeNode 配置：fill（可选，特征名 -> zero/median，覆盖默认填充策略）
//
//	fill:
//	  n_price: zero
func BuildNormalizeNode(cfg map[string]any) (pipeline.Node, error) {
	columns := feature.DefaultColumns()
	overrides := conv.ConfigGet[map[string]any](cfg, "fill", nil)
	for name, v := range overrides {
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("fill.%s must be a string", name)
		}
		policy, err := feature.ParseFillPolicy(s)
		if err != nil {
			return nil, err
		}
		found := false
		for i := range columns {
			if columns[i].Feature == name {
				columns[i].Fill = policy
				found = true
			}
		}
		if !found {
			return nil, fmt.Errorf("unknown feature %q in fill", name)
		}
	}
	return &feature.NormalizeNode{Columns: columns}, nil
}

// BuildWeightedNode 配置：weights（可选，rating/price/value/bags/distance）。
// 未配置时使用每次请求传入的权重；配置后固定使用该权重，请求中的权重被忽略。
func BuildWeightedNode(cfg map[string]any) (pipeline.Node, error) {
	wm := conv.ConfigGet[map[string]any](cfg, "weights", nil)
	if wm == nil {
		return &rank.ScoreNode{}, nil
	}
	w := core.WeightVector{
		Rating:   conv.ConfigGetFloat64(wm, "rating", 0),
		Price:    conv.ConfigGetFloat64(wm, "price", 0),
		Value:    conv.ConfigGetFloat64(wm, "value", 0),
		Bags:     conv.ConfigGetFloat64(wm, "bags", 0),
		Distance: conv.ConfigGetFloat64(wm, "distance", 0),
	}
	logging.Warn().
		Str("node", "rank.weighted").
		Interface("weights", w).
		Msg("pipeline weights are fixed, per-request weights will be ignored")
	return &rank.ScoreNode{Model: model.NewWeightedSum(w)}, nil
}

// BuildFilterNode 配置：expr（CEL 表达式，为 true 时排除门店）、blacklist（门店 ID 列表）
func BuildFilterNode(cfg map[string]any) (pipeline.Node, error) {
	var filters []filter.Filter
	if ids := conv.SliceAnyToInt64(cfg["blacklist"]); len(ids) > 0 {
		filters = append(filters, filter.NewBlacklistFilter(ids))
	}
	if expr := conv.ConfigGet(cfg, "expr", ""); expr != "" {
		f, err := filter.NewExprFilter(expr)
		if err != nil {
			return nil, err
		}
		filters = append(filters, f)
	}
	if len(filters) == 0 {
		return nil, fmt.Errorf("filter.expr requires expr or blacklist")
	}
	return &filter.FilterNode{Filters: filters}, nil
}

// BuildTopNNode 配置：n（<= 0 时使用请求级 TopN；> 0 时覆盖请求级 TopN）
func BuildTopNNode(cfg map[string]any) (pipeline.Node, error) {
	n := int(conv.ConfigGetInt64(cfg, "n", 0))
	if n > 0 {
		logging.Warn().
			Str("node", "rerank.topn").
			Int("n", n).
			Msg("pipeline top-n is fixed, per-request top-n will be ignored")
	}
	return &rerank.TopNNode{N: n}, nil
}
