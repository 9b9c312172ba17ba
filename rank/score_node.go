package rank

import (
	"context"

	"github.com/rushteam/foodrank/core"
	"github.com/rushteam/foodrank/model"
	"github.com/rushteam/foodrank/pipeline"
	"github.com/rushteam/foodrank/pkg/utils"
)

// ScoreNode 使用 RankModel 为每个门店独立打分。
// - 写入 labels：rank_model
// - 更新 item.Score，不排序（排序与截断由 rerank.TopNNode 负责）
//
// Model 为空时，使用请求权重 rctx.Weights 构建 model.WeightedSum。
type ScoreNode struct {
	Model model.RankModel
}

func (n *ScoreNode) Name() string        { return "rank.weighted" }
func (n *ScoreNode) Kind() pipeline.Kind { return pipeline.KindRank }

func (n *ScoreNode) Process(
	_ context.Context,
	rctx *core.RecommendContext,
	items []*core.ScoredStore,
) ([]*core.ScoredStore, error) {
	if len(items) == 0 {
		return items, nil
	}

	m := n.Model
	if m == nil {
		var w core.WeightVector
		if rctx != nil {
			w = rctx.Weights
		}
		m = model.NewWeightedSum(w)
	}

	for _, it := range items {
		if it == nil {
			continue
		}
		score, err := m.Predict(it.Features)
		if err != nil {
			return nil, err
		}
		it.Score = score
		it.PutLabel("rank_model", utils.Label{Value: m.Name(), Source: "rank"})
	}
	return items, nil
}
