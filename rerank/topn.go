package rerank

import (
	"context"
	"math"
	"sort"

	"github.com/rushteam/foodrank/core"
	"github.com/rushteam/foodrank/pipeline"
)

// TopN 按分数降序稳定排序并截取前 n 个门店。
//
//   - 分数为 NaN（未定义）的门店不参与排名
//   - 同分门店保持输入中的相对顺序（稳定排序）
//   - n 大于门店数时返回全部；n <= 0 时返回空结果；从不补齐、从不报错
//
// 返回新切片，不改变输入切片的顺序。
func TopN(items []*core.ScoredStore, n int) []*core.ScoredStore {
	if n <= 0 {
		return []*core.ScoredStore{}
	}

	ranked := make([]*core.ScoredStore, 0, len(items))
	for _, it := range items {
		if it == nil || math.IsNaN(it.Score) {
			continue
		}
		ranked = append(ranked, it)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// TopNNode 是一个 Top-N 排序截断节点，通常放在打分（Rank）与过滤（Filter）之后。
//
// 示例：
//
//	pipeline := &pipeline.Pipeline{
//	    Nodes: []pipeline.Node{
//	        &rank.ScoreNode{},         // 打分
//	        &rerank.TopNNode{N: 10},   // 排序并截取 Top 10
//	    },
//	}
type TopNNode struct {
	// N 要保留的门店数量
	// 如果 N <= 0，则使用请求级的 rctx.TopN
	N int
}

func (n *TopNNode) Name() string {
	return "rerank.topn"
}

func (n *TopNNode) Kind() pipeline.Kind {
	return pipeline.KindReRank
}

func (n *TopNNode) Process(
	_ context.Context,
	rctx *core.RecommendContext,
	items []*core.ScoredStore,
) ([]*core.ScoredStore, error) {
	limit := n.N
	if limit <= 0 && rctx != nil {
		limit = rctx.TopN
	}
	return TopN(items, limit), nil
}
