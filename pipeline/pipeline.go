package pipeline

import (
	"context"
	"fmt"

	"github.com/rushteam/foodrank/core"
)

// Pipeline 把推荐逻辑拆成可组合的 Node 链，按顺序执行。
// Pipeline 本身不持有请求状态，可被多个请求并发复用。
type Pipeline struct {
	Nodes []Node
}

func (p *Pipeline) Run(
	ctx context.Context,
	rctx *core.RecommendContext,
	items []*core.ScoredStore,
) ([]*core.ScoredStore, error) {
	cur := items
	for _, node := range p.Nodes {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		next, err := node.Process(ctx, rctx, cur)
		if err != nil {
			return nil, fmt.Errorf("node %s: %w", node.Name(), err)
		}
		cur = next
	}
	return cur, nil
}

// Split 按 Kind 把 Pipeline 拆成打分阶段与排序阶段：
// filter / rerank 节点进入排序阶段，其余节点进入打分阶段，相对顺序不变。
// 这样调用方可以拿到全部门店的打分结果（用于展示中间值）以及最终 Top-N。
func (p *Pipeline) Split() (scoring *Pipeline, ranking *Pipeline) {
	scoring, ranking = &Pipeline{}, &Pipeline{}
	for _, n := range p.Nodes {
		switch n.Kind() {
		case KindFilter, KindReRank:
			ranking.Nodes = append(ranking.Nodes, n)
		default:
			scoring.Nodes = append(scoring.Nodes, n)
		}
	}
	return scoring, ranking
}
