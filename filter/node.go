package filter

import (
	"context"

	"github.com/rushteam/foodrank/core"
	"github.com/rushteam/foodrank/pipeline"
	"github.com/rushteam/foodrank/pkg/logging"
	"github.com/rushteam/foodrank/pkg/utils"
)

// FilterNode 是过滤 Node，可以组合多个过滤器进行过滤。
// 如果任何一个过滤器返回 true，该门店就会被过滤掉。
// 返回新切片，保留门店的相对顺序。
type FilterNode struct {
	Filters []Filter
}

func (n *FilterNode) Name() string {
	return "filter.node"
}

func (n *FilterNode) Kind() pipeline.Kind {
	return pipeline.KindFilter
}

func (n *FilterNode) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	items []*core.ScoredStore,
) ([]*core.ScoredStore, error) {
	if len(n.Filters) == 0 || len(items) == 0 {
		return items, nil
	}

	out := make([]*core.ScoredStore, 0, len(items))
	filteredCount := 0

	for _, item := range items {
		if item == nil {
			continue
		}

		shouldFilter := false
		filterReason := ""

		// 依次检查每个过滤器
		for _, f := range n.Filters {
			ok, err := f.ShouldFilter(ctx, rctx, item)
			if err != nil {
				// 过滤器错误时记录但不中断流程，门店保留
				logging.Ctx(ctx).Warn().Err(err).
					Str("filter", f.Name()).
					Int64("store_id", item.ID).
					Msg("filter evaluation failed, keeping store")
				continue
			}
			if ok {
				shouldFilter = true
				filterReason = f.Name()
				break
			}
		}

		if shouldFilter {
			filteredCount++
			item.PutLabel("filtered", utils.Label{
				Value:  "true",
				Source: filterReason,
			})
			continue
		}

		out = append(out, item)
	}

	logging.Ctx(ctx).Debug().
		Int("input", len(items)).
		Int("filtered", filteredCount).
		Msg("filter node done")
	return out, nil
}
