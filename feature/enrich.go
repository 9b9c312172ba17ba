package feature

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/rushteam/foodrank/core"
	"github.com/rushteam/foodrank/geo"
	"github.com/rushteam/foodrank/pipeline"
	"github.com/rushteam/foodrank/pkg/utils"
	"github.com/rushteam/foodrank/valuation"
)

// EnrichNode 是特征注入节点：为每个门店计算到顾客的距离与顾客估值。
//
//   - 距离：haversine（km）；顾客或门店坐标缺失/非法时记为缺失，
//     在 NormalizeNode 中按中位数填充（先算距离，再填充）。
//   - 估值：按 store_id 查顾客的稀疏估值映射，缺失为 0。
//
// 每个门店的计算相互独立。Workers > 1 时按块并发执行，
// 每个 worker 只写自己负责的下标，结果与串行完全一致。
type EnrichNode struct {
	// Workers 并发 worker 数，<= 1 时串行执行
	Workers int
}

// minChunk 每个 worker 至少处理的门店数，小表不值得并发
const minChunk = 256

func (n *EnrichNode) Name() string        { return "feature.enrich" }
func (n *EnrichNode) Kind() pipeline.Kind { return pipeline.KindFeature }

func (n *EnrichNode) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	items []*core.ScoredStore,
) ([]*core.ScoredStore, error) {
	if rctx == nil || rctx.Customer == nil {
		return nil, core.NewDomainError(core.ModuleRecommend, core.ErrorCodeInvalidInput, "customer is required for enrichment")
	}
	if len(items) == 0 {
		return items, nil
	}

	customer := rctx.Customer
	if n.Workers <= 1 || len(items) < 2*minChunk {
		enrichRange(customer, items)
		return items, nil
	}

	chunk := (len(items) + n.Workers - 1) / n.Workers
	if chunk < minChunk {
		chunk = minChunk
	}

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(n.Workers)
	for start := 0; start < len(items); start += chunk {
		end := start + chunk
		if end > len(items) {
			end = len(items)
		}
		part := items[start:end]
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			enrichRange(customer, part)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return items, nil
}

func enrichRange(customer *core.Customer, items []*core.ScoredStore) {
	for _, it := range items {
		if it == nil {
			continue
		}
		if km, ok := geo.Between(customer.Location, it.Location); ok {
			it.DistanceKM = core.Some(km)
		} else {
			it.DistanceKM = core.None()
			it.PutLabel("distance", utils.Label{Value: "missing", Source: "feature"})
		}

		v, found := valuation.Lookup(customer, it.ID)
		it.Valuation = v
		if !found {
			it.PutLabel("valuation", utils.Label{Value: "default", Source: "feature"})
		}
	}
}
