package recall

import (
	"context"

	"github.com/rushteam/foodrank/core"
	"github.com/rushteam/foodrank/pipeline"
	"github.com/rushteam/foodrank/pkg/utils"
)

// TableNode 是候选节点：把当前门店表整体转换为 ScoredStore 候选集。
// 归一化范围以整张表为准，所以这里不做任何截断或过滤。
//
// 门店以值拷贝的方式进入 ScoredStore，后续节点不会触及 rctx.Stores。
type TableNode struct {
	// Stores 固定门店表（可选）；为空时使用请求级的 rctx.Stores
	Stores []core.Store
}

func (n *TableNode) Name() string        { return "recall.table" }
func (n *TableNode) Kind() pipeline.Kind { return pipeline.KindRecall }

func (n *TableNode) Process(
	_ context.Context,
	rctx *core.RecommendContext,
	_ []*core.ScoredStore,
) ([]*core.ScoredStore, error) {
	stores := n.Stores
	if len(stores) == 0 && rctx != nil {
		stores = rctx.Stores
	}

	out := make([]*core.ScoredStore, 0, len(stores))
	for _, s := range stores {
		it := core.NewScoredStore(s)
		it.PutLabel("recall_source", utils.Label{Value: "table", Source: "recall"})
		out = append(out, it)
	}
	return out, nil
}
