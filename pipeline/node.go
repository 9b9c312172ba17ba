package pipeline

import (
	"context"

	"github.com/rushteam/foodrank/core"
)

// Kind 用于标记 Node 类型，方便观测/编排（例如按阶段打点、拆分打分与排序阶段）。
type Kind string

const (
	KindRecall  Kind = "recall"  // 候选阶段：把门店表转换为待打分的 ScoredStore
	KindFeature Kind = "feature" // 特征阶段：距离/估值注入、缺失值填充、归一化
	KindRank    Kind = "rank"    // 打分阶段：按权重计算分数
	KindFilter  Kind = "filter"  // 过滤阶段：剔除不符合约束的门店
	KindReRank  Kind = "rerank"  // 重排阶段：稳定排序并截取 Top-N
)

// Node 是 Pipeline 的最小可扩展单元。
// 统一采用"输入 items -> 输出 items"的形态。
// Node 不得修改 rctx 中的输入表；需要改变顺序或数量时返回新切片。
type Node interface {
	Name() string
	Kind() Kind

	Process(
		ctx context.Context,
		rctx *core.RecommendContext,
		items []*core.ScoredStore,
	) ([]*core.ScoredStore, error)
}
