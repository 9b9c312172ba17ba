package filter

import (
	"context"

	"github.com/rushteam/foodrank/core"
)

// Filter 是过滤器的抽象接口，用于判断一个门店是否应该从推荐结果中剔除。
// 返回 true 表示应该过滤（移除），false 表示保留。
//
// 过滤发生在打分之后：被剔除的门店仍然参与了整表归一化。
type Filter interface {
	// Name 返回过滤器名称
	Name() string

	// ShouldFilter 判断 item 是否应该被过滤
	ShouldFilter(ctx context.Context, rctx *core.RecommendContext, item *core.ScoredStore) (bool, error)
}
