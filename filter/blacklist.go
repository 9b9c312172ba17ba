package filter

import (
	"context"

	"github.com/rushteam/foodrank/core"
)

// BlacklistFilter 是黑名单过滤器，剔除指定 store_id 的门店（如临时歇业）。
type BlacklistFilter struct {
	StoreIDs []int64

	set map[int64]struct{}
}

// NewBlacklistFilter 创建一个黑名单过滤器。
func NewBlacklistFilter(storeIDs []int64) *BlacklistFilter {
	set := make(map[int64]struct{}, len(storeIDs))
	for _, id := range storeIDs {
		set[id] = struct{}{}
	}
	return &BlacklistFilter{StoreIDs: storeIDs, set: set}
}

func (f *BlacklistFilter) Name() string {
	return "filter.blacklist"
}

func (f *BlacklistFilter) ShouldFilter(
	_ context.Context,
	_ *core.RecommendContext,
	item *core.ScoredStore,
) (bool, error) {
	if item == nil {
		return true, nil
	}
	if f.set != nil {
		_, ok := f.set[item.ID]
		return ok, nil
	}
	for _, id := range f.StoreIDs {
		if item.ID == id {
			return true, nil
		}
	}
	return false, nil
}
