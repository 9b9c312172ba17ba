package core

import "github.com/rushteam/foodrank/pkg/utils"

// ScoredStore 是推荐链路中的统一承载结构：门店原始数据 + 派生列 + 分数 + 标签。
// 它只在一次推荐请求内存在；Store 以值拷贝嵌入，链路不会修改输入表。
type ScoredStore struct {
	Store

	DistanceKM OptionalFloat // 到顾客的距离，坐标缺失时为缺失值
	Valuation  float64       // 顾客对该门店的估值，缺省 0

	// Features 五个归一化特征，取值 [0,1]，key 见 FeatureOrder
	Features map[string]float64
	Score    float64
	Labels   map[string]utils.Label
}

func NewScoredStore(s Store) *ScoredStore {
	return &ScoredStore{
		Store:    s,
		Features: make(map[string]float64, len(FeatureOrder)),
		Labels:   make(map[string]utils.Label),
	}
}

// Feature 读取归一化特征，不存在时返回 0。
func (it *ScoredStore) Feature(name string) float64 {
	return it.Features[name]
}

// PutLabel 写入 Label；若已存在同名 key，则按默认 Merge 规则累积。
func (it *ScoredStore) PutLabel(key string, lbl utils.Label) {
	if it.Labels == nil {
		it.Labels = make(map[string]utils.Label)
	}
	if old, ok := it.Labels[key]; ok {
		it.Labels[key] = utils.MergeLabel(old, lbl)
		return
	}
	it.Labels[key] = lbl
}
