// Package foodrank 是一个门店推荐引擎：为指定顾客在评分、价格、个性化估值、
// 剩余餐袋（减少食物浪费）与距离五个目标之间做加权权衡，输出 Top-N 门店。
//
// 设计要点：
// - Pipeline-first: 推荐逻辑由 Node 串联（Recall → Feature → Rank → Filter → ReRank）
// - Stateless: 每次请求独立计算，输入表只读，结果为新分配的 ScoredStore
// - Labels-first: 每个门店携带 explain labels，便于展示打分来源
package foodrank

import "github.com/rushteam/foodrank/pipeline"

// 轻量 facade：便于用户直接 import "foodrank" 使用核心抽象。
type Pipeline = pipeline.Pipeline
type Node = pipeline.Node
type Kind = pipeline.Kind

const (
	KindRecall  = pipeline.KindRecall
	KindFeature = pipeline.KindFeature
	KindRank    = pipeline.KindRank
	KindFilter  = pipeline.KindFilter
	KindReRank  = pipeline.KindReRank
)
