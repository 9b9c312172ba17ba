// Package recommend 把候选、特征、打分、过滤与排序节点组装成一次完整的门店推荐。
//
//	engine := recommend.NewEngine(recommend.Options{Workers: 4})
//	res, err := engine.RecommendFor(ctx, ds, "42", core.DefaultWeights(), 10)
//	for _, s := range res.Ranked { ... }
package recommend

import (
	"context"
	"time"

	"github.com/rushteam/foodrank/core"
	"github.com/rushteam/foodrank/dataset"
	"github.com/rushteam/foodrank/feature"
	"github.com/rushteam/foodrank/filter"
	"github.com/rushteam/foodrank/model"
	"github.com/rushteam/foodrank/pipeline"
	"github.com/rushteam/foodrank/pkg/logging"
	"github.com/rushteam/foodrank/rank"
	"github.com/rushteam/foodrank/recall"
	"github.com/rushteam/foodrank/rerank"
)

// Options 内置流程的可选项，零值即默认流程。
type Options struct {
	// Workers 特征计算并发数，<= 1 时串行
	Workers int
	// Columns 归一化列定义，为空时使用 feature.DefaultColumns()
	Columns []feature.Column
	// Model 打分模型，为空时使用请求权重的 WeightedSum
	Model model.RankModel
	// Filters 打分之后、截断之前执行的过滤器
	Filters []filter.Filter
}

// Result 一次推荐的结果。
type Result struct {
	RequestID string
	// Ranked 按分数降序的 Top-N
	Ranked []*core.ScoredStore
	// Scored 全部门店的中间结果（距离、估值、归一化特征、分数），保持表中顺序
	Scored []*core.ScoredStore
}

// Engine 无状态，可被多个请求并发使用。
type Engine struct {
	scoring *pipeline.Pipeline
	ranking *pipeline.Pipeline
}

// NewEngine 构建内置流程：
// recall.table -> feature.enrich -> feature.normalize -> rank.weighted -> [filter] -> rerank.topn
func NewEngine(opts Options) *Engine {
	nodes := []pipeline.Node{
		&recall.TableNode{},
		&feature.EnrichNode{Workers: opts.Workers},
		&feature.NormalizeNode{Columns: opts.Columns},
		&rank.ScoreNode{Model: opts.Model},
	}
	if len(opts.Filters) > 0 {
		nodes = append(nodes, &filter.FilterNode{Filters: opts.Filters})
	}
	nodes = append(nodes, &rerank.TopNNode{})
	return NewEngineFromPipeline(&pipeline.Pipeline{Nodes: nodes})
}

// NewEngineFromPipeline 使用自定义 Pipeline（通常来自 YAML 配置）。
// filter / rerank 节点在全部门店打分之后执行。
func NewEngineFromPipeline(p *pipeline.Pipeline) *Engine {
	scoring, ranking := p.Split()
	return &Engine{scoring: scoring, ranking: ranking}
}

// Recommend 为 customer 在 stores 中选出 Top-n 门店。
// stores 与 customer 只读；customer 为 nil 时返回 INVALID_INPUT。
func (e *Engine) Recommend(
	ctx context.Context,
	stores []core.Store,
	customer *core.Customer,
	weights core.WeightVector,
	n int,
) (*Result, error) {
	if customer == nil {
		return nil, core.NewDomainError(core.ModuleRecommend, core.ErrorCodeInvalidInput, "customer is required")
	}

	requestID := logging.RequestIDFromContext(ctx)
	if requestID == "" {
		requestID = logging.NewRequestID()
		ctx = logging.ContextWithRequestID(ctx, requestID)
	}
	start := time.Now()

	rctx := &core.RecommendContext{
		RequestID: requestID,
		Customer:  customer,
		Stores:    stores,
		Weights:   weights,
		TopN:      n,
	}

	scored, err := e.scoring.Run(ctx, rctx, nil)
	if err != nil {
		return nil, err
	}
	// 排序阶段拿到独立的切片头，Scored 保持表中顺序
	candidates := make([]*core.ScoredStore, len(scored))
	copy(candidates, scored)
	ranked, err := e.ranking.Run(ctx, rctx, candidates)
	if err != nil {
		return nil, err
	}
	if len(e.ranking.Nodes) == 0 {
		ranked = rerank.TopN(ranked, n)
	}

	logging.Ctx(ctx).Debug().
		Str("customer", customer.ID).
		Int("stores", len(stores)).
		Int("ranked", len(ranked)).
		Interface("weights", weights).
		Dur("elapsed", time.Since(start)).
		Msg("recommend done")

	return &Result{RequestID: requestID, Ranked: ranked, Scored: scored}, nil
}

// RecommendFor 在数据集 d 中查找顾客后推荐；顾客不存在时返回 INVALID_CUSTOMER，
// 不会进入 Pipeline。
func (e *Engine) RecommendFor(
	ctx context.Context,
	d *dataset.Dataset,
	customerID string,
	weights core.WeightVector,
	n int,
) (*Result, error) {
	customer, err := d.Customer(customerID)
	if err != nil {
		return nil, err
	}
	return e.Recommend(ctx, d.Stores, customer, weights, n)
}
