package dsl

import (
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"

	"github.com/rushteam/foodrank/core"
)

var (
	// celEnv 是全局的 CEL 环境，线程安全，可复用
	celEnv     *cel.Env
	celEnvErr  error
	celEnvOnce sync.Once
)

// getCELEnv 获取或创建 CEL 环境，定义表达式可访问的变量
func getCELEnv() (*cel.Env, error) {
	celEnvOnce.Do(func() {
		celEnv, celEnvErr = cel.NewEnv(
			cel.Variable("item", cel.DynType),
			cel.Variable("label", cel.DynType),
			cel.Variable("customer", cel.DynType),
		)
	})
	return celEnv, celEnvErr
}

// Program 是编译后的门店表达式，使用 CEL (Common Expression Language)。
// 编译一次，可被多个请求并发求值。
//
// 可用变量：
//   - item.id / item.name / item.branch
//   - item.rating / item.price / item.bags / item.distance_km（缺失为 null）
//   - item.valuation / item.score / item.features.n_rating 等
//   - label.<key>（label 的 value）
//   - customer.id
//
// 示例：
//   - `item.bags == null || item.bags == 0.0` → 没有剩余餐袋
//   - `item.distance_km != null && item.distance_km > 5.0` → 距离超过 5km
//   - `label.valuation == "default" && item.score < 0.3`
type Program struct {
	expr string
	prg  cel.Program
}

// Compile 编译表达式；语法错误在这里返回，而不是在求值时。
func Compile(expr string) (*Program, error) {
	env, err := getCELEnv()
	if err != nil {
		return nil, fmt.Errorf("cel env: %w", err)
	}
	ast, issues := env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("compile %q: %w", expr, issues.Err())
	}
	prg, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("program %q: %w", expr, err)
	}
	return &Program{expr: expr, prg: prg}, nil
}

// String 返回原始表达式。
func (p *Program) String() string { return p.expr }

// EvalBool 对单个门店求值，表达式必须返回布尔值。
func (p *Program) EvalBool(item *core.ScoredStore, customer *core.Customer) (bool, error) {
	out, _, err := p.prg.Eval(buildInput(item, customer))
	if err != nil {
		return false, fmt.Errorf("eval %q: %w", p.expr, err)
	}
	result, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("expression %q must return boolean, got %T", p.expr, out.Value())
	}
	return result, nil
}

// buildInput 构建 CEL 表达式的输入数据
func buildInput(it *core.ScoredStore, customer *core.Customer) map[string]any {
	features := make(map[string]any, len(it.Features))
	for k, v := range it.Features {
		features[k] = v
	}

	item := map[string]any{
		"id":          it.ID,
		"name":        it.Name,
		"branch":      it.Branch,
		"rating":      optional(it.Rating),
		"price":       optional(it.Price),
		"bags":        optional(it.Bags),
		"distance_km": optional(it.DistanceKM),
		"valuation":   it.Valuation,
		"score":       it.Score,
		"features":    features,
	}

	labels := make(map[string]any, len(it.Labels))
	for k, v := range it.Labels {
		labels[k] = v.Value
	}

	cust := map[string]any{"id": ""}
	if customer != nil {
		cust["id"] = customer.ID
	}

	return map[string]any{
		"item":     item,
		"label":    labels,
		"customer": cust,
	}
}

// optional 缺失值以 null 暴露给表达式
func optional(o core.OptionalFloat) any {
	if !o.Valid {
		return nil
	}
	return o.Value
}
