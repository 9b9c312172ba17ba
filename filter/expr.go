package filter

import (
	"context"

	"github.com/rushteam/foodrank/core"
	"github.com/rushteam/foodrank/pkg/dsl"
)

// ExprFilter 使用 CEL 表达式过滤门店：表达式为 true 的门店被剔除。
//
// 示例：
//
//	f, err := filter.NewExprFilter(`item.bags == null || item.bags == 0.0`)
type ExprFilter struct {
	program *dsl.Program
}

// NewExprFilter 编译表达式并创建过滤器。
func NewExprFilter(expr string) (*ExprFilter, error) {
	prg, err := dsl.Compile(expr)
	if err != nil {
		return nil, err
	}
	return &ExprFilter{program: prg}, nil
}

func (f *ExprFilter) Name() string {
	return "filter.expr"
}

// Expr 返回原始表达式
func (f *ExprFilter) Expr() string {
	return f.program.String()
}

func (f *ExprFilter) ShouldFilter(
	_ context.Context,
	rctx *core.RecommendContext,
	item *core.ScoredStore,
) (bool, error) {
	if item == nil {
		return true, nil
	}
	var customer *core.Customer
	if rctx != nil {
		customer = rctx.Customer
	}
	return f.program.EvalBool(item, customer)
}
