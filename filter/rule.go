package filter

import (
	"context"

	"github.com/rushteam/feedkit/core"
	"github.com/rushteam/feedkit/pkg/dsl"
)

// RuleFilter 是配置驱动的 CEL 规则过滤器：表达式命中即剔除。
//
// 示例规则：
//   - `item.duration > 0.0 && item.duration < 5.0`  剔除超短内容
//   - `item.category == "Ads"`                      剔除广告类目
type RuleFilter struct {
	program *dsl.Program
}

// NewRuleFilter 编译规则表达式，编译一次后可跨请求复用。
func NewRuleFilter(expr string) (*RuleFilter, error) {
	prg, err := dsl.Compile(expr)
	if err != nil {
		return nil, err
	}
	return &RuleFilter{program: prg}, nil
}

func (f *RuleFilter) Name() string {
	return "rule:" + f.program.Expr()
}

func (f *RuleFilter) Match(
	ctx context.Context,
	rctx *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	return f.program.Match(item, rctx)
}
