package filter

import (
	"context"

	"github.com/rushteam/feedkit/core"
	"github.com/rushteam/feedkit/pipeline"
)

// LabelFiltered 记录条目命中的过滤器名（仅用于调试场景保留被过滤条目时可见）。
const LabelFiltered = "filtered"

// FilterNode 把一组 Filter 编排成 pipeline.Node：任一过滤器命中即剔除条目。
// 单个过滤器求值出错时跳过该过滤器（保守放行），避免规则配置问题拖垮整条链路。
type FilterNode struct {
	Filters []Filter
}

func (n *FilterNode) Name() string {
	return "filter"
}

func (n *FilterNode) Kind() pipeline.Kind {
	return pipeline.KindFilter
}

func (n *FilterNode) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if len(n.Filters) == 0 {
		return items, nil
	}

	out := make([]*core.Item, 0, len(items))
	for _, it := range items {
		if it == nil {
			continue
		}
		matched := false
		for _, f := range n.Filters {
			hit, err := f.Match(ctx, rctx, it)
			if err != nil {
				continue
			}
			if hit {
				matched = true
				break
			}
		}
		if !matched {
			out = append(out, it)
		}
	}
	return out, nil
}
