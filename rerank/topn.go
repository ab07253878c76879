package rerank

import (
	"context"

	"github.com/rushteam/feedkit/core"
	"github.com/rushteam/feedkit/pipeline"
)

// TopN 截断结果数量，通常作为链路末端的兜底（Diversity 已控量时为幂等透传）。
type TopN struct {
	// N 保留条数，<=0 时取 rctx.Limit
	N int
}

func (n *TopN) Name() string {
	return "rerank.topn"
}

func (n *TopN) Kind() pipeline.Kind {
	return pipeline.KindReRank
}

func (n *TopN) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	limit := n.N
	if limit <= 0 && rctx != nil {
		limit = rctx.Limit
	}
	if limit <= 0 {
		return nil, nil
	}
	if len(items) <= limit {
		return items, nil
	}
	return items[:limit], nil
}
