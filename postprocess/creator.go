// Package postprocess 在最终结果上补充展示信息，不影响排序。
package postprocess

import (
	"context"
	"fmt"

	"github.com/rushteam/feedkit/core"
	"github.com/rushteam/feedkit/pipeline"
)

// CreatorInfo 为结果补充创作者展示字段，实现 pipeline.Node。
// 装饰发生在截断之后，只为最终返回的条目付出查询成本。
type CreatorInfo struct {
	Store core.CreatorStore

	// Fields 需要补充的字段名，空表示全部
	Fields []string
}

func (n *CreatorInfo) Name() string {
	return "postprocess.creator"
}

func (n *CreatorInfo) Kind() pipeline.Kind {
	return pipeline.KindPostProcess
}

func (n *CreatorInfo) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if n.Store == nil || len(items) == 0 {
		return items, nil
	}
	if err := n.Store.AttachCreatorInfo(ctx, items, n.Fields); err != nil {
		return nil, fmt.Errorf("postprocess: attach creator info: %w", err)
	}
	return items, nil
}
