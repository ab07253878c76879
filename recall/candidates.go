package recall

import (
	"context"
	"fmt"

	"github.com/rushteam/feedkit/core"
)

// DefaultPoolSize 是主候选池的默认上限。
// 有界候选池是精度/成本的取舍：排序只在最近更新的窗口内进行。
const DefaultPoolSize = 500

// Candidates 是主召回源：从内容仓储取审核通过、按更新时间降序的候选窗口。
// "相关推荐"场景下自动排除 seed 自身。
type Candidates struct {
	Catalog core.CatalogStore

	// PoolSize 候选池上限，<=0 时取 DefaultPoolSize
	PoolSize int
}

func (s *Candidates) Name() string {
	return "candidates"
}

func (s *Candidates) Recall(ctx context.Context, rctx *core.RecommendContext) ([]*core.Item, error) {
	if s.Catalog == nil {
		return nil, fmt.Errorf("recall: candidates: nil catalog")
	}

	limit := s.PoolSize
	if limit <= 0 {
		limit = DefaultPoolSize
	}

	var exclude []string
	if rctx != nil && rctx.Seed != nil {
		exclude = []string{rctx.Seed.ID}
	}

	contents, err := s.Catalog.FindApprovedCandidates(ctx, exclude, limit)
	if err != nil {
		return nil, fmt.Errorf("recall: candidates: %w", err)
	}

	items := make([]*core.Item, 0, len(contents))
	for _, c := range contents {
		if c == nil || !c.Approved {
			continue
		}
		items = append(items, core.NewItem(c))
	}
	markSource(items, s.Name())
	return items, nil
}
