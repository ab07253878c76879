package recall

import (
	"context"
	"fmt"

	"github.com/rushteam/feedkit/core"
)

// Hot 是热门榜召回源：从有序集合取 TopN 内容 ID，再回查仓储补全元数据。
// 榜单成员可能滞后于仓储（下架/待审），回查时静默跳过缺失与未过审条目。
type Hot struct {
	// Store 热门榜所在的 KV 存储（需要 SortedSet 能力）
	Store core.KeyValueStore

	// Catalog 用于按 ID 回查内容元数据
	Catalog core.CatalogStore

	// Key 热门榜 zset 的 key，默认 "feedkit:hot"
	Key string

	// TopN 取榜单前 N 条，<=0 时取 100
	TopN int64
}

const defaultHotKey = "feedkit:hot"

func (s *Hot) Name() string {
	return "hot"
}

func (s *Hot) Recall(ctx context.Context, rctx *core.RecommendContext) ([]*core.Item, error) {
	if s.Store == nil || s.Catalog == nil {
		return nil, fmt.Errorf("recall: hot: nil store or catalog")
	}

	key := s.Key
	if key == "" {
		key = defaultHotKey
	}
	topN := s.TopN
	if topN <= 0 {
		topN = 100
	}

	ids, err := s.Store.ZRange(ctx, key, 0, topN-1)
	if err != nil {
		if core.IsStoreNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("recall: hot: zrange: %w", err)
	}
	if len(ids) == 0 {
		return nil, nil
	}

	var seedID string
	if rctx != nil && rctx.Seed != nil {
		seedID = rctx.Seed.ID
	}

	contents, err := s.Catalog.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("recall: hot: hydrate: %w", err)
	}

	// 按榜单顺序组装，保持确定性
	items := make([]*core.Item, 0, len(ids))
	for _, id := range ids {
		c, ok := contents[id]
		if !ok || c == nil || !c.Approved {
			continue
		}
		if seedID != "" && c.ID == seedID {
			continue
		}
		items = append(items, core.NewItem(c))
	}
	markSource(items, s.Name())
	return items, nil
}
