package recall

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rushteam/feedkit/core"
)

// StoreCatalogAdapter 把 core.KeyValueStore 适配成内容仓储（CatalogStore + ScheduleStore）。
//
// 存储布局：
//   - {prefix}:doc       Hash，field 为内容 ID，value 为 ContentItem JSON
//   - {prefix}:recent    SortedSet，member 为内容 ID，score 为 UpdatedAt 的 unix 秒
//   - {prefix}:upcoming  String，值为排期 JSON 数组 [{content_id, start_at}]
//
// 生产环境配 RedisStore 即为典型部署形态；测试配 MemoryStore。
type StoreCatalogAdapter struct {
	Store core.KeyValueStore

	// Prefix key 前缀，默认 "feedkit:catalog"
	Prefix string
}

const defaultCatalogPrefix = "feedkit:catalog"

// scheduleEntry 是排期存储条目。
type scheduleEntry struct {
	ContentID string    `json:"content_id"`
	StartAt   time.Time `json:"start_at"`
}

func NewStoreCatalogAdapter(s core.KeyValueStore) *StoreCatalogAdapter {
	return &StoreCatalogAdapter{Store: s}
}

func (a *StoreCatalogAdapter) Name() string {
	return "store-catalog"
}

func (a *StoreCatalogAdapter) prefix() string {
	if a.Prefix != "" {
		return a.Prefix
	}
	return defaultCatalogPrefix
}

func (a *StoreCatalogAdapter) docKey() string      { return a.prefix() + ":doc" }
func (a *StoreCatalogAdapter) recentKey() string   { return a.prefix() + ":recent" }
func (a *StoreCatalogAdapter) upcomingKey() string { return a.prefix() + ":upcoming" }

// FindApprovedCandidates 按更新时间降序取最多 limit 条过审内容。
// recent 时间线可能包含已下架条目，回查阶段跳过缺失/未过审者并继续向后补齐。
func (a *StoreCatalogAdapter) FindApprovedCandidates(
	ctx context.Context,
	excludeIDs []string,
	limit int,
) ([]*core.ContentItem, error) {
	if limit <= 0 {
		return nil, nil
	}

	exclude := make(map[string]struct{}, len(excludeIDs))
	for _, id := range excludeIDs {
		exclude[id] = struct{}{}
	}

	out := make([]*core.ContentItem, 0, limit)

	// 分批向后扫描时间线，直到凑满 limit 或时间线耗尽
	const batch = int64(256)
	var cursor int64
	for len(out) < limit {
		ids, err := a.Store.ZRange(ctx, a.recentKey(), cursor, cursor+batch-1)
		if err != nil {
			if core.IsStoreNotFound(err) {
				break
			}
			return nil, fmt.Errorf("catalog: scan recent: %w", err)
		}
		if len(ids) == 0 {
			break
		}
		cursor += int64(len(ids))

		for _, id := range ids {
			if _, skip := exclude[id]; skip {
				continue
			}
			c, err := a.getDoc(ctx, id)
			if err != nil {
				if core.IsStoreNotFound(err) {
					continue
				}
				return nil, err
			}
			if !c.Approved {
				continue
			}
			out = append(out, c)
			if len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

func (a *StoreCatalogAdapter) FindByID(ctx context.Context, id string) (*core.ContentItem, error) {
	c, err := a.getDoc(ctx, id)
	if err != nil {
		if core.IsStoreNotFound(err) {
			return nil, core.ErrContentNotFound
		}
		return nil, err
	}
	return c, nil
}

func (a *StoreCatalogAdapter) FindByIDs(
	ctx context.Context,
	ids []string,
) (map[string]*core.ContentItem, error) {
	out := make(map[string]*core.ContentItem, len(ids))
	for _, id := range ids {
		c, err := a.getDoc(ctx, id)
		if err != nil {
			if core.IsStoreNotFound(err) {
				continue // 缺失省略，不报错
			}
			return nil, err
		}
		out[id] = c
	}
	return out, nil
}

// UpcomingContentIDs 返回 now 之后才开播的排期内容 ID。
func (a *StoreCatalogAdapter) UpcomingContentIDs(ctx context.Context, now time.Time) ([]string, error) {
	data, err := a.Store.Get(ctx, a.upcomingKey())
	if err != nil {
		if core.IsStoreNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("catalog: load schedule: %w", err)
	}

	var entries []scheduleEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("catalog: decode schedule: %w", err)
	}

	var ids []string
	for _, e := range entries {
		if e.StartAt.After(now) {
			ids = append(ids, e.ContentID)
		}
	}
	return ids, nil
}

// SaveContent 写入内容文档并维护 recent 时间线（供回灌任务与测试使用）。
func (a *StoreCatalogAdapter) SaveContent(ctx context.Context, c *core.ContentItem) error {
	if c == nil || c.ID == "" {
		return fmt.Errorf("catalog: save: empty content id")
	}
	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("catalog: encode %s: %w", c.ID, err)
	}
	if err := a.Store.HSet(ctx, a.docKey(), c.ID, data); err != nil {
		return fmt.Errorf("catalog: save %s: %w", c.ID, err)
	}
	if err := a.Store.ZAdd(ctx, a.recentKey(), float64(c.UpdatedAt.Unix()), c.ID); err != nil {
		return fmt.Errorf("catalog: index %s: %w", c.ID, err)
	}
	return nil
}

// SetUpcoming 覆盖写入排期表。
func (a *StoreCatalogAdapter) SetUpcoming(ctx context.Context, schedule map[string]time.Time) error {
	entries := make([]scheduleEntry, 0, len(schedule))
	for id, at := range schedule {
		entries = append(entries, scheduleEntry{ContentID: id, StartAt: at})
	}
	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("catalog: encode schedule: %w", err)
	}
	return a.Store.Set(ctx, a.upcomingKey(), data)
}

func (a *StoreCatalogAdapter) getDoc(ctx context.Context, id string) (*core.ContentItem, error) {
	data, err := a.Store.HGet(ctx, a.docKey(), id)
	if err != nil {
		return nil, err
	}
	var c core.ContentItem
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("catalog: decode %s: %w", id, err)
	}
	return &c, nil
}
