package postprocess

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rushteam/feedkit/core"
)

// StoreCreatorAdapter 把 core.KeyValueStore 适配成创作者展示信息仓储。
//
// 存储布局：
//   - {prefix}:doc  Hash，field 为创作者 ID，value 为展示字段 JSON（如 name/avatar）
type StoreCreatorAdapter struct {
	Store core.KeyValueStore

	// Prefix key 前缀，默认 "feedkit:creator"
	Prefix string
}

const defaultCreatorPrefix = "feedkit:creator"

func NewStoreCreatorAdapter(s core.KeyValueStore) *StoreCreatorAdapter {
	return &StoreCreatorAdapter{Store: s}
}

func (a *StoreCreatorAdapter) Name() string {
	return "store-creator"
}

func (a *StoreCreatorAdapter) docKey() string {
	if a.Prefix != "" {
		return a.Prefix + ":doc"
	}
	return defaultCreatorPrefix + ":doc"
}

// AttachCreatorInfo 为条目写入 Content.Creator。
// 创作者文档缺失时跳过该条目，不视为错误（展示信息缺失可以容忍）。
func (a *StoreCreatorAdapter) AttachCreatorInfo(
	ctx context.Context,
	items []*core.Item,
	fields []string,
) error {
	if a.Store == nil {
		return nil
	}

	// 同一创作者只查一次
	cache := make(map[string]map[string]any)
	for _, it := range items {
		if it == nil || it.Content == nil || it.Content.CreatorID == "" {
			continue
		}
		id := it.Content.CreatorID

		info, ok := cache[id]
		if !ok {
			data, err := a.Store.HGet(ctx, a.docKey(), id)
			if err != nil {
				if core.IsStoreNotFound(err) {
					cache[id] = nil
					continue
				}
				return fmt.Errorf("creator: load %s: %w", id, err)
			}
			if err := json.Unmarshal(data, &info); err != nil {
				return fmt.Errorf("creator: decode %s: %w", id, err)
			}
			cache[id] = info
		}
		if info == nil {
			continue
		}
		it.Content.Creator = pickFields(info, fields)
	}
	return nil
}

// SaveCreator 写入创作者展示文档（供回灌任务与测试使用）。
func (a *StoreCreatorAdapter) SaveCreator(ctx context.Context, id string, info map[string]any) error {
	if id == "" {
		return fmt.Errorf("creator: save: empty id")
	}
	data, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("creator: encode %s: %w", id, err)
	}
	return a.Store.HSet(ctx, a.docKey(), id, data)
}

func pickFields(info map[string]any, fields []string) map[string]any {
	if len(fields) == 0 {
		out := make(map[string]any, len(info))
		for k, v := range info {
			out[k] = v
		}
		return out
	}
	out := make(map[string]any, len(fields))
	for _, f := range fields {
		if v, ok := info[f]; ok {
			out[f] = v
		}
	}
	return out
}
