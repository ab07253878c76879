package profile

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rushteam/feedkit/core"
)

// StoreHistoryAdapter 把 core.Store 适配成行为历史仓储。
//
// 存储布局：
//   - {prefix}:{userID}  String，值为 UserHistory JSON
type StoreHistoryAdapter struct {
	Store core.Store

	// Prefix key 前缀，默认 "feedkit:history"
	Prefix string
}

const defaultHistoryPrefix = "feedkit:history"

func NewStoreHistoryAdapter(s core.Store) *StoreHistoryAdapter {
	return &StoreHistoryAdapter{Store: s}
}

func (a *StoreHistoryAdapter) Name() string {
	return "store-history"
}

func (a *StoreHistoryAdapter) key(userID string) string {
	prefix := a.Prefix
	if prefix == "" {
		prefix = defaultHistoryPrefix
	}
	return prefix + ":" + userID
}

// FindUserHistory 读取用户存量历史；key 不存在返回 (nil, nil)，新用户不是错误。
func (a *StoreHistoryAdapter) FindUserHistory(ctx context.Context, userID string) (*core.UserHistory, error) {
	data, err := a.Store.Get(ctx, a.key(userID))
	if err != nil {
		if core.IsStoreNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("history: load %s: %w", userID, err)
	}

	var h core.UserHistory
	if err := json.Unmarshal(data, &h); err != nil {
		return nil, fmt.Errorf("history: decode %s: %w", userID, err)
	}
	return &h, nil
}

// SaveUserHistory 写入用户存量历史（供回灌任务与测试使用）。
func (a *StoreHistoryAdapter) SaveUserHistory(ctx context.Context, h *core.UserHistory) error {
	if h == nil || h.UserID == "" {
		return fmt.Errorf("history: save: empty user id")
	}
	data, err := json.Marshal(h)
	if err != nil {
		return fmt.Errorf("history: encode %s: %w", h.UserID, err)
	}
	return a.Store.Set(ctx, a.key(h.UserID), data)
}
