// Package filter 提供候选过滤：直播排期剔除与配置驱动的规则过滤。
package filter

import (
	"context"

	"github.com/rushteam/feedkit/core"
)

// Filter 判定单个条目是否应被剔除。
// 返回 true 表示命中过滤（剔除），false 表示保留。
type Filter interface {
	// Name 返回过滤器名称（用于 filtered 标签与观测）
	Name() string

	// Match 判定条目是否命中过滤规则
	Match(ctx context.Context, rctx *core.RecommendContext, item *core.Item) (bool, error)
}
