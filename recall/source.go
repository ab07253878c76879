// Package recall 提供候选召回：主候选池、热门榜、多路并发 Fanout，
// 以及基于 KeyValueStore 的内容仓储适配器。
package recall

import (
	"context"

	"github.com/rushteam/feedkit/core"
	"github.com/rushteam/feedkit/pkg/utils"
)

// Source 是单路召回源接口。
// 与 pipeline.Node 的区别：Source 只生成候选，不消费上游 items，
// 由 Fanout 统一编排成 Node。
type Source interface {
	// Name 返回召回源名称（用于 recall_source 标签与观测）
	Name() string

	// Recall 生成候选 items
	Recall(ctx context.Context, rctx *core.RecommendContext) ([]*core.Item, error)
}

// LabelRecallSource 是召回源标签的 key，value 为来源名，Source 取 sourceName。
const LabelRecallSource = "recall_source"

// markSource 为召回结果统一打上来源标签。
func markSource(items []*core.Item, name string) {
	for _, it := range items {
		if it == nil {
			continue
		}
		it.PutLabel(LabelRecallSource, utils.Label{Value: name, Source: name})
	}
}
