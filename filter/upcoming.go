package filter

import (
	"context"
	"fmt"
	"time"

	"github.com/rushteam/feedkit/core"
	"github.com/rushteam/feedkit/pipeline"
)

// UpcomingNode 剔除已排期、尚未开播的直播内容。
// 排期数据每请求只读一次；读取失败视为候选完整性问题，直接报错而不是放行。
type UpcomingNode struct {
	Schedule core.ScheduleStore
}

func (n *UpcomingNode) Name() string {
	return "filter.upcoming"
}

func (n *UpcomingNode) Kind() pipeline.Kind {
	return pipeline.KindFilter
}

func (n *UpcomingNode) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if n.Schedule == nil || len(items) == 0 {
		return items, nil
	}

	now := time.Now()
	if rctx != nil {
		now = rctx.At()
	}
	ids, err := n.Schedule.UpcomingContentIDs(ctx, now)
	if err != nil {
		return nil, fmt.Errorf("filter: upcoming: %w", err)
	}
	if len(ids) == 0 {
		return items, nil
	}

	upcoming := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		upcoming[id] = struct{}{}
	}

	out := make([]*core.Item, 0, len(items))
	for _, it := range items {
		if it == nil || it.Content == nil {
			continue
		}
		if _, hit := upcoming[it.Content.ID]; hit {
			continue
		}
		out = append(out, it)
	}
	return out, nil
}
