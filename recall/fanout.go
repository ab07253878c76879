package recall

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/rushteam/feedkit/core"
	"github.com/rushteam/feedkit/pipeline"
)

// 多路合并策略。
const (
	// MergeUnion 按 Sources 声明顺序拼接全部结果（默认）
	MergeUnion = "union"

	// MergeFirst 取第一路非空结果
	MergeFirst = "first"

	// MergePriority 与 union 相同的顺序语义，但去重时前序路优先保留标签
	MergePriority = "priority"
)

// Fanout 并发执行多路召回源并合并结果，实现 pipeline.Node。
//
// 行为约定：
//   - 各路并发执行，受 MaxConcurrent 限流、Timeout 兜底
//   - 单路失败即整体失败（候选完整性优先；需要降级时业务侧包一层容错 Source）
//   - 合并与去重都按 Sources 的声明顺序进行，结果确定
type Fanout struct {
	Sources []Source

	// Dedup 按内容 ID 去重，保留先出现的条目
	Dedup bool

	// Timeout 整体超时，<=0 表示不额外设限
	Timeout time.Duration

	// MaxConcurrent 并发上限，<=0 表示不限流
	MaxConcurrent int

	// MergeStrategy 合并策略，见 MergeUnion / MergeFirst / MergePriority
	MergeStrategy string
}

func (f *Fanout) Name() string {
	return "recall.fanout"
}

func (f *Fanout) Kind() pipeline.Kind {
	return pipeline.KindRecall
}

func (f *Fanout) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	recalled, err := f.Recall(ctx, rctx)
	if err != nil {
		return nil, err
	}
	// 上游已有 items 时置于前面（通常 Fanout 是链路首节点，items 为空）
	return append(items, recalled...), nil
}

// Recall 并发执行全部召回源并按策略合并。
func (f *Fanout) Recall(ctx context.Context, rctx *core.RecommendContext) ([]*core.Item, error) {
	if len(f.Sources) == 0 {
		return nil, nil
	}

	if f.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.Timeout)
		defer cancel()
	}

	results := make([][]*core.Item, len(f.Sources))

	g, gctx := errgroup.WithContext(ctx)
	if f.MaxConcurrent > 0 {
		g.SetLimit(f.MaxConcurrent)
	}
	for i, src := range f.Sources {
		i, src := i, src
		g.Go(func() error {
			out, err := src.Recall(gctx, rctx)
			if err != nil {
				return fmt.Errorf("recall: source %s: %w", src.Name(), err)
			}
			results[i] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return f.merge(results), nil
}

// merge 按声明顺序合并各路结果，保证同输入同输出。
func (f *Fanout) merge(results [][]*core.Item) []*core.Item {
	strategy := f.MergeStrategy
	if strategy == "" {
		strategy = MergeUnion
	}

	if strategy == MergeFirst {
		for _, out := range results {
			if len(out) > 0 {
				return f.dedup(out)
			}
		}
		return nil
	}

	// union / priority：按路顺序拼接；priority 的"前序优先"由去重的保留先者语义体现
	total := 0
	for _, out := range results {
		total += len(out)
	}
	merged := make([]*core.Item, 0, total)
	for _, out := range results {
		merged = append(merged, out...)
	}
	return f.dedup(merged)
}

func (f *Fanout) dedup(items []*core.Item) []*core.Item {
	if !f.Dedup {
		return items
	}
	seen := make(map[string]struct{}, len(items))
	out := make([]*core.Item, 0, len(items))
	for _, it := range items {
		if it == nil || it.Content == nil {
			continue
		}
		if _, ok := seen[it.Content.ID]; ok {
			continue
		}
		seen[it.Content.ID] = struct{}{}
		out = append(out, it)
	}
	return out
}
