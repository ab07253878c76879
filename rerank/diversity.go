// Package rerank 在排序结果上做多样性约束与数量控制。
package rerank

import (
	"context"

	"github.com/rushteam/feedkit/core"
	"github.com/rushteam/feedkit/pipeline"
	"github.com/rushteam/feedkit/pkg/utils"
)

// LabelDiversityOverflow 标记回填阶段突破多样性上限选入的条目。
const LabelDiversityOverflow = "diversity_overflow"

// Diversity 是贪心多样性选择：按分数降序扫描，
// 对同类目/同创作者设上限，分数高但超限的条目被跳过。
//
// 候选不足以凑满 Limit 时做第二遍回填：仍按分数序选入先前被跳过的条目，
// 并打上 diversity_overflow 标签。凑满数量优先于多样性。
//
// 类目/创作者为空串的条目不计入任何上限桶。
type Diversity struct {
	// MaxPerCategory 每类目上限，<=0 时取 3
	MaxPerCategory int

	// MaxPerCreator 每创作者上限，<=0 时取 3
	MaxPerCreator int

	// Limit 选取数量，<=0 时取 rctx.Limit
	Limit int
}

const defaultDiversityCap = 3

func (n *Diversity) Name() string {
	return "rerank.diversity"
}

func (n *Diversity) Kind() pipeline.Kind {
	return pipeline.KindReRank
}

func (n *Diversity) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	limit := n.Limit
	if limit <= 0 && rctx != nil {
		limit = rctx.Limit
	}
	if limit <= 0 || len(items) == 0 {
		return nil, nil
	}

	maxCategory := n.MaxPerCategory
	if maxCategory <= 0 {
		maxCategory = defaultDiversityCap
	}
	maxCreator := n.MaxPerCreator
	if maxCreator <= 0 {
		maxCreator = defaultDiversityCap
	}

	categoryCount := make(map[string]int)
	creatorCount := make(map[string]int)
	selected := make([]*core.Item, 0, limit)
	picked := make(map[string]struct{}, limit)

	// 第一遍：贪心选入不超限的条目
	for _, it := range items {
		if len(selected) == limit {
			break
		}
		if it == nil || it.Content == nil {
			continue
		}
		c := it.Content
		if c.Category != "" && categoryCount[c.Category] >= maxCategory {
			continue
		}
		if c.CreatorID != "" && creatorCount[c.CreatorID] >= maxCreator {
			continue
		}
		selected = append(selected, it)
		picked[c.ID] = struct{}{}
		if c.Category != "" {
			categoryCount[c.Category]++
		}
		if c.CreatorID != "" {
			creatorCount[c.CreatorID]++
		}
	}

	// 第二遍：数量不足时按分数序回填被跳过的条目
	if len(selected) < limit {
		for _, it := range items {
			if len(selected) == limit {
				break
			}
			if it == nil || it.Content == nil {
				continue
			}
			if _, ok := picked[it.Content.ID]; ok {
				continue
			}
			it.PutLabel(LabelDiversityOverflow, utils.Label{
				Value:  "1",
				Source: n.Name(),
			})
			selected = append(selected, it)
			picked[it.Content.ID] = struct{}{}
		}
	}

	return selected, nil
}
