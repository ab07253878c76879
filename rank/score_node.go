package rank

import (
	"context"
	"sort"
	"strconv"
	"time"

	"github.com/rushteam/feedkit/core"
	"github.com/rushteam/feedkit/pipeline"
	"github.com/rushteam/feedkit/pkg/utils"
)

// 分数构成标签，用于排序解释。
const (
	LabelScoreBehavior   = "score_behavior"
	LabelScoreSimilarity = "score_similarity"
	LabelScorePopularity = "score_popularity"
)

// ScoreNode 对候选做三段打分并降序排序，实现 pipeline.Node。
//
// 总分 = 行为分 + 相似分 + 热度分。
// 同分时更近更新的内容排前；排序稳定，同输入必得同序。
type ScoreNode struct {
	// Weights 打分权重；零值时使用 DefaultScoreWeights
	Weights core.ScoreWeights
}

func (n *ScoreNode) Name() string {
	return "rank.score"
}

func (n *ScoreNode) Kind() pipeline.Kind {
	return pipeline.KindRank
}

func (n *ScoreNode) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	w := n.Weights
	if w == (core.ScoreWeights{}) {
		w = core.DefaultScoreWeights()
	}

	now := time.Now()
	var profile *core.BehaviorProfile
	if rctx != nil {
		now = rctx.At()
		profile = rctx.Profile
	}

	for _, it := range items {
		if it == nil || it.Content == nil {
			continue
		}
		behavior := BehaviorScore(w, profile, it.Content, now)
		similarity := SimilarityScore(w, rctx, it.Content)
		popularity := PopularityScore(w, it.Content, now)

		it.Score = behavior + similarity + popularity
		it.PutLabel(LabelScoreBehavior, scoreLabel(behavior))
		it.PutLabel(LabelScoreSimilarity, scoreLabel(similarity))
		it.PutLabel(LabelScorePopularity, scoreLabel(popularity))
	}

	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if a == nil || a.Content == nil {
			return false
		}
		if b == nil || b.Content == nil {
			return true
		}
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		return a.Content.UpdatedAt.After(b.Content.UpdatedAt)
	})
	return items, nil
}

func scoreLabel(v float64) utils.Label {
	return utils.Label{
		Value:  strconv.FormatFloat(v, 'f', 4, 64),
		Source: "rank.score",
	}
}
