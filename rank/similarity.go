package rank

import (
	"github.com/rushteam/feedkit/core"
	"github.com/rushteam/feedkit/pkg/vector"
)

// SimilarityScore 计算相似分。
//
// 两种互斥模式：
//   - seed 模式（"相关推荐"）：embedding 余弦×系数 + 同类目 + 同创作者 + 字幕语言一致
//   - 兴趣模式（首页 feed）：候选 embedding 与画像兴趣向量的余弦×系数
//
// 任一侧向量缺失时对应项计 0；语言加分要求双方语言码均存在且相等。
func SimilarityScore(
	w core.ScoreWeights,
	rctx *core.RecommendContext,
	c *core.ContentItem,
) float64 {
	if c == nil || rctx == nil {
		return 0
	}

	if seed := rctx.Seed; seed != nil {
		score := 0.0
		if seed.Embedding != nil && c.Embedding != nil {
			score += vector.Cosine(seed.Embedding, c.Embedding) * w.SeedEmbedding
		}
		if seed.Category != "" && c.Category == seed.Category {
			score += w.SeedCategory
		}
		if seed.CreatorID != "" && c.CreatorID == seed.CreatorID {
			score += w.SeedCreator
		}
		if seed.CaptionLanguage != "" && c.CaptionLanguage == seed.CaptionLanguage {
			score += w.SeedLanguage
		}
		return score
	}

	if rctx.Profile != nil && rctx.Profile.InterestVector != nil && c.Embedding != nil {
		return vector.Cosine(rctx.Profile.InterestVector, c.Embedding) * w.InterestEmbedding
	}
	return 0
}
