// Package rank 实现三段打分（行为 / 相似 / 热度）与排序节点。
// 打分函数是纯函数：输入画像快照与内容元数据，同输入必得同分。
package rank

import (
	"math"
	"time"

	"github.com/rushteam/feedkit/core"
)

// daysSince 计算从 t 到 now 的天数，时钟偏斜导致的负值按 0 处理。
func daysSince(t, now time.Time) float64 {
	d := now.Sub(t).Hours() / 24
	if d < 0 {
		return 0
	}
	return d
}

// decay 指数时间衰减 exp(−λ·days)。
func decay(lambda, days float64) float64 {
	return math.Exp(-lambda * days)
}

// BehaviorScore 计算单条内容的行为分。
//
// 规则要点：
//   - 点赞与复看不衰减；其余信号按各自时间戳做 exp(−λ·days) 衰减
//   - 观看按完成度分桶（≥70% / 30%–70% / ≤10% 且未复看），时长未知时跳过分桶，
//     复看加分不依赖时长、仍然生效
//   - 取关创作者在窗口内线性消退：penalty×(1−days/window)，窗口外归零
//
// profile 为 nil（匿名/降级）时返回 0。
func BehaviorScore(
	w core.ScoreWeights,
	profile *core.BehaviorProfile,
	c *core.ContentItem,
	now time.Time,
) float64 {
	if profile == nil || c == nil {
		return 0
	}

	score := 0.0

	if profile.Liked[c.ID] {
		score += w.Like
	}

	if rec, ok := profile.Watches[c.ID]; ok {
		watchDecay := decay(w.DecayLambda, daysSince(rec.LastWatchedAt, now))

		if c.Duration > 0 {
			ratio := rec.Seconds / c.Duration
			switch {
			case ratio >= 0.7:
				score += w.WatchComplete * watchDecay
			case ratio >= 0.3:
				score += w.WatchPartial * watchDecay
			case ratio <= 0.1 && rec.RewatchCount == 0:
				score += w.WatchAbandon * watchDecay
			}
		}

		if rec.RewatchCount > 0 {
			score += w.Rewatch * float64(rec.RewatchCount)
		}
	}

	if at, ok := profile.Hovers[c.ID]; ok {
		score += w.Hover * decay(w.DecayLambda, daysSince(at, now))
	}

	if at, ok := profile.Comments[c.ID]; ok {
		score += w.Comment * decay(w.DecayLambda, daysSince(at, now))
	}

	if at, ok := profile.Unfollows[c.CreatorID]; ok {
		days := daysSince(at, now)
		if days < w.UnfollowWindow {
			score += w.UnfollowPenalty * (1 - days/w.UnfollowWindow)
		}
	}

	return score
}
