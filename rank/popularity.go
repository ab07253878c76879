package rank

import (
	"math"
	"time"

	"github.com/rushteam/feedkit/core"
)

// PopularityScore 计算热度分：
//
//	log10(views+1)×系数 + min(views/(ageDays+1)×系数, 上限)
//
// 趋势项奖励"单位天龄的曝光速度"，上限防止新内容纯靠低龄霸榜。
// 年龄按 CreatedAt 计算，时钟偏斜导致的负龄按 0 处理。
func PopularityScore(w core.ScoreWeights, c *core.ContentItem, now time.Time) float64 {
	if c == nil {
		return 0
	}

	views := float64(c.Views)
	if views < 0 {
		views = 0
	}

	score := math.Log10(views+1) * w.PopularityLog

	ageDays := daysSince(c.CreatedAt, now)
	trending := views / (ageDays + 1) * w.TrendingWeight
	if trending > w.TrendingCap {
		trending = w.TrendingCap
	}
	return score + trending
}
