package rank

import (
	"math"
	"testing"
	"time"

	"github.com/rushteam/feedkit/core"
)

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func daysAgo(days float64) time.Time {
	return testNow.Add(-time.Duration(days * 24 * float64(time.Hour)))
}

func TestBehaviorScore(t *testing.T) {
	w := core.DefaultScoreWeights()

	content := func(id, creatorID string, duration float64) *core.ContentItem {
		return &core.ContentItem{ID: id, CreatorID: creatorID, Duration: duration}
	}

	tests := []struct {
		name    string
		profile func() *core.BehaviorProfile
		content *core.ContentItem
		want    float64
	}{
		{
			name:    "nil profile",
			profile: func() *core.BehaviorProfile { return nil },
			content: content("c-1", "u-1", 100),
			want:    0,
		},
		{
			name:    "no history",
			profile: func() *core.BehaviorProfile { return core.NewBehaviorProfile("u") },
			content: content("c-1", "u-1", 100),
			want:    0,
		},
		{
			name: "like is flat",
			profile: func() *core.BehaviorProfile {
				p := core.NewBehaviorProfile("u")
				p.Liked["c-1"] = true
				return p
			},
			content: content("c-1", "u-1", 100),
			want:    50,
		},
		{
			name: "complete watch decays by last watch time",
			profile: func() *core.BehaviorProfile {
				p := core.NewBehaviorProfile("u")
				p.Watches["c-1"] = core.WatchRecord{ContentID: "c-1", Seconds: 80, LastWatchedAt: daysAgo(1)}
				return p
			},
			content: content("c-1", "u-1", 100),
			want:    30 * math.Exp(-0.1),
		},
		{
			name: "partial watch at boundary 30%",
			profile: func() *core.BehaviorProfile {
				p := core.NewBehaviorProfile("u")
				p.Watches["c-1"] = core.WatchRecord{ContentID: "c-1", Seconds: 30, LastWatchedAt: testNow}
				return p
			},
			content: content("c-1", "u-1", 100),
			want:    15,
		},
		{
			name: "boundary 70% counts as complete",
			profile: func() *core.BehaviorProfile {
				p := core.NewBehaviorProfile("u")
				p.Watches["c-1"] = core.WatchRecord{ContentID: "c-1", Seconds: 70, LastWatchedAt: testNow}
				return p
			},
			content: content("c-1", "u-1", 100),
			want:    30,
		},
		{
			name: "abandon penalty",
			profile: func() *core.BehaviorProfile {
				p := core.NewBehaviorProfile("u")
				p.Watches["c-1"] = core.WatchRecord{ContentID: "c-1", Seconds: 5, LastWatchedAt: testNow}
				return p
			},
			content: content("c-1", "u-1", 100),
			want:    -20,
		},
		{
			name: "watch between 10% and 30% scores nothing",
			profile: func() *core.BehaviorProfile {
				p := core.NewBehaviorProfile("u")
				p.Watches["c-1"] = core.WatchRecord{ContentID: "c-1", Seconds: 20, LastWatchedAt: testNow}
				return p
			},
			content: content("c-1", "u-1", 100),
			want:    0,
		},
		{
			name: "rewatch suppresses abandon and adds flat bonus",
			profile: func() *core.BehaviorProfile {
				p := core.NewBehaviorProfile("u")
				p.Watches["c-1"] = core.WatchRecord{ContentID: "c-1", Seconds: 5, LastWatchedAt: daysAgo(3), RewatchCount: 2}
				return p
			},
			content: content("c-1", "u-1", 100),
			want:    120,
		},
		{
			name: "unknown duration skips bucket but keeps rewatch",
			profile: func() *core.BehaviorProfile {
				p := core.NewBehaviorProfile("u")
				p.Watches["c-1"] = core.WatchRecord{ContentID: "c-1", Seconds: 80, LastWatchedAt: testNow, RewatchCount: 1}
				return p
			},
			content: content("c-1", "u-1", 0),
			want:    60,
		},
		{
			name: "hover decays",
			profile: func() *core.BehaviorProfile {
				p := core.NewBehaviorProfile("u")
				p.Hovers["c-1"] = daysAgo(2)
				return p
			},
			content: content("c-1", "u-1", 100),
			want:    5 * math.Exp(-0.2),
		},
		{
			name: "comment decays",
			profile: func() *core.BehaviorProfile {
				p := core.NewBehaviorProfile("u")
				p.Comments["c-1"] = daysAgo(1)
				return p
			},
			content: content("c-1", "u-1", 100),
			want:    40 * math.Exp(-0.1),
		},
		{
			name: "recent unfollow penalizes whole creator",
			profile: func() *core.BehaviorProfile {
				p := core.NewBehaviorProfile("u")
				p.Unfollows["u-1"] = daysAgo(1)
				return p
			},
			content: content("c-other", "u-1", 100),
			want:    -100 * (1 - 1.0/30),
		},
		{
			name: "unfollow at window edge is fully faded",
			profile: func() *core.BehaviorProfile {
				p := core.NewBehaviorProfile("u")
				p.Unfollows["u-1"] = daysAgo(30)
				return p
			},
			content: content("c-1", "u-1", 100),
			want:    0,
		},
		{
			name: "signals accumulate",
			profile: func() *core.BehaviorProfile {
				p := core.NewBehaviorProfile("u")
				p.Liked["c-1"] = true
				p.Comments["c-1"] = testNow
				return p
			},
			content: content("c-1", "u-1", 100),
			want:    90,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BehaviorScore(w, tt.profile(), tt.content, testNow)
			if math.Abs(got-tt.want) > 1e-6 {
				t.Errorf("BehaviorScore() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBehaviorScoreClockSkew(t *testing.T) {
	// 行为时间晚于请求时刻（时钟偏斜）时按零天处理，不得放大分数
	w := core.DefaultScoreWeights()
	p := core.NewBehaviorProfile("u")
	p.Hovers["c-1"] = testNow.Add(time.Hour)

	got := BehaviorScore(w, p, &core.ContentItem{ID: "c-1", Duration: 100}, testNow)
	if math.Abs(got-5) > 1e-6 {
		t.Errorf("BehaviorScore() = %v, want 5", got)
	}
}
