package rank

import (
	"math"
	"testing"

	"github.com/rushteam/feedkit/core"
)

func TestSimilarityScoreSeedMode(t *testing.T) {
	tests := []struct {
		name string
		seed *core.ContentItem
		c    *core.ContentItem
		want float64
	}{
		{
			name: "metadata only without embeddings",
			seed: &core.ContentItem{ID: "s", Category: "Cooking", CreatorID: "u-1"},
			c:    &core.ContentItem{ID: "c", Category: "Cooking", CreatorID: "u-1"},
			want: 25, // 同类目 10 + 同创作者 15
		},
		{
			name: "full match with identical embeddings",
			seed: &core.ContentItem{ID: "s", Category: "Cooking", CreatorID: "u-1",
				CaptionLanguage: "en", Embedding: []float64{0.6, 0.8}},
			c: &core.ContentItem{ID: "c", Category: "Cooking", CreatorID: "u-1",
				CaptionLanguage: "en", Embedding: []float64{0.6, 0.8}},
			want: 50 + 10 + 15 + 5,
		},
		{
			name: "missing candidate embedding drops only cosine term",
			seed: &core.ContentItem{ID: "s", Category: "Cooking", Embedding: []float64{1, 0}},
			c:    &core.ContentItem{ID: "c", Category: "Cooking"},
			want: 10,
		},
		{
			name: "language bonus needs both sides present",
			seed: &core.ContentItem{ID: "s", CaptionLanguage: ""},
			c:    &core.ContentItem{ID: "c", CaptionLanguage: ""},
			want: 0,
		},
		{
			name: "orthogonal embeddings no bonus",
			seed: &core.ContentItem{ID: "s", Embedding: []float64{1, 0}},
			c:    &core.ContentItem{ID: "c", Embedding: []float64{0, 1}},
			want: 0,
		},
		{
			name: "opposite embeddings go negative",
			seed: &core.ContentItem{ID: "s", Embedding: []float64{1, 0}},
			c:    &core.ContentItem{ID: "c", Embedding: []float64{-1, 0}},
			want: -50,
		},
	}

	w := core.DefaultScoreWeights()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rctx := &core.RecommendContext{Seed: tt.seed}
			got := SimilarityScore(w, rctx, tt.c)
			if math.Abs(got-tt.want) > 1e-6 {
				t.Errorf("SimilarityScore() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSimilarityScoreInterestMode(t *testing.T) {
	w := core.DefaultScoreWeights()

	p := core.NewBehaviorProfile("u")
	p.InterestVector = []float64{0.6, 0.8}
	rctx := &core.RecommendContext{Profile: p}

	// 同向 → cos=1 → 40
	got := SimilarityScore(w, rctx, &core.ContentItem{ID: "c", Embedding: []float64{0.6, 0.8}})
	if math.Abs(got-40) > 1e-6 {
		t.Errorf("SimilarityScore() = %v, want 40", got)
	}

	// 余弦 0.9 → 0.9×40=36
	got = SimilarityScore(w, rctx, &core.ContentItem{ID: "c", Embedding: []float64{0.6*0.9 - 0.8*math.Sqrt(1-0.81), 0.8*0.9 + 0.6*math.Sqrt(1-0.81)}})
	if math.Abs(got-36) > 1e-6 {
		t.Errorf("SimilarityScore() = %v, want 36", got)
	}

	// 候选缺向量 → 0
	got = SimilarityScore(w, rctx, &core.ContentItem{ID: "c"})
	if got != 0 {
		t.Errorf("SimilarityScore() = %v, want 0", got)
	}

	// 无画像无 seed → 0
	got = SimilarityScore(w, &core.RecommendContext{}, &core.ContentItem{ID: "c", Embedding: []float64{1, 0}})
	if got != 0 {
		t.Errorf("SimilarityScore() = %v, want 0", got)
	}
}

func TestSimilarityScoreSeedTakesPrecedence(t *testing.T) {
	// seed 存在时兴趣向量不参与：两种模式互斥
	w := core.DefaultScoreWeights()
	p := core.NewBehaviorProfile("u")
	p.InterestVector = []float64{1, 0}

	rctx := &core.RecommendContext{
		Seed:    &core.ContentItem{ID: "s", Embedding: []float64{0, 1}},
		Profile: p,
	}
	// 候选与兴趣向量同向但与 seed 正交 → 只按 seed 计 0
	got := SimilarityScore(w, rctx, &core.ContentItem{ID: "c", Embedding: []float64{1, 0}})
	if got != 0 {
		t.Errorf("SimilarityScore() = %v, want 0", got)
	}
}
