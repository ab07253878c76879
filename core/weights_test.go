package core

import "testing"

func TestScoreWeightsApply(t *testing.T) {
	w := DefaultScoreWeights()
	w.Apply(map[string]float64{
		"like":         80,
		"decay_lambda": 0.2,
		"trending_cap": 50,
		"unknown_key":  999, // 未知名称忽略
	})

	if w.Like != 80 {
		t.Errorf("Like = %v, want 80", w.Like)
	}
	if w.DecayLambda != 0.2 {
		t.Errorf("DecayLambda = %v, want 0.2", w.DecayLambda)
	}
	if w.TrendingCap != 50 {
		t.Errorf("TrendingCap = %v, want 50", w.TrendingCap)
	}
	// 未覆盖的保持默认
	if w.Comment != 40 {
		t.Errorf("Comment = %v, want 40", w.Comment)
	}
}

func TestDefaultScoreWeights(t *testing.T) {
	w := DefaultScoreWeights()
	if w.Like != 50 || w.WatchComplete != 30 || w.WatchPartial != 15 ||
		w.WatchAbandon != -20 || w.Rewatch != 60 || w.Hover != 5 ||
		w.Comment != 40 || w.UnfollowPenalty != -100 {
		t.Errorf("unexpected behavior weights: %+v", w)
	}
	if w.DecayLambda != 0.1 || w.UnfollowWindow != 30 {
		t.Errorf("unexpected decay params: %+v", w)
	}
	if w.SeedEmbedding != 50 || w.SeedCategory != 10 || w.SeedCreator != 15 ||
		w.SeedLanguage != 5 || w.InterestEmbedding != 40 {
		t.Errorf("unexpected similarity weights: %+v", w)
	}
	if w.PopularityLog != 5 || w.TrendingWeight != 0.1 || w.TrendingCap != 20 {
		t.Errorf("unexpected popularity weights: %+v", w)
	}
}
