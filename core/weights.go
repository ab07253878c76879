package core

// ScoreWeights 是推荐打分的权重表。所有权重集中在此注入，测试可整体覆盖。
//
// 行为信号（§ 行为分）：
//
//	信号                基础权重   说明
//	点赞                +50       不衰减
//	观看 ≥70%           +30       按最近观看时间衰减
//	观看 30%–70%        +15       衰减
//	观看 ≤10% 且未复看   −20       衰减（惩罚弃看）
//	复看                +60×次数   不衰减，与分桶叠加
//	悬停                +5        按悬停时间衰减
//	评论                +40       按评论时间衰减
//	30 天内取关创作者    −100×(1−天数/30)  线性消退，第 30 天归零
//
// 衰减统一为 exp(−λ·days)，λ=0.1（约 7 天半衰）。
type ScoreWeights struct {
	// 行为信号
	Like            float64
	WatchComplete   float64 // 观看 ≥70%
	WatchPartial    float64 // 观看 30%–70%
	WatchAbandon    float64 // 观看 ≤10% 且未复看（负值）
	Rewatch         float64 // 每次复看
	Hover           float64
	Comment         float64
	UnfollowPenalty float64 // 负值
	DecayLambda     float64 // 指数衰减系数
	UnfollowWindow  float64 // 取关惩罚窗口（天）

	// 相似信号
	SeedEmbedding     float64 // seed 余弦相似系数
	SeedCategory      float64 // 与 seed 同类目
	SeedCreator       float64 // 与 seed 同创作者
	SeedLanguage      float64 // 与 seed 字幕语言一致（双方均存在）
	InterestEmbedding float64 // 兴趣向量余弦相似系数

	// 热度信号
	PopularityLog  float64 // log10(views+1) 系数
	TrendingWeight float64 // views/(ageDays+1) 系数
	TrendingCap    float64 // 趋势项上限，防止低龄内容纯靠时效霸榜
}

// DefaultScoreWeights 返回线上默认权重。
func DefaultScoreWeights() ScoreWeights {
	return ScoreWeights{
		Like:            50,
		WatchComplete:   30,
		WatchPartial:    15,
		WatchAbandon:    -20,
		Rewatch:         60,
		Hover:           5,
		Comment:         40,
		UnfollowPenalty: -100,
		DecayLambda:     0.1,
		UnfollowWindow:  30,

		SeedEmbedding:     50,
		SeedCategory:      10,
		SeedCreator:       15,
		SeedLanguage:      5,
		InterestEmbedding: 40,

		PopularityLog:  5,
		TrendingWeight: 0.1,
		TrendingCap:    20,
	}
}

// Apply 按名称覆盖权重，供配置驱动使用（yaml/json 中的 weights map）。
// 未知名称被忽略。
func (w *ScoreWeights) Apply(overrides map[string]float64) {
	for name, v := range overrides {
		switch name {
		case "like":
			w.Like = v
		case "watch_complete":
			w.WatchComplete = v
		case "watch_partial":
			w.WatchPartial = v
		case "watch_abandon":
			w.WatchAbandon = v
		case "rewatch":
			w.Rewatch = v
		case "hover":
			w.Hover = v
		case "comment":
			w.Comment = v
		case "unfollow_penalty":
			w.UnfollowPenalty = v
		case "decay_lambda":
			w.DecayLambda = v
		case "unfollow_window":
			w.UnfollowWindow = v
		case "seed_embedding":
			w.SeedEmbedding = v
		case "seed_category":
			w.SeedCategory = v
		case "seed_creator":
			w.SeedCreator = v
		case "seed_language":
			w.SeedLanguage = v
		case "interest_embedding":
			w.InterestEmbedding = v
		case "popularity_log":
			w.PopularityLog = v
		case "trending_weight":
			w.TrendingWeight = v
		case "trending_cap":
			w.TrendingCap = v
		}
	}
}
