package core

import "time"

// 行为历史的原始记录类型。由用户仓储按存量数据返回，引擎不回写。

// WatchRecord 观看进度记录。
type WatchRecord struct {
	ContentID     string
	Seconds       float64 // 已观看秒数
	LastWatchedAt time.Time
	RewatchCount  int
}

// HoverRecord 悬停记录（在 UI 中查看但未播放）。
type HoverRecord struct {
	ContentID     string
	LastHoveredAt time.Time
}

// UnfollowRecord 取关记录（按创作者维度）。
type UnfollowRecord struct {
	CreatorID    string
	UnfollowedAt time.Time
}

// CommentRecord 评论记录。
type CommentRecord struct {
	ContentID       string
	LastCommentedAt time.Time
}

// UserHistory 是用户仓储返回的原始行为历史。
type UserHistory struct {
	UserID    string
	Likes     []string
	Watches   []WatchRecord
	Hovers    []HoverRecord
	Unfollows []UnfollowRecord
	Comments  []CommentRecord
}

// BehaviorProfile 是行为打分用的索引结构：每次请求从当前存量历史构建一次，
// 构建完成后只读传入纯打分函数，响应产出后即丢弃，从不持久化。
//
// 维度            作用
// Liked           点赞加分（不衰减）
// Watches         观看完成度分桶 + 复看加分
// Hovers          悬停弱信号（衰减）
// Comments        评论强信号（衰减）
// Unfollows       取关创作者的线性惩罚（30 天窗口）
// InterestVector  长期兴趣（强互动内容 embedding 的质心）
type BehaviorProfile struct {
	UserID string

	Liked     map[string]bool        // contentID → 已点赞
	Watches   map[string]WatchRecord // contentID → 最新观看记录
	Hovers    map[string]time.Time   // contentID → 最近悬停时刻
	Comments  map[string]time.Time   // contentID → 最近评论时刻
	Unfollows map[string]time.Time   // creatorID → 取关时刻

	// InterestVector 强互动内容（观看≥70%、点赞或评论）embedding 的质心；
	// 无合格历史或合格内容均无 embedding 时为 nil。
	InterestVector []float64
}

// NewBehaviorProfile 创建一个空画像（所有信号零贡献）。
func NewBehaviorProfile(userID string) *BehaviorProfile {
	return &BehaviorProfile{
		UserID:    userID,
		Liked:     make(map[string]bool),
		Watches:   make(map[string]WatchRecord),
		Hovers:    make(map[string]time.Time),
		Comments:  make(map[string]time.Time),
		Unfollows: make(map[string]time.Time),
	}
}
