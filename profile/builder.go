// Package profile 从存量行为历史构建请求级画像快照。
package profile

import (
	"context"
	"fmt"
	"time"

	"github.com/rushteam/feedkit/core"
	"github.com/rushteam/feedkit/pkg/vector"
)

// InterestSource 是兴趣向量的外部来源（如特征平台），
// 用于行为历史不足以产出兴趣向量时的冷启动兜底。
type InterestSource interface {
	// InterestVector 返回用户的兴趣向量，无数据时返回 (nil, nil)
	InterestVector(ctx context.Context, userID string) ([]float64, error)
}

// Builder 把 UserHistory 原始记录构建成 BehaviorProfile 索引。
//
// 构建是请求级的：每次请求读一次存量历史，产出只读快照，响应后丢弃。
// 兴趣向量 = 强互动内容（点赞 / 评论 / 观看完成度达标）embedding 的质心；
// 历史不足时退回 Interests 外部来源（可选，失败静默）。
type Builder struct {
	History core.HistoryStore

	// Catalog 用于回查强互动内容的 embedding
	Catalog core.CatalogStore

	// Interests 兴趣向量冷启动来源，可为 nil
	Interests InterestSource

	// StrongWatchRatio 计入强互动的观看完成度阈值，<=0 时取 0.7
	StrongWatchRatio float64
}

// Build 构建用户画像。userID 为空（匿名）时返回 (nil, nil)。
// 历史仓储出错时返回错误，由调用方决定是否降级为匿名画像。
func (b *Builder) Build(ctx context.Context, userID string, now time.Time) (*core.BehaviorProfile, error) {
	if userID == "" {
		return nil, nil
	}
	if b.History == nil {
		return nil, fmt.Errorf("profile: nil history store")
	}

	history, err := b.History.FindUserHistory(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("profile: load history: %w", err)
	}

	p := core.NewBehaviorProfile(userID)
	if history == nil {
		// 新用户：空画像，兴趣向量走冷启动兜底
		b.attachInterests(ctx, p)
		return p, nil
	}

	for _, id := range history.Likes {
		p.Liked[id] = true
	}
	for _, rec := range history.Watches {
		// 同内容多条记录时保留最新
		if old, ok := p.Watches[rec.ContentID]; !ok || rec.LastWatchedAt.After(old.LastWatchedAt) {
			p.Watches[rec.ContentID] = rec
		}
	}
	for _, rec := range history.Hovers {
		if old, ok := p.Hovers[rec.ContentID]; !ok || rec.LastHoveredAt.After(old) {
			p.Hovers[rec.ContentID] = rec.LastHoveredAt
		}
	}
	for _, rec := range history.Comments {
		if old, ok := p.Comments[rec.ContentID]; !ok || rec.LastCommentedAt.After(old) {
			p.Comments[rec.ContentID] = rec.LastCommentedAt
		}
	}
	for _, rec := range history.Unfollows {
		if old, ok := p.Unfollows[rec.CreatorID]; !ok || rec.UnfollowedAt.After(old) {
			p.Unfollows[rec.CreatorID] = rec.UnfollowedAt
		}
	}

	p.InterestVector = b.buildInterestVector(ctx, p)
	if p.InterestVector == nil {
		b.attachInterests(ctx, p)
	}
	return p, nil
}

// buildInterestVector 取强互动内容 embedding 的质心。
// 强互动 = 点赞 ∪ 评论 ∪ 观看完成度 ≥ 阈值。
func (b *Builder) buildInterestVector(ctx context.Context, p *core.BehaviorProfile) []float64 {
	if b.Catalog == nil {
		return nil
	}

	ratio := b.StrongWatchRatio
	if ratio <= 0 {
		ratio = 0.7
	}

	engaged := make(map[string]struct{})
	for id := range p.Liked {
		engaged[id] = struct{}{}
	}
	for id := range p.Comments {
		engaged[id] = struct{}{}
	}

	// 观看完成度需要内容时长，先回查元数据
	watchIDs := make([]string, 0, len(p.Watches))
	for id := range p.Watches {
		watchIDs = append(watchIDs, id)
	}

	ids := make([]string, 0, len(engaged)+len(watchIDs))
	for id := range engaged {
		ids = append(ids, id)
	}
	ids = append(ids, watchIDs...)
	if len(ids) == 0 {
		return nil
	}

	contents, err := b.Catalog.FindByIDs(ctx, ids)
	if err != nil {
		return nil
	}

	for id, rec := range p.Watches {
		c, ok := contents[id]
		if !ok || c == nil || c.Duration <= 0 {
			continue
		}
		if rec.Seconds/c.Duration >= ratio {
			engaged[id] = struct{}{}
		}
	}

	var vecs [][]float64
	for id := range engaged {
		c, ok := contents[id]
		if !ok || c == nil || c.Embedding == nil {
			continue
		}
		vecs = append(vecs, c.Embedding)
	}
	return vector.Centroid(vecs)
}

// attachInterests 走外部来源兜底兴趣向量，失败静默（兜底缺失只是少一路信号）。
func (b *Builder) attachInterests(ctx context.Context, p *core.BehaviorProfile) {
	if b.Interests == nil {
		return
	}
	vec, err := b.Interests.InterestVector(ctx, p.UserID)
	if err != nil || len(vec) == 0 {
		return
	}
	p.InterestVector = vec
}
