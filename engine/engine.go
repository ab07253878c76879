// Package engine 把召回/过滤/排序/重排/后处理组装成完整的推荐入口。
package engine

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/rushteam/feedkit/core"
	"github.com/rushteam/feedkit/filter"
	"github.com/rushteam/feedkit/pipeline"
	"github.com/rushteam/feedkit/pkg/utils"
	"github.com/rushteam/feedkit/postprocess"
	"github.com/rushteam/feedkit/profile"
	"github.com/rushteam/feedkit/rank"
	"github.com/rushteam/feedkit/recall"
	"github.com/rushteam/feedkit/rerank"
)

// LabelProfileFallback 标记画像构建失败后的匿名降级。
const LabelProfileFallback = "profile_fallback"

// ErrInvalidLimit 表示请求条数非法（limit <= 0）。
var ErrInvalidLimit = core.NewDomainError(
	core.ModuleEngine, core.ErrorCodeInvalidInput, "engine: limit must be positive")

// Request 是一次推荐请求。
type Request struct {
	// UserID 为空表示匿名请求（纯热度排序）
	UserID string

	// Limit 期望返回条数，必须为正
	Limit int

	// SeedID 非空表示"相关推荐"场景，结果围绕该内容的相似性排序
	SeedID string
}

// Engine 是推荐引擎门面。
//
// 一次 Recommend 的执行过程：
//  1. 画像构建与多路召回并发执行（errgroup）
//  2. 候选进入 Pipeline：排期过滤 → 三段打分排序 → 多样性选取 → 截断 → 创作者装饰
//
// 降级语义：画像构建失败不阻断请求，按匿名画像继续并打 profile_fallback 标签；
// 召回失败则整体失败（候选完整性优先）。
type Engine struct {
	Catalog  core.CatalogStore
	Schedule core.ScheduleStore // 可为 nil：跳过排期过滤
	Creators core.CreatorStore  // 可为 nil：跳过创作者装饰
	Profiles *profile.Builder   // 可为 nil：全部请求按匿名处理

	// Weights 打分权重，零值时使用 core.DefaultScoreWeights
	Weights core.ScoreWeights

	// PoolSize 主候选池上限，<=0 时取 recall.DefaultPoolSize
	PoolSize int

	// Extra 追加召回源（如热门榜），与主候选池并发执行、按声明顺序合并
	Extra []recall.Source

	// Filters 追加过滤器（如 CEL 规则），在排期过滤之后执行
	Filters []filter.Filter

	// CreatorFields 创作者装饰字段，空表示全部
	CreatorFields []string

	// Now 时钟注入，nil 时取 time.Now（测试注入固定时钟可获得确定结果）
	Now func() time.Time
}

// Recommend 执行一次推荐，返回最多 req.Limit 条按分数降序的结果。
// 候选池耗尽时结果可少于 Limit，不视为错误。
func (e *Engine) Recommend(ctx context.Context, req *Request) ([]*core.Item, error) {
	if req == nil || req.Limit <= 0 {
		return nil, ErrInvalidLimit
	}

	now := time.Now()
	if e.Now != nil {
		now = e.Now()
	}

	rctx := &core.RecommendContext{
		UserID: req.UserID,
		Limit:  req.Limit,
		Now:    now,
	}

	if req.SeedID != "" {
		seed, err := e.resolveSeed(ctx, req.SeedID)
		if err != nil {
			return nil, err
		}
		rctx.Seed = seed
	}

	fanout := &recall.Fanout{
		Sources: append([]recall.Source{
			&recall.Candidates{Catalog: e.Catalog, PoolSize: e.PoolSize},
		}, e.Extra...),
		Dedup: true,
	}

	// 画像构建与召回并发：两者无依赖，串行只会拉长尾延迟
	var items []*core.Item
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		out, err := fanout.Recall(gctx, rctx)
		if err != nil {
			return err
		}
		items = out
		return nil
	})
	g.Go(func() error {
		e.buildProfile(gctx, rctx, now)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return e.pipeline().Run(ctx, rctx, items)
}

// resolveSeed 解析"相关推荐"锚点。不存在或未过审都按 NotFound 失败：
// 未过审内容对外等同不存在，不泄露其状态。
func (e *Engine) resolveSeed(ctx context.Context, seedID string) (*core.ContentItem, error) {
	seed, err := e.Catalog.FindByID(ctx, seedID)
	if err != nil {
		if core.IsNotFound(err) {
			return nil, core.ErrSeedNotFound
		}
		return nil, err
	}
	if seed == nil || !seed.Approved {
		return nil, core.ErrSeedNotFound
	}
	return seed, nil
}

// buildProfile 构建画像；失败降级为匿名并打标签，不阻断请求。
func (e *Engine) buildProfile(ctx context.Context, rctx *core.RecommendContext, now time.Time) {
	if e.Profiles == nil || rctx.UserID == "" {
		return
	}
	p, err := e.Profiles.Build(ctx, rctx.UserID, now)
	if err != nil {
		rctx.PutLabel(LabelProfileFallback, utils.Label{
			Value:  err.Error(),
			Source: "engine",
		})
		return
	}
	rctx.Profile = p
}

func (e *Engine) pipeline() *pipeline.Pipeline {
	var nodes []pipeline.Node
	if e.Schedule != nil {
		nodes = append(nodes, &filter.UpcomingNode{Schedule: e.Schedule})
	}
	if len(e.Filters) > 0 {
		nodes = append(nodes, &filter.FilterNode{Filters: e.Filters})
	}
	nodes = append(nodes,
		&rank.ScoreNode{Weights: e.Weights},
		&rerank.Diversity{},
		&rerank.TopN{},
	)
	if e.Creators != nil {
		nodes = append(nodes, &postprocess.CreatorInfo{Store: e.Creators, Fields: e.CreatorFields})
	}
	return &pipeline.Pipeline{Nodes: nodes}
}
