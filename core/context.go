package core

import (
	"time"

	"github.com/rushteam/feedkit/pkg/utils"
)

// RecommendContext 承载一次推荐请求的用户/种子/时钟信息，贯穿整个 Pipeline 透传。
// 它是请求级快照：构建后各 Node 只读使用（Labels 仅由 Engine 写入降级标记）。
type RecommendContext struct {
	UserID string // 匿名请求为空
	Limit  int    // 期望返回条数；候选池耗尽时结果可少于该值

	// Seed 是"相关推荐"场景的相似锚点；nil 表示首页 feed 场景
	Seed *ContentItem

	// Profile 本次请求构建的行为画像快照；匿名或画像构建失败时为 nil
	Profile *BehaviorProfile

	// Now 请求时刻。衰减/时效计算统一以此为准，可注入以保证确定性；
	// 零值时各 Node 退回 time.Now()。
	Now time.Time

	// Labels 请求级标签，可驱动 Pipeline 行为或记录降级（如 profile_fallback）
	Labels map[string]utils.Label

	// Params 请求级上下文参数（设备、场景等，按需透传）
	Params map[string]any
}

// At 返回请求时刻；未注入时退回当前时间。
func (rctx *RecommendContext) At() time.Time {
	if rctx.Now.IsZero() {
		return time.Now()
	}
	return rctx.Now
}

// PutLabel 写入请求级 Label。
func (rctx *RecommendContext) PutLabel(key string, lbl utils.Label) {
	if rctx.Labels == nil {
		rctx.Labels = make(map[string]utils.Label)
	}
	if old, ok := rctx.Labels[key]; ok {
		rctx.Labels[key] = utils.MergeLabel(old, lbl)
		return
	}
	rctx.Labels[key] = lbl
}

// GetLabel 获取请求级 Label。
func (rctx *RecommendContext) GetLabel(key string) (utils.Label, bool) {
	if rctx.Labels == nil {
		return utils.Label{}, false
	}
	lbl, ok := rctx.Labels[key]
	return lbl, ok
}
