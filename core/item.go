package core

import (
	"time"

	"github.com/rushteam/feedkit/pkg/utils"
)

// ContentItem 是内容条目的领域模型（引擎的只读输入，由内容仓储提供）。
// 可选字段用显式零值表示缺失：Embedding 为 nil、CaptionLanguage 为空串、Duration 为 0。
// 缺失是一等语义：打分时按"零贡献"处理，而不是隐式 falsy 判断，避免脏数据被错误计分。
type ContentItem struct {
	ID        string
	CreatorID string
	Category  string
	Views     int64
	CreatedAt time.Time
	UpdatedAt time.Time

	// Duration 时长（秒），0 表示未知
	Duration float64

	// Embedding 内容向量，nil 表示缺失；存在时全库等长
	Embedding []float64

	// CaptionLanguage 首条字幕的语言码，"" 表示缺失，仅用于 seed 相似的语言加分
	CaptionLanguage string

	// Approved 审核通过才可进入候选池
	Approved bool

	// Creator 创作者展示信息，由 PostProcess 阶段补充，不参与排序
	Creator map[string]any
}

// Item 是推荐链路中的统一承载结构：内容 + 分数 + 标签。
// Labels 用于解释与策略驱动；Score 用于排序决策。
type Item struct {
	Content *ContentItem
	Score   float64
	Labels  map[string]utils.Label
}

func NewItem(c *ContentItem) *Item {
	return &Item{
		Content: c,
		Score:   0,
		Labels:  make(map[string]utils.Label),
	}
}

// PutLabel 写入 Label；若已存在同名 key，则按默认 Merge 规则累积。
func (it *Item) PutLabel(key string, lbl utils.Label) {
	if it.Labels == nil {
		it.Labels = make(map[string]utils.Label)
	}
	if old, ok := it.Labels[key]; ok {
		it.Labels[key] = utils.MergeLabel(old, lbl)
		return
	}
	it.Labels[key] = lbl
}
