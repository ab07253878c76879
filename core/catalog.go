package core

import (
	"context"
	"time"
)

// 本文件定义引擎与外部协作方的读契约。
// 引擎只消费这些接口：转码、鉴权、上传、HTTP 层等都在协作方一侧，不进入本库。

// CatalogStore 是内容仓储的领域接口（只读）。
//
// 实现：
//   - recall.StoreCatalogAdapter（基于 core.KeyValueStore）
//   - 业务侧可直接对接文档数据库实现此接口
type CatalogStore interface {
	// Name 返回仓储名称（用于观测）
	Name() string

	// FindApprovedCandidates 返回审核通过的候选窗口：
	// 按 UpdatedAt 降序、最多 limit 条、排除 excludeIDs。
	// 有界窗口是精度/成本的刻意取舍，引擎不做全库排序。
	FindApprovedCandidates(ctx context.Context, excludeIDs []string, limit int) ([]*ContentItem, error)

	// FindByID 按 ID 查找内容；不存在时返回 ErrContentNotFound。
	FindByID(ctx context.Context, id string) (*ContentItem, error)

	// FindByIDs 批量查找内容；缺失的 ID 从结果中省略，不报错。
	FindByIDs(ctx context.Context, ids []string) (map[string]*ContentItem, error)
}

// HistoryStore 是用户行为历史仓储的领域接口（只读）。
type HistoryStore interface {
	// Name 返回仓储名称（用于观测）
	Name() string

	// FindUserHistory 返回用户当前的存量行为历史。
	// 用户不存在或无历史时返回 (nil, nil)：新用户不是错误。
	FindUserHistory(ctx context.Context, userID string) (*UserHistory, error)
}

// ScheduleStore 是直播排期仓储的领域接口（只读）。
type ScheduleStore interface {
	// Name 返回仓储名称（用于观测）
	Name() string

	// UpcomingContentIDs 返回已排期、在 now 之后才开播的内容 ID。
	// 这些内容不得进入候选池。
	UpcomingContentIDs(ctx context.Context, now time.Time) ([]string, error)
}

// CreatorStore 是创作者展示信息的装饰接口。
type CreatorStore interface {
	// Name 返回仓储名称（用于观测）
	Name() string

	// AttachCreatorInfo 为结果补充创作者展示字段（写入 Item.Content.Creator）。
	// fields 为空表示全部字段。只做装饰，永不影响排序。
	AttachCreatorInfo(ctx context.Context, items []*Item, fields []string) error
}

// 仓储错误定义
var (
	// ErrContentNotFound 表示内容不存在
	ErrContentNotFound = NewDomainError(ModuleCatalog, ErrorCodeNotFound, "catalog: content not found")

	// ErrSeedNotFound 表示 seed 内容不存在或未过审，"相关推荐"请求应以 NotFound 失败
	ErrSeedNotFound = NewDomainError(ModuleCatalog, ErrorCodeNotFound, "catalog: seed content not found")
)
