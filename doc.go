// Package feedkit 是一个内容平台的推荐引擎工具包（Feed Recommender Kit）。
//
// 设计要点：
// - Pipeline-first: 推荐逻辑通过 Node 串联（Recall → Filter → Rank → ReRank → PostProcess）
// - Labels-first: 分数拆解、过滤原因、降级标记全链路打标，支持 explain / 观测 / 策略驱动
// - 快照式计算: 每次请求基于当前数据快照重新打分，引擎自身无持久状态、无共享可变状态
package feedkit

import "github.com/rushteam/feedkit/pipeline"

// 轻量 facade：便于用户直接 import "feedkit" 使用核心抽象。
type Pipeline = pipeline.Pipeline
type Node = pipeline.Node
type Kind = pipeline.Kind

const (
	KindRecall      = pipeline.KindRecall
	KindFilter      = pipeline.KindFilter
	KindRank        = pipeline.KindRank
	KindReRank      = pipeline.KindReRank
	KindPostProcess = pipeline.KindPostProcess
)
