// Package store 提供 core.Store / core.KeyValueStore 的基础设施实现。
//
// 实现：
//   - MemoryStore：内存实现，用于测试/开发/原型
//   - RedisStore：Redis 实现，用于生产
//
// 各业务仓储（内容 / 历史 / 排期 / 创作者）的适配器定义在各自的业务包中，
// 本包只负责通用 KV 能力。
package store
