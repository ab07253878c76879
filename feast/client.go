// Package feast 封装 Feast Feature Store 的在线特征读取。
//
// Feast 是开源 Feature Store，本包只对接其在线路径（Online Store），
// 用于画像冷启动时拉取用户兴趣向量等实时特征。
//
// 参考：https://github.com/feast-dev/feast
package feast

import (
	"context"
	"time"
)

// Client 是在线特征读取的领域接口。
// 定义在本包，基础设施实现（GrpcClient）可替换，测试可用假实现。
type Client interface {
	// GetOnlineFeatures 获取在线特征（实时预测路径）
	GetOnlineFeatures(ctx context.Context, req *GetOnlineFeaturesRequest) (*GetOnlineFeaturesResponse, error)

	// Close 关闭客户端连接
	Close() error
}

// GetOnlineFeaturesRequest 获取在线特征请求。
type GetOnlineFeaturesRequest struct {
	// Features 特征名称列表，例如 ["user_stats:interest_vector"]
	Features []string

	// EntityRows 实体行，例如 [{"user_id": "u-1001"}]
	EntityRows []map[string]any

	// Project 项目名称，为空时取客户端默认项目
	Project string
}

// FeatureVector 单个实体行的特征向量。
type FeatureVector struct {
	// Values 特征值，key 为特征名称
	Values map[string]any

	// EntityRow 对应的实体行
	EntityRow map[string]any
}

// GetOnlineFeaturesResponse 获取在线特征响应，与请求的实体行一一对应。
type GetOnlineFeaturesResponse struct {
	FeatureVectors []FeatureVector
}

// ClientConfig 客户端配置。
type ClientConfig struct {
	Endpoint string
	Project  string
	Timeout  time.Duration

	// StaticToken 静态 Token 认证，为空表示不认证
	StaticToken string
}

// ClientOption 客户端配置选项。
type ClientOption func(*ClientConfig)

// WithTimeout 设置超时时间。
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *ClientConfig) {
		c.Timeout = timeout
	}
}

// WithStaticToken 设置静态 Token 认证。
func WithStaticToken(token string) ClientOption {
	return func(c *ClientConfig) {
		c.StaticToken = token
	}
}
