package profile

import (
	"context"
	"fmt"

	"github.com/rushteam/feedkit/feast"
)

// FeastInterestSource 从 Feast 在线特征拉取用户兴趣向量，实现 InterestSource。
// 用于新用户 / 历史不足时的冷启动兜底。
type FeastInterestSource struct {
	Client feast.Client

	// Feature 兴趣向量特征名，例如 "user_stats:interest_vector"
	Feature string

	// EntityKey 实体 key，默认 "user_id"
	EntityKey string

	// Project 项目名，为空时取客户端默认项目
	Project string
}

func (s *FeastInterestSource) InterestVector(ctx context.Context, userID string) ([]float64, error) {
	if s.Client == nil || s.Feature == "" || userID == "" {
		return nil, nil
	}

	entityKey := s.EntityKey
	if entityKey == "" {
		entityKey = "user_id"
	}

	resp, err := s.Client.GetOnlineFeatures(ctx, &feast.GetOnlineFeaturesRequest{
		Features:   []string{s.Feature},
		EntityRows: []map[string]any{{entityKey: userID}},
		Project:    s.Project,
	})
	if err != nil {
		return nil, fmt.Errorf("profile: feast interest: %w", err)
	}
	if len(resp.FeatureVectors) == 0 {
		return nil, nil
	}

	vec, ok := resp.FeatureVectors[0].Values[s.Feature].([]float64)
	if !ok || len(vec) == 0 {
		return nil, nil
	}
	return vec, nil
}
