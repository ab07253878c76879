// Package builders 注册内置 Node 的配置构建器。
//
// 依赖存储的 Node（recall.fanout、recall.hot）需先调用 Bind 注入基础设施，
// 纯配置 Node（filter、rank.score、rerank.*）可直接从配置构建。
package builders

import (
	"fmt"
	"sync"
	"time"

	"github.com/rushteam/feedkit/config"
	"github.com/rushteam/feedkit/core"
	"github.com/rushteam/feedkit/filter"
	"github.com/rushteam/feedkit/pipeline"
	"github.com/rushteam/feedkit/pkg/conv"
	"github.com/rushteam/feedkit/rank"
	"github.com/rushteam/feedkit/recall"
	"github.com/rushteam/feedkit/rerank"
)

func init() {
	config.Register("recall.fanout", BuildFanoutNode)
	config.Register("recall.hot", BuildHotNode)
	config.Register("filter", BuildFilterNode)
	config.Register("rank.score", BuildScoreNode)
	config.Register("rerank.diversity", BuildDiversityNode)
	config.Register("rerank.topn", BuildTopNNode)
}

// Infra 是配置驱动 Node 所需的基础设施句柄。
type Infra struct {
	KV      core.KeyValueStore
	Catalog core.CatalogStore
}

var (
	boundInfra Infra
	boundMu    sync.RWMutex
)

// Bind 注入基础设施，需在 BuildPipeline 之前调用一次。
func Bind(infra Infra) {
	boundMu.Lock()
	defer boundMu.Unlock()
	boundInfra = infra
}

func infra() Infra {
	boundMu.RLock()
	defer boundMu.RUnlock()
	return boundInfra
}

func BuildFanoutNode(cfg map[string]any) (pipeline.Node, error) {
	sourcesConfig, ok := cfg["sources"].([]any)
	if !ok {
		return nil, fmt.Errorf("sources not found or invalid")
	}
	sources := make([]recall.Source, 0, len(sourcesConfig))
	for _, sc := range sourcesConfig {
		sourceMap, ok := sc.(map[string]any)
		if !ok {
			continue
		}
		src, err := buildSource(sourceMap)
		if err != nil {
			return nil, err
		}
		sources = append(sources, src)
	}
	fanout := &recall.Fanout{
		Sources:       sources,
		Dedup:         conv.ConfigGet(cfg, "dedup", true),
		MergeStrategy: conv.ConfigGet(cfg, "merge_strategy", recall.MergeUnion),
	}
	if sec := conv.ConfigGetInt64(cfg, "timeout", 0); sec > 0 {
		fanout.Timeout = time.Duration(sec) * time.Second
	}
	if n := conv.ConfigGetInt64(cfg, "max_concurrent", 0); n > 0 {
		fanout.MaxConcurrent = int(n)
	}
	return fanout, nil
}

func buildSource(cfg map[string]any) (recall.Source, error) {
	deps := infra()
	switch sourceType := conv.ConfigGet(cfg, "type", ""); sourceType {
	case "candidates":
		if deps.Catalog == nil {
			return nil, fmt.Errorf("candidates source requires builders.Bind with Catalog")
		}
		return &recall.Candidates{
			Catalog:  deps.Catalog,
			PoolSize: int(conv.ConfigGetInt64(cfg, "pool_size", 0)),
		}, nil
	case "hot":
		if deps.KV == nil || deps.Catalog == nil {
			return nil, fmt.Errorf("hot source requires builders.Bind with KV and Catalog")
		}
		return &recall.Hot{
			Store:   deps.KV,
			Catalog: deps.Catalog,
			Key:     conv.ConfigGet(cfg, "key", ""),
			TopN:    conv.ConfigGetInt64(cfg, "top_n", 0),
		}, nil
	default:
		return nil, fmt.Errorf("unknown source type: %s", sourceType)
	}
}

func BuildHotNode(cfg map[string]any) (pipeline.Node, error) {
	src, err := buildSource(map[string]any{
		"type":  "hot",
		"key":   cfg["key"],
		"top_n": cfg["top_n"],
	})
	if err != nil {
		return nil, err
	}
	return &recall.Fanout{
		Sources: []recall.Source{src},
		Dedup:   true,
	}, nil
}

func BuildFilterNode(cfg map[string]any) (pipeline.Node, error) {
	filtersConfig, ok := cfg["filters"].([]any)
	if !ok {
		return nil, fmt.Errorf("filters not found or invalid")
	}
	filters := make([]filter.Filter, 0, len(filtersConfig))
	for _, fc := range filtersConfig {
		filterMap, ok := fc.(map[string]any)
		if !ok {
			continue
		}
		switch filterType := conv.ConfigGet(filterMap, "type", ""); filterType {
		case "rule":
			expr := conv.ConfigGet(filterMap, "expr", "")
			if expr == "" {
				return nil, fmt.Errorf("rule filter: expr not found")
			}
			f, err := filter.NewRuleFilter(expr)
			if err != nil {
				return nil, err
			}
			filters = append(filters, f)
		default:
			return nil, fmt.Errorf("unknown filter type: %s", filterType)
		}
	}
	return &filter.FilterNode{Filters: filters}, nil
}

func BuildScoreNode(cfg map[string]any) (pipeline.Node, error) {
	weights := core.DefaultScoreWeights()
	if raw, ok := cfg["weights"].(map[string]any); ok {
		weights.Apply(conv.MapToFloat64(raw))
	}
	return &rank.ScoreNode{Weights: weights}, nil
}

func BuildDiversityNode(cfg map[string]any) (pipeline.Node, error) {
	return &rerank.Diversity{
		MaxPerCategory: int(conv.ConfigGetInt64(cfg, "max_per_category", 0)),
		MaxPerCreator:  int(conv.ConfigGetInt64(cfg, "max_per_creator", 0)),
		Limit:          int(conv.ConfigGetInt64(cfg, "limit", 0)),
	}, nil
}

func BuildTopNNode(cfg map[string]any) (pipeline.Node, error) {
	return &rerank.TopN{
		N: int(conv.ConfigGetInt64(cfg, "n", 0)),
	}, nil
}
