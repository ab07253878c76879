// Package dsl 基于 CEL (Common Expression Language) 实现候选规则表达式，
// 供配置驱动的规则过滤器使用。
package dsl

import (
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"

	"github.com/rushteam/feedkit/core"
)

var (
	// celEnv 是全局的 CEL 环境，线程安全，可复用
	celEnv     *cel.Env
	celEnvOnce sync.Once
	celEnvErr  error
)

// getCELEnv 获取或创建 CEL 环境，定义变量类型
func getCELEnv() (*cel.Env, error) {
	celEnvOnce.Do(func() {
		celEnv, celEnvErr = cel.NewEnv(
			cel.Variable("item", cel.DynType),
			cel.Variable("label", cel.DynType),
			cel.Variable("rctx", cel.DynType),
		)
	})
	return celEnv, celEnvErr
}

// Program 是一条编译后的规则表达式，可跨请求复用（编译一次，多次求值）。
//
// 表达式语法（CEL 标准语法），可用变量：
//   - item: id / category / creator_id / views / duration / caption_language / score
//   - label: 条目标签的 value 快捷访问，如 label.recall_source == "hot"
//   - rctx: user_id / limit / params
//
// 示例：
//   - `item.category == "Shorts"`                   → 过滤短视频类目
//   - `item.duration > 0.0 && item.duration < 30.0` → 过滤超短内容
//   - `label.recall_source == "hot" && item.views < 100.0` → 热门源里的低曝光条目
type Program struct {
	expr string
	prg  cel.Program
}

// Compile 编译一条规则表达式。表达式必须返回布尔值。
func Compile(expr string) (*Program, error) {
	if expr == "" {
		return nil, fmt.Errorf("dsl: empty expression")
	}
	env, err := getCELEnv()
	if err != nil {
		return nil, fmt.Errorf("dsl: init env: %w", err)
	}

	ast, issues := env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("dsl: compile %q: %w", expr, issues.Err())
	}
	prg, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("dsl: program %q: %w", expr, err)
	}
	return &Program{expr: expr, prg: prg}, nil
}

// Expr 返回原始表达式文本（用于观测/标签）。
func (p *Program) Expr() string {
	return p.expr
}

// Match 对单个条目求值，返回表达式是否命中。
// 访问不存在的 label key 会得到求值错误；规则里应使用 label.key != null 判存在性。
func (p *Program) Match(item *core.Item, rctx *core.RecommendContext) (bool, error) {
	out, _, err := p.prg.Eval(buildInput(item, rctx))
	if err != nil {
		return false, fmt.Errorf("dsl: eval %q: %w", p.expr, err)
	}
	result, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("dsl: expression %q must return boolean, got %T", p.expr, out.Value())
	}
	return result, nil
}

// buildInput 构建 CEL 求值输入。数值字段统一暴露为 float64，规则里用 double 字面量比较。
func buildInput(item *core.Item, rctx *core.RecommendContext) map[string]any {
	itemMap := map[string]any{
		"id":    "",
		"score": 0.0,
	}
	if item != nil {
		itemMap["score"] = item.Score
		if c := item.Content; c != nil {
			itemMap["id"] = c.ID
			itemMap["category"] = c.Category
			itemMap["creator_id"] = c.CreatorID
			itemMap["views"] = float64(c.Views)
			itemMap["duration"] = c.Duration
			itemMap["caption_language"] = c.CaptionLanguage
		}
	}

	// label.key 直接返回 value，便于书写规则
	labelAccessor := make(map[string]any)
	if item != nil {
		for k, v := range item.Labels {
			labelAccessor[k] = v.Value
		}
	}

	rctxMap := make(map[string]any)
	if rctx != nil {
		rctxMap["user_id"] = rctx.UserID
		rctxMap["limit"] = float64(rctx.Limit)
		rctxMap["params"] = rctx.Params
	}

	return map[string]any{
		"item":  itemMap,
		"label": labelAccessor,
		"rctx":  rctxMap,
	}
}
