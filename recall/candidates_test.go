package recall

import (
	"context"
	"testing"

	"github.com/rushteam/feedkit/core"
)

type fakeCatalog struct {
	candidates []*core.ContentItem
	gotExclude []string
	gotLimit   int
}

func (f *fakeCatalog) Name() string { return "fake" }

func (f *fakeCatalog) FindApprovedCandidates(ctx context.Context, excludeIDs []string, limit int) ([]*core.ContentItem, error) {
	f.gotExclude = excludeIDs
	f.gotLimit = limit

	exclude := make(map[string]struct{}, len(excludeIDs))
	for _, id := range excludeIDs {
		exclude[id] = struct{}{}
	}
	var out []*core.ContentItem
	for _, c := range f.candidates {
		if _, skip := exclude[c.ID]; skip {
			continue
		}
		out = append(out, c)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (f *fakeCatalog) FindByID(ctx context.Context, id string) (*core.ContentItem, error) {
	for _, c := range f.candidates {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, core.ErrContentNotFound
}

func (f *fakeCatalog) FindByIDs(ctx context.Context, ids []string) (map[string]*core.ContentItem, error) {
	out := make(map[string]*core.ContentItem)
	for _, id := range ids {
		if c, err := f.FindByID(ctx, id); err == nil {
			out[id] = c
		}
	}
	return out, nil
}

func TestCandidatesDefaultPoolSize(t *testing.T) {
	catalog := &fakeCatalog{}
	s := &Candidates{Catalog: catalog}

	if _, err := s.Recall(context.Background(), &core.RecommendContext{Limit: 10}); err != nil {
		t.Fatalf("Recall() error = %v", err)
	}
	if catalog.gotLimit != DefaultPoolSize {
		t.Errorf("limit = %d, want %d", catalog.gotLimit, DefaultPoolSize)
	}
}

func TestCandidatesExcludesSeed(t *testing.T) {
	catalog := &fakeCatalog{candidates: []*core.ContentItem{
		{ID: "seed", Approved: true},
		{ID: "c-1", Approved: true},
	}}
	s := &Candidates{Catalog: catalog}

	rctx := &core.RecommendContext{Limit: 10, Seed: &core.ContentItem{ID: "seed"}}
	items, err := s.Recall(context.Background(), rctx)
	if err != nil {
		t.Fatalf("Recall() error = %v", err)
	}
	if len(items) != 1 || items[0].Content.ID != "c-1" {
		t.Errorf("items = %v, want only c-1", ids(items))
	}
	if len(catalog.gotExclude) != 1 || catalog.gotExclude[0] != "seed" {
		t.Errorf("exclude = %v, want [seed]", catalog.gotExclude)
	}
}

func TestCandidatesLabelsSource(t *testing.T) {
	catalog := &fakeCatalog{candidates: []*core.ContentItem{{ID: "c-1", Approved: true}}}
	s := &Candidates{Catalog: catalog}

	items, err := s.Recall(context.Background(), &core.RecommendContext{Limit: 10})
	if err != nil {
		t.Fatalf("Recall() error = %v", err)
	}
	lbl, ok := items[0].Labels[LabelRecallSource]
	if !ok || lbl.Value != "candidates" {
		t.Errorf("recall_source = %+v, want candidates", lbl)
	}
}

func ids(items []*core.Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Content.ID
	}
	return out
}
