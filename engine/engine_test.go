package engine

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/rushteam/feedkit/core"
	"github.com/rushteam/feedkit/postprocess"
	"github.com/rushteam/feedkit/profile"
	"github.com/rushteam/feedkit/recall"
	"github.com/rushteam/feedkit/store"
)

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

type failingHistoryStore struct{}

func (failingHistoryStore) Name() string { return "failing" }

func (failingHistoryStore) FindUserHistory(ctx context.Context, userID string) (*core.UserHistory, error) {
	return nil, errors.New("history backend down")
}

// testEnv 组装一套基于 MemoryStore 的完整引擎。
type testEnv struct {
	kv       *store.MemoryStore
	catalog  *recall.StoreCatalogAdapter
	creators *postprocess.StoreCreatorAdapter
	history  *profile.StoreHistoryAdapter
	engine   *Engine
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	kv := store.NewMemoryStore()
	catalog := recall.NewStoreCatalogAdapter(kv)
	creators := postprocess.NewStoreCreatorAdapter(kv)
	history := profile.NewStoreHistoryAdapter(kv)

	env := &testEnv{
		kv:       kv,
		catalog:  catalog,
		creators: creators,
		history:  history,
	}
	env.engine = &Engine{
		Catalog:  catalog,
		Schedule: catalog,
		Creators: creators,
		Profiles: &profile.Builder{History: history, Catalog: catalog},
		Now:      func() time.Time { return testNow },
	}
	return env
}

func (env *testEnv) save(t *testing.T, contents ...*core.ContentItem) {
	t.Helper()
	for _, c := range contents {
		if err := env.catalog.SaveContent(context.Background(), c); err != nil {
			t.Fatalf("SaveContent(%s) error = %v", c.ID, err)
		}
	}
}

func resultIDs(items []*core.Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Content.ID
	}
	return out
}

func TestRecommendInvalidLimit(t *testing.T) {
	env := newTestEnv(t)

	for _, limit := range []int{0, -1} {
		_, err := env.engine.Recommend(context.Background(), &Request{Limit: limit})
		if !core.IsInvalidInput(err) {
			t.Errorf("limit=%d: error = %v, want InvalidInput", limit, err)
		}
	}
	if _, err := env.engine.Recommend(context.Background(), nil); !core.IsInvalidInput(err) {
		t.Error("nil request should be InvalidInput")
	}
}

func TestRecommendAnonymousRanksByPopularity(t *testing.T) {
	env := newTestEnv(t)
	env.save(t,
		&core.ContentItem{ID: "c-small", Views: 100, Approved: true,
			CreatedAt: testNow.AddDate(0, 0, -30), UpdatedAt: testNow.AddDate(0, 0, -3)},
		&core.ContentItem{ID: "c-big", Views: 1000000, Approved: true,
			CreatedAt: testNow.AddDate(0, 0, -30), UpdatedAt: testNow.AddDate(0, 0, -2)},
		&core.ContentItem{ID: "c-mid", Views: 10000, Approved: true,
			CreatedAt: testNow.AddDate(0, 0, -30), UpdatedAt: testNow.AddDate(0, 0, -1)},
	)

	items, err := env.engine.Recommend(context.Background(), &Request{Limit: 3})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	want := []string{"c-big", "c-mid", "c-small"}
	if fmt.Sprint(resultIDs(items)) != fmt.Sprint(want) {
		t.Errorf("order = %v, want %v", resultIDs(items), want)
	}
}

func TestRecommendBehaviorLiftsLikedContent(t *testing.T) {
	env := newTestEnv(t)
	env.save(t,
		&core.ContentItem{ID: "c-liked", Views: 100, Approved: true,
			CreatedAt: testNow.AddDate(0, 0, -30), UpdatedAt: testNow.AddDate(0, 0, -2)},
		&core.ContentItem{ID: "c-popular", Views: 50000, Approved: true,
			CreatedAt: testNow.AddDate(0, 0, -30), UpdatedAt: testNow.AddDate(0, 0, -1)},
	)
	err := env.history.SaveUserHistory(context.Background(), &core.UserHistory{
		UserID: "u-1",
		Likes:  []string{"c-liked"},
	})
	if err != nil {
		t.Fatal(err)
	}

	items, err := env.engine.Recommend(context.Background(), &Request{UserID: "u-1", Limit: 2})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	// 点赞 +50 压过热度差（log10(50001)×5≈23.5 vs log10(101)×5≈10）
	if items[0].Content.ID != "c-liked" {
		t.Errorf("first = %s, want c-liked", items[0].Content.ID)
	}
}

func TestRecommendSeedNotFound(t *testing.T) {
	env := newTestEnv(t)
	env.save(t, &core.ContentItem{ID: "c-1", Approved: true, UpdatedAt: testNow})

	_, err := env.engine.Recommend(context.Background(), &Request{Limit: 5, SeedID: "ghost"})
	if !errors.Is(err, core.ErrSeedNotFound) {
		t.Errorf("error = %v, want ErrSeedNotFound", err)
	}
}

func TestRecommendUnapprovedSeedIsNotFound(t *testing.T) {
	env := newTestEnv(t)
	env.save(t,
		&core.ContentItem{ID: "c-pending", Approved: false, UpdatedAt: testNow},
		&core.ContentItem{ID: "c-1", Approved: true, UpdatedAt: testNow},
	)

	_, err := env.engine.Recommend(context.Background(), &Request{Limit: 5, SeedID: "c-pending"})
	if !errors.Is(err, core.ErrSeedNotFound) {
		t.Errorf("error = %v, want ErrSeedNotFound", err)
	}
}

func TestRecommendSeedExcludedAndSimilarFirst(t *testing.T) {
	env := newTestEnv(t)
	env.save(t,
		&core.ContentItem{ID: "c-seed", Category: "Cooking", CreatorID: "u-a", Approved: true,
			Embedding: []float64{1, 0}, UpdatedAt: testNow.AddDate(0, 0, -1), CreatedAt: testNow.AddDate(0, 0, -10)},
		&core.ContentItem{ID: "c-similar", Category: "Cooking", CreatorID: "u-a", Approved: true,
			Embedding: []float64{1, 0}, UpdatedAt: testNow.AddDate(0, 0, -2), CreatedAt: testNow.AddDate(0, 0, -10)},
		&core.ContentItem{ID: "c-unrelated", Category: "Travel", CreatorID: "u-b", Approved: true,
			Embedding: []float64{0, 1}, UpdatedAt: testNow.AddDate(0, 0, -1), CreatedAt: testNow.AddDate(0, 0, -10)},
	)

	items, err := env.engine.Recommend(context.Background(), &Request{Limit: 5, SeedID: "c-seed"})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	got := resultIDs(items)
	for _, id := range got {
		if id == "c-seed" {
			t.Error("seed itself must not appear in results")
		}
	}
	if got[0] != "c-similar" {
		t.Errorf("first = %s, want c-similar", got[0])
	}
}

func TestRecommendFiltersUpcoming(t *testing.T) {
	env := newTestEnv(t)
	env.save(t,
		&core.ContentItem{ID: "c-ready", Views: 10, Approved: true, UpdatedAt: testNow.AddDate(0, 0, -1)},
		&core.ContentItem{ID: "c-live-later", Views: 99999, Approved: true, UpdatedAt: testNow},
	)
	err := env.catalog.SetUpcoming(context.Background(), map[string]time.Time{
		"c-live-later": testNow.Add(time.Hour),
	})
	if err != nil {
		t.Fatal(err)
	}

	items, err := env.engine.Recommend(context.Background(), &Request{Limit: 5})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if fmt.Sprint(resultIDs(items)) != fmt.Sprint([]string{"c-ready"}) {
		t.Errorf("items = %v, want only c-ready", resultIDs(items))
	}
}

func TestRecommendAttachesCreatorInfo(t *testing.T) {
	env := newTestEnv(t)
	env.save(t, &core.ContentItem{ID: "c-1", CreatorID: "u-alice", Approved: true, UpdatedAt: testNow})
	err := env.creators.SaveCreator(context.Background(), "u-alice", map[string]any{
		"name": "Alice", "avatar": "a.png", "email": "hidden",
	})
	if err != nil {
		t.Fatal(err)
	}

	env.engine.CreatorFields = []string{"name", "avatar"}
	items, err := env.engine.Recommend(context.Background(), &Request{Limit: 5})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	creator := items[0].Content.Creator
	if creator["name"] != "Alice" || creator["avatar"] != "a.png" {
		t.Errorf("creator = %v", creator)
	}
	if _, ok := creator["email"]; ok {
		t.Error("unselected field leaked")
	}
}

func TestRecommendProfileFailureDegradesToAnonymous(t *testing.T) {
	env := newTestEnv(t)
	env.save(t, &core.ContentItem{ID: "c-1", Views: 100, Approved: true, UpdatedAt: testNow})
	env.engine.Profiles = &profile.Builder{History: failingHistoryStore{}, Catalog: env.catalog}

	items, err := env.engine.Recommend(context.Background(), &Request{UserID: "u-1", Limit: 5})
	if err != nil {
		t.Fatalf("Recommend() should degrade, got error = %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("items = %v", resultIDs(items))
	}
}

func TestRecommendExtraHotSource(t *testing.T) {
	env := newTestEnv(t)
	env.save(t,
		&core.ContentItem{ID: "c-1", Views: 10, Approved: true, UpdatedAt: testNow.AddDate(0, 0, -1)},
		&core.ContentItem{ID: "c-hot", Views: 10, Approved: true, UpdatedAt: testNow.AddDate(0, 0, -2)},
	)
	if err := env.kv.ZAdd(context.Background(), "feedkit:hot", 100, "c-hot"); err != nil {
		t.Fatal(err)
	}
	env.engine.Extra = []recall.Source{
		&recall.Hot{Store: env.kv, Catalog: env.catalog},
	}

	items, err := env.engine.Recommend(context.Background(), &Request{Limit: 5})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("items = %v, want both (deduped)", resultIDs(items))
	}
}

func TestRecommendDeterministicWithFixedClock(t *testing.T) {
	env := newTestEnv(t)
	env.save(t,
		&core.ContentItem{ID: "a", Views: 500, Approved: true,
			CreatedAt: testNow.AddDate(0, 0, -3), UpdatedAt: testNow.AddDate(0, 0, -3)},
		&core.ContentItem{ID: "b", Views: 500, Approved: true,
			CreatedAt: testNow.AddDate(0, 0, -3), UpdatedAt: testNow.AddDate(0, 0, -2)},
		&core.ContentItem{ID: "c", Views: 40000, Approved: true,
			CreatedAt: testNow.AddDate(0, 0, -9), UpdatedAt: testNow.AddDate(0, 0, -9)},
	)

	first, err := env.engine.Recommend(context.Background(), &Request{Limit: 3})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	for i := 0; i < 5; i++ {
		again, err := env.engine.Recommend(context.Background(), &Request{Limit: 3})
		if err != nil {
			t.Fatalf("Recommend() error = %v", err)
		}
		if fmt.Sprint(resultIDs(first)) != fmt.Sprint(resultIDs(again)) {
			t.Fatalf("run %d diverged: %v vs %v", i, resultIDs(first), resultIDs(again))
		}
	}
	// 同分 500 次曝光的 a/b 按更新时间定序
	if first[len(first)-2].Content.ID != "b" || first[len(first)-1].Content.ID != "a" {
		t.Errorf("tie-break order = %v, want ... b a", resultIDs(first))
	}
}

func TestRecommendPoolShortfallReturnsFewer(t *testing.T) {
	env := newTestEnv(t)
	env.save(t, &core.ContentItem{ID: "c-only", Views: 5, Approved: true, UpdatedAt: testNow})

	items, err := env.engine.Recommend(context.Background(), &Request{Limit: 20})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if len(items) != 1 {
		t.Errorf("len = %d, want 1 (shortfall is not an error)", len(items))
	}
}
