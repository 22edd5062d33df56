package briefs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stacktracker/intelgen/internal/types"
)

type fakeSearcher struct {
	results []any
	calls   int
}

func (f *fakeSearcher) Search(_ context.Context, _, _ string) any {
	defer func() { f.calls++ }()
	if f.calls >= len(f.results) {
		return nil
	}
	return f.results[f.calls]
}

type fakeStore struct {
	deletes    []string
	inserts    []types.IntelligenceBrief
	failTitles map[string]bool
}

func (s *fakeStore) DeleteBriefs(date string) error {
	s.deletes = append(s.deletes, date)
	return nil
}

func (s *fakeStore) InsertBrief(b types.IntelligenceBrief) error {
	if s.failTitles[b.Title] {
		return errors.New("insert rejected")
	}
	s.inserts = append(s.inserts, b)
	return nil
}

func newTestPipeline(searcher Searcher, store Store) *Pipeline {
	p := NewPipeline(searcher, store)
	p.pause = func(time.Duration) {}
	return p
}

func item(title string, score int) map[string]any {
	return map[string]any{
		"title":           title,
		"summary":         "summary of " + title,
		"category":        "market_brief",
		"relevance_score": float64(score),
	}
}

func cand(title string, score int) candidate {
	return candidate{
		IntelligenceBrief: types.IntelligenceBrief{Title: title, RelevanceScore: score},
		scored:            true,
	}
}

func TestClampScore(t *testing.T) {
	tests := []struct {
		name  string
		score int
		want  int
	}{
		{"above range", 150, 100},
		{"below range", -5, 1},
		{"in range", 50, 50},
		{"zero", 0, 1},
		{"lower bound", 1, 1},
		{"upper bound", 100, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClampScore(tt.score))
		})
	}
}

func TestTitleSimilarity(t *testing.T) {
	sim := TitleSimilarity("Gold hits record high", "Gold Hits Record High Today")
	assert.Greater(t, sim, types.TitleSimilarityThreshold, "near-identical titles must exceed the threshold")

	sim = TitleSimilarity("Gold hits record high", "Fed holds rates steady")
	assert.Less(t, sim, types.TitleSimilarityThreshold, "unrelated titles must stay below the threshold")
}

func TestDedupFirstSeenWins(t *testing.T) {
	candidates := []candidate{
		cand("Gold hits record high", 90),
		cand("Gold Hits Record High Today", 70),
		cand("Fed holds rates steady", 60),
	}

	kept := dedup(candidates)

	require.Len(t, kept, 2)
	assert.Equal(t, "Gold hits record high", kept[0].Title)
	assert.Equal(t, 90, kept[0].RelevanceScore)
	assert.Equal(t, "Fed holds rates steady", kept[1].Title)
}

func TestDedupIdempotence(t *testing.T) {
	candidates := []candidate{
		cand("Gold hits record high", 0),
		cand("Gold Hits Record High Today", 0),
		cand("Silver squeeze chatter returns", 0),
		cand("Fed holds rates steady", 0),
		cand("Fed Holds Rates Steady Again", 0),
	}

	once := dedup(candidates)
	twice := dedup(once)

	assert.Equal(t, once, twice, "deduplicating an already deduped list must be a no-op")
}

func TestDedupDropsUntitled(t *testing.T) {
	kept := dedup([]candidate{
		cand("", 99),
		cand("Platinum supply deficit widens", 0),
	})

	require.Len(t, kept, 1)
	assert.Equal(t, "Platinum supply deficit widens", kept[0].Title)
}

func TestRankDescendingAndStable(t *testing.T) {
	candidates := []candidate{
		cand("a", 60),
		cand("b", 90),
		cand("c", 60),
		cand("d", 75),
	}

	rank(candidates)

	scores := make([]int, len(candidates))
	for i, c := range candidates {
		scores[i] = c.RelevanceScore
	}
	assert.Equal(t, []int{90, 75, 60, 60}, scores)

	// Ties keep their original relative order.
	assert.Equal(t, "a", candidates[2].Title)
	assert.Equal(t, "c", candidates[3].Title)
}

func TestRunCapsAtMaxBriefsPerDay(t *testing.T) {
	titles := []string{
		"Gold hits record high",
		"Fed holds rates steady",
		"Silver squeeze chatter returns",
		"Platinum supply deficit widens",
		"Central banks keep buying bullion",
		"COMEX registered stocks drain again",
		"Solar demand lifts industrial silver",
		"Palladium shorts cover hard",
		"Miners rally on earnings beat",
		"Dollar weakness fuels metal bids",
		"ETF inflows turn positive",
		"Shanghai premium widens sharply",
	}

	items := make([]any, 0, len(titles))
	for i, title := range titles {
		items = append(items, item(title, 50+i))
	}

	searcher := &fakeSearcher{results: []any{items}}
	store := &fakeStore{}

	inserted, final := newTestPipeline(searcher, store).Run(context.Background(), "2026-08-31")

	assert.Equal(t, types.MaxBriefsPerDay, inserted)
	assert.Len(t, final, types.MaxBriefsPerDay)
	assert.Len(t, store.inserts, types.MaxBriefsPerDay)
}

func TestRunEndToEndDedupAndRank(t *testing.T) {
	searcher := &fakeSearcher{results: []any{
		[]any{
			item("Gold hits record high", 90),
			item("Gold Hits Record High Today", 70),
		},
		[]any{
			item("Fed holds rates steady", 60),
		},
	}}
	store := &fakeStore{}

	inserted, final := newTestPipeline(searcher, store).Run(context.Background(), "2026-08-31")

	assert.Equal(t, 2, inserted)
	require.Len(t, final, 2)
	assert.Equal(t, "Gold hits record high", final[0].Title)
	assert.Equal(t, 90, final[0].RelevanceScore)
	assert.Equal(t, "Fed holds rates steady", final[1].Title)
	assert.Equal(t, 60, final[1].RelevanceScore)

	// All six topic searches run even when later ones return nothing.
	assert.Equal(t, 6, searcher.calls)
	assert.Equal(t, []string{"2026-08-31"}, store.deletes)
}

func TestRunIsolatesInsertFailures(t *testing.T) {
	searcher := &fakeSearcher{results: []any{
		[]any{
			item("Gold hits record high", 90),
			item("Fed holds rates steady", 60),
			item("Platinum supply deficit widens", 40),
		},
	}}
	store := &fakeStore{failTitles: map[string]bool{"Fed holds rates steady": true}}

	inserted, final := newTestPipeline(searcher, store).Run(context.Background(), "2026-08-31")

	assert.Equal(t, 2, inserted)
	assert.Len(t, final, 3, "a failed insert still counts toward the final set")
	require.Len(t, store.inserts, 2)
	assert.Equal(t, "Gold hits record high", store.inserts[0].Title)
	assert.Equal(t, "Platinum supply deficit widens", store.inserts[1].Title)
}

func TestRunTreatsNonListAsNoResults(t *testing.T) {
	searcher := &fakeSearcher{results: []any{
		map[string]any{"unexpected": "shape"},
	}}
	store := &fakeStore{}

	inserted, final := newTestPipeline(searcher, store).Run(context.Background(), "2026-08-31")

	assert.Zero(t, inserted)
	assert.Empty(t, final)
	// The full-day replace still clears the date; an empty set is valid output.
	assert.Equal(t, []string{"2026-08-31"}, store.deletes)
	assert.Empty(t, store.inserts)
}

func TestRunRanksUnscoredItemsLast(t *testing.T) {
	unscored := map[string]any{
		"title":    "Fed holds rates steady",
		"summary":  "No score on this one",
		"category": "policy",
	}
	searcher := &fakeSearcher{results: []any{
		[]any{unscored, item("Platinum supply deficit widens", 30)},
	}}
	store := &fakeStore{}

	inserted, final := newTestPipeline(searcher, store).Run(context.Background(), "2026-08-31")

	assert.Equal(t, 2, inserted)
	require.Len(t, final, 2)

	// A missing score ranks as zero, below any scored item, and only picks up
	// the default when the row is written out.
	assert.Equal(t, "Platinum supply deficit widens", final[0].Title)
	assert.Equal(t, 30, final[0].RelevanceScore)
	assert.Equal(t, "Fed holds rates steady", final[1].Title)
	assert.Equal(t, defaultRelevanceScore, final[1].RelevanceScore)

	require.Len(t, store.inserts, 2)
	assert.Equal(t, defaultRelevanceScore, store.inserts[1].RelevanceScore)
}

func TestCandidateFromFields(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		c, ok := candidateFromFields(map[string]any{"title": "Gold hits record high"}, "2026-08-31")
		require.True(t, ok)
		assert.Equal(t, types.CategoryMarketBrief, c.Category)
		assert.Equal(t, "", c.Summary)
		assert.Equal(t, 0, c.RelevanceScore)
		assert.False(t, c.scored)
		assert.Equal(t, "2026-08-31", c.Date)
	})

	t.Run("missing title discarded", func(t *testing.T) {
		_, ok := candidateFromFields(map[string]any{"summary": "no headline"}, "2026-08-31")
		assert.False(t, ok)
	})

	t.Run("out-of-range score stays raw", func(t *testing.T) {
		c, ok := candidateFromFields(map[string]any{"title": "t", "relevance_score": float64(150)}, "2026-08-31")
		require.True(t, ok)
		assert.Equal(t, 150, c.RelevanceScore)
		assert.True(t, c.scored)
	})

	t.Run("numeric string score", func(t *testing.T) {
		c, ok := candidateFromFields(map[string]any{"title": "t", "relevance_score": "42"}, "2026-08-31")
		require.True(t, ok)
		assert.Equal(t, 42, c.RelevanceScore)
		assert.True(t, c.scored)
	})

	t.Run("unparseable score treated as unscored", func(t *testing.T) {
		c, ok := candidateFromFields(map[string]any{"title": "t", "relevance_score": "high"}, "2026-08-31")
		require.True(t, ok)
		assert.Equal(t, 0, c.RelevanceScore)
		assert.False(t, c.scored)
	})
}

func TestCandidateRow(t *testing.T) {
	t.Run("unscored inserts at default", func(t *testing.T) {
		c := candidate{IntelligenceBrief: types.IntelligenceBrief{Title: "t"}}
		assert.Equal(t, defaultRelevanceScore, c.row().RelevanceScore)
	})

	t.Run("raw score clamped on write", func(t *testing.T) {
		c := cand("t", 150)
		assert.Equal(t, 100, c.row().RelevanceScore)
	})
}
