/*
Package briefs implements the news aggregation pipeline: a fixed set of topic
searches, near-duplicate removal, relevance ranking and a full-day replace of
the intelligence_briefs collection.
*/
package briefs

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/phuslu/log"

	"github.com/stacktracker/intelgen/internal/types"
)

const (
	defaultRelevanceScore = 50

	// queryPause is the politeness delay between consecutive topic searches.
	queryPause = time.Second
)

const systemPrompt = "You are a precious metals market analyst. Search for the most important news " +
	"from the last 24 hours about the given topic. Return a JSON array of 1-3 news items. " +
	"Each item must have: title (string), summary (2-3 sentences), category (one of: " +
	"market_brief, breaking_news, policy, supply_demand, analysis), source (publication name), " +
	"source_url (if findable), relevance_score (1-100, how important this is for physical " +
	"precious metals stackers). Only include genuinely newsworthy items. If nothing significant " +
	"happened, return an empty array. Return ONLY the JSON array, no markdown."

// topicQueries returns the fixed, ordered topic searches for a date.
func topicQueries(date string) []string {
	return []string{
		fmt.Sprintf("gold silver precious metals market news today %s", date),
		fmt.Sprintf("federal reserve interest rate policy gold impact %s", date),
		fmt.Sprintf("COMEX silver gold delivery supply shortage %s", date),
		fmt.Sprintf("central bank gold buying reserves %s", date),
		fmt.Sprintf("silver industrial demand solar panels EV %s", date),
		fmt.Sprintf("platinum palladium automotive catalyst supply %s", date),
	}
}

// Searcher runs one grounded query and returns parsed JSON or nil.
type Searcher interface {
	Search(ctx context.Context, prompt, systemPrompt string) any
}

// Store is the slice of the persistence layer the briefs pipeline needs.
type Store interface {
	DeleteBriefs(date string) error
	InsertBrief(brief types.IntelligenceBrief) error
}

// Pipeline aggregates news briefs for one date.
type Pipeline struct {
	searcher Searcher
	store    Store
	pause    func(time.Duration)
}

// NewPipeline creates a briefs pipeline over the given searcher and store.
func NewPipeline(searcher Searcher, store Store) *Pipeline {
	return &Pipeline{
		searcher: searcher,
		store:    store,
		pause:    time.Sleep,
	}
}

// Run issues the topic searches, dedups and ranks the results, then replaces
// all briefs for date with the top items. It returns the number of rows
// inserted and the final brief set. A run with zero results is valid output,
// not an error; failures are absorbed per query and per row.
func (p *Pipeline) Run(ctx context.Context, date string) (int, []types.IntelligenceBrief) {
	queries := topicQueries(date)

	var candidates []candidate
	for i, query := range queries {
		log.Info().
			Int("query", i+1).
			Int("total", len(queries)).
			Str("topic", query).
			Msg("running news search")

		result := p.searcher.Search(ctx, query, systemPrompt)
		items, ok := result.([]any)
		if !ok {
			log.Warn().Int("query", i+1).Msg("no results or bad response")
		} else {
			log.Info().Int("query", i+1).Int("items", len(items)).Msg("collected news items")
			for _, item := range items {
				fields, ok := item.(map[string]any)
				if !ok {
					continue
				}
				if cand, ok := candidateFromFields(fields, date); ok {
					candidates = append(candidates, cand)
				}
			}
		}

		if i < len(queries)-1 {
			p.pause(queryPause)
		}
	}

	log.Info().Int("raw", len(candidates)).Msg("raw briefs collected")

	deduped := dedup(candidates)
	log.Info().Int("deduped", len(deduped)).Msg("briefs after dedup")

	rank(deduped)
	final := deduped
	if len(final) > types.MaxBriefsPerDay {
		final = final[:types.MaxBriefsPerDay]
	}
	log.Info().Int("final", len(final)).Int("cap", types.MaxBriefsPerDay).Msg("final briefs after ranking and cap")

	rows := make([]types.IntelligenceBrief, 0, len(final))
	for _, cand := range final {
		rows = append(rows, cand.row())
	}

	inserted := p.persist(date, rows)
	return inserted, rows
}

// row builds the insertable record, applying the column defaults that don't
// participate in ranking: an unscored item inserts at the default score and
// the result is clamped into [1,100].
func (c candidate) row() types.IntelligenceBrief {
	brief := c.IntelligenceBrief
	if !c.scored {
		brief.RelevanceScore = defaultRelevanceScore
	}
	brief.RelevanceScore = ClampScore(brief.RelevanceScore)
	return brief
}

// persist replaces all briefs for date with the final set. The delete and each
// insert fail independently so one bad row never aborts the batch.
func (p *Pipeline) persist(date string, final []types.IntelligenceBrief) int {
	if err := p.store.DeleteBriefs(date); err != nil {
		log.Warn().Err(err).Str("date", date).Msg("failed to clear existing briefs")
	}

	inserted := 0
	for _, brief := range final {
		if err := p.store.InsertBrief(brief); err != nil {
			log.Error().Err(err).Str("title", brief.Title).Msg("brief insert failed")
			continue
		}
		inserted++
		log.Info().Str("title", brief.Title).Int("score", brief.RelevanceScore).Msg("brief inserted")
	}

	log.Info().Int("inserted", inserted).Int("final", len(final)).Msg("briefs persisted")
	return inserted
}

// candidateFromFields builds a candidate from one raw search item. Items
// without a title are discarded. The score stays raw at this stage so that
// ranking sees exactly what the model returned; an item with no usable score
// ranks as 0 and only picks up the default when it is written out.
func candidateFromFields(fields map[string]any, date string) (candidate, bool) {
	title, _ := fields["title"].(string)
	if title == "" {
		return candidate{}, false
	}

	score, scored := scoreField(fields, "relevance_score")
	return candidate{
		IntelligenceBrief: types.IntelligenceBrief{
			Date:           date,
			Category:       stringField(fields, "category", types.CategoryMarketBrief),
			Title:          title,
			Summary:        stringField(fields, "summary", ""),
			Source:         stringField(fields, "source", ""),
			SourceURL:      stringField(fields, "source_url", ""),
			RelevanceScore: score,
		},
		scored: scored,
	}, true
}

func stringField(fields map[string]any, key, fallback string) string {
	if s, ok := fields[key].(string); ok && s != "" {
		return s
	}
	return fallback
}

// scoreField coerces a score that may arrive as a JSON number or a numeric
// string. The second return reports whether a usable score was present.
func scoreField(fields map[string]any, key string) (int, bool) {
	switch v := fields[key].(type) {
	case float64:
		return int(v), true
	case string:
		n, err := strconv.Atoi(v)
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}
