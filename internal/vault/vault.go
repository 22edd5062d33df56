/*
Package vault implements the COMEX warehouse snapshot pipeline: one structured
grounded search, derived-metric computation and per-metal persistence into the
vault_data collection.
*/
package vault

import (
	"context"
	"fmt"
	"math"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/phuslu/log"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/stacktracker/intelgen/internal/types"
)

const (
	// Per-metal status strings surfaced in the summary report.
	statusSearchFailed = "search failed"
	statusNoData       = "no data"
)

func vaultPrompt(date string) string {
	return fmt.Sprintf("Search for today's (%s) COMEX precious metals warehouse inventory report. "+
		"Find the latest registered and eligible inventory numbers for gold, silver, platinum, "+
		"and palladium. Also find the current open interest for the active month contract for "+
		"each metal. Return a JSON object with keys: gold, silver, platinum, palladium. "+
		"Each must have: registered_oz (number), eligible_oz (number), registered_change_oz "+
		"(number, daily change), eligible_change_oz (number, daily change), open_interest_oz "+
		"(number, active month). Use the most recent data available. Return ONLY JSON, no markdown.", date)
}

const vaultSystemPrompt = "You are a COMEX warehouse data analyst. Search for the most recent CME Group / COMEX " +
	"precious metals warehouse stock reports. Return precise numbers in troy ounces. " +
	"If exact daily data is not available for a metal, use the most recent report numbers. " +
	"Return ONLY valid JSON."

var ozPrinter = message.NewPrinter(language.English)

// Searcher runs one grounded query and returns parsed JSON or nil.
type Searcher interface {
	Search(ctx context.Context, prompt, systemPrompt string) any
}

// Store is the slice of the persistence layer the vault pipeline needs.
type Store interface {
	DeleteVaultRows(date, source string) error
	InsertVaultRow(row types.VaultSnapshot) error
}

// Pipeline captures one day's warehouse snapshot for the four tracked metals.
type Pipeline struct {
	searcher Searcher
	store    Store
	validate *validator.Validate
}

// NewPipeline creates a vault pipeline over the given searcher and store.
func NewPipeline(searcher Searcher, store Store) *Pipeline {
	return &Pipeline{
		searcher: searcher,
		store:    store,
		validate: validator.New(),
	}
}

// Run issues the warehouse query and replaces today's comex rows with whatever
// metals came back. When the search yields no usable object, no deletion
// happens at all so the previous data survives. Each metal is inserted
// independently; a failure on one is recorded in the status map and does not
// affect the others. Returns the inserted count and a per-metal status map.
func (p *Pipeline) Run(ctx context.Context, date string) (int, map[string]string) {
	status := make(map[string]string, len(types.Metals))

	log.Info().Str("date", date).Msg("searching for COMEX vault inventory data")
	result := p.searcher.Search(ctx, vaultPrompt(date), vaultSystemPrompt)

	// An empty object is as unusable as a non-object: deleting today's rows
	// with nothing to replace them would wipe valid prior data.
	data, ok := result.(map[string]any)
	if !ok || len(data) == 0 {
		log.Warn().Msg("vault search returned no usable data")
		for _, metal := range types.Metals {
			status[metal] = statusSearchFailed
		}
		return 0, status
	}

	if err := p.store.DeleteVaultRows(date, types.VaultSource); err != nil {
		log.Warn().Err(err).Str("date", date).Msg("failed to clear existing vault rows")
	}

	inserted := 0
	for _, metal := range types.Metals {
		fields, ok := data[metal].(map[string]any)
		if !ok {
			if data[metal] == nil {
				log.Info().Str("metal", metal).Msg("no vault data for metal")
				status[metal] = statusNoData
			} else {
				log.Error().Str("metal", metal).Msg("malformed vault data for metal")
				status[metal] = fmt.Sprintf("error: unexpected %T value", data[metal])
			}
			continue
		}
		if len(fields) == 0 {
			log.Info().Str("metal", metal).Msg("no vault data for metal")
			status[metal] = statusNoData
			continue
		}

		row := BuildSnapshot(date, metal, fields)

		if err := p.validate.Struct(row); err != nil {
			log.Error().Err(err).Str("metal", metal).Msg("vault row failed validation")
			status[metal] = fmt.Sprintf("error: %v", err)
			continue
		}

		if err := p.store.InsertVaultRow(row); err != nil {
			log.Error().Err(err).Str("metal", metal).Msg("vault row insert failed")
			status[metal] = fmt.Sprintf("error: %v", err)
			continue
		}

		inserted++
		status[metal] = ozPrinter.Sprintf("registered=%.0f oz, ratio=%.2fx", row.RegisteredOz, row.OversubscribedRatio)
		log.Info().Str("metal", metal).Str("status", status[metal]).Msg("vault row inserted")
	}

	return inserted, status
}

// BuildSnapshot coerces one metal's raw fields into a snapshot row, defaulting
// absent fields to zero and computing the derived metrics.
func BuildSnapshot(date, metal string, fields map[string]any) types.VaultSnapshot {
	registered := numField(fields, "registered_oz")
	eligible := numField(fields, "eligible_oz")
	regChange := numField(fields, "registered_change_oz")
	eligChange := numField(fields, "eligible_change_oz")
	openInterest := numField(fields, "open_interest_oz")

	return types.VaultSnapshot{
		Date:                date,
		Source:              types.VaultSource,
		Metal:               metal,
		RegisteredOz:        registered,
		EligibleOz:          eligible,
		CombinedOz:          registered + eligible,
		RegisteredChangeOz:  regChange,
		EligibleChangeOz:    eligChange,
		CombinedChangeOz:    regChange + eligChange,
		OpenInterestOz:      openInterest,
		OversubscribedRatio: OversubscribedRatio(openInterest, registered),
	}
}

// OversubscribedRatio is open interest over registered deliverable stock,
// rounded to two decimals, or 0 when nothing is registered.
func OversubscribedRatio(openInterest, registered float64) float64 {
	if registered <= 0 {
		return 0
	}
	return math.Round(openInterest/registered*100) / 100
}

// numField coerces a value that may arrive as a JSON number or a numeric
// string. Absent or unparseable values become 0.
func numField(fields map[string]any, key string) float64 {
	switch v := fields[key].(type) {
	case float64:
		return v
	case string:
		n, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0
		}
		return n
	default:
		return 0
	}
}
