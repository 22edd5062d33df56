package types

const (
	// MaxBriefsPerDay caps how many intelligence briefs are kept for a single date.
	MaxBriefsPerDay = 8

	// TitleSimilarityThreshold is the similarity ratio above which two brief
	// titles are considered to report the same event.
	TitleSimilarityThreshold = 0.8

	// VaultSource identifies the warehouse report provider for vault snapshots.
	VaultSource = "comex"
)

// Brief categories accepted by the intelligence_briefs table.
const (
	CategoryMarketBrief  = "market_brief"
	CategoryBreakingNews = "breaking_news"
	CategoryPolicy       = "policy"
	CategorySupplyDemand = "supply_demand"
	CategoryAnalysis     = "analysis"
)

// Metals lists the four tracked COMEX metals in insertion order.
var Metals = []string{"gold", "silver", "platinum", "palladium"}

// IntelligenceBrief is one news item persisted for a calendar day.
type IntelligenceBrief struct {
	Date           string `json:"date"`
	Category       string `json:"category"`
	Title          string `json:"title"`
	Summary        string `json:"summary"`
	Source         string `json:"source,omitempty"`
	SourceURL      string `json:"source_url,omitempty"`
	RelevanceScore int    `json:"relevance_score"`
}

// VaultSnapshot is one metal's warehouse state for a date. Inventory and open
// interest fields are troy ounces and must be non-negative; the change fields
// are daily deltas and may be signed.
type VaultSnapshot struct {
	Date                string  `json:"date" validate:"required"`
	Source              string  `json:"source" validate:"required"`
	Metal               string  `json:"metal" validate:"required,oneof=gold silver platinum palladium"`
	RegisteredOz        float64 `json:"registered_oz" validate:"gte=0"`
	EligibleOz          float64 `json:"eligible_oz" validate:"gte=0"`
	CombinedOz          float64 `json:"combined_oz" validate:"gte=0"`
	RegisteredChangeOz  float64 `json:"registered_change_oz"`
	EligibleChangeOz    float64 `json:"eligible_change_oz"`
	CombinedChangeOz    float64 `json:"combined_change_oz"`
	OpenInterestOz      float64 `json:"open_interest_oz" validate:"gte=0"`
	OversubscribedRatio float64 `json:"oversubscribed_ratio" validate:"gte=0"`
}
