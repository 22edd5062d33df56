/*
Package report produces the end-of-run summary: a console block and an
optional HTML email with the same content.
*/
package report

import (
	"fmt"
	"time"

	"github.com/stacktracker/intelgen/internal/types"
)

// costPerCall is the estimated price of one grounded search call in USD.
const costPerCall = 0.01

// Summary is everything the run produced, for reporting.
type Summary struct {
	Date           string
	BriefsInserted int
	Briefs         []types.IntelligenceBrief
	VaultInserted  int
	VaultStatus    map[string]string
	CallsUsed      int
	CallBudget     int
	Elapsed        time.Duration
}

// EstimatedCost is the approximate spend for this run.
func (s Summary) EstimatedCost() float64 {
	return float64(s.CallsUsed) * costPerCall
}

// Success reports whether the run persisted anything at all. A run fails only
// when both pipelines produced zero rows.
func (s Summary) Success() bool {
	return s.BriefsInserted > 0 || s.VaultInserted > 0
}

// Print writes the human-readable summary block to stdout.
func Print(s Summary) {
	fmt.Println("\n============================================================")
	fmt.Println("  SUMMARY")
	fmt.Println("============================================================")
	fmt.Printf("  Intelligence briefs: %d inserted\n", s.BriefsInserted)
	fmt.Println("  Vault data:")
	for _, metal := range types.Metals {
		fmt.Printf("    %10s: %s\n", metal, s.VaultStatus[metal])
	}
	fmt.Printf("  API calls used:  %d/%d\n", s.CallsUsed, s.CallBudget)
	fmt.Printf("  Est. cost:       ~$%.2f\n", s.EstimatedCost())
	fmt.Printf("  Runtime:         %.1fs\n", s.Elapsed.Seconds())
	fmt.Println("============================================================")
}
