package crosscheck

import (
	"fmt"

	"github.com/danpilch/diskspace/pkg/diskspace"
	"github.com/danpilch/diskspace/pkg/sensor"
)

// SanityResult holds the outcome of a physical constraint check.
type SanityResult struct {
	Check   string `json:"check"`
	Passed  bool   `json:"passed"`
	Details string `json:"details"`
}

// RunSanityChecks validates sensor readings against capacity invariants.
// Degraded readings carry no measurement and are skipped.
func RunSanityChecks(readings []sensor.Reading) []SanityResult {
	var results []SanityResult

	for _, r := range readings {
		if r.Degraded {
			continue
		}
		a := r.Attributes

		results = append(results, SanityResult{
			Check:   fmt.Sprintf("%s used+free", r.Name),
			Passed:  a.Used+a.Free == a.Total,
			Details: fmt.Sprintf("%d + %d vs total %d", a.Used, a.Free, a.Total),
		})

		inRange := a.PercentageFree >= 0 && a.PercentageFree <= 100
		details := fmt.Sprintf("%.1f%% within [0, 100]", a.PercentageFree)
		if !inRange {
			details = fmt.Sprintf("percentage free out of range: %.1f", a.PercentageFree)
		}
		results = append(results, SanityResult{
			Check:   fmt.Sprintf("%s percentage range", r.Name),
			Passed:  inRange,
			Details: details,
		})

		want := diskspace.PercentageFree(a.Free, a.Total)
		results = append(results, SanityResult{
			Check:   fmt.Sprintf("%s percentage consistency", r.Name),
			Passed:  want == a.PercentageFree,
			Details: fmt.Sprintf("reported %.1f%%, computed %.1f%%", a.PercentageFree, want),
		})

		if r.State != a.Free {
			results = append(results, SanityResult{
				Check:   fmt.Sprintf("%s state", r.Name),
				Passed:  false,
				Details: fmt.Sprintf("state %d differs from free %d", r.State, a.Free),
			})
		}
	}

	return results
}
