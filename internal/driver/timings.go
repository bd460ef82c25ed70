package driver

import (
	"coral/internal/observ"
)

// MergeTimings sums the per-file phase timings of a run, phase by phase in
// first-seen order. Results without timings are skipped.
func MergeTimings(results []FormatResult) observ.Report {
	var merged observ.Report
	index := make(map[string]int)
	for _, res := range results {
		if res.Timing == nil {
			continue
		}
		for _, p := range res.Timing.Phases {
			i, ok := index[p.Name]
			if !ok {
				i = len(merged.Phases)
				index[p.Name] = i
				merged.Phases = append(merged.Phases, observ.PhaseReport{Name: p.Name})
			}
			merged.Phases[i].DurationMS += p.DurationMS
		}
		merged.TotalMS += res.Timing.TotalMS
	}
	return merged
}
