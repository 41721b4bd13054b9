package match

import (
	"sort"

	"go.uber.org/zap"

	"github.com/driveline-group/showroom-cli/internal/catalog"
)

// Rank drops excluded outcomes, orders the rest by score descending with a
// stable first-seen tie-break, and truncates to topN (Config.TopN default
// when topN <= 0). An empty result is a valid no-match outcome, not an
// error.
func Rank(outcomes []Outcome, topN int) []Outcome {
	if topN <= 0 {
		topN = DefaultConfig().TopN
	}

	ranked := make([]Outcome, 0, len(outcomes))
	for _, o := range outcomes {
		if o.Excluded {
			continue
		}
		ranked = append(ranked, o)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	if len(ranked) > topN {
		ranked = ranked[:topN]
	}
	return ranked
}

// Run scores every vehicle in the snapshot and returns the ranked top N.
// The caller's slice is never reordered; the ranking is a fresh copy.
func Run(vehicles []catalog.Vehicle, pref Preference, cfg Config) []Outcome {
	outcomes := make([]Outcome, 0, len(vehicles))
	for i := range vehicles {
		outcomes = append(outcomes, Score(&vehicles[i], pref, cfg))
	}

	ranked := Rank(outcomes, cfg.TopN)
	zap.L().Debug("match: scored catalog",
		zap.Int("candidates", len(vehicles)),
		zap.Int("ranked", len(ranked)),
	)
	return ranked
}
