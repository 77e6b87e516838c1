package classify

import (
	"log/slog"

	"git.home.luguber.info/inful/checkrunner/internal/util/sets"
)

// Aggregate maps a changed-file list to its deduplicated target set.
//
// An empty list is a fail-open signal: the diff was unavailable, so assume the
// worst case and return the full ten-label set. The result is therefore never
// empty. Input order does not affect the result.
func (c *Classifier) Aggregate(files []string) TargetSet {
	if len(files) == 0 {
		slog.Warn("No changed files resolved; assuming all targets are affected")
		return FullSet()
	}

	targets := sets.New[TargetLabel]()
	for _, f := range files {
		targets.Add(c.Classify(f))
	}
	return targets
}
