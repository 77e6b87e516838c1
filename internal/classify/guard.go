package classify

import (
	"fmt"
	"strings"

	runnererrors "git.home.luguber.info/inful/checkrunner/internal/errors"
)

// Guard rejects unsafe label mixes before any planning happens. Runtime-flag
// configuration must land in isolation so a flag flip can be reverted without
// dragging runtime changes along; mixing FLAG_CONFIG with RUNTIME in one change
// is therefore an error, never silently resolved.
//
// The conflict must be evidenced by the classified files themselves: a
// fail-open target set carries every label with no file behind it and passes,
// so an empty or unresolvable diff still plans against the full set. On
// conflict the returned error names the files classified as something other
// than FLAG_CONFIG, the ones the author must move to a separate change.
func (c *Classifier) Guard(targets TargetSet, files []string) error {
	if !targets.Has(FlagConfig) || !targets.Has(Runtime) {
		return nil
	}

	hasFlagConfig := false
	var offending []string
	for _, f := range files {
		if c.Classify(f) == FlagConfig {
			hasFlagConfig = true
		} else {
			offending = append(offending, f)
		}
	}
	if !hasFlagConfig || len(offending) == 0 {
		return nil
	}

	return runnererrors.ConflictError(fmt.Sprintf(
		"runtime-flag configuration must be changed in isolation; move these files to a separate change: %s",
		strings.Join(offending, ", "),
	)).WithContext("files", offending)
}
