// Package classify maps changed file paths to target labels. Classification is
// a total function over paths: every path resolves to exactly one label, with
// RUNTIME as the default when no rule matches. Rule precedence is fixed and
// first-match-wins; the ordered rule list in rules.go is the single source of
// truth for tie-breaking.
package classify

import (
	"sort"
	"strings"

	"git.home.luguber.info/inful/checkrunner/internal/foundation"
	"git.home.luguber.info/inful/checkrunner/internal/util/sets"
)

// TargetLabel is one of the fixed closed set of ten work categories a changed
// file can imply.
type TargetLabel string

const (
	BuildSystem     TargetLabel = "BUILD_SYSTEM"
	ValidatorWebUI  TargetLabel = "VALIDATOR_WEBUI"
	Validator       TargetLabel = "VALIDATOR"
	Runtime         TargetLabel = "RUNTIME"
	UnitTest        TargetLabel = "UNIT_TEST"
	DevDashboard    TargetLabel = "DEV_DASHBOARD"
	IntegrationTest TargetLabel = "INTEGRATION_TEST"
	Docs            TargetLabel = "DOCS"
	FlagConfig      TargetLabel = "FLAG_CONFIG"
	VisualDiff      TargetLabel = "VISUAL_DIFF"
)

// TargetSet is the deduplicated set of labels produced for one run.
type TargetSet = sets.Set[TargetLabel]

// AllLabels returns the full closed label set in display order.
func AllLabels() []TargetLabel {
	return []TargetLabel{
		BuildSystem,
		ValidatorWebUI,
		Validator,
		Runtime,
		UnitTest,
		DevDashboard,
		IntegrationTest,
		Docs,
		FlagConfig,
		VisualDiff,
	}
}

// FullSet returns a set containing all ten labels. Used as the fail-open
// default when the diff is unavailable.
func FullSet() TargetSet {
	return sets.New(AllLabels()...)
}

var labelNormalizer = foundation.NewNormalizer(map[string]TargetLabel{
	string(BuildSystem):     BuildSystem,
	string(ValidatorWebUI):  ValidatorWebUI,
	string(Validator):       Validator,
	string(Runtime):         Runtime,
	string(UnitTest):        UnitTest,
	string(DevDashboard):    DevDashboard,
	string(IntegrationTest): IntegrationTest,
	string(Docs):            Docs,
	string(FlagConfig):      FlagConfig,
	string(VisualDiff):      VisualDiff,
}, TargetLabel(""))

// ParseLabel converts a string to a TargetLabel, erroring on unknown values.
func ParseLabel(raw string) (TargetLabel, error) {
	return labelNormalizer.NormalizeWithError(raw)
}

// FormatSet renders a target set as a stable, sorted display string.
func FormatSet(targets TargetSet) string {
	names := make([]string, 0, targets.Len())
	for _, l := range targets.Values() {
		names = append(names, string(l))
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}
