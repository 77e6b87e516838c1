package classify

import "strings"

// buildRules assembles the fixed-precedence rule list. Order matters: a path
// satisfying several predicates resolves to the earliest rule's label.
//
// The BUILD_SYSTEM rule is two independent disjuncts: the build-system-root
// clause carries exclusions for files that later rules claim (schema formats,
// flag configs, the dev dashboard, visual-diff drivers), while the
// owners-manifest clause matches on basename alone, anywhere in the tree. The
// owners clause must stay outside the exclusion chain: an owners manifest
// under an excluded subpath still triggers build-system checks.
func (c *Classifier) buildRules() []rule {
	cfg := c.cfg

	isFlagConfig := func(f changedFile) bool { return baseIn(f, cfg.FlagConfigFiles) }
	isDashboard := func(f changedFile) bool {
		return f.path == cfg.DashboardEntry || isUnder(f.path, cfg.DashboardIndexDir)
	}
	isVisualDiffFile := func(f changedFile) bool {
		return baseIn(f, cfg.VisualDiffDrivers) || isUnder(f.path, cfg.VisualTestsDir)
	}

	return []rule{
		{BuildSystem, func(f changedFile) bool {
			if f.base == cfg.OwnersFile {
				return true
			}
			return isUnder(f.path, cfg.BuildSystemRoot) &&
				!hasExt(f, cfg.SchemaExtensions) &&
				!isFlagConfig(f) &&
				!isDashboard(f) &&
				!isVisualDiffFile(f)
		}},
		{ValidatorWebUI, func(f changedFile) bool {
			return isUnder(f.path, cfg.ValidatorWebUIRoot)
		}},
		{Validator, func(f changedFile) bool {
			if isUnder(f.path, cfg.ValidatorRoot) {
				return true
			}
			return len(segmentsBelow(f.path, cfg.ExtensionsRoot)) >= 2 &&
				strings.HasPrefix(f.base, "validator-") &&
				hasExt(f, cfg.ValidatorOutputs)
		}},
		{Docs, func(f changedFile) bool {
			return hasExt(f, cfg.DocsExtensions) && !isUnder(f.path, cfg.ExamplesRoot)
		}},
		{FlagConfig, isFlagConfig},
		{UnitTest, func(f changedFile) bool {
			return matchAnyGlob(f.path, cfg.UnitTestGlobs)
		}},
		{DevDashboard, isDashboard},
		{IntegrationTest, func(f changedFile) bool {
			return matchAnyGlob(f.path, cfg.IntegrationTestGlobs)
		}},
		{VisualDiff, isVisualDiffFile},
	}
}
