package plan

import (
	"git.home.luguber.info/inful/checkrunner/internal/classify"
	"git.home.luguber.info/inful/checkrunner/internal/runctx"
)

// row is one entry of the declarative plan table: in a given regime and shard,
// when the predicate holds, the row's actions join the plan in table order.
// The table itself is the unit under test for planning behavior.
type row struct {
	mode  runctx.Mode
	shard runctx.Shard
	when  predicate
	// skipOnNoBuild marks local build stages suppressed by --nobuild.
	skipOnNoBuild bool
	actions       []Action
}

// buildBlock is the label set that forces a full build on a PR integration
// shard: anything that can change runtime behavior or its visual baseline.
var buildBlock = []classify.TargetLabel{
	classify.IntegrationTest,
	classify.Runtime,
	classify.VisualDiff,
	classify.FlagConfig,
	classify.BuildSystem,
}

// testBlock is the label set that requires integration tests to run on a PR.
var testBlock = []classify.TargetLabel{
	classify.IntegrationTest,
	classify.Runtime,
	classify.BuildSystem,
}

// checkedBuild is the label set that requires a clean build plus static checks
// on a PR unit-test shard.
var checkedBuild = []classify.TargetLabel{
	classify.Runtime,
	classify.UnitTest,
	classify.IntegrationTest,
	classify.BuildSystem,
}

// table returns the full plan table. Row order within one (mode, shard) pair
// is execution order: cheap checks come before expensive builds so a doomed
// run fails as early as possible.
func (p *Planner) table(opts Options) []row {
	t := p.tool

	mustSucceed := func(name, task string, args ...string) Action {
		return Action{Name: name, Command: command(t, task, args...), Policy: MustSucceed}
	}
	visualDiff := func(name string, args ...string) Action {
		return Action{
			Name:                    name,
			Command:                 command(t, "visual-diff", args...),
			Policy:                  BestEffort,
			RequiresVisualDiffCreds: true,
		}
	}
	integration := func(name string, args ...string) Action {
		a := mustSucceed(name, "test", append([]string{"--integration"}, args...)...)
		a.RequiresProxy = true
		return a
	}

	manifestSync := mustSucceed("package-manifest-sync", "check-exact-versions")
	buildSystemTests := mustSucceed("build-system-tests", "test-build-system")
	lint := mustSucceed("lint", "lint", filesArg(opts.Files)...)
	depCheck := mustSucceed("dep-check", "dep-check")
	checkTypes := mustSucceed("check-types", "check-types")
	docLinkCheck := mustSucceed("doc-link-check", "check-links", filesArg(opts.Files)...)
	jsonCheck := mustSucceed("json-check", "check-json")
	clean := mustSucceed("clean", "clean")
	build := mustSucceed("build", "build")
	cssBuild := mustSucceed("css-build", "css")
	minifiedBuild := mustSucceed("minified-build", "dist", "--fortesting")
	bundleSizeCheck := mustSucceed("bundle-size-check", "bundle-size")
	bundleSizeStore := mustSucceed("bundle-size-store", "bundle-size", "--store")
	presubmit := mustSucceed("presubmit", "presubmit")
	unitTests := mustSucceed("unit-tests", "test", append([]string{"--unit"}, filesArg(opts.Files)...)...)
	unitTestsLocal := mustSucceed("unit-tests-local-changes", "test", "--unit", "--local_changes")
	devDashboardTests := mustSucceed("dev-dashboard-tests", "test", "--dev_dashboard")
	cleanCompiled := mustSucceed("clean-compiled-output", "clean-compiled")
	validatorBuild := mustSucceed("validator-build", "validator")
	validatorWebUIBuild := mustSucceed("validator-webui-build", "validator-webui")

	integrationTests := integration("integration-tests")
	integrationCoverage := integration("integration-tests-coverage", "--coverage")
	integrationCompiled := integration("integration-tests-compiled", "--compiled")
	integrationSinglePass := integration("integration-tests-single-pass", "--compiled", "--single_pass")

	local := runctx.ModeLocal
	push := runctx.ModePush
	pr := runctx.ModePR
	unit := runctx.ShardUnitTests
	integ := runctx.ShardIntegrationTests
	none := runctx.ShardNone

	return []row{
		// LOCAL: one linear pipeline, cheap checks first.
		{local, none, always, false, []Action{buildSystemTests, lint, depCheck, checkTypes, docLinkCheck}},
		{local, none, always, true, []Action{clean, build, minifiedBuild, bundleSizeCheck}},
		{local, none, always, false, []Action{
			presubmit,
			visualDiff("visual-diff-submit"),
			visualDiff("visual-diff-verify", "--verify"),
			unitTests,
			integrationTests,
			validatorWebUIBuild,
			validatorBuild,
		}},

		// PUSH: full coverage per shard, no conditions beyond the branch gate.
		{push, unit, always, false, []Action{
			manifestSync,
			buildSystemTests,
			clean,
			build,
			visualDiff("visual-diff-baseline", "--master"),
			lint,
			jsonCheck,
			depCheck,
			checkTypes,
			unitTests,
			devDashboardTests,
			integrationCoverage,
			visualDiff("visual-diff-verify", "--verify"),
			validatorWebUIBuild,
			validatorBuild,
		}},
		{push, integ, always, false, []Action{manifestSync, clean, minifiedBuild}},
		{push, integ, onBranch(p.releaseBranch), false, []Action{bundleSizeStore}},
		{push, integ, always, false, []Action{
			presubmit,
			integrationCompiled,
			cleanCompiled,
			integrationSinglePass,
			cleanCompiled,
		}},

		// PR unit-test shard: reduced by target set.
		{pr, unit, always, false, []Action{manifestSync}},
		{pr, unit, anyOf(classify.BuildSystem, classify.Runtime), false, []Action{buildSystemTests}},
		{pr, unit, always, false, []Action{lint}},
		{pr, unit, anyOf(classify.Docs), false, []Action{docLinkCheck}},
		{pr, unit, anyOf(classify.DevDashboard), false, []Action{devDashboardTests}},
		{pr, unit, anyOf(checkedBuild...), false, []Action{clean, build, cssBuild, jsonCheck, depCheck, checkTypes}},
		{pr, unit, anyOf(classify.Runtime, classify.BuildSystem), false, []Action{unitTestsLocal, unitTests}},
		{pr, unit, and(anyOf(classify.UnitTest), noneOf(classify.Runtime, classify.BuildSystem)), false, []Action{unitTestsLocal}},

		// PR integration-test shard: reduced by target set.
		{pr, integ, always, false, []Action{manifestSync}},
		{pr, integ, anyOf(buildBlock...), false, []Action{clean, build}},
		{pr, integ, anyOf(classify.Runtime), false, []Action{minifiedBuild, bundleSizeCheck}},
		{pr, integ, anyOf(buildBlock...), false, []Action{visualDiff("visual-diff-submit")}},
		// Placeholder submission keeps the required external status check green
		// when nothing visual can have changed.
		{pr, integ, noneOf(buildBlock...), false, []Action{visualDiff("visual-diff-blank", "--empty")}},
		{pr, integ, always, false, []Action{presubmit}},
		{pr, integ, anyOf(testBlock...), false, []Action{integrationCoverage, integrationTests}},
		{pr, integ, anyOf(buildBlock...), false, []Action{visualDiff("visual-diff-verify", "--verify")}},
		{pr, integ, anyOf(classify.ValidatorWebUI), false, []Action{validatorWebUIBuild}},
		{pr, integ, anyOf(classify.Validator), false, []Action{validatorBuild}},
		{pr, integ, anyOf(testBlock...), false, []Action{integrationSinglePass}},
	}
}
