package classify

import (
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/checkrunner/internal/config"
)

func newTestClassifier(t *testing.T) *Classifier {
	t.Helper()
	return New(config.Default().Classify)
}

func TestClassify_SingleLabelPerPath(t *testing.T) {
	c := newTestClassifier(t)

	cases := []struct {
		path string
		want TargetLabel
	}{
		// Build-system root, minus the carved-out file kinds.
		{"build-system/tasks/lint.js", BuildSystem},
		{"build-system/package.json", BuildSystem},
		{"build-system/schema.proto", Runtime},
		{"build-system/app.js", DevDashboard},
		{"build-system/app-index/template.js", DevDashboard},
		{"build-system/tasks/visual-diff.js", VisualDiff},

		// Owners manifests match anywhere, even under excluded subpaths.
		{"OWNERS.yaml", BuildSystem},
		{"src/core/OWNERS.yaml", BuildSystem},
		{"build-system/app-index/OWNERS.yaml", BuildSystem},
		{"examples/visual-tests/OWNERS.yaml", BuildSystem},

		// Validator trees.
		{"validator/engine/validator.js", Validator},
		{"validator/webui/index.html", ValidatorWebUI},
		{"extensions/amp-foo/0.1/validator-amp-foo.out", Validator},
		{"extensions/amp-foo/0.1/validator-amp-foo.html", Validator},
		{"extensions/amp-foo/0.1/validator-amp-foo.protoascii", Validator},
		// Not deep enough below the extensions root.
		{"extensions/validator-top.out", Runtime},
		// Wrong basename prefix or extension.
		{"extensions/amp-foo/0.1/amp-foo.out", Runtime},
		{"extensions/amp-foo/0.1/validator-amp-foo.js", Runtime},

		// Docs everywhere except under examples.
		{"README.md", Docs},
		{"src/core/README.md", Docs},
		{"examples/article.md", Runtime},

		// Flag configs by basename anywhere.
		{"prod-config.json", FlagConfig},
		{"tools/prod-config.json", FlagConfig},
		{"canary-config.json", FlagConfig},

		// Test trees by glob.
		{"test/unit/core/test-foo.js", UnitTest},
		{"extensions/amp-foo/test/unit/test-foo.js", UnitTest},
		{"test/integration/test-bar.js", IntegrationTest},

		// Visual-diff drivers and test pages.
		{"visual-diff.js", VisualDiff},
		{"examples/visual-tests/page.html", VisualDiff},

		// Everything else is runtime code.
		{"src/core/dom.js", Runtime},
		{"package.json", Runtime},
		{"css/ampdoc.css", Runtime},
	}

	for _, tc := range cases {
		got := c.Classify(tc.path)
		if got != tc.want {
			t.Errorf("Classify(%q) = %s, want %s", tc.path, got, tc.want)
		}
	}
}

func TestClassify_NormalizesPathSeparatorsAndPrefixes(t *testing.T) {
	c := newTestClassifier(t)

	require.Equal(t, BuildSystem, c.Classify(`build-system\tasks\lint.js`))
	require.Equal(t, Docs, c.Classify("./README.md"))
	require.Equal(t, Validator, c.Classify("validator/./engine/validator.js"))
}

func TestClassify_PrecedenceIsFirstMatchWins(t *testing.T) {
	c := newTestClassifier(t)

	// A validator webui doc: the webui rule outranks the docs rule.
	require.Equal(t, ValidatorWebUI, c.Classify("validator/webui/README.md"))
	// A flag config inside the build-system tree is excluded from the
	// build-system clause and falls through to FLAG_CONFIG.
	require.Equal(t, FlagConfig, c.Classify("build-system/prod-config.json"))
	// A unit test under the validator root belongs to the validator.
	require.Equal(t, Validator, c.Classify("validator/test/unit/test-rules.js"))
}

func TestClassify_IsDeterministic(t *testing.T) {
	c := newTestClassifier(t)

	paths := []string{
		"build-system/app.js",
		"src/core/dom.js",
		"OWNERS.yaml",
		"examples/visual-tests/page.html",
	}
	for _, p := range paths {
		first := c.Classify(p)
		for i := 0; i < 10; i++ {
			require.Equal(t, first, c.Classify(p), "path %q", p)
		}
	}
}

func TestClassify_MalformedGlobNeverMatches(t *testing.T) {
	cfg := config.Default().Classify
	cfg.UnitTestGlobs = []string{"[invalid"}
	c := New(cfg)

	require.Equal(t, Runtime, c.Classify("test/unit/test-foo.js"))
}

func TestAggregate_DeduplicatesLabels(t *testing.T) {
	c := newTestClassifier(t)

	targets := c.Aggregate([]string{
		"src/core/dom.js",
		"src/core/layout.js",
		"README.md",
	})

	require.Equal(t, 2, targets.Len())
	require.True(t, targets.Has(Runtime))
	require.True(t, targets.Has(Docs))
}

func TestAggregate_EmptyDiffFailsOpenToFullSet(t *testing.T) {
	c := newTestClassifier(t)

	targets := c.Aggregate(nil)

	require.Equal(t, len(AllLabels()), targets.Len())
	for _, l := range AllLabels() {
		require.True(t, targets.Has(l), "label %s", l)
	}
}

func TestAggregate_OrderIndependent(t *testing.T) {
	c := newTestClassifier(t)

	a := c.Aggregate([]string{"README.md", "src/core/dom.js", "prod-config.json"})
	b := c.Aggregate([]string{"prod-config.json", "src/core/dom.js", "README.md"})

	require.Equal(t, FormatSet(a), FormatSet(b))
}

func TestAggregate_ChangeSetScenarios(t *testing.T) {
	c := newTestClassifier(t)

	cases := []struct {
		files []string
		want  string
	}{
		{[]string{"build-system/app.js"}, "DEV_DASHBOARD"},
		{[]string{"validator/webui/index.html"}, "VALIDATOR_WEBUI"},
		{[]string{"extensions/amp-foo/validator-amp-foo.html"}, "VALIDATOR"},
		{[]string{"prod-config.json", "src/foo.js"}, "FLAG_CONFIG, RUNTIME"},
		{[]string{"README.md"}, "DOCS"},
	}
	for _, tc := range cases {
		got := FormatSet(c.Aggregate(tc.files))
		if got != tc.want {
			t.Errorf("Aggregate(%v) = %q, want %q", tc.files, got, tc.want)
		}
	}
}

func TestGuard_AllowsFlagConfigInIsolation(t *testing.T) {
	c := newTestClassifier(t)
	files := []string{"prod-config.json", "canary-config.json"}

	require.NoError(t, c.Guard(c.Aggregate(files), files))
}

func TestGuard_AllowsRuntimeWithoutFlagConfig(t *testing.T) {
	c := newTestClassifier(t)
	files := []string{"src/core/dom.js", "README.md"}

	require.NoError(t, c.Guard(c.Aggregate(files), files))
}

func TestGuard_FailOpenFullSetPassesWithoutFileEvidence(t *testing.T) {
	c := newTestClassifier(t)

	// An empty diff aggregates to the full label set; with no files behind it
	// there is no conflict to reject.
	require.NoError(t, c.Guard(FullSet(), nil))
	require.NoError(t, c.Guard(c.Aggregate(nil), nil))
}

func TestGuard_SyntheticSetWithoutFlagConfigFilePasses(t *testing.T) {
	c := newTestClassifier(t)

	// Both labels present in the set but no flag-config file in the change.
	files := []string{"src/core/dom.js"}
	require.NoError(t, c.Guard(FullSet(), files))
}

func TestGuard_RejectsFlagConfigMixedWithRuntime(t *testing.T) {
	c := newTestClassifier(t)
	files := []string{"prod-config.json", "src/core/dom.js", "README.md"}

	err := c.Guard(c.Aggregate(files), files)
	require.Error(t, err)
	require.Contains(t, err.Error(), "src/core/dom.js")
	require.NotContains(t, err.Error(), "prod-config.json,")
}

func TestParseLabel(t *testing.T) {
	label, err := ParseLabel("RUNTIME")
	require.NoError(t, err)
	require.Equal(t, Runtime, label)

	_, err = ParseLabel("NOT_A_LABEL")
	require.Error(t, err)
}

func TestFormatSet_SortedAndStable(t *testing.T) {
	targets := New(config.Default().Classify).Aggregate([]string{
		"src/core/dom.js",
		"README.md",
		"build-system/tasks/lint.js",
	})

	require.Equal(t, "BUILD_SYSTEM, DOCS, RUNTIME", FormatSet(targets))
}
