package config

// applyDefaults fills every unset field with the conventional repository
// layout. The classifier treats these values as data, not policy: changing a
// root or filename here never changes rule precedence.
func applyDefaults(cfg *Config) {
	c := &cfg.Classify
	if c.BuildSystemRoot == "" {
		c.BuildSystemRoot = "build-system/"
	}
	if c.ValidatorRoot == "" {
		c.ValidatorRoot = "validator/"
	}
	if c.ValidatorWebUIRoot == "" {
		c.ValidatorWebUIRoot = "validator/webui/"
	}
	if c.ExtensionsRoot == "" {
		c.ExtensionsRoot = "extensions/"
	}
	if c.ExamplesRoot == "" {
		c.ExamplesRoot = "examples/"
	}
	if c.OwnersFile == "" {
		c.OwnersFile = "OWNERS.yaml"
	}
	if len(c.SchemaExtensions) == 0 {
		c.SchemaExtensions = []string{".proto"}
	}
	if len(c.DocsExtensions) == 0 {
		c.DocsExtensions = []string{".md"}
	}
	if len(c.ValidatorOutputs) == 0 {
		c.ValidatorOutputs = []string{".out", ".html", ".protoascii"}
	}
	if len(c.FlagConfigFiles) == 0 {
		c.FlagConfigFiles = []string{"prod-config.json", "canary-config.json"}
	}
	if c.DashboardEntry == "" {
		c.DashboardEntry = "build-system/app.js"
	}
	if c.DashboardIndexDir == "" {
		c.DashboardIndexDir = "build-system/app-index/"
	}
	if len(c.VisualDiffDrivers) == 0 {
		c.VisualDiffDrivers = []string{"visual-diff.js", "visual-tests.js"}
	}
	if c.VisualTestsDir == "" {
		c.VisualTestsDir = "examples/visual-tests/"
	}
	if len(c.UnitTestGlobs) == 0 {
		c.UnitTestGlobs = []string{"test/unit/**", "**/test/unit/**"}
	}
	if len(c.IntegrationTestGlobs) == 0 {
		c.IntegrationTestGlobs = []string{"test/integration/**", "**/test/integration/**"}
	}

	if cfg.Build.Tool == "" {
		cfg.Build.Tool = "gulp"
	}
	if cfg.Build.ReleaseBranch == "" {
		cfg.Build.ReleaseBranch = "main"
	}

	if cfg.Git.Remote == "" {
		cfg.Git.Remote = "origin"
	}
	if cfg.Git.BaseBranch == "" {
		cfg.Git.BaseBranch = "main"
	}
}
