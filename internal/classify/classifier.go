package classify

import (
	"path"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"git.home.luguber.info/inful/checkrunner/internal/config"
)

// Classifier evaluates the ordered rule list against repo-relative paths.
// It is pure: no filesystem access, no side effects, deterministic per path.
type Classifier struct {
	cfg   config.ClassifyConfig
	rules []rule
}

// rule pairs a label with its predicate. Rules are evaluated in slice order,
// first match wins; precedence lives in the ordering, not in the predicates.
type rule struct {
	label TargetLabel
	match func(f changedFile) bool
}

// changedFile caches the derived attributes of one path so predicates stay cheap.
type changedFile struct {
	path string // normalized repo-relative path, forward slashes
	base string
	ext  string // including leading dot, lowercased
}

// New builds a classifier from the layout conventions in cfg.
func New(cfg config.ClassifyConfig) *Classifier {
	c := &Classifier{cfg: cfg}
	c.rules = c.buildRules()
	return c
}

// Classify maps one path to exactly one target label.
func (c *Classifier) Classify(p string) TargetLabel {
	f := newChangedFile(p)
	for _, r := range c.rules {
		if r.match(f) {
			return r.label
		}
	}
	return Runtime
}

func newChangedFile(p string) changedFile {
	p = strings.TrimPrefix(path.Clean(strings.ReplaceAll(p, "\\", "/")), "./")
	return changedFile{
		path: p,
		base: path.Base(p),
		ext:  strings.ToLower(path.Ext(p)),
	}
}

// path predicate helpers

func isUnder(p, root string) bool {
	if root == "" {
		return false
	}
	if !strings.HasSuffix(root, "/") {
		root += "/"
	}
	return strings.HasPrefix(p, root)
}

func hasExt(f changedFile, exts []string) bool {
	for _, e := range exts {
		if f.ext == e {
			return true
		}
	}
	return false
}

func baseIn(f changedFile, names []string) bool {
	for _, n := range names {
		if f.base == n {
			return true
		}
	}
	return false
}

// matchAnyGlob reports whether any pattern in the externally supplied list
// matches the path. Patterns use doublestar syntax; malformed patterns never
// match rather than failing classification.
func matchAnyGlob(p string, patterns []string) bool {
	for _, pat := range patterns {
		if ok, err := doublestar.Match(pat, p); err == nil && ok {
			return true
		}
	}
	return false
}

// segmentsBelow returns the path segments underneath root, or nil when the
// path is not under root.
func segmentsBelow(p, root string) []string {
	if !strings.HasSuffix(root, "/") {
		root += "/"
	}
	rel, found := strings.CutPrefix(p, root)
	if !found || rel == "" {
		return nil
	}
	return strings.Split(rel, "/")
}
