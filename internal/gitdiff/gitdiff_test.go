package gitdiff

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/checkrunner/internal/config"
)

func commitFiles(t *testing.T, wt *git.Worktree, dir, message string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		full := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, []byte(content), 0o644))
		_, err := wt.Add(name)
		require.NoError(t, err)
	}
	_, err := wt.Commit(message, &git.CommitOptions{
		Author: &object.Signature{Name: "tester", Email: "tester@example.com", When: time.Now()},
	})
	require.NoError(t, err)
}

// newTestRepo creates a repo with one commit on master and a feature branch
// checked out on top of it.
func newTestRepo(t *testing.T) (string, *git.Worktree) {
	t.Helper()
	dir := t.TempDir()

	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)
	wt, err := repo.Worktree()
	require.NoError(t, err)

	commitFiles(t, wt, dir, "initial", map[string]string{
		"README.md":       "# repo\n",
		"src/core/dom.js": "export const dom = 1;\n",
	})

	require.NoError(t, wt.Checkout(&git.CheckoutOptions{
		Branch: plumbing.NewBranchReferenceName("feature"),
		Create: true,
	}))

	return dir, wt
}

func TestChangedFiles_DiffAgainstBaseBranch(t *testing.T) {
	dir, wt := newTestRepo(t)

	commitFiles(t, wt, dir, "change runtime and docs", map[string]string{
		"src/core/dom.js":  "export const dom = 2;\n",
		"src/core/walk.md": "walkthrough\n",
	})

	provider := NewProvider(dir, config.GitConfig{Remote: "origin", BaseBranch: "master"})
	files, summary, err := provider.ChangedFiles(context.Background())
	require.NoError(t, err)

	require.ElementsMatch(t, []string{"src/core/dom.js", "src/core/walk.md"}, files)
	require.Equal(t, 2, summary.Files)
	require.Greater(t, summary.Insertions, 0)
}

func TestChangedFiles_NoCommitsOnBranchMeansEmptyDiff(t *testing.T) {
	dir, _ := newTestRepo(t)

	provider := NewProvider(dir, config.GitConfig{Remote: "origin", BaseBranch: "master"})
	files, summary, err := provider.ChangedFiles(context.Background())
	require.NoError(t, err)

	require.Empty(t, files)
	require.Equal(t, 0, summary.Files)
}

func TestChangedFiles_NotARepository(t *testing.T) {
	provider := NewProvider(t.TempDir(), config.GitConfig{Remote: "origin", BaseBranch: "master"})

	_, _, err := provider.ChangedFiles(context.Background())
	require.Error(t, err)
}

func TestChangedFiles_MissingBaseBranch(t *testing.T) {
	dir, _ := newTestRepo(t)

	provider := NewProvider(dir, config.GitConfig{Remote: "origin", BaseBranch: "nonexistent"})
	_, _, err := provider.ChangedFiles(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), "nonexistent")
}

func TestSummary_String(t *testing.T) {
	s := Summary{Files: 3, Insertions: 10, Deletions: 2}
	require.Equal(t, "3 files changed, 10 insertions(+), 2 deletions(-)", s.String())
}
