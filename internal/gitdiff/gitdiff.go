// Package gitdiff resolves the changed-file list and a change-size summary for
// the current checkout against its base branch. Callers treat an error or an
// empty list as "diff unavailable" and fail open to the full target set.
package gitdiff

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"

	"git.home.luguber.info/inful/checkrunner/internal/config"
)

// Summary is the human-readable change-size summary for the current change.
type Summary struct {
	Files      int
	Insertions int
	Deletions  int
}

func (s Summary) String() string {
	return fmt.Sprintf("%d files changed, %d insertions(+), %d deletions(-)",
		s.Files, s.Insertions, s.Deletions)
}

// Provider resolves changed files from a local git checkout.
type Provider struct {
	repoPath   string
	remote     string
	baseBranch string
}

// NewProvider creates a provider rooted at repoPath.
func NewProvider(repoPath string, cfg config.GitConfig) *Provider {
	return &Provider{
		repoPath:   repoPath,
		remote:     cfg.Remote,
		baseBranch: cfg.BaseBranch,
	}
}

// ChangedFiles returns the paths changed between the merge base of HEAD and
// the base branch, plus a change-size summary. Paths are repo-relative with
// forward slashes.
func (p *Provider) ChangedFiles(ctx context.Context) ([]string, Summary, error) {
	repo, err := git.PlainOpen(p.repoPath)
	if err != nil {
		return nil, Summary{}, fmt.Errorf("open repository: %w", err)
	}

	headRef, err := repo.Head()
	if err != nil {
		return nil, Summary{}, fmt.Errorf("resolve HEAD: %w", err)
	}
	headCommit, err := repo.CommitObject(headRef.Hash())
	if err != nil {
		return nil, Summary{}, fmt.Errorf("resolve HEAD commit: %w", err)
	}

	baseCommit, err := p.resolveBaseCommit(repo)
	if err != nil {
		return nil, Summary{}, err
	}

	// Diff against the merge base so commits already on the base branch do not
	// count as part of this change.
	from := baseCommit
	if bases, err := headCommit.MergeBase(baseCommit); err == nil && len(bases) > 0 {
		from = bases[0]
	} else if err != nil {
		slog.Debug("Merge-base resolution failed; diffing against branch tip", "error", err)
	}

	patch, err := from.PatchContext(ctx, headCommit)
	if err != nil {
		return nil, Summary{}, fmt.Errorf("compute diff: %w", err)
	}

	stats := patch.Stats()
	files := make([]string, 0, len(stats))
	summary := Summary{Files: len(stats)}
	for _, fs := range stats {
		files = append(files, fs.Name)
		summary.Insertions += fs.Addition
		summary.Deletions += fs.Deletion
	}

	return files, summary, nil
}

// resolveBaseCommit finds the base branch tip, preferring the remote-tracking
// ref over a local branch of the same name.
func (p *Provider) resolveBaseCommit(repo *git.Repository) (*object.Commit, error) {
	refNames := []plumbing.ReferenceName{
		plumbing.NewRemoteReferenceName(p.remote, p.baseBranch),
		plumbing.NewBranchReferenceName(p.baseBranch),
	}

	for _, name := range refNames {
		ref, err := repo.Reference(name, true)
		if err != nil {
			continue
		}
		commit, err := repo.CommitObject(ref.Hash())
		if err != nil {
			continue
		}
		return commit, nil
	}

	return nil, fmt.Errorf("base branch %q not found (remote %q)", p.baseBranch, p.remote)
}
