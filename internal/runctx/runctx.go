// Package runctx derives the immutable run context from ambient environment
// signals. Resolution happens once per run; everything downstream treats the
// resulting Context as read-only.
package runctx

import (
	"git.home.luguber.info/inful/checkrunner/internal/foundation"
)

// Mode is the top-level run regime.
type Mode string

const (
	// ModeLocal means no CI signal is present; the full pipeline runs in one
	// linear sequence.
	ModeLocal Mode = "local"
	// ModePush means already-reviewed code is landing on the main line; shards
	// run their complete unconditional action lists.
	ModePush Mode = "push"
	// ModePR means a proposed change is under review; shard plans are reduced
	// by the classified target set.
	ModePR Mode = "pr"
)

// Shard identifies which CI worker lane this process is.
type Shard string

const (
	ShardUnitTests        Shard = "unit_tests"
	ShardIntegrationTests Shard = "integration_tests"
	// ShardNone is the local case: both plan segments run in one process.
	ShardNone Shard = "none"
)

// Context is the resolved run context, immutable for the duration of a run.
type Context struct {
	Mode  Mode
	Shard Shard

	// Branch is the push branch (PUSH) or the merge target branch (PR). Gates
	// bundle-size persistence to the release branch.
	Branch string
	// CommitSHA identifies the change under test when running in CI.
	CommitSHA string
}

// Environment variables consumed by the resolver.
const (
	EnvCI           = "CI"
	EnvEventType    = "CI_EVENT_TYPE"
	EnvShard        = "CI_SHARD"
	EnvTargetBranch = "CI_TARGET_BRANCH"
	EnvCommitSHA    = "CI_COMMIT_SHA"
)

var shardNormalizer = foundation.NewNormalizer(map[string]Shard{
	string(ShardUnitTests):        ShardUnitTests,
	string(ShardIntegrationTests): ShardIntegrationTests,
}, ShardNone)

var modeNormalizer = foundation.NewNormalizer(map[string]Mode{
	"push":         ModePush,
	"pull_request": ModePR,
}, ModePR)

// LookupFunc abstracts os.LookupEnv so tests can inject fake environments.
type LookupFunc func(key string) (string, bool)

// Resolve derives the run context from the environment. Absence of the CI
// indicator means local; otherwise the triggering event type selects PUSH vs
// PR and the shard identifier selects the worker lane. An unrecognized event
// type resolves to PR, the safer (reduced but review-gated) regime.
func Resolve(lookup LookupFunc) Context {
	if v, ok := lookup(EnvCI); !ok || v == "" || v == "false" {
		return Context{Mode: ModeLocal, Shard: ShardNone}
	}

	event, _ := lookup(EnvEventType)
	shard, _ := lookup(EnvShard)
	branch, _ := lookup(EnvTargetBranch)
	sha, _ := lookup(EnvCommitSHA)

	return Context{
		Mode:      modeNormalizer.Normalize(event),
		Shard:     shardNormalizer.Normalize(shard),
		Branch:    branch,
		CommitSHA: sha,
	}
}
