package runctx

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func fakeEnv(vars map[string]string) LookupFunc {
	return func(key string) (string, bool) {
		v, ok := vars[key]
		return v, ok
	}
}

func TestResolve_NoCISignalMeansLocal(t *testing.T) {
	cases := []map[string]string{
		{},
		{EnvCI: ""},
		{EnvCI: "false"},
	}
	for _, env := range cases {
		ctx := Resolve(fakeEnv(env))
		require.Equal(t, ModeLocal, ctx.Mode)
		require.Equal(t, ShardNone, ctx.Shard)
	}
}

func TestResolve_PushEvent(t *testing.T) {
	ctx := Resolve(fakeEnv(map[string]string{
		EnvCI:           "true",
		EnvEventType:    "push",
		EnvShard:        "unit_tests",
		EnvTargetBranch: "main",
		EnvCommitSHA:    "abc123",
	}))

	require.Equal(t, ModePush, ctx.Mode)
	require.Equal(t, ShardUnitTests, ctx.Shard)
	require.Equal(t, "main", ctx.Branch)
	require.Equal(t, "abc123", ctx.CommitSHA)
}

func TestResolve_PullRequestEvent(t *testing.T) {
	ctx := Resolve(fakeEnv(map[string]string{
		EnvCI:        "true",
		EnvEventType: "pull_request",
		EnvShard:     "integration_tests",
	}))

	require.Equal(t, ModePR, ctx.Mode)
	require.Equal(t, ShardIntegrationTests, ctx.Shard)
}

func TestResolve_UnknownEventDefaultsToPR(t *testing.T) {
	ctx := Resolve(fakeEnv(map[string]string{
		EnvCI:        "true",
		EnvEventType: "schedule",
	}))

	require.Equal(t, ModePR, ctx.Mode)
}

func TestResolve_UnknownShardDefaultsToNone(t *testing.T) {
	ctx := Resolve(fakeEnv(map[string]string{
		EnvCI:        "true",
		EnvEventType: "push",
		EnvShard:     "somewhere_else",
	}))

	require.Equal(t, ShardNone, ctx.Shard)
}

func TestResolve_EventTypeIsCaseInsensitive(t *testing.T) {
	ctx := Resolve(fakeEnv(map[string]string{
		EnvCI:        "true",
		EnvEventType: " PUSH ",
	}))

	require.Equal(t, ModePush, ctx.Mode)
}
