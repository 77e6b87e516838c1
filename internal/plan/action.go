// Package plan turns a resolved run context and a classified target set into
// an ordered, conditional action list. Plan construction is pure and total: it
// never fails and causes no side effects; failures only happen at execution
// time in the invoker.
package plan

import (
	"strings"
)

// Policy is an action's failure policy.
type Policy string

const (
	// MustSucceed aborts the entire run on a non-zero outcome, propagating the
	// action's exit status unchanged. No rollback of earlier actions.
	MustSucceed Policy = "must_succeed"
	// BestEffort logs a failure and continues. Used for visual-diff service
	// interactions that must not block unrelated mandatory checks.
	BestEffort Policy = "best_effort"
)

// Action is one named unit of external work.
type Action struct {
	Name    string
	Command string
	Policy  Policy

	// RequiresProxy injects the network-proxy credential pair into the child
	// process environment for the duration of this action only.
	RequiresProxy bool
	// RequiresVisualDiffCreds marks actions that are skipped entirely, with a
	// notice, when the visual-diff service token is absent.
	RequiresVisualDiffCreds bool
}

// Plan is the ordered action sequence for one run.
type Plan struct {
	Actions []Action
}

// Names returns the action names in plan order, for display and tests.
func (p Plan) Names() []string {
	out := make([]string, len(p.Actions))
	for i, a := range p.Actions {
		out[i] = a.Name
	}
	return out
}

// Options are the pass-through parameters of the invocation surface.
type Options struct {
	// Files restricts file-scoped actions (lint, unit tests) to an explicit list.
	Files []string
	// NoBuild suppresses the build stages when running locally.
	NoBuild bool
}

// command assembles a task-runner invocation from the configured tool prefix.
func command(tool, task string, args ...string) string {
	parts := append([]string{tool, task}, args...)
	return strings.Join(parts, " ")
}

func filesArg(files []string) []string {
	if len(files) == 0 {
		return nil
	}
	return []string{"--files", strings.Join(files, ",")}
}
