package plan

import (
	"git.home.luguber.info/inful/checkrunner/internal/classify"
	"git.home.luguber.info/inful/checkrunner/internal/runctx"
)

// predicate decides whether a table row contributes its actions to the plan.
// Predicates are pure functions of the run context and the target set.
type predicate func(ctx runctx.Context, targets classify.TargetSet) bool

func always(runctx.Context, classify.TargetSet) bool { return true }

// anyOf is satisfied when at least one of the named labels is present.
func anyOf(labels ...classify.TargetLabel) predicate {
	return func(_ runctx.Context, targets classify.TargetSet) bool {
		return targets.HasAny(labels...)
	}
}

// noneOf is satisfied when none of the named labels is present.
func noneOf(labels ...classify.TargetLabel) predicate {
	return func(_ runctx.Context, targets classify.TargetSet) bool {
		return !targets.HasAny(labels...)
	}
}

// and is satisfied when all given predicates are.
func and(preds ...predicate) predicate {
	return func(ctx runctx.Context, targets classify.TargetSet) bool {
		for _, p := range preds {
			if !p(ctx, targets) {
				return false
			}
		}
		return true
	}
}

// onBranch is satisfied when the run targets the named branch. Gates
// bundle-size persistence to the release branch on pushes.
func onBranch(branch string) predicate {
	return func(ctx runctx.Context, _ classify.TargetSet) bool {
		return branch != "" && ctx.Branch == branch
	}
}
