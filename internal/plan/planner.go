package plan

import (
	"git.home.luguber.info/inful/checkrunner/internal/classify"
	"git.home.luguber.info/inful/checkrunner/internal/config"
	"git.home.luguber.info/inful/checkrunner/internal/runctx"
)

// Planner builds action plans from the declarative table. It carries only the
// configuration the table needs: the task-runner prefix and the release branch
// gating bundle-size persistence.
type Planner struct {
	tool          string
	releaseBranch string
}

// NewPlanner creates a planner from build configuration.
func NewPlanner(cfg config.BuildConfig) *Planner {
	return &Planner{
		tool:          cfg.Tool,
		releaseBranch: cfg.ReleaseBranch,
	}
}

// Build constructs the ordered action plan for one run. Construction is pure:
// the same (context, targets, options) always yields the same plan, and no
// side effects occur until the invoker executes it.
//
// A CI run with no shard identifier gets both shard segments in table order,
// matching the local single-process behavior.
func (p *Planner) Build(ctx runctx.Context, targets classify.TargetSet, opts Options) Plan {
	var actions []Action
	for _, r := range p.table(opts) {
		if r.mode != ctx.Mode {
			continue
		}
		if ctx.Mode != runctx.ModeLocal && ctx.Shard != runctx.ShardNone && r.shard != ctx.Shard {
			continue
		}
		if opts.NoBuild && r.skipOnNoBuild {
			continue
		}
		if r.when != nil && !r.when(ctx, targets) {
			continue
		}
		actions = append(actions, r.actions...)
	}
	return Plan{Actions: actions}
}
