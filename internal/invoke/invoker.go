package invoke

import (
	"context"
	"log/slog"
	"time"

	runnererrors "git.home.luguber.info/inful/checkrunner/internal/errors"
	"git.home.luguber.info/inful/checkrunner/internal/history"
	"git.home.luguber.info/inful/checkrunner/internal/logfields"
	"git.home.luguber.info/inful/checkrunner/internal/metrics"
	"git.home.luguber.info/inful/checkrunner/internal/plan"
	"git.home.luguber.info/inful/checkrunner/internal/runctx"
)

// Invoker executes a plan's actions strictly sequentially. Mandatory failures
// abort the run immediately with the action's own exit status; best-effort
// failures are logged and execution continues. There are no retries and no
// rollback: external state from earlier successful actions is left as-is.
type Invoker struct {
	exec  Executor
	creds CredentialProvider
	rec   metrics.Recorder
	hist  *history.Store // nil disables history

	runID  string
	runCtx runctx.Context
}

// Option configures an Invoker.
type Option func(*Invoker)

// WithMetrics forwards action and run observations to rec.
func WithMetrics(rec metrics.Recorder) Option {
	return func(i *Invoker) {
		if rec != nil {
			i.rec = rec
		}
	}
}

// WithHistory appends every action outcome to the store (best-effort).
func WithHistory(store *history.Store) Option {
	return func(i *Invoker) { i.hist = store }
}

// New creates an invoker for one run.
func New(runID string, runCtx runctx.Context, exec Executor, creds CredentialProvider, options ...Option) *Invoker {
	i := &Invoker{
		exec:   exec,
		creds:  creds,
		rec:    metrics.NoopRecorder{},
		runID:  runID,
		runCtx: runCtx,
	}
	for _, opt := range options {
		opt(i)
	}
	return i
}

// Execute runs the plan to completion or first mandatory failure.
func (i *Invoker) Execute(ctx context.Context, p plan.Plan) error {
	runStart := time.Now()

	for _, action := range p.Actions {
		if err := i.invokeOne(ctx, action); err != nil {
			i.rec.ObserveRunDuration(time.Since(runStart))
			i.rec.IncRunOutcome("failed")
			return err
		}
	}

	i.rec.ObserveRunDuration(time.Since(runStart))
	i.rec.IncRunOutcome("success")
	return nil
}

// invokeOne executes a single action under its failure policy. A nil return
// means the plan continues; a non-nil return aborts the run.
func (i *Invoker) invokeOne(ctx context.Context, action plan.Action) error {
	extraEnv := map[string]string{}

	if action.RequiresVisualDiffCreds {
		creds, ok := i.creds.VisualDiff()
		if !ok {
			slog.Info("Skipping action: visual-diff credentials not available",
				logfields.Action(action.Name))
			i.rec.IncActionResult(action.Name, metrics.ResultSkipped)
			i.record(action, "skipped", 0, 0, time.Now())
			return nil
		}
		for k, v := range creds {
			extraEnv[k] = v
		}
	}

	if action.RequiresProxy {
		// Scoped acquisition: the credential pair lives only in this action's
		// child environment and vanishes with the process on every exit path.
		if creds, ok := i.creds.Proxy(); ok {
			for k, v := range creds {
				extraEnv[k] = v
			}
		} else {
			slog.Warn("Proxy credentials not available; action may fall back to local browsers",
				logfields.Action(action.Name))
		}
	}

	slog.Info("Running action",
		logfields.Action(action.Name),
		logfields.Command(action.Command),
		logfields.Policy(string(action.Policy)))

	started := time.Now()
	exitCode, err := i.exec.Run(ctx, action.Command, extraEnv)
	elapsed := time.Since(started)

	i.rec.ObserveActionDuration(action.Name, elapsed)

	if err != nil {
		i.rec.IncActionResult(action.Name, metrics.ResultFailed)
		i.record(action, "failed", exitCode, elapsed, started)

		if action.Policy == plan.BestEffort {
			slog.Warn("Best-effort action failed; continuing",
				logfields.Action(action.Name),
				logfields.ExitCode(exitCode),
				logfields.Error(err))
			return nil
		}

		slog.Error("Action failed; aborting run",
			logfields.Action(action.Name),
			logfields.ExitCode(exitCode),
			logfields.DurationMS(float64(elapsed.Milliseconds())),
			logfields.Error(err))
		return runnererrors.ActionError(err, action.Name, exitCode)
	}

	i.rec.IncActionResult(action.Name, metrics.ResultSuccess)
	i.record(action, "success", 0, elapsed, started)

	slog.Info("Action completed",
		logfields.Action(action.Name),
		logfields.DurationMS(float64(elapsed.Milliseconds())))
	return nil
}

// record appends to the history store when configured. Never fatal.
func (i *Invoker) record(action plan.Action, status string, exitCode int, d time.Duration, started time.Time) {
	if i.hist == nil {
		return
	}
	rec := history.Record{
		RunID:     i.runID,
		Mode:      string(i.runCtx.Mode),
		Shard:     string(i.runCtx.Shard),
		Action:    action.Name,
		Status:    status,
		ExitCode:  exitCode,
		Duration:  d,
		StartedAt: started,
	}
	if err := i.hist.Append(context.Background(), rec); err != nil {
		slog.Warn("Failed to record action outcome", logfields.Action(action.Name), logfields.Error(err))
	}
}
