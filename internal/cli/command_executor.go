// Package cli provides a service-oriented interface between the kong command
// surface and the classification/planning/invocation core.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/checkrunner/internal/classify"
	"git.home.luguber.info/inful/checkrunner/internal/config"
	runnererrors "git.home.luguber.info/inful/checkrunner/internal/errors"
	"git.home.luguber.info/inful/checkrunner/internal/foundation"
	"git.home.luguber.info/inful/checkrunner/internal/gitdiff"
	"git.home.luguber.info/inful/checkrunner/internal/history"
	"git.home.luguber.info/inful/checkrunner/internal/invoke"
	"git.home.luguber.info/inful/checkrunner/internal/logfields"
	"git.home.luguber.info/inful/checkrunner/internal/metrics"
	"git.home.luguber.info/inful/checkrunner/internal/observability"
	"git.home.luguber.info/inful/checkrunner/internal/plan"
	"git.home.luguber.info/inful/checkrunner/internal/runctx"
	"git.home.luguber.info/inful/checkrunner/internal/watch"
)

// CommandExecutor provides a service-oriented interface for CLI command execution
type CommandExecutor interface {
	ExecuteRun(ctx context.Context, req RunRequest) foundation.Result[RunResponse, error]
	ExecuteTargets(ctx context.Context, req TargetsRequest) foundation.Result[TargetsResponse, error]
	ExecuteWatch(ctx context.Context, req WatchRequest) foundation.Result[WatchResponse, error]
	ExecuteHistory(ctx context.Context, req HistoryRequest) foundation.Result[HistoryResponse, error]
}

// Request/Response types for each command

type RunRequest struct {
	ConfigPath string
	RepoPath   string
	Files      []string
	NoBuild    bool
}

type RunResponse struct {
	RunID       string
	Mode        runctx.Mode
	Shard       runctx.Shard
	Targets     classify.TargetSet
	ActionCount int
	Duration    time.Duration
}

type TargetsRequest struct {
	ConfigPath string
	RepoPath   string
}

type TargetsResponse struct {
	Files   []string
	Labels  map[string]classify.TargetLabel
	Targets classify.TargetSet
}

type WatchRequest struct {
	ConfigPath string
	RepoPath   string
}

type WatchResponse struct {
	Stopped bool
}

type HistoryRequest struct {
	ConfigPath string
	Action     string
	Limit      int
}

type HistoryResponse struct {
	Records []history.Record
}

// DefaultCommandExecutor implements the CommandExecutor interface
type DefaultCommandExecutor struct {
	lookup   runctx.LookupFunc
	executor invoke.Executor
}

// NewCommandExecutor creates a new command executor service backed by the
// ambient environment and a shell executor.
func NewCommandExecutor() *DefaultCommandExecutor {
	return &DefaultCommandExecutor{
		lookup:   os.LookupEnv,
		executor: &invoke.ShellExecutor{},
	}
}

// WithLookup allows injecting a fake environment (for testing).
func (e *DefaultCommandExecutor) WithLookup(lookup runctx.LookupFunc) *DefaultCommandExecutor {
	e.lookup = lookup
	return e
}

// WithExecutor allows injecting a custom command executor (for testing).
func (e *DefaultCommandExecutor) WithExecutor(exec invoke.Executor) *DefaultCommandExecutor {
	e.executor = exec
	return e
}

// ExecuteRun performs a full check run: resolve context, classify the diff,
// guard, plan, and invoke.
func (e *DefaultCommandExecutor) ExecuteRun(ctx context.Context, req RunRequest) foundation.Result[RunResponse, error] {
	started := time.Now()

	cfg, err := config.Load(req.ConfigPath)
	if err != nil {
		return foundation.Err[RunResponse](fmt.Errorf("load config: %w", err))
	}

	rc := runctx.Resolve(e.lookup)
	if rc.Mode == runctx.ModeLocal {
		config.LoadEnvFiles()
	}

	runID := uuid.NewString()
	ctx = observability.WithRunID(ctx, runID)
	ctx = observability.WithMode(ctx, string(rc.Mode))
	ctx = observability.WithShard(ctx, string(rc.Shard))

	observability.InfoContext(ctx, "Starting check run")

	repoPath := req.RepoPath
	if repoPath == "" {
		repoPath = "."
	}

	classifier := classify.New(cfg.Classify)
	targets, err := e.resolveTargets(ctx, cfg, classifier, rc, repoPath)
	if err != nil {
		return foundation.Err[RunResponse](err)
	}

	planner := plan.NewPlanner(cfg.Build)
	actionPlan := planner.Build(rc, targets, plan.Options{
		Files:   req.Files,
		NoBuild: req.NoBuild,
	})
	observability.InfoContext(ctx, "Plan constructed",
		slog.Int("actions", len(actionPlan.Actions)),
		slog.String("targets", classify.FormatSet(targets)))

	recorder := metrics.NewPrometheusRecorder(nil)

	var store *history.Store
	if cfg.History.Path != "" {
		store, err = history.Open(cfg.History.Path)
		if err != nil {
			slog.Warn("Run history disabled: store unavailable", logfields.Error(err))
			store = nil
		} else {
			defer store.Close()
		}
	}

	creds := &invoke.EnvCredentialProvider{Lookup: e.lookup}
	invoker := invoke.New(runID, rc, e.executor, creds,
		invoke.WithMetrics(recorder),
		invoke.WithHistory(store))

	runErr := invoker.Execute(ctx, actionPlan)

	if cfg.Metrics.TextfilePath != "" {
		if err := recorder.WriteTextfile(cfg.Metrics.TextfilePath); err != nil {
			slog.Warn("Failed to write metrics textfile", logfields.Error(err))
		}
	}

	if runErr != nil {
		return foundation.Err[RunResponse](runErr)
	}

	return foundation.Ok[RunResponse, error](RunResponse{
		RunID:       runID,
		Mode:        rc.Mode,
		Shard:       rc.Shard,
		Targets:     targets,
		ActionCount: len(actionPlan.Actions),
		Duration:    time.Since(started),
	})
}

// resolveTargets classifies the current diff and applies the conflict guard.
// PUSH and LOCAL regimes run unconditional plans, so they plan against the
// full label set and skip diff resolution entirely.
func (e *DefaultCommandExecutor) resolveTargets(ctx context.Context, cfg *config.Config, classifier *classify.Classifier, rc runctx.Context, repoPath string) (classify.TargetSet, error) {
	if rc.Mode != runctx.ModePR {
		return classify.FullSet(), nil
	}

	provider := gitdiff.NewProvider(repoPath, cfg.Git)
	files, summary, err := provider.ChangedFiles(ctx)
	if err != nil {
		// Diff unavailable: fail open, the aggregator assumes the worst case.
		slog.Warn("Changed-file resolution failed; assuming all targets", logfields.Error(err))
		files = nil
	} else {
		observability.InfoContext(ctx, "Resolved change", slog.String("summary", summary.String()))
	}

	targets := classifier.Aggregate(files)
	if err := classifier.Guard(targets, files); err != nil {
		return nil, err
	}
	return targets, nil
}

// ExecuteTargets classifies the current diff without executing anything.
func (e *DefaultCommandExecutor) ExecuteTargets(ctx context.Context, req TargetsRequest) foundation.Result[TargetsResponse, error] {
	cfg, err := config.Load(req.ConfigPath)
	if err != nil {
		return foundation.Err[TargetsResponse](fmt.Errorf("load config: %w", err))
	}

	repoPath := req.RepoPath
	if repoPath == "" {
		repoPath = "."
	}

	provider := gitdiff.NewProvider(repoPath, cfg.Git)
	files, summary, err := provider.ChangedFiles(ctx)
	if err != nil {
		slog.Warn("Changed-file resolution failed; assuming all targets", logfields.Error(err))
		files = nil
	} else {
		slog.Info("Resolved change", slog.String("summary", summary.String()))
	}

	classifier := classify.New(cfg.Classify)
	labels := make(map[string]classify.TargetLabel, len(files))
	for _, f := range files {
		labels[f] = classifier.Classify(f)
	}

	return foundation.Ok[TargetsResponse, error](TargetsResponse{
		Files:   files,
		Labels:  labels,
		Targets: classifier.Aggregate(files),
	})
}

// ExecuteHistory reads past outcomes of one action from the local run history,
// newest first.
func (e *DefaultCommandExecutor) ExecuteHistory(ctx context.Context, req HistoryRequest) foundation.Result[HistoryResponse, error] {
	cfg, err := config.Load(req.ConfigPath)
	if err != nil {
		return foundation.Err[HistoryResponse](fmt.Errorf("load config: %w", err))
	}
	if cfg.History.Path == "" {
		return foundation.Err[HistoryResponse, error](runnererrors.ValidationError(
			"run history is not configured; set history.path in the config file"))
	}

	store, err := history.Open(cfg.History.Path)
	if err != nil {
		return foundation.Err[HistoryResponse](fmt.Errorf("open history store: %w", err))
	}
	defer store.Close()

	limit := req.Limit
	if limit <= 0 {
		limit = 10
	}
	records, err := store.ByAction(ctx, req.Action, limit)
	if err != nil {
		return foundation.Err[HistoryResponse](err)
	}

	return foundation.Ok[HistoryResponse, error](HistoryResponse{Records: records})
}

// ExecuteWatch runs the local watch loop until the context is cancelled.
func (e *DefaultCommandExecutor) ExecuteWatch(ctx context.Context, req WatchRequest) foundation.Result[WatchResponse, error] {
	cfg, err := config.Load(req.ConfigPath)
	if err != nil {
		return foundation.Err[WatchResponse](fmt.Errorf("load config: %w", err))
	}

	repoPath := req.RepoPath
	if repoPath == "" {
		repoPath = "."
	}

	classifier := classify.New(cfg.Classify)
	provider := gitdiff.NewProvider(repoPath, cfg.Git)
	resolve := func(ctx context.Context) ([]string, error) {
		files, _, err := provider.ChangedFiles(ctx)
		return files, err
	}

	watcher, err := watch.New(repoPath, classifier, resolve)
	if err != nil {
		return foundation.Err[WatchResponse](err)
	}

	if err := watcher.Run(ctx); err != nil {
		return foundation.Err[WatchResponse](err)
	}

	return foundation.Ok[WatchResponse, error](WatchResponse{Stopped: true})
}
