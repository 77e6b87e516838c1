package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/checkrunner/internal/classify"
	"git.home.luguber.info/inful/checkrunner/internal/cli"
	runnererrors "git.home.luguber.info/inful/checkrunner/internal/errors"
)

var CLI struct {
	Config  string `short:"c" help:"Configuration file path" default:"checkrunner.yaml"`
	Verbose bool   `short:"v" help:"Enable verbose logging"`

	Run struct {
		Files   []string `short:"f" help:"Explicit file filter for test actions"`
		Nobuild bool     `help:"Skip build stages when running locally"`
		Repo    string   `short:"r" help:"Repository worktree path" default:"."`
	} `cmd:"" default:"withargs" help:"Classify the current change and run the relevant checks"`

	Targets struct {
		Repo string `short:"r" help:"Repository worktree path" default:"."`
		Only string `help:"Limit output to files classified with this target label"`
	} `cmd:"" help:"Print the targets affected by the current change without running anything"`

	Watch struct {
		Repo string `short:"r" help:"Repository worktree path" default:"."`
	} `cmd:"" help:"Watch the worktree and report affected targets on change"`

	History struct {
		Action string `arg:"" help:"Action name to show past outcomes for"`
		Limit  int    `help:"Maximum number of outcomes to show" default:"10"`
	} `cmd:"" help:"Show past outcomes of one action from the local run history"`
}

func main() {
	kctx := kong.Parse(&CLI)

	// Set up logging
	logLevel := slog.LevelInfo
	if CLI.Verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	adapter := runnererrors.NewCLIErrorAdapter(CLI.Verbose, logger)
	executor := cli.NewCommandExecutor()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	switch kctx.Command() {
	case "run":
		result := executor.ExecuteRun(ctx, cli.RunRequest{
			ConfigPath: CLI.Config,
			RepoPath:   CLI.Run.Repo,
			Files:      CLI.Run.Files,
			NoBuild:    CLI.Run.Nobuild,
		})
		if result.IsErr() {
			adapter.HandleError(result.UnwrapErr())
		}
		resp := result.Unwrap()
		slog.Info("Run completed",
			"run_id", resp.RunID,
			"mode", string(resp.Mode),
			"shard", string(resp.Shard),
			"actions", resp.ActionCount,
			"duration", resp.Duration.Round(1e6).String())

	case "targets":
		var only classify.TargetLabel
		if CLI.Targets.Only != "" {
			label, err := classify.ParseLabel(CLI.Targets.Only)
			if err != nil {
				adapter.HandleError(runnererrors.ValidationError(err.Error()))
			}
			only = label
		}
		result := executor.ExecuteTargets(ctx, cli.TargetsRequest{
			ConfigPath: CLI.Config,
			RepoPath:   CLI.Targets.Repo,
		})
		if result.IsErr() {
			adapter.HandleError(result.UnwrapErr())
		}
		resp := result.Unwrap()
		for _, f := range resp.Files {
			if only != "" && resp.Labels[f] != only {
				continue
			}
			slog.Info("Classified file", "path", f, "label", string(resp.Labels[f]))
		}
		slog.Info("Affected targets", "targets", classify.FormatSet(resp.Targets))

	case "history <action>":
		result := executor.ExecuteHistory(ctx, cli.HistoryRequest{
			ConfigPath: CLI.Config,
			Action:     CLI.History.Action,
			Limit:      CLI.History.Limit,
		})
		if result.IsErr() {
			adapter.HandleError(result.UnwrapErr())
		}
		for _, r := range result.Unwrap().Records {
			slog.Info("Past outcome",
				"run_id", r.RunID,
				"mode", r.Mode,
				"shard", r.Shard,
				"status", r.Status,
				"exit_code", r.ExitCode,
				"duration", r.Duration.String(),
				"started_at", r.StartedAt.Format(time.RFC3339))
		}

	case "watch":
		result := executor.ExecuteWatch(ctx, cli.WatchRequest{
			ConfigPath: CLI.Config,
			RepoPath:   CLI.Watch.Repo,
		})
		if result.IsErr() {
			adapter.HandleError(result.UnwrapErr())
		}
	}
}
