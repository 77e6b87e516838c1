package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestRunnerError_ErrorStringIncludesCategoryAndCause(t *testing.T) {
	err := Wrap(fmt.Errorf("boom"), CategoryGit, SeverityError, "resolve HEAD")

	want := "git (error): resolve HEAD: boom"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestRunnerError_Unwrap(t *testing.T) {
	cause := fmt.Errorf("boom")
	err := Wrap(cause, CategoryRuntime, SeverityFatal, "wrapped")

	if !errors.Is(err, cause) {
		t.Error("expected errors.Is to find the cause")
	}
}

func TestActionError_PreservesExitStatus(t *testing.T) {
	err := ActionError(fmt.Errorf("exit status 3"), "unit-tests", 3)

	if err.ExitCode != 3 {
		t.Errorf("ExitCode = %d, want 3", err.ExitCode)
	}
	if err.Category != CategoryAction {
		t.Errorf("Category = %s, want %s", err.Category, CategoryAction)
	}
}

func TestActionError_ZeroExitCodeBecomesOne(t *testing.T) {
	err := ActionError(fmt.Errorf("spawn failure"), "lint", 0)

	if err.ExitCode != 1 {
		t.Errorf("ExitCode = %d, want 1", err.ExitCode)
	}
}

func TestWithContext(t *testing.T) {
	err := ConflictError("conflict").WithContext("files", []string{"a.js"})

	if err.Context["files"] == nil {
		t.Error("expected context to carry the files key")
	}
}

func TestValidationError(t *testing.T) {
	err := ValidationError("unknown target label")

	if err.Category != CategoryValidation {
		t.Errorf("Category = %s, want %s", err.Category, CategoryValidation)
	}
	if err.ExitCode != 1 {
		t.Errorf("ExitCode = %d, want 1", err.ExitCode)
	}
}

func TestExitCodeFor(t *testing.T) {
	adapter := NewCLIErrorAdapter(false, nil)

	cases := []struct {
		name string
		err  error
		want int
	}{
		{"nil error", nil, 0},
		{"plain error", fmt.Errorf("boom"), 1},
		{"validation error", ValidationError("bad"), 1},
		{"conflict error", ConflictError("mixed"), 1},
		{"action error keeps status", ActionError(fmt.Errorf("x"), "build", 7), 7},
		{"zeroed runner error", &RunnerError{Category: CategoryInternal}, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := adapter.ExitCodeFor(tc.err); got != tc.want {
				t.Errorf("ExitCodeFor = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestFormatError_VerboseShowsFullChain(t *testing.T) {
	err := Wrap(fmt.Errorf("boom"), CategoryGit, SeverityError, "resolve HEAD")

	terse := NewCLIErrorAdapter(false, nil).FormatError(err)
	verbose := NewCLIErrorAdapter(true, nil).FormatError(err)

	if terse == verbose {
		t.Error("expected verbose formatting to differ from terse")
	}
	if verbose != err.Error() {
		t.Errorf("verbose = %q, want %q", verbose, err.Error())
	}
}

func TestFormatError_UserFacingCategoriesShowBareMessage(t *testing.T) {
	adapter := NewCLIErrorAdapter(false, nil)

	got := adapter.FormatError(ConflictError("move these files"))
	if got != "move these files" {
		t.Errorf("FormatError = %q, want bare message", got)
	}
}
