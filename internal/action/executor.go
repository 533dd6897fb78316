// Package action turns a core.ActionRequest into a real side effect: a
// logged beep/notify no-op, or one of a prioritized list of screen-lock
// commands, the first of which succeeds. Grounded on
// original_source/src/platform/action_executor.cpp, carrying forward its
// ICommandRunner seam so tests never shell out for real.
package action

import (
	"fmt"
	"os/exec"

	"github.com/AutoCookies/sonarlock/internal/core"
)

// Result mirrors platform::ActionResult: whether the action was carried out,
// and a short human-readable description of what happened.
type Result struct {
	OK      bool
	Message string
}

// CommandRunner executes a shell command line and reports its exit status,
// mirroring ICommandRunner. Swapped out in tests for a fake that never
// touches the host.
type CommandRunner interface {
	Run(cmd string) error
}

// SystemCommandRunner runs a command through the shell, matching the
// reference's std::system(cmd) call.
type SystemCommandRunner struct{}

func (SystemCommandRunner) Run(cmd string) error {
	return exec.Command("sh", "-c", cmd).Run()
}

// lockCommands is the prioritized list of session-lock invocations tried in
// order until one succeeds, exactly as in the reference's LinuxActionExecutor.
var lockCommands = []string{
	"loginctl lock-session",
	"gnome-screensaver-command -l",
	"xdg-screensaver lock",
}

// Executor applies an ActionRequest against the host: it reports the
// notify/beep no-ops as already handled (the buffer's outbound tone is the
// beep; a notification surface is a collaborator concern SPEC_FULL.md
// leaves to the run command's logger), and tries the lock command list for
// ActionLockScreen.
type Executor struct {
	runner CommandRunner
}

func NewExecutor(runner CommandRunner) *Executor {
	if runner == nil {
		runner = SystemCommandRunner{}
	}
	return &Executor{runner: runner}
}

func (e *Executor) Execute(req core.ActionRequest) Result {
	switch req.Type {
	case core.ActionNone:
		return Result{OK: true, Message: "none"}
	case core.ActionBeep:
		return Result{OK: true, Message: "soft"}
	case core.ActionNotify:
		return Result{OK: true, Message: "notify"}
	case core.ActionLockScreen:
		for _, cmd := range lockCommands {
			if err := e.runner.Run(cmd); err == nil {
				return Result{OK: true, Message: fmt.Sprintf("lock-ok:%s", cmd)}
			}
		}
		return Result{OK: false, Message: "lock commands failed"}
	default:
		return Result{OK: false, Message: "unknown action"}
	}
}
