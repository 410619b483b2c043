package dexopt

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/hashicorp/go-hclog"
)

// ExitError carries the optimizer's verbatim exit status. The status is
// authoritative and is propagated unchanged, never reinterpreted.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("dexopt exited with status %d", e.Code)
}

// Runner invokes the external optimizer once per unit of work.
type Runner interface {
	Run(input, output, flags string) error
}

// ExecRunner spawns the resolved dexopt binary in --preopt mode and
// blocks until it exits. Stdout and stderr are inherited so optimizer
// diagnostics reach the build log directly.
type ExecRunner struct {
	DexoptPath string
	Logger     hclog.Logger
}

func (r *ExecRunner) Run(input, output, flags string) error {
	cmd := exec.Command(r.DexoptPath, "--preopt", input, output, flags)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	r.Logger.Info("🚀 Invoking optimizer", "path", r.DexoptPath)
	r.Logger.Debug("🚀 Full command with args", "args", cmd.Args[1:])

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("❌ failed to start dexopt: %w", err)
	}
	if err := cmd.Wait(); err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			r.Logger.Info("⏹️ Optimizer exited", "code", exitErr.ExitCode())
			return &ExitError{Code: exitErr.ExitCode()}
		}
		return fmt.Errorf("❌ dexopt process error: %w", err)
	}

	r.Logger.Debug("✅ Optimizer completed", "output", output)
	return nil
}
