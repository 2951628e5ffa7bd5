package app

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Pipeline compiles generated source and runs the binary with synthesized
// stdin. Every failure is recorded on the Solution; nothing here aborts the
// batch.
type Pipeline struct {
	OutputDir      string
	CompileTimeout time.Duration
	RunTimeout     time.Duration
	Logger         *zap.Logger
}

func NewPipeline(cfg Config, logger *zap.Logger) *Pipeline {
	return &Pipeline{
		OutputDir:      cfg.OutputDir,
		CompileTimeout: cfg.CompileTimeout(),
		RunTimeout:     cfg.RunTimeout(),
		Logger:         logger,
	}
}

// BuildAndRun writes sol.SourceCode to a scratch directory unique to this
// problem, compiles it, and on success runs it feeding sol.InputsUsed to
// stdin. The scratch directory never outlives the call.
func (p *Pipeline) BuildAndRun(ctx context.Context, sol *Solution) {
	workDir := filepath.Join(p.OutputDir, fmt.Sprintf("prob-%d-%s", sol.Problem.Index, uuid.NewString()[:8]))
	if err := os.MkdirAll(workDir, 0o755); err != nil {
		sol.CompileError = fmt.Sprintf("workspace setup failed: %v", err)
		return
	}
	defer os.RemoveAll(workDir)

	srcPath := filepath.Join(workDir, "main.c")
	binPath := filepath.Join(workDir, "main.out")
	if err := os.WriteFile(srcPath, []byte(sol.SourceCode), 0o644); err != nil {
		sol.CompileError = fmt.Sprintf("writing source failed: %v", err)
		return
	}

	res := runCommand(ctx, p.CompileTimeout, "", "gcc", "-O2", srcPath, "-o", binPath)
	if res.timedOut {
		sol.CompileError = fmt.Sprintf("compilation timed out (%s)", p.CompileTimeout)
		return
	}
	if res.err != nil {
		sol.CompileError = fmt.Sprintf("compiler invocation failed: %v", res.err)
		return
	}
	if res.exitCode != 0 {
		sol.CompileError = "compilation failed:\n" + res.stderr
		return
	}
	sol.Compiled = true
	p.Logger.Debug("compiled", zap.Int("problem", sol.Problem.Index))

	stdin := ""
	if len(sol.InputsUsed) > 0 {
		stdin = strings.Join(sol.InputsUsed, "\n") + "\n"
	}
	res = runCommand(ctx, p.RunTimeout, stdin, binPath)
	if res.timedOut {
		sol.RunError = fmt.Sprintf("execution timed out (%s)", p.RunTimeout)
		return
	}
	if res.err != nil {
		sol.RunError = fmt.Sprintf("execution failed: %v", res.err)
		return
	}
	if res.exitCode != 0 {
		sol.RunError = fmt.Sprintf("program exited with code %d:\n%s", res.exitCode, res.stderr)
		return
	}
	// Programs sometimes write diagnostics to stderr while still
	// succeeding; keep both streams, stdout first.
	sol.RunOutput = res.stdout + res.stderr
}

type commandResult struct {
	stdout   string
	stderr   string
	exitCode int
	timedOut bool
	err      error
}

// runCommand executes one subprocess with a hard timeout. The process runs
// in its own process group so a timeout kills the whole tree and leaves no
// orphans behind.
func runCommand(ctx context.Context, timeout time.Duration, stdin string, name string, args ...string) commandResult {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.Command(name, args...)
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	if stdin != "" {
		cmd.Stdin = strings.NewReader(stdin)
	}
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Start(); err != nil {
		return commandResult{err: err}
	}

	done := make(chan error, 1)
	go func() {
		done <- cmd.Wait()
	}()

	var waitErr error
	select {
	case <-ctx.Done():
		if cmd.Process != nil {
			_ = syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
		}
		<-done
		result := commandResult{stdout: stdout.String(), stderr: stderr.String()}
		// Only the derived deadline counts as a timeout; a cancelled
		// parent context is an interrupted run, not a slow program.
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			result.timedOut = true
		} else {
			result.err = ctx.Err()
		}
		return result
	case waitErr = <-done:
	}

	result := commandResult{stdout: stdout.String(), stderr: stderr.String()}
	if waitErr != nil {
		if exitErr, ok := waitErr.(*exec.ExitError); ok {
			result.exitCode = exitErr.ExitCode()
		} else {
			result.err = waitErr
		}
	}
	return result
}
