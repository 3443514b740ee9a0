package services

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"
)

// RunLogged executes argv with the given timeout, writing captured stdout and
// stderr to logPath. The log is written on success and failure alike so
// operators can inspect what the tool printed.
func RunLogged(ctx context.Context, logPath string, timeout time.Duration, argv ...string) error {
	if len(argv) == 0 {
		return Wrap(ErrConfiguration, "", "run command", "empty command", nil)
	}

	runCtx := ctx
	if timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(runCtx, argv[0], argv[1:]...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	runErr := cmd.Run()

	if logPath != "" {
		if writeErr := writeCommandLog(logPath, stdout.Bytes(), stderr.Bytes()); writeErr != nil && runErr == nil {
			runErr = writeErr
		}
	}

	if runErr != nil {
		if runCtx.Err() == context.DeadlineExceeded {
			return Wrap(ErrExternalTool, "", argv[0], fmt.Sprintf("timed out after %s", timeout), runErr)
		}
		return Wrap(ErrExternalTool, "", argv[0], "command failed", runErr)
	}
	return nil
}

func writeCommandLog(path string, stdout, stderr []byte) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	var buf bytes.Buffer
	buf.WriteString("=== STDOUT ===\n")
	buf.Write(stdout)
	buf.WriteString("\n\n=== STDERR ===\n")
	buf.Write(stderr)
	buf.WriteByte('\n')
	return os.WriteFile(path, buf.Bytes(), 0o644)
}
