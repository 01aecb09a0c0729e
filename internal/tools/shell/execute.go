package shell

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"github.com/Tahsine/2giants-cli/internal/logging"
	"github.com/Tahsine/2giants-cli/internal/tools"
)

const defaultTimeoutSeconds = 60

// ExecuteCommandTool returns a tool for executing shell commands.
func ExecuteCommandTool(wd *tools.Workdir) *tools.Tool {
	return &tools.Tool{
		Name:        "execute_shell_command",
		Description: "Execute a shell command and return its combined output and exit code",
		Category:    tools.CategoryShell,
		Priority:    70,
		Execute: func(ctx context.Context, args map[string]any) (string, error) {
			return executeCommand(ctx, wd, args)
		},
		Schema: tools.ToolSchema{
			Required: []string{"command"},
			Properties: map[string]tools.Property{
				"command": {
					Type:        "string",
					Description: "The command to execute",
				},
				"timeout_seconds": {
					Type:        "integer",
					Description: "Maximum execution time in seconds (default: 60)",
					Default:     defaultTimeoutSeconds,
				},
			},
		},
	}
}

func executeCommand(ctx context.Context, wd *tools.Workdir, args map[string]any) (string, error) {
	command, _ := args["command"].(string)
	if command == "" {
		return "", fmt.Errorf("command is required")
	}

	timeout := defaultTimeoutSeconds
	switch t := args["timeout_seconds"].(type) {
	case int:
		if t > 0 {
			timeout = t
		}
	case float64:
		if t > 0 {
			timeout = int(t)
		}
	}

	logging.ToolsDebug("execute_shell_command: cmd=%s, timeout=%ds", command, timeout)

	// A plain command (no shell metacharacters) can be checked up front,
	// so a missing binary reports cleanly instead of as shell noise.
	if fields := strings.Fields(command); len(fields) > 0 && !strings.ContainsAny(command, "|&;<>()$`\\\"'") {
		if _, err := exec.LookPath(fields[0]); err != nil {
			return fmt.Sprintf("❌ Error: Command not found: %s", fields[0]), nil
		}
	}

	execCtx, cancel := context.WithTimeout(ctx, time.Duration(timeout)*time.Second)
	defer cancel()

	var cmd *exec.Cmd
	if runtime.GOOS == "windows" {
		cmd = exec.CommandContext(execCtx, "cmd", "/C", command)
	} else {
		cmd = exec.CommandContext(execCtx, "sh", "-c", command)
	}
	cmd.Dir = wd.Path()

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	if execCtx.Err() == context.DeadlineExceeded {
		logging.Tools("execute_shell_command timed out: %s", command)
		return fmt.Sprintf("❌ Error: Command timed out after %d seconds\nCommand: %s", timeout, command), nil
	}

	exitCode := 0
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		} else {
			return fmt.Sprintf("❌ Error executing command: %v\nCommand: %s", err, command), nil
		}
	}

	var output []string
	if out := strings.TrimSpace(stdout.String()); out != "" {
		output = append(output, "📤 Output:", out)
	}
	if errs := strings.TrimSpace(stderr.String()); errs != "" {
		output = append(output, "\n⚠️ Errors/Warnings:", errs)
	}

	// Non-zero exit is reported, not treated as a tool failure.
	if exitCode != 0 {
		output = append(output, fmt.Sprintf("\n❌ Exit code: %d", exitCode))
	} else {
		output = append(output, "\n✓ Exit code: 0 (success)")
	}

	logging.Tools("execute_shell_command completed: %s (exit=%d)", command, exitCode)
	return strings.Join(output, "\n"), nil
}
