package shell

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/Tahsine/2giants-cli/internal/logging"
	"github.com/Tahsine/2giants-cli/internal/tools"
)

// CurrentDirectoryTool returns a tool reporting the working directory.
func CurrentDirectoryTool(wd *tools.Workdir) *tools.Tool {
	return &tools.Tool{
		Name:        "get_current_directory",
		Description: "Get the current working directory and git repository context",
		Category:    tools.CategoryShell,
		Priority:    60,
		Execute: func(ctx context.Context, args map[string]any) (string, error) {
			return executeCurrentDirectory(ctx, wd)
		},
		Schema: tools.ToolSchema{Required: []string{}},
	}
}

func executeCurrentDirectory(ctx context.Context, wd *tools.Workdir) (string, error) {
	cwd := wd.Path()
	logging.ToolsDebug("get_current_directory: %s", cwd)

	// Git context is best-effort: silently omitted outside a repo or
	// when git is unavailable.
	if root, ok := gitToplevel(ctx, cwd); ok {
		return fmt.Sprintf("📂 Current Directory: %s\n\n🔧 Git Repository: %s\n📁 Repo Root: %s",
			cwd, filepath.Base(root), root), nil
	}

	return fmt.Sprintf("📂 Current Directory: %s", cwd), nil
}

func gitToplevel(ctx context.Context, dir string) (string, bool) {
	gitCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	cmd := exec.CommandContext(gitCtx, "git", "rev-parse", "--show-toplevel")
	cmd.Dir = dir

	var out bytes.Buffer
	cmd.Stdout = &out
	if err := cmd.Run(); err != nil {
		return "", false
	}

	root := strings.TrimSpace(out.String())
	return root, root != ""
}

// ChangeDirectoryTool returns a tool that moves the shared Workdir.
func ChangeDirectoryTool(wd *tools.Workdir) *tools.Tool {
	return &tools.Tool{
		Name:        "change_directory",
		Description: "Change the working directory for all subsequent tools",
		Category:    tools.CategoryShell,
		Priority:    60,
		Execute: func(ctx context.Context, args map[string]any) (string, error) {
			return executeChangeDirectory(wd, args)
		},
		Schema: tools.ToolSchema{
			Required: []string{"path"},
			Properties: map[string]tools.Property{
				"path": {
					Type:        "string",
					Description: "Directory path to change to (relative or absolute)",
				},
			},
		},
	}
}

func executeChangeDirectory(wd *tools.Workdir, args map[string]any) (string, error) {
	path, _ := args["path"].(string)
	if path == "" {
		return "", fmt.Errorf("path is required")
	}

	resolved := wd.Resolve(path)
	logging.ToolsDebug("change_directory: %s", resolved)

	info, err := os.Stat(resolved)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Sprintf("❌ Error: Directory not found: %s", path), nil
		}
		if os.IsPermission(err) {
			return fmt.Sprintf("❌ Error: Permission denied to access %s", path), nil
		}
		return fmt.Sprintf("❌ Error changing directory: %v", err), nil
	}
	if !info.IsDir() {
		return fmt.Sprintf("❌ Error: Not a directory: %s", path), nil
	}

	old, err := wd.Set(resolved)
	if err != nil {
		return fmt.Sprintf("❌ Error changing directory: %v", err), nil
	}

	logging.Tools("change_directory: %s -> %s", old, wd.Path())
	return fmt.Sprintf("✓ Changed directory\n\nFrom: %s\nTo:   %s", old, wd.Path()), nil
}

// EnvironmentTool returns a tool listing environment variables.
func EnvironmentTool() *tools.Tool {
	return &tools.Tool{
		Name:        "get_environment_variables",
		Description: "List environment variables, optionally filtered by a substring",
		Category:    tools.CategoryShell,
		Priority:    55,
		Execute: func(ctx context.Context, args map[string]any) (string, error) {
			return executeEnvironment(args)
		},
		Schema: tools.ToolSchema{
			Required: []string{},
			Properties: map[string]tools.Property{
				"filter": {
					Type:        "string",
					Description: "Case-insensitive substring matched against names and values",
				},
			},
		},
	}
}

func executeEnvironment(args map[string]any) (string, error) {
	filter, _ := args["filter"].(string)
	logging.ToolsDebug("get_environment_variables: filter=%q", filter)

	env := make(map[string]string)
	for _, kv := range os.Environ() {
		if i := strings.Index(kv, "="); i > 0 {
			env[kv[:i]] = kv[i+1:]
		}
	}

	if filter != "" {
		pattern := strings.ToLower(filter)
		matched := make(map[string]string)
		for k, v := range env {
			if strings.Contains(strings.ToLower(k), pattern) || strings.Contains(strings.ToLower(v), pattern) {
				matched[k] = v
			}
		}

		if len(matched) == 0 {
			return fmt.Sprintf("ℹ️ No environment variables found matching: %s", filter), nil
		}

		output := []string{fmt.Sprintf("🔍 Environment Variables (filtered by '%s'):\n", filter)}
		for _, key := range sortedKeys(matched) {
			output = append(output, fmt.Sprintf("%s=%s", key, truncateValue(matched[key])))
		}
		output = append(output, fmt.Sprintf("\nTotal: %d variables", len(matched)))
		return strings.Join(output, "\n"), nil
	}

	keys := sortedKeys(env)
	shown := len(keys)
	if shown > 50 {
		shown = 50
	}

	output := []string{fmt.Sprintf("📋 Environment Variables (showing first %d):\n", shown)}
	for _, key := range keys[:shown] {
		output = append(output, fmt.Sprintf("%s=%s", key, truncateValue(env[key])))
	}
	output = append(output, fmt.Sprintf("\nShowing %d of %d total variables", shown, len(keys)))
	output = append(output, "💡 Use filter to search specific variables")
	return strings.Join(output, "\n"), nil
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// truncateValue caps displayed values at 100 bytes, never splitting a rune.
func truncateValue(v string) string {
	if len(v) <= 100 {
		return v
	}
	cut := 100
	for cut > 0 && !utf8.RuneStart(v[cut]) {
		cut--
	}
	return v[:cut] + "..."
}

// SystemInfoTool returns a tool reporting OS and runtime identification.
func SystemInfoTool(wd *tools.Workdir) *tools.Tool {
	return &tools.Tool{
		Name:        "get_system_info",
		Description: "Get operating system and runtime information",
		Category:    tools.CategoryShell,
		Priority:    55,
		Execute: func(ctx context.Context, args map[string]any) (string, error) {
			return executeSystemInfo(wd)
		},
		Schema: tools.ToolSchema{Required: []string{}},
	}
}

func executeSystemInfo(wd *tools.Workdir) (string, error) {
	logging.ToolsDebug("get_system_info")

	hostname, _ := os.Hostname()

	info := []string{
		"💻 System Information\n",
		strings.Repeat("=", 50),
		"\n🖥️  Operating System:",
		fmt.Sprintf("   OS: %s", runtime.GOOS),
		fmt.Sprintf("   Architecture: %s", runtime.GOARCH),
		fmt.Sprintf("   Hostname: %s", hostname),
		"\n🐹 Go Runtime:",
		fmt.Sprintf("   Version: %s", runtime.Version()),
		fmt.Sprintf("   CPUs: %d", runtime.NumCPU()),
		fmt.Sprintf("   GOMAXPROCS: %d", runtime.GOMAXPROCS(0)),
		"\n💡 CPU, memory and disk usage are not collected here.",
		"   Use execute_shell_command with your system's utilities (top, df, free) for live figures.",
		"\n📂 Current Directory:",
		fmt.Sprintf("   %s", wd.Path()),
		"\n" + strings.Repeat("=", 50),
	}

	return strings.Join(info, "\n"), nil
}
