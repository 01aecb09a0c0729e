package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/Tahsine/2giants-cli/internal/logging"
	"github.com/Tahsine/2giants-cli/internal/tools"
)

// ReadFileTool returns a tool for reading file contents.
func ReadFileTool(wd *tools.Workdir) *tools.Tool {
	return &tools.Tool{
		Name:        "read_file",
		Description: "Read the contents of a file",
		Category:    tools.CategoryFile,
		Priority:    90,
		Execute: func(ctx context.Context, args map[string]any) (string, error) {
			return executeReadFile(wd, args)
		},
		Schema: tools.ToolSchema{
			Required: []string{"path"},
			Properties: map[string]tools.Property{
				"path": {
					Type:        "string",
					Description: "The file path to read (relative or absolute)",
				},
			},
		},
	}
}

func executeReadFile(wd *tools.Workdir, args map[string]any) (string, error) {
	path, _ := args["path"].(string)
	if path == "" {
		return "", fmt.Errorf("path is required")
	}
	resolved := wd.Resolve(path)

	logging.ToolsDebug("read_file: path=%s", resolved)

	info, err := os.Stat(resolved)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Sprintf("❌ Error: File not found: %s", path), nil
		}
		if os.IsPermission(err) {
			return fmt.Sprintf("❌ Error: Permission denied to read %s", path), nil
		}
		return fmt.Sprintf("❌ Error reading %s: %v", path, err), nil
	}
	if info.IsDir() {
		return fmt.Sprintf("❌ Error: %s is not a file", path), nil
	}

	content, err := os.ReadFile(resolved)
	if err != nil {
		if os.IsPermission(err) {
			return fmt.Sprintf("❌ Error: Permission denied to read %s", path), nil
		}
		return fmt.Sprintf("❌ Error reading %s: %v", path, err), nil
	}

	if !utf8.Valid(content) {
		return fmt.Sprintf("❌ Error: %s is not a text file (binary content)", path), nil
	}

	text := string(content)
	logging.Tools("read_file completed: %s (%d bytes)", resolved, len(content))

	return fmt.Sprintf("✓ File: %s\nSize: %d bytes | Lines: %d\n\n%s",
		path, len(content), countLines(text), text), nil
}

// WriteFileTool returns a tool for creating files.
func WriteFileTool(wd *tools.Workdir) *tools.Tool {
	return &tools.Tool{
		Name:        "write_file",
		Description: "Write content to a new file, creating parent directories as needed",
		Category:    tools.CategoryFile,
		Priority:    80,
		Execute: func(ctx context.Context, args map[string]any) (string, error) {
			return executeWriteFile(wd, args)
		},
		Schema: tools.ToolSchema{
			Required: []string{"path", "content"},
			Properties: map[string]tools.Property{
				"path": {
					Type:        "string",
					Description: "The file path to write",
				},
				"content": {
					Type:        "string",
					Description: "The content to write",
				},
				"overwrite": {
					Type:        "boolean",
					Description: "Replace an existing file (default: false)",
					Default:     false,
				},
			},
		},
	}
}

func executeWriteFile(wd *tools.Workdir, args map[string]any) (string, error) {
	path, _ := args["path"].(string)
	if path == "" {
		return "", fmt.Errorf("path is required")
	}
	content, _ := args["content"].(string)
	overwrite, _ := args["overwrite"].(bool)

	resolved := wd.Resolve(path)
	logging.ToolsDebug("write_file: path=%s, size=%d, overwrite=%v", resolved, len(content), overwrite)

	if _, err := os.Stat(resolved); err == nil && !overwrite {
		return fmt.Sprintf("❌ Error: File already exists: %s\nUse overwrite=true to replace it, or use edit_file to modify it.", path), nil
	}

	if err := os.MkdirAll(filepath.Dir(resolved), 0755); err != nil {
		if os.IsPermission(err) {
			return fmt.Sprintf("❌ Error: Permission denied to write %s", path), nil
		}
		return fmt.Sprintf("❌ Error writing %s: %v", path, err), nil
	}

	if err := os.WriteFile(resolved, []byte(content), 0644); err != nil {
		if os.IsPermission(err) {
			return fmt.Sprintf("❌ Error: Permission denied to write %s", path), nil
		}
		return fmt.Sprintf("❌ Error writing %s: %v", path, err), nil
	}

	logging.Tools("write_file completed: %s (%d bytes)", resolved, len(content))
	return fmt.Sprintf("✓ Created %s\nSize: %d bytes | Lines: %d", path, len(content), countLines(content)), nil
}

// EditFileTool returns a tool for replacing text in a file.
func EditFileTool(wd *tools.Workdir) *tools.Tool {
	return &tools.Tool{
		Name:        "edit_file",
		Description: "Edit a file by replacing all occurrences of old_text with new_text",
		Category:    tools.CategoryFile,
		Priority:    85,
		Execute: func(ctx context.Context, args map[string]any) (string, error) {
			return executeEditFile(wd, args)
		},
		Schema: tools.ToolSchema{
			Required: []string{"path", "old_text", "new_text"},
			Properties: map[string]tools.Property{
				"path": {
					Type:        "string",
					Description: "The file path to edit",
				},
				"old_text": {
					Type:        "string",
					Description: "The text to find and replace (case-sensitive)",
				},
				"new_text": {
					Type:        "string",
					Description: "The replacement text",
				},
			},
		},
	}
}

func executeEditFile(wd *tools.Workdir, args map[string]any) (string, error) {
	path, _ := args["path"].(string)
	if path == "" {
		return "", fmt.Errorf("path is required")
	}
	oldText, _ := args["old_text"].(string)
	if oldText == "" {
		return "", fmt.Errorf("old_text is required")
	}
	newText, _ := args["new_text"].(string)

	resolved := wd.Resolve(path)
	logging.ToolsDebug("edit_file: path=%s, old_len=%d, new_len=%d", resolved, len(oldText), len(newText))

	info, err := os.Stat(resolved)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Sprintf("❌ Error: File not found: %s", path), nil
		}
		if os.IsPermission(err) {
			return fmt.Sprintf("❌ Error: Permission denied to edit %s", path), nil
		}
		return fmt.Sprintf("❌ Error editing %s: %v", path, err), nil
	}
	if info.IsDir() {
		return fmt.Sprintf("❌ Error: %s is not a file", path), nil
	}

	content, err := os.ReadFile(resolved)
	if err != nil {
		if os.IsPermission(err) {
			return fmt.Sprintf("❌ Error: Permission denied to edit %s", path), nil
		}
		return fmt.Sprintf("❌ Error editing %s: %v", path, err), nil
	}
	if !utf8.Valid(content) {
		return fmt.Sprintf("❌ Error: %s is not a text file", path), nil
	}

	text := string(content)
	if !strings.Contains(text, oldText) {
		return fmt.Sprintf("❌ Error: Text not found in %s\nSearched for: %s...", path, truncate(oldText, 100)), nil
	}

	// Backup holds the pre-edit content and is written before any mutation.
	backupPath := resolved + ".bak"
	if err := os.WriteFile(backupPath, content, 0644); err != nil {
		return fmt.Sprintf("❌ Error editing %s: failed to write backup: %v", path, err), nil
	}

	occurrences := strings.Count(text, oldText)
	newContent := strings.ReplaceAll(text, oldText, newText)

	if err := os.WriteFile(resolved, []byte(newContent), 0644); err != nil {
		if os.IsPermission(err) {
			return fmt.Sprintf("❌ Error: Permission denied to edit %s", path), nil
		}
		return fmt.Sprintf("❌ Error editing %s: %v", path, err), nil
	}

	logging.Tools("edit_file completed: %s (%d replacements)", resolved, occurrences)
	return fmt.Sprintf("✓ Edited %s\nReplaced %d occurrence(s)\nBackup saved: %s\n\nChanges:\n  - Old: %s...\n  + New: %s...",
		path, occurrences, backupPath, truncate(oldText, 50), truncate(newText, 50)), nil
}

// ListDirectoryTool returns a tool for listing directory contents.
func ListDirectoryTool(wd *tools.Workdir) *tools.Tool {
	return &tools.Tool{
		Name:        "list_directory",
		Description: "List contents of a directory, directories before files",
		Category:    tools.CategoryFile,
		Priority:    85,
		Execute: func(ctx context.Context, args map[string]any) (string, error) {
			return executeListDirectory(wd, args)
		},
		Schema: tools.ToolSchema{
			Required: []string{},
			Properties: map[string]tools.Property{
				"path": {
					Type:        "string",
					Description: "The directory path to list (default: current directory)",
				},
				"recursive": {
					Type:        "boolean",
					Description: "List subdirectories recursively (default: false)",
					Default:     false,
				},
				"show_hidden": {
					Type:        "boolean",
					Description: "Include hidden entries (default: false)",
					Default:     false,
				},
			},
		},
	}
}

func executeListDirectory(wd *tools.Workdir, args map[string]any) (string, error) {
	path, _ := args["path"].(string)
	if path == "" {
		path = "."
	}
	recursive, _ := args["recursive"].(bool)
	showHidden, _ := args["show_hidden"].(bool)

	resolved := wd.Resolve(path)
	logging.ToolsDebug("list_directory: path=%s, recursive=%v", resolved, recursive)

	info, err := os.Stat(resolved)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Sprintf("❌ Error: Directory not found: %s", path), nil
		}
		if os.IsPermission(err) {
			return fmt.Sprintf("❌ Error: Permission denied to access %s", path), nil
		}
		return fmt.Sprintf("❌ Error listing directory %s: %v", path, err), nil
	}
	if !info.IsDir() {
		return fmt.Sprintf("❌ Error: %s is not a directory", path), nil
	}

	output := []string{fmt.Sprintf("📁 Contents of: %s\n", resolved)}

	if recursive {
		if err := listRecursive(resolved, 0, showHidden, &output); err != nil {
			return fmt.Sprintf("❌ Error listing directory %s: %v", path, err), nil
		}
		return strings.Join(output, "\n"), nil
	}

	entries, err := os.ReadDir(resolved)
	if err != nil {
		if os.IsPermission(err) {
			return fmt.Sprintf("❌ Error: Permission denied to access %s", path), nil
		}
		return fmt.Sprintf("❌ Error listing directory %s: %v", path, err), nil
	}

	var dirs, files []string
	for _, entry := range entries {
		name := entry.Name()
		if !showHidden && strings.HasPrefix(name, ".") {
			continue
		}
		if entry.IsDir() {
			dirs = append(dirs, fmt.Sprintf("📁 %s/", name))
		} else {
			size := int64(0)
			if fi, err := entry.Info(); err == nil {
				size = fi.Size()
			}
			files = append(files, fmt.Sprintf("📄 %s (%d bytes)", name, size))
		}
	}
	sort.Strings(dirs)
	sort.Strings(files)

	output = append(output, dirs...)
	output = append(output, files...)
	output = append(output, fmt.Sprintf("\nTotal: %d directories, %d files", len(dirs), len(files)))

	logging.Tools("list_directory completed: %s (%d entries)", resolved, len(dirs)+len(files))
	return strings.Join(output, "\n"), nil
}

// listRecursive appends one directory level, then descends.
func listRecursive(path string, depth int, showHidden bool, output *[]string) error {
	indent := strings.Repeat("  ", depth)
	*output = append(*output, fmt.Sprintf("%s📁 %s/", indent, filepath.Base(path)))

	entries, err := os.ReadDir(path)
	if err != nil {
		return err
	}

	var subdirs []string
	for _, entry := range entries {
		name := entry.Name()
		if !showHidden && strings.HasPrefix(name, ".") {
			continue
		}
		if entry.IsDir() {
			subdirs = append(subdirs, filepath.Join(path, name))
			continue
		}
		size := int64(0)
		if fi, err := entry.Info(); err == nil {
			size = fi.Size()
		}
		*output = append(*output, fmt.Sprintf("%s  📄 %s (%d bytes)", indent, name, size))
	}

	sort.Strings(subdirs)
	for _, sub := range subdirs {
		if err := listRecursive(sub, depth+1, showHidden, output); err != nil {
			return err
		}
	}
	return nil
}

// DeleteFileTool returns a tool for deleting files.
func DeleteFileTool(wd *tools.Workdir) *tools.Tool {
	return &tools.Tool{
		Name:        "delete_file",
		Description: "Delete a file (requires confirm=true, cannot be undone)",
		Category:    tools.CategoryFile,
		Priority:    50,
		Execute: func(ctx context.Context, args map[string]any) (string, error) {
			return executeDeleteFile(wd, args)
		},
		Schema: tools.ToolSchema{
			Required: []string{"path"},
			Properties: map[string]tools.Property{
				"path": {
					Type:        "string",
					Description: "The file path to delete",
				},
				"confirm": {
					Type:        "boolean",
					Description: "Must be true to actually delete (safety check)",
					Default:     false,
				},
			},
		},
	}
}

func executeDeleteFile(wd *tools.Workdir, args map[string]any) (string, error) {
	confirm, _ := args["confirm"].(bool)
	if !confirm {
		return "⚠️ Deletion requires explicit confirmation.\nUse: delete_file(path, confirm=true)\n\nWARNING: This operation cannot be undone!", nil
	}

	path, _ := args["path"].(string)
	if path == "" {
		return "", fmt.Errorf("path is required")
	}
	resolved := wd.Resolve(path)

	logging.ToolsDebug("delete_file: path=%s", resolved)

	info, err := os.Stat(resolved)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Sprintf("❌ Error: File not found: %s", path), nil
		}
		if os.IsPermission(err) {
			return fmt.Sprintf("❌ Error: Permission denied to delete %s", path), nil
		}
		return fmt.Sprintf("❌ Error deleting %s: %v", path, err), nil
	}
	if info.IsDir() {
		return fmt.Sprintf("❌ Error: %s is not a file (use a different method for directories)", path), nil
	}

	// Size is reported after the file is gone, so capture it first.
	size := info.Size()

	if err := os.Remove(resolved); err != nil {
		if os.IsPermission(err) {
			return fmt.Sprintf("❌ Error: Permission denied to delete %s", path), nil
		}
		return fmt.Sprintf("❌ Error deleting %s: %v", path, err), nil
	}

	logging.Tools("delete_file completed: %s", resolved)
	return fmt.Sprintf("✓ Deleted %s (%d bytes)", path, size), nil
}

// CreateDirectoryTool returns a tool for creating directories.
func CreateDirectoryTool(wd *tools.Workdir) *tools.Tool {
	return &tools.Tool{
		Name:        "create_directory",
		Description: "Create a new directory, with parents as needed",
		Category:    tools.CategoryFile,
		Priority:    60,
		Execute: func(ctx context.Context, args map[string]any) (string, error) {
			return executeCreateDirectory(wd, args)
		},
		Schema: tools.ToolSchema{
			Required: []string{"path"},
			Properties: map[string]tools.Property{
				"path": {
					Type:        "string",
					Description: "The directory path to create",
				},
			},
		},
	}
}

func executeCreateDirectory(wd *tools.Workdir, args map[string]any) (string, error) {
	path, _ := args["path"].(string)
	if path == "" {
		return "", fmt.Errorf("path is required")
	}
	resolved := wd.Resolve(path)

	logging.ToolsDebug("create_directory: path=%s", resolved)

	if info, err := os.Stat(resolved); err == nil {
		if info.IsDir() {
			return fmt.Sprintf("ℹ️ Directory already exists: %s", path), nil
		}
		return fmt.Sprintf("❌ Error: %s exists but is not a directory", path), nil
	}

	if err := os.MkdirAll(resolved, 0755); err != nil {
		if os.IsPermission(err) {
			return fmt.Sprintf("❌ Error: Permission denied to create %s", path), nil
		}
		return fmt.Sprintf("❌ Error creating directory %s: %v", path, err), nil
	}

	logging.Tools("create_directory completed: %s", resolved)
	return fmt.Sprintf("✓ Created directory: %s", path), nil
}

// countLines counts lines the way a text editor would: a trailing newline
// does not start an extra line.
func countLines(s string) int {
	if s == "" {
		return 0
	}
	n := strings.Count(s, "\n")
	if !strings.HasSuffix(s, "\n") {
		n++
	}
	return n
}

// truncate cuts s to at most max bytes without splitting a rune.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	for max > 0 && !utf8.RuneStart(s[max]) {
		max--
	}
	return s[:max]
}
