package file

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/Tahsine/2giants-cli/internal/tools"
)

func writeFixture(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

// =============================================================================
// READ FILE TOOL TESTS
// =============================================================================

func TestReadFileTool_Definition(t *testing.T) {
	t.Parallel()

	tool := ReadFileTool(tools.NewWorkdirAt("."))

	if tool.Name != "read_file" {
		t.Errorf("Name mismatch: got %q", tool.Name)
	}
	if tool.Description == "" {
		t.Error("Description should not be empty")
	}
	if tool.Execute == nil {
		t.Error("Execute should be set")
	}
}

func TestReadFileTool_MissingPath(t *testing.T) {
	t.Parallel()

	wd := tools.NewWorkdirAt(t.TempDir())
	_, err := executeReadFile(wd, map[string]any{})
	if err == nil {
		t.Error("expected error for missing path")
	}
}

func TestReadFileTool_FileNotFound(t *testing.T) {
	t.Parallel()

	wd := tools.NewWorkdirAt(t.TempDir())
	result, err := executeReadFile(wd, map[string]any{"path": "missing.txt"})
	if err != nil {
		t.Fatalf("domain failures must not surface as errors: %v", err)
	}
	if !strings.Contains(result, "File not found") {
		t.Errorf("expected not-found message, got %q", result)
	}
}

func TestReadFileTool_NotAFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	wd := tools.NewWorkdirAt(dir)

	result, err := executeReadFile(wd, map[string]any{"path": "."})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(result, "is not a file") {
		t.Errorf("expected not-a-file message, got %q", result)
	}
}

func TestReadFileTool_BinaryContent(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "blob.bin")
	if err := os.WriteFile(path, []byte{0xff, 0xfe, 0x00, 0x80}, 0644); err != nil {
		t.Fatal(err)
	}

	wd := tools.NewWorkdirAt(dir)
	result, err := executeReadFile(wd, map[string]any{"path": "blob.bin"})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(result, "not a text file") {
		t.Errorf("expected binary-content message, got %q", result)
	}
}

func TestReadFileTool_Success(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFixture(t, dir, "test.txt", "Hello, World!\nSecond line.")

	wd := tools.NewWorkdirAt(dir)
	result, err := executeReadFile(wd, map[string]any{"path": "test.txt"})
	if err != nil {
		t.Fatalf("executeReadFile error: %v", err)
	}

	if !strings.Contains(result, "Hello, World!") {
		t.Error("expected result to contain file content")
	}
	if !strings.Contains(result, "Lines: 2") {
		t.Errorf("expected line count in result, got %q", result)
	}
	if !strings.Contains(result, "26 bytes") {
		t.Errorf("expected byte size in result, got %q", result)
	}
}

// =============================================================================
// WRITE FILE TOOL TESTS
// =============================================================================

func TestWriteFileTool_Success(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	wd := tools.NewWorkdirAt(dir)

	result, err := executeWriteFile(wd, map[string]any{
		"path":    "sub/new.txt",
		"content": "one\ntwo\n",
	})
	if err != nil {
		t.Fatalf("executeWriteFile error: %v", err)
	}
	if !strings.Contains(result, "✓ Created") {
		t.Errorf("expected success message, got %q", result)
	}

	got, err := os.ReadFile(filepath.Join(dir, "sub", "new.txt"))
	if err != nil {
		t.Fatalf("written file missing: %v", err)
	}
	if string(got) != "one\ntwo\n" {
		t.Errorf("written content mismatch: %q", got)
	}
}

func TestWriteFileTool_ExistingWithoutOverwrite(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFixture(t, dir, "keep.txt", "original")
	wd := tools.NewWorkdirAt(dir)

	result, err := executeWriteFile(wd, map[string]any{
		"path":    "keep.txt",
		"content": "replacement",
	})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(result, "already exists") {
		t.Errorf("expected already-exists message, got %q", result)
	}

	// Refusing to overwrite must leave the target untouched.
	got, _ := os.ReadFile(filepath.Join(dir, "keep.txt"))
	if string(got) != "original" {
		t.Errorf("content changed despite refusal: %q", got)
	}
}

func TestWriteFileTool_Overwrite(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFixture(t, dir, "keep.txt", "original")
	wd := tools.NewWorkdirAt(dir)

	result, err := executeWriteFile(wd, map[string]any{
		"path":      "keep.txt",
		"content":   "replacement",
		"overwrite": true,
	})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(result, "✓ Created") {
		t.Errorf("expected success message, got %q", result)
	}

	got, _ := os.ReadFile(filepath.Join(dir, "keep.txt"))
	if string(got) != "replacement" {
		t.Errorf("overwrite did not replace content: %q", got)
	}
}

// =============================================================================
// EDIT FILE TOOL TESTS
// =============================================================================

func TestEditFileTool_ReplacesAllAndBacksUp(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	original := "foo bar foo baz foo"
	writeFixture(t, dir, "edit.txt", original)
	wd := tools.NewWorkdirAt(dir)

	result, err := executeEditFile(wd, map[string]any{
		"path":     "edit.txt",
		"old_text": "foo",
		"new_text": "qux",
	})
	if err != nil {
		t.Fatalf("executeEditFile error: %v", err)
	}

	if !strings.Contains(result, "Replaced 3 occurrence(s)") {
		t.Errorf("expected replacement count 3, got %q", result)
	}

	got, _ := os.ReadFile(filepath.Join(dir, "edit.txt"))
	if string(got) != "qux bar qux baz qux" {
		t.Errorf("edit result mismatch: %q", got)
	}

	// Backup must hold the pre-edit bytes exactly.
	backup, err := os.ReadFile(filepath.Join(dir, "edit.txt.bak"))
	if err != nil {
		t.Fatalf("backup missing: %v", err)
	}
	if string(backup) != original {
		t.Errorf("backup differs from pre-edit content: %q", backup)
	}
}

func TestEditFileTool_TextNotFound(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFixture(t, dir, "edit.txt", "nothing to see")
	wd := tools.NewWorkdirAt(dir)

	result, err := executeEditFile(wd, map[string]any{
		"path":     "edit.txt",
		"old_text": "absent",
		"new_text": "x",
	})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(result, "Text not found") {
		t.Errorf("expected text-not-found message, got %q", result)
	}

	// No backup and no mutation on failure.
	if _, err := os.Stat(filepath.Join(dir, "edit.txt.bak")); !os.IsNotExist(err) {
		t.Error("backup should not exist when search text is absent")
	}
}

func TestEditFileTool_FileNotFound(t *testing.T) {
	t.Parallel()

	wd := tools.NewWorkdirAt(t.TempDir())
	result, err := executeEditFile(wd, map[string]any{
		"path":     "missing.txt",
		"old_text": "a",
		"new_text": "b",
	})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(result, "File not found") {
		t.Errorf("expected not-found message, got %q", result)
	}
}

// =============================================================================
// LIST DIRECTORY TOOL TESTS
// =============================================================================

func TestListDirectoryTool_DirsBeforeFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, "zdir"), 0755); err != nil {
		t.Fatal(err)
	}
	writeFixture(t, dir, "afile.txt", "x")
	writeFixture(t, dir, ".hidden", "h")

	wd := tools.NewWorkdirAt(dir)
	result, err := executeListDirectory(wd, map[string]any{"path": "."})
	if err != nil {
		t.Fatal(err)
	}

	dirIdx := strings.Index(result, "zdir/")
	fileIdx := strings.Index(result, "afile.txt")
	if dirIdx == -1 || fileIdx == -1 {
		t.Fatalf("expected both entries in listing: %q", result)
	}
	if dirIdx > fileIdx {
		t.Error("directories should be listed before files")
	}
	if strings.Contains(result, ".hidden") {
		t.Error("hidden entries should be excluded by default")
	}
	if !strings.Contains(result, "Total: 1 directories, 1 files") {
		t.Errorf("expected totals line, got %q", result)
	}
}

func TestListDirectoryTool_ShowHidden(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFixture(t, dir, ".hidden", "h")

	wd := tools.NewWorkdirAt(dir)
	result, err := executeListDirectory(wd, map[string]any{"path": ".", "show_hidden": true})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(result, ".hidden") {
		t.Errorf("expected hidden entry, got %q", result)
	}
}

func TestListDirectoryTool_Recursive(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "sub", "deep"), 0755); err != nil {
		t.Fatal(err)
	}
	writeFixture(t, filepath.Join(dir, "sub"), "inner.txt", "content")

	wd := tools.NewWorkdirAt(dir)
	result, err := executeListDirectory(wd, map[string]any{"path": ".", "recursive": true})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(result, "sub/") || !strings.Contains(result, "deep/") {
		t.Errorf("expected nested directories, got %q", result)
	}
	if !strings.Contains(result, "inner.txt (7 bytes)") {
		t.Errorf("expected file with size, got %q", result)
	}
}

func TestListDirectoryTool_NotADirectory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFixture(t, dir, "plain.txt", "x")

	wd := tools.NewWorkdirAt(dir)
	result, err := executeListDirectory(wd, map[string]any{"path": "plain.txt"})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(result, "is not a directory") {
		t.Errorf("expected not-a-directory message, got %q", result)
	}
}

// =============================================================================
// DELETE FILE TOOL TESTS
// =============================================================================

func TestDeleteFileTool_RequiresConfirm(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFixture(t, dir, "victim.txt", "payload")
	wd := tools.NewWorkdirAt(dir)

	result, err := executeDeleteFile(wd, map[string]any{"path": "victim.txt"})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(result, "requires explicit confirmation") {
		t.Errorf("expected confirmation warning, got %q", result)
	}

	// The file must survive the unconfirmed call.
	if _, err := os.Stat(filepath.Join(dir, "victim.txt")); err != nil {
		t.Error("file was deleted without confirmation")
	}
}

func TestDeleteFileTool_ConfirmedDelete(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFixture(t, dir, "victim.txt", "payload")
	wd := tools.NewWorkdirAt(dir)

	result, err := executeDeleteFile(wd, map[string]any{"path": "victim.txt", "confirm": true})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(result, "✓ Deleted victim.txt (7 bytes)") {
		t.Errorf("expected deletion message with pre-deletion size, got %q", result)
	}

	if _, err := os.Stat(filepath.Join(dir, "victim.txt")); !os.IsNotExist(err) {
		t.Error("file still exists after confirmed delete")
	}
}

func TestDeleteFileTool_NotFound(t *testing.T) {
	t.Parallel()

	wd := tools.NewWorkdirAt(t.TempDir())
	result, err := executeDeleteFile(wd, map[string]any{"path": "ghost.txt", "confirm": true})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(result, "File not found") {
		t.Errorf("expected not-found message, got %q", result)
	}
}

// =============================================================================
// CREATE DIRECTORY TOOL TESTS
// =============================================================================

func TestCreateDirectoryTool_CreatesTree(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	wd := tools.NewWorkdirAt(dir)

	result, err := executeCreateDirectory(wd, map[string]any{"path": "a/b/c"})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(result, "✓ Created directory") {
		t.Errorf("expected success message, got %q", result)
	}

	info, err := os.Stat(filepath.Join(dir, "a", "b", "c"))
	if err != nil || !info.IsDir() {
		t.Error("directory tree was not created")
	}
}

func TestCreateDirectoryTool_AlreadyExists(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	wd := tools.NewWorkdirAt(dir)

	result, err := executeCreateDirectory(wd, map[string]any{"path": "."})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(result, "already exists") {
		t.Errorf("expected no-op message, got %q", result)
	}
}

func TestCreateDirectoryTool_ExistsAsFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFixture(t, dir, "occupied", "x")
	wd := tools.NewWorkdirAt(dir)

	result, err := executeCreateDirectory(wd, map[string]any{"path": "occupied"})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(result, "exists but is not a directory") {
		t.Errorf("expected conflict message, got %q", result)
	}
}

func TestCountLines(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"one", 1},
		{"one\n", 1},
		{"one\ntwo", 2},
		{"one\ntwo\n", 2},
	}
	for _, tt := range tests {
		if got := countLines(tt.in); got != tt.want {
			t.Errorf("countLines(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"short", 50, "short"},
		{"abcdef", 4, "abcd"},
		{"héllo", 2, "h"},             // é is 2 bytes starting at index 1
		{"日本語テキスト", 7, "日本"},         // each rune is 3 bytes
		{strings.Repeat("é", 30), 51, strings.Repeat("é", 25)},
	}
	for _, tt := range tests {
		got := truncate(tt.in, tt.max)
		if got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
		}
		if !utf8.ValidString(got) {
			t.Errorf("truncate(%q, %d) produced invalid UTF-8: %q", tt.in, tt.max, got)
		}
	}
}
