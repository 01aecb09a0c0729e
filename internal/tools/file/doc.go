// Package file provides filesystem tools for the executor agent.
//
// Every tool resolves relative paths against the shared Workdir and reports
// failures in its result string rather than returning an error.
//
// Tools:
//   - read_file: Read file contents with size and line count
//   - write_file: Create a file, refusing to overwrite unless asked
//   - edit_file: Replace text, writing a .bak backup first
//   - list_directory: List directory contents, directories first
//   - delete_file: Delete a file (requires confirm=true)
//   - create_directory: Create a directory tree
package file
