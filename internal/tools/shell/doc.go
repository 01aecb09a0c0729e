// Package shell provides command execution and process environment tools
// for the executor agent.
//
// Tools:
//   - execute_shell_command: Run a command with a timeout, capturing output
//   - get_current_directory: Working directory plus best-effort git context
//   - change_directory: Move the shared Workdir
//   - get_environment_variables: Filtered environment listing
//   - get_system_info: OS and runtime identification
package shell
