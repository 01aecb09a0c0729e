// Interactive line loop for 2g: sentinels are handled locally, everything
// else is forwarded verbatim to the orchestrator.
package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/Tahsine/2giants-cli/internal/config"
	"github.com/Tahsine/2giants-cli/internal/logging"
	"github.com/Tahsine/2giants-cli/internal/orchestrator"
	"github.com/Tahsine/2giants-cli/internal/session"
)

const banner = `
╔══════════════════════════════════════════════════════════╗
║                                                          ║
║   ██████╗  ██████╗ ██╗ █████╗ ███╗   ██╗████████╗███████╗║
║   ╚════██╗██╔════╝ ██║██╔══██╗████╗  ██║╚══██╔══╝██╔════╝║
║    █████╔╝██║  ███╗██║███████║██╔██╗ ██║   ██║   ███████╗║
║   ██╔═══╝ ██║   ██║██║██╔══██║██║╚██╗██║   ██║   ╚════██║║
║   ███████╗╚██████╔╝██║██║  ██║██║ ╚████║   ██║   ███████║║
║   ╚══════╝ ╚═════╝ ╚═╝╚═╝  ╚═╝╚═╝  ╚═══╝   ╚═╝   ╚══════╝║
║                                                          ║
║         Where human wisdom meets AI power                ║
║                                                          ║
╚══════════════════════════════════════════════════════════╝
`

var (
	bannerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true)
	tipStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	dimStyle    = lipgloss.NewStyle().Faint(true)
	safeOnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	helpStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("14")).
			Padding(0, 2)
)

// runInteractive starts the interactive loop.
func runInteractive() error {
	fmt.Println(bannerStyle.Render(banner))
	fmt.Println()
	fmt.Println(tipStyle.Render("💡 Type your commands naturally, like talking to a human"))
	fmt.Println(dimStyle.Render("📝 Type 'help' for commands, 'exit' or 'quit' to leave"))
	fmt.Println()
	if safeMode {
		fmt.Println(safeOnStyle.Render("🛡️  Safe mode: ON") + " (dangerous commands require approval)")
	} else {
		fmt.Println(warnStyle.Render("⚠️  Safe mode: OFF") + " (use with caution!)")
	}
	fmt.Println()
	fmt.Println(strings.Repeat("─", 60))
	fmt.Println()

	ctx := context.Background()
	cfg := loadConfig()

	// One orchestrator for the whole session; a missing credential is the
	// only fatal startup condition.
	orch, err := orchestrator.FromConfig(ctx, cfg, debugMode)
	if err != nil {
		return err
	}
	defer orch.Close()

	lineHistory := ""
	if dir, err := config.Dir(); err == nil {
		lineHistory = cfg.LineHistoryPath(dir)
	}

	// Ctrl+C cancels the current input line, not the session.
	stopInterrupts := watchInterrupts()
	defer stopInterrupts()

	reader := bufio.NewReader(os.Stdin)
	for {
		fmt.Print("2g> ")

		line, err := reader.ReadString('\n')
		if err != nil {
			if err == io.EOF {
				fmt.Println(warnStyle.Render("\n👋 Goodbye!"))
				return nil
			}
			return err
		}

		input := strings.TrimSpace(line)
		if input == "" {
			continue
		}

		switch strings.ToLower(input) {
		case "exit", "quit", "q", "bye":
			fmt.Println(warnStyle.Render("\n👋 Goodbye! Thanks for using 2Giants!"))
			return nil
		case "help", "?":
			showHelp()
			continue
		case "history", "!":
			fmt.Println(recentInputListing(lineHistory))
			continue
		case "clear", "cls":
			fmt.Print("\033[2J\033[H")
			continue
		}

		// Only forwarded utterances are worth recalling.
		if lineHistory != "" {
			if err := session.AppendLine(lineHistory, input); err != nil {
				logging.SessionError("line history append failed: %v", err)
			}
		}

		fmt.Println()
		runTurn(ctx, orch, input)
		fmt.Println()
	}
}

// runTurn executes one utterance and renders the reply. Faults are printed
// and the loop continues.
func runTurn(ctx context.Context, orch *orchestrator.Orchestrator, input string) {
	fmt.Printf("💬 You: %s\n\n", input)
	fmt.Println(dimStyle.Render("🤖 2Giants is thinking..."))

	reply := orch.Execute(ctx, input, sessionID)
	fmt.Printf("🤖 2Giants: %s\n", renderMarkdown(reply))
}

// watchInterrupts reprints the prompt on SIGINT instead of exiting.
// The returned stop function releases the handler and waits for the
// watcher goroutine to finish.
func watchInterrupts() func() {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for range sigCh {
			fmt.Println(warnStyle.Render("\n⚠️  Interrupted. Type 'exit' to quit."))
			fmt.Print("2g> ")
		}
	}()

	return func() {
		signal.Stop(sigCh)
		close(sigCh)
		<-done
	}
}

// recentInputLimit caps the lines the history sentinel recalls.
const recentInputLimit = 20

// recentInputListing renders the tail of the line-history file so earlier
// input can be recalled and pasted back in.
func recentInputListing(path string) string {
	if path == "" {
		return dimStyle.Render("📜 Input history is not available.")
	}
	lines, err := session.LoadLines(path, recentInputLimit)
	if err != nil {
		logging.SessionError("line history load failed: %v", err)
		return dimStyle.Render("📜 Input history is not available.")
	}
	if len(lines) == 0 {
		return dimStyle.Render("📜 No input history yet.")
	}

	var b strings.Builder
	b.WriteString("📜 Recent input:\n")
	for i, line := range lines {
		fmt.Fprintf(&b, "  %2d  %s\n", i+1, line)
	}
	b.WriteString(dimStyle.Render("💡 Copy a line to run it again"))
	return b.String()
}

func showHelp() {
	helpText := `Available Commands:

Natural Language Commands:
  Just type what you want naturally!
  Examples:
    • deploy to production
    • create a new React component
    • what's the latest Python version?
    • run tests

Special Commands:
  help, ?      Show this help message
  history, !   Recall your recent input
  clear, cls   Clear the screen
  exit, quit   Exit interactive mode

Tips:
  • Press Ctrl+C to cancel current input
  • Press Ctrl+D or type 'exit' to quit`

	fmt.Println(helpStyle.Render(helpText))
}

// renderMarkdown renders model output for the terminal, falling back to the
// raw text when rendering fails.
func renderMarkdown(text string) string {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		return text
	}
	rendered, err := renderer.Render(text)
	if err != nil {
		return text
	}
	return strings.TrimRight(rendered, "\n")
}
