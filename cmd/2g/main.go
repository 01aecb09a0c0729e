// Command 2g is the 2Giants CLI: natural-language commands routed through
// a Gemini-backed intent classifier.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/Tahsine/2giants-cli/internal/config"
	"github.com/Tahsine/2giants-cli/internal/logging"
	"github.com/Tahsine/2giants-cli/internal/orchestrator"
	"github.com/Tahsine/2giants-cli/internal/session"
	"github.com/Tahsine/2giants-cli/internal/tools"
	"github.com/Tahsine/2giants-cli/internal/tools/file"
	"github.com/Tahsine/2giants-cli/internal/tools/shell"
	"github.com/Tahsine/2giants-cli/internal/version"
)

var (
	// Global flags
	dryRun     bool
	safeMode   bool
	unsafeMode bool
	sessionID  string
	debugMode  bool

	// History flags
	historyLast  int
	historyDate  string
	historyStats bool

	// Logger
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "2g [prompt]",
	Short: "2Giants CLI - Where human wisdom meets AI power",
	Long: `2Giants CLI accepts natural language, classifies your intent and answers
with the right strategy: a conversational reply, an execution plan, or a
research answer.

Usage:
  2g                       # Interactive mode
  2g "your command"        # One-shot mode
  2g version               # Show version
  2g history               # View history`,
	Args: cobra.ArbitraryArgs,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if unsafeMode {
			safeMode = false
		}

		if cfgDir, err := config.Dir(); err == nil {
			if err := logging.Initialize(cfgDir, debugMode); err != nil {
				fmt.Fprintf(os.Stderr, "warning: file logging disabled: %v\n", err)
			}
		}

		// Interactive surfaces own stdout/stderr; keep them clean.
		if cmd.Name() == "chat" || (cmd == cmd.Root() && len(args) == 0) {
			return nil
		}

		zcfg := zap.NewProductionConfig()
		if debugMode {
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zcfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
		logging.CloseAll()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return runInteractive()
		}
		return executePrompt(strings.Join(args, " "))
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version.String())
		fmt.Println("Powered by Gemini")
		fmt.Println()
		fmt.Println("https://github.com/Tahsine/2giants-cli")
	},
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "View execution history",
	RunE:  runHistory,
}

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start interactive chat mode (same as running '2g' with no args)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInteractive()
	},
}

var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "List the tools available to the executor agent",
	RunE:  runTools,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false, "Show plan without executing")
	rootCmd.PersistentFlags().BoolVar(&safeMode, "safe", true, "Enable safety checks")
	rootCmd.PersistentFlags().BoolVar(&unsafeMode, "unsafe", false, "Disable safety checks")
	rootCmd.PersistentFlags().StringVarP(&sessionID, "session", "s", "", "Session ID")
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug mode")

	historyCmd.Flags().IntVarP(&historyLast, "last", "n", 10, "Show last N entries")
	historyCmd.Flags().StringVar(&historyDate, "date", "", "Date (YYYY-MM-DD)")
	historyCmd.Flags().BoolVar(&historyStats, "stats", false, "Show statistics")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(toolsCmd)
}

// runTools lists every registered tool, grouped by category.
func runTools(cmd *cobra.Command, args []string) error {
	registry := tools.NewRegistry()
	wd := tools.NewWorkdir()

	if err := file.RegisterAll(registry, wd); err != nil {
		return err
	}
	if err := shell.RegisterAll(registry, wd); err != nil {
		return err
	}

	logger.Info("Listing tools",
		zap.Int("count", registry.Count()),
		zap.String("workdir", wd.Path()))

	fmt.Printf("🔧 %d tools available to the executor agent\n\n", registry.Count())
	for _, category := range []tools.ToolCategory{tools.CategoryFile, tools.CategoryShell} {
		fmt.Printf("%s\n", category)
		for _, t := range registry.GetByCategory(category) {
			fmt.Printf("  %-26s %s\n", t.Name, t.Description)
		}
		fmt.Println()
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "❌ Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig loads the user config, falling back to defaults.
func loadConfig() *config.Config {
	dir, err := config.Dir()
	if err != nil {
		return config.Default()
	}
	cfg, err := config.Load(dir)
	if err != nil {
		logging.Boot("config load failed, using defaults: %v", err)
		return config.Default()
	}
	return cfg
}

// executePrompt handles one-shot execution of a single prompt.
func executePrompt(prompt string) error {
	logger.Info("Processing prompt",
		zap.String("input", prompt),
		zap.Bool("dry_run", dryRun),
		zap.Bool("safe_mode", safeMode))

	fmt.Printf("💬 You: %s\n\n", prompt)

	if dryRun {
		fmt.Println("🔍 DRY RUN MODE - No execution")
		return nil
	}

	ctx := context.Background()
	cfg := loadConfig()

	orch, err := orchestrator.FromConfig(ctx, cfg, debugMode)
	if err != nil {
		return err
	}
	defer orch.Close()

	if debugMode {
		// Safe mode and session are accepted end to end but gate nothing yet.
		fmt.Printf("[2g] safe_mode=%v session=%q\n", safeMode, sessionID)
	}

	fmt.Println("🤖 2Giants is thinking...")
	reply := orch.Execute(ctx, prompt, sessionID)
	logger.Info("Turn complete", zap.Int("reply_len", len(reply)))

	fmt.Printf("🤖 2Giants: %s\n", renderMarkdown(reply))
	return nil
}

// runHistory prints recorded turns from the history store.
func runHistory(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	dir, err := config.Dir()
	if err != nil {
		return fmt.Errorf("cannot resolve config directory: %w", err)
	}

	store, err := session.Open(cfg.HistoryDBPath(dir))
	if err != nil {
		return fmt.Errorf("cannot open history: %w", err)
	}
	defer store.Close()

	logger.Info("Querying history",
		zap.Bool("stats", historyStats),
		zap.String("date", historyDate),
		zap.Int("last", historyLast))

	if historyStats {
		stats, err := store.Stats()
		if err != nil {
			return err
		}
		fmt.Println("📜 History Statistics")
		fmt.Println(strings.Repeat("─", 40))
		fmt.Printf("Total turns: %d\n", stats.TotalTurns)
		for route, count := range stats.TurnsByRoute {
			fmt.Printf("  %-14s %d\n", route, count)
		}
		if stats.TotalTurns > 0 {
			fmt.Printf("First: %s\n", stats.FirstTurn.Format("2006-01-02 15:04:05"))
			fmt.Printf("Last:  %s\n", stats.LastTurn.Format("2006-01-02 15:04:05"))
		}
		return nil
	}

	var turns []session.Turn
	if historyDate != "" {
		turns, err = store.ByDate(historyDate)
	} else {
		turns, err = store.Recent(historyLast)
	}
	if err != nil {
		return err
	}
	logger.Debug("History loaded", zap.Int("turns", len(turns)))

	if len(turns) == 0 {
		fmt.Println("📜 No history yet.")
		return nil
	}

	fmt.Println("📜 Execution History")
	fmt.Println(strings.Repeat("─", 60))
	for _, t := range turns {
		fmt.Printf("%s  [%-12s]  %s\n",
			t.CreatedAt.Format("2006-01-02 15:04"), t.Route, t.Utterance)
	}
	return nil
}
