// Package main provides the CLI entrypoint for osrs-advisor.
package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/sh0bas/osrs-advisor/internal/advisor"
	"github.com/sh0bas/osrs-advisor/internal/config"
	"github.com/sh0bas/osrs-advisor/internal/model"
	"github.com/sh0bas/osrs-advisor/internal/profile"
	"github.com/sh0bas/osrs-advisor/internal/store"
	"github.com/sh0bas/osrs-advisor/internal/tui"
	"github.com/sh0bas/osrs-advisor/internal/wom"
)

const (
	defaultPeriod    = "week"
	defaultTopSkills = profile.DefaultTopSkills
	defaultTopBosses = profile.DefaultTopBosses
	defaultHistory   = 10

	apiKeyEnvVar = "OSRS_ADVISOR_API_KEY"
)

var (
	rootAPIKey    string
	rootModel     string
	rootPeriod    string
	rootTopSkills int
	rootTopBosses int
	rootWOMBase   string
	rootLLMBase   string

	historyLast int
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "osrs-advisor",
		Short:         "TUI activity advisor for Old School RuneScape",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runRootCmd,
	}

	rootCmd.PersistentFlags().StringVar(&rootAPIKey, "api-key", "", "recommendation service API key")
	rootCmd.PersistentFlags().StringVar(&rootModel, "model", "", "recommendation model name")
	rootCmd.PersistentFlags().StringVar(&rootPeriod, "period", defaultPeriod, "gains period (day, week, month, year)")
	rootCmd.PersistentFlags().IntVar(&rootTopSkills, "top-skills", defaultTopSkills, "skill gains shown in recent activity")
	rootCmd.PersistentFlags().IntVar(&rootTopBosses, "top-bosses", defaultTopBosses, "boss gains shown in recent activity")
	rootCmd.PersistentFlags().StringVar(&rootWOMBase, "wom-base-url", "", "WiseOldMan API base URL")
	rootCmd.PersistentFlags().StringVar(&rootLLMBase, "llm-base-url", "", "recommendation service base URL")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newLookupCmd())
	rootCmd.AddCommand(newRecommendCmd())
	rootCmd.AddCommand(newHistoryCmd())

	return rootCmd
}

func runRootCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	assembler, recommender := buildClients(cfg)

	var history tui.HistoryStore
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		logErrf("failed to open history db: %v\n", err)
	} else {
		history = st
		defer func() {
			if cerr := st.Close(); cerr != nil {
				logErrf("failed to close history db: %v\n", cerr)
			}
		}()
	}

	model := tui.NewModel(assembler, recommender, history, cfg.APIKey)
	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func newLookupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lookup <username>",
		Short: "Fetch and print a player's stats and recent activity",
		Args:  cobra.ExactArgs(1),
		RunE:  runLookupCmd,
	}
}

func runLookupCmd(cmd *cobra.Command, args []string) error {
	username, err := validateUsername(args[0])
	if err != nil {
		return err
	}
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	assembler, _ := buildClients(cfg)

	ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
	defer cancel()
	p, err := assembler.Assemble(ctx, username)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprint(cmd.OutOrStdout(), profile.Render(p)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return recordLookup(username, p)
}

func newRecommendCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "recommend <username>",
		Short: "Fetch a player's profile and print an AI activity suggestion",
		Args:  cobra.ExactArgs(1),
		RunE:  runRecommendCmd,
	}
}

func runRecommendCmd(cmd *cobra.Command, args []string) error {
	username, err := validateUsername(args[0])
	if err != nil {
		return err
	}
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if strings.TrimSpace(cfg.APIKey) == "" {
		return fmt.Errorf("no API key configured; set %s, add api-key to the config file, or pass --api-key", apiKeyEnvVar)
	}
	assembler, recommender := buildClients(cfg)

	ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
	defer cancel()
	p, err := assembler.Assemble(ctx, username)
	if err != nil {
		return err
	}
	prompt, err := advisor.BuildPrompt(p)
	if err != nil {
		return fmt.Errorf("failed to build prompt: %w", err)
	}
	text, err := recommender.Recommend(ctx, prompt, cfg.APIKey)
	if err != nil {
		return fmt.Errorf("failed to get recommendation: %w", err)
	}
	wrapped := tui.WrapText(text, outputWidth())
	if _, err := fmt.Fprintln(cmd.OutOrStdout(), wrapped); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return recordLookup(username, p)
}

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recently looked-up players",
		Args:  cobra.NoArgs,
		RunE:  runHistoryCmd,
	}
	cmd.Flags().IntVar(&historyLast, "last", defaultHistory, "number of players to list")
	return cmd
}

func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open history db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close history db: %v\n", cerr)
		}
	}()

	records, err := st.RecentLookups(cmd.Context(), historyLast)
	if err != nil {
		return fmt.Errorf("failed to list history: %w", err)
	}
	if len(records) == 0 {
		return fmt.Errorf("no lookups recorded yet")
	}
	for _, rec := range records {
		line := fmt.Sprintf("%s  %-12s  %s XP",
			rec.LookedUpAt.Local().Format("2006-01-02 15:04"),
			rec.DisplayName,
			profile.FormatXP(rec.TotalExperience),
		)
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), line); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o600); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

// resolveConfig merges flags, the config file, the environment and defaults.
// Flags win over the config file; the config file wins over the environment.
func resolveConfig(cmd *cobra.Command) (model.Config, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return model.Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "api-key", &rootAPIKey, fileCfg.Advisor.APIKey)
	applyStringConfig(cmd, "model", &rootModel, fileCfg.Advisor.Model)
	applyStringConfig(cmd, "period", &rootPeriod, fileCfg.Advisor.Period)
	applyIntConfig(cmd, "top-skills", &rootTopSkills, fileCfg.Advisor.TopSkills)
	applyIntConfig(cmd, "top-bosses", &rootTopBosses, fileCfg.Advisor.TopBosses)
	applyStringConfig(cmd, "wom-base-url", &rootWOMBase, fileCfg.Advisor.WOMBase)
	applyStringConfig(cmd, "llm-base-url", &rootLLMBase, fileCfg.Advisor.LLMBase)

	apiKey := rootAPIKey
	if apiKey == "" {
		apiKey = apiKeyFromEnv()
	}

	cfg := model.Config{
		APIKey:    apiKey,
		Model:     rootModel,
		Period:    rootPeriod,
		TopSkills: rootTopSkills,
		TopBosses: rootTopBosses,
		WOMBase:   rootWOMBase,
		LLMBase:   rootLLMBase,
	}
	if err := validateConfig(cfg); err != nil {
		return model.Config{}, err
	}
	return cfg, nil
}

// apiKeyFromEnv reads the API key from the environment, loading the optional
// .env file next to the config first.
func apiKeyFromEnv() string {
	if err := godotenv.Load(config.DefaultEnvPath()); err != nil {
		// The .env file is optional.
		_ = err
	}
	return strings.TrimSpace(os.Getenv(apiKeyEnvVar))
}

func buildClients(cfg model.Config) (*profile.Assembler, *advisor.Client) {
	womClient := wom.NewClient(cfg.WOMBase)
	assembler := profile.NewAssembler(womClient, cfg.Period, cfg.TopSkills, cfg.TopBosses)
	recommender := advisor.NewClient(cfg.LLMBase, cfg.Model)
	return assembler, recommender
}

// recordLookup stores a successful one-shot lookup, best-effort.
func recordLookup(username string, p model.PlayerProfile) error {
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		logErrf("failed to open history db: %v\n", err)
		return nil
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close history db: %v\n", cerr)
		}
	}()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	rec := model.LookupRecord{
		Username:        username,
		DisplayName:     p.DisplayName,
		TotalExperience: p.TotalExperience,
		LookedUpAt:      time.Now(),
	}
	if err := st.RecordLookup(ctx, rec); err != nil {
		logErrf("failed to record lookup: %v\n", err)
	}
	return nil
}

func validateUsername(raw string) (string, error) {
	username := strings.TrimSpace(raw)
	if username == "" {
		return "", fmt.Errorf("username must not be empty")
	}
	if len(username) > 12 {
		return "", fmt.Errorf("username must be at most 12 characters")
	}
	return username, nil
}

func validateConfig(cfg model.Config) error {
	switch cfg.Period {
	case "day", "week", "month", "year":
	default:
		return fmt.Errorf("--period must be one of day, week, month, year")
	}
	if cfg.TopSkills <= 0 {
		return fmt.Errorf("--top-skills must be > 0")
	}
	if cfg.TopBosses <= 0 {
		return fmt.Errorf("--top-bosses must be > 0")
	}
	return nil
}

func outputWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80
	}
	return width
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# osrs-advisor configuration
# Uncomment a value to enable it. CLI flags override config values.

[advisor]
# api-key = ""             # Recommendation service API key
# model = %q       # Recommendation model name
# period = %q           # Gains period: day, week, month, year
# top-skills = %d           # Skill gains shown in recent activity
# top-bosses = %d           # Boss gains shown in recent activity
# wom-base-url = %q  # WiseOldMan API base URL
# llm-base-url = %q  # Recommendation service base URL
`,
		advisor.DefaultModel,
		defaultPeriod,
		defaultTopSkills,
		defaultTopBosses,
		wom.DefaultBaseURL,
		advisor.DefaultBaseURL,
	)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
