// Package main provides the CLI entrypoint for taja.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/taja/internal/board"
	"github.com/verte-zerg/taja/internal/boardui"
	"github.com/verte-zerg/taja/internal/config"
	"github.com/verte-zerg/taja/internal/corpus"
	"github.com/verte-zerg/taja/internal/drill"
	"github.com/verte-zerg/taja/internal/drillui"
	"github.com/verte-zerg/taja/internal/engine"
	"github.com/verte-zerg/taja/internal/folder"
	"github.com/verte-zerg/taja/internal/model"
	"github.com/verte-zerg/taja/internal/settings"
	"github.com/verte-zerg/taja/internal/storage"
	"github.com/verte-zerg/taja/internal/tui"
)

var (
	practiceLang   string
	practiceType   string
	practiceCustom bool
	practiceFolder string
	practiceTarget int

	drillLang string

	boardFilter string
	boardPlain  bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "taja",
		Short:         "Terminal typing trainer for Korean and English",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runPracticeCmd,
	}

	rootCmd.Flags().StringVar(&practiceLang, "lang", string(settings.DefaultLanguage), "language: korean or english")
	rootCmd.Flags().StringVar(&practiceType, "type", string(settings.DefaultPracticeType), "sentence length: short or long")
	rootCmd.Flags().BoolVar(&practiceCustom, "custom", false, "practice sentences from the selected folder")
	rootCmd.Flags().StringVar(&practiceFolder, "folder", "", "select this folder and practice it")
	rootCmd.Flags().IntVar(&practiceTarget, "target-wpm", settings.DefaultTargetWPM, "target speed for round summaries")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newDrillCmd())
	rootCmd.AddCommand(newBoardCmd())
	rootCmd.AddCommand(newFolderCmd())

	return rootCmd
}

func runPracticeCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(st)

	ctx := context.Background()
	prefs, err := settings.Load(ctx, st)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}
	resolved, folderName, err := resolveSettings(cmd, prefs, fileCfg)
	if err != nil {
		return err
	}

	folders := folder.NewManager(st)
	if folderName != "" {
		f, err := folders.FindByName(ctx, folderName)
		if err != nil {
			return folderLookupError(folderName, err)
		}
		if err := folders.Select(ctx, f.ID); err != nil {
			return fmt.Errorf("failed to select folder: %w", err)
		}
		resolved.UseCustomMode = true
	}

	source, mode, sourceFolder, err := buildPracticeSource(ctx, folders, resolved)
	if err != nil {
		return err
	}

	if err := settings.Save(ctx, st, resolved); err != nil {
		logErrf("failed to save settings: %v\n", err)
	}

	boards := board.NewStore(st)
	eng := engine.New(engine.Config{
		Source:     source,
		Language:   resolved.Language,
		Mode:       mode,
		FolderName: sourceFolder,
		TargetWPM:  resolved.TargetWPM,
		Record: func(entry model.LeaderboardEntry) {
			if err := boards.Record(ctx, entry); err != nil {
				logErrf("failed to record leaderboard entry: %v\n", err)
			}
		},
	})

	m := tui.NewModel(eng, st, folders, resolved, config.DefaultCorpusDir())
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

// resolveSettings layers the file config over the persisted
// preferences and the changed flags over both. The returned folder
// name is non-empty when a folder should be selected before starting.
func resolveSettings(cmd *cobra.Command, prefs settings.Settings, fileCfg config.FileConfig) (settings.Settings, string, error) {
	resolved := prefs
	folderName := ""

	practice := fileCfg.Practice
	if practice.Lang != nil {
		lang, err := model.ParseLanguage(*practice.Lang)
		if err != nil {
			return resolved, "", fmt.Errorf("invalid lang in config: %w", err)
		}
		resolved.Language = lang
	}
	if practice.Type != nil {
		parsed, err := model.ParsePracticeType(*practice.Type)
		if err != nil {
			return resolved, "", fmt.Errorf("invalid type in config: %w", err)
		}
		resolved.PracticeType = parsed
	}
	if practice.Custom != nil {
		resolved.UseCustomMode = *practice.Custom
	}
	if practice.Folder != nil && *practice.Folder != "" {
		folderName = *practice.Folder
	}
	if practice.TargetWPM != nil {
		if *practice.TargetWPM < 1 {
			return resolved, "", fmt.Errorf("target-wpm in config must be >= 1")
		}
		resolved.TargetWPM = *practice.TargetWPM
	}

	if cmd.Flags().Changed("lang") {
		lang, err := model.ParseLanguage(practiceLang)
		if err != nil {
			return resolved, "", fmt.Errorf("invalid --lang value: %w", err)
		}
		resolved.Language = lang
	}
	if cmd.Flags().Changed("type") {
		parsed, err := model.ParsePracticeType(practiceType)
		if err != nil {
			return resolved, "", fmt.Errorf("invalid --type value: %w", err)
		}
		resolved.PracticeType = parsed
	}
	if cmd.Flags().Changed("custom") {
		resolved.UseCustomMode = practiceCustom
	}
	if cmd.Flags().Changed("folder") && practiceFolder != "" {
		folderName = practiceFolder
	}
	if cmd.Flags().Changed("target-wpm") {
		if practiceTarget < 1 {
			return resolved, "", fmt.Errorf("--target-wpm must be >= 1")
		}
		resolved.TargetWPM = practiceTarget
	}

	return resolved, folderName, nil
}

func buildPracticeSource(ctx context.Context, folders *folder.Manager, prefs settings.Settings) (engine.ContentSource, model.Mode, string, error) {
	if prefs.UseCustomMode {
		f, ok, err := folders.Selected(ctx)
		if err != nil {
			return nil, "", "", fmt.Errorf("failed to load selected folder: %w", err)
		}
		if !ok {
			return nil, "", "", noFolderSelectedError()
		}
		return engine.NewFolderSource(f.Sentences), model.ModeCustom, f.Name, nil
	}
	sentences, err := corpus.Sentences(prefs.Language, prefs.PracticeType, config.DefaultCorpusDir())
	if err != nil {
		return nil, "", "", corpusLoadError(prefs.Language, string(prefs.PracticeType), err)
	}
	return engine.NewCorpusSource(sentences), model.ModeNormal, "", nil
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
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
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

func newDrillCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "drill",
		Short: "30-second word drill",
		Args:  cobra.NoArgs,
		RunE:  runDrillCmd,
	}
	cmd.Flags().StringVar(&drillLang, "lang", "", "language: korean or english (default: last used)")
	return cmd
}

func runDrillCmd(cmd *cobra.Command, _ []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(st)

	ctx := context.Background()
	prefs, err := settings.Load(ctx, st)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}
	lang := prefs.Language
	if cmd.Flags().Changed("lang") {
		parsed, err := model.ParseLanguage(drillLang)
		if err != nil {
			return fmt.Errorf("invalid --lang value: %w", err)
		}
		lang = parsed
	}

	words, err := corpus.Words(lang, config.DefaultCorpusDir())
	if err != nil {
		return corpusLoadError(lang, "word", err)
	}

	game := drill.New(words, lang, nil)
	m := drillui.NewModel(game, board.NewDrillStore(st), nil)
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run drill TUI: %w", err)
	}
	return nil
}

func newBoardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "board",
		Short: "Show the leaderboards",
		Args:  cobra.NoArgs,
		RunE:  runBoardCmd,
	}
	cmd.Flags().StringVar(&boardFilter, "filter", "all", "board to show: all, korean, english, custom, or drill")
	cmd.Flags().BoolVar(&boardPlain, "plain", false, "print a plain table instead of the interactive view")
	return cmd
}

func runBoardCmd(cmd *cobra.Command, _ []string) error {
	filter, drillBoard, err := parseBoardFilter(boardFilter)
	if err != nil {
		return err
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(st)

	boards := board.NewStore(st)
	drills := board.NewDrillStore(st)

	if boardPlain || !boardui.StdoutIsTerminal() {
		ctx := context.Background()
		if drillBoard {
			entries, err := drills.Query(ctx, board.FilterAll)
			if err != nil {
				return fmt.Errorf("failed to load drill board: %w", err)
			}
			return boardui.RenderPlainDrill(cmd.OutOrStdout(), entries)
		}
		entries, err := boards.Query(ctx, filter)
		if err != nil {
			return fmt.Errorf("failed to load board: %w", err)
		}
		return boardui.RenderPlain(cmd.OutOrStdout(), entries)
	}

	m := boardui.NewModel(boards, drills)
	m.ShowBoard(boardFilter)
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run board TUI: %w", err)
	}
	return nil
}

func parseBoardFilter(name string) (board.Filter, bool, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "all":
		return board.FilterAll, false, nil
	case "korean":
		return board.FilterKorean, false, nil
	case "english":
		return board.FilterEnglish, false, nil
	case "custom":
		return board.FilterCustom, false, nil
	case "drill":
		return board.FilterAll, true, nil
	}
	return "", false, fmt.Errorf("unknown --filter value %q (use all, korean, english, custom, or drill)", name)
}

func newFolderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "folder",
		Short: "Manage custom sentence folders",
	}
	cmd.AddCommand(newFolderListCmd())
	cmd.AddCommand(newFolderCreateCmd())
	cmd.AddCommand(newFolderRenameCmd())
	cmd.AddCommand(newFolderDeleteCmd())
	cmd.AddCommand(newFolderSelectCmd())
	cmd.AddCommand(newFolderShowCmd())
	cmd.AddCommand(newFolderAddCmd())
	cmd.AddCommand(newFolderRemoveCmd())
	return cmd
}

func newFolderListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List folders",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			st, err := openStore()
			if err != nil {
				return err
			}
			defer closeStore(st)
			ctx := context.Background()
			folders := folder.NewManager(st)
			all, err := folders.List(ctx)
			if err != nil {
				return fmt.Errorf("failed to list folders: %w", err)
			}
			if len(all) == 0 {
				return printLine(cmd, "No folders yet. Create one with: taja folder create <name>")
			}
			selected, ok, err := folders.Selected(ctx)
			if err != nil {
				return fmt.Errorf("failed to load selected folder: %w", err)
			}
			for _, f := range all {
				marker := " "
				if ok && f.ID == selected.ID {
					marker = "*"
				}
				if err := printLine(cmd, fmt.Sprintf("%s %s (%d sentences)", marker, f.Name, len(f.Sentences))); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func newFolderCreateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create <name>",
		Short: "Create a folder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore()
			if err != nil {
				return err
			}
			defer closeStore(st)
			folders := folder.NewManager(st)
			f, err := folders.Create(context.Background(), args[0])
			if err != nil {
				return fmt.Errorf("failed to create folder: %w", err)
			}
			return printLine(cmd, fmt.Sprintf("Created folder %q", f.Name))
		},
	}
}

func newFolderRenameCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rename <name> <new-name>",
		Short: "Rename a folder",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore()
			if err != nil {
				return err
			}
			defer closeStore(st)
			ctx := context.Background()
			folders := folder.NewManager(st)
			f, err := folders.FindByName(ctx, args[0])
			if err != nil {
				return folderLookupError(args[0], err)
			}
			if err := folders.Rename(ctx, f.ID, args[1]); err != nil {
				return fmt.Errorf("failed to rename folder: %w", err)
			}
			return printLine(cmd, fmt.Sprintf("Renamed folder %q to %q", args[0], args[1]))
		},
	}
}

func newFolderDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a folder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore()
			if err != nil {
				return err
			}
			defer closeStore(st)
			ctx := context.Background()
			folders := folder.NewManager(st)
			f, err := folders.FindByName(ctx, args[0])
			if err != nil {
				return folderLookupError(args[0], err)
			}
			if err := folders.Delete(ctx, f.ID); err != nil {
				return fmt.Errorf("failed to delete folder: %w", err)
			}
			return printLine(cmd, fmt.Sprintf("Deleted folder %q", f.Name))
		},
	}
}

func newFolderSelectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "select <name>",
		Short: "Select the folder used in custom mode",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore()
			if err != nil {
				return err
			}
			defer closeStore(st)
			ctx := context.Background()
			folders := folder.NewManager(st)
			f, err := folders.FindByName(ctx, args[0])
			if err != nil {
				return folderLookupError(args[0], err)
			}
			if err := folders.Select(ctx, f.ID); err != nil {
				return fmt.Errorf("failed to select folder: %w", err)
			}
			return printLine(cmd, fmt.Sprintf("Selected folder %q", f.Name))
		},
	}
}

func newFolderShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <name>",
		Short: "Show the sentences in a folder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore()
			if err != nil {
				return err
			}
			defer closeStore(st)
			folders := folder.NewManager(st)
			f, err := folders.FindByName(context.Background(), args[0])
			if err != nil {
				return folderLookupError(args[0], err)
			}
			if len(f.Sentences) == 0 {
				return printLine(cmd, fmt.Sprintf("Folder %q is empty. Add sentences with: taja folder add %s <sentence>", f.Name, f.Name))
			}
			for i, sentence := range f.Sentences {
				if err := printLine(cmd, fmt.Sprintf("%d. %s", i+1, sentence)); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func newFolderAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <name> <sentence>",
		Short: "Add a sentence to a folder",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore()
			if err != nil {
				return err
			}
			defer closeStore(st)
			ctx := context.Background()
			folders := folder.NewManager(st)
			f, err := folders.FindByName(ctx, args[0])
			if err != nil {
				return folderLookupError(args[0], err)
			}
			sentence := strings.Join(args[1:], " ")
			if err := folders.AddSentence(ctx, f.ID, sentence); err != nil {
				return fmt.Errorf("failed to add sentence: %w", err)
			}
			return printLine(cmd, fmt.Sprintf("Added sentence to %q", f.Name))
		},
	}
}

func newFolderRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <name> <number>",
		Short: "Remove a sentence by its number in 'folder show'",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			number, err := strconv.Atoi(args[1])
			if err != nil || number < 1 {
				return fmt.Errorf("sentence number must be a positive integer, got %q", args[1])
			}
			st, err := openStore()
			if err != nil {
				return err
			}
			defer closeStore(st)
			ctx := context.Background()
			folders := folder.NewManager(st)
			f, err := folders.FindByName(ctx, args[0])
			if err != nil {
				return folderLookupError(args[0], err)
			}
			if err := folders.RemoveSentence(ctx, f.ID, number-1); err != nil {
				return fmt.Errorf("failed to remove sentence: %w", err)
			}
			return printLine(cmd, fmt.Sprintf("Removed sentence %d from %q", number, f.Name))
		},
	}
}

func openStore() (*storage.Store, error) {
	st, err := storage.Open(config.DefaultDBPath())
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}
	return st, nil
}

func closeStore(st *storage.Store) {
	if err := st.Close(); err != nil {
		logErrf("failed to close db: %v\n", err)
	}
}

func printLine(cmd *cobra.Command, s string) error {
	if _, err := fmt.Fprintln(cmd.OutOrStdout(), s); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func folderLookupError(name string, err error) error {
	if errors.Is(err, folder.ErrNotFound) {
		lines := []string{
			fmt.Sprintf("folder %q not found", name),
			"List folders: taja folder list",
			fmt.Sprintf("Create it: taja folder create %s", name),
		}
		return fmt.Errorf("%s", strings.Join(lines, "\n"))
	}
	return fmt.Errorf("failed to find folder %q: %w", name, err)
}

func noFolderSelectedError() error {
	lines := []string{
		"custom mode needs a selected folder",
		"List folders: taja folder list",
		"Select one: taja folder select <name>",
		"Or start normal practice: taja --custom=false",
	}
	return fmt.Errorf("%s", strings.Join(lines, "\n"))
}

func corpusLoadError(lang model.Language, kind string, err error) error {
	lines := []string{
		fmt.Sprintf("failed to load %s %s corpus: %v", lang, kind, err),
		fmt.Sprintf("expected %s under %s or in the built-in corpus", corpus.FileName(lang, kind), config.DefaultCorpusDir()),
	}
	return fmt.Errorf("%s", strings.Join(lines, "\n"))
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# taja configuration
# Uncomment a value to enable it. CLI flags override config values.

[practice]
# lang = %q        # Language: korean or english
# type = %q          # Sentence length: short or long
# custom = false          # Start in custom folder mode
# folder = ""             # Folder to select on start (implies custom)
# target-wpm = %d        # Target speed for round summaries
`,
		string(settings.DefaultLanguage),
		string(settings.DefaultPracticeType),
		settings.DefaultTargetWPM,
	)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
