package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/filetidy/filetidy/internal/config"
	"github.com/filetidy/filetidy/internal/export"
	"github.com/filetidy/filetidy/internal/history"
	"github.com/filetidy/filetidy/internal/rename"
	"github.com/filetidy/filetidy/internal/scanner"
	"github.com/filetidy/filetidy/internal/ui"
)

var (
	// Version information (set via -ldflags during build)
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
)

// Shared flags
var (
	jsonOutput bool
	recursive  bool
	extFilter  []string

	templateFlag   string
	caseFlag       string
	dateFormatFlag string
	stripFlag      bool

	organizeFlag      bool
	folderPatternFlag string
	destinationFlag   string

	idsFlag          []string
	allOrNothingFlag bool
	yesFlag          bool
	interactiveFlag  bool
	noHistoryFlag    bool
	allowedRootsFlag []string

	clearHistoryFlag bool

	outFlag string

	exportPreviewFlag bool
	statsFlag         bool
)

var rootCmd = &cobra.Command{
	Use:   "filetidy",
	Short: "Batch file renaming and organizing tool",
	Long: "filetidy scans directories, previews template-based renames with conflict\n" +
		"detection, applies them with per-file failure isolation, and keeps an undo\n" +
		"history of every operation.",
}

var scanCmd = &cobra.Command{
	Use:   "scan <directory>",
	Short: "Scan a directory and list its files with categories",
	Args:  cobra.ExactArgs(1),
	Run:   runScan,
}

var previewCmd = &cobra.Command{
	Use:   "preview <directory>",
	Short: "Preview renames for a directory without touching any file",
	Args:  cobra.ExactArgs(1),
	Run:   runPreview,
}

var applyCmd = &cobra.Command{
	Use:   "apply <directory|preview.json>",
	Short: "Execute renames for a directory or a saved preview",
	Args:  cobra.ExactArgs(1),
	Run:   runApply,
}

var exportCmd = &cobra.Command{
	Use:   "export <directory>",
	Short: "Export a file list or rename preview as CSV",
	Args:  cobra.ExactArgs(1),
	Run:   runExport,
}

var undoCmd = &cobra.Command{
	Use:   "undo [operation-id]",
	Short: "Undo a recorded operation (most recent if no id is given)",
	Args:  cobra.MaximumNArgs(1),
	Run:   runUndo,
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded operations",
	Run:   runHistory,
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show configuration file location and contents",
	Run:   runConfig,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("filetidy %s\n", version)
		fmt.Printf("  Commit:     %s\n", commit)
		fmt.Printf("  Built:      %s\n", buildTime)
	},
}

func init() {
	for _, c := range []*cobra.Command{scanCmd, previewCmd, applyCmd, exportCmd} {
		c.Flags().BoolVarP(&recursive, "recursive", "r", false, "include subdirectories")
		c.Flags().StringSliceVar(&extFilter, "ext", nil, "only include these extensions (e.g. jpg,png)")
	}

	for _, c := range []*cobra.Command{previewCmd, applyCmd, exportCmd} {
		c.Flags().StringVarP(&templateFlag, "template", "t", "", "naming template, e.g. \"{date}_{name}.{ext}\"")
		c.Flags().StringVar(&caseFlag, "case", "", "case style: none, lowercase, uppercase, capitalize, title-case, kebab-case, snake-case, camel-case, pascal-case")
		c.Flags().StringVar(&dateFormatFlag, "date-format", "", "date format for {date}, e.g. YYYY-MM-DD")
		c.Flags().BoolVar(&stripFlag, "strip", false, "strip existing date/sequence patterns from names")
		c.Flags().BoolVar(&organizeFlag, "organize", false, "move files into folders derived from --folder-pattern")
		c.Flags().StringVar(&folderPatternFlag, "folder-pattern", "", "folder pattern, e.g. \"{year}/{month}\" or \"{category}\"")
		c.Flags().StringVar(&destinationFlag, "dest", "", "destination base directory for organize mode")
	}

	scanCmd.Flags().BoolVar(&jsonOutput, "json", false, "emit JSON instead of a table")
	previewCmd.Flags().BoolVar(&jsonOutput, "json", false, "emit JSON instead of a table")
	previewCmd.Flags().StringVarP(&outFlag, "out", "o", "", "write the preview JSON to a file for later apply")
	historyCmd.Flags().BoolVar(&jsonOutput, "json", false, "emit JSON instead of a table")

	applyCmd.Flags().StringSliceVar(&idsFlag, "ids", nil, "only execute the proposals with these ids")
	applyCmd.Flags().BoolVar(&allOrNothingFlag, "all-or-nothing", false, "refuse to start unless every selected file passes preflight")
	applyCmd.Flags().BoolVarP(&yesFlag, "yes", "y", false, "skip the confirmation prompt")
	applyCmd.Flags().BoolVarP(&interactiveFlag, "interactive", "i", false, "pick files to rename in a TUI")
	applyCmd.Flags().BoolVar(&noHistoryFlag, "no-history", false, "do not record this operation in history")
	applyCmd.Flags().StringSliceVar(&allowedRootsFlag, "allowed-root", nil, "restrict destinations to these directories")

	historyCmd.Flags().BoolVar(&clearHistoryFlag, "clear", false, "remove all recorded operations")

	exportCmd.Flags().BoolVar(&exportPreviewFlag, "preview", false, "export the rename preview instead of the raw file list")
	exportCmd.Flags().StringVarP(&outFlag, "out", "o", "", "write CSV to a file instead of stdout")
	exportCmd.Flags().BoolVar(&statsFlag, "stats", false, "print summary statistics after exporting")

	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(applyCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(undoCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// signalContext returns a context cancelled on Ctrl+C / SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Println("\nCancelling...")
		cancel()
	}()

	return ctx, cancel
}

func scanDirectory(dir string) *scanner.Result {
	ctx, cancel := signalContext()
	defer cancel()

	result, err := scanner.Scan(ctx, dir, scanner.Options{
		Recursive:  recursive,
		Extensions: extFilter,
	})
	if err != nil {
		if ctx.Err() == context.Canceled {
			fmt.Fprintf(os.Stderr, "Scan cancelled by user\n")
			os.Exit(130)
		}
		fmt.Fprintf(os.Stderr, "Scan failed: %v\n", err)
		os.Exit(1)
	}

	return result
}

func runScan(cmd *cobra.Command, args []string) {
	result := scanDirectory(args[0])

	if jsonOutput {
		printJSON(result)
		return
	}

	fmt.Printf("Scanned %s — %d files\n\n", result.Path, result.TotalCount)
	for _, f := range result.Files {
		fmt.Printf("  %-10s  %10d  %s\n", f.Category, f.Size, f.RelativePath)
	}
	if result.Truncated {
		fmt.Printf("\n⚠ Scan truncated at %d files\n", scanner.MaxFiles)
	}
}

// buildPreview scans the directory and generates proposals from the merged
// config defaults and command-line flags.
func buildPreview(cmd *cobra.Command, dir string) (*rename.Preview, []scanner.FileInfo, *config.Config) {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	result := scanDirectory(dir)
	if len(result.Files) == 0 {
		fmt.Println("No files to rename.")
		os.Exit(0)
	}

	template := cfg.Rename.Template
	if cmd.Flags().Changed("template") {
		template = templateFlag
	}

	opts := cfg.PreviewOptions()
	if cmd.Flags().Changed("case") {
		opts.CaseStyle = rename.CaseStyle(caseFlag)
	}
	if cmd.Flags().Changed("date-format") {
		opts.DateFormat = dateFormatFlag
	}
	if cmd.Flags().Changed("strip") {
		opts.StripExistingPatterns = stripFlag
	}
	if organizeFlag || cmd.Flags().Changed("folder-pattern") {
		pattern := folderPatternFlag
		if pattern == "" && opts.OrganizeOptions != nil {
			pattern = opts.OrganizeOptions.FolderPattern
		}
		if pattern == "" {
			fmt.Fprintf(os.Stderr, "Error: organize mode requires --folder-pattern\n")
			os.Exit(1)
		}

		dest := destinationFlag
		if dest == "" && opts.OrganizeOptions != nil {
			dest = opts.OrganizeOptions.DestinationDirectory
		}

		opts.ReorganizationMode = rename.ModeOrganize
		opts.OrganizeOptions = &rename.OrganizeOptions{
			DestinationDirectory: dest,
			FolderPattern:        pattern,
		}
	}

	preview, err := rename.GeneratePreview(result.Files, template, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Preview failed: %v\n", err)
		os.Exit(1)
	}

	return preview, result.Files, cfg
}

func runPreview(cmd *cobra.Command, args []string) {
	preview, _, _ := buildPreview(cmd, args[0])

	if outFlag != "" {
		data, err := json.MarshalIndent(preview, "", "  ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding preview: %v\n", err)
			os.Exit(1)
		}
		if err := os.WriteFile(outFlag, data, 0644); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing preview: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Preview saved to:\n  %s\n\nApply with: filetidy apply %s\n", outFlag, outFlag)
		return
	}

	if jsonOutput {
		printJSON(preview)
		return
	}

	fmt.Print(ui.RenderPreview(preview))
}

// loadPreview reads a preview previously saved with "preview --out".
func loadPreview(path string) (*rename.Preview, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read preview file: %w", err)
	}

	var preview rename.Preview
	if err := json.Unmarshal(data, &preview); err != nil {
		return nil, fmt.Errorf("failed to parse preview: %w", err)
	}
	return &preview, nil
}

func runApply(cmd *cobra.Command, args []string) {
	var preview *rename.Preview
	var cfg *config.Config

	if info, err := os.Stat(args[0]); err == nil && !info.IsDir() {
		preview, err = loadPreview(args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading preview: %v\n", err)
			os.Exit(1)
		}
		cfg, err = config.Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	} else {
		preview, _, cfg = buildPreview(cmd, args[0])
	}

	execOpts := &rename.ExecuteOptions{
		ProposalIDs:  idsFlag,
		AllOrNothing: allOrNothingFlag,
	}

	if interactiveFlag {
		model := ui.NewPickerModel(preview)
		p := tea.NewProgram(model, tea.WithAltScreen())
		finalModel, err := p.Run()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
			os.Exit(1)
		}

		m := finalModel.(ui.PickerModel)
		if !m.Confirmed() {
			fmt.Println("Cancelled.")
			return
		}
		execOpts.ProposalIDs = m.SelectedIDs()
		if len(execOpts.ProposalIDs) == 0 {
			fmt.Println("Nothing selected.")
			return
		}
	} else {
		fmt.Print(ui.RenderPreview(preview))

		if preview.Summary.Ready == 0 {
			fmt.Println("Nothing to rename.")
			return
		}

		if !yesFlag {
			fmt.Printf("Rename %d file(s)? (yes/no): ", preview.Summary.Ready)
			var response string
			fmt.Scanln(&response)
			if response != "yes" && response != "y" {
				fmt.Println("Cancelled.")
				return
			}
		}
	}

	roots := cfg.Security.AllowedRoots
	if len(allowedRootsFlag) > 0 {
		roots = allowedRootsFlag
	}
	executor := rename.NewExecutor(roots)

	bar := progressbar.NewOptions(len(preview.Proposals),
		progressbar.OptionSetDescription("Renaming"),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
	execOpts.OnResult = func(r rename.FileResult) {
		bar.Add(1)
	}

	result := executor.Execute(preview.Proposals, execOpts)
	bar.Finish()

	fmt.Print(ui.RenderBatchResult(result))

	if !noHistoryFlag && result.Summary.Succeeded > 0 {
		entry, err := recordHistory(cfg, result)
		if err != nil {
			fmt.Fprintf(os.Stderr, "⚠ Failed to record history: %v\n", err)
		} else {
			fmt.Printf("\nUndo with: filetidy undo %s\n", entry.ID)
		}
	}

	if !result.Success {
		os.Exit(1)
	}
}

func runExport(cmd *cobra.Command, args []string) {
	var out io.Writer = os.Stdout
	if outFlag != "" {
		f, err := os.Create(outFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating output file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		out = f
	}

	var files []scanner.FileInfo
	var err error

	if exportPreviewFlag {
		var preview *rename.Preview
		preview, files, _ = buildPreview(cmd, args[0])
		err = export.WritePreviewCSV(out, preview)
	} else {
		result := scanDirectory(args[0])
		files = result.Files
		err = export.WriteFilesCSV(out, files)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Export failed: %v\n", err)
		os.Exit(1)
	}

	if outFlag != "" {
		fmt.Printf("Exported %d rows to %s\n", len(files), outFlag)
	}
	if statsFlag {
		fmt.Fprintln(os.Stderr, export.ComputeStatistics(files))
	}
}

func runUndo(cmd *cobra.Command, args []string) {
	store, err := openHistory()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var id string
	if len(args) == 1 {
		id = args[0]
	} else {
		entries, err := store.List()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading history: %v\n", err)
			os.Exit(1)
		}
		for _, e := range entries {
			if !e.Undone {
				id = e.ID
				break
			}
		}
		if id == "" {
			fmt.Println("Nothing to undo.")
			return
		}
	}

	result, err := store.Undo(id)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Undo failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Restored %d file(s)", result.FilesRestored)
	if result.FilesFailed > 0 {
		fmt.Printf(", %d failed", result.FilesFailed)
	}
	fmt.Println()
	for _, e := range result.Errors {
		fmt.Printf("  ⚠ %s\n", e)
	}

	if !result.Success {
		os.Exit(1)
	}
}

func runHistory(cmd *cobra.Command, args []string) {
	store, err := openHistory()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if clearHistoryFlag {
		if err := store.Clear(); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing history: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("History cleared.")
		return
	}

	entries, err := store.List()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading history: %v\n", err)
		os.Exit(1)
	}

	if jsonOutput {
		printJSON(entries)
		return
	}

	if len(entries) == 0 {
		fmt.Println("No recorded operations.")
		return
	}

	for _, e := range entries {
		status := ""
		if e.Undone {
			status = "  (undone)"
		}
		fmt.Printf("%s  %s  %-6s  %d files (%d ok, %d failed)%s\n",
			e.ID, e.Timestamp.Format("2006-01-02 15:04:05"), e.OperationType,
			e.FileCount, e.Summary.Succeeded, e.Summary.Failed, status)
	}
}

func runConfig(cmd *cobra.Command, args []string) {
	configPath, err := config.ConfigPath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Configuration file: %s\n\n", configPath)

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "⚠ Config invalid: %v\n\n", err)
	}

	fmt.Println("Rename defaults:")
	fmt.Printf("  Template:       %s\n", cfg.Rename.Template)
	fmt.Printf("  Date format:    %s\n", cfg.Rename.DateFormat)
	fmt.Printf("  Case style:     %s\n", cfg.Rename.CaseStyle)
	fmt.Printf("  Strip patterns: %v\n", cfg.Rename.StripExistingPatterns)

	fmt.Println("\nOrganize defaults:")
	fmt.Printf("  Mode:           %s\n", cfg.Organize.Mode)
	if cfg.Organize.FolderPattern != "" {
		fmt.Printf("  Folder pattern: %s\n", cfg.Organize.FolderPattern)
	}
	if cfg.Organize.Destination != "" {
		fmt.Printf("  Destination:    %s\n", cfg.Organize.Destination)
	}

	fmt.Printf("\nHistory: keep %d entries\n", cfg.History.MaxEntries)

	if len(cfg.Security.AllowedRoots) > 0 {
		fmt.Printf("\nAllowed roots:\n  %s\n", strings.Join(cfg.Security.AllowedRoots, "\n  "))
	}

	historyPath, err := history.DefaultPath()
	if err == nil {
		fmt.Printf("\nHistory file: %s\n", filepath.Clean(historyPath))
	}
}

func openHistory() (*history.Store, error) {
	path, err := history.DefaultPath()
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	return history.NewStore(path, cfg.History.MaxEntries), nil
}

func recordHistory(cfg *config.Config, result *rename.BatchResult) (*history.Entry, error) {
	path, err := history.DefaultPath()
	if err != nil {
		return nil, err
	}
	store := history.NewStore(path, cfg.History.MaxEntries)
	return store.Record(result)
}

func printJSON(v interface{}) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding JSON: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(data))
}
