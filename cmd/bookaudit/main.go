// Package main provides the entry point for bookaudit-go.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/ukaji3/bookaudit-go/pkg/bookaudit"
	"github.com/ukaji3/bookaudit-go/pkg/bookaudit/report"
	"github.com/ukaji3/bookaudit-go/pkg/bookaudit/ui"
)

var (
	outputDir string
	format    string
	skipVBA   bool
	verbose   bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "bookaudit [input.xlsx]",
		Short: "Analyze Excel workbook structure and VBA macros",
		Long: `bookaudit-go inspects an Excel workbook (worksheets, print areas, and
embedded VBA macro source) and writes an analysis report next to the file.

Run without arguments to pick the workbook through a file dialog; pass a
path to run headless without any dialogs.`,
		Args:         cobra.MaximumNArgs(1),
		RunE:         run,
		SilenceUsage: true,
	}

	rootCmd.Flags().StringVarP(&outputDir, "output-dir", "o", "", "Directory for the report file (default: next to the input file)")
	rootCmd.Flags().StringVar(&format, "format", "text", "Report format: text, markdown, json")
	rootCmd.Flags().BoolVar(&skipVBA, "skip-vba", false, "Skip macro extraction")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	setupLogging()

	switch report.Format(format) {
	case report.FormatText, report.FormatMarkdown, report.FormatJSON:
	default:
		return fmt.Errorf("invalid format: %s (must be text, markdown, or json)", format)
	}

	// The dialog surface is only raised when no path was given; a path
	// argument runs the same pipeline headless.
	var surface ui.UI
	var inputPath string
	if len(args) == 1 {
		surface = ui.NewConsole(cmd.OutOrStdout())
		inputPath = args[0]
	} else {
		surface = ui.Dialogs{}
		path, err := surface.PickWorkbook()
		if err != nil {
			return err
		}
		if path == "" {
			fmt.Fprintln(cmd.OutOrStdout(), "No file selected")
			return nil
		}
		inputPath = path
	}

	outputFile, err := analyzeAndReport(inputPath)
	if err != nil {
		surface.Notify(ui.KindError, "Error", fmt.Sprintf("An error occurred: %v", err))
		return err
	}

	return surface.Notify(ui.KindInfo, "Analysis Complete",
		fmt.Sprintf("Analysis has been saved to:\n%s", outputFile))
}

// analyzeAndReport runs the analysis pipeline and returns the report path.
func analyzeAndReport(path string) (string, error) {
	opts := bookaudit.DefaultOptions()
	if skipVBA {
		include := false
		opts.IncludeVBA = &include
	}

	result, err := bookaudit.Analyze(path, opts)
	if err != nil {
		return "", err
	}
	return report.Save(result, outputDir, report.Format(format))
}

func setupLogging() {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}
