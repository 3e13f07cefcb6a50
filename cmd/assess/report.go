package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"alfredoptarigan/ai-mentorship/internal/services"
	"alfredoptarigan/ai-mentorship/internal/session"
)

var flagOutDir string

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Export the last assessment as a standalone HTML report",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return exportReport(cmd.Context())
	},
}

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the last assessment in the terminal",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return showResults(cmd.Context())
	},
}

func init() {
	reportCmd.Flags().StringVarP(&flagOutDir, "out", "o", "", "directory for the report (default from ASSESS_REPORT_DIR)")
}

func exportReport(ctx context.Context) error {
	e, err := setup(ctx)
	if err != nil {
		return err
	}
	defer e.Close()

	result, _, err := session.LoadResults(ctx, e.store)
	if errors.Is(err, session.ErrNoResults) {
		return errors.New("no assessment results found, run `assess run` first")
	}
	if err != nil {
		return err
	}

	now := time.Now()
	html, err := services.FormatReport(result, now)
	if err != nil {
		return err
	}

	dir := e.cfg.Client.ReportDir
	if flagOutDir != "" {
		dir = flagOutDir
	}
	path, err := services.NewReportStorage(dir).SaveReport(services.ReportFilename(now), html)
	if err != nil {
		return err
	}

	fmt.Printf("📄 Report saved to %s\n", path)
	return nil
}

func showResults(ctx context.Context) error {
	e, err := setup(ctx)
	if err != nil {
		return err
	}
	defer e.Close()

	result, profile, err := session.LoadResults(ctx, e.store)
	if errors.Is(err, session.ErrNoResults) {
		return errors.New("no assessment results found, run `assess run` first")
	}
	if err != nil {
		return err
	}

	if profile.Name != "" {
		fmt.Printf("👋 %s, here is your analysis\n", profile.Name)
	}
	fmt.Println(renderMarkdown(services.FormatMarkdown(result)))
	return nil
}

// renderMarkdown falls back to the raw text when the terminal renderer fails.
func renderMarkdown(md string) string {
	out, err := glamour.Render(md, "dark")
	if err != nil {
		return md
	}
	return out
}
