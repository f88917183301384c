package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/reposcout/internal/core/domain"
)

// summaryStyles holds the lipgloss styles for the run summary.
type summaryStyles struct {
	Title   lipgloss.Style
	Muted   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
}

func newSummaryStyles() summaryStyles {
	return summaryStyles{
		Title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED")),
		Muted:   lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086")),
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color("#A6E3A1")),
		Warning: lipgloss.NewStyle().Foreground(lipgloss.Color("#F9E2AF")),
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("#F38BA8")),
	}
}

// plainStyles renders every element unchanged.
func plainStyles() summaryStyles {
	s := lipgloss.NewStyle()
	return summaryStyles{Title: s, Muted: s, Success: s, Warning: s, Error: s}
}

func printSummary(cmd *cobra.Command, summary *domain.RunSummary) {
	out := cmd.OutOrStdout()
	styles := plainStyles()
	if isTerminal(out) {
		styles = newSummaryStyles()
	}
	renderSummary(out, summary, styles)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// renderSummary writes one line per report followed by the totals.
func renderSummary(w io.Writer, summary *domain.RunSummary, styles summaryStyles) {
	ingested, failed, duplicates := summary.Counts()

	fmt.Fprintln(w, styles.Title.Render("Run "+summary.RunID))
	for i := range summary.Reports {
		r := &summary.Reports[i]
		fmt.Fprintf(w, "%s %s %s\n",
			styles.Muted.Render(fmt.Sprintf("row %4d", r.Row)),
			reportSubject(r),
			reportStatus(r, styles))
	}
	fmt.Fprintf(w, "%s %d rows, %d ingested, %d duplicates, %d failed\n",
		styles.Title.Render("Total:"), len(summary.Reports), ingested, duplicates, failed)
}

func reportSubject(r *domain.SyncReport) string {
	if r.Repo.Owner != "" {
		return r.Repo.FullName()
	}
	return r.Input.URL
}

func reportStatus(r *domain.SyncReport, styles summaryStyles) string {
	if r.Failed() {
		return styles.Error.Render("error: " + r.Err.Error())
	}

	var parts []string
	switch {
	case r.Ingested:
		parts = append(parts, styles.Success.Render("ingested"))
	case r.Duplicate:
		parts = append(parts, styles.Muted.Render("duplicate"))
	default:
		parts = append(parts, styles.Muted.Render("written"))
	}
	if r.IngestErr != nil {
		parts = append(parts, styles.Warning.Render("ingest: "+r.IngestErr.Error()))
	}
	if r.SheetErr != nil {
		parts = append(parts, styles.Warning.Render("sheet: "+r.SheetErr.Error()))
	}
	return strings.Join(parts, ", ")
}
