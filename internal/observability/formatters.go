// Package observability provides formatted output utilities for the CLI.
package observability

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jonathan/job-board/internal/db"
	"github.com/jonathan/job-board/internal/textutil"
	"github.com/jonathan/job-board/internal/types"
	"github.com/pterm/pterm"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// excerptRunes bounds description excerpts under a recommendation
	excerptRunes = 120
)

// Printer handles formatted CLI output
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		// Truncate long lines
		if len([]rune(line)) > boxWidth-4 {
			line = string([]rune(line)[:boxWidth-7]) + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintProfile outputs the fields of a job seeker profile the ranking reads.
func (p *Printer) PrintProfile(profile *db.JobSeeker) {
	if profile == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Name:       %s %s\n", profile.FirstName, profile.LastName))
	sb.WriteString(fmt.Sprintf("Title:      %s\n", profile.Title))
	sb.WriteString(fmt.Sprintf("Location:   %s\n", profile.Location))
	sb.WriteString(fmt.Sprintf("Experience: %d years\n", profile.ExperienceYears))
	if len(profile.Skills) > 0 {
		sb.WriteString(fmt.Sprintf("Skills:     %s", strings.Join(profile.Skills, ", ")))
	} else {
		sb.WriteString("Skills:     (none)")
	}

	p.printBox("JOB SEEKER PROFILE", sb.String())
}

// PrintRecommendations renders a ranked recommendation list as a table, with a
// short description excerpt under it for each posting.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintRecommendations(resp types.RecommendationsResponse) {
	if len(resp.Recommendations) == 0 {
		fmt.Fprintln(p.out, pterm.Yellow("No recommendations: no matching active postings."))
		return
	}

	data := pterm.TableData{{"#", "Score", "Title", "Company", "Location"}}
	for i, rec := range resp.Recommendations {
		data = append(data, []string{
			strconv.Itoa(i + 1),
			strconv.Itoa(rec.MatchScore),
			rec.Title,
			rec.CompanyName,
			rec.Location,
		})
	}

	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		// Fall back to plain lines.
		for _, row := range data[1:] {
			fmt.Fprintln(p.out, strings.Join(row, "\t"))
		}
	} else {
		fmt.Fprintln(p.out, table)
	}

	fmt.Fprintln(p.out)
	for i, rec := range resp.Recommendations {
		fmt.Fprintf(p.out, "%s %s\n", pterm.LightCyan(fmt.Sprintf("%d.", i+1)), rec.Title)
		if excerpt := textutil.Excerpt(textutil.PlainText(rec.Description), excerptRunes); excerpt != "" {
			fmt.Fprintf(p.out, "   %s\n", pterm.Gray(excerpt))
		}
		f := rec.MatchFactors
		fmt.Fprintf(p.out, "   skills %.1f · experience %.1f · location %.1f · title %.1f · pay %.1f · recency %.1f\n",
			f.Skills, f.Experience, f.Location, f.Title, f.Compensation, f.Recency)
	}
}

// PrintImportSummary reports the outcome of a posting import.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintImportSummary(company string, created []db.JobPosting) {
	fmt.Fprintf(p.out, "%s imported %d posting(s) for %s\n",
		pterm.Green("✓"), len(created), company)
	for _, posting := range created {
		fmt.Fprintf(p.out, "  • %s %s (%s)\n", posting.ID, posting.Title, posting.JobType)
	}
}
