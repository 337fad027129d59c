// Package output renders scan results for the CLI.
package output

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
)

// Result is one scanned candidate with its lookup outcome.
type Result struct {
	Domain    string
	Available bool
}

// TableFormatter renders results as an ASCII table.
type TableFormatter struct{}

// FormatResults renders scan results as a table with an availability summary
// footer.
func (f *TableFormatter) FormatResults(results []Result) string {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"Domain", "Status"})

	available := 0
	for _, r := range results {
		t.AppendRow(table.Row{r.Domain, statusLabel(r.Available)})
		if r.Available {
			available++
		}
	}

	if len(results) > 0 {
		t.AppendFooter(table.Row{
			"",
			fmt.Sprintf("%d/%d available", available, len(results)),
		})
	}

	return t.Render()
}

// PlainFormatter renders one domain per line, matching the HTTP stream format.
type PlainFormatter struct{}

// FormatResults renders available domains as plain lines.
func (f *PlainFormatter) FormatResults(results []Result) string {
	var b strings.Builder
	for _, r := range results {
		if !r.Available {
			continue
		}
		b.WriteString(r.Domain)
		b.WriteString("\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func statusLabel(available bool) string {
	if available {
		return "AVAILABLE"
	}
	return "taken"
}
