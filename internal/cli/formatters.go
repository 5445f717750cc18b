package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

// OutputFormat represents the output format type
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
	FormatYAML OutputFormat = "yaml"
)

// Column describes one column of a text table
type Column struct {
	Title    string
	MaxWidth int  // longer cells are truncated; 0 means no limit
	Right    bool // right-align, for counts
}

// JobColumns is the layout of the job list table
var JobColumns = []Column{
	{Title: "#", Right: true},
	{Title: "ID"},
	{Title: "Title", MaxWidth: 40},
	{Title: "Type"},
	{Title: "Status"},
	{Title: "Apps", Right: true},
	{Title: "Duration"},
	{Title: "Description", MaxWidth: 50},
}

// TableFormatter buffers rows and writes them as an aligned table with a
// dashed rule under each header
type TableFormatter struct {
	w       io.Writer
	columns []Column
	rows    [][]string
}

// NewTableFormatter creates a table with the given columns
func NewTableFormatter(w io.Writer, columns ...Column) *TableFormatter {
	return &TableFormatter{w: w, columns: columns}
}

// Row adds a row. Missing cells are blank and extra cells are dropped.
func (t *TableFormatter) Row(values ...string) {
	row := make([]string, len(t.columns))
	for i, col := range t.columns {
		if i >= len(values) {
			break
		}
		row[i] = values[i]
		if col.MaxWidth > 0 {
			row[i] = TruncateString(row[i], col.MaxWidth)
		}
	}
	t.rows = append(t.rows, row)
}

// Len returns the number of buffered rows
func (t *TableFormatter) Len() int {
	return len(t.rows)
}

// widths returns each column's width in runes, the unit tabwriter counts
func (t *TableFormatter) widths() []int {
	widths := make([]int, len(t.columns))
	for i, col := range t.columns {
		widths[i] = utf8.RuneCountInString(col.Title)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			if n := utf8.RuneCountInString(cell); n > widths[i] {
				widths[i] = n
			}
		}
	}
	return widths
}

// Flush writes the header, the rule and every buffered row
func (t *TableFormatter) Flush() error {
	widths := t.widths()
	tw := tabwriter.NewWriter(t.w, 0, 0, 2, ' ', 0)

	line := func(cells []string) {
		out := make([]string, len(cells))
		for i, cell := range cells {
			if t.columns[i].Right {
				cell = strings.Repeat(" ", widths[i]-utf8.RuneCountInString(cell)) + cell
			}
			out[i] = cell
		}
		fmt.Fprintln(tw, strings.Join(out, "\t"))
	}

	titles := make([]string, len(t.columns))
	rule := make([]string, len(t.columns))
	for i, col := range t.columns {
		titles[i] = col.Title
		rule[i] = strings.Repeat("-", widths[i])
	}
	line(titles)
	fmt.Fprintln(tw, strings.Join(rule, "\t"))
	for _, row := range t.rows {
		line(row)
	}
	return tw.Flush()
}

// OutputResults formats and outputs results based on the specified format
func OutputResults(w io.Writer, format string, data interface{}) error {
	switch OutputFormat(format) {
	case FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(data)

	case FormatYAML:
		yamlData, err := yaml.Marshal(data)
		if err != nil {
			return err
		}
		fmt.Fprint(w, string(yamlData))
		return nil

	case FormatText:
		// callers format text themselves; this is only a fallback
		fmt.Fprintf(w, "%v\n", data)
		return nil

	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

// TruncateString truncates a string to maxLen runes, marking the cut with "..."
func TruncateString(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}
