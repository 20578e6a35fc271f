// Package output provides formatters for displaying sensor readings.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/danpilch/diskspace/pkg/sensor"
)

// Format represents the output format type.
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatTSV   Format = "tsv"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatTable, FormatJSON, FormatTSV:
		return f, nil
	case "":
		return FormatTable, nil
	}
	return "", fmt.Errorf("unknown output format %q (want table, json or tsv)", s)
}

// Formatter handles output formatting.
type Formatter struct {
	format Format
	writer io.Writer
	trend  *TrendTracker
}

// NewFormatter creates a new formatter.
func NewFormatter(format Format, writer io.Writer) *Formatter {
	return &Formatter{
		format: format,
		writer: writer,
	}
}

// SetTrendTracker enables the trend column for watch mode.
func (f *Formatter) SetTrendTracker(t *TrendTracker) {
	f.trend = t
}

// Render outputs the readings in the configured format.
func (f *Formatter) Render(readings []sensor.Reading) error {
	if f.trend != nil {
		for _, r := range readings {
			if !r.Degraded {
				f.trend.Record(r.Name, r.Attributes.PercentageFree)
			}
		}
	}

	switch f.format {
	case FormatJSON:
		return f.renderJSON(readings)
	case FormatTSV:
		return f.renderTSV(readings)
	default:
		return f.renderTable(readings)
	}
}

func (f *Formatter) renderJSON(readings []sensor.Reading) error {
	output := struct {
		Sensors []sensor.Reading `json:"sensors"`
	}{
		Sensors: readings,
	}

	enc := json.NewEncoder(f.writer)
	enc.SetIndent("", "  ")
	return enc.Encode(output)
}

func (f *Formatter) renderTable(readings []sensor.Reading) error {
	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("15")).
		Background(lipgloss.Color("62")).
		Padding(0, 1)

	cellStyle := lipgloss.NewStyle().Padding(0, 1)
	okStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	degradedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("12")).
		MarginBottom(1)

	fmt.Fprintln(f.writer, titleStyle.Render("Disk Space"))
	fmt.Fprintln(f.writer, strings.Repeat("═", 60))
	fmt.Fprintln(f.writer)

	hasTrend := f.trend != nil
	rows := make([][]string, len(readings))
	for i, r := range readings {
		status := okStyle.Render("OK")
		if r.Degraded {
			status = degradedStyle.Render("DEGRADED")
		}
		unit := r.SuggestedUnit
		row := []string{
			r.Name,
			r.Path,
			unit.Format(r.Attributes.Free),
			unit.Format(r.Attributes.Used),
			unit.Format(r.Attributes.Total),
			fmt.Sprintf("%.1f%%", r.Attributes.PercentageFree),
			status,
		}
		if hasTrend {
			row = append(row, f.trend.Trend(r.Name))
		}
		rows[i] = row
	}

	headers := []string{"SENSOR", "PATH", "FREE", "USED", "TOTAL", "% FREE", "STATUS"}
	if hasTrend {
		headers = append(headers, "TREND")
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("240"))).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers(headers...).
		Rows(rows...)

	fmt.Fprintln(f.writer, t)
	return nil
}

// renderTSV outputs raw byte counts, one reading per line.
func (f *Formatter) renderTSV(readings []sensor.Reading) error {
	fmt.Fprintln(f.writer, "name\tpath\tstate\ttotal\tused\tfree\tpercentage_free\tdegraded")
	for _, r := range readings {
		fmt.Fprintf(f.writer, "%s\t%s\t%d\t%d\t%d\t%d\t%.1f\t%t\n",
			r.Name, r.Path, r.State,
			r.Attributes.Total, r.Attributes.Used, r.Attributes.Free,
			r.Attributes.PercentageFree, r.Degraded)
	}
	return nil
}
