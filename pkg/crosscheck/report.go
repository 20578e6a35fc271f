package crosscheck

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/danpilch/diskspace/pkg/sensor"
	"github.com/dustin/go-humanize"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("62")).Padding(0, 1)
	validStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	suspectStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	conflictStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	passStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	failStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// Report outputs cross-check validation results, probe failures and sanity
// checks as styled text.
func Report(w io.Writer, validations []ValidationResult, sanity []SanityResult, probeErrs []error) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, titleStyle.Render("Disk Space Cross-Check Report"))
	fmt.Fprintln(w, dimStyle.Render(strings.Repeat("═", 60)))

	if len(validations) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, titleStyle.Render("Prober Cross-Checks"))
		fmt.Fprintf(w, "  %-25s %-12s %-12s %-10s %s\n",
			headerStyle.Render("METRIC"), headerStyle.Render("SPREAD"),
			headerStyle.Render("TOLERANCE"), headerStyle.Render("STATUS"),
			headerStyle.Render("SOURCES"))
		fmt.Fprintln(w, "  "+dimStyle.Render(strings.Repeat("─", 80)))

		for _, v := range validations {
			sourceNames := make([]string, len(v.Sources))
			for i, s := range v.Sources {
				sourceNames[i] = fmt.Sprintf("%s=%s", s.Name, humanize.IBytes(s.Value))
			}
			var statusStr string
			switch v.Status {
			case StatusConflict:
				statusStr = conflictStyle.Render("CONFLICT")
			case StatusSuspect:
				statusStr = suspectStyle.Render("SUSPECT")
			default:
				statusStr = validStyle.Render("VALID")
			}
			tolerance := "exact"
			if v.Tolerance > 0 {
				tolerance = humanize.IBytes(v.Tolerance)
			}
			fmt.Fprintf(w, "  %-25s %-12s %-12s %-10s %s\n",
				v.Metric, humanize.IBytes(v.Spread), tolerance, statusStr,
				dimStyle.Render(strings.Join(sourceNames, ", ")))
		}
	}

	if len(probeErrs) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, titleStyle.Render("Probe Failures"))
		for _, err := range probeErrs {
			fmt.Fprintf(w, "  [%s] %s\n", failStyle.Render("FAIL"), dimStyle.Render(err.Error()))
		}
	}

	if len(sanity) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, titleStyle.Render("Sanity Checks"))
		failed := 0
		for _, s := range sanity {
			var icon string
			if s.Passed {
				icon = passStyle.Render("PASS")
			} else {
				icon = failStyle.Render("FAIL")
				failed++
			}
			fmt.Fprintf(w, "  [%s] %-40s %s\n", icon, s.Check, dimStyle.Render(s.Details))
		}
		fmt.Fprintln(w)
		if failed == 0 {
			fmt.Fprintf(w, "  %s\n", passStyle.Render(fmt.Sprintf("All %d sanity checks passed.", len(sanity))))
		} else {
			fmt.Fprintf(w, "  %s\n", failStyle.Render(fmt.Sprintf("%d of %d sanity checks failed.", failed, len(sanity))))
		}
	}
}

// ReportJSON outputs cross-check results as JSON.
func ReportJSON(w io.Writer, validations []ValidationResult, sanity []SanityResult, probeErrs []error) error {
	errs := make([]string, len(probeErrs))
	for i, err := range probeErrs {
		errs[i] = err.Error()
	}
	output := struct {
		Validations []ValidationResult `json:"validations"`
		Sanity      []SanityResult     `json:"sanity"`
		ProbeErrors []string           `json:"probe_errors,omitempty"`
	}{
		Validations: validations,
		Sanity:      sanity,
		ProbeErrors: errs,
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(output)
}

// RunCrossChecks cross-validates capacity of path across probers and runs
// sanity checks on the given readings.
func RunCrossChecks(path string, probers []NamedProber, readings []sensor.Reading) ([]ValidationResult, []SanityResult, []error) {
	validator := NewValidator()
	sources := GetDiskSources(path, probers)

	var validations []ValidationResult
	if len(sources.Total) > 0 {
		validations = append(validations,
			validator.CheckExact(fmt.Sprintf("Total (%s)", path), sources.Total),
			validator.CheckWithin(fmt.Sprintf("Used (%s)", path), sources.Used),
			validator.CheckWithin(fmt.Sprintf("Free (%s)", path), sources.Free),
		)
	}

	return validations, RunSanityChecks(readings), sources.Errors
}
