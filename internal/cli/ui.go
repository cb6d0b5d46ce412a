package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan  = lipgloss.Color("36")  // Teal - primary
	colorGreen = lipgloss.Color("35")  // Green - success
	colorWhite = lipgloss.Color("255") // Bright white - values
	colorGray  = lipgloss.Color("245") // Gray - labels
	colorDim   = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Styles
// =============================================================================

var (
	// StyleTitle for headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleDim for secondary text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleNumber for numeric values.
	StyleNumber = lipgloss.NewStyle().Foreground(colorCyan)

	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleKey         = lipgloss.NewStyle().Foreground(colorGray).Width(12)
)

const (
	iconSuccess = "✓"
	iconArrow   = "→"
)

func printSuccess(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleIconSuccess.Render(iconSuccess)+" "+fmt.Sprintf(format, args...))
}

func printKeyValue(w io.Writer, key, value string) {
	fmt.Fprintln(w, styleKey.Render(key)+" "+StyleValue.Render(value))
}

func printDetail(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

func printFile(w io.Writer, path string) {
	fmt.Fprintln(w, "  "+StyleDim.Render(iconArrow)+" "+StyleValue.Render(path))
}

// printSummary renders the outcome of a regularize run.
func printSummary(w io.Writer, rep report, output string) {
	printSuccess(w, "%s %s", StyleTitle.Render("shapereg"), StyleDim.Render(rep.RunID))
	printKeyValue(w, "segments", StyleNumber.Render(fmt.Sprint(len(rep.Segments))))
	printKeyValue(w, "modified", StyleNumber.Render(fmt.Sprint(rep.Modified)))
	printKeyValue(w, "angles", fmt.Sprintf("%d pairs · %d iterations · %s",
		rep.Angles.Pairs, rep.Angles.Iterations, rep.Angles.Status))
	for _, g := range rep.ParallelGroups {
		printDetail(w, "%7.3f° %v", g.Angle, g.Indices)
	}
	if rep.Offsets != nil {
		printKeyValue(w, "offsets", fmt.Sprintf("%d pairs · %d iterations · %s",
			rep.Offsets.Pairs, rep.Offsets.Iterations, rep.Offsets.Status))
		for _, l := range rep.CollinearGroups {
			printDetail(w, "%7.3f° @ %.4f %v", l.Angle, l.Offset, l.Indices)
		}
	}
	if output != "" && output != "-" {
		printFile(w, output)
	}
}
