package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

var (
	colorCyan   = lipgloss.Color("36")
	colorGreen  = lipgloss.Color("35")
	colorYellow = lipgloss.Color("220")
	colorRed    = lipgloss.Color("167")
	colorBlue   = lipgloss.Color("75")
	colorWhite  = lipgloss.Color("255")
	colorGray   = lipgloss.Color("245")
	colorDim    = lipgloss.Color("240")
)

var (
	// StyleTitle renders bundle names above their tables.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleDim renders secondary text such as filters and counts.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue renders file paths and formula names.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleNumber renders counts in table cells.
	StyleNumber = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleWarning renders bundles that are not installed yet.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

var (
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)

	styleHeader  = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	styleBorder  = lipgloss.NewStyle().Foreground(colorDim)
	styleMissing = lipgloss.NewStyle().Foreground(colorDim).Italic(true)

	styleCommand = lipgloss.NewStyle().Foreground(colorBlue)
)

// Status icons, each paired with its color.
var (
	iconSuccess = lipgloss.NewStyle().Foreground(colorGreen).Render("✓")
	iconError   = lipgloss.NewStyle().Foreground(colorRed).Render("✗")
	iconWarning = lipgloss.NewStyle().Foreground(colorYellow).Render("!")
	iconInfo    = lipgloss.NewStyle().Foreground(colorGray).Render("›")
	iconArrow   = StyleDim.Render("→")
)

// printer writes status lines. Commands point it at stderr so that stdout
// only carries data (formulae JSON, graphs, paths).
type printer struct {
	w io.Writer
}

func newPrinter(w io.Writer) printer {
	return printer{w: w}
}

func (p printer) line(icon, format string, args ...any) {
	fmt.Fprintln(p.w, icon+" "+fmt.Sprintf(format, args...))
}

func (p printer) success(format string, args ...any) { p.line(iconSuccess, format, args...) }

func (p printer) failure(format string, args ...any) { p.line(iconError, format, args...) }

func (p printer) info(format string, args ...any) { p.line(iconInfo, format, args...) }

func (p printer) warning(format string, args ...any) {
	fmt.Fprintln(p.w, iconWarning+" "+StyleWarning.Render(fmt.Sprintf(format, args...)))
}

// detail prints an indented, dimmed line below a status line.
func (p printer) detail(format string, args ...any) {
	fmt.Fprintln(p.w, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

// file reports a written output file.
func (p printer) file(path string) {
	fmt.Fprintln(p.w, "  "+iconArrow+" "+StyleValue.Render(path))
}

// bundleStats prints "N packages · M formulae" under a bundle table.
func (p printer) bundleStats(packages, formulae int) {
	line := fmt.Sprintf("%d packages", packages)
	if formulae > 0 {
		line += fmt.Sprintf(" · %d formulae", formulae)
	}
	p.detail("%s", line)
}

// nextStep suggests the command to run next.
func (p printer) nextStep(description, command string) {
	fmt.Fprintln(p.w, StyleDim.Render(description+":")+" "+styleCommand.Render(command))
}
