package ui

import "fmt"

// ANSI256 color codes for the dashboard output.
const (
	colorHeader = 74  // blue
	colorStage  = 114 // green
	colorWarn   = 178 // amber
	colorMuted  = 245 // medium gray
)

var noColor bool

// RenderHeader returns s styled as a section header.
func RenderHeader(s string) string {
	return render(colorHeader, s)
}

// RenderStage returns a brew stage name in the stage color.
func RenderStage(s string) string {
	return render(colorStage, s)
}

// RenderWarn returns s styled as a warning.
func RenderWarn(s string) string {
	return render(colorWarn, s)
}

// RenderMuted returns s in the muted (gray) color, used for empty slots and
// secondary detail.
func RenderMuted(s string) string {
	return render(colorMuted, s)
}

func render(color int, s string) string {
	if noColor {
		return s
	}
	return fmt.Sprintf("\x1b[38;5;%dm%s\x1b[0m", color, s)
}

// ForceNoColor disables color output globally.
func ForceNoColor() {
	noColor = true
}
