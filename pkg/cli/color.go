package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// Color modes accepted by --color.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// ShouldUseColor decides whether ANSI formatting applies for the given
// mode. Auto consults whether stdout is a terminal.
func ShouldUseColor(mode string) bool {
	switch mode {
	case ColorNever:
		return false
	case ColorAlways:
		return true
	default:
		return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	}
}

// paint renders tag with the given color regardless of terminal detection;
// callers have already decided color is wanted.
func paint(attr color.Attribute, tag string) string {
	c := color.New(attr)
	c.EnableColor()
	return c.Sprint(tag)
}

func formatTagged(attr color.Attribute, tag, message string, useColor bool) string {
	if useColor {
		return fmt.Sprintf("%s %s", paint(attr, tag), message)
	}
	return fmt.Sprintf("%s %s", tag, message)
}

// FormatError renders an [ERROR]-prefixed line.
func FormatError(message string, useColor bool) string {
	return formatTagged(color.FgRed, "[ERROR]", message, useColor)
}

// FormatInfo renders an [INFO]-prefixed line.
func FormatInfo(message string, useColor bool) string {
	return formatTagged(color.FgBlue, "[INFO]", message, useColor)
}

// FormatSuccess renders an [OK]-prefixed line.
func FormatSuccess(message string, useColor bool) string {
	return formatTagged(color.FgGreen, "[OK]", message, useColor)
}

// FormatWarning renders a [WARNING]-prefixed line.
func FormatWarning(message string, useColor bool) string {
	return formatTagged(color.FgMagenta, "[WARNING]", message, useColor)
}

// FormatDebug renders a [DEBUG]-prefixed line.
func FormatDebug(message string, useColor bool) string {
	return formatTagged(color.FgHiBlack, "[DEBUG]", message, useColor)
}

// ColorizeLine highlights known result lines.
func ColorizeLine(line string) string {
	if strings.HasPrefix(line, "[RESULT]") {
		return paint(color.FgCyan, line)
	}
	trimmed := strings.TrimSpace(line)
	if strings.HasPrefix(trimmed, "Input query") || strings.HasPrefix(trimmed, "Processed value") {
		return paint(color.FgYellow, line)
	}
	return line
}

// PrintLines writes lines to w, colorizing when requested.
func PrintLines(w io.Writer, lines []string, useColor bool) {
	for _, line := range lines {
		if useColor {
			line = ColorizeLine(line)
		}
		fmt.Fprintln(w, line)
	}
}
