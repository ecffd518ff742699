// zeus/utils/color/color.go
package color

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

var (
	promptColor     = color.New(color.FgCyan, color.Bold)
	infoColor       = color.New(color.FgGreen)
	warningColor    = color.New(color.FgYellow, color.Bold)
	errorColor      = color.New(color.FgRed, color.Bold)
	suggestionColor = color.New(color.FgHiBlue)
	sourceColor     = color.New(color.FgHiBlack)
)

func Prompt(s string) string {
	return promptColor.Sprint(s)
}

func Info(s string) string {
	return infoColor.Sprint(s)
}

func Warning(s string) string {
	return warningColor.Sprint(s)
}

func Error(s string) string {
	return errorColor.Sprint(s)
}

// Source tags a reply with where it came from, e.g. "[knowledge]".
func Source(s string) string {
	return sourceColor.Sprintf("[%s]", s)
}

// Suggestions numbers the window so a user can pick one by index.
func Suggestions(window []string) string {
	if len(window) == 0 {
		return ""
	}
	var b strings.Builder
	for i, s := range window {
		fmt.Fprintf(&b, "  %s %s\n", suggestionColor.Sprintf("%d.", i+1), s)
	}
	return b.String()
}
