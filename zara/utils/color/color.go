// zara/utils/color/color.go
package color

import (
	"github.com/fatih/color"
)

var (
	promptColor  = color.New(color.FgCyan, color.Bold)
	infoColor    = color.New(color.FgGreen)
	warningColor = color.New(color.FgYellow, color.Bold)
	errorColor   = color.New(color.FgRed, color.Bold)
	replyColor   = color.New(color.FgHiMagenta)
	successColor = color.New(color.FgGreen, color.Bold)
)

func ColorPrompt(s string) string {
	return promptColor.Sprint(s)
}

func ColorInfo(s string) string {
	return infoColor.Sprint(s)
}

func ColorWarning(s string) string {
	return warningColor.Sprint(s)
}

func ColorError(s string) string {
	return errorColor.Sprint(s)
}

func ColorReply(s string) string {
	return replyColor.Sprint(s)
}

func ColorSuccess(s string) string {
	return successColor.Sprint(s)
}

// DisableColor turns colors off, e.g. when output is piped.
func DisableColor() {
	color.NoColor = true
}
