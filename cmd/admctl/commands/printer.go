package commands

import (
	"fmt"
	"io"

	domainerrors "fnct-hackathon.backend/internal/domain/errors"
	"github.com/fatih/color"
)

var (
	green  = color.New(color.FgGreen)
	yellow = color.New(color.FgYellow)
	red    = color.New(color.FgRed, color.Bold)
	cyan   = color.New(color.FgCyan)
	bold   = color.New(color.Bold)
)

func printSuccess(w io.Writer, format string, a ...any) {
	green.Fprintf(w, "✓ "+format+"\n", a...)
}

func printWarning(w io.Writer, format string, a ...any) {
	yellow.Fprintf(w, "! "+format+"\n", a...)
}

// printError shows the stable code and message of domain errors, the raw
// error otherwise.
func printError(w io.Writer, err error) {
	appErr := domainerrors.FromError(err)
	if appErr.Code == "INTERNAL_ERROR" {
		red.Fprintf(w, "error: %v\n", err)
		return
	}
	red.Fprintf(w, "%s: ", appErr.Code)
	fmt.Fprintln(w, appErr.Message)
}
