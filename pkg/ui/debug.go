package ui

import (
	"fmt"
	"io"
	"os"
)

var (
	uiDebug  bool
	debugOut io.Writer = os.Stderr
)

// SetUIDebug toggles debug output for the UI layer.
func SetUIDebug(enabled bool) {
	uiDebug = enabled
}

// Debugf writes a debug line to stderr when debug output is on.
func Debugf(format string, args ...interface{}) {
	if uiDebug {
		fmt.Fprintf(debugOut, "[ui] "+format+"\n", args...)
	}
}
