// Package logger provides a minimal stdlib logger for process bootstrap,
// before configuration and the structured logger exist.
package logger

import (
	"fmt"
	"log"
	"os"
)

// New returns a stderr logger with a bracketed component prefix.
func New(component string) *log.Logger {
	prefix := fmt.Sprintf("[%s] ", component)
	return log.New(os.Stderr, prefix, log.LstdFlags)
}
