// Package logging configures the standard logger for the generator and the
// terminal viewer.
package logging

import (
	"io"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
)

var debugMode bool

// Setup configures logging.
// If filename is empty, log output goes to stderr when debug is set and is
// discarded otherwise. If filename is set, logs are appended to that file,
// and with tui set Bubble Tea logs there too.
func Setup(filename string, debug, tui bool) (cleanup func(), err error) {
	debugMode = debug
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	if filename == "" {
		if debug && !tui {
			log.SetOutput(os.Stderr)
		} else {
			log.SetOutput(io.Discard)
		}
		return func() {}, nil
	}

	f, err := os.OpenFile(filename, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}
	log.SetOutput(f)

	if !tui {
		return func() { f.Close() }, nil
	}

	tf, err := tea.LogToFile(filename, "debug")
	if err != nil {
		f.Close()
		return nil, err
	}
	return func() {
		tf.Close()
		f.Close()
	}, nil
}

// Debugf logs a [DEBUG] line when debug mode is on.
func Debugf(format string, args ...any) {
	if debugMode {
		log.Printf("[DEBUG] "+format, args...)
	}
}
