package log

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/briandowns/spinner"
)

// Setup configures the process-wide logger. Debug output goes to
// stderr so it never mixes with formatted listings on stdout.
func Setup(debug bool) {
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})))
}

// WithSpinner executes the given function while showing a spinner with
// the specified message.
func WithSpinner(message string, fn func() error) error {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " " + message

	err := s.Color("green")
	if err != nil {
		return fmt.Errorf("coloring green: %w", err)
	}

	s.Start()
	s.FinalMSG = message + " \033[32m[done]\033[0m\n"
	defer s.Stop()

	return fn()
}
