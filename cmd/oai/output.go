package main

import (
	"encoding/json"
	"io"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

var (
	assistantColor = color.New(color.FgCyan)
	noticeColor    = color.New(color.FgYellow)
	errorColor     = color.New(color.FgRed)
	labelColor     = color.New(color.Bold)
)

// isTerminal reports whether v is a file attached to a terminal
func isTerminal(v any) bool {
	f, ok := v.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// withSpinner runs fn while a spinner turns on w. Nothing is drawn when w is
// not a terminal.
func withSpinner[T any](w io.Writer, suffix string, fn func() (T, error)) (T, error) {
	if !isTerminal(w) {
		return fn()
	}

	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(w))
	s.Suffix = " " + suffix
	s.Start()
	defer s.Stop()
	return fn()
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func formatTime(unix int64) string {
	if unix == 0 {
		return "-"
	}
	return time.Unix(unix, 0).UTC().Format(time.RFC3339)
}
