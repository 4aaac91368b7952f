// Package output writes function results to the console and, when an output
// path is set, appends them to a file.
package output

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// NoResults is printed when a function returns no lines.
const NoResults = "No results"

// Sink is the only writer of function results.
type Sink struct {
	console io.Writer
	path    string
}

// NewSink returns a sink printing to console. An empty path disables file
// output.
func NewSink(console io.Writer, path string) *Sink {
	return &Sink{console: console, path: path}
}

// Emit prints lines to the console and appends a "<name>:" block to the
// output file. The file is never truncated.
func (s *Sink) Emit(name string, lines []string) error {
	if len(lines) == 0 {
		_, err := fmt.Fprintln(s.console, NoResults)
		return err
	}

	var b strings.Builder
	for _, l := range lines {
		b.WriteString(l)
		b.WriteByte('\n')
	}
	if _, err := io.WriteString(s.console, b.String()); err != nil {
		return err
	}

	if s.path == "" {
		return nil
	}
	return appendBlock(s.path, name+":\n"+b.String()+"\n")
}

// appendBlock writes block with a single write on an O_APPEND descriptor so
// blocks from separate edd runs do not interleave.
func appendBlock(path, block string) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("cannot open output file %s: %w", path, err)
	}
	if _, err := f.WriteString(block); err != nil {
		f.Close()
		return fmt.Errorf("cannot write output file %s: %w", path, err)
	}
	return f.Close()
}
