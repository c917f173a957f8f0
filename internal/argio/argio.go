// Package argio resolves raw CLI argument values into literal strings,
// file contents, or standard-input content.
//
// Argument values carry one of three shapes: absent (nil), a literal
// string, or an already-parsed sequence produced by a repeatable flag.
// Only literal strings are resolved; everything else passes through
// untouched.
package argio

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// Sentinels recognized in literal argument values.
const (
	StdinToken  = "-"  // read the whole value from standard input
	StdinPrefix = "@-" // same, in explicit-file form
	FilePrefix  = "@"  // read the value from the named file
)

// FileError reports a failure to open a file named with the explicit @
// prefix. Its message is the operating system error text, surfaced
// verbatim with no wrapping.
type FileError struct {
	Path string
	Err  error
}

func (e *FileError) Error() string { return e.Err.Error() }

func (e *FileError) Unwrap() error { return e.Err }

// Resolver materializes argument values against an input stream.
// Standard input is read in full when a value names the stdin sentinel,
// so the stream must not be shared by concurrent resolutions.
type Resolver struct {
	Stdin io.Reader
}

// Resolve applies the resolution rules to value:
//
//  1. nil passes through unchanged.
//  2. Non-string values (repeated-flag sequences) pass through unchanged.
//  3. "-" and anything starting with "@-" resolve to the entire stdin.
//  4. "@path" resolves to the content of path; an open failure is a
//     *FileError.
//  5. Any other string is first probed as a file path; if a readable
//     file exists there its content wins, otherwise the literal stands.
//
// With split set, a resolved string is broken on runs of whitespace
// into its non-empty tokens. Splitting never applies to values that
// passed through unresolved.
func (r *Resolver) Resolve(value any, split bool) (any, error) {
	s, ok := value.(string)
	if !ok {
		return value, nil
	}

	resolved, err := r.resolveString(s)
	if err != nil {
		return nil, err
	}
	if split {
		return strings.Fields(resolved), nil
	}
	return resolved, nil
}

func (r *Resolver) resolveString(s string) (string, error) {
	if s == StdinToken || strings.HasPrefix(s, StdinPrefix) {
		data, err := io.ReadAll(r.stdin())
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}

	if strings.HasPrefix(s, FilePrefix) {
		path := strings.TrimPrefix(s, FilePrefix)
		data, err := os.ReadFile(path)
		if err != nil {
			return "", &FileError{Path: path, Err: err}
		}
		return string(data), nil
	}

	// A literal that happens to name a readable file resolves to that
	// file's content. Inherited surface: callers relying on literals
	// must avoid values that collide with local paths.
	if data, err := os.ReadFile(s); err == nil {
		return string(data), nil
	}
	return s, nil
}

func (r *Resolver) stdin() io.Reader {
	if r.Stdin != nil {
		return r.Stdin
	}
	return os.Stdin
}

// Resolve resolves value against the process standard input.
func Resolve(value any, split bool) (any, error) {
	r := Resolver{}
	return r.Resolve(value, split)
}
