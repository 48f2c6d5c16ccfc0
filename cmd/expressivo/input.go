package main

import (
	"bufio"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"unicode"

	"github.com/pkg/errors"

	"github.com/zephyrtronium/expressivo"
)

// source is a named stream of one or more expressions.
type source struct {
	name string
	src  io.RuneScanner
	// lines means one expression per line.
	lines bool
}

// sources collects the inputs for a command: the --in file, or stdin if it is
// "-" or there are no arguments, followed by each argument as an expression.
func sources(in io.Reader, inname string, lines bool, args []string) ([]source, func() error, error) {
	var v []source
	closer := func() error { return nil }
	switch {
	case inname != "" && inname != "-":
		f, err := os.Open(inname)
		if err != nil {
			return nil, closer, errors.Wrap(err, "opening input")
		}
		closer = f.Close
		v = append(v, source{name: inname, src: bufio.NewReader(f), lines: lines})
	case inname == "-", len(args) == 0:
		v = append(v, source{name: "stdin", src: bufio.NewReader(in), lines: lines})
	}
	for i, arg := range args {
		v = append(v, source{name: "arg " + strconv.Itoa(i+1), src: strings.NewReader(arg)})
	}
	return v, closer, nil
}

// closeInput closes an input file once a command is done with it. Nothing has
// been written to it, so a failure is only logged.
func (a *app) closeInput(closer func() error) {
	if err := closer(); err != nil {
		a.log.Debug("closing input", slog.Any("error", err))
	}
}

// each parses every expression in s and calls f with it. Parsing stops at the
// first invalid expression.
func (s source) each(opts []expressivo.ParseOption, f func(*expressivo.Expr) error) error {
	if s.lines {
		opts = append(opts[:len(opts):len(opts)], expressivo.StopOn('\n'))
	}
	n := 0
	for {
		// Skip blank space between expressions so that trailing newlines
		// don't look like an empty expression.
		done, err := skipSpace(s.src)
		if err != nil {
			return errors.Wrapf(err, "reading %s", s.name)
		}
		if done {
			if n == 0 {
				// Let the parser report the empty input.
				break
			}
			return nil
		}
		e, err := expressivo.Parse(s.src, opts...)
		if err != nil {
			return errors.Wrapf(err, "%s, expression %d", s.name, n+1)
		}
		n++
		if err := f(e); err != nil {
			return err
		}
		if !s.lines {
			return nil
		}
	}
	_, err := expressivo.Parse(s.src, opts...)
	return errors.Wrapf(err, "%s", s.name)
}

// skipSpace consumes whitespace and reports whether the input is exhausted.
func skipSpace(src io.RuneScanner) (bool, error) {
	for {
		r, _, err := src.ReadRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return true, nil
			}
			return false, err
		}
		if !unicode.IsSpace(r) {
			return false, src.UnreadRune()
		}
	}
}
