package expressivo

import (
	"errors"
	"strconv"
)

// ErrSyntax is the error kind for every input that Parse rejects. Errors
// returned by Parse for invalid input satisfy errors.Is(err, ErrSyntax).
var ErrSyntax = errors.New("invalid expression syntax")

// SyntaxError describes invalid input to Parse. It implements InputError.
type SyntaxError struct {
	// Col is the column of the offending token, counted in runes from 1.
	Col int
	// Text is the offending token, or the partial token the lexer was
	// scanning. It is empty at the end of input.
	Text string
	// Reason describes what was wrong.
	Reason string
}

func (err *SyntaxError) Error() string {
	msg := ErrSyntax.Error() + ": " + err.Reason
	if err.Text != "" {
		msg += " " + strconv.Quote(err.Text)
	}
	return errpos(err.Col, msg)
}

// Pos returns the column of the error.
func (err *SyntaxError) Pos() int {
	return err.Col
}

// Is reports whether target is ErrSyntax.
func (err *SyntaxError) Is(target error) bool {
	return target == ErrSyntax
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

// InputError is an error with position information. Every error resulting from
// invalid input implements InputError.
type InputError interface {
	error
	// Pos returns the position of the error as the number of runes up to and
	// including the start of the token that caused the error.
	Pos() int
}

var _ InputError = (*SyntaxError)(nil)

// syntaxerr creates an error for an unexpected token.
func syntaxerr(tok lexToken, reason string) error {
	return &SyntaxError{Col: tok.pos, Text: tok.text, Reason: reason}
}
