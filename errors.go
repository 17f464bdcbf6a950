package lkit

import "strconv"

// SyntaxError is an error with position information. Every error resulting
// from compiling invalid source implements SyntaxError. Evaluation never
// produces errors; problems at that stage yield undefined values instead.
type SyntaxError interface {
	error
	// Pos returns the position of the error as the number of bytes up to
	// and including the start of the token that caused the error.
	Pos() int
}

// BracketError is an error indicating missing or mismatched parentheses in
// the source. It implements SyntaxError.
type BracketError struct {
	// Col is the position of the problem.
	Col int
	// Left is the opening parenthesis, empty when none was found.
	Left string
}

func (err *BracketError) Error() string {
	if err.Left == "" {
		return errpos(err.Col, "no expression")
	}
	return errpos(err.Col, "open bracket "+err.Left+" with no close bracket")
}

func (err *BracketError) Pos() int {
	return err.Col
}

// FuncNameError is an error indicating that the head of an expression did
// not name a registered function. It implements SyntaxError.
type FuncNameError struct {
	// Col is the position of the offending token.
	Col int
	// Name is the token found in head position. It is empty when the head
	// was a nested expression rather than a token.
	Name string
}

func (err *FuncNameError) Error() string {
	if err.Name == "" {
		return errpos(err.Col, "expression in place of a function name")
	}
	return errpos(err.Col, "unknown function "+strconv.Quote(err.Name))
}

func (err *FuncNameError) Pos() int {
	return err.Col
}

// SetFormError is an error indicating a malformed set-form: a missing
// variable name, a missing value, or extra operands. It implements
// SyntaxError.
type SetFormError struct {
	// Col is the position of the offending token, or of the end of the
	// form when something was missing.
	Col int
	// Token is the extra token, empty when the form was incomplete.
	Token string
}

func (err *SetFormError) Error() string {
	if err.Token == "" {
		return errpos(err.Col, "set needs a variable name and one value")
	}
	return errpos(err.Col, "extra operand "+strconv.Quote(err.Token)+" in set")
}

func (err *SetFormError) Pos() int {
	return err.Col
}

// ConstError is an error indicating an unterminated quoted literal. It
// implements SyntaxError.
type ConstError struct {
	// Col is the position of the opening quote.
	Col int
	// Text is the literal text from the quote onward.
	Text string
}

func (err *ConstError) Error() string {
	return errpos(err.Col, "unterminated literal "+strconv.Quote(err.Text))
}

func (err *ConstError) Pos() int {
	return err.Col
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

var (
	_ SyntaxError = (*BracketError)(nil)
	_ SyntaxError = (*FuncNameError)(nil)
	_ SyntaxError = (*SetFormError)(nil)
	_ SyntaxError = (*ConstError)(nil)
)
