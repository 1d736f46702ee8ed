// Package errcode defines the conversion errors and their stable numeric codes.
package errcode

import (
	"errors"
	"fmt"
)

type Code int

const (
	FileNotFound      Code = -1
	EmptyFile         Code = -2
	ParseError        Code = -3
	NoPatternSection  Code = -11
	InvalidArc        Code = 100
	OutOfBounds       Code = 101
	ShapeSizeMismatch Code = 200
	NoCutsFound       Code = 201
	ToolNotFound      Code = 202
	DecryptionFailed  Code = 300
)

var codeNames = map[Code]string{
	FileNotFound:      "FileNotFound",
	EmptyFile:         "EmptyFile",
	ParseError:        "ParseError",
	NoPatternSection:  "NoPatternSection",
	InvalidArc:        "InvalidArc",
	OutOfBounds:       "OutOfBounds",
	ShapeSizeMismatch: "ShapeSizeMismatch",
	NoCutsFound:       "NoCutsFound",
	ToolNotFound:      "ToolNotFound",
	DecryptionFailed:  "DecryptionFailed",
}

func (c Code) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Code(%d)", int(c))
}

// Error is a conversion failure. Path and Line are set when the code refers to
// them; Err is the underlying cause, if any.
type Error struct {
	Code    Code
	Path    string
	Line    int
	Message string
	Err     error
}

func (e *Error) Error() string {
	switch e.Code {
	case FileNotFound:
		return fmt.Sprintf("File not found: %s", e.Path)
	case EmptyFile:
		return fmt.Sprintf("Empty file: %s", e.Path)
	case ParseError:
		return fmt.Sprintf("Parse error at line %d: %s", e.Line, e.Message)
	case NoPatternSection:
		return "No [Pattern] section found in file"
	case DecryptionFailed:
		return fmt.Sprintf("OTX decryption failed: %s", e.Message)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func NewFileNotFound(path string, cause error) *Error {
	return &Error{Code: FileNotFound, Path: path, Err: cause}
}

func NewEmptyFile(path string) *Error {
	return &Error{Code: EmptyFile, Path: path}
}

func NewParseError(line int, message string) *Error {
	return &Error{Code: ParseError, Line: line, Message: message}
}

func NewNoPatternSection() *Error {
	return &Error{Code: NoPatternSection}
}

func NewDecryptionFailed(message string, cause error) *Error {
	return &Error{Code: DecryptionFailed, Message: message, Err: cause}
}

// New returns an error with the given code that prints as message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// CodeOf returns the code of the first *Error in err's chain, or 0.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return 0
}
