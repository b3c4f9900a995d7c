package errors

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalid = errors.New("invalid")

// Build failure taxonomy. Every one of these aborts the run.
var (
	ErrParse        = errors.New("parse error")
	ErrMissingField = errors.New("missing field")
	ErrInvalidEnum  = errors.New("invalid value")
	ErrDateParse    = errors.New("date parse error")
	ErrTemplate     = errors.New("template error")
	ErrIO           = errors.New("io error")
	ErrCollision    = errors.New("output path collision")
)

type FieldError struct {
	Field   string
	Message string
}

func (e FieldError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

type ValidationError struct {
	Items []FieldError
}

func (e ValidationError) Error() string {
	if len(e.Items) == 0 {
		return "validation failed"
	}

	var b strings.Builder
	b.WriteString("validation failed:\n")
	for _, item := range e.Items {
		b.WriteString(" - ")
		b.WriteString(item.Error())
		b.WriteString("\n")
	}
	return b.String()
}

func (e *ValidationError) Add(field, msg string) {
	e.Items = append(e.Items, FieldError{
		Field:   field,
		Message: msg,
	})
}

func (e ValidationError) Is(target error) bool {
	return target == ErrInvalid
}

func (e ValidationError) HasAny() bool {
	return len(e.Items) > 0
}

// SourceError ties a taxonomy kind to the file that caused it.
type SourceError struct {
	Path string
	Kind error
	Msg  string
	Err  error
}

func (e *SourceError) Error() string {
	var b strings.Builder
	if e.Path != "" {
		b.WriteString(e.Path)
		b.WriteString(": ")
	}
	b.WriteString(e.Kind.Error())
	if e.Msg != "" {
		b.WriteString(": ")
		b.WriteString(e.Msg)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *SourceError) Is(target error) bool {
	return target == e.Kind
}

func (e *SourceError) Unwrap() error {
	return e.Err
}

func New(kind error, path, msg string) error {
	return &SourceError{Path: path, Kind: kind, Msg: msg}
}

func Wrap(kind error, path string, err error) error {
	return &SourceError{Path: path, Kind: kind, Err: err}
}
