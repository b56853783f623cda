package main

import (
	"errors"
	"fmt"
)

var (
	ErrAuth      = errors.New("authorization failed")
	ErrRemoteIO  = errors.New("spreadsheet request failed")
	ErrFileRead  = errors.New("cannot read translation file")
	ErrFileWrite = errors.New("cannot write translation file")
	ErrParse     = errors.New("cannot parse translation file")
	ErrConfig    = errors.New("invalid configuration")
)

// ParseError is returned by a codec when its input cannot be parsed at all.
type ParseError struct {
	Format Format
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrParse, e.Format, e.Err)
}

func (e *ParseError) Unwrap() []error {
	return []error{ErrParse, e.Err}
}

func configError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrConfig, fmt.Sprintf(format, args...))
}
