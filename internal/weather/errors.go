package weather

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyDataset is returned by queries that have no meaningful answer
	// without at least one record.
	ErrEmptyDataset = errors.New("dataset is empty")

	// ErrNotCSV is wrapped in a FileError when a path lacks a .csv extension.
	ErrNotCSV = errors.New("not a .csv file")

	// ErrNoHeader is wrapped in a ParseError when the input has no header row.
	ErrNoHeader = errors.New("missing header row")

	// ErrMissingColumns is wrapped in a ParseError when required columns are absent.
	ErrMissingColumns = errors.New("missing required columns")
)

// FileError reports a source file that is missing, unreadable or of the
// wrong type.
type FileError struct {
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("file %q: %v", e.Path, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}

// ParseError reports a table that could not be read as weather data.
// Line is zero when the failure is not tied to a line.
type ParseError struct {
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("parse error on line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("parse error: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
