package archive

import (
	"errors"
	"fmt"
)

// FormatError reports a bundle that cannot be parsed.
type FormatError struct {
	Format Format
	Err    error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("archive format: invalid %s bundle: %v", e.Format, e.Err)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

// EntryError reports an entry whose content cannot be decompressed.
type EntryError struct {
	Name string
	Err  error
}

func (e *EntryError) Error() string {
	return fmt.Sprintf("archive entry %q: %v", e.Name, e.Err)
}

func (e *EntryError) Unwrap() error {
	return e.Err
}

// IsFormatError returns true if err is or wraps a FormatError.
func IsFormatError(err error) bool {
	var fe *FormatError
	return errors.As(err, &fe)
}

// IsEntryError returns true if err is or wraps an EntryError.
func IsEntryError(err error) bool {
	var ee *EntryError
	return errors.As(err, &ee)
}
