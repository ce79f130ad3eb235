package importer

import "fmt"

// MalformedRecordError reports a statement row whose date or amounts cannot be
// parsed. Such rows are rejected before they reach categorization.
type MalformedRecordError struct {
	Row   int // 1-based CSV line, header is row 1
	Field string
	Value string
	Err   error
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("row %d: parsing %s %q: %v", e.Row, e.Field, e.Value, e.Err)
}

func (e *MalformedRecordError) Unwrap() error { return e.Err }
