package tabular

import "fmt"

// IngestError is a fatal §7(a) error: a missing required column, an
// unreadable file, or a malformed header row.
type IngestError struct {
	File   string
	Reason string
}

func (e *IngestError) Error() string {
	return fmt.Sprintf("ingest %s: %s", e.File, e.Reason)
}

func missingColumn(file, column string) error {
	return &IngestError{File: file, Reason: fmt.Sprintf("missing required column %q", column)}
}
