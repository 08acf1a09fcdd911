package parser

import (
	"fmt"

	crerr "github.com/cockroachdb/errors"
)

var (
	// ErrUnparseableLine marks a single line that could not be turned into a
	// record. Callers skip and count these; they never abort a file.
	ErrUnparseableLine = crerr.New("unparseable line")

	// ErrUnparseableFile marks a file in which no line parsed at all.
	ErrUnparseableFile = crerr.New("unparseable file")
)

// LineError carries the file position of one skipped line.
type LineError struct {
	Line int
	Text string
	Err  error
}

func (e LineError) Error() string {
	return fmt.Sprintf("line %d %q: %v", e.Line, e.Text, e.Err)
}

func (e LineError) Unwrap() error { return e.Err }
