package ingest

import (
	stderrors "errors"

	crerr "github.com/cockroachdb/errors"
)

// ErrConnectionFailure marks failures to reach the database or the data
// root at all. Unlike row and file errors it aborts the whole run.
var ErrConnectionFailure = crerr.New("ingestion connection failure")

func IsConnectionFailure(err error) bool {
	return stderrors.Is(err, ErrConnectionFailure)
}
