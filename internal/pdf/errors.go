package pdf

import "errors"

// Sentinel errors for document sourcing. Ingestion treats each of these as a
// per-document failure; none of them aborts a batch.
var (
	// ErrFetch indicates a network-level failure downloading a document.
	ErrFetch = errors.New("fetching document")

	// ErrBadStatus indicates a non-success HTTP status for a download.
	ErrBadStatus = errors.New("unexpected HTTP status")

	// ErrExtract indicates an unreadable or corrupt PDF.
	ErrExtract = errors.New("extracting PDF text")

	// ErrNoText indicates a well-formed PDF with no extractable text
	// (for example a pure-image scan).
	ErrNoText = errors.New("no extractable text")

	// ErrStamp indicates a failure writing the metadata-stamped copy.
	ErrStamp = errors.New("stamping PDF metadata")
)
