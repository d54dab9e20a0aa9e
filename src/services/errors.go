package services

import "errors"

var (
	// ErrFetchFailed covers any failed round trip to the commerce API:
	// network fault, non-2xx, malformed or unsuccessful envelope. No
	// partial data from a failed fetch is ever merged into a snapshot.
	ErrFetchFailed = errors.New("commerce API fetch failed")

	// ErrNormalizationFailed means a payload could not be decoded at all
	// (individual malformed records degrade to warnings instead).
	ErrNormalizationFailed = errors.New("payload normalization failed")

	ErrUnknownKind    = errors.New("unknown record kind")
	ErrInvalidStatus  = errors.New("status not in kind's vocabulary")
	ErrKindNotMutable = errors.New("record kind does not support status transitions")
	ErrNoEligibleIDs  = errors.New("no eligible records in selection")
	ErrExportFailed   = errors.New("export serialization failed")
	ErrUnknownFormat  = errors.New("unknown export format")
)
