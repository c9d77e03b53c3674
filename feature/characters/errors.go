package characters

import "errors"

var (
	// ErrEmptyDataset means no usable ranked rows exist for the date and brackets.
	ErrEmptyDataset = errors.New("no ranked records for processing date")
	// ErrNoEnrichedRecords means every profile fetch failed or was unusable.
	ErrNoEnrichedRecords = errors.New("no enriched records")
	// ErrInvalidLimit is returned for a selection limit below 1.
	ErrInvalidLimit = errors.New("selection limit must be at least 1")
	// ErrEmptyProfile is recorded when the API returns an empty document.
	ErrEmptyProfile = errors.New("empty profile document")
)
