package timesheet

import "errors"

// Timesheet domain errors.
//
// "No matching rows" is never an error in this domain: aggregations degrade
// to zero-valued summaries or empty collections. Only malformed input and
// storage failures surface as errors.
var (
	ErrInvalidRange    = errors.New("end date must not be before start date")
	ErrInvalidTimeZone = errors.New("unrecognized time zone identifier")
)
