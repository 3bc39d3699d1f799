package budget

import "errors"

var (
	// ErrInvalidInput is returned for negative amounts or thresholds outside [0, 1]
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidPeriod is returned when a period label is not in YYYY-MM form
	ErrInvalidPeriod = errors.New("invalid period")
)
