package util

import "errors"

var (
	ErrStatisticsUnavailable   = errors.New("statistics unavailable")
	ErrInvalidDateRange        = errors.New("dateFrom must not be after dateTo")
	ErrInvalidDate             = errors.New("dates must use the YYYY-MM-DD format")
	ErrUnsupportedExportFormat = errors.New("unsupported export format")
	ErrUnknownModule           = errors.New("unknown module")
)
