package usecase

import "errors"

var (
	ErrEmptyInput        = errors.New("empty purchase request text")
	ErrExtraction        = errors.New("extraction failed")
	ErrExtractionParse   = errors.New("extraction output could not be parsed")
	ErrValidation        = errors.New("structured request is invalid")
	ErrDiscovery         = errors.New("supplier discovery failed")
	ErrRankingParse      = errors.New("supplier ranking output could not be parsed")
	ErrGeneration        = errors.New("rfq content generation failed")
	ErrDispatch          = errors.New("rfq dispatch failed")
	ErrNotFound          = errors.New("purchase request not found")
	ErrRFQNotFound       = errors.New("rfq not found")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrInvalidRequestID  = errors.New("invalid purchase request id")
	ErrInvalidRFQID      = errors.New("invalid rfq id")
	ErrSupplierNotFound  = errors.New("supplier not found")
	ErrSupplierNoEmail   = errors.New("supplier has no email address")
	ErrComparison        = errors.New("price comparison failed")
	ErrComparisonParse   = errors.New("price comparison output could not be parsed")
)
