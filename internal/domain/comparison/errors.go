package comparison

import "errors"

var (
	ErrCalibrationNotFound = errors.New("calibration not found")
	ErrEmployeeNotFound    = errors.New("employee not found")
	ErrComparisonNotFound  = errors.New("comparison not found")

	ErrInvalidWinner   = errors.New("winner must be one of the candidates")
	ErrSelfComparison  = errors.New("candidates must be two different employees")
	ErrAlreadyCompared = errors.New("these candidates were already compared by this evaluator")
)
