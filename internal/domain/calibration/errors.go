package calibration

import "errors"

var (
	ErrCalibrationNotFound = errors.New("calibration not found")
	ErrGradeNotFound       = errors.New("grade not found")
	ErrEmployeeNotFound    = errors.New("employee not found")
	ErrRequestNotFound     = errors.New("promotion request not found")

	ErrTooFewRequests = errors.New("at least 3 promotion requests are required")
	ErrEvaluatorCount = errors.New("exactly 2 evaluators are required")
	ErrInvalidStatus  = errors.New("unknown calibration status")

	ErrWrongGrade           = errors.New("all promotion requests must target the package grade")
	ErrRequestNotEligible   = errors.New("promotion request is not ready for calibration")
	ErrAlreadyInCalibration = errors.New("promotion request is already in a calibration")
	ErrIllegalTransition    = errors.New("illegal calibration status transition")
)
