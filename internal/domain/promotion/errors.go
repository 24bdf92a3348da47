package promotion

import "errors"

var (
	ErrRequestNotFound  = errors.New("promotion request not found")
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrGradeNotFound    = errors.New("grade not found")

	ErrInvalidStatus   = errors.New("unknown promotion request status")
	ErrInvalidDecision = errors.New("decision must be approved or rejected")

	ErrActiveRequestExists = errors.New("active promotion request already exists for this employee and grade")
	ErrNotAwaitingDecision = errors.New("promotion request must complete calibration before approval or rejection")
	ErrIllegalTransition   = errors.New("illegal promotion request status transition")
)
