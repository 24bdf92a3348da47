package promotion

import "strings"

// Status is the promotion request lifecycle state. Transition legality is
// enforced centrally through CanTransitionTo instead of ad hoc checks at
// call sites.
type Status string

const (
	StatusPending              Status = "pending"
	StatusUnderReview          Status = "under_review"
	StatusReadyForCalibration  Status = "ready_for_calibration"
	StatusInCalibration        Status = "in_calibration"
	StatusCalibrationCompleted Status = "calibration_completed"
	StatusApproved             Status = "approved"
	StatusRejected             Status = "rejected"
	StatusReturnedForRevision  Status = "returned_for_revision"
)

func ParseStatus(value string) (Status, error) {
	status := Status(strings.ToLower(strings.TrimSpace(value)))
	switch status {
	case StatusPending, StatusUnderReview, StatusReadyForCalibration,
		StatusInCalibration, StatusCalibrationCompleted,
		StatusApproved, StatusRejected, StatusReturnedForRevision:
		return status, nil
	}
	return "", ErrInvalidStatus
}

var transitions = map[Status][]Status{
	StatusPending:              {StatusUnderReview, StatusReadyForCalibration, StatusInCalibration, StatusReturnedForRevision, StatusRejected},
	StatusUnderReview:          {StatusReadyForCalibration, StatusInCalibration, StatusReturnedForRevision, StatusRejected},
	StatusReadyForCalibration:  {StatusInCalibration, StatusReturnedForRevision},
	StatusInCalibration:        {StatusCalibrationCompleted},
	StatusCalibrationCompleted: {StatusApproved, StatusRejected},
	StatusReturnedForRevision:  {StatusPending},
	StatusApproved:             {},
	StatusRejected:             {},
}

func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// CalibrationEligible reports whether a request in this status may be pulled
// into a calibration package.
func (s Status) CalibrationEligible() bool {
	switch s {
	case StatusReadyForCalibration, StatusPending, StatusUnderReview:
		return true
	}
	return false
}

// Active reports whether the request still occupies the employee+grade slot,
// blocking a second request for the same promotion.
func (s Status) Active() bool {
	switch s {
	case StatusPending, StatusUnderReview, StatusReadyForCalibration, StatusInCalibration:
		return true
	}
	return false
}
