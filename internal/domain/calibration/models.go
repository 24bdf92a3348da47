package calibration

import "time"

type Calibration struct {
	ID          string    `json:"id"`
	GradeID     string    `json:"gradeId"`
	CreatedByID string    `json:"createdById"`
	Status      Status    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Summary is the fully populated calibration view returned after a package
// build, re-read from storage.
type Summary struct {
	ID                  string    `json:"id"`
	GradeID             string    `json:"gradeId"`
	GradeName           string    `json:"gradeName"`
	CreatedByID         string    `json:"createdById"`
	CreatedByName       string    `json:"createdByName"`
	Status              Status    `json:"status"`
	EvaluatorIDs        []string  `json:"evaluatorIds"`
	EvaluatorNames      []string  `json:"evaluatorNames"`
	PromotionRequestIDs []string  `json:"promotionRequestIds"`
	CandidateCount      int       `json:"candidateCount"`
	CreatedAt           time.Time `json:"createdAt"`
	UpdatedAt           time.Time `json:"updatedAt"`
}

type CandidateScore struct {
	EmployeeID         string  `json:"employeeId"`
	EmployeeName       string  `json:"employeeName"`
	PromotionRequestID string  `json:"promotionRequestId"`
	RequestedGradeName string  `json:"requestedGradeName"`
	CurrentStatus      string  `json:"currentStatus"`
	Wins               int     `json:"wins"`
	TotalComparisons   int     `json:"totalComparisons"`
	WinRate            float64 `json:"winRate"`
}

type Ranking struct {
	CalibrationID string           `json:"calibrationId"`
	Rankings      []CandidateScore `json:"rankings"`
}

// CandidateRef identifies one candidate through the promotion request that
// attached them to the calibration.
type CandidateRef struct {
	EmployeeID         string
	EmployeeName       string
	PromotionRequestID string
	RequestedGradeName string
	CurrentStatus      string
}

// Outcome is the slice of a comparison the ranking needs.
type Outcome struct {
	CandidateAID string
	CandidateBID string
	WinnerID     string
}

// PackageRequest is a promotion request as seen by package-build validation.
type PackageRequest struct {
	ID               string
	EmployeeID       string
	RequestedGradeID string
	Status           string
	InCalibration    bool
}
