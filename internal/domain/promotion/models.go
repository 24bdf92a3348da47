package promotion

import "time"

type Request struct {
	ID                 string    `json:"id"`
	EmployeeID         string    `json:"employeeId"`
	EmployeeName       string    `json:"employeeName"`
	RequestedGradeID   string    `json:"requestedGradeId"`
	RequestedGradeName string    `json:"requestedGradeName"`
	SubmittedByID      string    `json:"submittedById"`
	SubmittedByName    string    `json:"submittedByName"`
	CalibrationID      string    `json:"calibrationId,omitempty"`
	Justification      string    `json:"justification"`
	Evidence           string    `json:"evidence"`
	ReviewPeriod       string    `json:"reviewPeriod"`
	Status             Status    `json:"status"`
	HRComment          string    `json:"hrComment,omitempty"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// GradeChange is one append-only grade history entry, written when a
// promotion is approved.
type GradeChange struct {
	ID          string    `json:"id"`
	EmployeeID  string    `json:"employeeId"`
	OldGradeID  string    `json:"oldGradeId,omitempty"`
	NewGradeID  string    `json:"newGradeId"`
	ChangedByID string    `json:"changedById"`
	Reason      string    `json:"reason"`
	ChangedAt   time.Time `json:"changedAt"`
}
