package calibration

import "context"

type StoreAPI interface {
	GradeExists(ctx context.Context, gradeID string) (bool, error)
	EmployeeExists(ctx context.Context, employeeID string) (bool, error)
	PackageRequests(ctx context.Context, requestIDs []string) ([]PackageRequest, error)

	Create(ctx context.Context, gradeID, createdByID string) (string, error)
	CreatePackage(ctx context.Context, gradeID, createdByID string, requestIDs, evaluatorIDs []string) (string, error)

	Get(ctx context.Context, calibrationID string) (Calibration, error)
	Summary(ctx context.Context, calibrationID string) (Summary, error)
	ListByStatus(ctx context.Context, status Status) ([]Calibration, error)
	ListByGrade(ctx context.Context, gradeID string) ([]Calibration, error)
	ListByEvaluator(ctx context.Context, evaluatorID string) ([]Calibration, error)
	UpdateStatus(ctx context.Context, calibrationID string, status Status) error

	Candidates(ctx context.Context, calibrationID string) ([]CandidateRef, error)
	Outcomes(ctx context.Context, calibrationID string) ([]Outcome, error)
}
