package promotion

import "context"

type StoreAPI interface {
	EmployeeExists(ctx context.Context, employeeID string) (bool, error)
	GradeExists(ctx context.Context, gradeID string) (bool, error)
	HasActiveRequest(ctx context.Context, employeeID, gradeID string) (bool, error)

	Create(ctx context.Context, employeeID, gradeID, submittedByID, justification, evidence, reviewPeriod string) (string, error)
	Get(ctx context.Context, requestID string) (Request, error)
	Update(ctx context.Context, requestID, gradeID, justification, evidence, reviewPeriod string, status Status, clearComment bool) error
	SetStatus(ctx context.Context, requestID string, status Status, changedByID, comment string) error
	Decide(ctx context.Context, requestID string, status Status, decidedByID, comment string, history *GradeChange) error

	ListByEmployee(ctx context.Context, employeeID string) ([]Request, error)
	ListByStatus(ctx context.Context, status Status) ([]Request, error)
	ListAll(ctx context.Context) ([]Request, error)
	LatestGradeID(ctx context.Context, employeeID string) (string, error)
	GradeHistory(ctx context.Context, employeeID string) ([]GradeChange, error)
}
