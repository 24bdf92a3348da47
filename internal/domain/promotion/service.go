package promotion

import (
	"context"
	"fmt"
	"strings"
)

type Service struct {
	store StoreAPI
}

func NewService(store StoreAPI) *Service {
	return &Service{store: store}
}

func (s *Service) Create(ctx context.Context, employeeID, gradeID, submittedByID, justification, evidence, reviewPeriod string) (Request, error) {
	for _, id := range []string{employeeID, submittedByID} {
		exists, err := s.store.EmployeeExists(ctx, id)
		if err != nil {
			return Request{}, err
		}
		if !exists {
			return Request{}, fmt.Errorf("%w: %s", ErrEmployeeNotFound, id)
		}
	}
	exists, err := s.store.GradeExists(ctx, gradeID)
	if err != nil {
		return Request{}, err
	}
	if !exists {
		return Request{}, fmt.Errorf("%w: %s", ErrGradeNotFound, gradeID)
	}

	active, err := s.store.HasActiveRequest(ctx, employeeID, gradeID)
	if err != nil {
		return Request{}, err
	}
	if active {
		return Request{}, ErrActiveRequestExists
	}

	id, err := s.store.Create(ctx, employeeID, gradeID, submittedByID, justification, evidence, reviewPeriod)
	if err != nil {
		return Request{}, err
	}
	return s.store.Get(ctx, id)
}

// Update edits the request content. Editing a request that was returned for
// revision resubmits it: status flips back to pending and the HR comment is
// cleared.
func (s *Service) Update(ctx context.Context, requestID, gradeID, justification, evidence, reviewPeriod string) (Request, error) {
	req, err := s.store.Get(ctx, requestID)
	if err != nil {
		return Request{}, err
	}
	exists, err := s.store.GradeExists(ctx, gradeID)
	if err != nil {
		return Request{}, err
	}
	if !exists {
		return Request{}, fmt.Errorf("%w: %s", ErrGradeNotFound, gradeID)
	}

	status := req.Status
	clearComment := false
	if req.Status == StatusReturnedForRevision {
		status = StatusPending
		clearComment = true
	}
	if err := s.store.Update(ctx, requestID, gradeID, justification, evidence, reviewPeriod, status, clearComment); err != nil {
		return Request{}, err
	}
	return s.store.Get(ctx, requestID)
}

func (s *Service) UpdateStatus(ctx context.Context, requestID, status string, changedByID, comment string) (Request, error) {
	next, err := ParseStatus(status)
	if err != nil {
		return Request{}, err
	}
	req, err := s.store.Get(ctx, requestID)
	if err != nil {
		return Request{}, err
	}
	exists, err := s.store.EmployeeExists(ctx, changedByID)
	if err != nil {
		return Request{}, err
	}
	if !exists {
		return Request{}, fmt.Errorf("%w: %s", ErrEmployeeNotFound, changedByID)
	}
	if !req.Status.CanTransitionTo(next) {
		return Request{}, fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, req.Status, next)
	}

	if next != StatusReturnedForRevision {
		comment = ""
	}
	if err := s.store.SetStatus(ctx, requestID, next, changedByID, comment); err != nil {
		return Request{}, err
	}
	return s.store.Get(ctx, requestID)
}

// Decide applies the HR approve/reject decision after calibration. Approval
// records a grade history entry in the same transaction as the status change.
func (s *Service) Decide(ctx context.Context, requestID, decision, comment, decidedByID string) (Request, error) {
	var next Status
	switch strings.ToLower(strings.TrimSpace(decision)) {
	case "approved":
		next = StatusApproved
	case "rejected":
		next = StatusRejected
	default:
		return Request{}, ErrInvalidDecision
	}

	req, err := s.store.Get(ctx, requestID)
	if err != nil {
		return Request{}, err
	}
	exists, err := s.store.EmployeeExists(ctx, decidedByID)
	if err != nil {
		return Request{}, err
	}
	if !exists {
		return Request{}, fmt.Errorf("%w: %s", ErrEmployeeNotFound, decidedByID)
	}
	if req.Status != StatusCalibrationCompleted {
		return Request{}, ErrNotAwaitingDecision
	}

	if next == StatusRejected && comment == "" {
		comment = "Rejected"
	}

	var history *GradeChange
	if next == StatusApproved {
		oldGradeID, err := s.store.LatestGradeID(ctx, req.EmployeeID)
		if err != nil {
			return Request{}, err
		}
		history = &GradeChange{
			EmployeeID:  req.EmployeeID,
			OldGradeID:  oldGradeID,
			NewGradeID:  req.RequestedGradeID,
			ChangedByID: decidedByID,
			Reason:      fmt.Sprintf("Promotion request approved: %s", requestID),
		}
	}

	if err := s.store.Decide(ctx, requestID, next, decidedByID, comment, history); err != nil {
		return Request{}, err
	}
	return s.store.Get(ctx, requestID)
}

func (s *Service) Get(ctx context.Context, requestID string) (Request, error) {
	return s.store.Get(ctx, requestID)
}

func (s *Service) ListByEmployee(ctx context.Context, employeeID string) ([]Request, error) {
	return s.store.ListByEmployee(ctx, employeeID)
}

func (s *Service) ListByStatus(ctx context.Context, status string) ([]Request, error) {
	parsed, err := ParseStatus(status)
	if err != nil {
		return nil, err
	}
	return s.store.ListByStatus(ctx, parsed)
}

func (s *Service) ListAll(ctx context.Context) ([]Request, error) {
	return s.store.ListAll(ctx)
}

func (s *Service) GradeHistory(ctx context.Context, employeeID string) ([]GradeChange, error) {
	return s.store.GradeHistory(ctx, employeeID)
}
