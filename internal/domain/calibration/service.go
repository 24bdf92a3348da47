package calibration

import (
	"context"
	"fmt"

	"github.com/uniaccru/promotion-system/internal/domain/promotion"
)

type Service struct {
	store StoreAPI
}

func NewService(store StoreAPI) *Service {
	return &Service{store: store}
}

const (
	minPackageRequests = 3
	packageEvaluators  = 2
)

// CreatePackage validates and builds a calibration batch: one calibration in
// planning, the selected promotion requests moved into it, and exactly two
// evaluators attached. The whole effect is a single transaction on the store;
// any precondition failure leaves no partial state.
func (s *Service) CreatePackage(ctx context.Context, gradeID string, requestIDs, evaluatorIDs []string, createdByID string) (Summary, error) {
	exists, err := s.store.GradeExists(ctx, gradeID)
	if err != nil {
		return Summary{}, err
	}
	if !exists {
		return Summary{}, fmt.Errorf("%w: %s", ErrGradeNotFound, gradeID)
	}

	exists, err = s.store.EmployeeExists(ctx, createdByID)
	if err != nil {
		return Summary{}, err
	}
	if !exists {
		return Summary{}, fmt.Errorf("%w: %s", ErrEmployeeNotFound, createdByID)
	}

	if len(requestIDs) < minPackageRequests {
		return Summary{}, ErrTooFewRequests
	}

	requests, err := s.store.PackageRequests(ctx, requestIDs)
	if err != nil {
		return Summary{}, err
	}
	byID := make(map[string]PackageRequest, len(requests))
	for _, req := range requests {
		byID[req.ID] = req
	}
	for _, id := range requestIDs {
		req, ok := byID[id]
		if !ok {
			return Summary{}, fmt.Errorf("%w: %s", ErrRequestNotFound, id)
		}
		if req.RequestedGradeID != gradeID {
			return Summary{}, fmt.Errorf("%w: request %s", ErrWrongGrade, id)
		}
		status, err := promotion.ParseStatus(req.Status)
		if err != nil || !status.CalibrationEligible() {
			return Summary{}, fmt.Errorf("%w: request %s (status %s)", ErrRequestNotEligible, id, req.Status)
		}
		if req.InCalibration {
			return Summary{}, fmt.Errorf("%w: request %s", ErrAlreadyInCalibration, id)
		}
	}

	if len(evaluatorIDs) != packageEvaluators {
		return Summary{}, ErrEvaluatorCount
	}
	for _, id := range evaluatorIDs {
		exists, err := s.store.EmployeeExists(ctx, id)
		if err != nil {
			return Summary{}, err
		}
		if !exists {
			return Summary{}, fmt.Errorf("%w: evaluator %s", ErrEmployeeNotFound, id)
		}
	}

	calibrationID, err := s.store.CreatePackage(ctx, gradeID, createdByID, requestIDs, evaluatorIDs)
	if err != nil {
		return Summary{}, err
	}
	return s.store.Summary(ctx, calibrationID)
}

// Create makes a bare calibration without packaging any requests.
func (s *Service) Create(ctx context.Context, gradeID, createdByID string) (Calibration, error) {
	exists, err := s.store.GradeExists(ctx, gradeID)
	if err != nil {
		return Calibration{}, err
	}
	if !exists {
		return Calibration{}, fmt.Errorf("%w: %s", ErrGradeNotFound, gradeID)
	}
	exists, err = s.store.EmployeeExists(ctx, createdByID)
	if err != nil {
		return Calibration{}, err
	}
	if !exists {
		return Calibration{}, fmt.Errorf("%w: %s", ErrEmployeeNotFound, createdByID)
	}

	id, err := s.store.Create(ctx, gradeID, createdByID)
	if err != nil {
		return Calibration{}, err
	}
	return s.store.Get(ctx, id)
}

func (s *Service) UpdateStatus(ctx context.Context, calibrationID, status string) (Calibration, error) {
	next, err := ParseStatus(status)
	if err != nil {
		return Calibration{}, err
	}
	current, err := s.store.Get(ctx, calibrationID)
	if err != nil {
		return Calibration{}, err
	}
	if !current.Status.CanTransitionTo(next) {
		return Calibration{}, fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, current.Status, next)
	}
	if err := s.store.UpdateStatus(ctx, calibrationID, next); err != nil {
		return Calibration{}, err
	}
	return s.store.Get(ctx, calibrationID)
}

func (s *Service) Get(ctx context.Context, calibrationID string) (Calibration, error) {
	return s.store.Get(ctx, calibrationID)
}

func (s *Service) Summary(ctx context.Context, calibrationID string) (Summary, error) {
	return s.store.Summary(ctx, calibrationID)
}

func (s *Service) ListByStatus(ctx context.Context, status string) ([]Calibration, error) {
	parsed, err := ParseStatus(status)
	if err != nil {
		return nil, err
	}
	return s.store.ListByStatus(ctx, parsed)
}

func (s *Service) ListByGrade(ctx context.Context, gradeID string) ([]Calibration, error) {
	return s.store.ListByGrade(ctx, gradeID)
}

func (s *Service) ListByEvaluator(ctx context.Context, evaluatorID string) ([]Calibration, error) {
	return s.store.ListByEvaluator(ctx, evaluatorID)
}

// CandidateRanking computes the advisory standings for HR from all recorded
// comparisons, regardless of which evaluator decided them.
func (s *Service) CandidateRanking(ctx context.Context, calibrationID string) (Ranking, error) {
	if _, err := s.store.Get(ctx, calibrationID); err != nil {
		return Ranking{}, err
	}
	candidates, err := s.store.Candidates(ctx, calibrationID)
	if err != nil {
		return Ranking{}, err
	}
	outcomes, err := s.store.Outcomes(ctx, calibrationID)
	if err != nil {
		return Ranking{}, err
	}
	return Ranking{
		CalibrationID: calibrationID,
		Rankings:      RankCandidates(candidates, outcomes),
	}, nil
}
