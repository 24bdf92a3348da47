package comparison

import (
	"context"
	"fmt"
	"time"
)

type Service struct {
	store StoreAPI
}

func NewService(store StoreAPI) *Service {
	return &Service{store: store}
}

// Create records one pairwise judgment. The duplicate check here gives the
// caller a clean conflict error; the storage layer carries a uniqueness
// constraint on (calibration, evaluator, unordered pair) as well, so a racing
// duplicate submission cannot slip through the read-then-write window.
func (s *Service) Create(ctx context.Context, calibrationID, candidateAID, candidateBID, winnerID, decidedByID string) (Detail, error) {
	exists, err := s.store.CalibrationExists(ctx, calibrationID)
	if err != nil {
		return Detail{}, err
	}
	if !exists {
		return Detail{}, fmt.Errorf("%w: %s", ErrCalibrationNotFound, calibrationID)
	}

	for _, employeeID := range []string{candidateAID, candidateBID, winnerID, decidedByID} {
		exists, err := s.store.EmployeeExists(ctx, employeeID)
		if err != nil {
			return Detail{}, err
		}
		if !exists {
			return Detail{}, fmt.Errorf("%w: %s", ErrEmployeeNotFound, employeeID)
		}
	}

	if candidateAID == candidateBID {
		return Detail{}, ErrSelfComparison
	}
	if winnerID != candidateAID && winnerID != candidateBID {
		return Detail{}, ErrInvalidWinner
	}

	pair := Pair{CandidateAID: candidateAID, CandidateBID: candidateBID}
	judged, err := s.store.HasJudged(ctx, calibrationID, decidedByID, pair)
	if err != nil {
		return Detail{}, err
	}
	if judged {
		return Detail{}, ErrAlreadyCompared
	}

	id, err := s.store.Create(ctx, calibrationID, candidateAID, candidateBID, winnerID, decidedByID, time.Now().UTC())
	if err != nil {
		return Detail{}, err
	}
	return s.store.Detail(ctx, id)
}

func (s *Service) ListByCalibration(ctx context.Context, calibrationID string) ([]Detail, error) {
	exists, err := s.store.CalibrationExists(ctx, calibrationID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrCalibrationNotFound, calibrationID)
	}
	return s.store.ListByCalibration(ctx, calibrationID)
}

// PendingForEvaluator computes which candidate pairs the evaluator has not
// judged yet, with both candidates' justifications attached.
func (s *Service) PendingForEvaluator(ctx context.Context, calibrationID, evaluatorID string) ([]PendingPair, error) {
	exists, err := s.store.CalibrationExists(ctx, calibrationID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrCalibrationNotFound, calibrationID)
	}

	candidates, err := s.store.Candidates(ctx, calibrationID)
	if err != nil {
		return nil, err
	}
	candidates = DedupCandidates(candidates)
	if len(candidates) == 0 {
		return []PendingPair{}, nil
	}

	judged, err := s.store.JudgedPairs(ctx, calibrationID, evaluatorID)
	if err != nil {
		return nil, err
	}
	return PendingPairs(calibrationID, candidates, judged), nil
}
