package comparison

import (
	"context"
	"time"
)

type StoreAPI interface {
	CalibrationExists(ctx context.Context, calibrationID string) (bool, error)
	EmployeeExists(ctx context.Context, employeeID string) (bool, error)

	HasJudged(ctx context.Context, calibrationID, evaluatorID string, pair Pair) (bool, error)
	Create(ctx context.Context, calibrationID, candidateAID, candidateBID, winnerID, decidedByID string, decidedAt time.Time) (string, error)
	Detail(ctx context.Context, comparisonID string) (Detail, error)
	ListByCalibration(ctx context.Context, calibrationID string) ([]Detail, error)

	JudgedPairs(ctx context.Context, calibrationID, evaluatorID string) ([]Pair, error)
	Candidates(ctx context.Context, calibrationID string) ([]Candidate, error)
}
