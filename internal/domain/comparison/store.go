package comparison

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

func (s *Store) CalibrationExists(ctx context.Context, calibrationID string) (bool, error) {
	var count int
	if err := s.DB.QueryRow(ctx, "SELECT COUNT(1) FROM calibrations WHERE id = $1", calibrationID).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *Store) EmployeeExists(ctx context.Context, employeeID string) (bool, error) {
	var count int
	if err := s.DB.QueryRow(ctx, "SELECT COUNT(1) FROM employees WHERE id = $1", employeeID).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *Store) HasJudged(ctx context.Context, calibrationID, evaluatorID string, pair Pair) (bool, error) {
	var count int
	if err := s.DB.QueryRow(ctx, `
    SELECT COUNT(1)
    FROM comparisons
    WHERE calibration_id = $1 AND decided_by = $2
      AND LEAST(candidate_a_id, candidate_b_id) = LEAST($3::uuid, $4::uuid)
      AND GREATEST(candidate_a_id, candidate_b_id) = GREATEST($3::uuid, $4::uuid)
  `, calibrationID, evaluatorID, pair.CandidateAID, pair.CandidateBID).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *Store) Create(ctx context.Context, calibrationID, candidateAID, candidateBID, winnerID, decidedByID string, decidedAt time.Time) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO comparisons (calibration_id, candidate_a_id, candidate_b_id, winner_id, decided_by, decided_at)
    VALUES ($1,$2,$3,$4,$5,$6)
    RETURNING id
  `, calibrationID, candidateAID, candidateBID, winnerID, decidedByID, decidedAt).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return "", ErrAlreadyCompared
		}
		return "", err
	}
	return id, nil
}

const detailQuery = `
    SELECT c.id, c.calibration_id,
           c.candidate_a_id, ea.full_name, COALESCE(pra.justification, ''),
           c.candidate_b_id, eb.full_name, COALESCE(prb.justification, ''),
           c.winner_id, ew.full_name,
           c.decided_by, ed.full_name,
           c.decided_at
    FROM comparisons c
    JOIN employees ea ON c.candidate_a_id = ea.id
    JOIN employees eb ON c.candidate_b_id = eb.id
    JOIN employees ew ON c.winner_id = ew.id
    JOIN employees ed ON c.decided_by = ed.id
    LEFT JOIN promotion_requests pra ON pra.calibration_id = c.calibration_id AND pra.employee_id = c.candidate_a_id
    LEFT JOIN promotion_requests prb ON prb.calibration_id = c.calibration_id AND prb.employee_id = c.candidate_b_id
`

func (s *Store) Detail(ctx context.Context, comparisonID string) (Detail, error) {
	var detail Detail
	err := s.DB.QueryRow(ctx, detailQuery+" WHERE c.id = $1", comparisonID).Scan(
		&detail.ID, &detail.CalibrationID,
		&detail.CandidateAID, &detail.CandidateAName, &detail.CandidateAJustification,
		&detail.CandidateBID, &detail.CandidateBName, &detail.CandidateBJustification,
		&detail.WinnerID, &detail.WinnerName,
		&detail.DecidedByID, &detail.DecidedByName,
		&detail.DecidedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return Detail{}, ErrComparisonNotFound
	}
	if err != nil {
		return Detail{}, err
	}
	return detail, nil
}

func (s *Store) ListByCalibration(ctx context.Context, calibrationID string) ([]Detail, error) {
	rows, err := s.DB.Query(ctx, detailQuery+" WHERE c.calibration_id = $1 ORDER BY c.decided_at DESC", calibrationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var details []Detail
	for rows.Next() {
		var detail Detail
		if err := rows.Scan(
			&detail.ID, &detail.CalibrationID,
			&detail.CandidateAID, &detail.CandidateAName, &detail.CandidateAJustification,
			&detail.CandidateBID, &detail.CandidateBName, &detail.CandidateBJustification,
			&detail.WinnerID, &detail.WinnerName,
			&detail.DecidedByID, &detail.DecidedByName,
			&detail.DecidedAt,
		); err != nil {
			return nil, err
		}
		details = append(details, detail)
	}
	return details, rows.Err()
}

func (s *Store) JudgedPairs(ctx context.Context, calibrationID, evaluatorID string) ([]Pair, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT candidate_a_id, candidate_b_id
    FROM comparisons
    WHERE calibration_id = $1 AND decided_by = $2
  `, calibrationID, evaluatorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pairs []Pair
	for rows.Next() {
		var pair Pair
		if err := rows.Scan(&pair.CandidateAID, &pair.CandidateBID); err != nil {
			return nil, err
		}
		pairs = append(pairs, pair)
	}
	return pairs, rows.Err()
}

// Candidates lists calibration participants through their promotion requests,
// ordered by request id so pair enumeration is deterministic.
func (s *Store) Candidates(ctx context.Context, calibrationID string) ([]Candidate, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT pr.employee_id, e.full_name, pr.justification
    FROM promotion_requests pr
    JOIN employees e ON pr.employee_id = e.id
    WHERE pr.calibration_id = $1
    ORDER BY pr.id
  `, calibrationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var candidates []Candidate
	for rows.Next() {
		var cand Candidate
		if err := rows.Scan(&cand.EmployeeID, &cand.EmployeeName, &cand.Justification); err != nil {
			return nil, err
		}
		candidates = append(candidates, cand)
	}
	return candidates, rows.Err()
}
