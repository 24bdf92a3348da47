package calibration

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/uniaccru/promotion-system/internal/domain/promotion"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

func (s *Store) GradeExists(ctx context.Context, gradeID string) (bool, error) {
	var count int
	if err := s.DB.QueryRow(ctx, "SELECT COUNT(1) FROM grades WHERE id = $1", gradeID).Scan(&count); err != nil {
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

func (s *Store) PackageRequests(ctx context.Context, requestIDs []string) ([]PackageRequest, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, employee_id, requested_grade_id, status, calibration_id IS NOT NULL
    FROM promotion_requests
    WHERE id = ANY($1)
  `, requestIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []PackageRequest
	for rows.Next() {
		var req PackageRequest
		if err := rows.Scan(&req.ID, &req.EmployeeID, &req.RequestedGradeID, &req.Status, &req.InCalibration); err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}
	return requests, rows.Err()
}

func (s *Store) Create(ctx context.Context, gradeID, createdByID string) (string, error) {
	var id string
	if err := s.DB.QueryRow(ctx, `
    INSERT INTO calibrations (grade_id, created_by, status)
    VALUES ($1,$2,$3)
    RETURNING id
  `, gradeID, createdByID, StatusPlanning).Scan(&id); err != nil {
		return "", err
	}
	return id, nil
}

// CreatePackage performs the whole package-build effect in one transaction.
// The attach re-verifies calibration_id IS NULL under the transaction, so two
// concurrent builds selecting overlapping requests cannot both succeed.
func (s *Store) CreatePackage(ctx context.Context, gradeID, createdByID string, requestIDs, evaluatorIDs []string) (string, error) {
	tx, err := s.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return "", err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var calibrationID string
	if err := tx.QueryRow(ctx, `
    INSERT INTO calibrations (grade_id, created_by, status)
    VALUES ($1,$2,$3)
    RETURNING id
  `, gradeID, createdByID, StatusPlanning).Scan(&calibrationID); err != nil {
		return "", err
	}

	for _, requestID := range requestIDs {
		tag, err := tx.Exec(ctx, `
    UPDATE promotion_requests
    SET calibration_id = $1, status = $2, updated_at = now()
    WHERE id = $3 AND calibration_id IS NULL
  `, calibrationID, promotion.StatusInCalibration, requestID)
		if err != nil {
			return "", err
		}
		if tag.RowsAffected() == 0 {
			return "", fmt.Errorf("%w: request %s", ErrAlreadyInCalibration, requestID)
		}
	}

	for _, evaluatorID := range evaluatorIDs {
		if _, err := tx.Exec(ctx, `
    INSERT INTO calibration_evaluators (calibration_id, evaluator_id)
    VALUES ($1,$2)
  `, calibrationID, evaluatorID); err != nil {
			return "", err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return "", err
	}
	return calibrationID, nil
}

func (s *Store) Get(ctx context.Context, calibrationID string) (Calibration, error) {
	var cal Calibration
	err := s.DB.QueryRow(ctx, `
    SELECT id, grade_id, created_by, status, created_at, updated_at
    FROM calibrations
    WHERE id = $1
  `, calibrationID).Scan(&cal.ID, &cal.GradeID, &cal.CreatedByID, &cal.Status, &cal.CreatedAt, &cal.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Calibration{}, ErrCalibrationNotFound
	}
	if err != nil {
		return Calibration{}, err
	}
	return cal, nil
}

func (s *Store) Summary(ctx context.Context, calibrationID string) (Summary, error) {
	var summary Summary
	err := s.DB.QueryRow(ctx, `
    SELECT c.id, c.grade_id, g.name, c.created_by, e.full_name, c.status, c.created_at, c.updated_at
    FROM calibrations c
    JOIN grades g ON c.grade_id = g.id
    JOIN employees e ON c.created_by = e.id
    WHERE c.id = $1
  `, calibrationID).Scan(
		&summary.ID, &summary.GradeID, &summary.GradeName,
		&summary.CreatedByID, &summary.CreatedByName,
		&summary.Status, &summary.CreatedAt, &summary.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return Summary{}, ErrCalibrationNotFound
	}
	if err != nil {
		return Summary{}, err
	}

	rows, err := s.DB.Query(ctx, `
    SELECT ce.evaluator_id, e.full_name
    FROM calibration_evaluators ce
    JOIN employees e ON ce.evaluator_id = e.id
    WHERE ce.calibration_id = $1
    ORDER BY e.full_name
  `, calibrationID)
	if err != nil {
		return Summary{}, err
	}
	defer rows.Close()
	for rows.Next() {
		var id, name string
		if err := rows.Scan(&id, &name); err != nil {
			return Summary{}, err
		}
		summary.EvaluatorIDs = append(summary.EvaluatorIDs, id)
		summary.EvaluatorNames = append(summary.EvaluatorNames, name)
	}
	if err := rows.Err(); err != nil {
		return Summary{}, err
	}

	requestRows, err := s.DB.Query(ctx, `
    SELECT id
    FROM promotion_requests
    WHERE calibration_id = $1
    ORDER BY id
  `, calibrationID)
	if err != nil {
		return Summary{}, err
	}
	defer requestRows.Close()
	for requestRows.Next() {
		var id string
		if err := requestRows.Scan(&id); err != nil {
			return Summary{}, err
		}
		summary.PromotionRequestIDs = append(summary.PromotionRequestIDs, id)
	}
	if err := requestRows.Err(); err != nil {
		return Summary{}, err
	}

	summary.CandidateCount = len(summary.PromotionRequestIDs)
	return summary, nil
}

func (s *Store) ListByStatus(ctx context.Context, status Status) ([]Calibration, error) {
	return s.list(ctx, " WHERE status = $1", status)
}

func (s *Store) ListByGrade(ctx context.Context, gradeID string) ([]Calibration, error) {
	return s.list(ctx, " WHERE grade_id = $1", gradeID)
}

func (s *Store) ListByEvaluator(ctx context.Context, evaluatorID string) ([]Calibration, error) {
	return s.list(ctx, `
    WHERE id IN (SELECT calibration_id FROM calibration_evaluators WHERE evaluator_id = $1)
  `, evaluatorID)
}

func (s *Store) list(ctx context.Context, filter string, args ...any) ([]Calibration, error) {
	query := `
    SELECT id, grade_id, created_by, status, created_at, updated_at
    FROM calibrations
  ` + filter + " ORDER BY created_at DESC"
	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var calibrations []Calibration
	for rows.Next() {
		var cal Calibration
		if err := rows.Scan(&cal.ID, &cal.GradeID, &cal.CreatedByID, &cal.Status, &cal.CreatedAt, &cal.UpdatedAt); err != nil {
			return nil, err
		}
		calibrations = append(calibrations, cal)
	}
	return calibrations, rows.Err()
}

func (s *Store) UpdateStatus(ctx context.Context, calibrationID string, status Status) error {
	tag, err := s.DB.Exec(ctx, `
    UPDATE calibrations
    SET status = $1, updated_at = now()
    WHERE id = $2
  `, status, calibrationID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrCalibrationNotFound
	}
	return nil
}

// Candidates returns one entry per attached promotion request, ordered by
// request id for reproducible output.
func (s *Store) Candidates(ctx context.Context, calibrationID string) ([]CandidateRef, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT pr.employee_id, e.full_name, pr.id, g.name, pr.status
    FROM promotion_requests pr
    JOIN employees e ON pr.employee_id = e.id
    JOIN grades g ON pr.requested_grade_id = g.id
    WHERE pr.calibration_id = $1
    ORDER BY pr.id
  `, calibrationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var candidates []CandidateRef
	for rows.Next() {
		var cand CandidateRef
		if err := rows.Scan(&cand.EmployeeID, &cand.EmployeeName, &cand.PromotionRequestID, &cand.RequestedGradeName, &cand.CurrentStatus); err != nil {
			return nil, err
		}
		candidates = append(candidates, cand)
	}
	return candidates, rows.Err()
}

func (s *Store) Outcomes(ctx context.Context, calibrationID string) ([]Outcome, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT candidate_a_id, candidate_b_id, winner_id
    FROM comparisons
    WHERE calibration_id = $1
  `, calibrationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var outcomes []Outcome
	for rows.Next() {
		var outcome Outcome
		if err := rows.Scan(&outcome.CandidateAID, &outcome.CandidateBID, &outcome.WinnerID); err != nil {
			return nil, err
		}
		outcomes = append(outcomes, outcome)
	}
	return outcomes, rows.Err()
}
