package promotion

import (
	"context"
	"errors"

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

const requestColumns = `
    pr.id,
    pr.employee_id, e.full_name,
    pr.requested_grade_id, g.name,
    pr.submitted_by, sb.full_name,
    COALESCE(pr.calibration_id::text, ''),
    pr.justification, pr.evidence, pr.review_period,
    pr.status, COALESCE(pr.hr_comment, ''),
    pr.created_at, pr.updated_at
`

const requestJoins = `
    FROM promotion_requests pr
    JOIN employees e ON pr.employee_id = e.id
    JOIN grades g ON pr.requested_grade_id = g.id
    JOIN employees sb ON pr.submitted_by = sb.id
`

func (s *Store) EmployeeExists(ctx context.Context, employeeID string) (bool, error) {
	var count int
	if err := s.DB.QueryRow(ctx, "SELECT COUNT(1) FROM employees WHERE id = $1", employeeID).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *Store) GradeExists(ctx context.Context, gradeID string) (bool, error) {
	var count int
	if err := s.DB.QueryRow(ctx, "SELECT COUNT(1) FROM grades WHERE id = $1", gradeID).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *Store) HasActiveRequest(ctx context.Context, employeeID, gradeID string) (bool, error) {
	var count int
	if err := s.DB.QueryRow(ctx, `
    SELECT COUNT(1)
    FROM promotion_requests
    WHERE employee_id = $1 AND requested_grade_id = $2
      AND status IN ($3,$4,$5,$6)
  `, employeeID, gradeID, StatusPending, StatusUnderReview, StatusReadyForCalibration, StatusInCalibration).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *Store) Create(ctx context.Context, employeeID, gradeID, submittedByID, justification, evidence, reviewPeriod string) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO promotion_requests (employee_id, requested_grade_id, submitted_by, status_changed_by, justification, evidence, review_period, status)
    VALUES ($1,$2,$3,$3,$4,$5,$6,$7)
    RETURNING id
  `, employeeID, gradeID, submittedByID, justification, evidence, reviewPeriod, StatusPending).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return "", ErrActiveRequestExists
		}
		return "", err
	}
	return id, nil
}

func (s *Store) Get(ctx context.Context, requestID string) (Request, error) {
	var req Request
	err := s.DB.QueryRow(ctx, "SELECT "+requestColumns+requestJoins+" WHERE pr.id = $1", requestID).Scan(
		&req.ID,
		&req.EmployeeID, &req.EmployeeName,
		&req.RequestedGradeID, &req.RequestedGradeName,
		&req.SubmittedByID, &req.SubmittedByName,
		&req.CalibrationID,
		&req.Justification, &req.Evidence, &req.ReviewPeriod,
		&req.Status, &req.HRComment,
		&req.CreatedAt, &req.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return Request{}, ErrRequestNotFound
	}
	if err != nil {
		return Request{}, err
	}
	return req, nil
}

func (s *Store) Update(ctx context.Context, requestID, gradeID, justification, evidence, reviewPeriod string, status Status, clearComment bool) error {
	query := `
    UPDATE promotion_requests
    SET requested_grade_id = $1, justification = $2, evidence = $3, review_period = $4, status = $5, updated_at = now()
  `
	if clearComment {
		query += ", hr_comment = NULL"
	}
	query += " WHERE id = $6"
	tag, err := s.DB.Exec(ctx, query, gradeID, justification, evidence, reviewPeriod, status, requestID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrRequestNotFound
	}
	return nil
}

func (s *Store) SetStatus(ctx context.Context, requestID string, status Status, changedByID, comment string) error {
	query := `
    UPDATE promotion_requests
    SET status = $1, status_changed_by = $2, updated_at = now()
  `
	args := []any{status, changedByID, requestID}
	if comment != "" {
		query += ", hr_comment = $4"
		args = append(args, comment)
	}
	query += " WHERE id = $3"
	tag, err := s.DB.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrRequestNotFound
	}
	return nil
}

// Decide writes the final status and, on approval, the grade history entry in
// one transaction.
func (s *Store) Decide(ctx context.Context, requestID string, status Status, decidedByID, comment string, history *GradeChange) error {
	tx, err := s.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	tag, err := tx.Exec(ctx, `
    UPDATE promotion_requests
    SET status = $1, status_changed_by = $2, hr_comment = $3, updated_at = now()
    WHERE id = $4
  `, status, decidedByID, comment, requestID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrRequestNotFound
	}

	if history != nil {
		var oldGrade any
		if history.OldGradeID != "" {
			oldGrade = history.OldGradeID
		}
		if _, err := tx.Exec(ctx, `
    INSERT INTO grade_history (employee_id, old_grade_id, new_grade_id, changed_by, reason)
    VALUES ($1,$2,$3,$4,$5)
  `, history.EmployeeID, oldGrade, history.NewGradeID, history.ChangedByID, history.Reason); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (s *Store) ListByEmployee(ctx context.Context, employeeID string) ([]Request, error) {
	return s.list(ctx, " WHERE pr.employee_id = $1", employeeID)
}

func (s *Store) ListByStatus(ctx context.Context, status Status) ([]Request, error) {
	return s.list(ctx, " WHERE pr.status = $1", status)
}

func (s *Store) ListAll(ctx context.Context) ([]Request, error) {
	return s.list(ctx, "")
}

func (s *Store) list(ctx context.Context, filter string, args ...any) ([]Request, error) {
	rows, err := s.DB.Query(ctx, "SELECT "+requestColumns+requestJoins+filter+" ORDER BY pr.created_at DESC", args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []Request
	for rows.Next() {
		var req Request
		if err := rows.Scan(
			&req.ID,
			&req.EmployeeID, &req.EmployeeName,
			&req.RequestedGradeID, &req.RequestedGradeName,
			&req.SubmittedByID, &req.SubmittedByName,
			&req.CalibrationID,
			&req.Justification, &req.Evidence, &req.ReviewPeriod,
			&req.Status, &req.HRComment,
			&req.CreatedAt, &req.UpdatedAt,
		); err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}
	return requests, rows.Err()
}

func (s *Store) LatestGradeID(ctx context.Context, employeeID string) (string, error) {
	var gradeID string
	err := s.DB.QueryRow(ctx, `
    SELECT new_grade_id::text
    FROM grade_history
    WHERE employee_id = $1
    ORDER BY changed_at DESC
    LIMIT 1
  `, employeeID).Scan(&gradeID)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return gradeID, nil
}

func (s *Store) GradeHistory(ctx context.Context, employeeID string) ([]GradeChange, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, employee_id, COALESCE(old_grade_id::text, ''), new_grade_id, changed_by, reason, changed_at
    FROM grade_history
    WHERE employee_id = $1
    ORDER BY changed_at DESC
  `, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var changes []GradeChange
	for rows.Next() {
		var change GradeChange
		if err := rows.Scan(&change.ID, &change.EmployeeID, &change.OldGradeID, &change.NewGradeID, &change.ChangedByID, &change.Reason, &change.ChangedAt); err != nil {
			return nil, err
		}
		changes = append(changes, change)
	}
	return changes, rows.Err()
}
