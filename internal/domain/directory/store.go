package directory

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrGradeNotFound    = errors.New("grade not found")
)

// Store is the grade/employee directory. The calibration core only reads from
// it; writes exist for administration and seeding.
type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

func (s *Store) GetEmployee(ctx context.Context, employeeID string) (Employee, error) {
	var emp Employee
	err := s.DB.QueryRow(ctx, `
    SELECT id, full_name, email, role, department, hire_date, review_period, created_at, updated_at
    FROM employees
    WHERE id = $1
  `, employeeID).Scan(&emp.ID, &emp.FullName, &emp.Email, &emp.Role, &emp.Department, &emp.HireDate, &emp.ReviewPeriod, &emp.CreatedAt, &emp.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Employee{}, ErrEmployeeNotFound
	}
	if err != nil {
		return Employee{}, err
	}
	return emp, nil
}

func (s *Store) ListEmployees(ctx context.Context) ([]Employee, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, full_name, email, role, department, hire_date, review_period, created_at, updated_at
    FROM employees
    ORDER BY full_name
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []Employee
	for rows.Next() {
		var emp Employee
		if err := rows.Scan(&emp.ID, &emp.FullName, &emp.Email, &emp.Role, &emp.Department, &emp.HireDate, &emp.ReviewPeriod, &emp.CreatedAt, &emp.UpdatedAt); err != nil {
			return nil, err
		}
		employees = append(employees, emp)
	}
	return employees, rows.Err()
}

func (s *Store) CreateEmployee(ctx context.Context, emp Employee) (string, error) {
	var id string
	if err := s.DB.QueryRow(ctx, `
    INSERT INTO employees (full_name, email, role, department, hire_date, review_period)
    VALUES ($1,$2,$3,$4,$5,$6)
    RETURNING id
  `, emp.FullName, emp.Email, emp.Role, emp.Department, emp.HireDate, emp.ReviewPeriod).Scan(&id); err != nil {
		return "", err
	}
	return id, nil
}

func (s *Store) EmployeeByEmail(ctx context.Context, email string) (Employee, error) {
	var emp Employee
	err := s.DB.QueryRow(ctx, `
    SELECT id, full_name, email, role, department, hire_date, review_period, created_at, updated_at
    FROM employees
    WHERE email = $1
  `, email).Scan(&emp.ID, &emp.FullName, &emp.Email, &emp.Role, &emp.Department, &emp.HireDate, &emp.ReviewPeriod, &emp.CreatedAt, &emp.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Employee{}, ErrEmployeeNotFound
	}
	if err != nil {
		return Employee{}, err
	}
	return emp, nil
}

func (s *Store) GetGrade(ctx context.Context, gradeID string) (Grade, error) {
	var grade Grade
	err := s.DB.QueryRow(ctx, `
    SELECT id, name, description, created_at
    FROM grades
    WHERE id = $1
  `, gradeID).Scan(&grade.ID, &grade.Name, &grade.Description, &grade.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Grade{}, ErrGradeNotFound
	}
	if err != nil {
		return Grade{}, err
	}
	return grade, nil
}

func (s *Store) ListGrades(ctx context.Context) ([]Grade, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, name, description, created_at
    FROM grades
    ORDER BY name
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var grades []Grade
	for rows.Next() {
		var grade Grade
		if err := rows.Scan(&grade.ID, &grade.Name, &grade.Description, &grade.CreatedAt); err != nil {
			return nil, err
		}
		grades = append(grades, grade)
	}
	return grades, rows.Err()
}

func (s *Store) CreateGrade(ctx context.Context, name, description string) (string, error) {
	var id string
	if err := s.DB.QueryRow(ctx, `
    INSERT INTO grades (name, description)
    VALUES ($1,$2)
    RETURNING id
  `, name, description).Scan(&id); err != nil {
		return "", err
	}
	return id, nil
}

func (s *Store) GradeByName(ctx context.Context, name string) (Grade, error) {
	var grade Grade
	err := s.DB.QueryRow(ctx, `
    SELECT id, name, description, created_at
    FROM grades
    WHERE name = $1
  `, name).Scan(&grade.ID, &grade.Name, &grade.Description, &grade.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Grade{}, ErrGradeNotFound
	}
	if err != nil {
		return Grade{}, err
	}
	return grade, nil
}
