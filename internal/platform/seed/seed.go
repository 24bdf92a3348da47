package seed

import (
	"context"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"gopkg.in/yaml.v3"
)

type Fixtures struct {
	Grades []Grade `yaml:"grades"`

	Employees []Employee `yaml:"employees"`
}

type Grade struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

type Employee struct {
	FullName     string `yaml:"full_name"`
	Email        string `yaml:"email"`
	Role         string `yaml:"role"`
	Department   string `yaml:"department"`
	ReviewPeriod string `yaml:"review_period"`
}

// Run loads the fixtures file and upserts grades and employees. Seeding is
// idempotent: existing rows are matched by name or email and left alone.
func Run(ctx context.Context, pool *pgxpool.Pool, path string) error {
	fixtures, err := Load(path)
	if err != nil {
		return err
	}

	for _, grade := range fixtures.Grades {
		if err := ensureGrade(ctx, pool, grade); err != nil {
			return fmt.Errorf("seed grade %q: %w", grade.Name, err)
		}
	}
	for _, employee := range fixtures.Employees {
		if err := ensureEmployee(ctx, pool, employee); err != nil {
			return fmt.Errorf("seed employee %q: %w", employee.Email, err)
		}
	}
	return nil
}

func Load(path string) (Fixtures, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Fixtures{}, err
	}
	var fixtures Fixtures
	if err := yaml.Unmarshal(raw, &fixtures); err != nil {
		return Fixtures{}, fmt.Errorf("parse fixtures %s: %w", path, err)
	}
	for _, grade := range fixtures.Grades {
		if grade.Name == "" {
			return Fixtures{}, fmt.Errorf("fixtures %s: grade with empty name", path)
		}
	}
	for _, employee := range fixtures.Employees {
		if employee.FullName == "" || employee.Email == "" {
			return Fixtures{}, fmt.Errorf("fixtures %s: employee needs full_name and email", path)
		}
	}
	return fixtures, nil
}

func ensureGrade(ctx context.Context, pool *pgxpool.Pool, grade Grade) error {
	_, err := pool.Exec(ctx, `
    INSERT INTO grades (name, description)
    VALUES ($1,$2)
    ON CONFLICT (name) DO NOTHING
  `, grade.Name, grade.Description)
	return err
}

func ensureEmployee(ctx context.Context, pool *pgxpool.Pool, employee Employee) error {
	role := employee.Role
	if role == "" {
		role = "employee"
	}
	_, err := pool.Exec(ctx, `
    INSERT INTO employees (full_name, email, role, department, review_period)
    VALUES ($1,$2,$3,$4,$5)
    ON CONFLICT (email) DO NOTHING
  `, employee.FullName, employee.Email, role, employee.Department, employee.ReviewPeriod)
	return err
}
