package comparison

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"
)

type fakeStore struct {
	calibrations map[string]bool
	employees    map[string]bool
	candidates   []Candidate

	comparisons []Comparison
	nextID      int
}

func newFakeStore() *fakeStore {
	store := &fakeStore{
		calibrations: map[string]bool{"cal-1": true},
		employees:    map[string]bool{},
	}
	for _, employee := range []Candidate{
		{EmployeeID: "emp-a", EmployeeName: "Alice", Justification: "Led the billing rewrite"},
		{EmployeeID: "emp-b", EmployeeName: "Bruno", Justification: "On-call lead for two quarters"},
		{EmployeeID: "emp-c", EmployeeName: "Carol", Justification: "Owns the reporting pipeline"},
	} {
		store.employees[employee.EmployeeID] = true
		store.candidates = append(store.candidates, employee)
	}
	store.employees["eval-x"] = true
	store.employees["eval-y"] = true
	return store
}

func (f *fakeStore) CalibrationExists(_ context.Context, calibrationID string) (bool, error) {
	return f.calibrations[calibrationID], nil
}

func (f *fakeStore) EmployeeExists(_ context.Context, employeeID string) (bool, error) {
	return f.employees[employeeID], nil
}

func (f *fakeStore) HasJudged(_ context.Context, calibrationID, evaluatorID string, pair Pair) (bool, error) {
	for _, cmp := range f.comparisons {
		if cmp.CalibrationID != calibrationID || cmp.DecidedByID != evaluatorID {
			continue
		}
		if SamePair(Pair{CandidateAID: cmp.CandidateAID, CandidateBID: cmp.CandidateBID}, pair) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) Create(_ context.Context, calibrationID, candidateAID, candidateBID, winnerID, decidedByID string, decidedAt time.Time) (string, error) {
	f.nextID++
	id := fmt.Sprintf("cmp-%d", f.nextID)
	f.comparisons = append(f.comparisons, Comparison{
		ID:            id,
		CalibrationID: calibrationID,
		CandidateAID:  candidateAID,
		CandidateBID:  candidateBID,
		WinnerID:      winnerID,
		DecidedByID:   decidedByID,
		DecidedAt:     decidedAt,
	})
	return id, nil
}

func (f *fakeStore) Detail(_ context.Context, comparisonID string) (Detail, error) {
	for _, cmp := range f.comparisons {
		if cmp.ID == comparisonID {
			return Detail{
				ID:            cmp.ID,
				CalibrationID: cmp.CalibrationID,
				CandidateAID:  cmp.CandidateAID,
				CandidateBID:  cmp.CandidateBID,
				WinnerID:      cmp.WinnerID,
				DecidedByID:   cmp.DecidedByID,
				DecidedAt:     cmp.DecidedAt,
			}, nil
		}
	}
	return Detail{}, ErrComparisonNotFound
}

func (f *fakeStore) ListByCalibration(_ context.Context, calibrationID string) ([]Detail, error) {
	var out []Detail
	for _, cmp := range f.comparisons {
		if cmp.CalibrationID == calibrationID {
			detail, _ := f.Detail(context.Background(), cmp.ID)
			out = append(out, detail)
		}
	}
	return out, nil
}

func (f *fakeStore) JudgedPairs(_ context.Context, calibrationID, evaluatorID string) ([]Pair, error) {
	var out []Pair
	for _, cmp := range f.comparisons {
		if cmp.CalibrationID == calibrationID && cmp.DecidedByID == evaluatorID {
			out = append(out, Pair{CandidateAID: cmp.CandidateAID, CandidateBID: cmp.CandidateBID})
		}
	}
	return out, nil
}

func (f *fakeStore) Candidates(_ context.Context, _ string) ([]Candidate, error) {
	return f.candidates, nil
}

func TestCreateComparison(t *testing.T) {
	store := newFakeStore()
	service := NewService(store)

	detail, err := service.Create(context.Background(), "cal-1", "emp-a", "emp-b", "emp-a", "eval-x")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if detail.WinnerID != "emp-a" {
		t.Fatalf("expected winner emp-a, got %s", detail.WinnerID)
	}
	if detail.DecidedAt.IsZero() {
		t.Fatal("expected decidedAt to be set")
	}
}

func TestCreateComparisonInvalidWinner(t *testing.T) {
	store := newFakeStore()
	service := NewService(store)

	_, err := service.Create(context.Background(), "cal-1", "emp-a", "emp-b", "emp-c", "eval-x")
	if !errors.Is(err, ErrInvalidWinner) {
		t.Fatalf("expected ErrInvalidWinner, got %v", err)
	}
	if len(store.comparisons) != 0 {
		t.Fatal("expected nothing persisted")
	}
}

func TestCreateComparisonSelfPair(t *testing.T) {
	service := NewService(newFakeStore())

	_, err := service.Create(context.Background(), "cal-1", "emp-a", "emp-a", "emp-a", "eval-x")
	if !errors.Is(err, ErrSelfComparison) {
		t.Fatalf("expected ErrSelfComparison, got %v", err)
	}
}

func TestCreateComparisonUnknownCalibration(t *testing.T) {
	service := NewService(newFakeStore())

	_, err := service.Create(context.Background(), "cal-missing", "emp-a", "emp-b", "emp-a", "eval-x")
	if !errors.Is(err, ErrCalibrationNotFound) {
		t.Fatalf("expected ErrCalibrationNotFound, got %v", err)
	}
}

func TestCreateComparisonUnknownEmployee(t *testing.T) {
	service := NewService(newFakeStore())

	_, err := service.Create(context.Background(), "cal-1", "emp-a", "emp-ghost", "emp-a", "eval-x")
	if !errors.Is(err, ErrEmployeeNotFound) {
		t.Fatalf("expected ErrEmployeeNotFound, got %v", err)
	}
}

func TestCreateComparisonDuplicateSameEvaluator(t *testing.T) {
	store := newFakeStore()
	service := NewService(store)

	if _, err := service.Create(context.Background(), "cal-1", "emp-a", "emp-b", "emp-a", "eval-x"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Same pair again, candidates swapped, same evaluator.
	_, err := service.Create(context.Background(), "cal-1", "emp-b", "emp-a", "emp-b", "eval-x")
	if !errors.Is(err, ErrAlreadyCompared) {
		t.Fatalf("expected ErrAlreadyCompared, got %v", err)
	}
	if len(store.comparisons) != 1 {
		t.Fatalf("expected a single stored comparison, got %d", len(store.comparisons))
	}
}

func TestCreateComparisonSamePairOtherEvaluator(t *testing.T) {
	store := newFakeStore()
	service := NewService(store)

	if _, err := service.Create(context.Background(), "cal-1", "emp-a", "emp-b", "emp-a", "eval-x"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := service.Create(context.Background(), "cal-1", "emp-a", "emp-b", "emp-b", "eval-y"); err != nil {
		t.Fatalf("second evaluator should judge the same pair: %v", err)
	}
	if len(store.comparisons) != 2 {
		t.Fatalf("expected 2 stored comparisons, got %d", len(store.comparisons))
	}
}

func TestPendingForEvaluatorShrinks(t *testing.T) {
	store := newFakeStore()
	service := NewService(store)

	pending, err := service.PendingForEvaluator(context.Background(), "cal-1", "eval-x")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pending) != 3 {
		t.Fatalf("expected 3 pending pairs for 3 candidates, got %d", len(pending))
	}

	if _, err := service.Create(context.Background(), "cal-1", "emp-a", "emp-b", "emp-a", "eval-x"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	pending, err = service.PendingForEvaluator(context.Background(), "cal-1", "eval-x")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pending) != 2 {
		t.Fatalf("expected 2 pending pairs after judging one, got %d", len(pending))
	}
	for _, pair := range pending {
		if SamePair(Pair{CandidateAID: pair.CandidateAID, CandidateBID: pair.CandidateBID}, Pair{CandidateAID: "emp-a", CandidateBID: "emp-b"}) {
			t.Fatalf("judged pair still pending: %+v", pair)
		}
	}

	// Another evaluator still sees the full matrix.
	pending, err = service.PendingForEvaluator(context.Background(), "cal-1", "eval-y")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pending) != 3 {
		t.Fatalf("expected 3 pending pairs for the other evaluator, got %d", len(pending))
	}
}

func TestPendingForEvaluatorUnknownCalibration(t *testing.T) {
	service := NewService(newFakeStore())

	if _, err := service.PendingForEvaluator(context.Background(), "cal-missing", "eval-x"); !errors.Is(err, ErrCalibrationNotFound) {
		t.Fatalf("expected ErrCalibrationNotFound, got %v", err)
	}
}
