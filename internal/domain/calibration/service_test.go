package calibration

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"
)

type fakeStore struct {
	grades    map[string]bool
	employees map[string]bool
	requests  map[string]PackageRequest

	calibrations map[string]Calibration
	evaluators   map[string][]string
	attached     map[string][]string
	nextID       int

	candidates []CandidateRef
	outcomes   []Outcome
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		grades:       map[string]bool{},
		employees:    map[string]bool{},
		requests:     map[string]PackageRequest{},
		calibrations: map[string]Calibration{},
		evaluators:   map[string][]string{},
		attached:     map[string][]string{},
	}
}

func (f *fakeStore) GradeExists(_ context.Context, gradeID string) (bool, error) {
	return f.grades[gradeID], nil
}

func (f *fakeStore) EmployeeExists(_ context.Context, employeeID string) (bool, error) {
	return f.employees[employeeID], nil
}

func (f *fakeStore) PackageRequests(_ context.Context, requestIDs []string) ([]PackageRequest, error) {
	var out []PackageRequest
	for _, id := range requestIDs {
		if req, ok := f.requests[id]; ok {
			out = append(out, req)
		}
	}
	return out, nil
}

func (f *fakeStore) Create(_ context.Context, gradeID, createdByID string) (string, error) {
	f.nextID++
	id := fmt.Sprintf("cal-%d", f.nextID)
	f.calibrations[id] = Calibration{ID: id, GradeID: gradeID, CreatedByID: createdByID, Status: StatusPlanning, CreatedAt: time.Now(), UpdatedAt: time.Now()}
	return id, nil
}

func (f *fakeStore) CreatePackage(ctx context.Context, gradeID, createdByID string, requestIDs, evaluatorIDs []string) (string, error) {
	for _, requestID := range requestIDs {
		if f.requests[requestID].InCalibration {
			return "", fmt.Errorf("%w: request %s", ErrAlreadyInCalibration, requestID)
		}
	}
	id, _ := f.Create(ctx, gradeID, createdByID)
	for _, requestID := range requestIDs {
		req := f.requests[requestID]
		req.InCalibration = true
		req.Status = "in_calibration"
		f.requests[requestID] = req
		f.attached[id] = append(f.attached[id], requestID)
	}
	f.evaluators[id] = append([]string{}, evaluatorIDs...)
	return id, nil
}

func (f *fakeStore) Get(_ context.Context, calibrationID string) (Calibration, error) {
	cal, ok := f.calibrations[calibrationID]
	if !ok {
		return Calibration{}, ErrCalibrationNotFound
	}
	return cal, nil
}

func (f *fakeStore) Summary(ctx context.Context, calibrationID string) (Summary, error) {
	cal, err := f.Get(ctx, calibrationID)
	if err != nil {
		return Summary{}, err
	}
	return Summary{
		ID:                  cal.ID,
		GradeID:             cal.GradeID,
		CreatedByID:         cal.CreatedByID,
		Status:              cal.Status,
		EvaluatorIDs:        f.evaluators[calibrationID],
		PromotionRequestIDs: f.attached[calibrationID],
		CandidateCount:      len(f.attached[calibrationID]),
	}, nil
}

func (f *fakeStore) ListByStatus(_ context.Context, status Status) ([]Calibration, error) {
	var out []Calibration
	for _, cal := range f.calibrations {
		if cal.Status == status {
			out = append(out, cal)
		}
	}
	return out, nil
}

func (f *fakeStore) ListByGrade(_ context.Context, gradeID string) ([]Calibration, error) {
	var out []Calibration
	for _, cal := range f.calibrations {
		if cal.GradeID == gradeID {
			out = append(out, cal)
		}
	}
	return out, nil
}

func (f *fakeStore) ListByEvaluator(_ context.Context, evaluatorID string) ([]Calibration, error) {
	var out []Calibration
	for id, evaluators := range f.evaluators {
		for _, evaluator := range evaluators {
			if evaluator == evaluatorID {
				out = append(out, f.calibrations[id])
			}
		}
	}
	return out, nil
}

func (f *fakeStore) UpdateStatus(_ context.Context, calibrationID string, status Status) error {
	cal, ok := f.calibrations[calibrationID]
	if !ok {
		return ErrCalibrationNotFound
	}
	cal.Status = status
	f.calibrations[calibrationID] = cal
	return nil
}

func (f *fakeStore) Candidates(_ context.Context, _ string) ([]CandidateRef, error) {
	return f.candidates, nil
}

func (f *fakeStore) Outcomes(_ context.Context, _ string) ([]Outcome, error) {
	return f.outcomes, nil
}

func packageFixture() *fakeStore {
	store := newFakeStore()
	store.grades["grade-mid"] = true
	for _, id := range []string{"hr-1", "eval-1", "eval-2", "emp-1", "emp-2", "emp-3"} {
		store.employees[id] = true
	}
	for i, employeeID := range []string{"emp-1", "emp-2", "emp-3"} {
		id := fmt.Sprintf("pr-%d", i+1)
		store.requests[id] = PackageRequest{ID: id, EmployeeID: employeeID, RequestedGradeID: "grade-mid", Status: "ready_for_calibration"}
	}
	return store
}

func TestCreatePackage(t *testing.T) {
	store := packageFixture()
	service := NewService(store)

	summary, err := service.CreatePackage(context.Background(), "grade-mid", []string{"pr-1", "pr-2", "pr-3"}, []string{"eval-1", "eval-2"}, "hr-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.Status != StatusPlanning {
		t.Fatalf("expected planning status, got %s", summary.Status)
	}
	if summary.CandidateCount != 3 {
		t.Fatalf("expected 3 candidates, got %d", summary.CandidateCount)
	}
	if len(summary.EvaluatorIDs) != 2 {
		t.Fatalf("expected 2 evaluators, got %d", len(summary.EvaluatorIDs))
	}
	for _, id := range []string{"pr-1", "pr-2", "pr-3"} {
		if !store.requests[id].InCalibration {
			t.Fatalf("request %s not attached", id)
		}
	}
}

func TestCreatePackageRequiresThreeRequests(t *testing.T) {
	store := packageFixture()
	service := NewService(store)

	_, err := service.CreatePackage(context.Background(), "grade-mid", []string{"pr-1", "pr-2"}, []string{"eval-1", "eval-2"}, "hr-1")
	if !errors.Is(err, ErrTooFewRequests) {
		t.Fatalf("expected ErrTooFewRequests, got %v", err)
	}
	if len(store.calibrations) != 0 {
		t.Fatal("expected no calibration persisted")
	}
}

func TestCreatePackageRequiresTwoEvaluators(t *testing.T) {
	store := packageFixture()
	service := NewService(store)

	for _, evaluators := range [][]string{{"eval-1"}, {"eval-1", "eval-2", "hr-1"}} {
		_, err := service.CreatePackage(context.Background(), "grade-mid", []string{"pr-1", "pr-2", "pr-3"}, evaluators, "hr-1")
		if !errors.Is(err, ErrEvaluatorCount) {
			t.Fatalf("evaluators %v: expected ErrEvaluatorCount, got %v", evaluators, err)
		}
	}
	if len(store.calibrations) != 0 {
		t.Fatal("expected no calibration persisted")
	}
}

func TestCreatePackageRejectsWrongGrade(t *testing.T) {
	store := packageFixture()
	req := store.requests["pr-2"]
	req.RequestedGradeID = "grade-senior"
	store.requests["pr-2"] = req
	service := NewService(store)

	_, err := service.CreatePackage(context.Background(), "grade-mid", []string{"pr-1", "pr-2", "pr-3"}, []string{"eval-1", "eval-2"}, "hr-1")
	if !errors.Is(err, ErrWrongGrade) {
		t.Fatalf("expected ErrWrongGrade, got %v", err)
	}
	if len(store.calibrations) != 0 {
		t.Fatal("expected no calibration persisted after failed validation")
	}
	if store.requests["pr-1"].InCalibration {
		t.Fatal("expected no request attached after failed validation")
	}
}

func TestCreatePackageRejectsAttachedRequest(t *testing.T) {
	store := packageFixture()
	req := store.requests["pr-3"]
	req.InCalibration = true
	store.requests["pr-3"] = req
	service := NewService(store)

	_, err := service.CreatePackage(context.Background(), "grade-mid", []string{"pr-1", "pr-2", "pr-3"}, []string{"eval-1", "eval-2"}, "hr-1")
	if !errors.Is(err, ErrAlreadyInCalibration) {
		t.Fatalf("expected ErrAlreadyInCalibration, got %v", err)
	}
	if len(store.calibrations) != 0 {
		t.Fatal("expected no calibration persisted")
	}
}

func TestCreatePackageRejectsIneligibleStatus(t *testing.T) {
	store := packageFixture()
	req := store.requests["pr-1"]
	req.Status = "rejected"
	store.requests["pr-1"] = req
	service := NewService(store)

	_, err := service.CreatePackage(context.Background(), "grade-mid", []string{"pr-1", "pr-2", "pr-3"}, []string{"eval-1", "eval-2"}, "hr-1")
	if !errors.Is(err, ErrRequestNotEligible) {
		t.Fatalf("expected ErrRequestNotEligible, got %v", err)
	}
}

func TestCreatePackageRejectsMissingRequest(t *testing.T) {
	store := packageFixture()
	service := NewService(store)

	_, err := service.CreatePackage(context.Background(), "grade-mid", []string{"pr-1", "pr-2", "pr-missing"}, []string{"eval-1", "eval-2"}, "hr-1")
	if !errors.Is(err, ErrRequestNotFound) {
		t.Fatalf("expected ErrRequestNotFound, got %v", err)
	}
}

func TestCreatePackageRejectsUnknownGrade(t *testing.T) {
	store := packageFixture()
	service := NewService(store)

	_, err := service.CreatePackage(context.Background(), "grade-unknown", []string{"pr-1", "pr-2", "pr-3"}, []string{"eval-1", "eval-2"}, "hr-1")
	if !errors.Is(err, ErrGradeNotFound) {
		t.Fatalf("expected ErrGradeNotFound, got %v", err)
	}
}

func TestUpdateStatusValidatesTransition(t *testing.T) {
	store := packageFixture()
	service := NewService(store)

	created, err := service.Create(context.Background(), "grade-mid", "hr-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	updated, err := service.UpdateStatus(context.Background(), created.ID, "active")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Status != StatusActive {
		t.Fatalf("expected active, got %s", updated.Status)
	}

	if _, err := service.UpdateStatus(context.Background(), created.ID, "planning"); !errors.Is(err, ErrIllegalTransition) {
		t.Fatalf("expected ErrIllegalTransition, got %v", err)
	}
	if _, err := service.UpdateStatus(context.Background(), created.ID, "archived"); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
}

func TestCandidateRanking(t *testing.T) {
	store := packageFixture()
	service := NewService(store)

	created, err := service.Create(context.Background(), "grade-mid", "hr-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	store.candidates = []CandidateRef{
		{EmployeeID: "emp-1", EmployeeName: "A", PromotionRequestID: "pr-1"},
		{EmployeeID: "emp-2", EmployeeName: "B", PromotionRequestID: "pr-2"},
	}
	store.outcomes = []Outcome{
		{CandidateAID: "emp-1", CandidateBID: "emp-2", WinnerID: "emp-1"},
	}

	ranking, err := service.CandidateRanking(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ranking.CalibrationID != created.ID {
		t.Fatalf("unexpected calibration id %q", ranking.CalibrationID)
	}
	if ranking.Rankings[0].EmployeeID != "emp-1" || ranking.Rankings[0].WinRate != 1.0 {
		t.Fatalf("unexpected winner: %+v", ranking.Rankings[0])
	}
}

func TestCandidateRankingUnknownCalibration(t *testing.T) {
	service := NewService(packageFixture())

	if _, err := service.CandidateRanking(context.Background(), "cal-missing"); !errors.Is(err, ErrCalibrationNotFound) {
		t.Fatalf("expected ErrCalibrationNotFound, got %v", err)
	}
}
