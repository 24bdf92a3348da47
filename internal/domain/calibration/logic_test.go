package calibration

import (
	"math"
	"testing"
)

func TestRankCandidatesWinRates(t *testing.T) {
	candidates := []CandidateRef{
		{EmployeeID: "10", EmployeeName: "A", PromotionRequestID: "pr-1"},
		{EmployeeID: "11", EmployeeName: "B", PromotionRequestID: "pr-2"},
		{EmployeeID: "12", EmployeeName: "C", PromotionRequestID: "pr-3"},
	}
	outcomes := []Outcome{
		{CandidateAID: "10", CandidateBID: "11", WinnerID: "10"},
		{CandidateAID: "10", CandidateBID: "12", WinnerID: "10"},
		{CandidateAID: "11", CandidateBID: "12", WinnerID: "11"},
	}

	scores := RankCandidates(candidates, outcomes)
	if len(scores) != 3 {
		t.Fatalf("expected 3 scores, got %d", len(scores))
	}

	if scores[0].EmployeeID != "10" || scores[0].Wins != 2 || scores[0].TotalComparisons != 2 || scores[0].WinRate != 1.0 {
		t.Fatalf("unexpected first place: %+v", scores[0])
	}
	if scores[1].EmployeeID != "11" || scores[1].Wins != 1 || scores[1].TotalComparisons != 2 || scores[1].WinRate != 0.5 {
		t.Fatalf("unexpected second place: %+v", scores[1])
	}
	if scores[2].EmployeeID != "12" || scores[2].Wins != 0 || scores[2].TotalComparisons != 2 || scores[2].WinRate != 0.0 {
		t.Fatalf("unexpected third place: %+v", scores[2])
	}
}

func TestRankCandidatesZeroComparisons(t *testing.T) {
	candidates := []CandidateRef{
		{EmployeeID: "10", EmployeeName: "A"},
	}

	scores := RankCandidates(candidates, nil)
	if len(scores) != 1 {
		t.Fatalf("expected 1 score, got %d", len(scores))
	}
	if scores[0].TotalComparisons != 0 || scores[0].WinRate != 0.0 {
		t.Fatalf("expected zero total and zero rate, got %+v", scores[0])
	}
}

func TestRankCandidatesTwoEvaluators(t *testing.T) {
	// X judges A>B, A>C, B>C; Y judges B>A. A and B tie on win rate and the
	// tie breaks on employee id ascending.
	candidates := []CandidateRef{
		{EmployeeID: "10", EmployeeName: "A"},
		{EmployeeID: "11", EmployeeName: "B"},
		{EmployeeID: "12", EmployeeName: "C"},
	}
	outcomes := []Outcome{
		{CandidateAID: "10", CandidateBID: "11", WinnerID: "10"},
		{CandidateAID: "10", CandidateBID: "12", WinnerID: "10"},
		{CandidateAID: "11", CandidateBID: "12", WinnerID: "11"},
		{CandidateAID: "10", CandidateBID: "11", WinnerID: "11"},
	}

	scores := RankCandidates(candidates, outcomes)
	if scores[0].EmployeeID != "10" || scores[1].EmployeeID != "11" || scores[2].EmployeeID != "12" {
		t.Fatalf("expected order A, B, C, got %s, %s, %s", scores[0].EmployeeID, scores[1].EmployeeID, scores[2].EmployeeID)
	}

	for _, score := range scores[:2] {
		if score.Wins != 2 || score.TotalComparisons != 3 {
			t.Fatalf("expected 2 wins over 3 comparisons, got %+v", score)
		}
		if math.Abs(score.WinRate-2.0/3.0) > 1e-9 {
			t.Fatalf("expected win rate 2/3, got %v", score.WinRate)
		}
	}
	if scores[2].Wins != 0 || scores[2].TotalComparisons != 2 || scores[2].WinRate != 0.0 {
		t.Fatalf("unexpected last place: %+v", scores[2])
	}
}

func TestRankCandidatesTieBreakOnEmployeeID(t *testing.T) {
	candidates := []CandidateRef{
		{EmployeeID: "12"},
		{EmployeeID: "10"},
		{EmployeeID: "11"},
	}

	scores := RankCandidates(candidates, nil)
	if scores[0].EmployeeID != "10" || scores[1].EmployeeID != "11" || scores[2].EmployeeID != "12" {
		t.Fatalf("expected id-ascending order on full tie, got %+v", scores)
	}
}

func TestStatusTransitions(t *testing.T) {
	if !StatusPlanning.CanTransitionTo(StatusActive) {
		t.Fatal("planning -> active should be legal")
	}
	if !StatusActive.CanTransitionTo(StatusCompleted) {
		t.Fatal("active -> completed should be legal")
	}
	if StatusCompleted.CanTransitionTo(StatusPlanning) {
		t.Fatal("completed -> planning should be illegal")
	}
	if StatusActive.CanTransitionTo(StatusPlanning) {
		t.Fatal("active -> planning should be illegal")
	}
}

func TestParseStatus(t *testing.T) {
	status, err := ParseStatus(" Active ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status != StatusActive {
		t.Fatalf("expected active, got %s", status)
	}
	if _, err := ParseStatus("archived"); err == nil {
		t.Fatal("expected error for unknown status")
	}
}
