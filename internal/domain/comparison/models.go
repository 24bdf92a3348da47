package comparison

import "time"

type Comparison struct {
	ID            string    `json:"id"`
	CalibrationID string    `json:"calibrationId"`
	CandidateAID  string    `json:"candidateAId"`
	CandidateBID  string    `json:"candidateBId"`
	WinnerID      string    `json:"winnerId"`
	DecidedByID   string    `json:"decidedById"`
	DecidedAt     time.Time `json:"decidedAt"`
}

// Detail is a judgment enriched with the context an evaluator or HR reader
// needs: names and the justification text from each candidate's promotion
// request in this calibration.
type Detail struct {
	ID                      string    `json:"id"`
	CalibrationID           string    `json:"calibrationId"`
	CandidateAID            string    `json:"candidateAId"`
	CandidateAName          string    `json:"candidateAName"`
	CandidateAJustification string    `json:"candidateAJustification"`
	CandidateBID            string    `json:"candidateBId"`
	CandidateBName          string    `json:"candidateBName"`
	CandidateBJustification string    `json:"candidateBJustification"`
	WinnerID                string    `json:"winnerId"`
	WinnerName              string    `json:"winnerName"`
	DecidedByID             string    `json:"decidedById"`
	DecidedByName           string    `json:"decidedByName"`
	DecidedAt               time.Time `json:"decidedAt"`
}

// PendingPair is a candidate pair the evaluator has not judged yet.
type PendingPair struct {
	CalibrationID           string `json:"calibrationId"`
	CandidateAID            string `json:"candidateAId"`
	CandidateAName          string `json:"candidateAName"`
	CandidateAJustification string `json:"candidateAJustification"`
	CandidateBID            string `json:"candidateBId"`
	CandidateBName          string `json:"candidateBName"`
	CandidateBJustification string `json:"candidateBJustification"`
}

// Candidate is one calibration participant, carried with judgment context.
type Candidate struct {
	EmployeeID    string
	EmployeeName  string
	Justification string
}

// Pair is a stored judgment's candidate pair; order of A/B is arbitrary and
// must be ignored when matching.
type Pair struct {
	CandidateAID string
	CandidateBID string
}
