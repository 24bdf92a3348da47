package comparison

// SamePair reports whether two stored pairs cover the same two candidates,
// ignoring A/B order. All pair matching goes through this predicate so no
// call site depends on which side a candidate was stored on.
func SamePair(a, b Pair) bool {
	return (a.CandidateAID == b.CandidateAID && a.CandidateBID == b.CandidateBID) ||
		(a.CandidateAID == b.CandidateBID && a.CandidateBID == b.CandidateAID)
}

// DedupCandidates drops repeated employees, keeping the first occurrence so
// the enumeration order stays stable.
func DedupCandidates(candidates []Candidate) []Candidate {
	seen := make(map[string]bool, len(candidates))
	out := make([]Candidate, 0, len(candidates))
	for _, cand := range candidates {
		if cand.EmployeeID == "" || seen[cand.EmployeeID] {
			continue
		}
		seen[cand.EmployeeID] = true
		out = append(out, cand)
	}
	return out
}

// PendingPairs enumerates every unordered candidate pair in candidate-list
// order (outer i, inner j>i) and keeps those the evaluator has not judged
// yet. n is small, so the quadratic sweep is fine.
func PendingPairs(calibrationID string, candidates []Candidate, judged []Pair) []PendingPair {
	pending := []PendingPair{}
	for i := 0; i < len(candidates); i++ {
		for j := i + 1; j < len(candidates); j++ {
			a, b := candidates[i], candidates[j]
			pair := Pair{CandidateAID: a.EmployeeID, CandidateBID: b.EmployeeID}

			done := false
			for _, existing := range judged {
				if SamePair(pair, existing) {
					done = true
					break
				}
			}
			if done {
				continue
			}

			pending = append(pending, PendingPair{
				CalibrationID:           calibrationID,
				CandidateAID:            a.EmployeeID,
				CandidateAName:          a.EmployeeName,
				CandidateAJustification: a.Justification,
				CandidateBID:            b.EmployeeID,
				CandidateBName:          b.EmployeeName,
				CandidateBJustification: b.Justification,
			})
		}
	}
	return pending
}
