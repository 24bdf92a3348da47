package calibration

import "sort"

// RankCandidates turns recorded pairwise outcomes into a win-rate-ordered
// ranking. Every candidate gets an entry: a candidate that appears in no
// outcome ranks with zero wins and a zero win rate rather than an error.
// Ties on win rate are broken by employee id ascending so the order is
// reproducible across runs.
func RankCandidates(candidates []CandidateRef, outcomes []Outcome) []CandidateScore {
	scores := make([]CandidateScore, 0, len(candidates))
	for _, cand := range candidates {
		wins, total := 0, 0
		for _, outcome := range outcomes {
			if outcome.CandidateAID == cand.EmployeeID || outcome.CandidateBID == cand.EmployeeID {
				total++
			}
			if outcome.WinnerID == cand.EmployeeID {
				wins++
			}
		}
		rate := 0.0
		if total > 0 {
			rate = float64(wins) / float64(total)
		}
		scores = append(scores, CandidateScore{
			EmployeeID:         cand.EmployeeID,
			EmployeeName:       cand.EmployeeName,
			PromotionRequestID: cand.PromotionRequestID,
			RequestedGradeName: cand.RequestedGradeName,
			CurrentStatus:      cand.CurrentStatus,
			Wins:               wins,
			TotalComparisons:   total,
			WinRate:            rate,
		})
	}

	sort.SliceStable(scores, func(i, j int) bool {
		if scores[i].WinRate != scores[j].WinRate {
			return scores[i].WinRate > scores[j].WinRate
		}
		return scores[i].EmployeeID < scores[j].EmployeeID
	})
	return scores
}
