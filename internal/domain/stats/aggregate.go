package stats

import (
	"sort"

	"cricmates/backend/internal/domain/matches"
	"cricmates/backend/internal/domain/transactions"
)

// ActiveMemberIDs returns the sorted union of member ids that played
// in the most recent `window` matches. Input order does not matter:
// matches are sorted by date descending (stable, so equal dates keep
// their relative order) before the window is applied. No matches means
// no active members.
func ActiveMemberIDs(ms []matches.Match, window int) []string {
	if window <= 0 || len(ms) == 0 {
		return []string{}
	}

	sorted := make([]matches.Match, len(ms))
	copy(sorted, ms)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.After(sorted[j].Date)
	})
	if len(sorted) > window {
		sorted = sorted[:window]
	}

	seen := map[string]bool{}
	for _, m := range sorted {
		for _, p := range m.Players {
			seen[p.MemberID] = true
		}
	}

	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// TallyOutcomes counts matches per result. Unknown result strings are
// ignored.
func TallyOutcomes(ms []matches.Match) Tally {
	var t Tally
	for _, m := range ms {
		switch m.Result {
		case matches.ResultWon:
			t.Won++
		case matches.ResultLost:
			t.Lost++
		case matches.ResultDraw:
			t.Draw++
		case matches.ResultUpcoming:
			t.Upcoming++
		case matches.ResultCancelled:
			t.Cancelled++
		}
	}
	return t
}

// WinRate is the percentage of completed matches won, rounded half up.
// Zero completed matches yields 0.
func WinRate(t Tally) int {
	completed := t.Completed()
	if completed == 0 {
		return 0
	}
	return int(float64(t.Won)/float64(completed)*100 + 0.5)
}

// FundTotal sums signed transaction amounts. Deposits and refunds are
// stored positive, fees and expenses negative, so the plain sum is the
// club's fund position.
func FundTotal(txs []transactions.Transaction) int64 {
	var total int64
	for _, t := range txs {
		total += t.Amount
	}
	return total
}

// ClassifyBalance buckets a member balance against the configured
// thresholds. Cutoffs are strict: a balance equal to a threshold sits
// in the healthier bucket.
func ClassifyBalance(balance int64, th Thresholds) string {
	switch {
	case balance < th.Critical:
		return BalanceCritical
	case balance < th.Low:
		return BalanceLow
	default:
		return BalanceOK
	}
}
