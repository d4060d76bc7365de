package stats

// Balance levels for the funds health view.
const (
	BalanceOK       = "ok"
	BalanceLow      = "low"
	BalanceCritical = "critical"
)

// Thresholds are the balance cutoffs, injected from config.
type Thresholds struct {
	Low      int64
	Critical int64
}

// Tally counts match outcomes. Upcoming and cancelled matches are
// excluded from the win rate.
type Tally struct {
	Won       int `json:"won"`
	Lost      int `json:"lost"`
	Draw      int `json:"draw"`
	Upcoming  int `json:"upcoming"`
	Cancelled int `json:"cancelled"`
}

// Completed is the number of matches with a decided outcome.
func (t Tally) Completed() int {
	return t.Won + t.Lost + t.Draw
}

// DashboardStats is the aggregate snapshot served to the club
// dashboard.
type DashboardStats struct {
	TotalMembers    int   `json:"totalMembers"`
	ActiveMembers   int   `json:"activeMembers"`
	TotalMatches    int   `json:"totalMatches"`
	Tally           Tally `json:"tally"`
	WinRate         int   `json:"winRate"`
	TotalFunds      int64 `json:"totalFunds"`
	LowBalance      int   `json:"lowBalance"`
	CriticalBalance int   `json:"criticalBalance"`
	PendingRequests int   `json:"pendingRequests"`
}

// MemberActivity pairs a member with the computed participation flag
// and balance bucket.
type MemberActivity struct {
	MemberID     string `json:"memberId"`
	Name         string `json:"name"`
	Active       bool   `json:"active"`
	Balance      int64  `json:"balance"`
	BalanceLevel string `json:"balanceLevel"`
}
