package stats

import (
	"math/rand"
	"testing"
	"time"

	"cricmates/backend/internal/domain/matches"
	"cricmates/backend/internal/domain/transactions"

	"github.com/stretchr/testify/assert"
)

func matchOn(day int, result string, playerIDs ...string) matches.Match {
	players := make([]matches.MatchPlayer, 0, len(playerIDs))
	for _, id := range playerIDs {
		players = append(players, matches.MatchPlayer{MemberID: id})
	}
	return matches.Match{
		Date:    time.Date(2026, 8, day, 0, 0, 0, 0, time.UTC),
		Result:  result,
		Players: players,
	}
}

func TestActiveMemberIDsWindow(t *testing.T) {
	// 12 matches; with a window of 10 the two oldest fall out, so m1
	// (who only played on days 1 and 2) is not active.
	var ms []matches.Match
	ms = append(ms, matchOn(1, matches.ResultWon, "m1"))
	ms = append(ms, matchOn(2, matches.ResultLost, "m1"))
	for day := 3; day <= 12; day++ {
		ms = append(ms, matchOn(day, matches.ResultWon, "m2", "m3"))
	}

	ids := ActiveMemberIDs(ms, 10)
	assert.Equal(t, []string{"m2", "m3"}, ids)
}

func TestActiveMemberIDsOrderInvariant(t *testing.T) {
	var ms []matches.Match
	ms = append(ms, matchOn(1, matches.ResultWon, "old"))
	for day := 2; day <= 11; day++ {
		ms = append(ms, matchOn(day, matches.ResultWon, "recent"))
	}
	want := ActiveMemberIDs(ms, 10)

	r := rand.New(rand.NewSource(42))
	for i := 0; i < 20; i++ {
		shuffled := make([]matches.Match, len(ms))
		copy(shuffled, ms)
		r.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})
		assert.Equal(t, want, ActiveMemberIDs(shuffled, 10))
	}
}

func TestActiveMemberIDsFewerMatchesThanWindow(t *testing.T) {
	ms := []matches.Match{
		matchOn(1, matches.ResultWon, "m1"),
		matchOn(2, matches.ResultLost, "m2"),
	}
	assert.Equal(t, []string{"m1", "m2"}, ActiveMemberIDs(ms, 10))
	assert.Empty(t, ActiveMemberIDs(nil, 10))
	assert.Empty(t, ActiveMemberIDs(ms, 0))
}

func TestTallyAndWinRate(t *testing.T) {
	ms := []matches.Match{
		matchOn(1, matches.ResultWon),
		matchOn(2, matches.ResultWon),
		matchOn(3, matches.ResultWon),
		matchOn(4, matches.ResultLost),
		matchOn(5, matches.ResultDraw),
		matchOn(6, matches.ResultUpcoming),
		matchOn(7, matches.ResultCancelled),
	}

	tally := TallyOutcomes(ms)
	assert.Equal(t, Tally{Won: 3, Lost: 1, Draw: 1, Upcoming: 1, Cancelled: 1}, tally)
	assert.Equal(t, 5, tally.Completed())

	// 3 of 5 completed, upcoming and cancelled excluded.
	assert.Equal(t, 60, WinRate(tally))
}

func TestWinRateEdgeCases(t *testing.T) {
	assert.Equal(t, 0, WinRate(Tally{}))
	assert.Equal(t, 0, WinRate(Tally{Upcoming: 4, Cancelled: 2}))
	assert.Equal(t, 100, WinRate(Tally{Won: 7}))
	// 1/3 rounds to 33, 2/3 rounds to 67.
	assert.Equal(t, 33, WinRate(Tally{Won: 1, Lost: 2}))
	assert.Equal(t, 67, WinRate(Tally{Won: 2, Lost: 1}))
	// Exact half rounds up.
	assert.Equal(t, 13, WinRate(Tally{Won: 1, Lost: 7}))
}

func TestFundTotal(t *testing.T) {
	txs := []transactions.Transaction{
		{Type: transactions.TypeDeposit, Amount: 5000},
		{Type: transactions.TypeDeposit, Amount: 3000},
		{Type: transactions.TypeMatchFee, Amount: -200},
		{Type: transactions.TypeExpense, Amount: -5000},
	}
	assert.Equal(t, int64(2800), FundTotal(txs))
	assert.Equal(t, int64(0), FundTotal(nil))
}

func TestClassifyBalance(t *testing.T) {
	th := Thresholds{Low: 1000, Critical: 500}

	assert.Equal(t, BalanceLow, ClassifyBalance(999, th))
	assert.Equal(t, BalanceCritical, ClassifyBalance(499, th))
	// Threshold values themselves sit in the healthier bucket.
	assert.Equal(t, BalanceOK, ClassifyBalance(1000, th))
	assert.Equal(t, BalanceLow, ClassifyBalance(500, th))
	assert.Equal(t, BalanceCritical, ClassifyBalance(-100, th))
	assert.Equal(t, BalanceOK, ClassifyBalance(250000, th))
}
