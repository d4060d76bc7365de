package stats

import (
	"context"
	"testing"

	"cricmates/backend/internal/domain/matches"
	"cricmates/backend/internal/domain/members"
	"cricmates/backend/internal/domain/requests"
	"cricmates/backend/internal/domain/transactions"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMembers struct{ list []members.Member }

func (f *fakeMembers) List(ctx context.Context, clubID string) ([]members.Member, error) {
	return f.list, nil
}

type fakeMatches struct{ list []matches.Match }

func (f *fakeMatches) List(ctx context.Context, clubID string) ([]matches.Match, error) {
	return f.list, nil
}

type fakeTxs struct{ list []transactions.Transaction }

func (f *fakeTxs) List(ctx context.Context, clubID string, in transactions.ListTransactionsInput) ([]transactions.Transaction, error) {
	return f.list, nil
}

type fakeRequests struct{ list []requests.Request }

func (f *fakeRequests) List(ctx context.Context, clubID, status string) ([]requests.Request, error) {
	out := []requests.Request{}
	for _, r := range f.list {
		if status == "" || r.Status == status {
			out = append(out, r)
		}
	}
	return out, nil
}

func TestDashboard(t *testing.T) {
	mems := &fakeMembers{list: []members.Member{
		{ID: "m1", Name: "Arjun", Balance: 2500},
		{ID: "m2", Name: "Vikram", Balance: 800},
		{ID: "m3", Name: "Sanjay", Balance: 300},
	}}
	games := &fakeMatches{list: []matches.Match{
		matchOn(1, matches.ResultWon, "m1", "m2"),
		matchOn(2, matches.ResultLost, "m1"),
		matchOn(3, matches.ResultUpcoming, "m1", "m3"),
	}}
	txs := &fakeTxs{list: []transactions.Transaction{
		{Amount: 5000}, {Amount: -1500},
	}}
	reqs := &fakeRequests{list: []requests.Request{
		{Status: requests.StatusPending},
		{Status: requests.StatusPending},
		{Status: requests.StatusApproved},
	}}

	s := NewService(mems, games, txs, reqs, 10, Thresholds{Low: 1000, Critical: 500})
	got, err := s.Dashboard(context.Background(), "club-1")
	require.NoError(t, err)

	assert.Equal(t, 3, got.TotalMembers)
	assert.Equal(t, 3, got.ActiveMembers)
	assert.Equal(t, 3, got.TotalMatches)
	assert.Equal(t, Tally{Won: 1, Lost: 1, Upcoming: 1}, got.Tally)
	assert.Equal(t, 50, got.WinRate)
	assert.Equal(t, int64(3500), got.TotalFunds)
	assert.Equal(t, 1, got.LowBalance)
	assert.Equal(t, 1, got.CriticalBalance)
	assert.Equal(t, 2, got.PendingRequests)
}

func TestDashboardRequiresClub(t *testing.T) {
	s := NewService(&fakeMembers{}, &fakeMatches{}, &fakeTxs{}, &fakeRequests{}, 10, Thresholds{})
	_, err := s.Dashboard(context.Background(), "")
	require.Error(t, err)
	assert.True(t, IsErrBadRequest(err))
}

func TestMemberActivityList(t *testing.T) {
	mems := &fakeMembers{list: []members.Member{
		{ID: "m1", Name: "Arjun", Balance: 2500},
		{ID: "m2", Name: "Vikram", Balance: 400},
	}}
	games := &fakeMatches{list: []matches.Match{
		matchOn(5, matches.ResultWon, "m1"),
	}}

	s := NewService(mems, games, &fakeTxs{}, &fakeRequests{}, 10, Thresholds{Low: 1000, Critical: 500})
	got, err := s.MemberActivityList(context.Background(), "club-1")
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.True(t, got[0].Active)
	assert.Equal(t, BalanceOK, got[0].BalanceLevel)
	assert.False(t, got[1].Active)
	assert.Equal(t, BalanceCritical, got[1].BalanceLevel)
}
