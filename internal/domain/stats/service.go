package stats

import (
	"context"
	"fmt"

	"cricmates/backend/internal/domain/matches"
	"cricmates/backend/internal/domain/members"
	"cricmates/backend/internal/domain/requests"
	"cricmates/backend/internal/domain/transactions"
)

// Fetch interfaces are deliberately narrow: the dashboard reads whole
// collections and derives everything in memory.
type MemberLister interface {
	List(ctx context.Context, clubID string) ([]members.Member, error)
}

type MatchLister interface {
	List(ctx context.Context, clubID string) ([]matches.Match, error)
}

type TxLister interface {
	List(ctx context.Context, clubID string, in transactions.ListTransactionsInput) ([]transactions.Transaction, error)
}

type RequestLister interface {
	List(ctx context.Context, clubID, status string) ([]requests.Request, error)
}

type Service struct {
	members    MemberLister
	matches    MatchLister
	txs        TxLister
	requests   RequestLister
	window     int
	thresholds Thresholds
}

func NewService(members MemberLister, matches MatchLister, txs TxLister, reqs RequestLister, window int, th Thresholds) *Service {
	if window <= 0 {
		window = 10
	}
	return &Service{
		members:    members,
		matches:    matches,
		txs:        txs,
		requests:   reqs,
		window:     window,
		thresholds: th,
	}
}

// Dashboard assembles the club's aggregate snapshot.
func (s *Service) Dashboard(ctx context.Context, clubID string) (*DashboardStats, error) {
	if clubID == "" {
		return nil, fmt.Errorf("%w: clubId is required", ErrBadRequest)
	}

	ms, err := s.members.List(ctx, clubID)
	if err != nil {
		return nil, fmt.Errorf("failed to load members: %w", err)
	}
	games, err := s.matches.List(ctx, clubID)
	if err != nil {
		return nil, fmt.Errorf("failed to load matches: %w", err)
	}
	txs, err := s.txs.List(ctx, clubID, transactions.ListTransactionsInput{})
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}
	pending, err := s.requests.List(ctx, clubID, requests.StatusPending)
	if err != nil {
		return nil, fmt.Errorf("failed to load requests: %w", err)
	}

	tally := TallyOutcomes(games)
	active := ActiveMemberIDs(games, s.window)

	low, critical := 0, 0
	for _, m := range ms {
		switch ClassifyBalance(m.Balance, s.thresholds) {
		case BalanceLow:
			low++
		case BalanceCritical:
			critical++
		}
	}

	return &DashboardStats{
		TotalMembers:    len(ms),
		ActiveMembers:   len(active),
		TotalMatches:    len(games),
		Tally:           tally,
		WinRate:         WinRate(tally),
		TotalFunds:      FundTotal(txs),
		LowBalance:      low,
		CriticalBalance: critical,
		PendingRequests: len(pending),
	}, nil
}

// MemberActivityList annotates every member with the participation
// flag derived from the recent-match window and a balance bucket.
func (s *Service) MemberActivityList(ctx context.Context, clubID string) ([]MemberActivity, error) {
	if clubID == "" {
		return nil, fmt.Errorf("%w: clubId is required", ErrBadRequest)
	}

	ms, err := s.members.List(ctx, clubID)
	if err != nil {
		return nil, fmt.Errorf("failed to load members: %w", err)
	}
	games, err := s.matches.List(ctx, clubID)
	if err != nil {
		return nil, fmt.Errorf("failed to load matches: %w", err)
	}

	active := map[string]bool{}
	for _, id := range ActiveMemberIDs(games, s.window) {
		active[id] = true
	}

	out := make([]MemberActivity, 0, len(ms))
	for _, m := range ms {
		out = append(out, MemberActivity{
			MemberID:     m.ID,
			Name:         m.Name,
			Active:       active[m.ID],
			Balance:      m.Balance,
			BalanceLevel: ClassifyBalance(m.Balance, s.thresholds),
		})
	}
	return out, nil
}
