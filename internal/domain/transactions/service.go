package transactions

import (
	"context"
	"fmt"

	"cricmates/backend/internal/utils"
)

type Service struct {
	repo *Repo
}

func NewService(repo *Repo) *Service {
	return &Service{repo: repo}
}

// Insert writes a pre-built transaction row. Used by collaborators that
// move balances themselves (member funds, match fees).
func (s *Service) Insert(ctx context.Context, clubID string, t Transaction) (*Transaction, error) {
	if clubID == "" {
		return nil, fmt.Errorf("%w: clubId is required", ErrBadRequest)
	}
	if !IsValidType(t.Type) {
		return nil, fmt.Errorf("%w: invalid transaction type %q", ErrBadRequest, t.Type)
	}
	return s.repo.Insert(ctx, clubID, t)
}

// Add records a club-level transaction from client input. Expenses are
// stored negative regardless of the sign the caller sent.
func (s *Service) Add(ctx context.Context, clubID string, in AddTransactionInput) (*Transaction, error) {
	in.Trim()
	if clubID == "" {
		return nil, fmt.Errorf("%w: clubId is required", ErrBadRequest)
	}
	if !IsValidType(in.Type) {
		return nil, fmt.Errorf("%w: invalid transaction type %q", ErrBadRequest, in.Type)
	}
	if in.Amount == 0 {
		return nil, fmt.Errorf("%w: amount is required", ErrBadRequest)
	}

	date, err := utils.ParseDate(in.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid date", ErrBadRequest)
	}

	amount := in.Amount
	if amount < 0 {
		amount = -amount
	}
	switch in.Type {
	case TypeExpense, TypeMatchFee:
		amount = -amount
	}

	return s.repo.Insert(ctx, clubID, Transaction{
		Date:        date,
		Type:        in.Type,
		Amount:      amount,
		MemberID:    in.MemberID,
		MatchID:     in.MatchID,
		Description: utils.TrimMax(in.Description, 500),
	})
}

func (s *Service) List(ctx context.Context, clubID string, in ListTransactionsInput) ([]Transaction, error) {
	if clubID == "" {
		return nil, fmt.Errorf("%w: clubId is required", ErrBadRequest)
	}
	return s.repo.List(ctx, clubID, in)
}

// Delete removes a ledger row. Member balances are not re-synced: rows
// tied to a balance move should be corrected with a compensating entry
// instead.
func (s *Service) Delete(ctx context.Context, clubID, txID string) error {
	if clubID == "" || txID == "" {
		return fmt.Errorf("%w: clubId and transactionId are required", ErrBadRequest)
	}
	if _, err := s.repo.Get(ctx, clubID, txID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, clubID, txID)
}
