package transactions

import (
	"strings"
	"time"
)

// Transaction types. Deposits and refunds are stored with positive
// amounts, match fees and expenses with negative ones. The aggregator
// sums amounts as-is.
const (
	TypeDeposit  = "deposit"
	TypeMatchFee = "match_fee"
	TypeExpense  = "expense"
	TypeRefund   = "refund"
)

func IsValidType(t string) bool {
	switch t {
	case TypeDeposit, TypeMatchFee, TypeExpense, TypeRefund:
		return true
	}
	return false
}

type Transaction struct {
	ID          string    `firestore:"-" json:"id"`
	ClubID      string    `firestore:"clubId" json:"clubId"`
	Date        time.Time `firestore:"date" json:"date"`
	Type        string    `firestore:"type" json:"type"`
	Amount      int64     `firestore:"amount" json:"amount"`
	MemberID    string    `firestore:"memberId,omitempty" json:"memberId,omitempty"`
	MatchID     string    `firestore:"matchId,omitempty" json:"matchId,omitempty"`
	Description string    `firestore:"description,omitempty" json:"description,omitempty"`
	CreatedAt   time.Time `firestore:"createdAt" json:"createdAt"`
}

type AddTransactionInput struct {
	Date        string `json:"date,omitempty"`
	Type        string `json:"type"`
	Amount      int64  `json:"amount"`
	MemberID    string `json:"memberId,omitempty"`
	MatchID     string `json:"matchId,omitempty"`
	Description string `json:"description,omitempty"`
}

func (in *AddTransactionInput) Trim() {
	in.Date = strings.TrimSpace(in.Date)
	in.Type = strings.TrimSpace(in.Type)
	in.MemberID = strings.TrimSpace(in.MemberID)
	in.MatchID = strings.TrimSpace(in.MatchID)
	in.Description = strings.TrimSpace(in.Description)
}

type ListTransactionsInput struct {
	MemberID string
	Type     string
	Limit    int
}
