package subscription

import (
	"strings"
	"time"
)

// Payment kinds. Setup is the one-time first-activation charge; monthly
// and yearly are renewals.
const (
	KindSetup   = "setup"
	KindMonthly = "monthly"
	KindYearly  = "yearly"
)

// Payment methods.
const (
	MethodManual = "manual"
	MethodOnline = "online"
)

// Plan durations granted per payment kind.
const (
	monthlyDays = 30
	yearlyDays  = 365
)

func IsValidKind(kind string) bool {
	switch kind {
	case KindSetup, KindMonthly, KindYearly:
		return true
	}
	return false
}

// Order is the immutable record of a billing event.
type Order struct {
	ID          string    `firestore:"-" json:"id"`
	ClubID      string    `firestore:"clubId" json:"clubId"`
	Kind        string    `firestore:"kind" json:"kind"`
	Method      string    `firestore:"method" json:"method"`
	Amount      int64     `firestore:"amount" json:"amount"`
	Status      string    `firestore:"status" json:"status"`
	PeriodStart time.Time `firestore:"periodStart" json:"periodStart"`
	PeriodEnd   time.Time `firestore:"periodEnd" json:"periodEnd"`
	Notes       string    `firestore:"notes,omitempty" json:"notes,omitempty"`
	PaidAt      time.Time `firestore:"paidAt" json:"paidAt"`
	CreatedAt   time.Time `firestore:"createdAt" json:"createdAt"`
}

// Summary is the user-facing billing state for a club. Active clubs get
// no summary: nothing is due.
type Summary struct {
	Status        string `json:"status"`
	DaysRemaining int    `json:"daysRemaining,omitempty"`
	AmountDue     int64  `json:"amountDue,omitempty"`
	NeedsSetup    bool   `json:"needsSetup"`
	YearlyFee     int64  `json:"yearlyFee,omitempty"`
}

type RecordPaymentInput struct {
	Kind   string `json:"kind"`
	Method string `json:"method,omitempty"`
	Notes  string `json:"notes,omitempty"`
}

func (in *RecordPaymentInput) Trim() {
	in.Kind = strings.TrimSpace(in.Kind)
	in.Method = strings.TrimSpace(in.Method)
	in.Notes = strings.TrimSpace(in.Notes)
}

func planDays(kind string) int {
	if kind == KindYearly {
		return yearlyDays
	}
	return monthlyDays
}
