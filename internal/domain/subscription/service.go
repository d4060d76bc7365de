package subscription

import (
	"context"
	"fmt"
	"log"
	"time"

	"cricmates/backend/internal/domain/club"
	"cricmates/backend/internal/platform"
)

// ClubStore is the slice of the club repository the lifecycle needs.
type ClubStore interface {
	Get(ctx context.Context, clubID string) (*club.Club, error)
	SetSubscriptionStatus(ctx context.Context, clubID, status string) error
	ActivateSubscription(ctx context.Context, clubID string, expiresAt time.Time, setupFeePaid bool) error
}

// OrderStore persists immutable payment orders.
type OrderStore interface {
	Insert(ctx context.Context, o Order) (*Order, error)
	ListByClub(ctx context.Context, clubID string) ([]Order, error)
	ListAll(ctx context.Context, limit int) ([]Order, error)
}

type Service struct {
	clubs   ClubStore
	orders  OrderStore
	pricing platform.Pricing

	now func() time.Time
}

func NewService(clubs ClubStore, orders OrderStore, pricing platform.Pricing) *Service {
	return &Service{
		clubs:   clubs,
		orders:  orders,
		pricing: pricing,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Reconcile corrects a trial/active club whose expiry has passed,
// persisting status=expired before mutating the in-memory record.
// Idempotent: an already-expired club or a nil expiry is left alone.
func (s *Service) Reconcile(ctx context.Context, c *club.Club) (bool, error) {
	if c == nil {
		return false, fmt.Errorf("%w: club is required", ErrBadRequest)
	}
	if c.SubscriptionStatus != club.StatusTrial && c.SubscriptionStatus != club.StatusActive {
		return false, nil
	}
	if c.SubscriptionExpiresAt == nil {
		return false, nil
	}
	if c.SubscriptionExpiresAt.After(s.now()) {
		return false, nil
	}

	if err := s.clubs.SetSubscriptionStatus(ctx, c.ID, club.StatusExpired); err != nil {
		return false, err
	}
	c.SubscriptionStatus = club.StatusExpired
	return true, nil
}

// Summarize computes the user-facing billing state. Active clubs yield
// nil: nothing is due.
func (s *Service) Summarize(c *club.Club) *Summary {
	switch c.SubscriptionStatus {
	case club.StatusTrial:
		days := 0
		if c.SubscriptionExpiresAt != nil {
			remaining := c.SubscriptionExpiresAt.Sub(s.now())
			days = int((remaining + 24*time.Hour - time.Nanosecond) / (24 * time.Hour))
			if days < 0 {
				days = 0
			}
		}
		return &Summary{Status: club.StatusTrial, DaysRemaining: days}

	case club.StatusExpired:
		// Setup vs renewal is driven solely by the setup-fee flag.
		sum := &Summary{Status: club.StatusExpired, YearlyFee: s.pricing.YearlyFee}
		if c.SetupFeePaid {
			sum.AmountDue = s.pricing.MonthlyFee
		} else {
			sum.AmountDue = s.pricing.SetupFee
			sum.NeedsSetup = true
		}
		return sum
	}
	return nil
}

// RecordPayment appends an immutable payment order, then activates the
// club for the plan period. The two writes are not atomic: a recorded
// order with no activation is possible and is surfaced as an error.
func (s *Service) RecordPayment(ctx context.Context, clubID string, in RecordPaymentInput) (*Order, error) {
	in.Trim()
	if clubID == "" {
		return nil, fmt.Errorf("%w: clubId is required", ErrBadRequest)
	}
	if !IsValidKind(in.Kind) {
		return nil, fmt.Errorf("%w: kind must be setup, monthly or yearly", ErrBadRequest)
	}
	method := in.Method
	if method == "" {
		method = MethodManual
	}

	if _, err := s.clubs.Get(ctx, clubID); err != nil {
		return nil, err
	}

	now := s.now()
	periodEnd := now.AddDate(0, 0, planDays(in.Kind))

	order := Order{
		ClubID:      clubID,
		Kind:        in.Kind,
		Method:      method,
		Amount:      s.amountFor(in.Kind),
		Status:      "paid",
		PeriodStart: now,
		PeriodEnd:   periodEnd,
		Notes:       in.Notes,
		PaidAt:      now,
		CreatedAt:   now,
	}

	inserted, err := s.orders.Insert(ctx, order)
	if err != nil {
		return nil, err
	}

	if err := s.clubs.ActivateSubscription(ctx, clubID, periodEnd, in.Kind == KindSetup); err != nil {
		log.Printf("payment order %s recorded but activation failed for club %s: %v", inserted.ID, clubID, err)
		return inserted, fmt.Errorf("payment recorded but activation failed: %w", err)
	}

	return inserted, nil
}

func (s *Service) ListOrders(ctx context.Context, clubID string) ([]Order, error) {
	if clubID == "" {
		return nil, fmt.Errorf("%w: clubId is required", ErrBadRequest)
	}
	return s.orders.ListByClub(ctx, clubID)
}

func (s *Service) ListAllOrders(ctx context.Context, limit int) ([]Order, error) {
	return s.orders.ListAll(ctx, limit)
}

func (s *Service) amountFor(kind string) int64 {
	switch kind {
	case KindSetup:
		return s.pricing.SetupFee
	case KindYearly:
		return s.pricing.YearlyFee
	default:
		return s.pricing.MonthlyFee
	}
}
