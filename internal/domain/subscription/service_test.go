package subscription

import (
	"context"
	"errors"
	"testing"
	"time"

	"cricmates/backend/internal/domain/club"
	"cricmates/backend/internal/platform"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClubStore struct {
	clubs       map[string]*club.Club
	statusCalls int
	activateErr error
}

func (f *fakeClubStore) Get(_ context.Context, clubID string) (*club.Club, error) {
	c, ok := f.clubs[clubID]
	if !ok {
		return nil, club.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (f *fakeClubStore) SetSubscriptionStatus(_ context.Context, clubID, status string) error {
	c, ok := f.clubs[clubID]
	if !ok {
		return club.ErrNotFound
	}
	f.statusCalls++
	c.SubscriptionStatus = status
	return nil
}

func (f *fakeClubStore) ActivateSubscription(_ context.Context, clubID string, expiresAt time.Time, setupFeePaid bool) error {
	if f.activateErr != nil {
		return f.activateErr
	}
	c, ok := f.clubs[clubID]
	if !ok {
		return club.ErrNotFound
	}
	c.SubscriptionStatus = club.StatusActive
	exp := expiresAt
	c.SubscriptionExpiresAt = &exp
	if setupFeePaid {
		c.SetupFeePaid = true
	}
	return nil
}

type fakeOrderStore struct {
	orders    []Order
	insertErr error
}

func (f *fakeOrderStore) Insert(_ context.Context, o Order) (*Order, error) {
	if f.insertErr != nil {
		return nil, f.insertErr
	}
	o.ID = "order-" + o.Kind
	f.orders = append(f.orders, o)
	return &o, nil
}

func (f *fakeOrderStore) ListByClub(_ context.Context, clubID string) ([]Order, error) {
	out := []Order{}
	for _, o := range f.orders {
		if o.ClubID == clubID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (f *fakeOrderStore) ListAll(_ context.Context, _ int) ([]Order, error) {
	return f.orders, nil
}

var testNow = time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

func newTestService(clubs *fakeClubStore, orders *fakeOrderStore) *Service {
	s := NewService(clubs, orders, platform.Defaults().Pricing)
	s.now = func() time.Time { return testNow }
	return s
}

func clubWith(status string, expiresAt *time.Time, setupPaid bool) *fakeClubStore {
	return &fakeClubStore{clubs: map[string]*club.Club{
		"club-1": {
			ID:                    "club-1",
			Name:                  "Pune Warriors",
			SubscriptionStatus:    status,
			SubscriptionExpiresAt: expiresAt,
			SetupFeePaid:          setupPaid,
		},
	}}
}

func TestReconcileExpiresStaleTrial(t *testing.T) {
	past := testNow.Add(-time.Hour)
	clubs := clubWith(club.StatusTrial, &past, false)
	svc := newTestService(clubs, &fakeOrderStore{})

	c, _ := clubs.Get(context.Background(), "club-1")
	mutated, err := svc.Reconcile(context.Background(), c)
	require.NoError(t, err)
	assert.True(t, mutated)
	assert.Equal(t, club.StatusExpired, c.SubscriptionStatus)
	assert.Equal(t, 1, clubs.statusCalls)

	// Second load: already expired, no further write.
	c2, _ := clubs.Get(context.Background(), "club-1")
	mutated, err = svc.Reconcile(context.Background(), c2)
	require.NoError(t, err)
	assert.False(t, mutated)
	assert.Equal(t, 1, clubs.statusCalls)
}

func TestReconcileExpiresStaleActive(t *testing.T) {
	past := testNow.Add(-24 * time.Hour)
	clubs := clubWith(club.StatusActive, &past, true)
	svc := newTestService(clubs, &fakeOrderStore{})

	c, _ := clubs.Get(context.Background(), "club-1")
	mutated, err := svc.Reconcile(context.Background(), c)
	require.NoError(t, err)
	assert.True(t, mutated)
	assert.Equal(t, club.StatusExpired, c.SubscriptionStatus)
}

func TestReconcileNilExpiryNeverTriggers(t *testing.T) {
	for _, status := range []string{club.StatusTrial, club.StatusActive} {
		clubs := clubWith(status, nil, false)
		svc := newTestService(clubs, &fakeOrderStore{})

		c, _ := clubs.Get(context.Background(), "club-1")
		mutated, err := svc.Reconcile(context.Background(), c)
		require.NoError(t, err)
		assert.False(t, mutated, "status %s with nil expiry must not expire", status)
		assert.Equal(t, 0, clubs.statusCalls)
	}
}

func TestReconcileFutureExpiryUntouched(t *testing.T) {
	future := testNow.Add(48 * time.Hour)
	clubs := clubWith(club.StatusTrial, &future, false)
	svc := newTestService(clubs, &fakeOrderStore{})

	c, _ := clubs.Get(context.Background(), "club-1")
	mutated, err := svc.Reconcile(context.Background(), c)
	require.NoError(t, err)
	assert.False(t, mutated)
	assert.Equal(t, club.StatusTrial, c.SubscriptionStatus)
}

func TestSummarizeTrialDaysRemaining(t *testing.T) {
	tests := []struct {
		name     string
		expires  time.Time
		wantDays int
	}{
		{"five and a half days", testNow.Add(5*24*time.Hour + 12*time.Hour), 6},
		{"exactly three days", testNow.Add(3 * 24 * time.Hour), 3},
		{"under a day", testNow.Add(6 * time.Hour), 1},
		{"already past", testNow.Add(-time.Hour), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exp := tt.expires
			svc := newTestService(clubWith(club.StatusTrial, &exp, false), &fakeOrderStore{})
			sum := svc.Summarize(&club.Club{
				SubscriptionStatus:    club.StatusTrial,
				SubscriptionExpiresAt: &exp,
			})
			require.NotNil(t, sum)
			assert.Equal(t, tt.wantDays, sum.DaysRemaining)
		})
	}
}

func TestSummarizeExpired(t *testing.T) {
	svc := newTestService(clubWith(club.StatusExpired, nil, false), &fakeOrderStore{})

	needsSetup := svc.Summarize(&club.Club{SubscriptionStatus: club.StatusExpired, SetupFeePaid: false})
	require.NotNil(t, needsSetup)
	assert.True(t, needsSetup.NeedsSetup)
	assert.Equal(t, int64(999), needsSetup.AmountDue)

	renewal := svc.Summarize(&club.Club{SubscriptionStatus: club.StatusExpired, SetupFeePaid: true})
	require.NotNil(t, renewal)
	assert.False(t, renewal.NeedsSetup)
	assert.Equal(t, int64(499), renewal.AmountDue)
	assert.Equal(t, int64(4999), renewal.YearlyFee)
}

func TestSummarizeActiveIsNil(t *testing.T) {
	svc := newTestService(clubWith(club.StatusActive, nil, true), &fakeOrderStore{})
	assert.Nil(t, svc.Summarize(&club.Club{SubscriptionStatus: club.StatusActive}))
}

func TestRecordPaymentSetupThenMonthly(t *testing.T) {
	clubs := clubWith(club.StatusExpired, nil, false)
	orders := &fakeOrderStore{}
	svc := newTestService(clubs, orders)

	order, err := svc.RecordPayment(context.Background(), "club-1", RecordPaymentInput{Kind: KindSetup, Notes: "paid in cash"})
	require.NoError(t, err)
	assert.Equal(t, int64(999), order.Amount)
	assert.Equal(t, MethodManual, order.Method)
	assert.Equal(t, testNow.AddDate(0, 0, 30), order.PeriodEnd)

	c := clubs.clubs["club-1"]
	assert.Equal(t, club.StatusActive, c.SubscriptionStatus)
	assert.True(t, c.SetupFeePaid)
	require.NotNil(t, c.SubscriptionExpiresAt)
	assert.Equal(t, testNow.AddDate(0, 0, 30), *c.SubscriptionExpiresAt)

	// Renewal later: expiry extends from the new now, setup flag stays.
	svc.now = func() time.Time { return testNow.AddDate(0, 0, 40) }
	order2, err := svc.RecordPayment(context.Background(), "club-1", RecordPaymentInput{Kind: KindMonthly})
	require.NoError(t, err)
	assert.Equal(t, int64(499), order2.Amount)
	assert.Equal(t, testNow.AddDate(0, 0, 70), *c.SubscriptionExpiresAt)
	assert.True(t, c.SetupFeePaid, "setup flag is permanent")
	assert.Len(t, orders.orders, 2)
}

func TestRecordPaymentYearly(t *testing.T) {
	clubs := clubWith(club.StatusExpired, nil, true)
	svc := newTestService(clubs, &fakeOrderStore{})

	order, err := svc.RecordPayment(context.Background(), "club-1", RecordPaymentInput{Kind: KindYearly})
	require.NoError(t, err)
	assert.Equal(t, int64(4999), order.Amount)
	assert.Equal(t, testNow.AddDate(0, 0, 365), order.PeriodEnd)
}

func TestRecordPaymentBadKind(t *testing.T) {
	svc := newTestService(clubWith(club.StatusExpired, nil, false), &fakeOrderStore{})
	_, err := svc.RecordPayment(context.Background(), "club-1", RecordPaymentInput{Kind: "weekly"})
	assert.ErrorIs(t, err, ErrBadRequest)
}

func TestRecordPaymentInsertFailureSkipsActivation(t *testing.T) {
	clubs := clubWith(club.StatusExpired, nil, false)
	orders := &fakeOrderStore{insertErr: errors.New("write failed")}
	svc := newTestService(clubs, orders)

	_, err := svc.RecordPayment(context.Background(), "club-1", RecordPaymentInput{Kind: KindSetup})
	require.Error(t, err)
	assert.Equal(t, club.StatusExpired, clubs.clubs["club-1"].SubscriptionStatus, "no activation without a recorded order")
}

func TestRecordPaymentActivationFailureSurfacesWithOrder(t *testing.T) {
	clubs := clubWith(club.StatusExpired, nil, false)
	clubs.activateErr = errors.New("update failed")
	orders := &fakeOrderStore{}
	svc := newTestService(clubs, orders)

	order, err := svc.RecordPayment(context.Background(), "club-1", RecordPaymentInput{Kind: KindSetup})
	require.Error(t, err)
	assert.NotNil(t, order, "the order was already recorded")
	assert.Len(t, orders.orders, 1)
}
