package transactions

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddValidation(t *testing.T) {
	// Validation runs before any store access.
	s := NewService(nil)
	ctx := context.Background()

	tests := []struct {
		name string
		club string
		in   AddTransactionInput
	}{
		{"missing club", "", AddTransactionInput{Type: TypeDeposit, Amount: 500}},
		{"missing type", "club-1", AddTransactionInput{Amount: 500}},
		{"bad type", "club-1", AddTransactionInput{Type: "transfer", Amount: 500}},
		{"zero amount", "club-1", AddTransactionInput{Type: TypeDeposit}},
		{"bad date", "club-1", AddTransactionInput{Type: TypeDeposit, Amount: 500, Date: "last tuesday"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := s.Add(ctx, tc.club, tc.in)
			require.Error(t, err)
			assert.True(t, IsErrBadRequest(err))
		})
	}
}

func TestInsertValidation(t *testing.T) {
	s := NewService(nil)
	ctx := context.Background()

	_, err := s.Insert(ctx, "", Transaction{Type: TypeDeposit, Amount: 100})
	require.Error(t, err)
	assert.True(t, IsErrBadRequest(err))

	_, err = s.Insert(ctx, "club-1", Transaction{Type: "bonus", Amount: 100})
	require.Error(t, err)
	assert.True(t, IsErrBadRequest(err))
}

func TestIsValidType(t *testing.T) {
	for _, typ := range []string{TypeDeposit, TypeMatchFee, TypeExpense, TypeRefund} {
		assert.True(t, IsValidType(typ), typ)
	}
	assert.False(t, IsValidType(""))
	assert.False(t, IsValidType("transfer"))
}
