package requests

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitValidation(t *testing.T) {
	s := NewService(nil, nil)
	ctx := context.Background()

	_, err := s.Submit(ctx, "", SubmitRequestInput{Name: "Ravi"})
	require.Error(t, err)
	assert.True(t, IsErrBadRequest(err))

	_, err = s.Submit(ctx, "club-1", SubmitRequestInput{Name: "   "})
	require.Error(t, err)
	assert.True(t, IsErrBadRequest(err))
}

func TestListValidation(t *testing.T) {
	s := NewService(nil, nil)
	ctx := context.Background()

	_, err := s.List(ctx, "club-1", "archived")
	require.Error(t, err)
	assert.True(t, IsErrBadRequest(err))

	_, err = s.List(ctx, "", "")
	require.Error(t, err)
	assert.True(t, IsErrBadRequest(err))
}

func TestSubmitInputTrim(t *testing.T) {
	in := SubmitRequestInput{
		Name:       "  Ravi Kumar ",
		Phone:      " 9876543210 ",
		Email:      " ravi@example.com ",
		Experience: " 5 years club cricket ",
		Message:    " keen to join ",
	}
	in.Trim()
	assert.Equal(t, "Ravi Kumar", in.Name)
	assert.Equal(t, "9876543210", in.Phone)
	assert.Equal(t, "ravi@example.com", in.Email)
	assert.Equal(t, "5 years club cricket", in.Experience)
	assert.Equal(t, "keen to join", in.Message)
}
