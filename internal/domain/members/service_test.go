package members

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateValidation(t *testing.T) {
	// Validation runs before any store access.
	s := NewService(nil, nil, nil)
	ctx := context.Background()

	tests := []struct {
		name string
		club string
		in   CreateMemberInput
	}{
		{"missing club", "", CreateMemberInput{Name: "Asif Khan"}},
		{"missing name", "club-1", CreateMemberInput{}},
		{"whitespace name", "club-1", CreateMemberInput{Name: "   "}},
		{"bad status", "club-1", CreateMemberInput{Name: "Asif Khan", Status: "retired"}},
		{"bad join date", "club-1", CreateMemberInput{Name: "Asif Khan", JoinDate: "yesterday"}},
		{"bad birthday", "club-1", CreateMemberInput{Name: "Asif Khan", Birthday: "01/13/1990"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := s.Create(ctx, tc.club, tc.in)
			require.Error(t, err)
			assert.True(t, IsErrBadRequest(err))
		})
	}
}

func TestFundsValidation(t *testing.T) {
	s := NewService(nil, nil, nil)
	ctx := context.Background()

	_, err := s.AddFunds(ctx, "", "member-1", FundsInput{Amount: 500})
	require.Error(t, err)
	assert.True(t, IsErrBadRequest(err))

	_, err = s.AddFunds(ctx, "club-1", "member-1", FundsInput{Amount: 0})
	require.Error(t, err)
	assert.True(t, IsErrBadRequest(err))

	_, err = s.DeductFunds(ctx, "club-1", "member-1", FundsInput{Amount: -200})
	require.Error(t, err)
	assert.True(t, IsErrBadRequest(err))
}

func TestObjectPathFromURL(t *testing.T) {
	assert.Equal(t, "avatars/club-1/member-1-abc.png",
		objectPathFromURL("https://storage.googleapis.com/my-bucket/avatars/club-1/member-1-abc.png"))
	assert.Equal(t, "", objectPathFromURL("https://example.com/whatever.png"))
	assert.Equal(t, "", objectPathFromURL(""))
}
