package matches

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateValidation(t *testing.T) {
	// Validation runs before any store access.
	s := NewService(nil, nil, nil, nil)
	ctx := context.Background()

	tests := []struct {
		name string
		club string
		in   CreateMatchInput
	}{
		{"missing club", "", CreateMatchInput{Venue: "City Ground"}},
		{"missing venue", "club-1", CreateMatchInput{}},
		{"bad type", "club-1", CreateMatchInput{Venue: "City Ground", MatchType: "friendly"}},
		{"bad result", "club-1", CreateMatchInput{Venue: "City Ground", Result: "tied"}},
		{"negative fee", "club-1", CreateMatchInput{Venue: "City Ground", MatchFee: -100}},
		{"deduct without fee", "club-1", CreateMatchInput{Venue: "City Ground", DeductFromBalance: true}},
		{"bad team", "club-1", CreateMatchInput{
			Venue:       "City Ground",
			MatchType:   TypeInternal,
			PlayerIDs:   []string{"m1"},
			PlayerTeams: map[string]string{"m1": "team_c"},
		}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := s.Create(ctx, tc.club, tc.in)
			require.Error(t, err)
			assert.True(t, IsErrBadRequest(err))
		})
	}
}

func TestUpdateResultValidation(t *testing.T) {
	s := NewService(nil, nil, nil, nil)
	ctx := context.Background()

	_, err := s.UpdateResult(ctx, "club-1", "match-1", ResultInput{Result: "tied"})
	require.Error(t, err)
	assert.True(t, IsErrBadRequest(err))

	_, err = s.UpdateResult(ctx, "", "match-1", ResultInput{Result: ResultWon})
	require.Error(t, err)
	assert.True(t, IsErrBadRequest(err))
}

func TestPlayerIDs(t *testing.T) {
	m := Match{Players: []MatchPlayer{
		{MemberID: "m1", Team: TeamA},
		{MemberID: "m2", Team: TeamB},
		{MemberID: "m3"},
	}}
	assert.Equal(t, []string{"m1", "m2", "m3"}, m.PlayerIDs())

	empty := Match{}
	assert.Empty(t, empty.PlayerIDs())
}

func TestObjectPathFromURL(t *testing.T) {
	assert.Equal(t,
		"match-photos/club-1/match-1-abc.jpg",
		objectPathFromURL("https://storage.googleapis.com/my-bucket/match-photos/club-1/match-1-abc.jpg"))
	assert.Equal(t, "", objectPathFromURL("https://example.com/foo.jpg"))
	assert.Equal(t, "", objectPathFromURL("https://storage.googleapis.com/bucketonly"))
}
