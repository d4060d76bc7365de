package tournaments

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateValidation(t *testing.T) {
	s := NewService(nil, nil)
	ctx := context.Background()

	tests := []struct {
		name string
		club string
		in   CreateTournamentInput
	}{
		{"missing club", "", CreateTournamentInput{Name: "Monsoon Cup", Venue: "City Ground"}},
		{"missing name", "club-1", CreateTournamentInput{Venue: "City Ground"}},
		{"missing venue", "club-1", CreateTournamentInput{Name: "Monsoon Cup"}},
		{"bad format", "club-1", CreateTournamentInput{Name: "Monsoon Cup", Venue: "City Ground", Format: "T15"}},
		{"bad status", "club-1", CreateTournamentInput{Name: "Monsoon Cup", Venue: "City Ground", Status: "done"}},
		{"negative fee", "club-1", CreateTournamentInput{Name: "Monsoon Cup", Venue: "City Ground", EntryFee: -1}},
		{"end before start", "club-1", CreateTournamentInput{
			Name: "Monsoon Cup", Venue: "City Ground",
			StartDate: "2026-08-10", EndDate: "2026-08-01",
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

func TestStageAndResultValidators(t *testing.T) {
	assert.True(t, IsValidStage(StageFinal))
	assert.False(t, IsValidStage("playoff"))

	assert.True(t, IsValidResult(ResultRunnerUp))
	assert.False(t, IsValidResult("champion"))

	assert.True(t, IsValidFormat("Tennis Ball"))
	assert.False(t, IsValidFormat("t20"))
}
