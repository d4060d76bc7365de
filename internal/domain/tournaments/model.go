package tournaments

import (
	"strings"
	"time"
)

const (
	StatusUpcoming  = "upcoming"
	StatusOngoing   = "ongoing"
	StatusCompleted = "completed"
)

const (
	ResultWinner       = "winner"
	ResultRunnerUp     = "runner_up"
	ResultSemiFinalist = "semi_finalist"
	ResultQuarterFinal = "quarter_finalist"
	ResultGroupStage   = "group_stage"
	ResultParticipated = "participated"
)

const (
	StageGroup        = "group"
	StageQuarterFinal = "quarter_final"
	StageSemiFinal    = "semi_final"
	StageFinal        = "final"
	StageLeague       = "league"
)

var formats = map[string]bool{
	"T20": true, "ODI": true, "T10": true, "Tennis Ball": true, "Other": true,
}

func IsValidFormat(f string) bool { return formats[f] }

func IsValidStatus(s string) bool {
	return s == StatusUpcoming || s == StatusOngoing || s == StatusCompleted
}

func IsValidResult(r string) bool {
	switch r {
	case ResultWinner, ResultRunnerUp, ResultSemiFinalist, ResultQuarterFinal,
		ResultGroupStage, ResultParticipated:
		return true
	}
	return false
}

func IsValidStage(s string) bool {
	switch s {
	case StageGroup, StageQuarterFinal, StageSemiFinal, StageFinal, StageLeague:
		return true
	}
	return false
}

type Tournament struct {
	ID         string     `firestore:"-" json:"id"`
	ClubID     string     `firestore:"clubId" json:"clubId"`
	Name       string     `firestore:"name" json:"name"`
	StartDate  time.Time  `firestore:"startDate" json:"startDate"`
	EndDate    *time.Time `firestore:"endDate,omitempty" json:"endDate,omitempty"`
	Venue      string     `firestore:"venue" json:"venue"`
	Format     string     `firestore:"format" json:"format"`
	Status     string     `firestore:"status" json:"status"`
	TotalTeams int        `firestore:"totalTeams,omitempty" json:"totalTeams,omitempty"`
	EntryFee   int64      `firestore:"entryFee" json:"entryFee"`
	PrizeMoney int64      `firestore:"prizeMoney,omitempty" json:"prizeMoney,omitempty"`
	Position   string     `firestore:"position,omitempty" json:"position,omitempty"`
	Result     string     `firestore:"result,omitempty" json:"result,omitempty"`
	Notes      string     `firestore:"notes,omitempty" json:"notes,omitempty"`
	// Stages maps a linked match id to its tournament stage.
	Stages    map[string]string `firestore:"stages,omitempty" json:"stages,omitempty"`
	CreatedAt time.Time         `firestore:"createdAt" json:"createdAt"`
	UpdatedAt time.Time         `firestore:"updatedAt" json:"updatedAt"`
}

type CreateTournamentInput struct {
	Name       string `json:"name"`
	StartDate  string `json:"startDate,omitempty"`
	EndDate    string `json:"endDate,omitempty"`
	Venue      string `json:"venue"`
	Format     string `json:"format,omitempty"`
	Status     string `json:"status,omitempty"`
	TotalTeams int    `json:"totalTeams,omitempty"`
	EntryFee   int64  `json:"entryFee,omitempty"`
	PrizeMoney int64  `json:"prizeMoney,omitempty"`
	Notes      string `json:"notes,omitempty"`
}

func (in *CreateTournamentInput) Trim() {
	in.Name = strings.TrimSpace(in.Name)
	in.StartDate = strings.TrimSpace(in.StartDate)
	in.EndDate = strings.TrimSpace(in.EndDate)
	in.Venue = strings.TrimSpace(in.Venue)
	in.Format = strings.TrimSpace(in.Format)
	in.Status = strings.TrimSpace(in.Status)
	in.Notes = strings.TrimSpace(in.Notes)
}

type UpdateTournamentInput struct {
	Name       *string `json:"name,omitempty"`
	StartDate  *string `json:"startDate,omitempty"`
	EndDate    *string `json:"endDate,omitempty"`
	Venue      *string `json:"venue,omitempty"`
	Format     *string `json:"format,omitempty"`
	Status     *string `json:"status,omitempty"`
	TotalTeams *int    `json:"totalTeams,omitempty"`
	EntryFee   *int64  `json:"entryFee,omitempty"`
	PrizeMoney *int64  `json:"prizeMoney,omitempty"`
	Position   *string `json:"position,omitempty"`
	Result     *string `json:"result,omitempty"`
	Notes      *string `json:"notes,omitempty"`
}
