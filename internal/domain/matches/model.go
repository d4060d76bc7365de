package matches

import (
	"strings"
	"time"
)

const (
	ResultWon       = "won"
	ResultLost      = "lost"
	ResultDraw      = "draw"
	ResultUpcoming  = "upcoming"
	ResultCancelled = "cancelled"
)

const (
	TypeExternal = "external"
	TypeInternal = "internal"
)

const (
	TeamA = "team_a"
	TeamB = "team_b"
)

func IsValidResult(r string) bool {
	switch r {
	case ResultWon, ResultLost, ResultDraw, ResultUpcoming, ResultCancelled:
		return true
	}
	return false
}

func IsValidType(t string) bool {
	return t == TypeExternal || t == TypeInternal
}

// MatchPlayer is embedded in the match document. Team is set only for
// internal matches.
type MatchPlayer struct {
	MemberID string `firestore:"memberId" json:"memberId"`
	Team     string `firestore:"team,omitempty" json:"team,omitempty"`
	FeePaid  bool   `firestore:"feePaid" json:"feePaid"`
}

type Match struct {
	ID                string        `firestore:"-" json:"id"`
	ClubID            string        `firestore:"clubId" json:"clubId"`
	Date              time.Time     `firestore:"date" json:"date"`
	Venue             string        `firestore:"venue" json:"venue"`
	Opponent          string        `firestore:"opponent,omitempty" json:"opponent,omitempty"`
	Result            string        `firestore:"result" json:"result"`
	OurScore          string        `firestore:"ourScore,omitempty" json:"ourScore,omitempty"`
	OpponentScore     string        `firestore:"opponentScore,omitempty" json:"opponentScore,omitempty"`
	MatchFee          int64         `firestore:"matchFee" json:"matchFee"`
	GroundCost        int64         `firestore:"groundCost" json:"groundCost"`
	OtherExpenses     int64         `firestore:"otherExpenses" json:"otherExpenses"`
	DeductFromBalance bool          `firestore:"deductFromBalance" json:"deductFromBalance"`
	Notes             string        `firestore:"notes,omitempty" json:"notes,omitempty"`
	ManOfMatchID      string        `firestore:"manOfMatchId,omitempty" json:"manOfMatchId,omitempty"`
	MatchType         string        `firestore:"matchType" json:"matchType"`
	WinningTeam       string        `firestore:"winningTeam,omitempty" json:"winningTeam,omitempty"`
	TournamentID      string        `firestore:"tournamentId,omitempty" json:"tournamentId,omitempty"`
	Players           []MatchPlayer `firestore:"players" json:"players"`
	CreatedAt         time.Time     `firestore:"createdAt" json:"createdAt"`
	UpdatedAt         time.Time     `firestore:"updatedAt" json:"updatedAt"`
}

// PlayerIDs returns the member ids of every attached player.
func (m *Match) PlayerIDs() []string {
	ids := make([]string, 0, len(m.Players))
	for _, p := range m.Players {
		ids = append(ids, p.MemberID)
	}
	return ids
}

type CreateMatchInput struct {
	Date              string            `json:"date,omitempty"`
	Venue             string            `json:"venue"`
	Opponent          string            `json:"opponent,omitempty"`
	Result            string            `json:"result,omitempty"`
	MatchFee          int64             `json:"matchFee,omitempty"`
	GroundCost        int64             `json:"groundCost,omitempty"`
	OtherExpenses     int64             `json:"otherExpenses,omitempty"`
	DeductFromBalance bool              `json:"deductFromBalance,omitempty"`
	Notes             string            `json:"notes,omitempty"`
	MatchType         string            `json:"matchType,omitempty"`
	TournamentID      string            `json:"tournamentId,omitempty"`
	PlayerIDs         []string          `json:"playerIds,omitempty"`
	PlayerTeams       map[string]string `json:"playerTeams,omitempty"`
}

func (in *CreateMatchInput) Trim() {
	in.Date = strings.TrimSpace(in.Date)
	in.Venue = strings.TrimSpace(in.Venue)
	in.Opponent = strings.TrimSpace(in.Opponent)
	in.Result = strings.TrimSpace(in.Result)
	in.Notes = strings.TrimSpace(in.Notes)
	in.MatchType = strings.TrimSpace(in.MatchType)
	in.TournamentID = strings.TrimSpace(in.TournamentID)
}

type UpdateMatchInput struct {
	Date          *string  `json:"date,omitempty"`
	Venue         *string  `json:"venue,omitempty"`
	Opponent      *string  `json:"opponent,omitempty"`
	Notes         *string  `json:"notes,omitempty"`
	ManOfMatchID  *string  `json:"manOfMatchId,omitempty"`
	WinningTeam   *string  `json:"winningTeam,omitempty"`
	TournamentID  *string  `json:"tournamentId,omitempty"`
	GroundCost    *int64   `json:"groundCost,omitempty"`
	OtherExpenses *int64   `json:"otherExpenses,omitempty"`
	PlayerIDs     []string `json:"playerIds,omitempty"`
}

type ResultInput struct {
	Result        string `json:"result"`
	OurScore      string `json:"ourScore,omitempty"`
	OpponentScore string `json:"opponentScore,omitempty"`
	WinningTeam   string `json:"winningTeam,omitempty"`
	ManOfMatchID  string `json:"manOfMatchId,omitempty"`
}

// Photo is a match gallery entry. The image lives in blob storage; the
// document carries the public URL.
type Photo struct {
	ID        string    `firestore:"-" json:"id"`
	ClubID    string    `firestore:"clubId" json:"clubId"`
	MatchID   string    `firestore:"matchId" json:"matchId"`
	PhotoURL  string    `firestore:"photoUrl" json:"photoUrl"`
	Caption   string    `firestore:"caption,omitempty" json:"caption,omitempty"`
	CreatedAt time.Time `firestore:"createdAt" json:"createdAt"`
}
