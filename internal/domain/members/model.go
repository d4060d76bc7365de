package members

import (
	"strings"
	"time"
)

// Manually-set membership status. Distinct from the computed activity
// flag in the stats package, which is participation-based.
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

type Member struct {
	ID            string     `firestore:"id" json:"id"`
	ClubID        string     `firestore:"clubId" json:"clubId"`
	Name          string     `firestore:"name" json:"name"`
	Phone         string     `firestore:"phone,omitempty" json:"phone,omitempty"`
	Email         string     `firestore:"email,omitempty" json:"email,omitempty"`
	JoinDate      time.Time  `firestore:"joinDate" json:"joinDate"`
	Birthday      *time.Time `firestore:"birthday,omitempty" json:"birthday,omitempty"`
	Status        string     `firestore:"status" json:"status"`
	Balance       int64      `firestore:"balance" json:"balance"`
	MatchesPlayed int        `firestore:"matchesPlayed" json:"matchesPlayed"`
	AvatarURL     string     `firestore:"avatarUrl,omitempty" json:"avatarUrl,omitempty"`
	CreatedAt     time.Time  `firestore:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time  `firestore:"updatedAt" json:"updatedAt"`
}

type CreateMemberInput struct {
	Name     string `json:"name"`
	Phone    string `json:"phone,omitempty"`
	Email    string `json:"email,omitempty"`
	JoinDate string `json:"joinDate,omitempty"`
	Birthday string `json:"birthday,omitempty"`
	Status   string `json:"status,omitempty"`
	// Balance seeds the opening balance; thereafter the balance moves
	// only through recorded transactions.
	Balance int64 `json:"balance,omitempty"`
}

func (in *CreateMemberInput) Trim() {
	in.Name = strings.TrimSpace(in.Name)
	in.Phone = strings.TrimSpace(in.Phone)
	in.Email = strings.TrimSpace(in.Email)
	in.JoinDate = strings.TrimSpace(in.JoinDate)
	in.Birthday = strings.TrimSpace(in.Birthday)
	in.Status = strings.TrimSpace(in.Status)
}

type UpdateMemberInput struct {
	Name     *string `json:"name,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	Email    *string `json:"email,omitempty"`
	Birthday *string `json:"birthday,omitempty"`
	Status   *string `json:"status,omitempty"`
}

type FundsInput struct {
	Amount      int64  `json:"amount"`
	Description string `json:"description,omitempty"`
	Date        string `json:"date,omitempty"`
	MatchID     string `json:"matchId,omitempty"`
}
