package requests

import (
	"strings"
	"time"
)

// Request statuses. Approved and rejected are terminal.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

type Request struct {
	ID         string    `firestore:"-" json:"id"`
	ClubID     string    `firestore:"clubId" json:"clubId"`
	Name       string    `firestore:"name" json:"name"`
	Phone      string    `firestore:"phone,omitempty" json:"phone,omitempty"`
	Email      string    `firestore:"email,omitempty" json:"email,omitempty"`
	Experience string    `firestore:"experience,omitempty" json:"experience,omitempty"`
	Message    string    `firestore:"message,omitempty" json:"message,omitempty"`
	Status     string    `firestore:"status" json:"status"`
	CreatedAt  time.Time `firestore:"createdAt" json:"createdAt"`
	ResolvedAt time.Time `firestore:"resolvedAt,omitempty" json:"resolvedAt,omitempty"`
}

type SubmitRequestInput struct {
	Name       string `json:"name"`
	Phone      string `json:"phone,omitempty"`
	Email      string `json:"email,omitempty"`
	Experience string `json:"experience,omitempty"`
	Message    string `json:"message,omitempty"`
}

func (in *SubmitRequestInput) Trim() {
	in.Name = strings.TrimSpace(in.Name)
	in.Phone = strings.TrimSpace(in.Phone)
	in.Email = strings.TrimSpace(in.Email)
	in.Experience = strings.TrimSpace(in.Experience)
	in.Message = strings.TrimSpace(in.Message)
}
