package club

import (
	"strings"
	"time"
)

// Subscription states. No other states exist.
const (
	StatusTrial   = "trial"
	StatusActive  = "active"
	StatusExpired = "expired"
)

// DefaultPrimaryColor is applied when a club has no brand color set.
const DefaultPrimaryColor = "#10b981"

type Club struct {
	ID             string `firestore:"id" json:"id"`
	Name           string `firestore:"name" json:"name"`
	NameLower      string `firestore:"nameLower" json:"-"`
	ShortName      string `firestore:"shortName" json:"shortName"`
	ShortNameLower string `firestore:"shortNameLower" json:"-"`

	LogoURL      string `firestore:"logoUrl,omitempty" json:"logoUrl,omitempty"`
	PrimaryColor string `firestore:"primaryColor" json:"primaryColor"`

	Phone        string `firestore:"phone,omitempty" json:"phone,omitempty"`
	Email        string `firestore:"email,omitempty" json:"email,omitempty"`
	InstagramURL string `firestore:"instagramUrl,omitempty" json:"instagramUrl,omitempty"`
	Location     string `firestore:"location,omitempty" json:"location,omitempty"`
	FoundedYear  int    `firestore:"foundedYear,omitempty" json:"foundedYear,omitempty"`
	Season       string `firestore:"season,omitempty" json:"season,omitempty"`

	TeamAName string `firestore:"teamAName,omitempty" json:"teamAName,omitempty"`
	TeamBName string `firestore:"teamBName,omitempty" json:"teamBName,omitempty"`

	AdminPasswordHash string `firestore:"adminPasswordHash,omitempty" json:"-"`
	PaymentLink       string `firestore:"paymentLink,omitempty" json:"paymentLink,omitempty"`

	SubscriptionStatus    string     `firestore:"subscriptionStatus" json:"subscriptionStatus"`
	SubscriptionExpiresAt *time.Time `firestore:"subscriptionExpiresAt" json:"subscriptionExpiresAt"`
	SetupFeePaid          bool       `firestore:"setupFeePaid" json:"setupFeePaid"`

	AboutStory   string `firestore:"aboutStory,omitempty" json:"aboutStory,omitempty"`
	AboutMission string `firestore:"aboutMission,omitempty" json:"aboutMission,omitempty"`

	CreatedAt time.Time `firestore:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `firestore:"updatedAt" json:"updatedAt"`
}

type CreateClubInput struct {
	Name          string `json:"name"`
	ShortName     string `json:"shortName,omitempty"`
	PrimaryColor  string `json:"primaryColor,omitempty"`
	Phone         string `json:"phone,omitempty"`
	Email         string `json:"email,omitempty"`
	Location      string `json:"location,omitempty"`
	AdminPassword string `json:"adminPassword,omitempty"`
}

func (in *CreateClubInput) Trim() {
	in.Name = strings.TrimSpace(in.Name)
	in.ShortName = strings.TrimSpace(in.ShortName)
	in.PrimaryColor = strings.TrimSpace(in.PrimaryColor)
	in.Phone = strings.TrimSpace(in.Phone)
	in.Email = strings.TrimSpace(in.Email)
	in.Location = strings.TrimSpace(in.Location)
}

type UpdateClubInput struct {
	Name         *string `json:"name,omitempty"`
	PrimaryColor *string `json:"primaryColor,omitempty"`
	LogoURL      *string `json:"logoUrl,omitempty"`
	Phone        *string `json:"phone,omitempty"`
	Email        *string `json:"email,omitempty"`
	InstagramURL *string `json:"instagramUrl,omitempty"`
	Location     *string `json:"location,omitempty"`
	FoundedYear  *int    `json:"foundedYear,omitempty"`
	Season       *string `json:"season,omitempty"`
	TeamAName    *string `json:"teamAName,omitempty"`
	TeamBName    *string `json:"teamBName,omitempty"`
	AboutStory   *string `json:"aboutStory,omitempty"`
	AboutMission *string `json:"aboutMission,omitempty"`
	PaymentLink  *string `json:"paymentLink,omitempty"`
}
