package club

import (
	"context"
	"fmt"
	"strings"
	"time"

	"cricmates/backend/internal/platform"
	"cricmates/backend/internal/utils"

	"golang.org/x/crypto/bcrypt"
)

// Service covers the operator-facing club surface: creation, profile
// edits, and the per-club admin password check.
type Service struct {
	repo    *Repo
	pricing platform.Pricing
}

func NewService(repo *Repo, pricing platform.Pricing) *Service {
	return &Service{repo: repo, pricing: pricing}
}

// Create registers a new tenant club. New clubs start on trial with the
// configured trial window.
func (s *Service) Create(ctx context.Context, in CreateClubInput) (*Club, error) {
	in.Trim()
	if in.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrBadRequest)
	}

	shortName := in.ShortName
	if shortName == "" {
		shortName = utils.Slugify(in.Name)
	} else {
		shortName = utils.Slugify(shortName)
	}
	if shortName == "" {
		return nil, fmt.Errorf("%w: could not derive a short name from %q", ErrBadRequest, in.Name)
	}

	if existing, err := s.repo.GetByShortName(ctx, shortName); err == nil && existing != nil {
		return nil, fmt.Errorf("%w: %q", ErrShortNameTaken, shortName)
	} else if err != nil && !IsErrNotFound(err) {
		return nil, err
	}

	color := in.PrimaryColor
	if color == "" {
		color = DefaultPrimaryColor
	}

	var passwordHash string
	if in.AdminPassword != "" {
		h, err := bcrypt.GenerateFromPassword([]byte(in.AdminPassword), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash admin password: %w", err)
		}
		passwordHash = string(h)
	}

	now := time.Now().UTC()
	trialEnd := now.AddDate(0, 0, s.pricing.TrialDays)

	c := Club{
		Name:                  in.Name,
		NameLower:             utils.NormalizeNameLower(in.Name),
		ShortName:             shortName,
		ShortNameLower:        strings.ToLower(shortName),
		PrimaryColor:          color,
		Phone:                 in.Phone,
		Email:                 in.Email,
		Location:              in.Location,
		TeamAName:             "Team A",
		TeamBName:             "Team B",
		AdminPasswordHash:     passwordHash,
		SubscriptionStatus:    StatusTrial,
		SubscriptionExpiresAt: &trialEnd,
		CreatedAt:             now,
		UpdatedAt:             now,
	}
	return s.repo.Create(ctx, c)
}

func (s *Service) Get(ctx context.Context, clubID string) (*Club, error) {
	if clubID == "" {
		return nil, fmt.Errorf("%w: clubId is required", ErrBadRequest)
	}
	return s.repo.Get(ctx, clubID)
}

func (s *Service) List(ctx context.Context, limit int) ([]Club, error) {
	return s.repo.List(ctx, limit)
}

func (s *Service) Update(ctx context.Context, clubID string, in UpdateClubInput) (*Club, error) {
	if clubID == "" {
		return nil, fmt.Errorf("%w: clubId is required", ErrBadRequest)
	}

	updates := map[string]interface{}{}
	setStr := func(key string, v *string) {
		if v != nil {
			updates[key] = strings.TrimSpace(*v)
		}
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name cannot be empty", ErrBadRequest)
		}
		updates["name"] = name
		updates["nameLower"] = utils.NormalizeNameLower(name)
	}
	setStr("primaryColor", in.PrimaryColor)
	setStr("logoUrl", in.LogoURL)
	setStr("phone", in.Phone)
	setStr("email", in.Email)
	setStr("instagramUrl", in.InstagramURL)
	setStr("location", in.Location)
	setStr("season", in.Season)
	setStr("teamAName", in.TeamAName)
	setStr("teamBName", in.TeamBName)
	setStr("aboutStory", in.AboutStory)
	setStr("aboutMission", in.AboutMission)
	setStr("paymentLink", in.PaymentLink)
	if in.FoundedYear != nil {
		updates["foundedYear"] = *in.FoundedYear
	}

	return s.repo.Update(ctx, clubID, updates)
}

// VerifyAdminPassword checks a club admin login attempt against the
// stored bcrypt hash.
func (s *Service) VerifyAdminPassword(ctx context.Context, clubID, password string) error {
	c, err := s.repo.Get(ctx, clubID)
	if err != nil {
		return err
	}
	if c.AdminPasswordHash == "" {
		return fmt.Errorf("%w: club has no admin password set", ErrUnauthorized)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(c.AdminPasswordHash), []byte(password)); err != nil {
		return fmt.Errorf("%w: wrong password", ErrUnauthorized)
	}
	return nil
}

// SetAdminPassword replaces the club's admin password hash.
func (s *Service) SetAdminPassword(ctx context.Context, clubID, password string) error {
	if len(password) < 6 {
		return fmt.Errorf("%w: password must be at least 6 characters", ErrBadRequest)
	}
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}
	_, err = s.repo.Update(ctx, clubID, map[string]interface{}{"adminPasswordHash": string(h)})
	return err
}
