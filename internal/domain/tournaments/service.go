package tournaments

import (
	"context"
	"fmt"
	"strings"
	"time"

	"cricmates/backend/internal/utils"
)

// MatchLinker verifies a match exists before it is staged, and tags it
// with the tournament it belongs to.
type MatchLinker interface {
	LinkTournament(ctx context.Context, clubID, matchID, tournamentID string) error
}

type Service struct {
	repo  *Repo
	links MatchLinker
}

func NewService(repo *Repo, links MatchLinker) *Service {
	return &Service{repo: repo, links: links}
}

func (s *Service) Create(ctx context.Context, clubID string, in CreateTournamentInput) (*Tournament, error) {
	in.Trim()
	if clubID == "" {
		return nil, fmt.Errorf("%w: clubId is required", ErrBadRequest)
	}
	if in.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrBadRequest)
	}
	if in.Venue == "" {
		return nil, fmt.Errorf("%w: venue is required", ErrBadRequest)
	}

	format := in.Format
	if format == "" {
		format = "T20"
	}
	if !IsValidFormat(format) {
		return nil, fmt.Errorf("%w: invalid format %q", ErrBadRequest, format)
	}
	status := in.Status
	if status == "" {
		status = StatusUpcoming
	}
	if !IsValidStatus(status) {
		return nil, fmt.Errorf("%w: invalid status %q", ErrBadRequest, status)
	}
	if in.EntryFee < 0 || in.PrizeMoney < 0 || in.TotalTeams < 0 {
		return nil, fmt.Errorf("%w: fees, prize money and team count cannot be negative", ErrBadRequest)
	}

	startDate, err := utils.ParseDate(in.StartDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid startDate", ErrBadRequest)
	}
	var endDate *time.Time
	if in.EndDate != "" {
		e, err := utils.ParseDate(in.EndDate)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid endDate", ErrBadRequest)
		}
		if e.Before(startDate) {
			return nil, fmt.Errorf("%w: endDate before startDate", ErrBadRequest)
		}
		endDate = &e
	}

	now := time.Now().UTC()
	return s.repo.Create(ctx, clubID, Tournament{
		Name:       in.Name,
		StartDate:  startDate,
		EndDate:    endDate,
		Venue:      in.Venue,
		Format:     format,
		Status:     status,
		TotalTeams: in.TotalTeams,
		EntryFee:   in.EntryFee,
		PrizeMoney: in.PrizeMoney,
		Notes:      utils.TrimMax(in.Notes, 1000),
		CreatedAt:  now,
		UpdatedAt:  now,
	})
}

func (s *Service) Get(ctx context.Context, clubID, tournamentID string) (*Tournament, error) {
	if clubID == "" || tournamentID == "" {
		return nil, fmt.Errorf("%w: clubId and tournamentId are required", ErrBadRequest)
	}
	return s.repo.Get(ctx, clubID, tournamentID)
}

func (s *Service) List(ctx context.Context, clubID string) ([]Tournament, error) {
	if clubID == "" {
		return nil, fmt.Errorf("%w: clubId is required", ErrBadRequest)
	}
	return s.repo.List(ctx, clubID)
}

func (s *Service) Update(ctx context.Context, clubID, tournamentID string, in UpdateTournamentInput) (*Tournament, error) {
	if clubID == "" || tournamentID == "" {
		return nil, fmt.Errorf("%w: clubId and tournamentId are required", ErrBadRequest)
	}
	if _, err := s.repo.Get(ctx, clubID, tournamentID); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if in.Name != nil {
		n := strings.TrimSpace(*in.Name)
		if n == "" {
			return nil, fmt.Errorf("%w: name cannot be empty", ErrBadRequest)
		}
		updates["name"] = n
	}
	if in.StartDate != nil {
		d, err := utils.ParseDate(*in.StartDate)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid startDate", ErrBadRequest)
		}
		updates["startDate"] = d
	}
	if in.EndDate != nil {
		if *in.EndDate == "" {
			updates["endDate"] = nil
		} else {
			d, err := utils.ParseDate(*in.EndDate)
			if err != nil {
				return nil, fmt.Errorf("%w: invalid endDate", ErrBadRequest)
			}
			updates["endDate"] = d
		}
	}
	if in.Venue != nil {
		v := strings.TrimSpace(*in.Venue)
		if v == "" {
			return nil, fmt.Errorf("%w: venue cannot be empty", ErrBadRequest)
		}
		updates["venue"] = v
	}
	if in.Format != nil {
		if !IsValidFormat(*in.Format) {
			return nil, fmt.Errorf("%w: invalid format %q", ErrBadRequest, *in.Format)
		}
		updates["format"] = *in.Format
	}
	if in.Status != nil {
		if !IsValidStatus(*in.Status) {
			return nil, fmt.Errorf("%w: invalid status %q", ErrBadRequest, *in.Status)
		}
		updates["status"] = *in.Status
	}
	if in.TotalTeams != nil {
		if *in.TotalTeams < 0 {
			return nil, fmt.Errorf("%w: totalTeams cannot be negative", ErrBadRequest)
		}
		updates["totalTeams"] = *in.TotalTeams
	}
	if in.EntryFee != nil {
		if *in.EntryFee < 0 {
			return nil, fmt.Errorf("%w: entryFee cannot be negative", ErrBadRequest)
		}
		updates["entryFee"] = *in.EntryFee
	}
	if in.PrizeMoney != nil {
		if *in.PrizeMoney < 0 {
			return nil, fmt.Errorf("%w: prizeMoney cannot be negative", ErrBadRequest)
		}
		updates["prizeMoney"] = *in.PrizeMoney
	}
	if in.Position != nil {
		updates["position"] = strings.TrimSpace(*in.Position)
	}
	if in.Result != nil {
		if *in.Result != "" && !IsValidResult(*in.Result) {
			return nil, fmt.Errorf("%w: invalid result %q", ErrBadRequest, *in.Result)
		}
		updates["result"] = *in.Result
	}
	if in.Notes != nil {
		updates["notes"] = utils.TrimMax(*in.Notes, 1000)
	}

	return s.repo.Update(ctx, clubID, tournamentID, updates)
}

func (s *Service) Delete(ctx context.Context, clubID, tournamentID string) error {
	if clubID == "" || tournamentID == "" {
		return fmt.Errorf("%w: clubId and tournamentId are required", ErrBadRequest)
	}
	if _, err := s.repo.Get(ctx, clubID, tournamentID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, clubID, tournamentID)
}

// LinkMatch stages a match under the tournament and tags the match
// document with the tournament id.
func (s *Service) LinkMatch(ctx context.Context, clubID, tournamentID, matchID, stage string) error {
	if clubID == "" || tournamentID == "" || matchID == "" {
		return fmt.Errorf("%w: clubId, tournamentId and matchId are required", ErrBadRequest)
	}
	if !IsValidStage(stage) {
		return fmt.Errorf("%w: invalid stage %q", ErrBadRequest, stage)
	}
	if _, err := s.repo.Get(ctx, clubID, tournamentID); err != nil {
		return err
	}
	if err := s.links.LinkTournament(ctx, clubID, matchID, tournamentID); err != nil {
		return err
	}
	return s.repo.SetStage(ctx, clubID, tournamentID, matchID, stage)
}

// UnlinkMatch removes a staged match from the tournament.
func (s *Service) UnlinkMatch(ctx context.Context, clubID, tournamentID, matchID string) error {
	if clubID == "" || tournamentID == "" || matchID == "" {
		return fmt.Errorf("%w: clubId, tournamentId and matchId are required", ErrBadRequest)
	}
	if _, err := s.repo.Get(ctx, clubID, tournamentID); err != nil {
		return err
	}
	if err := s.links.LinkTournament(ctx, clubID, matchID, ""); err != nil {
		return err
	}
	return s.repo.RemoveStage(ctx, clubID, tournamentID, matchID)
}
