package matches

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"cricmates/backend/internal/domain/transactions"
	"cricmates/backend/internal/utils"

	"github.com/google/uuid"
)

// Number of most recent matches whose photos are retained by cleanup.
const photoRetainMatches = 5

// MemberWriter applies match side effects to member documents.
type MemberWriter interface {
	RecordAppearance(ctx context.Context, clubID, memberID string, feeDeduction int64) error
}

// TxWriter records the match-fee ledger rows.
type TxWriter interface {
	Insert(ctx context.Context, clubID string, t transactions.Transaction) (*transactions.Transaction, error)
}

// BlobStore is the storage collaborator used for match photos.
type BlobStore interface {
	Upload(ctx context.Context, objectPath string, data []byte, contentType string, overwrite bool) (string, error)
	Delete(ctx context.Context, objectPath string) error
}

type Service struct {
	repo    *Repo
	members MemberWriter
	txs     TxWriter
	blobs   BlobStore
}

func NewService(repo *Repo, members MemberWriter, txs TxWriter, blobs BlobStore) *Service {
	return &Service{repo: repo, members: members, txs: txs, blobs: blobs}
}

// Create records a match and applies per-player side effects: each
// attached player's matchesPlayed is incremented, and when the match
// deducts fees from balances, each player is debited and a match_fee
// transaction appended. Side-effect failures after the match document
// exists are logged and skipped, not rolled back.
func (s *Service) Create(ctx context.Context, clubID string, in CreateMatchInput) (*Match, error) {
	in.Trim()
	if clubID == "" {
		return nil, fmt.Errorf("%w: clubId is required", ErrBadRequest)
	}
	if in.Venue == "" {
		return nil, fmt.Errorf("%w: venue is required", ErrBadRequest)
	}

	matchType := in.MatchType
	if matchType == "" {
		matchType = TypeExternal
	}
	if !IsValidType(matchType) {
		return nil, fmt.Errorf("%w: matchType must be external or internal", ErrBadRequest)
	}
	result := in.Result
	if result == "" {
		result = ResultUpcoming
	}
	if !IsValidResult(result) {
		return nil, fmt.Errorf("%w: invalid result %q", ErrBadRequest, result)
	}
	if in.MatchFee < 0 || in.GroundCost < 0 || in.OtherExpenses < 0 {
		return nil, fmt.Errorf("%w: fees and costs cannot be negative", ErrBadRequest)
	}
	if in.DeductFromBalance && in.MatchFee == 0 {
		return nil, fmt.Errorf("%w: matchFee is required when deducting from balance", ErrBadRequest)
	}

	date, err := utils.ParseDate(in.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid date", ErrBadRequest)
	}

	players := make([]MatchPlayer, 0, len(in.PlayerIDs))
	for _, memberID := range in.PlayerIDs {
		p := MatchPlayer{MemberID: memberID, FeePaid: in.DeductFromBalance}
		if matchType == TypeInternal {
			team := in.PlayerTeams[memberID]
			if team != "" && team != TeamA && team != TeamB {
				return nil, fmt.Errorf("%w: invalid team %q for player %s", ErrBadRequest, team, memberID)
			}
			p.Team = team
		}
		players = append(players, p)
	}

	now := time.Now().UTC()
	m := Match{
		Date:              date,
		Venue:             in.Venue,
		Opponent:          in.Opponent,
		Result:            result,
		MatchFee:          in.MatchFee,
		GroundCost:        in.GroundCost,
		OtherExpenses:     in.OtherExpenses,
		DeductFromBalance: in.DeductFromBalance,
		Notes:             utils.TrimMax(in.Notes, 1000),
		MatchType:         matchType,
		TournamentID:      in.TournamentID,
		Players:           players,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	created, err := s.repo.Create(ctx, clubID, m)
	if err != nil {
		return nil, err
	}

	feeLabel := "Match fee"
	if matchType == TypeInternal {
		feeLabel = "Internal match fee"
	}
	for _, p := range created.Players {
		var deduction int64
		if created.DeductFromBalance {
			deduction = created.MatchFee
		}
		if err := s.members.RecordAppearance(ctx, clubID, p.MemberID, deduction); err != nil {
			log.Printf("match %s: failed to record appearance for member %s: %v", created.ID, p.MemberID, err)
			continue
		}
		if created.DeductFromBalance {
			_, err := s.txs.Insert(ctx, clubID, transactions.Transaction{
				Date:        created.Date,
				Type:        transactions.TypeMatchFee,
				Amount:      -created.MatchFee,
				MemberID:    p.MemberID,
				MatchID:     created.ID,
				Description: fmt.Sprintf("%s - %s", feeLabel, created.Venue),
			})
			if err != nil {
				log.Printf("match %s: failed to record fee transaction for member %s: %v", created.ID, p.MemberID, err)
			}
		}
	}

	return created, nil
}

func (s *Service) Get(ctx context.Context, clubID, matchID string) (*Match, error) {
	if clubID == "" || matchID == "" {
		return nil, fmt.Errorf("%w: clubId and matchId are required", ErrBadRequest)
	}
	return s.repo.Get(ctx, clubID, matchID)
}

func (s *Service) List(ctx context.Context, clubID string) ([]Match, error) {
	if clubID == "" {
		return nil, fmt.Errorf("%w: clubId is required", ErrBadRequest)
	}
	return s.repo.List(ctx, clubID)
}

// Update edits match fields. Replacing the player list resets each
// entry with feePaid=false and triggers no appearance or fee side
// effects.
func (s *Service) Update(ctx context.Context, clubID, matchID string, in UpdateMatchInput) (*Match, error) {
	if clubID == "" || matchID == "" {
		return nil, fmt.Errorf("%w: clubId and matchId are required", ErrBadRequest)
	}
	if _, err := s.repo.Get(ctx, clubID, matchID); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if in.Date != nil {
		d, err := utils.ParseDate(*in.Date)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid date", ErrBadRequest)
		}
		updates["date"] = d
	}
	if in.Venue != nil {
		v := strings.TrimSpace(*in.Venue)
		if v == "" {
			return nil, fmt.Errorf("%w: venue cannot be empty", ErrBadRequest)
		}
		updates["venue"] = v
	}
	if in.Opponent != nil {
		updates["opponent"] = strings.TrimSpace(*in.Opponent)
	}
	if in.Notes != nil {
		updates["notes"] = utils.TrimMax(*in.Notes, 1000)
	}
	if in.ManOfMatchID != nil {
		updates["manOfMatchId"] = strings.TrimSpace(*in.ManOfMatchID)
	}
	if in.WinningTeam != nil {
		wt := strings.TrimSpace(*in.WinningTeam)
		if wt != "" && wt != TeamA && wt != TeamB {
			return nil, fmt.Errorf("%w: invalid winningTeam %q", ErrBadRequest, wt)
		}
		updates["winningTeam"] = wt
	}
	if in.TournamentID != nil {
		updates["tournamentId"] = strings.TrimSpace(*in.TournamentID)
	}
	if in.GroundCost != nil {
		if *in.GroundCost < 0 {
			return nil, fmt.Errorf("%w: groundCost cannot be negative", ErrBadRequest)
		}
		updates["groundCost"] = *in.GroundCost
	}
	if in.OtherExpenses != nil {
		if *in.OtherExpenses < 0 {
			return nil, fmt.Errorf("%w: otherExpenses cannot be negative", ErrBadRequest)
		}
		updates["otherExpenses"] = *in.OtherExpenses
	}
	if in.PlayerIDs != nil {
		players := make([]MatchPlayer, 0, len(in.PlayerIDs))
		for _, memberID := range in.PlayerIDs {
			players = append(players, MatchPlayer{MemberID: memberID})
		}
		updates["players"] = players
	}

	return s.repo.Update(ctx, clubID, matchID, updates)
}

// UpdateResult records the outcome of a match.
func (s *Service) UpdateResult(ctx context.Context, clubID, matchID string, in ResultInput) (*Match, error) {
	if clubID == "" || matchID == "" {
		return nil, fmt.Errorf("%w: clubId and matchId are required", ErrBadRequest)
	}
	if !IsValidResult(in.Result) {
		return nil, fmt.Errorf("%w: invalid result %q", ErrBadRequest, in.Result)
	}
	m, err := s.repo.Get(ctx, clubID, matchID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"result":        in.Result,
		"ourScore":      strings.TrimSpace(in.OurScore),
		"opponentScore": strings.TrimSpace(in.OpponentScore),
	}
	if in.WinningTeam != "" {
		if m.MatchType != TypeInternal {
			return nil, fmt.Errorf("%w: winningTeam only applies to internal matches", ErrBadRequest)
		}
		if in.WinningTeam != TeamA && in.WinningTeam != TeamB {
			return nil, fmt.Errorf("%w: invalid winningTeam %q", ErrBadRequest, in.WinningTeam)
		}
		updates["winningTeam"] = in.WinningTeam
	}
	if in.ManOfMatchID != "" {
		updates["manOfMatchId"] = strings.TrimSpace(in.ManOfMatchID)
	}

	return s.repo.Update(ctx, clubID, matchID, updates)
}

// Delete removes the match document only. Appearance counts, balances
// and fee transactions recorded at creation are left in place.
func (s *Service) Delete(ctx context.Context, clubID, matchID string) error {
	if clubID == "" || matchID == "" {
		return fmt.Errorf("%w: clubId and matchId are required", ErrBadRequest)
	}
	if _, err := s.repo.Get(ctx, clubID, matchID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, clubID, matchID)
}

// LinkTournament tags a match with the tournament it belongs to. An
// empty tournamentID clears the link.
func (s *Service) LinkTournament(ctx context.Context, clubID, matchID, tournamentID string) error {
	if clubID == "" || matchID == "" {
		return fmt.Errorf("%w: clubId and matchId are required", ErrBadRequest)
	}
	_, err := s.repo.Update(ctx, clubID, matchID, map[string]interface{}{
		"tournamentId": tournamentID,
	})
	return err
}

// UploadPhoto stores a gallery image for a match and records it.
func (s *Service) UploadPhoto(ctx context.Context, clubID, matchID string, data []byte, contentType, ext, caption string) (*Photo, error) {
	if _, err := s.Get(ctx, clubID, matchID); err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty file", ErrBadRequest)
	}

	objectPath := fmt.Sprintf("match-photos/%s/%s-%s%s", clubID, matchID, uuid.NewString(), ext)
	url, err := s.blobs.Upload(ctx, objectPath, data, contentType, false)
	if err != nil {
		return nil, err
	}

	return s.repo.InsertPhoto(ctx, clubID, Photo{
		MatchID:  matchID,
		PhotoURL: url,
		Caption:  utils.TrimMax(strings.TrimSpace(caption), 300),
	})
}

func (s *Service) ListPhotos(ctx context.Context, clubID, matchID string) ([]Photo, error) {
	if clubID == "" {
		return nil, fmt.Errorf("%w: clubId is required", ErrBadRequest)
	}
	return s.repo.ListPhotos(ctx, clubID, matchID)
}

func (s *Service) DeletePhoto(ctx context.Context, clubID, photoID string) error {
	if clubID == "" || photoID == "" {
		return fmt.Errorf("%w: clubId and photoId are required", ErrBadRequest)
	}
	p, err := s.repo.GetPhoto(ctx, clubID, photoID)
	if err != nil {
		return err
	}
	if obj := objectPathFromURL(p.PhotoURL); obj != "" {
		if err := s.blobs.Delete(ctx, obj); err != nil {
			log.Printf("failed to delete photo object %s: %v", obj, err)
		}
	}
	return s.repo.DeletePhoto(ctx, clubID, photoID)
}

// CleanupOldPhotos drops gallery entries for matches older than the
// most recent few, keeping storage bounded. Blob deletes are best
// effort.
func (s *Service) CleanupOldPhotos(ctx context.Context, clubID string) (int, error) {
	if clubID == "" {
		return 0, fmt.Errorf("%w: clubId is required", ErrBadRequest)
	}
	ms, err := s.repo.List(ctx, clubID)
	if err != nil {
		return 0, err
	}
	keep := map[string]bool{}
	for i, m := range ms {
		if i >= photoRetainMatches {
			break
		}
		keep[m.ID] = true
	}

	photos, err := s.repo.ListPhotos(ctx, clubID, "")
	if err != nil {
		return 0, err
	}
	removed := 0
	for _, p := range photos {
		if keep[p.MatchID] {
			continue
		}
		if obj := objectPathFromURL(p.PhotoURL); obj != "" {
			if err := s.blobs.Delete(ctx, obj); err != nil {
				log.Printf("failed to delete photo object %s: %v", obj, err)
			}
		}
		if err := s.repo.DeletePhoto(ctx, clubID, p.ID); err != nil {
			log.Printf("failed to delete photo %s: %v", p.ID, err)
			continue
		}
		removed++
	}
	return removed, nil
}

// objectPathFromURL recovers the bucket object path from a public URL
// of the form https://storage.googleapis.com/<bucket>/<path>.
func objectPathFromURL(url string) string {
	const marker = "storage.googleapis.com/"
	i := strings.Index(url, marker)
	if i < 0 {
		return ""
	}
	rest := url[i+len(marker):]
	slash := strings.Index(rest, "/")
	if slash < 0 {
		return ""
	}
	return rest[slash+1:]
}
