package members

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

// TxWriter records the transaction row that mirrors every balance move.
type TxWriter interface {
	Insert(ctx context.Context, clubID string, t transactions.Transaction) (*transactions.Transaction, error)
}

// BlobStore is the storage collaborator used for avatars.
type BlobStore interface {
	Upload(ctx context.Context, objectPath string, data []byte, contentType string, overwrite bool) (string, error)
	Delete(ctx context.Context, objectPath string) error
}

type Service struct {
	repo  *Repo
	txs   TxWriter
	blobs BlobStore
}

func NewService(repo *Repo, txs TxWriter, blobs BlobStore) *Service {
	return &Service{repo: repo, txs: txs, blobs: blobs}
}

func (s *Service) Create(ctx context.Context, clubID string, in CreateMemberInput) (*Member, error) {
	in.Trim()
	if clubID == "" {
		return nil, fmt.Errorf("%w: clubId is required", ErrBadRequest)
	}
	if in.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrBadRequest)
	}

	joinDate, err := utils.ParseDate(in.JoinDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid joinDate", ErrBadRequest)
	}
	var birthday *time.Time
	if in.Birthday != "" {
		b, err := utils.ParseDate(in.Birthday)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid birthday", ErrBadRequest)
		}
		birthday = &b
	}

	status := in.Status
	if status == "" {
		status = StatusActive
	}
	if status != StatusActive && status != StatusInactive {
		return nil, fmt.Errorf("%w: status must be active or inactive", ErrBadRequest)
	}

	now := time.Now().UTC()
	m := Member{
		Name:          in.Name,
		Phone:         in.Phone,
		Email:         in.Email,
		JoinDate:      joinDate,
		Birthday:      birthday,
		Status:        status,
		Balance:       in.Balance,
		MatchesPlayed: 0,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	return s.repo.Create(ctx, clubID, m)
}

func (s *Service) Get(ctx context.Context, clubID, memberID string) (*Member, error) {
	if clubID == "" || memberID == "" {
		return nil, fmt.Errorf("%w: clubId and memberId are required", ErrBadRequest)
	}
	return s.repo.Get(ctx, clubID, memberID)
}

func (s *Service) List(ctx context.Context, clubID string) ([]Member, error) {
	if clubID == "" {
		return nil, fmt.Errorf("%w: clubId is required", ErrBadRequest)
	}
	return s.repo.List(ctx, clubID)
}

func (s *Service) Update(ctx context.Context, clubID, memberID string, in UpdateMemberInput) (*Member, error) {
	if clubID == "" || memberID == "" {
		return nil, fmt.Errorf("%w: clubId and memberId are required", ErrBadRequest)
	}

	updates := map[string]interface{}{}
	if in.Name != nil {
		if *in.Name == "" {
			return nil, fmt.Errorf("%w: name cannot be empty", ErrBadRequest)
		}
		updates["name"] = *in.Name
	}
	if in.Phone != nil {
		updates["phone"] = *in.Phone
	}
	if in.Email != nil {
		updates["email"] = *in.Email
	}
	if in.Birthday != nil {
		if *in.Birthday == "" {
			updates["birthday"] = nil
		} else {
			b, err := utils.ParseDate(*in.Birthday)
			if err != nil {
				return nil, fmt.Errorf("%w: invalid birthday", ErrBadRequest)
			}
			updates["birthday"] = b
		}
	}
	if in.Status != nil {
		if *in.Status != StatusActive && *in.Status != StatusInactive {
			return nil, fmt.Errorf("%w: status must be active or inactive", ErrBadRequest)
		}
		updates["status"] = *in.Status
	}

	return s.repo.Update(ctx, clubID, memberID, updates)
}

func (s *Service) Delete(ctx context.Context, clubID, memberID string) error {
	if clubID == "" || memberID == "" {
		return fmt.Errorf("%w: clubId and memberId are required", ErrBadRequest)
	}
	return s.repo.Delete(ctx, clubID, memberID)
}

// AddFunds credits a member's balance and records the deposit.
func (s *Service) AddFunds(ctx context.Context, clubID, memberID string, in FundsInput) (*Member, error) {
	return s.moveFunds(ctx, clubID, memberID, in, transactions.TypeDeposit)
}

// DeductFunds debits a member's balance and records the match fee.
func (s *Service) DeductFunds(ctx context.Context, clubID, memberID string, in FundsInput) (*Member, error) {
	return s.moveFunds(ctx, clubID, memberID, in, transactions.TypeMatchFee)
}

func (s *Service) moveFunds(ctx context.Context, clubID, memberID string, in FundsInput, txType string) (*Member, error) {
	if clubID == "" || memberID == "" {
		return nil, fmt.Errorf("%w: clubId and memberId are required", ErrBadRequest)
	}
	if in.Amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", ErrBadRequest)
	}
	if _, err := s.repo.Get(ctx, clubID, memberID); err != nil {
		return nil, err
	}

	date, err := utils.ParseDate(in.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid date", ErrBadRequest)
	}

	delta := in.Amount
	signed := in.Amount
	if txType == transactions.TypeMatchFee {
		delta = -in.Amount
		signed = -in.Amount
	}

	if err := s.repo.ApplyFunds(ctx, clubID, memberID, delta); err != nil {
		return nil, err
	}

	_, err = s.txs.Insert(ctx, clubID, transactions.Transaction{
		Date:        date,
		Type:        txType,
		Amount:      signed,
		MemberID:    memberID,
		MatchID:     in.MatchID,
		Description: utils.TrimMax(in.Description, 500),
	})
	if err != nil {
		// Balance already moved; the ledger row is missing. Surface it.
		return nil, fmt.Errorf("balance updated but transaction record failed: %w", err)
	}

	return s.repo.Get(ctx, clubID, memberID)
}

// UploadAvatar replaces a member's avatar: the old object is removed
// first, then the new one uploaded and linked. If the upload fails after
// the delete, the old asset is gone.
func (s *Service) UploadAvatar(ctx context.Context, clubID, memberID string, data []byte, contentType, ext string) (string, error) {
	m, err := s.Get(ctx, clubID, memberID)
	if err != nil {
		return "", err
	}
	if len(data) == 0 {
		return "", fmt.Errorf("%w: empty file", ErrBadRequest)
	}

	if m.AvatarURL != "" {
		if old := objectPathFromURL(m.AvatarURL); old != "" {
			if err := s.blobs.Delete(ctx, old); err != nil {
				log.Printf("failed to delete old avatar %s: %v", old, err)
			}
		}
	}

	objectPath := fmt.Sprintf("avatars/%s/%s-%s%s", clubID, memberID, uuid.NewString(), ext)
	url, err := s.blobs.Upload(ctx, objectPath, data, contentType, true)
	if err != nil {
		return "", err
	}

	if _, err := s.repo.Update(ctx, clubID, memberID, map[string]interface{}{"avatarUrl": url}); err != nil {
		return "", err
	}
	return url, nil
}

func (s *Service) RemoveAvatar(ctx context.Context, clubID, memberID string) error {
	m, err := s.Get(ctx, clubID, memberID)
	if err != nil {
		return err
	}
	if m.AvatarURL != "" {
		if old := objectPathFromURL(m.AvatarURL); old != "" {
			if err := s.blobs.Delete(ctx, old); err != nil {
				log.Printf("failed to delete avatar %s: %v", old, err)
			}
		}
	}
	_, err = s.repo.Update(ctx, clubID, memberID, map[string]interface{}{"avatarUrl": nil})
	return err
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
