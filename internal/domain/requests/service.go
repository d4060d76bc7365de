package requests

import (
	"context"
	"fmt"
	"time"

	"cricmates/backend/internal/domain/members"
	"cricmates/backend/internal/utils"
)

// MemberCreator turns an approved request into a member.
type MemberCreator interface {
	Create(ctx context.Context, clubID string, in members.CreateMemberInput) (*members.Member, error)
}

type Service struct {
	repo    *Repo
	members MemberCreator
}

func NewService(repo *Repo, members MemberCreator) *Service {
	return &Service{repo: repo, members: members}
}

// Submit records a public join request. Callers are unauthenticated,
// so input is trimmed and bounded here.
func (s *Service) Submit(ctx context.Context, clubID string, in SubmitRequestInput) (*Request, error) {
	in.Trim()
	if clubID == "" {
		return nil, fmt.Errorf("%w: clubId is required", ErrBadRequest)
	}
	if in.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrBadRequest)
	}

	return s.repo.Create(ctx, clubID, Request{
		Name:       utils.TrimMax(in.Name, 120),
		Phone:      utils.TrimMax(in.Phone, 30),
		Email:      utils.TrimMax(in.Email, 200),
		Experience: utils.TrimMax(in.Experience, 500),
		Message:    utils.TrimMax(in.Message, 1000),
		Status:     StatusPending,
		CreatedAt:  time.Now().UTC(),
	})
}

func (s *Service) List(ctx context.Context, clubID, status string) ([]Request, error) {
	if clubID == "" {
		return nil, fmt.Errorf("%w: clubId is required", ErrBadRequest)
	}
	if status != "" && status != StatusPending && status != StatusApproved && status != StatusRejected {
		return nil, fmt.Errorf("%w: invalid status %q", ErrBadRequest, status)
	}
	return s.repo.List(ctx, clubID, status)
}

// Approve creates a member from the request and marks it approved.
// Only pending requests can be approved.
func (s *Service) Approve(ctx context.Context, clubID, requestID string) (*members.Member, error) {
	req, err := s.pending(ctx, clubID, requestID)
	if err != nil {
		return nil, err
	}

	m, err := s.members.Create(ctx, clubID, members.CreateMemberInput{
		Name:  req.Name,
		Phone: req.Phone,
		Email: req.Email,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create member from request: %w", err)
	}

	if err := s.repo.SetStatus(ctx, clubID, requestID, StatusApproved); err != nil {
		// The member exists but the request still shows pending; a
		// second approval would duplicate the member. Surface it.
		return m, fmt.Errorf("member created but request not marked approved: %w", err)
	}
	return m, nil
}

// Reject marks a pending request rejected.
func (s *Service) Reject(ctx context.Context, clubID, requestID string) error {
	if _, err := s.pending(ctx, clubID, requestID); err != nil {
		return err
	}
	return s.repo.SetStatus(ctx, clubID, requestID, StatusRejected)
}

func (s *Service) Delete(ctx context.Context, clubID, requestID string) error {
	if clubID == "" || requestID == "" {
		return fmt.Errorf("%w: clubId and requestId are required", ErrBadRequest)
	}
	if _, err := s.repo.Get(ctx, clubID, requestID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, clubID, requestID)
}

func (s *Service) pending(ctx context.Context, clubID, requestID string) (*Request, error) {
	if clubID == "" || requestID == "" {
		return nil, fmt.Errorf("%w: clubId and requestId are required", ErrBadRequest)
	}
	req, err := s.repo.Get(ctx, clubID, requestID)
	if err != nil {
		return nil, err
	}
	if req.Status != StatusPending {
		return nil, fmt.Errorf("%w: status is %s", ErrResolved, req.Status)
	}
	return req, nil
}
