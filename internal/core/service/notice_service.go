package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/esociety/society-api/internal/core/domain"
	"github.com/esociety/society-api/internal/core/ports"
)

type NoticeService struct {
	notices ports.NoticeRepository
	now     func() time.Time
	log     zerolog.Logger
}

func NewNoticeService(notices ports.NoticeRepository, log zerolog.Logger) *NoticeService {
	return &NoticeService{notices: notices, now: time.Now, log: log}
}

func (s *NoticeService) Post(ctx context.Context, in ports.PostNoticeInput) (*domain.Notice, error) {
	verr := domain.NewValidationError()
	if strings.TrimSpace(in.Title) == "" {
		verr.Add("title", "this field is required")
	}
	if strings.TrimSpace(in.Content) == "" {
		verr.Add("content", "this field is required")
	}
	priority := domain.NoticeMedium
	if in.Priority != "" {
		priority = domain.NoticePriority(strings.ToUpper(in.Priority))
		if !priority.Valid() {
			verr.Add("priority", "select a valid priority")
		}
	}
	now := s.now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if in.ExpiryDate != nil && in.ExpiryDate.Before(today) {
		verr.Add("expiry_date", "must not be in the past")
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	notice := &domain.Notice{
		ID:         uuid.NewString(),
		Title:      strings.TrimSpace(in.Title),
		Content:    strings.TrimSpace(in.Content),
		Priority:   priority,
		PostedBy:   in.PostedBy,
		PostedDate: now,
		ExpiryDate: in.ExpiryDate,
		Image:      in.Image,
		IsActive:   true,
	}
	if err := s.notices.Create(ctx, notice); err != nil {
		return nil, fmt.Errorf("post notice: %w", err)
	}

	s.log.Info().Str("notice_id", notice.ID).Str("priority", string(priority)).Msg("notice posted")
	return notice, nil
}

// ListCurrent returns active notices that have not expired.
func (s *NoticeService) ListCurrent(ctx context.Context) ([]*domain.Notice, error) {
	notices, err := s.notices.List(ctx, true)
	if err != nil {
		return nil, err
	}
	now := s.now()
	current := make([]*domain.Notice, 0, len(notices))
	for _, n := range notices {
		if n.Current(now) {
			current = append(current, n)
		}
	}
	return current, nil
}

func (s *NoticeService) ListAll(ctx context.Context) ([]*domain.Notice, error) {
	return s.notices.List(ctx, false)
}

func (s *NoticeService) Deactivate(ctx context.Context, id string) error {
	if err := s.notices.SetActive(ctx, id, false); err != nil {
		return err
	}
	s.log.Info().Str("notice_id", id).Msg("notice deactivated")
	return nil
}
