package service

import (
	"context"
	"errors"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/whisperwall/backend/internal/model"
	"github.com/whisperwall/backend/internal/repository"
	"gorm.io/gorm"
)

type ReplyService interface {
	// Create attaches a reply to a live whisper. Returns ErrNotFound when
	// the whisper does not exist or has been soft-deleted.
	Create(ctx context.Context, whisperID uint64, content string) (*model.Reply, error)
	List(ctx context.Context, whisperID uint64) ([]model.Reply, error)
}

type replyService struct {
	replies  repository.ReplyRepository
	whispers repository.WhisperRepository
}

func NewReplyService(replies repository.ReplyRepository, whispers repository.WhisperRepository) ReplyService {
	return &replyService{replies: replies, whispers: whispers}
}

func (s *replyService) Create(ctx context.Context, whisperID uint64, content string) (*model.Reply, error) {
	content = strings.TrimSpace(content)

	err := validation.Errors{
		"content": validation.Validate(content, validation.Required),
	}.Filter()
	if err != nil {
		return nil, err
	}

	// Fail before the insert so a dead parent never gains rows.
	if _, err := s.whispers.FindLiveByID(ctx, whisperID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	reply := &model.Reply{
		WhisperID: whisperID,
		Content:   content,
	}
	if err := s.replies.Create(ctx, reply); err != nil {
		return nil, err
	}
	return reply, nil
}

func (s *replyService) List(ctx context.Context, whisperID uint64) ([]model.Reply, error) {
	return s.replies.ListLiveByWhisper(ctx, whisperID)
}
