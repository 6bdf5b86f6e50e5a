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

var ErrNotFound = errors.New("not found")

type WhisperService interface {
	Create(ctx context.Context, content, topic string, isSensitive bool) (*model.Whisper, error)
	Get(ctx context.Context, id uint64) (*model.Whisper, error)
	// List returns live whispers newest first. topic may be empty or "all"
	// for no filter; a value outside the enumeration matches nothing.
	List(ctx context.Context, topic string) ([]model.Whisper, error)
}

type whisperService struct {
	repo repository.WhisperRepository
}

func NewWhisperService(repo repository.WhisperRepository) WhisperService {
	return &whisperService{repo: repo}
}

func topicChoices() []interface{} {
	ts := model.Topics()
	out := make([]interface{}, len(ts))
	for i, t := range ts {
		out[i] = t.String()
	}
	return out
}

func (s *whisperService) Create(ctx context.Context, content, topic string, isSensitive bool) (*model.Whisper, error) {
	content = strings.TrimSpace(content)
	topic = strings.TrimSpace(topic)
	if topic == "" {
		topic = model.TopicRandom.String()
	}

	err := validation.Errors{
		"content": validation.Validate(content, validation.Required),
		"topic":   validation.Validate(topic, validation.In(topicChoices()...)),
	}.Filter()
	if err != nil {
		return nil, err
	}

	w := &model.Whisper{
		Content:     content,
		Topic:       model.Topic(topic),
		IsSensitive: isSensitive,
	}
	if err := s.repo.Create(ctx, w); err != nil {
		return nil, err
	}
	return w, nil
}

func (s *whisperService) Get(ctx context.Context, id uint64) (*model.Whisper, error) {
	w, err := s.repo.FindLiveByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return w, nil
}

func (s *whisperService) List(ctx context.Context, topic string) ([]model.Whisper, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" || topic == model.TopicAll {
		return s.repo.ListLive(ctx, "")
	}
	t := model.Topic(topic)
	if !t.Valid() {
		// Unknown topics match nothing rather than erroring, so the
		// enumeration is not probeable through the filter.
		return []model.Whisper{}, nil
	}
	return s.repo.ListLive(ctx, t)
}
