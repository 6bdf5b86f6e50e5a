package repository

import (
	"context"

	"github.com/whisperwall/backend/internal/model"
	"gorm.io/gorm"
)

type ReplyRepository interface {
	Create(ctx context.Context, reply *model.Reply) error
	// ListLiveByWhisper returns live replies oldest first. Replies are
	// filtered through their parent: an expired or unknown whisper yields
	// an empty list, never the orphaned rows.
	ListLiveByWhisper(ctx context.Context, whisperID uint64) ([]model.Reply, error)
	SetDB(db *gorm.DB)
}

type replyRepository struct {
	db *gorm.DB
}

func NewReplyRepository(db *gorm.DB) ReplyRepository {
	return &replyRepository{db: db}
}

func (r *replyRepository) Create(ctx context.Context, reply *model.Reply) error {
	if r.db == nil {
		return ErrDBNotReady
	}
	return r.db.WithContext(ctx).Create(reply).Error
}

func (r *replyRepository) ListLiveByWhisper(ctx context.Context, whisperID uint64) ([]model.Reply, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	var list []model.Reply
	if err := r.db.WithContext(ctx).
		Joins("JOIN whispers ON whispers.id = replies.whisper_id AND whispers.deleted_at IS NULL").
		Where("replies.whisper_id = ?", whisperID).
		Order("replies.created_at ASC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *replyRepository) SetDB(db *gorm.DB) {
	r.db = db
}
