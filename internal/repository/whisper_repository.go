package repository

import (
	"context"
	"errors"
	"time"

	"github.com/whisperwall/backend/internal/model"
	"gorm.io/gorm"
)

var ErrDBNotReady = errors.New("database not initialized")

// repliesCountExpr annotates whisper rows with the number of live replies.
const repliesCountExpr = "whispers.*, (SELECT COUNT(*) FROM replies WHERE replies.whisper_id = whispers.id AND replies.deleted_at IS NULL) AS replies_count"

type WhisperRepository interface {
	Create(ctx context.Context, w *model.Whisper) error
	// FindLiveByID returns the live whisper or gorm.ErrRecordNotFound.
	// Soft-deleted rows are treated as absent.
	FindLiveByID(ctx context.Context, id uint64) (*model.Whisper, error)
	// ListLive returns live whispers newest first, annotated with
	// replies_count. An empty topic means no filter.
	ListLive(ctx context.Context, topic model.Topic) ([]model.Whisper, error)
	// SoftDeleteExpired marks every live whisper created strictly before
	// cutoff as deleted in one bulk statement and reports how many rows
	// changed. Already-deleted rows are untouched, so repeated calls are
	// idempotent.
	SoftDeleteExpired(ctx context.Context, cutoff time.Time) (int64, error)
	SetDB(db *gorm.DB)
}

type whisperRepository struct {
	db *gorm.DB
}

func NewWhisperRepository(db *gorm.DB) WhisperRepository {
	return &whisperRepository{db: db}
}

func (r *whisperRepository) Create(ctx context.Context, w *model.Whisper) error {
	if r.db == nil {
		return ErrDBNotReady
	}
	return r.db.WithContext(ctx).Create(w).Error
}

func (r *whisperRepository) FindLiveByID(ctx context.Context, id uint64) (*model.Whisper, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	var w model.Whisper
	if err := r.db.WithContext(ctx).
		Select(repliesCountExpr).
		First(&w, id).Error; err != nil {
		return nil, err
	}
	return &w, nil
}

func (r *whisperRepository) ListLive(ctx context.Context, topic model.Topic) ([]model.Whisper, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	q := r.db.WithContext(ctx).
		Select(repliesCountExpr).
		Order("created_at DESC")
	if topic != "" {
		q = q.Where("topic = ?", topic)
	}
	var list []model.Whisper
	if err := q.Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *whisperRepository) SoftDeleteExpired(ctx context.Context, cutoff time.Time) (int64, error) {
	if r.db == nil {
		return 0, ErrDBNotReady
	}
	// gorm's soft delete turns this into a single
	// UPDATE ... SET deleted_at = now WHERE created_at < cutoff AND deleted_at IS NULL.
	tx := r.db.WithContext(ctx).
		Where("created_at < ?", cutoff).
		Delete(&model.Whisper{})
	if tx.Error != nil {
		return 0, tx.Error
	}
	return tx.RowsAffected, nil
}

func (r *whisperRepository) SetDB(db *gorm.DB) {
	r.db = db
}
