package model

import (
	"time"

	"gorm.io/gorm"
)

type Reply struct {
	ID        uint64         `gorm:"primaryKey;autoIncrement"`
	WhisperID uint64         `gorm:"column:whisper_id;not null;index"`
	Content   string         `gorm:"type:text;not null"`
	CreatedAt time.Time      `gorm:"autoCreateTime;index"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Reply) TableName() string {
	return "replies"
}
