package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/whisperwall/backend/internal/config"
	"github.com/whisperwall/backend/internal/db"
	"github.com/whisperwall/backend/internal/model"
	"github.com/whisperwall/backend/internal/repository"
)

// Seeds a handful of whispers and replies for local development.
func main() {
	_ = godotenv.Load()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("config load failed", "error", err)
		os.Exit(1)
	}
	conn, err := db.Connect(cfg)
	if err != nil {
		logger.Error("db connect failed", "error", err)
		os.Exit(1)
	}
	if err := conn.AutoMigrate(&model.Whisper{}, &model.Reply{}); err != nil {
		logger.Error("auto migrate failed", "error", err)
		os.Exit(1)
	}

	whispers := repository.NewWhisperRepository(conn)
	replies := repository.NewReplyRepository(conn)

	samples := []model.Whisper{
		{Content: "I still talk to my plants when nobody is home", Topic: model.TopicConfession},
		{Content: "Quit my job today, no plan, feels great", Topic: model.TopicLife},
		{Content: "How do I tell my roommate their cooking is terrible?", Topic: model.TopicAdvice},
		{Content: "Met someone on a train six years ago. Still think about them.", Topic: model.TopicLove, IsSensitive: true},
		{Content: "The office plant is plastic and I water it anyway", Topic: model.TopicRandom},
	}

	ctx := context.Background()
	for i := range samples {
		if err := whispers.Create(ctx, &samples[i]); err != nil {
			logger.Error("seed whisper failed", "error", err)
			os.Exit(1)
		}
	}

	firstReplies := []string{
		"honestly same",
		"they appreciate it, trust me",
	}
	for _, content := range firstReplies {
		r := model.Reply{WhisperID: samples[0].ID, Content: content}
		if err := replies.Create(ctx, &r); err != nil {
			logger.Error("seed reply failed", "error", err)
			os.Exit(1)
		}
	}

	logger.Info("seeded", "whispers", len(samples), "replies", len(firstReplies))
}
