package server

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/whisperwall/backend/internal/handler"
	"github.com/whisperwall/backend/internal/repository"
	"github.com/whisperwall/backend/internal/service"
	"gorm.io/gorm"
)

type Server struct {
	e           *echo.Echo
	whisperRepo repository.WhisperRepository
	replyRepo   repository.ReplyRepository
}

// New wires the full handler stack. db may be nil at construction; repos
// return ErrDBNotReady until SetDB is called with a live connection.
func New(db *gorm.DB) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{"Content-Type"},
	}))

	whisperRepo := repository.NewWhisperRepository(db)
	replyRepo := repository.NewReplyRepository(db)

	whisperSvc := service.NewWhisperService(whisperRepo)
	replySvc := service.NewReplyService(replyRepo, whisperRepo)

	whisperHandler := handler.NewWhisperHandler(whisperSvc)
	replyHandler := handler.NewReplyHandler(replySvc)

	api := e.Group("/api")
	api.GET("/whispers", whisperHandler.List)
	api.POST("/whispers", whisperHandler.Create)
	api.GET("/whispers/:id", whisperHandler.Get)
	api.GET("/whispers/:id/replies", replyHandler.List)
	api.POST("/whispers/:id/replies", replyHandler.Create)
	api.GET("/topics", handler.Topics)
	api.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":    "healthy",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})

	return &Server{e: e, whisperRepo: whisperRepo, replyRepo: replyRepo}
}

func (s *Server) Start(addr string) error {
	return s.e.Start(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.e.Shutdown(ctx)
}

func (s *Server) SetDB(db *gorm.DB) {
	s.whisperRepo.SetDB(db)
	s.replyRepo.SetDB(db)
}

// WhisperRepo exposes the store handle for the retention sweeper.
func (s *Server) WhisperRepo() repository.WhisperRepository {
	return s.whisperRepo
}
