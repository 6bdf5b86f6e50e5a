package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/labstack/echo/v4"
	"github.com/whisperwall/backend/internal/model"
	"github.com/whisperwall/backend/internal/service"
)

type WhisperHandler struct {
	svc service.WhisperService
}

func NewWhisperHandler(svc service.WhisperService) *WhisperHandler {
	return &WhisperHandler{svc: svc}
}

type WhisperResponse struct {
	ID           uint64  `json:"id"`
	Content      string  `json:"content"`
	Topic        string  `json:"topic"`
	IsSensitive  bool    `json:"is_sensitive"`
	RepliesCount int64   `json:"replies_count"`
	CreatedAt    string  `json:"created_at"`
	DeletedAt    *string `json:"deleted_at"`
}

type CreateWhisperRequest struct {
	Content     string `json:"content"`
	Topic       string `json:"topic"`
	IsSensitive bool   `json:"is_sensitive"`
}

func (h *WhisperHandler) List(c echo.Context) error {
	whispers, err := h.svc.List(c.Request().Context(), c.QueryParam("topic"))
	if err != nil {
		c.Logger().Errorf("list whispers: %v", err)
		return c.JSON(http.StatusInternalServerError, Fail("failed to fetch whispers"))
	}
	resp := make([]WhisperResponse, 0, len(whispers))
	for i := range whispers {
		resp = append(resp, toWhisperResponse(&whispers[i]))
	}
	return c.JSON(http.StatusOK, OK(resp))
}

func (h *WhisperHandler) Get(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusNotFound, Fail("whisper not found"))
	}
	w, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return c.JSON(http.StatusNotFound, Fail("whisper not found"))
		}
		c.Logger().Errorf("get whisper %d: %v", id, err)
		return c.JSON(http.StatusInternalServerError, Fail("failed to fetch whisper"))
	}
	return c.JSON(http.StatusOK, OK(toWhisperResponse(w)))
}

func (h *WhisperHandler) Create(c echo.Context) error {
	var req CreateWhisperRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, Fail("invalid json body"))
	}
	w, err := h.svc.Create(c.Request().Context(), req.Content, req.Topic, req.IsSensitive)
	if err != nil {
		var verr validation.Errors
		if errors.As(err, &verr) {
			return c.JSON(http.StatusBadRequest, Fail(verr.Error()))
		}
		c.Logger().Errorf("create whisper: %v", err)
		return c.JSON(http.StatusInternalServerError, Fail("failed to save whisper"))
	}
	return c.JSON(http.StatusOK, OK(toWhisperResponse(w)))
}

func Topics(c echo.Context) error {
	ts := model.Topics()
	out := make([]string, 0, len(ts))
	for _, t := range ts {
		out = append(out, t.String())
	}
	return c.JSON(http.StatusOK, OK(out))
}

func toWhisperResponse(w *model.Whisper) WhisperResponse {
	resp := WhisperResponse{
		ID:           w.ID,
		Content:      w.Content,
		Topic:        w.Topic.String(),
		IsSensitive:  w.IsSensitive,
		RepliesCount: w.RepliesCount,
		CreatedAt:    w.CreatedAt.UTC().Format(time.RFC3339),
	}
	if w.DeletedAt.Valid {
		s := w.DeletedAt.Time.UTC().Format(time.RFC3339)
		resp.DeletedAt = &s
	}
	return resp
}
