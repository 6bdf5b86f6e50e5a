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

type ReplyHandler struct {
	svc service.ReplyService
}

func NewReplyHandler(svc service.ReplyService) *ReplyHandler {
	return &ReplyHandler{svc: svc}
}

type ReplyResponse struct {
	ID        uint64  `json:"id"`
	WhisperID uint64  `json:"whisper_id"`
	Content   string  `json:"content"`
	CreatedAt string  `json:"created_at"`
	DeletedAt *string `json:"deleted_at"`
}

type CreateReplyRequest struct {
	Content string `json:"content"`
}

func (h *ReplyHandler) List(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusNotFound, Fail("whisper not found"))
	}
	replies, err := h.svc.List(c.Request().Context(), id)
	if err != nil {
		c.Logger().Errorf("list replies for whisper %d: %v", id, err)
		return c.JSON(http.StatusInternalServerError, Fail("failed to fetch replies"))
	}
	resp := make([]ReplyResponse, 0, len(replies))
	for i := range replies {
		resp = append(resp, toReplyResponse(&replies[i]))
	}
	return c.JSON(http.StatusOK, OK(resp))
}

func (h *ReplyHandler) Create(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusNotFound, Fail("whisper not found"))
	}
	var req CreateReplyRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, Fail("invalid json body"))
	}
	reply, err := h.svc.Create(c.Request().Context(), id, req.Content)
	if err != nil {
		var verr validation.Errors
		switch {
		case errors.As(err, &verr):
			return c.JSON(http.StatusBadRequest, Fail(verr.Error()))
		case errors.Is(err, service.ErrNotFound):
			return c.JSON(http.StatusNotFound, Fail("whisper not found"))
		}
		c.Logger().Errorf("create reply for whisper %d: %v", id, err)
		return c.JSON(http.StatusInternalServerError, Fail("failed to save reply"))
	}
	return c.JSON(http.StatusOK, OK(toReplyResponse(reply)))
}

func toReplyResponse(r *model.Reply) ReplyResponse {
	resp := ReplyResponse{
		ID:        r.ID,
		WhisperID: r.WhisperID,
		Content:   r.Content,
		CreatedAt: r.CreatedAt.UTC().Format(time.RFC3339),
	}
	if r.DeletedAt.Valid {
		s := r.DeletedAt.Time.UTC().Format(time.RFC3339)
		resp.DeletedAt = &s
	}
	return resp
}
