package http

import (
	"errors"
	"net/http"

	"github.com/dkeye/roomclient/internal/app/session"
	"github.com/dkeye/roomclient/internal/domain"
	"github.com/dkeye/roomclient/internal/params"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type handlers struct {
	sess Session
}

type chatRequest struct {
	Body string `json:"body" binding:"required"`
}

type toggleRequest struct {
	Enabled *bool `json:"enabled" binding:"required"`
}

type chatOpenRequest struct {
	Open *bool `json:"open" binding:"required"`
}

type settingsRequest struct {
	Settings domain.MediaSettings `json:"settings"`
	Reapply  bool                 `json:"reapply"`
}

func (h *handlers) snapshot(c *gin.Context) {
	c.JSON(http.StatusOK, h.sess.Snapshot())
}

func (h *handlers) validate(c *gin.Context) {
	res := params.Validate(c.Request.URL.RawQuery)
	status := http.StatusOK
	if !res.Valid {
		status = http.StatusUnprocessableEntity
	}
	c.JSON(status, res)
}

func (h *handlers) join(c *gin.Context) {
	var info domain.LoginInfo
	if err := c.ShouldBindJSON(&info); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.sess.Join(c.Request.Context(), info); err != nil {
		h.fail(c, err)
		return
	}

	s := sessions.Default(c)
	s.Set("room", string(info.RoomID))
	s.Set("name", info.DisplayName)
	if err := s.Save(); err != nil {
		log.Warn().Err(err).Str("module", "adapters.http").Msg("session save")
	}
	c.JSON(http.StatusAccepted, h.sess.Snapshot())
}

func (h *handlers) sendMessage(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing or invalid body"})
		return
	}
	if err := h.sess.SendMessage(c.Request.Context(), req.Body); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handlers) setChatOpen(c *gin.Context) {
	var req chatOpenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing open"})
		return
	}
	if err := h.sess.SetChatOpen(c.Request.Context(), *req.Open); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handlers) setMedia(c *gin.Context) {
	var req toggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing enabled"})
		return
	}
	ctx := c.Request.Context()
	var err error
	switch c.Param("kind") {
	case "audio":
		err = h.sess.SetAudioEnabled(ctx, *req.Enabled)
	case "video":
		err = h.sess.SetVideoEnabled(ctx, *req.Enabled)
	case "screen":
		err = h.sess.SetScreenShare(ctx, *req.Enabled)
	default:
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown media kind"})
		return
	}
	if err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusAccepted)
}

func (h *handlers) updateSettings(c *gin.Context) {
	var req settingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.sess.UpdateMediaSettings(c.Request.Context(), req.Settings, req.Reapply); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, req.Settings)
}

func (h *handlers) leave(c *gin.Context) {
	if err := h.sess.Leave(c.Request.Context()); err != nil {
		h.fail(c, err)
		return
	}
	s := sessions.Default(c)
	s.Clear()
	_ = s.Save()
	c.Status(http.StatusNoContent)
}

func (h *handlers) fail(c *gin.Context, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		log.Error().Err(err).Str("module", "adapters.http").Str("path", c.FullPath()).Msg("request failed")
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, params.ErrInvalidParams),
		errors.Is(err, domain.ErrDisplayNameEmpty),
		errors.Is(err, domain.ErrDisplayNameTooLong),
		errors.Is(err, session.ErrEmptyMessage):
		return http.StatusBadRequest
	case errors.Is(err, session.ErrPassiveRole):
		return http.StatusForbidden
	case errors.Is(err, session.ErrBusy),
		errors.Is(err, session.ErrNotJoined),
		errors.Is(err, session.ErrMediaNotReady),
		errors.Is(err, session.ErrLeaveCancelled):
		return http.StatusConflict
	case errors.Is(err, session.ErrRateLimited):
		return http.StatusTooManyRequests
	case errors.Is(err, session.ErrCredential):
		return http.StatusBadGateway
	case errors.Is(err, session.ErrClosed):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
