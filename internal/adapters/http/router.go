// Package http exposes the session controller to an external renderer.
package http

import (
	"context"

	"github.com/dkeye/roomclient/internal/app/session"
	"github.com/dkeye/roomclient/internal/config"
	"github.com/dkeye/roomclient/internal/domain"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

// Session is the part of the controller the API drives.
type Session interface {
	Snapshot() session.Snapshot
	Subscribe(buffer int) (<-chan session.Update, func())
	Join(ctx context.Context, info domain.LoginInfo) error
	SendMessage(ctx context.Context, body string) error
	SetChatOpen(ctx context.Context, open bool) error
	SetAudioEnabled(ctx context.Context, enabled bool) error
	SetVideoEnabled(ctx context.Context, enabled bool) error
	SetScreenShare(ctx context.Context, enabled bool) error
	UpdateMediaSettings(ctx context.Context, settings domain.MediaSettings, reapply bool) error
	Leave(ctx context.Context) error
}

const clientTokenCookie = "ct"

// ClientTokenMiddleware tags every renderer with a long-lived id cookie.
func ClientTokenMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, _ := c.Cookie(clientTokenCookie)
		if token == "" {
			token = uuid.NewString()
			c.SetCookie(clientTokenCookie, token, 3600*24*7, "/", "", false, true)
		}
		c.Set("client_token", token)
		c.Next()
	}
}

func SetupRouter(ctx context.Context, cfg *config.Config, sess Session) *gin.Engine {
	if cfg.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	if cfg.Mode == "debug" {
		r.Use(gin.Logger())
	}
	r.Use(gin.Recovery())

	store := cookie.NewStore([]byte(cfg.Secret))
	r.Use(sessions.Sessions("RoomClientSessions", store))
	r.Use(ClientTokenMiddleware())

	h := &handlers{sess: sess}

	api := r.Group("/api")
	api.GET("/session", h.snapshot)
	api.GET("/params/validate", h.validate)
	api.POST("/join", h.join)
	api.POST("/chat", h.sendMessage)
	api.PUT("/chat/open", h.setChatOpen)
	api.PUT("/media/:kind", h.setMedia)
	api.PUT("/settings", h.updateSettings)
	api.POST("/leave", h.leave)
	api.GET("/ws/events", func(c *gin.Context) {
		log.Info().Str("module", "adapters.http").Str("sid", c.GetString("client_token")).Msg("ws events endpoint hit")
		streamUpdates(ctx, c, sess)
	})

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	log.Info().Str("module", "adapters.http").Str("mode", cfg.Mode).Msg("router setup")
	return r
}
