package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

const (
	eventsBuffer = 64
	writeWait    = 5 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	// The API listens on a local address only.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// streamUpdates pushes every controller update to the socket as JSON until
// either side goes away.
func streamUpdates(ctx context.Context, c *gin.Context, sess Session) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Warn().Err(err).Str("module", "adapters.http").Msg("ws upgrade failed")
		return
	}
	defer conn.Close()

	updates, unsub := sess.Subscribe(eventsBuffer)
	defer unsub()

	gone := make(chan struct{})
	go func() {
		defer close(gone)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case u, ok := <-updates:
			if !ok {
				_ = conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, "session closed"),
					time.Now().Add(writeWait))
				return
			}
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(u); err != nil {
				log.Debug().Err(err).Str("module", "adapters.http").Msg("ws write failed")
				return
			}
		case <-gone:
			return
		case <-ctx.Done():
			return
		}
	}
}
