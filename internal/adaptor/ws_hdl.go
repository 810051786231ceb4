package adaptor

import (
	"net/http"

	"wedding-marketplace/internal/notification"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// OriginChecker decides whether a browser origin may open a websocket on path.
type OriginChecker interface {
	Allowed(path, origin string) bool
}

type WebsocketHandler struct {
	hub      *notification.Hub
	upgrader websocket.Upgrader
	log      *zap.Logger
}

func NewWebsocketHandler(hub *notification.Hub, origins OriginChecker, log *zap.Logger) *WebsocketHandler {
	return &WebsocketHandler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return origins.Allowed(r.URL.Path, r.Header.Get("Origin"))
			},
		},
		log: log.With(zap.String("handler", "ws")),
	}
}

// Connect handles GET /ws?token=<jwt>. Authentication runs in middleware before the upgrade.
func (h *WebsocketHandler) Connect(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(w, r)
	if !ok {
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the HTTP error.
		h.log.Warn("Websocket upgrade failed", zap.Error(err))
		return
	}

	h.hub.Serve(notification.ClientKey(actor.Role, actor.ID), conn)
}
