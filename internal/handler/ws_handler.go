package handler

import (
	"net/http"

	"jobsite/internal/notify"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Браузерные клиенты ходят с других origin'ов, как и у REST-части
	CheckOrigin: func(r *http.Request) bool { return true },
}

type WSHandler struct {
	hub *notify.Hub
	log *zap.Logger
}

func NewWSHandler(hub *notify.Hub, log *zap.Logger) *WSHandler {
	return &WSHandler{hub: hub, log: log}
}

// joinMessage — кадр, которым клиент привязывает соединение к пользователю
type joinMessage struct {
	Event  string `json:"event"`
	UserID string `json:"user_id"`
}

// Serve переводит соединение в websocket и обслуживает его до разрыва.
// Клиент после подключения шлет {"event":"join","user_id":"<uuid>"}; до join
// соединение нигде не зарегистрировано и уведомлений не получает.
func (h *WSHandler) Serve(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	go h.readLoop(conn)
}

func (h *WSHandler) readLoop(conn *websocket.Conn) {
	var (
		joinedID     uuid.UUID
		joinedClient *notify.Client
	)

	defer func() {
		if joinedClient != nil {
			h.hub.Unregister(joinedID, joinedClient)
		}
		conn.Close()
	}()

	for {
		var msg joinMessage
		if err := conn.ReadJSON(&msg); err != nil {
			return
		}

		if msg.Event != "join" || joinedClient != nil {
			continue
		}

		userID, err := uuid.Parse(msg.UserID)
		if err != nil {
			h.log.Warn("join with invalid user id", zap.String("user_id", msg.UserID))
			continue
		}

		joinedID = userID
		joinedClient = h.hub.Register(userID, conn)
	}
}
