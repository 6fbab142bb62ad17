package notify

import (
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Conn is the subset of *websocket.Conn the hub needs
type Conn interface {
	WriteJSON(v interface{}) error
	Close() error
}

// Client — одно живое websocket-соединение. Запись сериализуется мьютексом,
// gorilla/websocket допускает только одного пишущего на соединение.
type Client struct {
	conn Conn
	mu   sync.Mutex
}

func (c *Client) write(v interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(v)
}

// Hub is an explicit connection registry: user id -> set of live connections.
// Clients are added when they join and removed on disconnect or write failure;
// the hub knows nothing about connectivity beyond that.
type Hub struct {
	mu      sync.RWMutex
	clients map[uuid.UUID]map[*Client]struct{}
	log     *zap.Logger
}

func NewHub(log *zap.Logger) *Hub {
	return &Hub{
		clients: make(map[uuid.UUID]map[*Client]struct{}),
		log:     log,
	}
}

// Register adds a connection under the given user id and returns its client handle
func (h *Hub) Register(userID uuid.UUID, conn Conn) *Client {
	client := &Client{conn: conn}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[userID] == nil {
		h.clients[userID] = make(map[*Client]struct{})
	}
	h.clients[userID][client] = struct{}{}

	h.log.Info("client joined", zap.String("user_id", userID.String()))
	return client
}

// Unregister removes a connection; the last connection removed drops the user entry
func (h *Hub) Unregister(userID uuid.UUID, client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	set, ok := h.clients[userID]
	if !ok {
		return
	}
	if _, ok := set[client]; !ok {
		return
	}
	delete(set, client)
	if len(set) == 0 {
		delete(h.clients, userID)
	}

	h.log.Info("client left", zap.String("user_id", userID.String()))
}

// Send delivers a payload to every live connection of a user, at most once per
// call. A user with no connections is silently skipped; a failed write closes
// and removes that connection.
func (h *Hub) Send(userID uuid.UUID, payload interface{}) {
	h.mu.RLock()
	clients := make([]*Client, 0, len(h.clients[userID]))
	for client := range h.clients[userID] {
		clients = append(clients, client)
	}
	h.mu.RUnlock()

	for _, client := range clients {
		if err := client.write(payload); err != nil {
			h.log.Warn("dropping dead connection",
				zap.String("user_id", userID.String()), zap.Error(err))
			client.conn.Close()
			h.Unregister(userID, client)
		}
	}
}

// Connected reports whether the user has at least one live connection
func (h *Hub) Connected(userID uuid.UUID) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userID]) > 0
}
