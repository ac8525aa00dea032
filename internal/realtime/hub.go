package realtime

import (
	"encoding/json"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	// PingInterval and PongWait are used for heartbeat (seconds).
	PingInterval = 30
	PongWait     = 60
)

// Hub maintains user_id -> set of connections and pushes notification
// events to them. Uses Redis pub/sub for horizontal scaling: local
// delivery plus publish to Redis for other instances.
type Hub struct {
	// userID -> map[clientID]*Client
	users     map[uuid.UUID]map[string]*Client
	subs      map[uuid.UUID]func() // cancel Redis subscription per user
	cancelAll func()               // cancel the broadcast-channel subscription
	mu        sync.RWMutex
	logger    *zap.Logger
	redis     RedisPublisher
	redisSub  RedisSubscriber
}

// RedisPublisher is the interface for publishing to Redis (for cross-instance delivery).
type RedisPublisher interface {
	PublishUserEvent(userID uuid.UUID, event string, payload []byte) error
	PublishBroadcastEvent(event string, payload []byte) error
}

// RedisSubscriber subscribes to notification channels and invokes handler for incoming events.
type RedisSubscriber interface {
	SubscribeUser(userID uuid.UUID, handler func(event string, payload []byte)) (cancel func(), err error)
	SubscribeBroadcast(handler func(event string, payload []byte)) (cancel func(), err error)
}

// NewHub creates a new notification hub. The broadcast channel is
// subscribed once, so platform-wide pushes from other instances reach
// every locally connected user.
func NewHub(logger *zap.Logger, redisPub RedisPublisher, redisSub RedisSubscriber) *Hub {
	h := &Hub{
		users:    make(map[uuid.UUID]map[string]*Client),
		subs:     make(map[uuid.UUID]func()),
		logger:   logger,
		redis:    redisPub,
		redisSub: redisSub,
	}
	if redisSub != nil {
		if cancel, err := redisSub.SubscribeBroadcast(func(event string, payload []byte) {
			h.deliverAll(event, json.RawMessage(payload))
		}); err == nil {
			h.cancelAll = cancel
		}
	}
	return h
}

// Close cancels all Redis subscriptions.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, cancel := range h.subs {
		cancel()
		delete(h.subs, id)
	}
	if h.cancelAll != nil {
		h.cancelAll()
		h.cancelAll = nil
	}
}

// Register adds a client. Starts a Redis subscription for the user's
// channel when this is their first connection on this instance.
func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	if h.users[c.UserID] == nil {
		h.users[c.UserID] = make(map[string]*Client)
		if h.redisSub != nil {
			cancel, err := h.redisSub.SubscribeUser(c.UserID, func(event string, payload []byte) {
				h.deliverUser(c.UserID, event, json.RawMessage(payload))
			})
			if err == nil {
				h.subs[c.UserID] = cancel
			}
		}
	}
	h.users[c.UserID][c.ID] = c
	h.mu.Unlock()
	h.logger.Debug("client connected", zap.String("client_id", c.ID), zap.String("user_id", c.UserID.String()))
}

// Unregister removes a client. Cancels the user's Redis subscription
// when their last connection on this instance closes.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	if m, ok := h.users[c.UserID]; ok {
		delete(m, c.ID)
		if len(m) == 0 {
			delete(h.users, c.UserID)
			if cancel, ok := h.subs[c.UserID]; ok {
				cancel()
				delete(h.subs, c.UserID)
			}
		}
	}
	h.mu.Unlock()
	h.logger.Debug("client disconnected", zap.String("client_id", c.ID), zap.String("user_id", c.UserID.String()))
}

// ConnectedUsers returns the number of distinct users connected to this instance.
func (h *Hub) ConnectedUsers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.users)
}

// deliverUser sends a message to all local connections of one user.
func (h *Hub) deliverUser(userID uuid.UUID, event string, payload interface{}) {
	msg := newMessage(event, payload)
	h.mu.RLock()
	clients := h.users[userID]
	h.mu.RUnlock()
	for _, c := range clients {
		select {
		case c.send <- msg:
		default:
			// buffer full, skip
		}
	}
}

// deliverAll sends a message to every local connection.
func (h *Hub) deliverAll(event string, payload interface{}) {
	msg := newMessage(event, payload)
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, clients := range h.users {
		for _, c := range clients {
			select {
			case c.send <- msg:
			default:
			}
		}
	}
}

// NotifyUser pushes an event to one user across instances. With Redis
// wired, delivery rides the pub/sub subscriptions only, so local clients
// are not written twice.
func (h *Hub) NotifyUser(userID uuid.UUID, event string, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	if h.redis != nil {
		_ = h.redis.PublishUserEvent(userID, event, data)
		return
	}
	h.deliverUser(userID, event, json.RawMessage(data))
}

// NotifyAll pushes an event to every connected user across instances.
func (h *Hub) NotifyAll(event string, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	if h.redis != nil {
		_ = h.redis.PublishBroadcastEvent(event, data)
		return
	}
	h.deliverAll(event, json.RawMessage(data))
}

func newMessage(event string, payload interface{}) WSMessage {
	var data []byte
	switch v := payload.(type) {
	case []byte:
		data = v
	case json.RawMessage:
		data = v
	default:
		data, _ = json.Marshal(payload)
	}
	return WSMessage{Event: event, Data: data}
}
