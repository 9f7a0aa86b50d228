package websocket

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"compliance-screening-be/internal/pkg/logger"
	"compliance-screening-be/pkg/screening/stream"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// clusterChannel is the Redis pub/sub channel used to relay screening
// updates between instances.
const clusterChannel = "cluster_events"

type Hub struct {
	// Registered clients map: OrganizationID -> list of clients. Several
	// dashboards can watch the same organization at once.
	clients map[uuid.UUID][]*Client

	// Register requests from the clients.
	register chan *Client

	// Unregister requests from clients.
	unregister chan *Client

	// Lock for safe map access
	mu sync.RWMutex

	// Redis connection for cross-instance relay
	rdb *redis.Client

	logger logger.ILogger
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[uuid.UUID][]*Client),
		rdb:        rdb,
		logger:     log,
	}
}

func (h *Hub) Run() {
	// Start Redis subscriber if Redis is available
	if h.rdb != nil {
		go h.subscribeToRedis()
	}

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.OrganizationID] = append(h.clients[client.OrganizationID], client)
			h.mu.Unlock()
			h.logger.Info("Hub", "Client registered", map[string]interface{}{"organization_id": client.OrganizationID})

		case client := <-h.unregister:
			h.mu.Lock()
			if clients, ok := h.clients[client.OrganizationID]; ok {
				for i, c := range clients {
					if c == client {
						h.clients[client.OrganizationID] = append(clients[:i], clients[i+1:]...)
						close(client.Send)
						break
					}
				}
				if len(h.clients[client.OrganizationID]) == 0 {
					delete(h.clients, client.OrganizationID)
					h.logger.Info("Hub", "Client completely unregistered", map[string]interface{}{"organization_id": client.OrganizationID})
				}
			}
			h.mu.Unlock()
		}
	}
}

// Deliver pushes one re-screening update to every local watcher of the
// organization and relays it to other instances through Redis. Implements
// the streamer's delivery interface.
func (h *Hub) Deliver(update stream.Update) {
	data, err := json.Marshal(map[string]interface{}{
		"type": "screening_update",
		"data": update,
	})
	if err != nil {
		h.logger.Error("Hub", "Failed to marshal update", map[string]interface{}{"error": err.Error()})
		return
	}

	h.sendLocal(update.OrganizationID, data)

	// Relay for watchers connected to other instances
	if h.rdb != nil {
		payload, _ := json.Marshal(map[string]interface{}{
			"target_organization_id": update.OrganizationID.String(),
			"message":                json.RawMessage(data),
		})
		h.rdb.Publish(context.Background(), clusterChannel, payload)
	}
}

func (h *Hub) sendLocal(orgID uuid.UUID, data []byte) {
	h.mu.RLock()
	clients, ok := h.clients[orgID]
	h.mu.RUnlock()
	if !ok {
		return
	}

	for _, client := range clients {
		select {
		case client.Send <- data:
		default:
			// The unregister path closes the send channel.
			h.logger.Warn("Hub", "Client send buffer full, dropping connection", map[string]interface{}{"organization_id": orgID})
			h.unregister <- client
		}
	}
}

func (h *Hub) subscribeToRedis() {
	// Every instance subscribes to the shared channel and forwards only the
	// updates whose organization it has watchers for.
	ctx := context.Background()
	pubsub := h.rdb.Subscribe(ctx, clusterChannel)
	defer pubsub.Close()

	ch := pubsub.Channel()

	for msg := range ch {
		var payload struct {
			TargetOrganizationID string          `json:"target_organization_id"`
			Message              json.RawMessage `json:"message"`
		}
		if err := json.Unmarshal([]byte(msg.Payload), &payload); err != nil {
			log.Printf("Redis msg parse error: %v", err)
			continue
		}

		orgID, err := uuid.Parse(payload.TargetOrganizationID)
		if err != nil {
			continue
		}

		h.sendLocal(orgID, payload.Message)
	}
}
