package services

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/focusnow-app/focusnow-backend/internal/database"
	"github.com/focusnow-app/focusnow-backend/internal/models"
	"github.com/google/uuid"
)

// ProgressionChannel is the Redis pub/sub channel for progression events.
const ProgressionChannel = "focusnow:progression"

// EventConn is the minimal interface a WebSocket connection must satisfy.
type EventConn interface {
	WriteJSON(v interface{}) error
	Close() error
}

// eventHub is a registry of connected clients, keyed by user.
type eventHub struct {
	mu          sync.RWMutex
	connections map[uuid.UUID]EventConn
}

var (
	hub           = &eventHub{connections: make(map[uuid.UUID]EventConn)}
	subscribeOnce sync.Once
)

// RegisterEventConn registers or replaces a user's events connection and
// lazily starts the Redis subscriber so fan-out works across instances.
func RegisterEventConn(userID uuid.UUID, conn EventConn) {
	hub.mu.Lock()
	if old, ok := hub.connections[userID]; ok {
		old.Close()
	}
	hub.connections[userID] = conn
	hub.mu.Unlock()

	subscribeOnce.Do(startProgressionSubscriber)
}

// UnregisterEventConn removes a user's connection, but only if the
// registered one is still conn. A reconnect replaces the entry before
// the old handler's cleanup runs, and that cleanup must not evict the
// replacement.
func UnregisterEventConn(userID uuid.UUID, conn EventConn) {
	hub.mu.Lock()
	if cur, ok := hub.connections[userID]; ok && cur == conn {
		delete(hub.connections, userID)
	}
	hub.mu.Unlock()
}

// PublishProgression journals the event and broadcasts it over Redis.
// Both sides are best-effort: progression state already committed.
func PublishProgression(userID, eventType string, payload map[string]interface{}) {
	event := models.ProgressionEvent{
		UserID:    userID,
		Type:      eventType,
		Payload:   payload,
		Timestamp: time.Now().UTC(),
	}

	go JournalEvent(event)

	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("⚠️ Failed to marshal progression event: %v", err)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := database.RedisClient.Publish(ctx, ProgressionChannel, data).Err(); err != nil {
		log.Printf("⚠️ Failed to publish progression event: %v", err)
	}
}

// startProgressionSubscriber consumes the Redis channel and delivers
// events to the owning user's local connection, if any.
func startProgressionSubscriber() {
	if database.RedisClient == nil {
		return
	}
	go func() {
		ctx := context.Background()
		sub := database.RedisClient.Subscribe(ctx, ProgressionChannel)
		defer sub.Close()

		for msg := range sub.Channel() {
			var event models.ProgressionEvent
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				log.Printf("⚠️ Dropped malformed progression event: %v", err)
				continue
			}
			userID, err := uuid.Parse(event.UserID)
			if err != nil {
				continue
			}

			hub.mu.RLock()
			conn, ok := hub.connections[userID]
			hub.mu.RUnlock()
			if !ok {
				continue
			}
			if err := conn.WriteJSON(event); err != nil {
				UnregisterEventConn(userID, conn)
				conn.Close()
			}
		}
	}()
}
