package websocket

import (
	"log"
	"sync"
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/google/uuid"
)

// The hub feeds the admin schedule board: every booking and cancellation is
// pushed to connected dashboards so the front desk sees slot occupancy move
// without polling.

type Client struct {
	UserID uuid.UUID
	Conn   *websocket.Conn
}

type ScheduleEvent struct {
	Type          string    `json:"type"` // "booked" | "cancelled"
	TimeSlotID    uuid.UUID `json:"time_slot_id"`
	EnrollmentID  uuid.UUID `json:"enrollment_id"`
	SlotDate      time.Time `json:"slot_date"`
	SlotStartTime time.Time `json:"slot_start_time"`
}

var clients = make(map[uuid.UUID]*websocket.Conn)
var clientsMu sync.RWMutex
var Register = make(chan *Client)
var Unregister = make(chan *Client)
var Broadcast = make(chan ScheduleEvent, 64)

func RunHub() {
	for {
		select {
		case client := <-Register:
			clientsMu.Lock()
			clients[client.UserID] = client.Conn
			clientsMu.Unlock()
		case client := <-Unregister:
			clientsMu.Lock()
			if conn, ok := clients[client.UserID]; ok && conn == client.Conn {
				delete(clients, client.UserID)
			}
			clientsMu.Unlock()
		case event := <-Broadcast:
			clientsMu.RLock()
			stale := []uuid.UUID{}
			for userID, conn := range clients {
				if err := conn.WriteJSON(event); err != nil {
					log.Printf("Error pushing schedule event to client %s: %v", userID, err)
					conn.Close()
					stale = append(stale, userID)
				}
			}
			clientsMu.RUnlock()

			if len(stale) > 0 {
				clientsMu.Lock()
				for _, userID := range stale {
					delete(clients, userID)
				}
				clientsMu.Unlock()
			}
		}
	}
}

// Publish enqueues an event without ever blocking the request path.
func Publish(event ScheduleEvent) {
	select {
	case Broadcast <- event:
	default:
	}
}
