// internal/websocket/hub.go
// WebSocket hub manages client connections and message broadcasting,
// scoped to events rather than tournaments.

package websocket

import (
	"encoding/json"
	"log"
	"sync"
)

// Hub maintains active websocket connections and broadcasts messages
type Hub struct {
	// Registered clients by event ID
	events map[string]map[*Client]bool

	// Registered clients by principal ID
	principals map[string]*Client

	// Register client
	register chan *Client

	// Unregister client
	unregister chan *Client

	// Broadcast messages to an event's subscribers
	broadcast chan *Message

	logger *log.Logger

	// Mutex for concurrent access
	mu sync.RWMutex
}

// Message represents a WebSocket message
type Message struct {
	Type        string      `json:"type"`
	EventID     string      `json:"event_id,omitempty"`
	PrincipalID string      `json:"principal_id,omitempty"`
	Data        interface{} `json:"data"`
}

// NewHub creates a new WebSocket hub
func NewHub(logger *log.Logger) *Hub {
	return &Hub{
		events:     make(map[string]map[*Client]bool),
		principals: make(map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan *Message, 256),
		logger:     logger,
	}
}

// Run starts the hub's main loop
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case message := <-h.broadcast:
			h.broadcastMessage(message)
		}
	}
}

// registerClient adds a new client to the hub
func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if client.principalID != "" {
		if existing, exists := h.principals[client.principalID]; exists {
			existing.close()
			h.removeClient(existing)
		}
		h.principals[client.principalID] = client
	}

	for _, eventID := range client.events {
		if h.events[eventID] == nil {
			h.events[eventID] = make(map[*Client]bool)
		}
		h.events[eventID][client] = true
	}

	h.logger.Printf("Client registered: %s (events: %v)", client.principalID, client.events)
}

// unregisterClient removes a client from the hub
func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.removeClient(client)
	client.close()

	h.logger.Printf("Client unregistered: %s", client.principalID)
}

// removeClient removes client from all registrations
func (h *Hub) removeClient(client *Client) {
	if client.principalID != "" {
		delete(h.principals, client.principalID)
	}

	for _, eventID := range client.events {
		if clients, exists := h.events[eventID]; exists {
			delete(clients, client)
			if len(clients) == 0 {
				delete(h.events, eventID)
			}
		}
	}
}

// broadcastMessage sends a message to relevant clients
func (h *Hub) broadcastMessage(message *Message) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	data, err := json.Marshal(message)
	if err != nil {
		h.logger.Printf("Failed to marshal message: %v", err)
		return
	}

	if message.EventID != "" {
		if clients, exists := h.events[message.EventID]; exists {
			for client := range clients {
				select {
				case client.send <- data:
				default:
					h.removeClient(client)
					client.close()
				}
			}
		}
	}

	if message.PrincipalID != "" {
		if client, exists := h.principals[message.PrincipalID]; exists {
			select {
			case client.send <- data:
			default:
				h.removeClient(client)
				client.close()
			}
		}
	}
}

// BroadcastEventUpdate broadcasts an update to all of an event's subscribers
func (h *Hub) BroadcastEventUpdate(eventID string, updateType string, data interface{}) {
	h.broadcast <- &Message{Type: updateType, EventID: eventID, Data: data}
}

// SendToPrincipal sends a message to one addressed principal (a player, a
// captain, a TO).
func (h *Hub) SendToPrincipal(principalID string, messageType string, data interface{}) {
	h.broadcast <- &Message{Type: messageType, PrincipalID: principalID, Data: data}
}

// SubscribeToEvent subscribes a client to an event's updates
func (h *Hub) SubscribeToEvent(client *Client, eventID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	client.events = append(client.events, eventID)

	if h.events[eventID] == nil {
		h.events[eventID] = make(map[*Client]bool)
	}
	h.events[eventID][client] = true

	h.logger.Printf("Client %s subscribed to event %s", client.principalID, eventID)
}

// UnsubscribeFromEvent unsubscribes a client from an event's updates
func (h *Hub) UnsubscribeFromEvent(client *Client, eventID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for i, id := range client.events {
		if id == eventID {
			client.events = append(client.events[:i], client.events[i+1:]...)
			break
		}
	}

	if clients, exists := h.events[eventID]; exists {
		delete(clients, client)
		if len(clients) == 0 {
			delete(h.events, eventID)
		}
	}

	h.logger.Printf("Client %s unsubscribed from event %s", client.principalID, eventID)
}
