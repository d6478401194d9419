// Package server exposes battles over a websocket push surface. Clients only
// ever receive per-viewer projections; the raw battle state stays inside the
// session layer.
package server

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/emberduel/duel-server-go/internal/battle"
	"github.com/emberduel/duel-server-go/internal/session"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Message is the wire envelope in both directions.
type Message struct {
	Type     string          `json:"type"`
	BattleID string          `json:"battle_id,omitempty"`
	PlayerID string          `json:"player_id,omitempty"`
	Error    string          `json:"error,omitempty"`
	Data     json.RawMessage `json:"data,omitempty"`
}

type startBattlePayload struct {
	DeckA battle.Deck `json:"deck_a"`
	DeckB battle.Deck `json:"deck_b"`
}

type playCardPayload struct {
	CardID string `json:"card_id"`
	Target string `json:"target,omitempty"`
}

type attackPayload struct {
	AttackerID string `json:"attacker_id"`
	TargetID   string `json:"target_id,omitempty"`
}

type activateTrapPayload struct {
	TrapID string `json:"trap_id"`
}

type processTurnPayload struct {
	Actions []battle.TurnAction `json:"actions"`
}

// Client is one connected websocket peer.
type Client struct {
	conn     *websocket.Conn
	send     chan []byte
	playerID string
	battleID string
}

// Hub routes client messages to the session manager and pushes per-viewer
// battle views back out after every mutation.
type Hub struct {
	logger   *zap.Logger
	sessions *session.Manager

	mu         sync.RWMutex
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
}

// NewHub creates a hub over the given session manager.
func NewHub(sessions *session.Manager, logger *zap.Logger) *Hub {
	return &Hub{
		logger:     logger,
		sessions:   sessions,
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// Run processes client registration until the hub is torn down.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			h.logger.Debug("client registered")

		case client := <-h.unregister:
			h.mu.Lock()
			if _, found := h.clients[client]; found {
				delete(h.clients, client)
				close(client.send)
			}
			h.mu.Unlock()
			h.logger.Debug("client unregistered", zap.String("player", client.playerID))
		}
	}
}

// ServeWS upgrades an HTTP request and starts the client pumps.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	client := &Client{
		conn: conn,
		send: make(chan []byte, 256),
	}
	h.register <- client

	go client.writePump()
	go client.readPump(h)
}

func (h *Hub) handleMessage(client *Client, msg Message) {
	switch msg.Type {
	case "start_battle":
		var payload startBattlePayload
		if !h.decode(client, msg, &payload) {
			return
		}
		battleID, err := h.sessions.StartBattle(payload.DeckA, payload.DeckB)
		if err != nil {
			h.sendError(client, msg.Type, err.Error())
			return
		}
		client.battleID = battleID
		client.playerID = payload.DeckA.Owner
		h.broadcastViews(battleID)

	case "join_battle":
		client.battleID = msg.BattleID
		client.playerID = msg.PlayerID
		h.sendView(client)

	case "play_card":
		var payload playCardPayload
		if !h.decode(client, msg, &payload) {
			return
		}
		res, err := h.sessions.PlayCard(client.battleID, client.playerID, payload.CardID, payload.Target)
		h.afterCall(client, msg.Type, res.Result, err)

	case "attack":
		var payload attackPayload
		if !h.decode(client, msg, &payload) {
			return
		}
		res, err := h.sessions.Attack(client.battleID, payload.AttackerID, payload.TargetID)
		h.afterCall(client, msg.Type, res.Result, err)

	case "activate_trap":
		var payload activateTrapPayload
		if !h.decode(client, msg, &payload) {
			return
		}
		res, err := h.sessions.ActivateTrap(client.battleID, payload.TrapID)
		h.afterCall(client, msg.Type, res.Result, err)

	case "process_turn":
		var payload processTurnPayload
		if !h.decode(client, msg, &payload) {
			return
		}
		res, err := h.sessions.ProcessTurn(client.battleID, payload.Actions)
		h.afterCall(client, msg.Type, res.Result, err)

	case "get_state":
		h.sendView(client)

	default:
		h.sendError(client, msg.Type, "unknown message type")
	}
}

func (h *Hub) decode(client *Client, msg Message, payload any) bool {
	if err := json.Unmarshal(msg.Data, payload); err != nil {
		h.sendError(client, msg.Type, "malformed payload")
		return false
	}
	return true
}

// afterCall reports rule violations back to the caller and pushes fresh views
// to every client in the battle after a successful mutation.
func (h *Hub) afterCall(client *Client, msgType string, res battle.Result, err error) {
	if err != nil {
		h.sendError(client, msgType, err.Error())
		return
	}
	if !res.Success {
		h.sendError(client, msgType, res.Error)
		return
	}
	h.broadcastViews(client.battleID)
}

func (h *Hub) sendError(client *Client, msgType, text string) {
	data, _ := json.Marshal(Message{Type: msgType + "_error", Error: text})
	select {
	case client.send <- data:
	default:
	}
}

func (h *Hub) sendView(client *Client) {
	view, err := h.sessions.View(client.battleID, client.playerID)
	if err != nil {
		h.sendError(client, "get_state", err.Error())
		return
	}
	raw, err := json.Marshal(view)
	if err != nil {
		h.logger.Error("marshaling battle view", zap.Error(err))
		return
	}
	data, _ := json.Marshal(Message{Type: "battle_state", BattleID: client.battleID, Data: raw})
	select {
	case client.send <- data:
	default:
	}
}

// broadcastViews sends each connected client of the battle its own projection.
func (h *Hub) broadcastViews(battleID string) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for client := range h.clients {
		if client.battleID == battleID {
			h.sendView(client)
		}
	}
}

func (c *Client) readPump(h *Hub) {
	defer func() {
		h.unregister <- c
		c.conn.Close()
	}()

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			return
		}
		var msg Message
		if err := json.Unmarshal(raw, &msg); err != nil {
			h.logger.Debug("malformed client message", zap.Error(err))
			continue
		}
		h.handleMessage(c, msg)
	}
}

func (c *Client) writePump() {
	defer c.conn.Close()
	for message := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
			return
		}
	}
}
