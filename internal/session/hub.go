package session

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/regenesis/regenesis/backend-go/internal/document"
	"github.com/regenesis/regenesis/backend-go/internal/engine"
)

// DocLoader fetches the latest persisted plot document for a project.
type DocLoader func(projectID string) (*document.PlotDocument, error)

// DocSaver persists a plot document snapshot. It receives a deep copy, so
// it may run concurrently with further edits.
type DocSaver func(projectID string, doc *document.PlotDocument) error

// ConfigLoader resolves the geometry tunables for a project's sessions,
// typically from the owner's stored preferences. It must be total: on any
// lookup failure it returns the defaults.
type ConfigLoader func(projectID string) engine.Config

// Room is one live editing session: the authoritative engine for the plot
// document plus every connected client.
type Room struct {
	projectID string
	clients   map[string]*Client // clientID -> client
	presence  *PresenceManager

	mu        sync.Mutex
	engine    *engine.Engine
	serverSeq int64
	dirty     bool
}

func newRoom(projectID string, doc *document.PlotDocument, cfg engine.Config) *Room {
	eng := engine.NewEngine(cfg)
	eng.SetDocument(doc)
	return &Room{
		projectID: projectID,
		clients:   make(map[string]*Client),
		presence:  NewPresenceManager(),
		engine:    eng,
	}
}

// Hub owns every live room and serializes client registration.
type Hub struct {
	mu         sync.RWMutex
	rooms      map[string]*Room // projectID -> room
	register   chan *Client
	unregister chan *Client
	done       chan struct{}

	loader     DocLoader
	saver      DocSaver
	cfgLoader  ConfigLoader
	flushEvery time.Duration
}

func NewHub(loader DocLoader, saver DocSaver, cfgLoader ConfigLoader, flushEvery time.Duration) *Hub {
	if flushEvery <= 0 {
		flushEvery = 30 * time.Second
	}
	return &Hub{
		rooms:      make(map[string]*Room),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		loader:     loader,
		saver:      saver,
		cfgLoader:  cfgLoader,
		flushEvery: flushEvery,
	}
}

func (h *Hub) Run() {
	ticker := time.NewTicker(h.flushEvery)
	defer ticker.Stop()

	for {
		select {
		case client := <-h.register:
			h.addClient(client)
		case client := <-h.unregister:
			h.removeClient(client)
		case <-ticker.C:
			h.flushDirty()
		case <-h.done:
			return
		}
	}
}

// Register adds a client to its project's room, loading the document on
// first join.
func (h *Hub) Register(client *Client) {
	h.register <- client
}

// Stop shuts the hub down, saving every dirty document first.
func (h *Hub) Stop() {
	close(h.done)
	h.flushDirty()
}

func (h *Hub) addClient(client *Client) {
	h.mu.Lock()
	room, ok := h.rooms[client.ProjectID]
	if !ok {
		doc, err := h.loader(client.ProjectID)
		if err != nil {
			h.mu.Unlock()
			slog.Error("load document", "error", err, "project", client.ProjectID)
			client.Send(&Message{Type: TypeError, Payload: errorPayload("document unavailable")})
			close(client.send)
			return
		}
		cfg := engine.DefaultConfig()
		if h.cfgLoader != nil {
			cfg = h.cfgLoader(client.ProjectID)
		}
		room = newRoom(client.ProjectID, doc, cfg)
		h.rooms[client.ProjectID] = room
	}
	room.clients[client.ClientID] = client
	h.mu.Unlock()

	// Welcome carries the client id and the full document so the client
	// can render immediately.
	room.mu.Lock()
	welcome, err := json.Marshal(WelcomePayload{
		ClientID: client.ClientID,
		Document: room.engine.Document().Clone(),
	})
	room.mu.Unlock()
	if err == nil {
		client.Send(&Message{Type: TypeWelcome, Payload: welcome})
	}

	if stateMsg := room.presence.StateMessage(); stateMsg != nil {
		client.Send(stateMsg)
	}

	joinPayload, _ := json.Marshal(PresenceJoinPayload{
		UserID:      client.UserID,
		DisplayName: client.DisplayName,
	})
	h.broadcastToRoom(client.ProjectID, &Message{
		Type:    TypePresenceJoin,
		UserID:  client.UserID,
		Payload: joinPayload,
	}, client.ClientID)

	slog.Info("client joined", "user", client.UserID, "project", client.ProjectID)
}

func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	room, ok := h.rooms[client.ProjectID]
	if !ok {
		h.mu.Unlock()
		return
	}

	delete(room.clients, client.ClientID)
	close(client.send)
	room.presence.Remove(client.UserID)

	empty := len(room.clients) == 0
	if empty {
		delete(h.rooms, client.ProjectID)
	}
	h.mu.Unlock()

	if empty {
		h.saveRoom(room)
	}

	leavePayload, _ := json.Marshal(PresenceLeavePayload{UserID: client.UserID})
	h.broadcastToRoom(client.ProjectID, &Message{
		Type:    TypePresenceLeave,
		UserID:  client.UserID,
		Payload: leavePayload,
	}, "")

	slog.Info("client left", "user", client.UserID, "project", client.ProjectID)
}

func (h *Hub) handleMessage(sender *Client, msg *Message) {
	switch msg.Type {
	case TypePresenceUpdate:
		h.handlePresenceUpdate(sender, msg)
	case TypeViewportUpdate:
		h.handleViewportUpdate(sender, msg)
	case TypeOpSubmit:
		h.handleOpSubmit(sender, msg)
	default:
		slog.Warn("unknown message type", "type", msg.Type, "user", sender.UserID)
	}
}

func (h *Hub) handlePresenceUpdate(sender *Client, msg *Message) {
	var presence PresencePayload
	if err := json.Unmarshal(msg.Payload, &presence); err != nil {
		slog.Warn("invalid presence payload", "error", err)
		return
	}

	presence.DisplayName = sender.DisplayName

	room := h.room(sender.ProjectID)
	if room == nil {
		return
	}
	room.presence.Update(sender.UserID, &presence)

	outPayload, _ := json.Marshal(presence)
	h.broadcastToRoom(sender.ProjectID, &Message{
		Type:    TypePresenceUpdate,
		UserID:  sender.UserID,
		Payload: outPayload,
	}, sender.ClientID)
}

// handleViewportUpdate rebroadcasts a zoom/pan change after clamping it
// against the room's configured bounds, so followers can never receive an
// out-of-bounds view.
func (h *Hub) handleViewportUpdate(sender *Client, msg *Message) {
	var vp ViewportPayload
	if err := json.Unmarshal(msg.Payload, &vp); err != nil {
		slog.Warn("invalid viewport payload", "error", err)
		return
	}

	room := h.room(sender.ProjectID)
	if room == nil {
		return
	}
	bounds := room.engine.Config().ZoomBounds
	vp.View.Zoom = bounds.Clamp(vp.View.Zoom)

	outPayload, _ := json.Marshal(vp)
	h.broadcastToRoom(sender.ProjectID, &Message{
		Type:    TypeViewportUpdate,
		UserID:  sender.UserID,
		Payload: outPayload,
	}, sender.ClientID)
}

func (h *Hub) handleOpSubmit(sender *Client, msg *Message) {
	var payload OperationSubmitPayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		slog.Warn("invalid operation payload", "error", err)
		return
	}
	op := payload.Operation

	room := h.room(sender.ProjectID)
	if room == nil {
		return
	}

	room.mu.Lock()
	err := ApplyOperation(room.engine, &op)
	if err == nil {
		room.serverSeq++
		room.dirty = true
	}
	serverSeq := room.serverSeq
	room.mu.Unlock()

	if err != nil {
		// Local, recoverable: the client refuses the edit and nothing
		// was committed.
		nack, _ := json.Marshal(OperationNackPayload{
			OperationID: op.ID,
			Reason:      err.Error(),
		})
		sender.Send(&Message{Type: TypeOpNack, Payload: nack})
		return
	}

	ack, _ := json.Marshal(OperationAckPayload{
		OperationID:     op.ID,
		ServerSeq:       serverSeq,
		ServerTimestamp: time.Now().UnixMilli(),
	})
	sender.Send(&Message{Type: TypeOpAck, Payload: ack})

	broadcast, _ := json.Marshal(OperationBroadcastPayload{
		Operation: op,
		UserID:    sender.UserID,
		ServerSeq: serverSeq,
	})
	h.broadcastToRoom(sender.ProjectID, &Message{
		Type:    TypeOpBroadcast,
		UserID:  sender.UserID,
		Seq:     serverSeq,
		Payload: broadcast,
	}, sender.ClientID)
}

func (h *Hub) broadcastToRoom(projectID string, msg *Message, excludeClientID string) {
	h.mu.RLock()
	room, ok := h.rooms[projectID]
	if !ok {
		h.mu.RUnlock()
		return
	}

	clients := make([]*Client, 0, len(room.clients))
	for _, c := range room.clients {
		if c.ClientID != excludeClientID {
			clients = append(clients, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range clients {
		c.Send(msg)
	}
}

func (h *Hub) room(projectID string) *Room {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.rooms[projectID]
}

// flushDirty snapshots every dirty room's document through the saver.
func (h *Hub) flushDirty() {
	h.mu.RLock()
	rooms := make([]*Room, 0, len(h.rooms))
	for _, r := range h.rooms {
		rooms = append(rooms, r)
	}
	h.mu.RUnlock()

	for _, room := range rooms {
		h.saveRoom(room)
	}
}

func (h *Hub) saveRoom(room *Room) {
	room.mu.Lock()
	if !room.dirty {
		room.mu.Unlock()
		return
	}
	snapshot := room.engine.Document().Clone()
	room.dirty = false
	room.mu.Unlock()

	if err := h.saver(room.projectID, snapshot); err != nil {
		slog.Error("save document", "error", err, "project", room.projectID)
		room.mu.Lock()
		room.dirty = true
		room.mu.Unlock()
	}
}

func errorPayload(reason string) json.RawMessage {
	data, _ := json.Marshal(map[string]string{"error": reason})
	return data
}
