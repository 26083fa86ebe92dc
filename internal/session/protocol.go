package session

import (
	"encoding/json"

	"github.com/regenesis/regenesis/backend-go/internal/document"
	"github.com/regenesis/regenesis/backend-go/internal/engine"
)

// Message is the websocket envelope for everything that crosses a plot
// session.
type Message struct {
	Type      string          `json:"type"`
	ProjectID string          `json:"projectId,omitempty"`
	ClientID  string          `json:"clientId,omitempty"`
	UserID    string          `json:"userId,omitempty"`
	Seq       int64           `json:"seq,omitempty"`
	Payload   json.RawMessage `json:"payload"`
}

const (
	TypeWelcome = "welcome"
	TypeError   = "error"

	// Presence
	TypePresenceUpdate = "presence.update"
	TypePresenceState  = "presence.state"
	TypePresenceJoin   = "presence.join"
	TypePresenceLeave  = "presence.leave"

	// Viewport sync (zoom/pan follow-mode between collaborators)
	TypeViewportUpdate = "viewport.update"

	// Document sync
	TypeDocSync = "doc.sync"

	// Edit operations
	TypeOpSubmit    = "op.submit"
	TypeOpAck       = "op.ack"
	TypeOpNack      = "op.nack"
	TypeOpBroadcast = "op.broadcast"
)

// PresencePayload is one collaborator's ephemeral editing state. The cursor
// is in world coordinates so every client can project it through its own
// ViewState.
type PresencePayload struct {
	Cursor      *engine.Point `json:"cursor,omitempty"`
	Selection   []string      `json:"selection,omitempty"`
	DisplayName string        `json:"displayName,omitempty"`
}

type PresenceStatePayload struct {
	Presences map[string]*PresencePayload `json:"presences"`
}

type PresenceJoinPayload struct {
	UserID      string `json:"userId"`
	DisplayName string `json:"displayName"`
}

type PresenceLeavePayload struct {
	UserID string `json:"userId"`
}

// ViewportPayload carries a zoom/pan update for viewport following.
type ViewportPayload struct {
	View engine.ViewState `json:"view"`
}

// WelcomePayload is sent to a client right after registration.
type WelcomePayload struct {
	ClientID string                 `json:"clientId"`
	Document *document.PlotDocument `json:"document,omitempty"`
}

// Operation is one plot document mutation. Exactly the fields named by the
// operation type are consulted; the rest stay zero.
type Operation struct {
	ID        string `json:"id"`
	Type      string `json:"type"`
	Timestamp int64  `json:"timestamp"`
	ClientSeq int64  `json:"clientSeq"`

	// Targets
	NodeID    string `json:"nodeId,omitempty"`
	PolygonID string `json:"polygonId,omitempty"`

	// region.create
	ParentID string            `json:"parentId,omitempty"`
	Name     string            `json:"name,omitempty"`
	Vertices []document.Vertex `json:"vertices,omitempty"`
	Fill     string            `json:"fill,omitempty"`
	Stroke   string            `json:"stroke,omitempty"`

	// vertex.move / vertex.insert / vertex.remove
	VertexIndex int     `json:"vertexIndex,omitempty"`
	X           float64 `json:"x,omitempty"`
	Y           float64 `json:"y,omitempty"`

	// node.reparent
	NewParentID string `json:"newParentId,omitempty"`
	NewIndex    int    `json:"newIndex,omitempty"`

	// placement.add / placement.remove
	PlacementID string `json:"placementId,omitempty"`
	PlantID     string `json:"plantId,omitempty"`
}

// Operation types.
const (
	OpRegionCreate    = "region.create"
	OpVertexMove      = "vertex.move"
	OpVertexInsert    = "vertex.insert"
	OpVertexRemove    = "vertex.remove"
	OpNodeRename      = "node.rename"
	OpNodeReparent    = "node.reparent"
	OpPlacementAdd    = "placement.add"
	OpPlacementRemove = "placement.remove"
)

type OperationSubmitPayload struct {
	Operation Operation `json:"operation"`
}

type OperationAckPayload struct {
	OperationID     string `json:"operationId"`
	ServerSeq       int64  `json:"serverSeq"`
	ServerTimestamp int64  `json:"serverTimestamp"`
}

type OperationNackPayload struct {
	OperationID string `json:"operationId"`
	Reason      string `json:"reason"`
}

type OperationBroadcastPayload struct {
	Operation Operation `json:"operation"`
	UserID    string    `json:"userId"`
	ServerSeq int64     `json:"serverSeq"`
}
