package network

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/LordOfDragons/dragengine-sub060/status"
	"github.com/LordOfDragons/dragengine-sub060/world"
)

// ProtocolVersion is sent with every server message
const ProtocolVersion = 1

var (
	ErrInvalidConfig = errors.New("invalid network config")
	ErrNotRunning    = errors.New("network service not running")
)

// Message types
const (
	TypeHello    = "hello"
	TypeEvent    = "event"
	TypeSnapshot = "snapshot"
	TypeError    = "error"
)

// serverMessage is the JSON envelope of everything sent to inspectors
type serverMessage struct {
	Ver      int              `json:"ver"`
	Type     string           `json:"type"`
	Seq      uint64           `json:"seq"`
	Time     int64            `json:"time"`
	Event    *EventPayload    `json:"event,omitempty"`
	Snapshot *status.Snapshot `json:"snapshot,omitempty"`
	Worlds   []string         `json:"worlds,omitempty"`
	Error    string           `json:"error,omitempty"`
}

// EventPayload is the wire form of a world event
type EventPayload struct {
	World     string `json:"world"`
	Kind      string `json:"kind"`
	Resource  string `json:"resource"`
	Count     int    `json:"count"`
	Attribute string `json:"attribute,omitempty"`
}

func eventPayload(e world.Event) *EventPayload {
	return &EventPayload{
		World:     e.World,
		Kind:      e.Kind.String(),
		Resource:  e.Resource.String(),
		Count:     e.Count,
		Attribute: e.Attribute,
	}
}

// clientMessage is a request from an inspector
type clientMessage struct {
	Type string `json:"type"`
}

func encode(msg serverMessage) ([]byte, error) {
	msg.Ver = ProtocolVersion
	if msg.Time == 0 {
		msg.Time = time.Now().UnixMilli()
	}
	return json.Marshal(msg)
}
