package liveview

// MessageType identifies a WebSocket message.
type MessageType string

const (
	// TypeSnapshot carries every value. It is the first message on a new
	// connection.
	TypeSnapshot MessageType = "snapshot"

	// TypeChange carries one changed value.
	TypeChange MessageType = "change"

	// TypeSet is sent by clients to assign a value.
	TypeSet MessageType = "set"

	// TypeError reports a rejected client message.
	TypeError MessageType = "error"
)

// Message is exchanged with browsers over WebSocket.
type Message struct {
	Type   MessageType    `json:"type"`
	Key    string         `json:"key,omitempty"`
	Value  any            `json:"value,omitempty"`
	Values map[string]any `json:"values,omitempty"`
	Error  string         `json:"error,omitempty"`
}
