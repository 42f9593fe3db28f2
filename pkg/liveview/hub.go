package liveview

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const writeWait = 10 * time.Second

// client is one WebSocket connection. Messages queue on send and are
// written by a single goroutine.
type client struct {
	conn *websocket.Conn
	send chan []byte
	once sync.Once
}

func (c *client) close() {
	c.once.Do(func() {
		close(c.send)
	})
}

func (c *client) writeLoop() {
	defer c.conn.Close()
	for data := range c.send {
		_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			return
		}
	}
	_ = c.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(writeWait))
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Debug("websocket upgrade failed", "error", err)
		return
	}

	c := &client{conn: conn, send: make(chan []byte, s.sendBuffer)}

	// Register and queue the snapshot under the settings lock so no change
	// can slip between them.
	s.mu.Lock()
	snapshot := Message{Type: TypeSnapshot, Values: s.settings.Values()}
	s.addClient(c)
	s.queue(c, snapshot)
	s.mu.Unlock()

	go c.writeLoop()
	s.logger.Debug("client connected", "remote", r.RemoteAddr)

	for {
		var msg Message
		if err := conn.ReadJSON(&msg); err != nil {
			break
		}
		s.handleMessage(c, msg)
	}

	s.removeClient(c)
	s.logger.Debug("client disconnected", "remote", r.RemoteAddr)
}

func (s *Server) handleMessage(c *client, msg Message) {
	if msg.Type != TypeSet {
		s.queue(c, Message{Type: TypeError, Error: "unsupported message type " + string(msg.Type)})
		return
	}

	s.mu.Lock()
	err := s.settings.SetRaw(msg.Key, msg.Value)
	s.mu.Unlock()

	if err != nil {
		s.queue(c, Message{Type: TypeError, Key: msg.Key, Error: err.Error()})
	}
}

func (s *Server) addClient(c *client) {
	s.clientsMu.Lock()
	s.clients[c] = struct{}{}
	s.clientsMu.Unlock()
}

func (s *Server) removeClient(c *client) {
	s.clientsMu.Lock()
	if _, ok := s.clients[c]; ok {
		delete(s.clients, c)
		c.close()
	}
	s.clientsMu.Unlock()
}

// queue hands msg to one client, dropping the client if its buffer is full.
func (s *Server) queue(c *client, msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		s.logger.Warn("cannot encode message", "type", msg.Type, "error", err)
		return
	}
	s.send(c, data)
}

func (s *Server) send(c *client, data []byte) {
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()

	if _, ok := s.clients[c]; !ok {
		return
	}
	select {
	case c.send <- data:
	default:
		s.logger.Warn("dropping slow client")
		delete(s.clients, c)
		c.close()
	}
}

// broadcast sends msg to every connected client. It runs inside manager
// callbacks, so the settings lock is already held.
func (s *Server) broadcast(msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		s.logger.Warn("cannot encode message", "type", msg.Type, "error", err)
		return
	}

	s.clientsMu.RLock()
	clients := make([]*client, 0, len(s.clients))
	for c := range s.clients {
		clients = append(clients, c)
	}
	s.clientsMu.RUnlock()

	for _, c := range clients {
		s.send(c, data)
	}
}
