package network

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// ClientID uniquely identifies a connected inspector
type ClientID uint32

// client is one websocket inspector with its own send queue
type client struct {
	id     ClientID
	conn   *websocket.Conn
	sendCh chan []byte

	closeCh   chan struct{}
	closeOnce sync.Once
}

func newClient(id ClientID, conn *websocket.Conn, queueSize int) *client {
	return &client{
		id:      id,
		conn:    conn,
		sendCh:  make(chan []byte, queueSize),
		closeCh: make(chan struct{}),
	}
}

// send queues data for transmission
// Returns false if the client is closed or its queue is full
func (c *client) send(data []byte) bool {
	select {
	case <-c.closeCh:
		return false
	default:
	}
	select {
	case c.sendCh <- data:
		return true
	default:
		return false
	}
}

// goAway tells the inspector the server is shutting down, then closes
func (c *client) goAway(timeout time.Duration) {
	_ = c.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseGoingAway, ""), time.Now().Add(timeout))
	c.close()
}

func (c *client) close() {
	c.closeOnce.Do(func() {
		close(c.closeCh)
		_ = c.conn.Close()
	})
}

// writeLoop sends queued messages and keeps the connection alive with pings
func (c *client) writeLoop(cfg *Config, logger *slog.Logger) {
	defer c.close()

	ping := time.NewTicker(cfg.PingInterval)
	defer ping.Stop()

	for {
		select {
		case <-c.closeCh:
			return
		case data := <-c.sendCh:
			_ = c.conn.SetWriteDeadline(time.Now().Add(cfg.WriteTimeout))
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				logger.Debug("inspector write failed", "client", c.id, "error", err)
				return
			}
		case <-ping.C:
			if err := c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(cfg.WriteTimeout)); err != nil {
				return
			}
		}
	}
}

// readLoop dispatches client requests until the connection fails
func (c *client) readLoop(cfg *Config, logger *slog.Logger, handle func(*client, clientMessage)) {
	defer c.close()

	c.conn.SetReadLimit(cfg.ReadLimit)
	for {
		_, payload, err := c.conn.ReadMessage()
		if err != nil {
			return
		}
		var msg clientMessage
		if err := json.Unmarshal(payload, &msg); err != nil {
			logger.Debug("discarding malformed message", "client", c.id, "error", err)
			continue
		}
		handle(c, msg)
	}
}
