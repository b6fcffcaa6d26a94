package transport

import (
	"bytes"
	"fmt"
	"time"

	"github.com/gorilla/websocket"
)

const closeWriteWait = time.Second

// WebSocketConn carries one message per text frame.
type WebSocketConn struct {
	conn        *websocket.Conn
	readTimeout time.Duration
}

// NewWebSocketConn wraps conn. A zero readTimeout blocks reads indefinitely.
func NewWebSocketConn(conn *websocket.Conn, readTimeout time.Duration) *WebSocketConn {
	return &WebSocketConn{conn: conn, readTimeout: readTimeout}
}

// ReadMessage returns the payload of the next data frame. Coordinators that
// keep the line terminator inside the frame are tolerated.
func (c *WebSocketConn) ReadMessage() ([]byte, error) {
	if c.readTimeout > 0 {
		if err := c.conn.SetReadDeadline(time.Now().Add(c.readTimeout)); err != nil {
			return nil, fmt.Errorf("failed to set read deadline: %w", err)
		}
	}

	_, data, err := c.conn.ReadMessage()
	if err != nil {
		return nil, err
	}
	return bytes.TrimRight(data, "\r\n"), nil
}

func (c *WebSocketConn) WriteMessage(data []byte) error {
	return c.conn.WriteMessage(websocket.TextMessage, data)
}

// Close sends a normal closure frame before closing the socket.
func (c *WebSocketConn) Close() error {
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	_ = c.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(closeWriteWait))
	return c.conn.Close()
}
