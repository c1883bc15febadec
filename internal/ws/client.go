package ws

import (
	"context"
	"time"

	"github.com/coder/websocket"

	"github.com/stickfight/server/internal/model"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Buffer size for outgoing messages
	sendBufferSize = 32
)

// Client is one live websocket connection as seen by the hub
type Client struct {
	id   model.PlayerID
	conn *websocket.Conn
	send chan []byte
	done chan struct{}
}

// NewClient wraps an accepted connection
func NewClient(id model.PlayerID, conn *websocket.Conn) *Client {
	return &Client{
		id:   id,
		conn: conn,
		send: make(chan []byte, sendBufferSize),
		done: make(chan struct{}),
	}
}

// ID returns the connection's player id
func (c *Client) ID() model.PlayerID {
	return c.id
}

// writePump drains the send channel onto the connection. It exits when the
// hub signals done or a write fails; the read loop owns closing the
// underlying connection.
func (c *Client) writePump(ctx context.Context) {
	for {
		select {
		case <-c.done:
			return
		case msg := <-c.send:
			writeCtx, cancel := context.WithTimeout(ctx, writeWait)
			err := c.conn.Write(writeCtx, websocket.MessageText, msg)
			cancel()
			if err != nil {
				return
			}
		}
	}
}
