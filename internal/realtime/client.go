package realtime

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

const (
	// Time allowed to write a frame to the peer.
	writeWait = 5 * time.Second
	// Time allowed to read the next pong before the connection is
	// considered dead.
	pongWait = 30 * time.Second
	// Ping interval; must be shorter than pongWait.
	pingPeriod = (pongWait * 9) / 10

	maxInboundBytes = 4096
	sendBuffer      = 32
)

// Client is one live websocket connection. Outbound frames go through the
// buffered send channel so pushes never block the sender's request path;
// the write pump is the only goroutine that touches the connection for
// writes.
type Client struct {
	conn *websocket.Conn
	send chan []byte
	log  zerolog.Logger

	closeOnce sync.Once
	done      chan struct{}
}

func newClient(conn *websocket.Conn, log zerolog.Logger) *Client {
	return &Client{
		conn: conn,
		send: make(chan []byte, sendBuffer),
		log:  log,
		done: make(chan struct{}),
	}
}

// enqueue hands a frame to the write pump without blocking. A full buffer
// means the peer is too slow; the frame is dropped and the caller may log.
func (c *Client) enqueue(frame []byte) bool {
	select {
	case <-c.done:
		return false
	default:
	}
	select {
	case c.send <- frame:
		return true
	default:
		return false
	}
}

// close shuts the connection down once; safe to call from any goroutine.
func (c *Client) close() {
	c.closeOnce.Do(func() {
		close(c.done)
		if c.conn != nil {
			_ = c.conn.Close()
		}
	})
}

// writePump drains the send channel onto the wire and keeps the connection
// alive with periodic pings. It exits when the client is closed or a write
// fails, closing the connection either way.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.close()
	}()

	for {
		select {
		case <-c.done:
			return
		case frame := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				c.log.Debug().Err(err).Msg("websocket write failed")
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
