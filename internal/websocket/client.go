package websocket

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = pongWait * 9 / 10
	maxMessageSize = 512

	// queueSize bounds the events buffered for one connection before it is
	// treated as too slow and dropped
	queueSize = 256
)

// Client is one websocket connection subscribed to the event feed.
// The feed is one-way: anything the peer sends is read and discarded.
type Client struct {
	id    string
	conn  *websocket.Conn
	hub   *Hub
	queue chan []byte
	done  chan struct{}
	once  sync.Once
}

// NewClient wraps an upgraded connection
func NewClient(conn *websocket.Conn, hub *Hub) *Client {
	return &Client{
		id:    uuid.NewString(),
		conn:  conn,
		hub:   hub,
		queue: make(chan []byte, queueSize),
		done:  make(chan struct{}),
	}
}

// ID returns the connection id
func (c *Client) ID() string {
	return c.id
}

// Send queues data for delivery. It fails once the client is closed or its
// queue is full.
func (c *Client) Send(data []byte) error {
	select {
	case <-c.done:
		return ErrClientClosed
	default:
	}

	select {
	case c.queue <- data:
		return nil
	case <-c.done:
		return ErrClientClosed
	default:
		go c.Close()
		return ErrClientClosed
	}
}

// Close shuts the connection down. It is safe to call more than once.
func (c *Client) Close() error {
	var err error
	c.once.Do(func() {
		close(c.done)
		c.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, ""),
			time.Now().Add(writeWait))
		err = c.conn.Close()
	})
	return err
}

// Serve runs the connection until the peer goes away or the client is
// closed, then unregisters it from the hub. It blocks.
func (c *Client) Serve() {
	go c.writeLoop()
	c.readLoop()
}

func (c *Client) readLoop() {
	defer func() {
		c.hub.Unregister(c)
		c.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Warn().Err(err).Str("client_id", c.id).Msg("WebSocket closed unexpectedly")
			}
			return
		}
	}
}

func (c *Client) writeLoop() {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-c.done:
			return
		case msg := <-c.queue:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				log.Warn().Err(err).Str("client_id", c.id).Msg("WebSocket write failed")
				c.Close()
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.Close()
				return
			}
		}
	}
}
