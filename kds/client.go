package kds

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

var errClientClosed = errors.New("websocket client closed")

// Client -> satu koneksi di salah satu pool. Page kosong berarti admin display.
type Client struct {
	conn      Conn
	page      string
	open      atomic.Bool
	writeMu   sync.Mutex
	closeOnce sync.Once
	closed    atomic.Bool
}

func newClient(conn Conn, page string) *Client {
	return &Client{conn: conn, page: page}
}

func (c *Client) Open() bool {
	return c.open.Load() && !c.closed.Load()
}

func (c *Client) send(mt int, data []byte) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	if !c.Open() {
		return errClientClosed
	}
	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return c.conn.WriteMessage(mt, data)
}

func (c *Client) ping() error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	if c.closed.Load() {
		return errClientClosed
	}
	return c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait))
}

func (c *Client) close() {
	c.closeOnce.Do(func() {
		c.closed.Store(true)
		c.open.Store(false)
		_ = c.conn.Close()
	})
}

func (c *Client) fields() logrus.Fields {
	pool := "admin"
	if c.page != "" {
		pool = "page"
	}
	return logrus.Fields{"pool": pool, "page": c.page}
}
