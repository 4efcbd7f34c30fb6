package kds

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	"github.com/yeremiapane/cafe-ordering/utils"
)

const writeWait = 10 * time.Second

// Conn -> bagian dari *websocket.Conn yang dipakai hub
type Conn interface {
	ReadMessage() (messageType int, p []byte, err error)
	WriteMessage(messageType int, data []byte) error
	WriteControl(messageType int, data []byte, deadline time.Time) error
	SetWriteDeadline(t time.Time) error
	Close() error
}

// RetryPolicy -> interval ping setelah error baca, koneksi ditutup setelah MaxAttempts ping gagal beruntun
type RetryPolicy struct {
	Delay       time.Duration
	MaxAttempts int
}

func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{Delay: 5 * time.Second, MaxAttempts: 3}
}

// Hub menampung dua pool: admin display (global per proses) dan viewer per page
type Hub struct {
	mu     sync.RWMutex
	admins map[*Client]struct{}
	pages  map[string]map[*Client]struct{}
	closed bool

	policy RetryPolicy
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewHub(policy RetryPolicy) *Hub {
	if policy.Delay <= 0 {
		policy.Delay = DefaultRetryPolicy().Delay
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Hub{
		admins: make(map[*Client]struct{}),
		pages:  make(map[string]map[*Client]struct{}),
		policy: policy,
		ctx:    ctx,
		cancel: cancel,
	}
}

// ServeAdmin -> daftarkan admin display, blok sampai koneksi selesai
func (h *Hub) ServeAdmin(conn Conn) {
	h.serve(newClient(conn, ""))
}

// ServePage -> daftarkan viewer untuk page tertentu, blok sampai koneksi selesai
func (h *Hub) ServePage(conn Conn, page string) {
	h.serve(newClient(conn, page))
}

func (h *Hub) serve(c *Client) {
	if !h.track() {
		c.close()
		return
	}
	defer h.wg.Done()
	defer c.close()

	if !h.register(c) {
		return
	}
	err := h.readLoop(c)
	h.deregister(c)

	if isNormalClose(err) || h.isClosed() {
		return
	}

	// error baca gorilla permanen, ReadMessage tidak boleh dipanggil lagi
	utils.InfoLogger.WithFields(c.fields()).WithError(err).Warn("websocket read failed, keeping connection write-only")
	h.supervise(c)
}

func (h *Hub) readLoop(c *Client) error {
	for {
		mt, msg, err := c.conn.ReadMessage()
		if err != nil {
			return err
		}
		// pesan dari admin display diabaikan
		if c.page != "" {
			h.relay(c, mt, msg)
		}
	}
}

// supervise -> ping tiap Delay. Ping sukses = terdaftar lagi (write-only),
// MaxAttempts kegagalan beruntun = selesai dan koneksi ditutup
func (h *Hub) supervise(c *Client) {
	ticker := time.NewTicker(h.policy.Delay)
	defer ticker.Stop()

	failures := 0
	for failures < h.policy.MaxAttempts {
		select {
		case <-h.ctx.Done():
			return
		case <-ticker.C:
		}

		if err := c.ping(); err != nil {
			failures++
			h.deregister(c)
			utils.InfoLogger.WithFields(c.fields()).WithError(err).WithField("attempt", failures).Warn("websocket ping failed")
			continue
		}

		failures = 0
		if !c.open.Load() {
			if !h.register(c) {
				return
			}
			utils.InfoLogger.WithFields(c.fields()).Info("websocket re-registered (write-only)")
		}
	}
	utils.InfoLogger.WithFields(c.fields()).Info("websocket retries exhausted, closing")
}

func (h *Hub) track() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	h.wg.Add(1)
	return true
}

func (h *Hub) register(c *Client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}

	if c.page == "" {
		h.admins[c] = struct{}{}
	} else {
		pool, ok := h.pages[c.page]
		if !ok {
			pool = make(map[*Client]struct{})
			h.pages[c.page] = pool
		}
		pool[c] = struct{}{}
	}
	c.open.Store(true)
	return true
}

func (h *Hub) deregister(c *Client) {
	c.open.Store(false)

	h.mu.Lock()
	defer h.mu.Unlock()
	if c.page == "" {
		delete(h.admins, c)
		return
	}
	if pool, ok := h.pages[c.page]; ok {
		delete(pool, c)
		if len(pool) == 0 {
			delete(h.pages, c.page)
		}
	}
}

func (h *Hub) isClosed() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.closed
}

// BroadcastNewOrder -> kirim order baru ke semua admin display, return jumlah yang terkirim
func (h *Hub) BroadcastNewOrder(event NewOrderEvent) int {
	data, err := json.Marshal(event)
	if err != nil {
		utils.ErrorLogger.Printf("Error marshaling new order event: %v", err)
		return 0
	}

	h.mu.RLock()
	targets := make([]*Client, 0, len(h.admins))
	for c := range h.admins {
		targets = append(targets, c)
	}
	h.mu.RUnlock()

	delivered := sendAll(targets, websocket.TextMessage, data)
	utils.InfoLogger.WithFields(logrus.Fields{
		"order_id":  event.OrderID,
		"clients":   len(targets),
		"delivered": delivered,
	}).Info("Broadcasting new order")
	return delivered
}

// relay -> teruskan pesan apa adanya ke viewer lain di page yang sama
func (h *Hub) relay(from *Client, mt int, msg []byte) int {
	h.mu.RLock()
	pool := h.pages[from.page]
	targets := make([]*Client, 0, len(pool))
	for c := range pool {
		if c != from {
			targets = append(targets, c)
		}
	}
	h.mu.RUnlock()

	return sendAll(targets, mt, msg)
}

func sendAll(targets []*Client, mt int, data []byte) int {
	delivered := 0
	for _, c := range targets {
		// koneksi mati dilewati tanpa error
		if !c.Open() {
			continue
		}
		if err := c.send(mt, data); err != nil {
			utils.InfoLogger.WithFields(c.fields()).WithError(err).Debug("skip dead websocket")
			continue
		}
		delivered++
	}
	return delivered
}

func (h *Hub) AdminCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.admins)
}

func (h *Hub) PageCount(page string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.pages[page])
}

// Shutdown -> tutup semua koneksi, batalkan retry yang tertunda, tunggu semua serve selesai
func (h *Hub) Shutdown() {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return
	}
	h.closed = true
	clients := make([]*Client, 0, len(h.admins))
	for c := range h.admins {
		clients = append(clients, c)
	}
	for _, pool := range h.pages {
		for c := range pool {
			clients = append(clients, c)
		}
	}
	h.admins = make(map[*Client]struct{})
	h.pages = make(map[string]map[*Client]struct{})
	h.mu.Unlock()

	h.cancel()
	for _, c := range clients {
		c.close()
	}
	h.wg.Wait()
	utils.InfoLogger.Printf("KDS hub stopped, %d connections closed", len(clients))
}

func isNormalClose(err error) bool {
	if err == nil || errors.Is(err, errClientClosed) {
		return true
	}
	return websocket.IsCloseError(err,
		websocket.CloseNormalClosure,
		websocket.CloseGoingAway,
		websocket.CloseNoStatusReceived,
	)
}
