package ws

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const writeWait = 10 * time.Second

// Client is one websocket connection. gorilla/websocket allows a single
// concurrent writer, so writes go through mu.
type Client struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *Client) write(payload []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteMessage(websocket.TextMessage, payload)
}

// Manager keeps track of journal stream connections per user.
type Manager struct {
	mu          sync.RWMutex
	subscribers map[string]map[*Client]struct{} // userID -> clients
	total       int
	onChange    func(total int)
}

func NewManager() *Manager {
	return &Manager{subscribers: make(map[string]map[*Client]struct{})}
}

// OnChange installs a callback invoked with the total connection count
// after every register and unregister.
func (m *Manager) OnChange(fn func(total int)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onChange = fn
}

// Register adds a connection for userID. A user may have several open
// streams.
func (m *Manager) Register(userID string, conn *websocket.Conn) *Client {
	c := &Client{conn: conn}
	m.mu.Lock()
	set, ok := m.subscribers[userID]
	if !ok {
		set = make(map[*Client]struct{})
		m.subscribers[userID] = set
	}
	set[c] = struct{}{}
	m.total++
	total, fn := m.total, m.onChange
	m.mu.Unlock()

	if fn != nil {
		fn(total)
	}
	return c
}

// Unregister removes and closes the connection. Calling it twice is safe.
func (m *Manager) Unregister(userID string, c *Client) {
	m.mu.Lock()
	set, ok := m.subscribers[userID]
	if !ok {
		m.mu.Unlock()
		return
	}
	if _, ok := set[c]; !ok {
		m.mu.Unlock()
		return
	}
	delete(set, c)
	if len(set) == 0 {
		delete(m.subscribers, userID)
	}
	m.total--
	total, fn := m.total, m.onChange
	m.mu.Unlock()

	_ = c.conn.Close()
	if fn != nil {
		fn(total)
	}
}

// Broadcast sends payload to every stream of userID and returns how many
// writes succeeded. Connections that fail to write are dropped.
func (m *Manager) Broadcast(userID string, payload []byte) int {
	m.mu.RLock()
	clients := make([]*Client, 0, len(m.subscribers[userID]))
	for c := range m.subscribers[userID] {
		clients = append(clients, c)
	}
	m.mu.RUnlock()

	sent := 0
	for _, c := range clients {
		if err := c.write(payload); err != nil {
			m.Unregister(userID, c)
			continue
		}
		sent++
	}
	return sent
}

// Count returns the number of open streams for userID.
func (m *Manager) Count(userID string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.subscribers[userID])
}

// Total returns the number of open streams across all users.
func (m *Manager) Total() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.total
}
