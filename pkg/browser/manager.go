package browser

import (
	"fmt"
	"sync"
	"time"
)

// DefaultMaxSessions caps how many live driver connections one manager
// will hold.
const DefaultMaxSessions = 5

// DialFunc produces a live session port. The manager calls it exactly once
// per session name; callers capture their browser kind, configuration and
// connection descriptor in the closure (see pkg/driver.Connect).
type DialFunc func() (Port, error)

// Manager is a keyed, idempotent registry of named sessions. It is an
// explicitly constructed object, safe for concurrent use; there is no
// process-wide instance. The registry lock only guards the name map;
// per-session command serialization is the session's own concern.
type Manager struct {
	mu          sync.RWMutex
	sessions    map[string]*Session
	maxSessions int
}

// NewManager creates an empty session manager.
func NewManager() *Manager {
	return &Manager{
		sessions:    make(map[string]*Session),
		maxSessions: DefaultMaxSessions,
	}
}

// SetMaxSessions sets the maximum number of concurrent sessions.
func (m *Manager) SetMaxSessions(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.maxSessions = n
}

// GetOrCreate returns the session registered under name, dialing a new one
// if none exists. The call is idempotent by name: on a repeat request the
// existing session is returned unchanged and dial is not invoked, even if
// it captures different configuration.
func (m *Manager) GetOrCreate(name, initialTab string, dial DialFunc) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if session, exists := m.sessions[name]; exists {
		return session, nil
	}
	if len(m.sessions) >= m.maxSessions {
		return nil, fmt.Errorf("maximum number of sessions (%d) reached", m.maxSessions)
	}

	port, err := dial()
	if err != nil {
		return nil, err
	}

	session := NewSession(name, port)
	if err := session.Start(initialTab); err != nil {
		_ = port.Quit()
		return nil, err
	}

	m.sessions[name] = session
	return session, nil
}

// Get retrieves a session by name without side effects.
func (m *Manager) Get(name string) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	session, exists := m.sessions[name]
	return session, exists
}

// Remove closes the named session and evicts it from the registry. It
// reports false if no such session exists.
func (m *Manager) Remove(name string) bool {
	m.mu.Lock()
	session, exists := m.sessions[name]
	if exists {
		delete(m.sessions, name)
	}
	m.mu.Unlock()

	if !exists {
		return false
	}
	session.CloseAll()
	return true
}

// NewTab opens a named tab on the named session. It reports false when the
// session is unknown, closed, or already has a tab with that name.
func (m *Manager) NewTab(sessionName, tabName string) bool {
	session, exists := m.Get(sessionName)
	if !exists {
		return false
	}
	return session.NewTab(tabName)
}

// List returns metadata about all registered sessions.
func (m *Manager) List() []SessionInfo {
	m.mu.RLock()
	defer m.mu.RUnlock()

	infos := make([]SessionInfo, 0, len(m.sessions))
	for _, session := range m.sessions {
		info := SessionInfo{
			Name:      session.Name,
			State:     session.State(),
			Tabs:      len(session.Tabs()),
			CreatedAt: session.CreatedAt,
		}
		if active, ok := session.ActiveTab(); ok {
			info.ActiveTab = active.Name
		}
		infos = append(infos, info)
	}
	return infos
}

// HasSessions reports whether any sessions are registered.
func (m *Manager) HasSessions() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions) > 0
}

// CloseAll closes every session and empties the registry.
func (m *Manager) CloseAll() {
	m.mu.Lock()
	sessions := make([]*Session, 0, len(m.sessions))
	for name, session := range m.sessions {
		sessions = append(sessions, session)
		delete(m.sessions, name)
	}
	m.mu.Unlock()

	for _, session := range sessions {
		session.CloseAll()
	}
}

// SessionInfo contains metadata about a registered session.
type SessionInfo struct {
	Name      string
	State     SessionState
	Tabs      int
	ActiveTab string
	CreatedAt time.Time
}
