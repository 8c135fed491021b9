package browser

import (
	"fmt"
	"sync"
	"time"
)

// SessionState is the lifecycle state of a session's driver connection.
type SessionState int

const (
	// StateUninitialized means the connection exists but the first tab has
	// not been registered yet.
	StateUninitialized SessionState = iota

	// StateOpen means the session is live and owns at least one tab.
	StateOpen

	// StateClosed is terminal: the connection is torn down and the tab set
	// is empty.
	StateClosed
)

func (s SessionState) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateOpen:
		return "open"
	case StateClosed:
		return "closed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Session is one live connection to a browser driver plus the named tabs
// open on it. The driver accepts one in-flight command at a time and has a
// single notion of "current focused window", so every operation that
// touches the tab set or issues driver commands holds the session mutex:
// concurrent callers targeting the same session queue rather than
// interleave. Distinct sessions are fully independent.
//
// Tab operations on a closed session degrade to a neutral no-effect result
// (false), never an error. Callers that need to distinguish "already
// closed" from "succeeded" check State first.
type Session struct {
	// Name is the registry key for this session.
	Name string

	// CreatedAt is the time the session was registered.
	CreatedAt time.Time

	mu       sync.Mutex
	port     Port
	resolver *Resolver
	state    SessionState
	tabs     []*Tab
}

// NewSession wraps a live port in an unstarted session. Callers normally
// go through Manager.GetOrCreate, which also starts the session.
func NewSession(name string, port Port) *Session {
	return &Session{
		Name:      name,
		CreatedAt: time.Now(),
		port:      port,
		resolver:  NewResolver(port),
	}
}

// Start registers the connection's first window as a tab with the given
// name and opens the session. It fails if the session was already started.
func (s *Session) Start(initialTab string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateUninitialized {
		return &InvalidTabOperationError{Op: "start", Reason: "session already started"}
	}

	handle, err := s.port.CurrentWindow()
	if err != nil {
		return fmt.Errorf("register initial tab: %w", err)
	}

	s.tabs = append(s.tabs, &Tab{Name: initialTab, Handle: handle, Status: TabActive})
	s.state = StateOpen
	return nil
}

// State returns the session's lifecycle state.
func (s *Session) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Tabs returns a snapshot of the session's tabs in registration order.
func (s *Session) Tabs() []Tab {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Tab, 0, len(s.tabs))
	for _, t := range s.tabs {
		out = append(out, *t)
	}
	return out
}

// ActiveTab returns the currently active tab, if any.
func (s *Session) ActiveTab() (Tab, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, t := range s.tabs {
		if t.Status == TabActive {
			return *t, true
		}
	}
	return Tab{}, false
}

// TabStatus returns the status of the named tab.
func (s *Session) TabStatus(name string) (TabStatus, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t := s.findTab(name); t != nil {
		return t.Status, true
	}
	return 0, false
}

// HasTab reports whether a tab with the given name exists.
func (s *Session) HasTab(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.findTab(name) != nil
}

// NewTab opens a new window and registers it as the active tab. It reports
// false without side effects when the session is closed or the name is
// already taken.
func (s *Session) NewTab(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateOpen || s.findTab(name) != nil {
		return false
	}

	handle, err := s.port.NewWindow()
	if err != nil {
		return false
	}

	for _, t := range s.tabs {
		t.Status = TabInactive
	}
	s.tabs = append(s.tabs, &Tab{Name: name, Handle: handle, Status: TabActive})
	return true
}

// SwitchTo moves window focus to the named tab. Unknown names and closed
// sessions report false without side effects.
func (s *Session) SwitchTo(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.switchToLocked(name)
}

func (s *Session) switchToLocked(name string) bool {
	if s.state != StateOpen {
		return false
	}
	tab := s.findTab(name)
	if tab == nil {
		return false
	}

	if err := s.port.SwitchWindow(tab.Handle); err != nil {
		return false
	}
	for _, t := range s.tabs {
		if t == tab {
			t.Status = TabActive
		} else {
			t.Status = TabInactive
		}
	}
	return true
}

// CloseTab closes the named tab. Closing the sole remaining tab closes the
// whole session. Otherwise the tab's window is closed, its record removed,
// and the first remaining tab in registration order becomes active.
func (s *Session) CloseTab(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	tab := s.findTab(name)
	if tab == nil {
		return false
	}
	if len(s.tabs) == 1 {
		s.closeAllLocked()
		return true
	}

	if !s.switchToLocked(name) {
		return false
	}
	if err := s.port.CloseWindow(tab.Handle); err != nil {
		return false
	}
	for i, t := range s.tabs {
		if t == tab {
			s.tabs = append(s.tabs[:i], s.tabs[i+1:]...)
			break
		}
	}
	// Oldest surviving tab takes over focus.
	return s.switchToLocked(s.tabs[0].Name)
}

// CloseAll tears down the connection, empties the tab set and closes the
// session. Idempotent.
func (s *Session) CloseAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closeAllLocked()
}

func (s *Session) closeAllLocked() {
	if s.state == StateClosed {
		return
	}
	_ = s.port.Quit()
	s.tabs = nil
	s.state = StateClosed
}

// findTab returns the tab with the given name. Callers hold s.mu.
func (s *Session) findTab(name string) *Tab {
	for _, t := range s.tabs {
		if t.Name == name {
			return t
		}
	}
	return nil
}
