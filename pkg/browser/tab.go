package browser

import "fmt"

// TabStatus is the focus status of a tab within its session.
type TabStatus int

const (
	TabActive TabStatus = iota + 1
	TabInactive
)

func (s TabStatus) String() string {
	switch s {
	case TabActive:
		return "active"
	case TabInactive:
		return "inactive"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Tab is one window within a session: a caller-chosen name plus the opaque
// window handle assigned by the driver. Tab values returned from Session
// methods are snapshots; only the session mutates tab status.
type Tab struct {
	Name   string
	Handle string
	Status TabStatus
}

// Active reports whether the tab currently holds window focus.
func (t Tab) Active() bool { return t.Status == TabActive }

func (t Tab) String() string {
	return fmt.Sprintf("Tab(name=%s, status=%s, handle=%s)", t.Name, t.Status, t.Handle)
}
