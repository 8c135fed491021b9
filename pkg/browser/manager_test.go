package browser

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingDial returns a dial func that tracks invocations and hands out
// fresh fake ports.
func countingDial() (DialFunc, *int) {
	calls := new(int)
	return func() (Port, error) {
		*calls++
		return newFakePort(), nil
	}, calls
}

func TestGetOrCreate_Idempotent(t *testing.T) {
	m := NewManager()
	dial, calls := countingDial()

	first, err := m.GetOrCreate("s1", "t1", dial)
	require.NoError(t, err)

	// Second call carries a different dial func entirely; it must be
	// ignored and the original instance returned.
	second, err := m.GetOrCreate("s1", "other-tab", func() (Port, error) {
		return nil, errors.New("must not be dialed")
	})
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, 1, *calls)
}

func TestGetOrCreate_DialFailurePropagates(t *testing.T) {
	m := NewManager()

	_, err := m.GetOrCreate("s1", "t1", func() (Port, error) {
		return nil, errors.New("chromedriver exited")
	})
	require.Error(t, err)
	assert.False(t, m.HasSessions(), "failed dial must not register a session")
}

func TestGetOrCreate_MaxSessions(t *testing.T) {
	m := NewManager()
	m.SetMaxSessions(2)
	dial, _ := countingDial()

	_, err := m.GetOrCreate("s1", "t1", dial)
	require.NoError(t, err)
	_, err = m.GetOrCreate("s2", "t1", dial)
	require.NoError(t, err)

	_, err = m.GetOrCreate("s3", "t1", dial)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "maximum number of sessions")

	// Existing names still resolve past the cap.
	_, err = m.GetOrCreate("s1", "t1", dial)
	require.NoError(t, err)
}

func TestGetAndRemove(t *testing.T) {
	m := NewManager()
	dial, _ := countingDial()

	_, ok := m.Get("s1")
	assert.False(t, ok)

	created, err := m.GetOrCreate("s1", "t1", dial)
	require.NoError(t, err)

	got, ok := m.Get("s1")
	require.True(t, ok)
	assert.Same(t, created, got)

	assert.True(t, m.Remove("s1"))
	assert.Equal(t, StateClosed, created.State())
	_, ok = m.Get("s1")
	assert.False(t, ok)

	assert.False(t, m.Remove("s1"), "second remove is a no-op")
}

func TestManagerNewTab(t *testing.T) {
	m := NewManager()
	dial, _ := countingDial()

	assert.False(t, m.NewTab("missing", "t2"))

	session, err := m.GetOrCreate("s1", "t1", dial)
	require.NoError(t, err)

	assert.True(t, m.NewTab("s1", "t2"))
	assert.False(t, m.NewTab("s1", "t2"), "duplicate tab name")
	assert.Len(t, session.Tabs(), 2)
}

func TestListAndHasSessions(t *testing.T) {
	m := NewManager()
	dial, _ := countingDial()

	assert.False(t, m.HasSessions())
	assert.Empty(t, m.List())

	_, err := m.GetOrCreate("s1", "main", dial)
	require.NoError(t, err)

	require.True(t, m.HasSessions())
	infos := m.List()
	require.Len(t, infos, 1)
	assert.Equal(t, "s1", infos[0].Name)
	assert.Equal(t, StateOpen, infos[0].State)
	assert.Equal(t, 1, infos[0].Tabs)
	assert.Equal(t, "main", infos[0].ActiveTab)
}

func TestManagerCloseAll(t *testing.T) {
	m := NewManager()
	dial, _ := countingDial()

	s1, err := m.GetOrCreate("s1", "t1", dial)
	require.NoError(t, err)
	s2, err := m.GetOrCreate("s2", "t1", dial)
	require.NoError(t, err)

	m.CloseAll()
	assert.False(t, m.HasSessions())
	assert.Equal(t, StateClosed, s1.State())
	assert.Equal(t, StateClosed, s2.State())
}

func TestGetOrCreate_ConcurrentSameName(t *testing.T) {
	m := NewManager()
	dial, calls := countingDial()

	const workers = 16
	sessions := make([]*Session, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s, err := m.GetOrCreate("shared", "t1", dial)
			require.NoError(t, err)
			sessions[i] = s
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, *calls, "one dial for one name")
	for i := 1; i < workers; i++ {
		assert.Same(t, sessions[0], sessions[i])
	}
}

func TestGetOrCreate_ConcurrentDistinctNames(t *testing.T) {
	m := NewManager()
	m.SetMaxSessions(64)
	dial, _ := countingDial()

	const workers = 16
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := m.GetOrCreate(fmt.Sprintf("s%d", i), "t1", dial)
			require.NoError(t, err)
		}(i)
	}
	wg.Wait()

	assert.Len(t, m.List(), workers)
}
