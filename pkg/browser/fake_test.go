package browser

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// fakePort is an in-memory Port used by the state-machine, resolver and
// registry tests. Windows are fabricated handles; elements are registered
// per locator.
type fakePort struct {
	mu         sync.Mutex
	windows    []string
	current    string
	nextWindow int
	quitCalls  int

	title string
	url   string

	elements map[string][]*fakeElement

	// onFind runs before every document-level element query, letting
	// tests mutate state mid-poll.
	onFind func()

	findErr      error
	newWindowErr error
	switchErr    error

	navigated []string
	switched  []string
	cdpCmds   []string
}

func newFakePort() *fakePort {
	return &fakePort{
		windows:    []string{"w1"},
		current:    "w1",
		nextWindow: 1,
		elements:   make(map[string][]*fakeElement),
	}
}

func (p *fakePort) addElement(loc Locator, el *fakeElement) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.elements[loc.String()] = append(p.elements[loc.String()], el)
}

func (p *fakePort) removeElements(loc Locator) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.elements, loc.String())
}

func (p *fakePort) Navigate(url string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.navigated = append(p.navigated, url)
	p.url = url
	return nil
}

func (p *fakePort) Refresh() error { return nil }

func (p *fakePort) CurrentURL() (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.url, nil
}

func (p *fakePort) Title() (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.title, nil
}

func (p *fakePort) CurrentWindow() (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current, nil
}

func (p *fakePort) NewWindow() (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.newWindowErr != nil {
		return "", p.newWindowErr
	}
	p.nextWindow++
	handle := fmt.Sprintf("w%d", p.nextWindow)
	p.windows = append(p.windows, handle)
	p.current = handle
	return handle, nil
}

func (p *fakePort) SwitchWindow(handle string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.switchErr != nil {
		return p.switchErr
	}
	for _, w := range p.windows {
		if w == handle {
			p.current = handle
			p.switched = append(p.switched, handle)
			return nil
		}
	}
	return fmt.Errorf("no such window: %s", handle)
}

func (p *fakePort) CloseWindow(handle string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	for i, w := range p.windows {
		if w == handle {
			p.windows = append(p.windows[:i], p.windows[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("no such window: %s", handle)
}

func (p *fakePort) ExecuteScript(script string, args []interface{}) (interface{}, error) {
	return nil, nil
}

func (p *fakePort) ExecuteCDP(cmd string, params map[string]interface{}) (interface{}, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cdpCmds = append(p.cdpCmds, cmd)
	return nil, nil
}

func (p *fakePort) FindElement(loc Locator) (Element, error) {
	if p.onFind != nil {
		p.onFind()
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.findErr != nil {
		return nil, p.findErr
	}
	els := p.elements[loc.String()]
	if len(els) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrElementNotFound, loc)
	}
	return els[0], nil
}

func (p *fakePort) FindElements(loc Locator) ([]Element, error) {
	if p.onFind != nil {
		p.onFind()
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.findErr != nil {
		return nil, p.findErr
	}
	out := make([]Element, 0, len(p.elements[loc.String()]))
	for _, el := range p.elements[loc.String()] {
		out = append(out, el)
	}
	return out, nil
}

func (p *fakePort) Quit() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.quitCalls++
	return nil
}

// fakeElement is an in-memory Element. staleFor makes the first N
// interactions fail with ErrStaleElement, simulating a re-render.
type fakeElement struct {
	mu        sync.Mutex
	displayed bool
	enabled   bool
	selected  bool
	text      string
	tag       string
	attrs     map[string]string
	stale     bool
	staleFor  int

	clicks    int
	typed     []string
	cleared   int
	scrolls   int
	scrollErr error

	children map[string][]*fakeElement
}

func visibleElement() *fakeElement {
	return &fakeElement{displayed: true, enabled: true}
}

func (e *fakeElement) addChild(loc Locator, child *fakeElement) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.children == nil {
		e.children = make(map[string][]*fakeElement)
	}
	e.children[loc.String()] = append(e.children[loc.String()], child)
}

// guard consumes one staleFor tick or reports permanent staleness.
func (e *fakeElement) guard() error {
	if e.stale {
		return fmt.Errorf("%w: detached", ErrStaleElement)
	}
	if e.staleFor > 0 {
		e.staleFor--
		return fmt.Errorf("%w: re-rendering", ErrStaleElement)
	}
	return nil
}

func (e *fakeElement) Click() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.guard(); err != nil {
		return err
	}
	e.clicks++
	return nil
}

func (e *fakeElement) SendKeys(text string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.guard(); err != nil {
		return err
	}
	e.typed = append(e.typed, text)
	return nil
}

func (e *fakeElement) Clear() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.guard(); err != nil {
		return err
	}
	e.cleared++
	return nil
}

func (e *fakeElement) Text() (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.guard(); err != nil {
		return "", err
	}
	return e.text, nil
}

func (e *fakeElement) TagName() (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.guard(); err != nil {
		return "", err
	}
	return e.tag, nil
}

func (e *fakeElement) Attribute(name string) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.guard(); err != nil {
		return "", err
	}
	return e.attrs[name], nil
}

func (e *fakeElement) IsDisplayed() (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.guard(); err != nil {
		return false, err
	}
	return e.displayed, nil
}

func (e *fakeElement) IsEnabled() (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.guard(); err != nil {
		return false, err
	}
	return e.enabled, nil
}

func (e *fakeElement) IsSelected() (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.guard(); err != nil {
		return false, err
	}
	return e.selected, nil
}

func (e *fakeElement) FindElement(loc Locator) (Element, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.guard(); err != nil {
		return nil, err
	}
	els := e.children[loc.String()]
	if len(els) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrElementNotFound, loc)
	}
	return els[0], nil
}

func (e *fakeElement) FindElements(loc Locator) ([]Element, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.guard(); err != nil {
		return nil, err
	}
	out := make([]Element, 0, len(e.children[loc.String()]))
	for _, el := range e.children[loc.String()] {
		out = append(out, el)
	}
	return out, nil
}

func (e *fakeElement) ScrollIntoView() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.scrollErr != nil {
		return e.scrollErr
	}
	e.scrolls++
	return nil
}

// startedSession builds an open session backed by a fresh fake port.
func startedSession(name, tab string) (*Session, *fakePort) {
	port := newFakePort()
	s := NewSession(name, port)
	if err := s.Start(tab); err != nil {
		panic("start fake session: " + err.Error())
	}
	s.SetPollInterval(5 * time.Millisecond) // keep polling tests fast
	return s, port
}

// tabNames renders the session's tabs for assertion messages.
func tabNames(s *Session) string {
	var parts []string
	for _, t := range s.Tabs() {
		parts = append(parts, fmt.Sprintf("%s=%s", t.Name, t.Status))
	}
	return strings.Join(parts, ", ")
}
