package driver

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/tebeka/selenium"

	"github.com/Kasrastar/SeleniumOrchestrator/pkg/browser"
	"github.com/Kasrastar/SeleniumOrchestrator/pkg/retry"
)

// seleniumPort adapts a tebeka/selenium WebDriver to the browser.Port
// contract. It owns the local driver service, when one was started.
type seleniumPort struct {
	wd      selenium.WebDriver
	service *selenium.Service
}

var _ browser.Port = (*seleniumPort)(nil)

func newSeleniumPort(wd selenium.WebDriver, service *selenium.Service) *seleniumPort {
	return &seleniumPort{wd: wd, service: service}
}

func (p *seleniumPort) Navigate(url string) error {
	return translate(p.wd.Get(url))
}

func (p *seleniumPort) Refresh() error {
	return translate(p.wd.Refresh())
}

func (p *seleniumPort) CurrentURL() (string, error) {
	url, err := p.wd.CurrentURL()
	return url, translate(err)
}

func (p *seleniumPort) Title() (string, error) {
	title, err := p.wd.Title()
	return title, translate(err)
}

func (p *seleniumPort) CurrentWindow() (string, error) {
	handle, err := p.wd.CurrentWindowHandle()
	return handle, translate(err)
}

// NewWindow opens a window via script: the wire protocol client exposes no
// dedicated new-window command. The fresh handle is found by diffing the
// handle set, which can lag the script by a beat, hence the short retry.
func (p *seleniumPort) NewWindow() (string, error) {
	before, err := p.wd.WindowHandles()
	if err != nil {
		return "", translate(err)
	}
	known := make(map[string]bool, len(before))
	for _, h := range before {
		known[h] = true
	}

	if _, err := p.wd.ExecuteScript("window.open('about:blank', '_blank');", nil); err != nil {
		return "", translate(err)
	}

	var handle string
	err = retry.Do(context.Background(), retry.Policy{MaxAttempts: 20, Delay: 50 * time.Millisecond}, func() error {
		after, err := p.wd.WindowHandles()
		if err != nil {
			return retry.Permanent(translate(err))
		}
		for _, h := range after {
			if !known[h] {
				handle = h
				return nil
			}
		}
		return errors.New("new window handle not yet reported")
	})
	if err != nil {
		return "", fmt.Errorf("open new window: %w", err)
	}

	if err := p.wd.SwitchWindow(handle); err != nil {
		return "", translate(err)
	}
	return handle, nil
}

func (p *seleniumPort) SwitchWindow(handle string) error {
	return translate(p.wd.SwitchWindow(handle))
}

func (p *seleniumPort) CloseWindow(handle string) error {
	return translate(p.wd.CloseWindow(handle))
}

func (p *seleniumPort) ExecuteScript(script string, args []interface{}) (interface{}, error) {
	result, err := p.wd.ExecuteScript(script, args)
	return result, translate(err)
}

// cdpCommander is the optional DevTools extension some WebDriver
// implementations provide.
type cdpCommander interface {
	ExecuteChromeDPCommand(cmd string, params interface{}) (interface{}, error)
}

func (p *seleniumPort) ExecuteCDP(cmd string, params map[string]interface{}) (interface{}, error) {
	cdp, ok := p.wd.(cdpCommander)
	if !ok {
		return nil, &ConfigError{Reason: "driver does not support DevTools commands"}
	}
	result, err := cdp.ExecuteChromeDPCommand(cmd, params)
	return result, translate(err)
}

func (p *seleniumPort) FindElement(loc browser.Locator) (browser.Element, error) {
	el, err := p.wd.FindElement(string(loc.Strategy), loc.Value)
	if err != nil {
		return nil, translate(err)
	}
	return &seleniumElement{el: el}, nil
}

func (p *seleniumPort) FindElements(loc browser.Locator) ([]browser.Element, error) {
	els, err := p.wd.FindElements(string(loc.Strategy), loc.Value)
	if err != nil {
		return nil, translate(err)
	}
	return wrapElements(els), nil
}

// Quit tears down the WebDriver session and stops the local driver
// service if this port started one.
func (p *seleniumPort) Quit() error {
	err := p.wd.Quit()
	if p.service != nil {
		err = errors.Join(err, p.service.Stop())
	}
	return translate(err)
}

// seleniumElement adapts a selenium.WebElement to browser.Element.
type seleniumElement struct {
	el selenium.WebElement
}

var _ browser.Element = (*seleniumElement)(nil)

func (e *seleniumElement) Click() error            { return translate(e.el.Click()) }
func (e *seleniumElement) SendKeys(text string) error { return translate(e.el.SendKeys(text)) }
func (e *seleniumElement) Clear() error            { return translate(e.el.Clear()) }

func (e *seleniumElement) Text() (string, error) {
	text, err := e.el.Text()
	return text, translate(err)
}

func (e *seleniumElement) TagName() (string, error) {
	tag, err := e.el.TagName()
	return tag, translate(err)
}

func (e *seleniumElement) Attribute(name string) (string, error) {
	value, err := e.el.GetAttribute(name)
	return value, translate(err)
}

func (e *seleniumElement) IsDisplayed() (bool, error) {
	shown, err := e.el.IsDisplayed()
	return shown, translate(err)
}

func (e *seleniumElement) IsEnabled() (bool, error) {
	enabled, err := e.el.IsEnabled()
	return enabled, translate(err)
}

func (e *seleniumElement) IsSelected() (bool, error) {
	selected, err := e.el.IsSelected()
	return selected, translate(err)
}

func (e *seleniumElement) FindElement(loc browser.Locator) (browser.Element, error) {
	el, err := e.el.FindElement(string(loc.Strategy), loc.Value)
	if err != nil {
		return nil, translate(err)
	}
	return &seleniumElement{el: el}, nil
}

func (e *seleniumElement) FindElements(loc browser.Locator) ([]browser.Element, error) {
	els, err := e.el.FindElements(string(loc.Strategy), loc.Value)
	if err != nil {
		return nil, translate(err)
	}
	return wrapElements(els), nil
}

func (e *seleniumElement) ScrollIntoView() error {
	// LocationInView scrolls the element into the viewport as a side effect.
	_, err := e.el.LocationInView()
	return translate(err)
}

func wrapElements(els []selenium.WebElement) []browser.Element {
	out := make([]browser.Element, 0, len(els))
	for _, el := range els {
		out = append(out, &seleniumElement{el: el})
	}
	return out
}

// translate maps wire-protocol failures onto the sentinels the core keys
// its behavior on. The WebDriver spec fixes these error strings, so
// substring matching is stable across driver implementations.
func translate(err error) error {
	if err == nil {
		return nil
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "stale element reference"):
		return fmt.Errorf("%w: %v", browser.ErrStaleElement, err)
	case strings.Contains(msg, "no such element"):
		return fmt.Errorf("%w: %v", browser.ErrElementNotFound, err)
	case strings.Contains(msg, "invalid session id"), strings.Contains(msg, "chrome not reachable"):
		return fmt.Errorf("%w: %v", browser.ErrSessionClosed, err)
	default:
		return err
	}
}
