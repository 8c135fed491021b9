// Package browser manages named browser sessions, their tabs, and bounded
// element resolution on top of a narrow driver port.
//
// The package sits between workflow code and a WebDriver-style automation
// driver. It does not speak the wire protocol itself; that is the job of a
// Port implementation such as the one in pkg/driver.
//
// # Architecture
//
// The package is built around four core pieces:
//
//  1. Port / Element: the capability contract a driver adapter implements
//  2. Session: one driver connection plus its named tabs, serialized by a mutex
//  3. Manager: keyed, idempotent registry of sessions
//  4. Resolver: polling element resolution under a closed wait-condition taxonomy
//
// # Session Lifecycle
//
// Sessions move through three states:
//
//  1. Uninitialized: the connection is live but no tab is registered
//  2. Open: Start registered the first tab; tab and element operations work
//  3. Closed: terminal; reached by CloseAll or by closing the last tab
//
// While a session is open, exactly one tab is active whenever the tab set
// is non-empty. Tab operations on a closed session return a neutral false
// rather than an error.
//
// # Waiting
//
// Element resolution polls the document until a wait condition holds or a
// deadline passes. Timeouts are reported through an ok result, not an
// error, so callers decide whether absence is a failure. Scoped searches
// (with an explicit root element) are immediate single queries with no
// polling. Wait conditions form a closed set; an unknown condition name is
// rejected at construction, never mapped to a default predicate.
//
// # Example Usage
//
//	mgr := browser.NewManager()
//	session, err := mgr.GetOrCreate("checkout", "main", func() (browser.Port, error) {
//	    return driver.Connect(driver.NewOptions().Headless(), conn)
//	})
//
//	err = session.Navigate("https://example.com/cart")
//	el, ok, err := session.Find(ctx, browser.ByID("submit"),
//	    browser.Clickable(), 10*time.Second, nil)
//
//	session.NewTab("invoice")
//	session.SwitchTo("main")
//
//	mgr.Remove("checkout")
package browser
