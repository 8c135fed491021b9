// Package driver connects the orchestration core to real browsers over
// the WebDriver wire protocol.
//
// Connect dispatches on a browser kind through a fixed table: Chromium
// family (local chromedriver), Firefox family (local geckodriver), or an
// already-running remote WebDriver endpoint. Each constructor validates
// its connection descriptor before launching anything, so configuration
// mistakes surface as typed errors rather than opaque transport failures.
//
// The returned value implements browser.Port. This package is the only
// one that imports the Selenium client; its errors are translated into
// the browser package's sentinels at the boundary.
package driver
