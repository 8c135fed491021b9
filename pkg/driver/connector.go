package driver

import (
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"

	"github.com/tebeka/selenium"

	"github.com/Kasrastar/SeleniumOrchestrator/pkg/browser"
)

// creator builds a live port for one browser kind.
type creator func(opts *Options, conn Connection) (browser.Port, error)

// Dispatch is a fixed table; unknown kinds fail before any side effect.
var creators = map[Kind]creator{
	KindChrome:  newChromePort,
	KindFirefox: newFirefoxPort,
	KindRemote:  newRemotePort,
}

// Connect turns a connection descriptor and option set into a live session
// port. The kind is matched case-insensitively. Launch failures are
// reported once; retrying is a caller decision (see pkg/retry).
func Connect(opts *Options, conn Connection) (browser.Port, error) {
	if opts == nil {
		opts = NewOptions()
	}
	kind := Kind(strings.ToLower(string(conn.Kind)))
	create, ok := creators[kind]
	if !ok {
		return nil, &UnsupportedKindError{Kind: string(conn.Kind)}
	}
	return create(opts, conn)
}

// newChromePort starts a local chromedriver service and negotiates a
// session against it.
func newChromePort(opts *Options, conn Connection) (browser.Port, error) {
	if err := checkDriverBinary(conn.DriverPath); err != nil {
		return nil, err
	}
	port := conn.ServicePort
	if port == 0 {
		port = defaultChromeDriverPort
	}

	service, err := selenium.NewChromeDriverService(conn.DriverPath, port, selenium.Output(io.Discard))
	if err != nil {
		return nil, &InitError{Kind: string(KindChrome), Err: err}
	}

	wd, err := selenium.NewRemote(opts.capabilities(KindChrome), fmt.Sprintf("http://localhost:%d/wd/hub", port))
	if err != nil {
		_ = service.Stop()
		return nil, &InitError{Kind: string(KindChrome), Err: err}
	}
	return newSeleniumPort(wd, service), nil
}

// newFirefoxPort starts a local geckodriver service and negotiates a
// session against it. geckodriver serves the WebDriver protocol at the
// root path, not /wd/hub.
func newFirefoxPort(opts *Options, conn Connection) (browser.Port, error) {
	if err := checkDriverBinary(conn.DriverPath); err != nil {
		return nil, err
	}
	port := conn.ServicePort
	if port == 0 {
		port = defaultGeckoDriverPort
	}

	service, err := selenium.NewGeckoDriverService(conn.DriverPath, port, selenium.Output(io.Discard))
	if err != nil {
		return nil, &InitError{Kind: string(KindFirefox), Err: err}
	}

	wd, err := selenium.NewRemote(opts.capabilities(KindFirefox), fmt.Sprintf("http://localhost:%d", port))
	if err != nil {
		_ = service.Stop()
		return nil, &InitError{Kind: string(KindFirefox), Err: err}
	}
	return newSeleniumPort(wd, service), nil
}

// newRemotePort attaches to an already-running WebDriver endpoint.
func newRemotePort(opts *Options, conn Connection) (browser.Port, error) {
	if conn.RemoteURL == "" {
		return nil, &ConfigError{Reason: "remote connection requires a non-empty endpoint URL"}
	}
	u, err := url.Parse(conn.RemoteURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, &ConfigError{Reason: fmt.Sprintf("invalid remote endpoint URL: %q", conn.RemoteURL)}
	}

	wd, err := selenium.NewRemote(opts.capabilities(KindRemote), conn.RemoteURL)
	if err != nil {
		return nil, &InitError{Kind: string(KindRemote), Err: err}
	}
	return newSeleniumPort(wd, nil), nil
}

// checkDriverBinary fails fast on descriptors that could only produce an
// opaque low-level launch error later.
func checkDriverBinary(path string) error {
	if path == "" {
		return &ConfigError{Reason: "local connection requires a driver binary path"}
	}
	if _, err := os.Stat(path); err != nil {
		return &NotFoundError{Path: path}
	}
	return nil
}
