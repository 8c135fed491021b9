package driver

// Kind selects the family of driver process to connect to.
type Kind string

const (
	// KindChrome drives a Chromium-family browser through a local
	// chromedriver binary.
	KindChrome Kind = "chrome"

	// KindFirefox drives a Firefox-family browser through a local
	// geckodriver binary.
	KindFirefox Kind = "firefox"

	// KindRemote attaches to an already-running WebDriver endpoint, such
	// as a Selenium server or grid.
	KindRemote Kind = "remote"
)

// Default ports the local driver services listen on.
const (
	defaultChromeDriverPort = 9515
	defaultGeckoDriverPort  = 4444
)

// Connection describes how to reach a driver process. Exactly one of
// DriverPath (local kinds) or RemoteURL (remote kind) is meaningful; each
// constructor validates the field it needs before attempting a launch.
type Connection struct {
	// Kind is the browser kind, matched case-insensitively.
	Kind Kind `yaml:"kind"`

	// DriverPath is the path to the local driver binary (chromedriver or
	// geckodriver).
	DriverPath string `yaml:"driverPath"`

	// RemoteURL is the WebDriver endpoint for KindRemote.
	RemoteURL string `yaml:"remoteUrl"`

	// ServicePort overrides the port the local driver service listens on.
	// Zero selects the kind's default.
	ServicePort int `yaml:"servicePort"`
}
