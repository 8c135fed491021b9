package browser

// Port is the narrow capability contract the orchestration layer depends
// on: navigation, window control, script execution and element queries.
// It is implemented once per driver technology (see pkg/driver for the
// Selenium WebDriver adapter) and faked in tests.
//
// Implementations must translate their technology-specific failures into
// the sentinel errors in this package (ErrElementNotFound, ErrStaleElement)
// before returning them; raw driver errors never cross this boundary
// unwrapped.
type Port interface {
	// Navigate loads the given URL in the currently focused window.
	Navigate(url string) error

	// Refresh reloads the current page.
	Refresh() error

	// CurrentURL returns the URL of the currently focused window.
	CurrentURL() (string, error)

	// Title returns the title of the currently focused window.
	Title() (string, error)

	// CurrentWindow returns the driver-assigned handle of the focused window.
	CurrentWindow() (string, error)

	// NewWindow opens a new window, focuses it and returns its handle.
	NewWindow() (string, error)

	// SwitchWindow moves focus to the window with the given handle.
	SwitchWindow(handle string) error

	// CloseWindow closes the window with the given handle. Focus afterwards
	// is undefined; callers must switch explicitly.
	CloseWindow(handle string) error

	// ExecuteScript runs a script in the focused window and returns its result.
	ExecuteScript(script string, args []interface{}) (interface{}, error)

	// ExecuteCDP issues a Chrome DevTools Protocol command, for drivers
	// that support it.
	ExecuteCDP(cmd string, params map[string]interface{}) (interface{}, error)

	// FindElement returns the first element matching the locator in the
	// focused window, or ErrElementNotFound.
	FindElement(loc Locator) (Element, error)

	// FindElements returns all elements matching the locator in the
	// focused window. An empty result is not an error.
	FindElements(loc Locator) ([]Element, error)

	// Quit tears down the underlying connection and browser process.
	Quit() error
}

// Element is a live reference to an on-page element. References can go
// stale when the page re-renders; operations on a stale reference return
// an error satisfying errors.Is(err, ErrStaleElement).
type Element interface {
	Click() error
	SendKeys(text string) error
	Clear() error
	Text() (string, error)
	TagName() (string, error)
	Attribute(name string) (string, error)
	IsDisplayed() (bool, error)
	IsEnabled() (bool, error)
	IsSelected() (bool, error)

	// FindElement searches the element's descendants only.
	FindElement(loc Locator) (Element, error)

	// FindElements searches the element's descendants only.
	FindElements(loc Locator) ([]Element, error)

	// ScrollIntoView brings the element into the viewport.
	ScrollIntoView() error
}
