package driver

import (
	"fmt"

	"github.com/tebeka/selenium"
	"github.com/tebeka/selenium/chrome"
	"github.com/tebeka/selenium/firefox"
)

// Options is a fluent builder for browser launch flags. It accumulates
// intent browser-agnostically and is rendered into kind-specific
// capabilities at connect time.
type Options struct {
	headless    bool
	width       int
	height      int
	incognito   bool
	disableGPU  bool
	userAgent   string
	userDataDir string
	browserPath string
	extraArgs   []string
}

// NewOptions returns an empty option set.
func NewOptions() *Options {
	return &Options{}
}

// Headless runs the browser without a visible window.
func (o *Options) Headless() *Options {
	o.headless = true
	return o
}

// WindowSize sets the initial window dimensions.
func (o *Options) WindowSize(width, height int) *Options {
	o.width = width
	o.height = height
	return o
}

// Incognito enables private browsing mode.
func (o *Options) Incognito() *Options {
	o.incognito = true
	return o
}

// DisableGPU turns off GPU hardware acceleration.
func (o *Options) DisableGPU() *Options {
	o.disableGPU = true
	return o
}

// UserAgent overrides the browser's user-agent string.
func (o *Options) UserAgent(ua string) *Options {
	o.userAgent = ua
	return o
}

// UserDataDir sets the profile directory for Chromium-family browsers.
func (o *Options) UserDataDir(path string) *Options {
	o.userDataDir = path
	return o
}

// BrowserPath points at a specific browser executable instead of the
// system default.
func (o *Options) BrowserPath(path string) *Options {
	o.browserPath = path
	return o
}

// Arg appends a raw command-line argument.
func (o *Options) Arg(arg string) *Options {
	o.extraArgs = append(o.extraArgs, arg)
	return o
}

// chromeArgs renders the options as Chromium command-line switches.
func (o *Options) chromeArgs() []string {
	var args []string
	if o.headless {
		args = append(args, "--headless=new")
	}
	if o.width > 0 && o.height > 0 {
		args = append(args, fmt.Sprintf("--window-size=%d,%d", o.width, o.height))
	}
	if o.incognito {
		args = append(args, "--incognito")
	}
	if o.disableGPU {
		args = append(args, "--disable-gpu")
	}
	if o.userAgent != "" {
		args = append(args, "--user-agent="+o.userAgent)
	}
	if o.userDataDir != "" {
		args = append(args, "--user-data-dir="+o.userDataDir)
	}
	return append(args, o.extraArgs...)
}

// firefoxArgs renders the options as Firefox command-line switches.
func (o *Options) firefoxArgs() []string {
	var args []string
	if o.headless {
		args = append(args, "-headless")
	}
	if o.width > 0 {
		args = append(args, "-width", fmt.Sprint(o.width))
	}
	if o.height > 0 {
		args = append(args, "-height", fmt.Sprint(o.height))
	}
	if o.incognito {
		args = append(args, "-private")
	}
	return append(args, o.extraArgs...)
}

// capabilities renders the option set for the given kind. The remote kind
// gets Chromium-style capabilities, matching what a Selenium grid node
// running Chrome expects.
func (o *Options) capabilities(kind Kind) selenium.Capabilities {
	switch kind {
	case KindFirefox:
		caps := selenium.Capabilities{"browserName": "firefox"}
		ff := firefox.Capabilities{Args: o.firefoxArgs(), Binary: o.browserPath}
		if o.userAgent != "" {
			ff.Prefs = map[string]interface{}{"general.useragent.override": o.userAgent}
		}
		caps.AddFirefox(ff)
		return caps
	default:
		caps := selenium.Capabilities{"browserName": "chrome"}
		caps.AddChrome(chrome.Capabilities{Args: o.chromeArgs(), Path: o.browserPath})
		return caps
	}
}
