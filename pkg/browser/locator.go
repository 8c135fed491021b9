package browser

// Strategy identifies how a locator's value should be interpreted when
// searching page content. The values match the WebDriver "using" strings
// so adapters can pass them through unchanged.
type Strategy string

const (
	StrategyID              Strategy = "id"
	StrategyXPath           Strategy = "xpath"
	StrategyLinkText        Strategy = "link text"
	StrategyPartialLinkText Strategy = "partial link text"
	StrategyName            Strategy = "name"
	StrategyTagName         Strategy = "tag name"
	StrategyClassName       Strategy = "class name"
	StrategyCSSSelector     Strategy = "css selector"
)

var validStrategies = map[Strategy]bool{
	StrategyID:              true,
	StrategyXPath:           true,
	StrategyLinkText:        true,
	StrategyPartialLinkText: true,
	StrategyName:            true,
	StrategyTagName:         true,
	StrategyClassName:       true,
	StrategyCSSSelector:     true,
}

// Locator describes how to find an element: a strategy plus the value
// interpreted under that strategy. Construct locators through NewLocator
// or the By* helpers; the zero value is not valid.
type Locator struct {
	Strategy Strategy
	Value    string
}

// NewLocator builds a Locator, rejecting any strategy outside the
// WebDriver allow-list at construction time.
func NewLocator(strategy Strategy, value string) (Locator, error) {
	if !validStrategies[strategy] {
		return Locator{}, &InvalidStrategyError{Strategy: string(strategy)}
	}
	return Locator{Strategy: strategy, Value: value}, nil
}

// ByID locates by element id attribute.
func ByID(value string) Locator { return Locator{Strategy: StrategyID, Value: value} }

// ByXPath locates by XPath expression.
func ByXPath(value string) Locator { return Locator{Strategy: StrategyXPath, Value: value} }

// ByLinkText locates anchor elements by their exact visible text.
func ByLinkText(value string) Locator { return Locator{Strategy: StrategyLinkText, Value: value} }

// ByPartialLinkText locates anchor elements by a substring of their visible text.
func ByPartialLinkText(value string) Locator {
	return Locator{Strategy: StrategyPartialLinkText, Value: value}
}

// ByName locates by element name attribute.
func ByName(value string) Locator { return Locator{Strategy: StrategyName, Value: value} }

// ByTagName locates by tag name.
func ByTagName(value string) Locator { return Locator{Strategy: StrategyTagName, Value: value} }

// ByClassName locates by a single class name.
func ByClassName(value string) Locator { return Locator{Strategy: StrategyClassName, Value: value} }

// ByCSSSelector locates by CSS selector.
func ByCSSSelector(value string) Locator {
	return Locator{Strategy: StrategyCSSSelector, Value: value}
}

func (l Locator) String() string {
	return string(l.Strategy) + "=" + l.Value
}
