package browser

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ConditionKind enumerates the wait predicates the resolver understands.
// The set is closed: predicate dispatch is an exhaustive switch and an
// unknown kind is an error, never a silent fallback.
type ConditionKind int

const (
	condUnknown ConditionKind = iota
	CondPresence
	CondVisible
	CondClickable
	CondInvisible
	CondStale
	CondTextPresent
	CondTextInValue
	CondTitleIs
	CondTitleContains
	CondURLIs
	CondURLContains
	CondURLMatches
	CondSelected
)

var conditionNames = map[ConditionKind]string{
	CondPresence:      "presence_of_element_located",
	CondVisible:       "visibility_of_element_located",
	CondClickable:     "element_to_be_clickable",
	CondInvisible:     "invisibility_of_element_located",
	CondStale:         "staleness_of",
	CondTextPresent:   "text_to_be_present_in_element",
	CondTextInValue:   "text_to_be_present_in_element_value",
	CondTitleIs:       "title_is",
	CondTitleContains: "title_contains",
	CondURLIs:         "url_to_be",
	CondURLContains:   "url_contains",
	CondURLMatches:    "url_matches",
	CondSelected:      "element_located_selection_state_to_be",
}

func (k ConditionKind) String() string {
	if name, ok := conditionNames[k]; ok {
		return name
	}
	return fmt.Sprintf("condition(%d)", int(k))
}

// Condition is a named predicate evaluated by the resolver against a
// locator, the page, or a previously resolved element. Conditions are
// immutable values built only through the constructors below, which keeps
// parameterized kinds from being constructed without their parameters.
type Condition struct {
	kind     ConditionKind
	text     string
	pattern  *regexp.Regexp
	element  Element
	selected bool
}

// Presence holds when the locator matches at least one element.
func Presence() Condition { return Condition{kind: CondPresence} }

// Visible holds when the matched element is displayed.
func Visible() Condition { return Condition{kind: CondVisible} }

// Clickable holds when the matched element is displayed and enabled.
func Clickable() Condition { return Condition{kind: CondClickable} }

// Invisible holds when the locator matches nothing or the matched element
// is not displayed.
func Invisible() Condition { return Condition{kind: CondInvisible} }

// Stale holds once the given element reference is detached from the
// document. The locator argument to Resolve is ignored for this kind.
func Stale(el Element) Condition { return Condition{kind: CondStale, element: el} }

// TextPresent holds when the matched element's visible text contains text.
func TextPresent(text string) Condition { return Condition{kind: CondTextPresent, text: text} }

// TextInValue holds when the matched element's value attribute contains text.
func TextInValue(text string) Condition { return Condition{kind: CondTextInValue, text: text} }

// TitleIs holds when the page title equals title exactly.
func TitleIs(title string) Condition { return Condition{kind: CondTitleIs, text: title} }

// TitleContains holds when the page title contains title.
func TitleContains(title string) Condition { return Condition{kind: CondTitleContains, text: title} }

// URLIs holds when the page URL equals url exactly.
func URLIs(url string) Condition { return Condition{kind: CondURLIs, text: url} }

// URLContains holds when the page URL contains url.
func URLContains(url string) Condition { return Condition{kind: CondURLContains, text: url} }

// URLMatches holds when the page URL matches the pattern.
func URLMatches(pattern *regexp.Regexp) Condition {
	return Condition{kind: CondURLMatches, pattern: pattern}
}

// Selected holds when the matched element's selection state equals want.
func Selected(want bool) Condition { return Condition{kind: CondSelected, selected: want} }

// Kind returns the condition's kind.
func (c Condition) Kind() ConditionKind { return c.kind }

func (c Condition) String() string { return c.kind.String() }

// ParseCondition maps a condition name to its Condition value. Only
// parameterless kinds can be parsed; kinds that carry a parameter must be
// built through their constructors. Unknown names fail, there is no
// default predicate.
func ParseCondition(name string) (Condition, error) {
	switch name {
	case "presence_of_element_located":
		return Presence(), nil
	case "visibility_of_element_located", "visibility_of":
		return Visible(), nil
	case "element_to_be_clickable":
		return Clickable(), nil
	case "invisibility_of_element_located", "invisibility_of_element":
		return Invisible(), nil
	case "staleness_of", "text_to_be_present_in_element",
		"text_to_be_present_in_element_value", "title_is", "title_contains",
		"url_to_be", "url_contains", "url_matches",
		"element_located_selection_state_to_be":
		return Condition{}, fmt.Errorf("wait condition %q requires a parameter; use its constructor", name)
	default:
		return Condition{}, &InvalidConditionError{Name: name}
	}
}

// evaluate runs one poll iteration of the condition. It returns the bound
// element (nil for page-level conditions), whether the condition held, and
// any non-transient failure. A stale reference surfaces as an error
// wrapping ErrStaleElement so the resolver can retry the iteration.
func evaluate(port Port, loc Locator, c Condition) (Element, bool, error) {
	switch c.kind {
	case CondPresence:
		el, err := findOne(port, loc)
		return el, el != nil, err

	case CondVisible:
		el, err := findOne(port, loc)
		if el == nil || err != nil {
			return nil, false, err
		}
		shown, err := el.IsDisplayed()
		if err != nil {
			return nil, false, err
		}
		return el, shown, nil

	case CondClickable:
		el, err := findOne(port, loc)
		if el == nil || err != nil {
			return nil, false, err
		}
		shown, err := el.IsDisplayed()
		if err != nil {
			return nil, false, err
		}
		enabled, err := el.IsEnabled()
		if err != nil {
			return nil, false, err
		}
		return el, shown && enabled, nil

	case CondInvisible:
		el, err := findOne(port, loc)
		if err != nil {
			if errors.Is(err, ErrStaleElement) {
				// Went stale mid-check: gone counts as invisible.
				return nil, true, nil
			}
			return nil, false, err
		}
		if el == nil {
			return nil, true, nil
		}
		shown, err := el.IsDisplayed()
		if err != nil {
			if errors.Is(err, ErrStaleElement) {
				return nil, true, nil
			}
			return nil, false, err
		}
		return el, !shown, nil

	case CondStale:
		if c.element == nil {
			return nil, true, nil
		}
		if _, err := c.element.IsEnabled(); err != nil {
			if errors.Is(err, ErrStaleElement) {
				return nil, true, nil
			}
			return nil, false, err
		}
		return nil, false, nil

	case CondTextPresent:
		el, err := findOne(port, loc)
		if el == nil || err != nil {
			return nil, false, err
		}
		text, err := el.Text()
		if err != nil {
			return nil, false, err
		}
		return el, strings.Contains(text, c.text), nil

	case CondTextInValue:
		el, err := findOne(port, loc)
		if el == nil || err != nil {
			return nil, false, err
		}
		value, err := el.Attribute("value")
		if err != nil {
			return nil, false, err
		}
		return el, strings.Contains(value, c.text), nil

	case CondTitleIs:
		title, err := port.Title()
		if err != nil {
			return nil, false, err
		}
		return nil, title == c.text, nil

	case CondTitleContains:
		title, err := port.Title()
		if err != nil {
			return nil, false, err
		}
		return nil, strings.Contains(title, c.text), nil

	case CondURLIs:
		url, err := port.CurrentURL()
		if err != nil {
			return nil, false, err
		}
		return nil, url == c.text, nil

	case CondURLContains:
		url, err := port.CurrentURL()
		if err != nil {
			return nil, false, err
		}
		return nil, strings.Contains(url, c.text), nil

	case CondURLMatches:
		url, err := port.CurrentURL()
		if err != nil {
			return nil, false, err
		}
		return nil, c.pattern != nil && c.pattern.MatchString(url), nil

	case CondSelected:
		el, err := findOne(port, loc)
		if el == nil || err != nil {
			return nil, false, err
		}
		selected, err := el.IsSelected()
		if err != nil {
			return nil, false, err
		}
		return el, selected == c.selected, nil

	default:
		return nil, false, &InvalidConditionError{Name: c.String()}
	}
}

// findOne is the shared not-found-is-not-an-error query used by element
// conditions.
func findOne(port Port, loc Locator) (Element, error) {
	el, err := port.FindElement(loc)
	if err != nil {
		if errors.Is(err, ErrElementNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return el, nil
}
