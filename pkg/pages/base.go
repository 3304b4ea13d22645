// Package pages implements the page object layer for the storefront.
//
// Each page type embeds BasePage, which wraps a Playwright page with
// explicit waits tied to the configured timeout tiers. Page objects
// own their locators; tests only call flow methods.
package pages

import (
	"fmt"
	"strings"
	"time"

	"github.com/playwright-community/playwright-go"

	"github.com/anubrata/bluebella-e2e/pkg/config"
	"github.com/anubrata/bluebella-e2e/pkg/logging"
)

// BasePage wraps a Playwright page with the interaction primitives all
// page objects share.
type BasePage struct {
	page playwright.Page
	cfg  *config.Config
	log  *logging.Logger
}

// NewBasePage creates a base page over an existing Playwright page.
func NewBasePage(page playwright.Page, cfg *config.Config) *BasePage {
	log, _ := logging.NewLogger("pages")
	return &BasePage{
		page: page,
		cfg:  cfg,
		log:  log,
	}
}

// Page exposes the underlying Playwright page for operations the base
// wrapper does not cover.
func (p *BasePage) Page() playwright.Page {
	return p.page
}

// Navigate loads a URL and waits for the load event.
func (p *BasePage) Navigate(url string) error {
	p.log.Infof("navigating to %s", url)

	if _, err := p.page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateLoad,
		Timeout:   playwright.Float(config.TimeoutMillis(p.cfg.LongTimeout)),
	}); err != nil {
		return fmt.Errorf("navigation to %s failed: %w", url, err)
	}
	return nil
}

// Reload refreshes the current page and waits for the load event.
func (p *BasePage) Reload() error {
	p.log.Debugf("reloading page")

	if _, err := p.page.Reload(playwright.PageReloadOptions{WaitUntil: playwright.WaitUntilStateLoad}); err != nil {
		return fmt.Errorf("reload failed: %w", err)
	}
	return nil
}

// Title returns the page title.
func (p *BasePage) Title() (string, error) {
	title, err := p.page.Title()
	if err != nil {
		return "", fmt.Errorf("failed to read title: %w", err)
	}
	p.log.Debugf("page title: %s", title)
	return title, nil
}

// URL returns the current page URL.
func (p *BasePage) URL() string {
	return p.page.URL()
}

// Click waits for the element and clicks it.
func (p *BasePage) Click(selector string, timeout ...time.Duration) error {
	err := p.page.Click(selector, playwright.PageClickOptions{
		Timeout: p.millis(timeout...),
	})
	if err != nil {
		return fmt.Errorf("click on %s failed: %w", selector, err)
	}
	p.log.Debugf("clicked %s", selector)
	return nil
}

// Fill clears the input matching selector and types value into it.
func (p *BasePage) Fill(selector, value string, timeout ...time.Duration) error {
	err := p.page.Fill(selector, value, playwright.PageFillOptions{
		Timeout: p.millis(timeout...),
	})
	if err != nil {
		return fmt.Errorf("fill on %s failed: %w", selector, err)
	}
	p.log.Debugf("filled %s", selector)
	return nil
}

// Text waits for the element to be visible and returns its trimmed text.
func (p *BasePage) Text(selector string, timeout ...time.Duration) (string, error) {
	handle, err := p.WaitVisible(selector, timeout...)
	if err != nil {
		return "", err
	}
	text, err := handle.TextContent()
	if err != nil {
		return "", fmt.Errorf("failed to read text of %s: %w", selector, err)
	}
	return strings.TrimSpace(text), nil
}

// WaitVisible waits for the element to be visible and returns it.
func (p *BasePage) WaitVisible(selector string, timeout ...time.Duration) (playwright.ElementHandle, error) {
	return p.waitForState(selector, playwright.WaitForSelectorStateVisible, timeout...)
}

// WaitHidden waits for the element to be hidden or detached.
func (p *BasePage) WaitHidden(selector string, timeout ...time.Duration) error {
	_, err := p.waitForState(selector, playwright.WaitForSelectorStateHidden, timeout...)
	return err
}

// WaitAttached waits for the element to be present in the DOM and
// returns it.
func (p *BasePage) WaitAttached(selector string, timeout ...time.Duration) (playwright.ElementHandle, error) {
	return p.waitForState(selector, playwright.WaitForSelectorStateAttached, timeout...)
}

func (p *BasePage) waitForState(selector string, state *playwright.WaitForSelectorState, timeout ...time.Duration) (playwright.ElementHandle, error) {
	handle, err := p.page.WaitForSelector(selector, playwright.PageWaitForSelectorOptions{
		State:   state,
		Timeout: p.millis(timeout...),
	})
	if err != nil {
		return nil, fmt.Errorf("wait for %s (%s) failed after %v: %w", selector, *state, p.effective(timeout...), err)
	}
	return handle, nil
}

// WaitForAll waits until at least min elements match selector and
// returns them. Polls because WaitForSelector only guarantees one match.
func (p *BasePage) WaitForAll(selector string, min int, timeout ...time.Duration) ([]playwright.ElementHandle, error) {
	deadline := time.Now().Add(p.effective(timeout...))
	for {
		handles, err := p.page.QuerySelectorAll(selector)
		if err == nil && len(handles) >= min {
			return handles, nil
		}
		if time.Now().After(deadline) {
			count := len(handles)
			return nil, fmt.Errorf("wait for %d elements matching %s timed out with %d present", min, selector, count)
		}
		time.Sleep(100 * time.Millisecond)
	}
}

// IsVisible probes for the element with the given timeout. Absence is
// not an error; use this for optional UI like popups.
func (p *BasePage) IsVisible(selector string, timeout time.Duration) bool {
	_, err := p.page.WaitForSelector(selector, playwright.PageWaitForSelectorOptions{
		State:   playwright.WaitForSelectorStateVisible,
		Timeout: playwright.Float(config.TimeoutMillis(timeout)),
	})
	return err == nil
}

// Hover moves the pointer over the element.
func (p *BasePage) Hover(selector string, timeout ...time.Duration) error {
	err := p.page.Hover(selector, playwright.PageHoverOptions{
		Timeout: p.millis(timeout...),
	})
	if err != nil {
		return fmt.Errorf("hover on %s failed: %w", selector, err)
	}
	p.log.Debugf("hovered %s", selector)
	return nil
}

// SelectByLabel picks an option from a <select> by its visible text.
func (p *BasePage) SelectByLabel(selector, label string, timeout ...time.Duration) error {
	selected, err := p.page.SelectOption(selector, playwright.SelectOptionValues{
		Labels: &[]string{label},
	}, playwright.PageSelectOptionOptions{Timeout: p.millis(timeout...)})
	if err != nil {
		return fmt.Errorf("select on %s failed: %w", selector, err)
	}
	if len(selected) == 0 {
		return fmt.Errorf("option %q not found in %s", label, selector)
	}
	p.log.Debugf("selected %q in %s", label, selector)
	return nil
}

// SelectByValue picks an option from a <select> by its value attribute.
func (p *BasePage) SelectByValue(selector, value string, timeout ...time.Duration) error {
	selected, err := p.page.SelectOption(selector, playwright.SelectOptionValues{
		Values: &[]string{value},
	}, playwright.PageSelectOptionOptions{Timeout: p.millis(timeout...)})
	if err != nil {
		return fmt.Errorf("select on %s failed: %w", selector, err)
	}
	if len(selected) == 0 {
		return fmt.Errorf("value %q not found in %s", value, selector)
	}
	p.log.Debugf("selected value %q in %s", value, selector)
	return nil
}

// ScrollIntoView centers the element in the viewport.
func (p *BasePage) ScrollIntoView(handle playwright.ElementHandle) error {
	_, err := handle.Evaluate(`el => el.scrollIntoView({block: 'center'})`)
	if err != nil {
		return fmt.Errorf("scroll into view failed: %w", err)
	}
	return nil
}

// ScrollTo scrolls the window to a vertical offset.
func (p *BasePage) ScrollTo(y int) error {
	if _, err := p.page.Evaluate(`y => window.scrollTo(0, y)`, y); err != nil {
		return fmt.Errorf("scroll failed: %w", err)
	}
	return nil
}

// ScrollHeight returns the document scroll height.
func (p *BasePage) ScrollHeight() (int, error) {
	return p.evalInt(`() => document.body.scrollHeight`)
}

// ScrollOffset returns the current vertical scroll position.
func (p *BasePage) ScrollOffset() (int, error) {
	return p.evalInt(`() => window.pageYOffset || window.scrollY || 0`)
}

func (p *BasePage) evalInt(expression string) (int, error) {
	result, err := p.page.Evaluate(expression)
	if err != nil {
		return 0, fmt.Errorf("evaluate failed: %w", err)
	}
	switch v := result.(type) {
	case int:
		return v, nil
	case float64:
		return int(v), nil
	default:
		return 0, fmt.Errorf("unexpected evaluate result %T", result)
	}
}

// millis resolves an optional timeout override to Playwright
// milliseconds, defaulting to the configured default timeout.
func (p *BasePage) millis(timeout ...time.Duration) *float64 {
	return playwright.Float(config.TimeoutMillis(p.effective(timeout...)))
}

func (p *BasePage) effective(timeout ...time.Duration) time.Duration {
	if len(timeout) > 0 && timeout[0] > 0 {
		return timeout[0]
	}
	return p.cfg.Timeout
}
