package pages

import (
	"fmt"
	"strings"
	"time"

	"github.com/playwright-community/playwright-go"

	"github.com/anubrata/bluebella-e2e/pkg/config"
)

// popupProbeTimeout bounds the check for the optional newsletter popup.
const popupProbeTimeout = 3 * time.Second

// HomePage drives the storefront landing page: newsletter popup
// dismissal and main menu navigation.
type HomePage struct {
	*BasePage
}

// NewHomePage creates a homepage object.
func NewHomePage(page playwright.Page, cfg *config.Config) *HomePage {
	return &HomePage{BasePage: NewBasePage(page, cfg)}
}

// Open navigates to the configured storefront root.
func (p *HomePage) Open() error {
	return p.Navigate(p.cfg.BaseURL)
}

// CloseNewsletterPopup dismisses the Klaviyo signup popup when it
// appears. Returns true if a popup was closed. The popup is optional so
// absence is not an error.
func (p *HomePage) CloseNewsletterPopup() bool {
	if !p.IsVisible(klaviyoCloseButton, popupProbeTimeout) {
		p.log.Debugf("newsletter popup not present")
		return false
	}

	p.log.Infof("closing newsletter popup")
	if err := p.Click(klaviyoCloseButton, p.cfg.ShortTimeout); err != nil {
		p.log.Debugf("newsletter popup already gone: %v", err)
		return false
	}
	return true
}

// HoverMenu hovers the main menu item with the given text and clicks
// the named entry in the submenu that unfolds.
func (p *HomePage) HoverMenu(menuName, subMenuName string) error {
	p.log.Infof("navigating menu %s -> %s", menuName, subMenuName)

	menuItems, err := p.WaitForAll(mainMenuItems, 1)
	if err != nil {
		return fmt.Errorf("main menu not found: %w", err)
	}

	for _, item := range menuItems {
		text, err := item.TextContent()
		if err != nil || strings.TrimSpace(text) != menuName {
			continue
		}

		if err := item.Hover(); err != nil {
			return fmt.Errorf("hover on menu %q failed: %w", menuName, err)
		}

		subMenu, err := item.QuerySelector(subMenuLink(subMenuName))
		if err != nil || subMenu == nil {
			return fmt.Errorf("submenu %q not found under %q", subMenuName, menuName)
		}
		if err := subMenu.Click(); err != nil {
			return fmt.Errorf("click on submenu %q failed: %w", subMenuName, err)
		}

		p.log.Infof("opened submenu %s", subMenuName)
		return nil
	}

	return fmt.Errorf("menu item %q not found", menuName)
}
