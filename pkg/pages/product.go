package pages

import (
	"fmt"

	"github.com/playwright-community/playwright-go"

	"github.com/anubrata/bluebella-e2e/pkg/config"
)

// ProductPage drives the product detail page: size selection, cart
// operations and the "Complete the Look" carousel.
type ProductPage struct {
	*BasePage
}

// NewProductPage creates a product page object.
func NewProductPage(page playwright.Page, cfg *config.Config) *ProductPage {
	return &ProductPage{BasePage: NewBasePage(page, cfg)}
}

// SelectSizeIfAvailable clicks the size swatch with the given label if
// one is shown. Products without size variants simply return false.
func (p *ProductPage) SelectSizeIfAvailable(size string) bool {
	return p.trySelectSize(sizeOption(size), size)
}

// SelectQuickAddSizeIfAvailable selects a size inside the quick-add
// panel if one is shown.
func (p *ProductPage) SelectQuickAddSizeIfAvailable(size string) bool {
	return p.trySelectSize(quickAddSizeOption(size), size)
}

func (p *ProductPage) trySelectSize(selector, size string) bool {
	if !p.IsVisible(selector, popupProbeTimeout) {
		p.log.Debugf("size %q not available", size)
		return false
	}
	if err := p.Click(selector, p.cfg.ShortTimeout); err != nil {
		p.log.Warnf("size %q visible but not clickable: %v", size, err)
		return false
	}
	p.log.Infof("selected size %q", size)
	return true
}

// AddToCart clicks the add-to-cart button and waits for the cart
// drawer to slide in.
func (p *ProductPage) AddToCart() error {
	p.log.Infof("adding product to cart")

	if err := p.Click(addToCartButton); err != nil {
		return err
	}
	if _, err := p.WaitVisible(cartDrawerCloseButton); err != nil {
		return fmt.Errorf("cart drawer did not open: %w", err)
	}
	return nil
}

// CloseCartDrawer dismisses the cart drawer if it is open.
func (p *ProductPage) CloseCartDrawer() error {
	if !p.IsVisible(cartDrawerCloseButton, popupProbeTimeout) {
		return nil
	}

	p.log.Infof("closing cart drawer")
	if err := p.Click(cartDrawerCloseButton); err != nil {
		return err
	}
	if err := p.WaitHidden(cartDrawer, p.cfg.ShortTimeout); err != nil {
		p.log.Debugf("cart drawer may still be visible: %v", err)
	}
	return nil
}

// AddToCartAndCloseDrawer is the common add-then-continue-shopping flow.
func (p *ProductPage) AddToCartAndCloseDrawer() error {
	if err := p.AddToCart(); err != nil {
		return err
	}
	return p.CloseCartDrawer()
}

// ScrollToCompleteTheLook brings the recommendation carousel into view.
func (p *ProductPage) ScrollToCompleteTheLook() error {
	p.log.Infof("scrolling to Complete the Look carousel")

	carousel, err := p.WaitAttached(completeTheLookSection)
	if err != nil {
		return fmt.Errorf("Complete the Look carousel not found: %w", err)
	}
	return p.ScrollIntoView(carousel)
}

// CompleteTheLookItems returns the carousel item handles.
func (p *ProductPage) CompleteTheLookItems() ([]playwright.ElementHandle, error) {
	items, err := p.WaitForAll(completeTheLookItems, 1)
	if err != nil {
		return nil, fmt.Errorf("no Complete the Look items: %w", err)
	}
	p.log.Debugf("found %d Complete the Look items", len(items))
	return items, nil
}

// AddLastCompleteTheLookItem clicks the add button on the last carousel
// item, the flow the suite uses to put a second product in the cart.
func (p *ProductPage) AddLastCompleteTheLookItem() error {
	p.log.Infof("adding last Complete the Look item")

	if err := p.ScrollToCompleteTheLook(); err != nil {
		return err
	}
	items, err := p.CompleteTheLookItems()
	if err != nil {
		return err
	}

	last := items[len(items)-1]
	if err := p.ScrollIntoView(last); err != nil {
		return err
	}

	button, err := last.QuerySelector(completeLookAddButton)
	if err != nil || button == nil {
		return fmt.Errorf("last Complete the Look item has no add button")
	}
	if err := button.Click(); err != nil {
		return fmt.Errorf("click on Complete the Look add button failed: %w", err)
	}
	return nil
}

// QuickAddToCart clicks the quick-add panel's add-to-cart button and
// waits for the cart drawer's checkout button. The drawer renders
// slowly when a second item lands in the cart, hence the long timeout.
func (p *ProductPage) QuickAddToCart() error {
	p.log.Infof("quick-adding product to cart")

	if err := p.Click(quickAddToCartButton); err != nil {
		return err
	}
	if _, err := p.WaitVisible(checkoutButton, p.cfg.LongTimeout); err != nil {
		return fmt.Errorf("cart drawer did not show checkout button: %w", err)
	}
	return nil
}

// ClickCheckout clicks the checkout link in the cart drawer.
func (p *ProductPage) ClickCheckout() error {
	p.log.Infof("clicking checkout")
	return p.Click(checkoutButton)
}

// ProceedToCheckout quick-adds the current product and continues to
// checkout.
func (p *ProductPage) ProceedToCheckout() error {
	if err := p.QuickAddToCart(); err != nil {
		return err
	}
	return p.ClickCheckout()
}
