package pages

import (
	"fmt"
	"strings"
)

// Shared locators. Selectors starting with // are XPath; the rest are CSS.
const (
	klaviyoCloseButton = `//button[contains(@class,'klaviyo-close-form')]`
)

// Login page locators.
const (
	loginHeaderButton  = `//div[@class='site-header__icon--account']`
	loginEmailInput    = `//input[@name='customer[email]']`
	loginPasswordInput = `//input[@name='customer[password]']`
	loginSignInButton  = `//input[@value='Sign In']`
)

// Homepage locators.
const (
	mainMenuItems = `//li[@js-site-header='siteNavItem']/a`
)

// Collection page locators.
const (
	productGridItems  = `//div[contains(@class,'product-grid-item-column')]`
	sortByButton      = `div.collection-filter button.collection-filter__header`
	sortOptionButtons = `//div[contains(@class,'collection-filter__sorting')]//button`
	productTitleClass = "product-grid-item__title"
	productTileTitle  = `.//*[contains(@class,'product-grid-item__title')]`
	productTileAnchor = `.//a[contains(@class,'product-grid-item')]`
)

// Product page locators.
const (
	addToCartButton        = `//button[@id='AddToCart']`
	cartDrawer             = `//div[@class='cart-drawer']`
	cartDrawerCloseButton  = `//button[@class='cart-drawer__close']`
	quickAddToCartButton   = `//div[@class='product-quick-add__container']//button[@id='AddToCart']`
	checkoutButton         = `//div[@class='cart-drawer__footer--buttons']/a[@href='/checkout']`
	completeTheLookSection = `//div[@class='complete-the-look']//div[@class='owl-stage']`
	completeTheLookItems   = `//div[@class='complete-the-look']//div[contains(@class,'owl-item')]`
	completeLookAddButton  = `.//div[contains(@class,'product-card__details')]//button`
	sizeOptionClass        = "product-form__sizes--option"
)

// Checkout page locators.
const (
	checkoutEmailInput        = `//input[@id='email']`
	checkoutMarketingCheckbox = `//input[@id='marketing_opt_in']`
	checkoutCountryDropdown   = `select[name="countryCode"]`
	checkoutLastNameInput     = `input[name="lastName"]`
	checkoutFirstNameInput    = `input[name="firstName"]`
	checkoutPostalCodeInput   = `input#postalCode`
	checkoutPostalCodeOptions = `//li[contains(@id,'postalCode-option')]`
	checkoutPhoneInput        = `input[name="phone"]`
	checkoutPhoneCountry      = `select[name="phone_country_select"]`
	checkoutPayButton         = `//button[@id='checkout-pay-button']`
)

// xpathLiteral quotes s for embedding in an XPath expression. Strings
// containing both quote characters need concat().
func xpathLiteral(s string) string {
	if !strings.Contains(s, "'") {
		return "'" + s + "'"
	}
	if !strings.Contains(s, `"`) {
		return `"` + s + `"`
	}

	parts := strings.Split(s, "'")
	quoted := make([]string, 0, len(parts)*2)
	for i, part := range parts {
		if i > 0 {
			quoted = append(quoted, `"'"`)
		}
		if part != "" {
			quoted = append(quoted, "'"+part+"'")
		}
	}
	return "concat(" + strings.Join(quoted, ", ") + ")"
}

// subMenuLink locates a submenu anchor by its visible text, scoped to
// the hovered menu item's navigation block.
func subMenuLink(subMenuName string) string {
	return fmt.Sprintf(`./ancestor::li[@js-site-header='siteNavItem']//a[normalize-space()=%s]`, xpathLiteral(subMenuName))
}

// sortOptionButton locates a sort option in the collection filter by
// its visible text.
func sortOptionButton(sortText string) string {
	return fmt.Sprintf(`(//div[contains(@class,'collection-filter__sorting')]//button[contains(normalize-space(.),%s)])[1]`, xpathLiteral(sortText))
}

// sizeOption locates a size swatch on the product form by its label.
func sizeOption(sizeText string) string {
	return fmt.Sprintf(`//div[contains(@class,'%s')][normalize-space(text())=%s]`, sizeOptionClass, xpathLiteral(sizeText))
}

// quickAddSizeOption locates a size swatch inside the quick-add panel.
func quickAddSizeOption(sizeText string) string {
	return fmt.Sprintf(`//div[@class='product-quick-add__container']//div[contains(@class,'%s')][normalize-space(text())=%s]`, sizeOptionClass, xpathLiteral(sizeText))
}

// paymentMethodLabel locates a payment method radio label on the
// checkout payment section.
func paymentMethodLabel(method string) string {
	return fmt.Sprintf(`//section[@aria-label='Payment']//label[@for=%s]`, xpathLiteral("basic-"+method))
}
