package pages

import (
	"fmt"
	"strings"

	"github.com/playwright-community/playwright-go"

	"github.com/anubrata/bluebella-e2e/pkg/config"
)

// KlarnaPayment is the payment method label the suite selects.
const KlarnaPayment = "Klarna - Flexible payments"

// CheckoutDetails holds the values typed into the checkout form.
type CheckoutDetails struct {
	Email            string
	LastName         string
	FirstName        string
	PostalCode       string
	Phone            string
	PhoneCountryCode string

	// Country defaults to "Japan" when empty.
	Country string

	// PostalSearchText selects the address autocomplete entry
	// containing this substring. Defaults to "Iguchi".
	PostalSearchText string
}

// CheckoutPage drives the checkout form and payment selection.
type CheckoutPage struct {
	*BasePage
}

// NewCheckoutPage creates a checkout page object.
func NewCheckoutPage(page playwright.Page, cfg *config.Config) *CheckoutPage {
	return &CheckoutPage{BasePage: NewBasePage(page, cfg)}
}

// EnterEmail fills the contact email field.
func (p *CheckoutPage) EnterEmail(email string) error {
	p.log.Infof("entering checkout email %s", email)
	return p.Fill(checkoutEmailInput, email)
}

// CheckMarketingOptIn ticks the marketing checkbox when the form shows
// one. Guest checkouts sometimes omit it.
func (p *CheckoutPage) CheckMarketingOptIn() error {
	if !p.IsVisible(checkoutMarketingCheckbox, p.cfg.ShortTimeout) {
		p.log.Warnf("marketing checkbox not found, skipping")
		return nil
	}

	checked, err := p.page.IsChecked(checkoutMarketingCheckbox)
	if err != nil {
		return fmt.Errorf("failed to read marketing checkbox: %w", err)
	}
	if checked {
		return nil
	}
	p.log.Infof("checking marketing opt-in")
	return p.Click(checkoutMarketingCheckbox)
}

// SelectCountry picks the shipping country by its visible name.
func (p *CheckoutPage) SelectCountry(country string) error {
	p.log.Infof("selecting country %s", country)
	return p.SelectByLabel(checkoutCountryDropdown, country)
}

// EnterName fills the last and first name fields, in the order the
// form tabs through them.
func (p *CheckoutPage) EnterName(lastName, firstName string) error {
	p.log.Infof("entering name %s %s", firstName, lastName)

	if err := p.Fill(checkoutLastNameInput, lastName); err != nil {
		return err
	}
	return p.Fill(checkoutFirstNameInput, firstName)
}

// EnterPostalCode fills the postal code field.
func (p *CheckoutPage) EnterPostalCode(postalCode string) error {
	p.log.Infof("entering postal code %s", postalCode)
	return p.Fill(checkoutPostalCodeInput, postalCode)
}

// SelectPostalCodeOption picks the address autocomplete entry whose
// text contains search. Returns false without error when no entry
// matches; the form accepts a bare postal code too.
func (p *CheckoutPage) SelectPostalCodeOption(search string) (bool, error) {
	p.log.Infof("selecting postal code option containing %q", search)

	options, err := p.WaitForAll(checkoutPostalCodeOptions, 1, p.cfg.ShortTimeout)
	if err != nil {
		p.log.Warnf("no postal code suggestions appeared: %v", err)
		return false, nil
	}

	for _, option := range options {
		text, err := option.TextContent()
		if err != nil {
			continue
		}
		if strings.Contains(text, search) {
			if err := option.Click(); err != nil {
				return false, fmt.Errorf("click on postal code option failed: %w", err)
			}
			p.log.Infof("selected postal code option %q", strings.TrimSpace(text))
			return true, nil
		}
	}

	p.log.Warnf("no postal code option contains %q", search)
	return false, nil
}

// EnterPhone fills the phone number field.
func (p *CheckoutPage) EnterPhone(phone string) error {
	p.log.Infof("entering phone %s", phone)
	return p.Fill(checkoutPhoneInput, phone)
}

// SelectPhoneCountryCode picks the phone country prefix by its value
// attribute (e.g. "JP", "IN").
func (p *CheckoutPage) SelectPhoneCountryCode(code string) error {
	p.log.Infof("selecting phone country code %s", code)

	handle, err := p.WaitAttached(checkoutPhoneCountry)
	if err != nil {
		return err
	}
	if err := p.ScrollIntoView(handle); err != nil {
		return err
	}
	return p.SelectByValue(checkoutPhoneCountry, code)
}

// FillForm completes the whole checkout form from details.
func (p *CheckoutPage) FillForm(details CheckoutDetails) error {
	p.log.Infof("filling checkout form")

	if details.Country == "" {
		details.Country = "Japan"
	}
	if details.PostalSearchText == "" {
		details.PostalSearchText = "Iguchi"
	}

	if err := p.EnterEmail(details.Email); err != nil {
		return err
	}
	if err := p.CheckMarketingOptIn(); err != nil {
		return err
	}
	if err := p.SelectCountry(details.Country); err != nil {
		return err
	}
	if err := p.EnterName(details.LastName, details.FirstName); err != nil {
		return err
	}
	if err := p.EnterPostalCode(details.PostalCode); err != nil {
		return err
	}
	if _, err := p.SelectPostalCodeOption(details.PostalSearchText); err != nil {
		return err
	}
	if err := p.EnterPhone(details.Phone); err != nil {
		return err
	}
	if err := p.SelectPhoneCountryCode(details.PhoneCountryCode); err != nil {
		return err
	}

	p.log.Infof("checkout form filled")
	return nil
}

// SelectPayment picks a payment method by its label. The label overlays
// a hidden radio input, so the click goes through JavaScript when the
// normal click is intercepted.
func (p *CheckoutPage) SelectPayment(method string) error {
	p.log.Infof("selecting payment method %s", method)

	selector := paymentMethodLabel(method)
	label, err := p.WaitVisible(selector)
	if err != nil {
		return err
	}
	if err := p.ScrollIntoView(label); err != nil {
		return err
	}

	if err := label.Click(); err != nil {
		p.log.Debugf("direct click intercepted, clicking via JS: %v", err)
		if _, err := label.Evaluate(`el => el.click()`); err != nil {
			return fmt.Errorf("failed to select payment %q: %w", method, err)
		}
	}
	return nil
}

// ClickPay clicks the pay button at the bottom of the form.
func (p *CheckoutPage) ClickPay() error {
	p.log.Infof("clicking pay button")

	button, err := p.WaitAttached(checkoutPayButton)
	if err != nil {
		return err
	}
	if err := p.ScrollIntoView(button); err != nil {
		return err
	}
	return p.Click(checkoutPayButton)
}

// CompleteWithKlarna selects Klarna and submits the payment step.
func (p *CheckoutPage) CompleteWithKlarna() error {
	if err := p.SelectPayment(KlarnaPayment); err != nil {
		return err
	}
	return p.ClickPay()
}
