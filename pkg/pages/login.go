package pages

import (
	"fmt"
	"strings"

	"github.com/playwright-community/playwright-go"

	"github.com/anubrata/bluebella-e2e/pkg/config"
)

// LoginPage drives the account sign-in flow.
type LoginPage struct {
	*BasePage
}

// NewLoginPage creates a login page object.
func NewLoginPage(page playwright.Page, cfg *config.Config) *LoginPage {
	return &LoginPage{BasePage: NewBasePage(page, cfg)}
}

// OpenAccountPanel clicks the account icon in the site header.
func (p *LoginPage) OpenAccountPanel() error {
	p.log.Infof("opening account panel")
	return p.Click(loginHeaderButton)
}

// EnterEmail types the email address into the sign-in form.
func (p *LoginPage) EnterEmail(email string) error {
	p.log.Infof("entering email %s", email)
	return p.Fill(loginEmailInput, email)
}

// EnterPassword types the password into the sign-in form.
func (p *LoginPage) EnterPassword(password string) error {
	p.log.Infof("entering password")
	return p.Fill(loginPasswordInput, password)
}

// Submit clicks the sign-in button.
func (p *LoginPage) Submit() error {
	p.log.Infof("submitting sign-in form")
	return p.Click(loginSignInButton)
}

// Login performs the complete sign-in flow.
func (p *LoginPage) Login(email, password string) error {
	p.log.Infof("logging in as %s", email)

	if err := p.OpenAccountPanel(); err != nil {
		return err
	}
	if err := p.EnterEmail(email); err != nil {
		return err
	}
	if err := p.EnterPassword(password); err != nil {
		return err
	}
	return p.Submit()
}

// IsSignedIn reports whether the browser landed on the account page.
func (p *LoginPage) IsSignedIn() bool {
	signedIn := strings.HasPrefix(p.URL(), p.cfg.BaseURL+"/account")
	p.log.Infof("signed in: %v", signedIn)
	return signedIn
}

// ReturnToHomepage navigates back to the given URL after a successful
// sign-in. Fails if the user is not signed in.
func (p *LoginPage) ReturnToHomepage(originalURL string) error {
	if !p.IsSignedIn() {
		return fmt.Errorf("not signed in, refusing to navigate back")
	}
	p.log.Infof("returning to %s", originalURL)
	return p.Navigate(originalURL)
}
