package browser

import (
	"time"

	"github.com/playwright-community/playwright-go"
)

// Engine names accepted by SessionOptions.Browser.
const (
	EngineChromium = "chromium"
	EngineFirefox  = "firefox"
)

// Session represents a live browser with its context and page.
type Session struct {
	// Name is the unique identifier for this session
	Name string

	// Engine is the browser engine the session runs on
	Engine string

	// Browser is the Playwright browser instance
	Browser playwright.Browser

	// Context is the browser context (isolated cookies and storage)
	Context playwright.BrowserContext

	// Page is the active page
	Page playwright.Page

	// Headless indicates if the browser runs without a window
	Headless bool

	// CreatedAt is when the session was created
	CreatedAt time.Time

	// LastUsedAt is when the session last performed an operation
	LastUsedAt time.Time
}

// SessionOptions configures a new browser session.
type SessionOptions struct {
	// Browser selects the engine: "chromium" (default) or "firefox"
	Browser string

	// Headless controls whether the browser runs without a window
	Headless bool

	// Viewport sets the context viewport size
	Viewport *Viewport

	// Timeout is the default timeout for page operations
	Timeout time.Duration

	// LaunchArgs are extra arguments for the browser binary
	LaunchArgs []string
}

// Viewport represents browser viewport dimensions.
type Viewport struct {
	Width  int
	Height int
}

// NavigateOptions configures page navigation.
type NavigateOptions struct {
	// WaitUntil is the navigation milestone to wait for:
	// "load", "domcontentloaded", or "networkidle"
	WaitUntil string

	// Timeout bounds the navigation (zero means session default)
	Timeout time.Duration
}

// SessionInfo contains metadata about a session.
type SessionInfo struct {
	Name       string
	Engine     string
	CurrentURL string
	Headless   bool
	CreatedAt  time.Time
	LastUsedAt time.Time
}

// Defaults for session creation.
const (
	DefaultTimeout        = 10 * time.Second
	DefaultViewportWidth  = 1920
	DefaultViewportHeight = 1080
	DefaultMaxSessions    = 5
	DefaultIdleTimeout    = 5 * time.Minute
)
