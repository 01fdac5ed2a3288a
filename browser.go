package gridsolver

import (
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/stealth"
)

// NewStealthPage launches a browser and opens a stealth page for callers
// that do not already hold one. The caller owns both and must close the
// browser itself, Solve only borrows the page
func NewStealthPage(visible bool) (*rod.Browser, *rod.Page, error) {
	controlURL, err := launcher.New().
		Headless(!visible).
		Launch()
	if err != nil {
		return nil, nil, err
	}

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		return nil, nil, err
	}

	page, err := stealth.Page(browser)
	if err != nil {
		browser.Close()
		return nil, nil, err
	}

	return browser, page, nil
}
