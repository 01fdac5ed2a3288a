package gridsolver

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
)

const (
	OUTER_FRAME_SELECTOR = `iframe[src*="checkbox"]`
	INNER_FRAME_SELECTOR = `iframe[src*="challenge"]`

	CHECKBOX_SELECTOR  = "#checkbox"
	CHALLENGE_SELECTOR = ".challenge-container"
	TILE_SELECTOR      = ".task-image"
	TARGET_SELECTOR    = ".prompt-text"
	RELOAD_SELECTOR    = ".refresh.button"
	VERIFY_SELECTOR    = ".button-submit"

	SITEKEY_SELECTOR  = "[data-sitekey]"
	SITEKEY_ATTRIBUTE = "data-sitekey"
	CHECKED_ATTRIBUTE = "aria-checked"
	LOCALE_ATTRIBUTE  = "lang"

	SITEKEY_PARAM = "sitekey"
	LOCALE_PARAM  = "hl"
)

// ChromeWidget drives the challenge widget through rod. The page is
// borrowed from the caller, never closed here
type ChromeWidget struct {
	page *rod.Page

	// Checkbox frame
	outer *rod.Page

	// Challenge frame
	inner *rod.Page
}

func NewChromeWidget(page *rod.Page) *ChromeWidget {
	return &ChromeWidget{page: page}
}

// Interface implementation
func (w *ChromeWidget) FindFrames() error {
	outer, err := w.resolveFrame(OUTER_FRAME_SELECTOR)
	if err != nil {
		return fmt.Errorf("checkbox frame: %w", err)
	}

	inner, err := w.resolveFrame(INNER_FRAME_SELECTOR)
	if err != nil {
		return fmt.Errorf("challenge frame: %w", err)
	}

	w.outer, w.inner = outer, inner
	return nil
}

func (w *ChromeWidget) resolveFrame(selector string) (*rod.Page, error) {
	element, err := w.page.Element(selector)
	if err != nil {
		return nil, err
	}

	frame, err := element.Frame()
	if err != nil {
		return nil, err
	}

	return frame, nil
}

func (w *ChromeWidget) CheckboxChecked() (bool, error) {
	element, err := w.outer.Element(CHECKBOX_SELECTOR)
	if err != nil {
		return false, err
	}

	checked, err := element.Attribute(CHECKED_ATTRIBUTE)
	if err != nil {
		return false, err
	}

	return checked != nil && *checked == "true", nil
}

func (w *ChromeWidget) ChallengeVisible() bool {
	has, _, err := w.inner.Has(CHALLENGE_SELECTOR)
	return err == nil && has
}

func (w *ChromeWidget) ClickCheckbox() error {
	return w.clickIn(w.outer, CHECKBOX_SELECTOR)
}

func (w *ChromeWidget) ClickReload() error {
	return w.clickIn(w.inner, RELOAD_SELECTOR)
}

func (w *ChromeWidget) ClickVerify() error {
	return w.clickIn(w.inner, VERIFY_SELECTOR)
}

func (w *ChromeWidget) ClickTile(index int) error {
	tiles, err := w.inner.Elements(TILE_SELECTOR)
	if err != nil {
		return err
	}

	if index < 0 || index >= len(tiles) {
		return fmt.Errorf("tile index %d out of range, have %d tiles", index, len(tiles))
	}

	return tiles[index].Click(proto.InputMouseButtonLeft, 1)
}

func (w *ChromeWidget) clickIn(frame *rod.Page, selector string) error {
	element, err := frame.Element(selector)
	if err != nil {
		return err
	}
	return element.Click(proto.InputMouseButtonLeft, 1)
}

func (w *ChromeWidget) WaitForChallenge(timeout time.Duration) error {
	return w.inner.Timeout(timeout).WaitElementsMoreThan(CHALLENGE_SELECTOR, 0)
}

// Site key lives in the widget mount attribute. Some embeds render without
// it, then the challenge frame address carries the key
func (w *ChromeWidget) ReadSiteKey() string {
	if element, err := w.page.Element(SITEKEY_SELECTOR); err == nil {
		if key, err := element.Attribute(SITEKEY_ATTRIBUTE); err == nil && key != nil && *key != "" {
			return *key
		}
	}

	return siteKeyFromFrameURL(w.frameURL())
}

func (w *ChromeWidget) ReadLanguage() string {
	if element, err := w.page.Element("html"); err == nil {
		if lang, err := element.Attribute(LOCALE_ATTRIBUTE); err == nil && lang != nil && *lang != "" {
			return *lang
		}
	}

	return localeFromFrameURL(w.frameURL())
}

func (w *ChromeWidget) ReadTarget() (string, error) {
	html, err := w.inner.HTML()
	if err != nil {
		return "", err
	}
	return targetFromHTML(html)
}

func (w *ChromeWidget) ReadTiles() ([]string, error) {
	tiles, err := w.inner.Elements(TILE_SELECTOR)
	if err != nil {
		return nil, err
	}

	images := make([]string, 0, len(tiles))
	for _, tile := range tiles {
		shot, err := tile.Screenshot(proto.PageCaptureScreenshotFormatPng, 0)
		if err != nil {
			return nil, err
		}
		images = append(images, base64.StdEncoding.EncodeToString(shot))
	}

	return images, nil
}

func (w *ChromeWidget) SiteURL() string {
	info, err := w.page.Info()
	if err != nil {
		return ""
	}
	return info.URL
}

func (w *ChromeWidget) frameURL() string {
	if w.inner == nil {
		return ""
	}
	info, err := w.inner.Info()
	if err != nil {
		return ""
	}
	return info.URL
}

// ---------------------------------- Розбір без браузера ----------------------------------

// Both query and fragment forms occur in the wild, the fragment itself is
// query shaped
func siteKeyFromFrameURL(raw string) string {
	return frameURLParam(raw, SITEKEY_PARAM)
}

func localeFromFrameURL(raw string) string {
	return frameURLParam(raw, LOCALE_PARAM)
}

func frameURLParam(raw, param string) string {
	parsed, err := url.Parse(raw)
	if err != nil {
		return ""
	}

	if value := parsed.Query().Get(param); value != "" {
		return value
	}

	fragment, err := url.ParseQuery(parsed.Fragment)
	if err != nil {
		return ""
	}
	return fragment.Get(param)
}

func targetFromHTML(html string) (string, error) {
	crawler, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", err
	}

	node := crawler.Find(TARGET_SELECTOR)
	if node.Size() == 0 {
		return "", errors.New("no challenge instruction on rendered widget")
	}

	return strings.TrimSpace(node.First().Text()), nil
}
