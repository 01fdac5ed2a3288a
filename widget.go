package gridsolver

import "time"

// Interface for the challenge widget on a page.
//
// The orchestrator only drives it, it never touches the DOM itself
type Widget interface {

	// Resolve the checkbox and challenge frames
	FindFrames() error

	// Ground truth for the solved state
	CheckboxChecked() (bool, error)

	// Check if a challenge is already open
	ChallengeVisible() bool

	ClickCheckbox() error

	ClickReload() error

	ClickVerify() error

	ClickTile(index int) error

	// Wait until the challenge body is rendered
	WaitForChallenge(timeout time.Duration) error

	// Site key from the widget attribute, falling back to the frame URL
	ReadSiteKey() string

	// Declared widget locale
	ReadLanguage() string

	// Current challenge instruction text
	ReadTarget() (string, error)

	// Rendered tile images in DOM order, base64 encoded
	ReadTiles() ([]string, error)

	// Address of the page hosting the widget
	SiteURL() string
}
