package gridsolver

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSiteKeyFromFrameURL(t *testing.T) {
	// Query form
	key := siteKeyFromFrameURL("https://widget.example/captcha.html?sitekey=aaa-bbb&hl=en")
	require.Equal(t, "aaa-bbb", key)

	// Fragment form, the fragment is itself query shaped
	key = siteKeyFromFrameURL("https://widget.example/captcha.html#frame=challenge&id=0&sitekey=ccc-ddd&hl=uk")
	require.Equal(t, "ccc-ddd", key)

	require.Empty(t, siteKeyFromFrameURL("https://widget.example/captcha.html"))
	require.Empty(t, siteKeyFromFrameURL("://broken"))
}

func TestLocaleFromFrameURL(t *testing.T) {
	require.Equal(t, "uk", localeFromFrameURL("https://widget.example/captcha.html#frame=checkbox&hl=uk"))
	require.Equal(t, "en", localeFromFrameURL("https://widget.example/captcha.html?hl=en"))
	require.Empty(t, localeFromFrameURL("https://widget.example/captcha.html"))
}

func TestTargetFromHTML(t *testing.T) {
	html := `<div class="challenge-container">
		<h2 class="prompt-text">  Please click each image containing a boat  </h2>
		<div class="task-image"></div>
	</div>`

	target, err := targetFromHTML(html)
	require.NoError(t, err)
	require.Equal(t, "Please click each image containing a boat", target)

	_, err = targetFromHTML("<div>no prompt here</div>")
	require.Error(t, err)
}
