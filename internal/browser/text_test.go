package browser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextFromHTML(t *testing.T) {
	html := `<h1 class="ts dividing big header">
		男裝 AIRism 棉質圓領T恤
		<div class="sub header">商品編號 465185</div>
	</h1>`

	text, err := TextFromHTML(html, nil)
	require.NoError(t, err)
	assert.Equal(t, "男裝 AIRism 棉質圓領T恤 商品編號 465185", text)

	text, err = TextFromHTML(html, []string{"div.sub.header"})
	require.NoError(t, err)
	assert.Equal(t, "男裝 AIRism 棉質圓領T恤", text)
}

func TestTextFromHTMLEmpty(t *testing.T) {
	text, err := TextFromHTML(`<h1>   </h1>`, nil)
	require.NoError(t, err)
	assert.Equal(t, "", text)
}

func TestWaitOutcomeString(t *testing.T) {
	assert.Equal(t, "present", ElementPresent.String())
	assert.Equal(t, "timed_out", WaitTimedOut.String())
}
