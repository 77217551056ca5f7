package printing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPrintParams(t *testing.T) {
	t.Run("a4 portrait", func(t *testing.T) {
		p := buildPrintParams(&RenderRequest{HTML: "<p>x</p>", Margins: DefaultMargins()})
		assert.InDelta(t, mmToInches(210), p.paperWidth, 0.001)
		assert.InDelta(t, mmToInches(297), p.paperHeight, 0.001)
		assert.InDelta(t, mmToInches(12), p.marginTop, 0.001)
		assert.InDelta(t, mmToInches(10), p.marginLeft, 0.001)
		assert.False(t, p.landscape)
		assert.Empty(t, p.footerTemplate)
	})

	t.Run("footer reserves bottom margin", func(t *testing.T) {
		p := buildPrintParams(&RenderRequest{HTML: "<p>x</p>", Landscape: true, FooterHTML: "<span>1</span>"})
		assert.True(t, p.landscape)
		assert.InDelta(t, mmToInches(10), p.marginBottom, 0.001)
		assert.Equal(t, "<span>1</span>", p.footerTemplate)
	})
}

func TestCompleteDocument(t *testing.T) {
	full := "<!DOCTYPE html><html><body>x</body></html>"
	assert.Equal(t, full, completeDocument(&RenderRequest{HTML: full}))

	wrapped := completeDocument(&RenderRequest{HTML: "<p>x</p>", Title: "A & B"})
	assert.Contains(t, wrapped, "<title>A &amp; B</title>")
	assert.Contains(t, wrapped, "<body><p>x</p></body>")
}

func TestCountPages(t *testing.T) {
	pdf := []byte("<< /Type /Pages /Count 2 >> << /Type /Page >> << /Type /Page >>")
	assert.Equal(t, 2, countPages(pdf))
	assert.Equal(t, 1, countPages([]byte("garbage")))
}

func TestChromedpRenderer_RejectsEmptyHTML(t *testing.T) {
	r, err := NewChromedpRenderer(&ChromedpConfig{RemoteURL: "ws://127.0.0.1:1/devtools/browser/none"})
	require.NoError(t, err)
	defer r.Close()

	_, err = r.Render(context.Background(), &RenderRequest{HTML: "   "})
	var renderErr *RenderError
	require.ErrorAs(t, err, &renderErr)
	assert.Equal(t, ErrCodeInvalidHTML, renderErr.Code)
	assert.Equal(t, defaultChromeTimeout, r.config.DefaultTimeout)
}
