package rewrite

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("link-%d", n)
	}
}

func TestRewriteReplacesTrackableLinks(t *testing.T) {
	r := NewHTMLRewriter("http://track.example/r", WithIDGenerator(sequentialIDs()))
	markup := `<p>Deals: <a href="https://shop.example/a">A</a> and <a href="http://shop.example/b">B</a></p>`

	result, err := r.Rewrite(markup)
	require.NoError(t, err)

	require.Len(t, result.Links, 2)
	assert.Equal(t, "link-1", result.Links[0].ID)
	assert.Equal(t, "https://shop.example/a", result.Links[0].OriginalHref)
	assert.Equal(t, "link-2", result.Links[1].ID)
	assert.Equal(t, "http://shop.example/b", result.Links[1].OriginalHref)

	assert.Contains(t, result.HTML, `href="http://track.example/r/link-1"`)
	assert.Contains(t, result.HTML, `href="http://track.example/r/link-2"`)
	assert.NotContains(t, result.HTML, "shop.example")
}

func TestRewriteUniqueIDsPerAnchor(t *testing.T) {
	r := NewHTMLRewriter("http://track.example/r")
	// the same destination twice still gets two distinct tracked links
	markup := `<a href="https://shop.example/x">one</a><a href="https://shop.example/x">two</a>`

	result, err := r.Rewrite(markup)
	require.NoError(t, err)
	require.Len(t, result.Links, 2)
	assert.NotEqual(t, result.Links[0].ID, result.Links[1].ID)
}

func TestRewriteLeavesUntrackableLinksAlone(t *testing.T) {
	r := NewHTMLRewriter("http://track.example/r", WithIDGenerator(sequentialIDs()))
	markup := `<a href="mailto:support@example.com">mail</a>` +
		`<a href="/local/path">relative</a>` +
		`<a href="#section">anchor</a>` +
		`<a href="https://shop.example/only">tracked</a>`

	result, err := r.Rewrite(markup)
	require.NoError(t, err)
	require.Len(t, result.Links, 1)
	assert.Contains(t, result.HTML, `href="mailto:support@example.com"`)
	assert.Contains(t, result.HTML, `href="/local/path"`)
	assert.Contains(t, result.HTML, `href="#section"`)
	assert.Contains(t, result.HTML, `href="http://track.example/r/link-1"`)
}

func TestRewriteNoLinksIsIdentity(t *testing.T) {
	r := NewHTMLRewriter("http://track.example/r")
	markup := `<p>no links here, just <b>bold text</b></p>`

	result, err := r.Rewrite(markup)
	require.NoError(t, err)
	assert.Equal(t, markup, result.HTML)
	assert.Empty(t, result.Links)
}

func TestRewriteCustomPolicy(t *testing.T) {
	onlyShop := func(href string) bool { return href == "https://shop.example/a" }
	r := NewHTMLRewriter("http://track.example/r",
		WithLinkPolicy(onlyShop), WithIDGenerator(sequentialIDs()))
	markup := `<a href="https://shop.example/a">a</a><a href="https://other.example/b">b</a>`

	result, err := r.Rewrite(markup)
	require.NoError(t, err)
	require.Len(t, result.Links, 1)
	assert.Equal(t, "https://shop.example/a", result.Links[0].OriginalHref)
	assert.Contains(t, result.HTML, `href="https://other.example/b"`)
}

func TestRewriteTrimsBaseURLSlash(t *testing.T) {
	r := NewHTMLRewriter("http://track.example/r/", WithIDGenerator(sequentialIDs()))
	result, err := r.Rewrite(`<a href="https://shop.example/a">a</a>`)
	require.NoError(t, err)
	assert.Contains(t, result.HTML, `href="http://track.example/r/link-1"`)
}
