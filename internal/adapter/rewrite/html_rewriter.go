// Package rewrite implements the MarkupRewriter port on top of the
// tolerant HTML parser from golang.org/x/net. Campaigns must not fail
// solely due to template HTML quirks, so anything unparsable passes
// through unmodified.
package rewrite

import (
	"net/url"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/net/html"

	"bulkmailer/internal/core/domain"
	"bulkmailer/internal/core/port"
)

// LinkPolicy decides whether an href is trackable. The default tracks every
// absolute http(s) link and leaves mailto:, anchors and relative paths alone.
type LinkPolicy func(href string) bool

func DefaultLinkPolicy(href string) bool {
	u, err := url.Parse(href)
	if err != nil {
		return false
	}
	return u.Scheme == "http" || u.Scheme == "https"
}

// HTMLRewriter scans markup for anchor elements and replaces trackable
// hrefs with indirection URLs embedding a freshly generated link id.
type HTMLRewriter struct {
	clickBaseURL string
	policy       LinkPolicy
	newID        func() string
}

// Option customises an HTMLRewriter.
type Option func(*HTMLRewriter)

// WithLinkPolicy overrides the trackability policy.
func WithLinkPolicy(p LinkPolicy) Option {
	return func(r *HTMLRewriter) { r.policy = p }
}

// WithIDGenerator overrides link id generation, mainly for tests.
func WithIDGenerator(f func() string) Option {
	return func(r *HTMLRewriter) { r.newID = f }
}

func NewHTMLRewriter(clickBaseURL string, opts ...Option) *HTMLRewriter {
	r := &HTMLRewriter{
		clickBaseURL: strings.TrimRight(clickBaseURL, "/"),
		policy:       DefaultLinkPolicy,
		newID:        uuid.NewString,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Rewrite parses the markup, rewrites trackable anchors and re-serialises.
// Markup without trackable links is returned byte-for-byte unchanged, and a
// parse failure falls back to the original markup with no links.
func (r *HTMLRewriter) Rewrite(markup string) (port.RewriteResult, error) {
	doc, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		return port.RewriteResult{HTML: markup}, nil
	}

	var links []domain.TrackedLink
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" {
			for i, attr := range n.Attr {
				if attr.Key != "href" || !r.policy(attr.Val) {
					continue
				}
				id := r.newID()
				links = append(links, domain.TrackedLink{ID: id, OriginalHref: attr.Val})
				n.Attr[i].Val = r.clickBaseURL + "/" + id
				break
			}
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(doc)

	if len(links) == 0 {
		return port.RewriteResult{HTML: markup}, nil
	}

	var out strings.Builder
	if err = html.Render(&out, doc); err != nil {
		return port.RewriteResult{HTML: markup}, nil
	}
	return port.RewriteResult{HTML: out.String(), Links: links}, nil
}
