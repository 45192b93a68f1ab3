// Package section fetches rendered documentation pages and splits them
// into heading-delimited sections with stable, document-order anchors.
package section

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"sync"

	"github.com/ochipin/notey/internal/fetch"
	"golang.org/x/net/html"
	"golang.org/x/sync/singleflight"
)

// TopAnchor is the synthetic anchor for article-level overview hits.
const TopAnchor = "_top"

// Section is one heading-delimited slice of a page: the heading text,
// its assigned anchor, and the plain text up to the next h2/h3 boundary.
type Section struct {
	Title     string
	Anchor    string
	PlainText string
}

// Extractor fetches pages from the site origin and memoizes their
// sections per URL for the lifetime of a search session. All failure
// modes (transport error, non-2xx status, missing content root,
// unparsable markup) degrade to an empty section list which is cached so
// the URL is never retried within the session.
type Extractor struct {
	client *fetch.Client
	base   *url.URL
	rootID string
	log    *slog.Logger

	mu    sync.Mutex
	cache map[string][]Section
	group singleflight.Group
}

// NewExtractor builds an extractor for pages under baseURL. Page URLs in
// the corpus index are site-relative and resolved against the base.
func NewExtractor(client *fetch.Client, baseURL, rootID string, log *slog.Logger) *Extractor {
	base, err := url.Parse(baseURL)
	if err != nil {
		base = nil
	}
	return &Extractor{
		client: client,
		base:   base,
		rootID: rootID,
		log:    log,
		cache:  make(map[string][]Section),
	}
}

func (e *Extractor) resolve(pageURL string) string {
	if e.base == nil {
		return pageURL
	}
	ref, err := url.Parse(pageURL)
	if err != nil {
		return pageURL
	}
	return e.base.ResolveReference(ref).String()
}

// Sections returns the cached sections for url, fetching and parsing the
// page on first use. Concurrent calls for the same URL share one fetch.
func (e *Extractor) Sections(ctx context.Context, url string) []Section {
	e.mu.Lock()
	if secs, ok := e.cache[url]; ok {
		e.mu.Unlock()
		return secs
	}
	e.mu.Unlock()

	v, _, _ := e.group.Do(url, func() (any, error) {
		e.mu.Lock()
		if secs, ok := e.cache[url]; ok {
			e.mu.Unlock()
			return secs, nil
		}
		e.mu.Unlock()

		secs := e.extract(ctx, url)

		e.mu.Lock()
		e.cache[url] = secs
		e.mu.Unlock()
		return secs, nil
	})
	return v.([]Section)
}

// Reset discards all cached sections. Called when a new search session
// opens so one session never sees another session's page snapshots.
func (e *Extractor) Reset() {
	e.mu.Lock()
	e.cache = make(map[string][]Section)
	e.mu.Unlock()
}

func (e *Extractor) extract(ctx context.Context, pageURL string) []Section {
	resp, err := e.client.Get(ctx, e.resolve(pageURL))
	if err != nil {
		e.log.Debug("page fetch failed", "url", pageURL, "error", err)
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		e.log.Debug("page fetch non-success", "url", pageURL, "status", resp.StatusCode)
		return nil
	}

	doc, err := html.Parse(resp.Body)
	if err != nil {
		e.log.Debug("page parse failed", "url", pageURL, "error", err)
		return nil
	}

	root := findByID(doc, e.rootID)
	if root == nil {
		e.log.Debug("content root missing", "url", pageURL, "root_id", e.rootID)
		return nil
	}
	return Split(root)
}

// Split walks the content root in document order and produces one
// section per h2/h3 heading. Anchors are assigned purely by position —
// "h<n>" for the n-th h2, "h<n>-<m>" for the m-th h3 under it — never
// from heading text, so duplicate or emoji headings cannot collide and
// identifiers stay stable across renders. Any anchors present in the
// fetched markup are ignored. The same numbering is applied to live
// pages by the site renderer, so "url#anchor" deep links line up.
func Split(root *html.Node) []Section {
	var sections []Section
	major, minor := 0, 0
	var body []string

	flush := func() {
		if len(sections) > 0 {
			sections[len(sections)-1].PlainText = collapse(body)
		}
		body = body[:0]
	}

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "h2":
				flush()
				major++
				minor = 0
				sections = append(sections, Section{
					Title:  textContent(n),
					Anchor: fmt.Sprintf("h%d", major),
				})
				return
			case "h3":
				flush()
				minor++
				sections = append(sections, Section{
					Title:  textContent(n),
					Anchor: fmt.Sprintf("h%d-%d", major, minor),
				})
				return
			case "script", "style":
				return
			}
		}
		if n.Type == html.TextNode && len(sections) > 0 {
			body = append(body, n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	for c := root.FirstChild; c != nil; c = c.NextSibling {
		walk(c)
	}
	flush()
	return sections
}

func collapse(parts []string) string {
	return strings.Join(strings.Fields(strings.Join(parts, " ")), " ")
}

func textContent(n *html.Node) string {
	var buf strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.TrimSpace(buf.String())
}

func findByID(n *html.Node, id string) *html.Node {
	if n.Type == html.ElementNode {
		for _, attr := range n.Attr {
			if attr.Key == "id" && attr.Val == id {
				return n
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findByID(c, id); found != nil {
			return found
		}
	}
	return nil
}
