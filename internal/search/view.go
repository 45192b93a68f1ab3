package search

import "github.com/ochipin/notey/internal/corpus"

// Hit is one section-level match inside an article result. The deep link
// target is URL + "#" + Anchor. Excerpt is ready-to-render markup: the
// context is HTML-escaped and the matched term is wrapped in <mark>.
type Hit struct {
	Subtitle string
	Anchor   string
	URL      string
	Excerpt  string
}

// Article is one rendered article result with its section hits in
// document order. Hits may be empty when no excerpt was producible from
// either the page sections or the full page content.
type Article struct {
	Page corpus.PageRecord
	Hits []Hit
}

// View is the surface a session renders into: a status message area, an
// article list, and a load-more control. Implementations must tolerate
// calls from the session's timer goroutine.
type View interface {
	SetMessage(msg string)
	ClearResults()
	AppendArticle(a Article)
	SetLoadMore(visible bool)
}
