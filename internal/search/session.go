// Package search runs the query lifecycle: debounced input, fuzzy
// retrieval with conjunctive filtering, per-page section hit assembly,
// and incremental pagination into a View.
package search

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/ochipin/notey/internal/corpus"
	"github.com/ochipin/notey/internal/excerpt"
	"github.com/ochipin/notey/internal/fuzzy"
	"github.com/ochipin/notey/internal/section"
)

// OverviewSubtitle labels the synthetic article-level hit used when no
// section produces an excerpt.
const OverviewSubtitle = "Overview"

// Options tune a session. Zero values fall back to the defaults the
// search overlay ships with.
type Options struct {
	PageSize       int // articles revealed per slice (default 5)
	CandidateLimit int // fuzzy candidates before filtering (default 100)
	ExcerptRadius  int // context runes around a hit (default 50)

	// Debounce is the input quiet window (default 200ms). A negative
	// value disables debouncing; input is applied immediately.
	Debounce time.Duration
}

// Session drives one open search dialog. Input is debounced so only the
// last keystroke in a quiet window triggers a search, results are
// revealed page-by-page in strict rank order, and a query generation
// counter guards against stale in-flight renders mutating the view
// after a newer query has started.
type Session struct {
	index    *fuzzy.Index
	sections *section.Extractor
	view     View
	log      *slog.Logger
	opts     Options

	mu        sync.Mutex
	open      bool
	gen       uint64
	lastQuery string
	offset    int
	timer     *time.Timer
	pending   sync.WaitGroup
}

func NewSession(index *fuzzy.Index, sections *section.Extractor, view View, log *slog.Logger, opts Options) *Session {
	if opts.PageSize <= 0 {
		opts.PageSize = 5
	}
	if opts.CandidateLimit <= 0 {
		opts.CandidateLimit = 100
	}
	if opts.ExcerptRadius <= 0 {
		opts.ExcerptRadius = 50
	}
	if opts.Debounce == 0 {
		opts.Debounce = 200 * time.Millisecond
	}
	return &Session{
		index:    index,
		sections: sections,
		view:     view,
		log:      log,
		opts:     opts,
	}
}

// Open clears prior query state, discards the section cache, and resets
// the view to the idle empty-query state.
func (s *Session) Open() {
	s.mu.Lock()
	s.open = true
	s.gen++
	s.lastQuery = ""
	s.offset = 0
	s.stopTimerLocked()
	s.mu.Unlock()

	s.sections.Reset()
	s.view.SetMessage("")
	s.view.ClearResults()
	s.view.SetLoadMore(false)
}

// Close discards query state. Valid from any state; in-flight renders
// observe the generation bump and stop before touching the view.
func (s *Session) Close() {
	s.mu.Lock()
	s.open = false
	s.gen++
	s.lastQuery = ""
	s.offset = 0
	s.stopTimerLocked()
	s.mu.Unlock()
}

// OnInput schedules a search for text after the debounce quiet window.
// A newer input cancels the pending one, so superseded keystrokes never
// produce visible work.
func (s *Session) OnInput(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.open {
		return
	}
	s.stopTimerLocked()
	s.pending.Add(1)
	if s.opts.Debounce <= 0 {
		go func() {
			defer s.pending.Done()
			s.apply(text)
		}()
		return
	}
	s.timer = time.AfterFunc(s.opts.Debounce, func() {
		defer s.pending.Done()
		s.apply(text)
	})
}

// LoadMore reveals the next slice for the current query. The ranking is
// recomputed from scratch; filtering is cheap enough that incremental
// bookkeeping is not worth the staleness risk.
func (s *Session) LoadMore() {
	s.mu.Lock()
	if !s.open || s.lastQuery == "" {
		s.mu.Unlock()
		return
	}
	gen := s.gen
	query := s.lastQuery
	s.mu.Unlock()

	s.renderSlice(gen, query)
}

// Wait blocks until scheduled input work has completed. Test hook and
// shutdown aid; not needed for normal operation.
func (s *Session) Wait() {
	s.pending.Wait()
}

func (s *Session) apply(raw string) {
	query := strings.TrimSpace(raw)

	s.mu.Lock()
	if !s.open {
		s.mu.Unlock()
		return
	}
	s.gen++
	gen := s.gen
	s.lastQuery = query
	s.offset = 0
	s.mu.Unlock()

	s.view.ClearResults()
	s.view.SetLoadMore(false)
	if query == "" {
		s.view.SetMessage("")
		return
	}
	s.renderSlice(gen, query)
}

func (s *Session) renderSlice(gen uint64, query string) {
	terms := SplitTerms(query)
	matches := FilterAll(s.index.Search(query, s.opts.CandidateLimit), terms)
	total := len(matches)

	s.mu.Lock()
	if s.gen != gen {
		s.mu.Unlock()
		return
	}
	offset := s.offset
	s.mu.Unlock()

	if total == 0 {
		s.view.SetMessage(fmt.Sprintf("No results for %q", query))
		s.view.SetLoadMore(false)
		return
	}

	end := offset + s.opts.PageSize
	if end > total {
		end = total
	}
	slice := matches[offset:end]

	s.view.SetMessage(resultMessage(total, query))

	// Each page's section fetch completes before the next page starts,
	// so on-screen order always matches rank order.
	ctx := context.Background()
	for _, m := range slice {
		article := s.assemble(ctx, m.Page, terms)

		s.mu.Lock()
		if s.gen != gen {
			s.mu.Unlock()
			return
		}
		s.offset++
		s.mu.Unlock()

		s.view.AppendArticle(article)
	}

	s.mu.Lock()
	stale := s.gen != gen
	exhausted := s.offset >= total
	s.mu.Unlock()
	if stale {
		return
	}
	s.view.SetLoadMore(!exhausted)
}

// assemble builds the hit list for one matched page: one hit per section
// with a producible excerpt (first matching term wins), falling back to
// a single overview hit from the full page content when no section hits.
func (s *Session) assemble(ctx context.Context, page corpus.PageRecord, terms []string) Article {
	var hits []Hit
	for _, sec := range s.sections.Sections(ctx, page.URL) {
		for _, term := range terms {
			if ex, ok := excerpt.Build(sec.PlainText, term, s.opts.ExcerptRadius); ok {
				hits = append(hits, Hit{
					Subtitle: sec.Title,
					Anchor:   sec.Anchor,
					URL:      page.URL,
					Excerpt:  ex,
				})
				break
			}
		}
	}

	if len(hits) == 0 {
		for _, term := range terms {
			if ex, ok := excerpt.Build(page.Content, term, s.opts.ExcerptRadius); ok {
				hits = append(hits, Hit{
					Subtitle: OverviewSubtitle,
					Anchor:   section.TopAnchor,
					URL:      page.URL,
					Excerpt:  ex,
				})
				break
			}
		}
	}

	return Article{Page: page, Hits: hits}
}

func resultMessage(total int, query string) string {
	if total == 1 {
		return fmt.Sprintf("1 result for %q", query)
	}
	return fmt.Sprintf("%d results for %q", total, query)
}

func (s *Session) stopTimerLocked() {
	if s.timer != nil {
		if s.timer.Stop() {
			s.pending.Done()
		}
		s.timer = nil
	}
}
