// Command searcher is an interactive terminal client for the site
// search: it loads the search index once, then runs a search session
// against queries read from stdin.
package main

import (
	"bufio"
	"context"
	"fmt"
	"html"
	"io"
	"log/slog"
	"net/url"
	"os"
	"strings"

	"github.com/ochipin/notey/internal/config"
	"github.com/ochipin/notey/internal/corpus"
	"github.com/ochipin/notey/internal/fetch"
	"github.com/ochipin/notey/internal/fuzzy"
	"github.com/ochipin/notey/internal/search"
	"github.com/ochipin/notey/internal/section"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stderr, nil))

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	client := fetch.NewClient(cfg.FetchTimeout, cfg.SiteToken)
	defer client.Close()

	indexURL, err := resolveIndexURL(cfg.SiteURL, cfg.IndexPath)
	if err != nil {
		log.Error("invalid site url", "site_url", cfg.SiteURL, "error", err)
		os.Exit(1)
	}

	pages, err := corpus.Load(context.Background(), client, indexURL)
	if err != nil {
		// Search is inert without the index; nothing useful to do here.
		log.Error("search disabled", "index_url", indexURL, "error", err)
		os.Exit(1)
	}
	log.Info("search index loaded", "index_url", indexURL, "pages", len(pages))

	index := fuzzy.NewIndex(pages, fuzzy.WithThreshold(cfg.FuzzyThreshold))
	sections := section.NewExtractor(client, cfg.SiteURL, cfg.ContentRootID, log)
	view := &consoleView{out: os.Stdout}

	session := search.NewSession(index, sections, view, log, search.Options{
		PageSize:       cfg.PageSize,
		CandidateLimit: cfg.CandidateLimit,
		ExcerptRadius:  cfg.ExcerptRadius,
		Debounce:       -1, // line-based input needs no quiet window
	})
	session.Open()
	defer session.Close()

	fmt.Println(`Type a query, ":more" for the next page, ":quit" to exit.`)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		switch line {
		case ":quit", ":q":
			return
		case ":more", ":n":
			session.LoadMore()
		default:
			session.OnInput(line)
			session.Wait()
		}
	}
}

func resolveIndexURL(siteURL, indexPath string) (string, error) {
	base, err := url.Parse(siteURL)
	if err != nil {
		return "", err
	}
	ref, err := url.Parse(indexPath)
	if err != nil {
		return "", err
	}
	return base.ResolveReference(ref).String(), nil
}

// consoleView renders session output to the terminal.
type consoleView struct {
	out io.Writer
}

func (v *consoleView) SetMessage(msg string) {
	if msg != "" {
		fmt.Fprintln(v.out, msg)
	}
}

func (v *consoleView) ClearResults() {}

func (v *consoleView) AppendArticle(a search.Article) {
	fmt.Fprintf(v.out, "\n%s  (%s)  %s\n", a.Page.Title, a.Page.Topic, a.Page.URL)
	for _, h := range a.Hits {
		fmt.Fprintf(v.out, "  %s  %s#%s\n", h.Subtitle, h.URL, h.Anchor)
		fmt.Fprintf(v.out, "    %s\n", plainExcerpt(h.Excerpt))
	}
}

func (v *consoleView) SetLoadMore(visible bool) {
	if visible {
		fmt.Fprintln(v.out, `-- more results available, type ":more" --`)
	}
}

var markReplacer = strings.NewReplacer("<mark>", "\x1b[1;33m", "</mark>", "\x1b[0m")

// plainExcerpt converts an excerpt's markup into terminal form: the
// highlight delimiters become ANSI color codes and HTML entities are
// unescaped back to plain text.
func plainExcerpt(excerpt string) string {
	return html.UnescapeString(markReplacer.Replace(excerpt))
}
