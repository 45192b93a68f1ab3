// Package corpus holds the pre-built search index: one record per
// documentation page, loaded once per session.
package corpus

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/ochipin/notey/internal/fetch"
)

// PageRecord is one indexed documentation page. Content is the full
// plain text of the page, pre-stripped of markup. A record is uniquely
// identified by its URL.
type PageRecord struct {
	URL     string `json:"url"`
	Title   string `json:"title"`
	Content string `json:"content"`
	Topic   string `json:"topic"`
}

// Decode reads a JSON array of page records.
func Decode(r io.Reader) ([]PageRecord, error) {
	var pages []PageRecord
	if err := json.NewDecoder(r).Decode(&pages); err != nil {
		return nil, fmt.Errorf("decode search index: %w", err)
	}
	return pages, nil
}

// Load fetches and decodes the search index resource. A non-success
// response is an error; the caller is expected to treat it as fatal for
// the search session (search stays inert).
func Load(ctx context.Context, client *fetch.Client, url string) ([]PageRecord, error) {
	resp, err := client.Get(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("load search index: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("load search index %s: status %d: %s", url, resp.StatusCode, string(body))
	}
	return Decode(resp.Body)
}
