// Package indexer builds the static search index consumed by the search
// overlay: one JSON record per documentation page.
package indexer

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ochipin/notey/internal/corpus"
	"github.com/ochipin/notey/internal/parser"
)

// Build walks the documentation source tree rooted at root and produces
// one PageRecord per supported file. Files that fail to parse are logged
// and skipped so one broken attachment cannot sink the whole index.
// Records come back sorted by URL for deterministic output.
func Build(root string, log *slog.Logger) ([]corpus.PageRecord, error) {
	var records []corpus.PageRecord

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		name := d.Name()
		if d.IsDir() {
			if path != root && (strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_")) {
				return filepath.SkipDir
			}
			return nil
		}
		if !parser.IsSupportedExtension(name) {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}

		doc, err := parseFile(path, name)
		if err != nil {
			log.Warn("skipping unparsable file", "path", rel, "error", err)
			return nil
		}

		records = append(records, corpus.PageRecord{
			URL:     pageURL(rel),
			Title:   doc.Title,
			Content: collapse(doc.Text),
			Topic:   topicOf(rel),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk source tree: %w", err)
	}

	sort.Slice(records, func(i, j int) bool { return records[i].URL < records[j].URL })
	return records, nil
}

// WriteFile writes the index as indented JSON, creating parent
// directories as needed.
func WriteFile(path string, records []corpus.PageRecord) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal index: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create index directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write index: %w", err)
	}
	return nil
}

func parseFile(path, name string) (*parser.Document, error) {
	p, err := parser.ForFile(name)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return p.Parse(f, name)
}

// pageURL maps a source path to its rendered location: markdown sources
// render to .html, everything else is served as-is.
func pageURL(rel string) string {
	u := "/" + filepath.ToSlash(rel)
	switch strings.ToLower(filepath.Ext(u)) {
	case ".md":
		return strings.TrimSuffix(u, filepath.Ext(u)) + ".html"
	case ".markdown":
		return strings.TrimSuffix(u, filepath.Ext(u)) + ".html"
	}
	return u
}

// topicOf derives a topic from the first path segment; root-level files
// fall under "general".
func topicOf(rel string) string {
	parts := strings.SplitN(filepath.ToSlash(rel), "/", 2)
	if len(parts) < 2 {
		return "general"
	}
	return parts[0]
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
