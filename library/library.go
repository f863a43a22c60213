// Package library manages the learner's document collection: scanning
// configured directories for readable files, presenting them as a numbered
// spoken listing, and resolving spoken names back to paths.
package library

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrPathTraversal is returned when a requested path escapes the library
// directories.
var ErrPathTraversal = errors.New("library: path traversal detected")

// ErrNotFound is returned when no file matches a spoken name or number.
var ErrNotFound = errors.New("library: no matching file")

// typeLabels maps extensions to the labels spoken to the listener.
var typeLabels = map[string]string{
	".pdf":  "PDF",
	".docx": "Word Document",
	".epub": "ePub",
	".txt":  "Text",
	".md":   "Markdown",
	".html": "Web Page",
	".htm":  "Web Page",
}

// Config configures the library.
type Config struct {
	// Dirs are the directories scanned for documents, in listing order.
	Dirs []string `json:"dirs" yaml:"dirs"`

	// MaxFiles caps the listing length (default: 20).
	MaxFiles int `json:"max_files" yaml:"max_files"`

	Logger *slog.Logger `json:"-" yaml:"-"`
}

func (c *Config) defaults() {
	if len(c.Dirs) == 0 {
		if home, err := os.UserHomeDir(); err == nil {
			for _, name := range []string{"Downloads", "Documents", "Desktop"} {
				c.Dirs = append(c.Dirs, filepath.Join(home, name))
			}
		}
	}
	if c.MaxFiles <= 0 {
		c.MaxFiles = 20
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}

// Item is one readable file in the listing. Index is the 0-based position
// spoken to the listener as "file one", "file two", ...
type Item struct {
	Index int    `json:"index"`
	Name  string `json:"name"` // spoken name derived from the file stem
	Path  string `json:"path"`
	Type  string `json:"type"` // human label: "PDF", "Word Document", ...
	Size  int64  `json:"size"`
}

// Library scans directories for readable documents.
type Library struct {
	cfg    Config
	logger *slog.Logger
}

// New creates a Library with the given configuration.
func New(cfg Config) *Library {
	cfg.defaults()
	return &Library{cfg: cfg, logger: cfg.Logger}
}

// Scan walks the configured directories and returns a stable, numbered
// listing of readable files. Directories that do not exist are skipped, not
// errors; a laptop without a Desktop folder is normal.
func (l *Library) Scan() []Item {
	var items []Item
	for _, dir := range l.cfg.Dirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			l.logger.Debug("skipping library dir", "dir", dir, "error", err)
			continue
		}
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			if !e.IsDir() {
				names = append(names, e.Name())
			}
		}
		sort.Strings(names)

		for _, name := range names {
			ext := strings.ToLower(filepath.Ext(name))
			label, ok := typeLabels[ext]
			if !ok {
				continue
			}
			path := filepath.Join(dir, name)
			info, err := os.Stat(path)
			if err != nil {
				continue
			}
			items = append(items, Item{
				Index: len(items),
				Name:  SpokenName(name),
				Path:  path,
				Type:  label,
				Size:  info.Size(),
			})
			if len(items) >= l.cfg.MaxFiles {
				return items
			}
		}
	}
	return items
}

// ByNumber resolves a 0-based listing index from Scan to an item.
func (l *Library) ByNumber(index int) (Item, error) {
	items := l.Scan()
	if index < 0 || index >= len(items) {
		return Item{}, fmt.Errorf("%w: file number %d of %d", ErrNotFound, index+1, len(items))
	}
	return items[index], nil
}

// ByName resolves a spoken name to an item. An exact stem match wins
// immediately; otherwise the last item whose stem contains the name is
// returned, so "physics" finds "My_Physics_Notes.pdf".
func (l *Library) ByName(spoken string) (Item, error) {
	want := squash(spoken)
	if want == "" {
		return Item{}, fmt.Errorf("%w: empty name", ErrNotFound)
	}

	var match *Item
	for _, item := range l.Scan() {
		stem := squash(item.Name)
		if stem == want {
			return item, nil
		}
		if strings.Contains(stem, want) {
			it := item
			match = &it
		}
	}
	if match == nil {
		return Item{}, fmt.Errorf("%w: %q", ErrNotFound, spoken)
	}
	return *match, nil
}

// Resolve validates that path sits inside one of the library directories.
// Guards the extraction layer against traversal through spoken input that
// somehow carries a raw path.
func (l *Library) Resolve(path string) (string, error) {
	if strings.Contains(path, "..") {
		return "", ErrPathTraversal
	}
	cleaned := filepath.Clean(path)
	for _, dir := range l.cfg.Dirs {
		base := filepath.Clean(dir)
		if strings.HasPrefix(cleaned, base+string(filepath.Separator)) {
			return cleaned, nil
		}
	}
	return "", ErrPathTraversal
}

// SpokenName turns a file name into its spoken form: extension dropped,
// underscores and hyphens become spaces, words title-cased.
func SpokenName(filename string) string {
	stem := strings.TrimSuffix(filename, filepath.Ext(filename))
	stem = strings.ReplaceAll(stem, "_", " ")
	stem = strings.ReplaceAll(stem, "-", " ")

	words := strings.Fields(stem)
	for i, w := range words {
		r := []rune(w)
		if r[0] >= 'a' && r[0] <= 'z' {
			r[0] -= 'a' - 'A'
		}
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}

// squash lowercases and strips separators so spoken names compare loosely:
// "my physics notes" == "My_Physics_Notes".
func squash(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "_", "")
	s = strings.ReplaceAll(s, "-", "")
	return s
}
