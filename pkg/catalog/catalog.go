// Package catalog builds the ordered list of placeholder file sizes from the
// remote configuration document.
package catalog

import (
	"sort"
	"strings"

	"github.com/turbospeed/speedfiles/pkg/sizetoken"
)

// Entry is one size token of the catalog with its resolved byte count.
type Entry struct {
	Token string
	Bytes float64
}

// Row is the view contract consumed by the presentation layer: one display
// row per catalog entry.
type Row struct {
	FormattedSize string
	URL           string
	RawToken      string
}

// Catalog is an immutable sequence of size entries ordered ascending by byte
// count. Build one per load; re-fetching produces a new Catalog rather than
// mutating an existing one.
type Catalog struct {
	entries []Entry
}

// New builds a Catalog from raw size tokens. The tokens are stable-sorted
// ascending by their byte count, so entries with equal sizes (including
// malformed tokens, which all resolve to zero) keep their original relative
// order.
func New(tokens []string) *Catalog {
	entries := make([]Entry, 0, len(tokens))
	for _, token := range tokens {
		entries = append(entries, Entry{
			Token: token,
			Bytes: sizetoken.ToBytes(token),
		})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Bytes < entries[j].Bytes
	})
	return &Catalog{entries: entries}
}

// Len returns the number of entries.
func (c *Catalog) Len() int {
	return len(c.entries)
}

// Entries returns a copy of the ordered entries.
func (c *Catalog) Entries() []Entry {
	entries := make([]Entry, len(c.entries))
	copy(entries, c.entries)
	return entries
}

// Tokens returns the ordered raw tokens.
func (c *Catalog) Tokens() []string {
	tokens := make([]string, len(c.entries))
	for i, e := range c.entries {
		tokens[i] = e.Token
	}
	return tokens
}

// Rows builds the display rows for the given base URL. Each short URL is the
// base location with the raw token appended as a path segment.
func (c *Catalog) Rows(baseURL string) []Row {
	base := strings.TrimSuffix(baseURL, "/")
	rows := make([]Row, len(c.entries))
	for i, e := range c.entries {
		rows[i] = Row{
			FormattedSize: sizetoken.FormatForDisplay(e.Token),
			URL:           base + "/" + e.Token,
			RawToken:      e.Token,
		}
	}
	return rows
}

// URLFor returns the short URL for the given token and whether the token is
// part of the catalog.
func (c *Catalog) URLFor(baseURL, token string) (string, bool) {
	token = strings.ToLower(token)
	for _, e := range c.entries {
		if e.Token == token {
			return strings.TrimSuffix(baseURL, "/") + "/" + e.Token, true
		}
	}
	return "", false
}
