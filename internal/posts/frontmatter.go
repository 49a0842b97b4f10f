package posts

import (
	"sort"
	"strings"
)

const (
	delimiter     = "---"
	byteOrderMark = "\ufeff"
)

// Metadata holds the key/value pairs of a post's front matter. All values
// are kept as strings; interpreting them is up to the caller.
type Metadata map[string]string

func (m Metadata) Get(key string) string { return m[key] }

func (m Metadata) Title() string       { return m["title"] }
func (m Metadata) PublishedAt() string { return m["publishedAt"] }
func (m Metadata) Summary() string     { return m["summary"] }
func (m Metadata) Image() string       { return m["image"] }

// ParseFrontMatter splits raw file text into its front matter and body.
//
// A header is only recognised when the very first line (after an optional
// UTF-8 byte order mark) is "---"; it runs until the next line consisting
// solely of "---". Otherwise the whole text is the body and the metadata is
// empty, so horizontal rules further down a file never start a header.
// Parsing never fails: lines that are not key/value pairs are skipped.
func ParseFrontMatter(text string) (Metadata, string) {
	start := 0
	if strings.HasPrefix(text, byteOrderMark) {
		start = len(byteOrderMark)
	}
	line, headerStart := nextLine(text, start)
	if line != delimiter {
		return Metadata{}, text
	}
	for pos := headerStart; pos < len(text); {
		line, next := nextLine(text, pos)
		if line == delimiter {
			return parseHeader(text[headerStart:pos]), text[next:]
		}
		pos = next
	}
	return Metadata{}, text
}

// nextLine returns the line starting at pos without its terminator, and the
// offset of the line after it.
func nextLine(text string, pos int) (string, int) {
	nl := strings.IndexByte(text[pos:], '\n')
	if nl < 0 {
		return strings.TrimSuffix(text[pos:], "\r"), len(text)
	}
	return strings.TrimSuffix(text[pos:pos+nl], "\r"), pos + nl + 1
}

func parseHeader(header string) Metadata {
	meta := Metadata{}
	for _, line := range strings.Split(header, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		key, value, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		meta[key] = unquote(strings.TrimSpace(value))
	}
	return meta
}

// unquote strips one pair of matching single or double quotes.
func unquote(value string) string {
	if len(value) < 2 {
		return value
	}
	first, last := value[0], value[len(value)-1]
	if (first == '"' || first == '\'') && first == last {
		return value[1 : len(value)-1]
	}
	return value
}

var leadingKeys = []string{"title", "publishedAt", "summary", "image"}

// FormatFrontMatter writes meta and body back into the on-disk layout read by
// ParseFrontMatter. Pairs that could not be read back are left out: keys that
// are empty or contain a colon or line break, and values spanning lines.
func FormatFrontMatter(meta Metadata, body string) string {
	var b strings.Builder
	b.WriteString(delimiter + "\n")
	for _, key := range orderedKeys(meta) {
		if !representableKey(key) || strings.ContainsAny(meta[key], "\r\n") {
			continue
		}
		b.WriteString(key)
		b.WriteString(": ")
		b.WriteString(quoteIfNeeded(meta[key]))
		b.WriteString("\n")
	}
	b.WriteString(delimiter + "\n")
	b.WriteString(body)
	return b.String()
}

func orderedKeys(meta Metadata) []string {
	keys := make([]string, 0, len(meta))
	seen := make(map[string]bool, len(leadingKeys))
	for _, key := range leadingKeys {
		if _, ok := meta[key]; ok {
			keys = append(keys, key)
			seen[key] = true
		}
	}
	var rest []string
	for key := range meta {
		if !seen[key] {
			rest = append(rest, key)
		}
	}
	sort.Strings(rest)
	return append(keys, rest...)
}

func representableKey(key string) bool {
	return key != "" &&
		key == strings.TrimSpace(key) &&
		!strings.ContainsAny(key, ":\r\n")
}

func quoteIfNeeded(value string) string {
	if value == "" || value != strings.TrimSpace(value) || unquote(value) != value {
		return `"` + value + `"`
	}
	return value
}
