// Package sanitize normalizes mapped submission values. Every rule has
// a safe fallback: the intake event cannot be retried or rejected once
// accepted, so nothing here returns an error.
package sanitize

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/creolweb/jobintake/internal/domain"
)

var (
	strictPolicy   = bluemonday.StrictPolicy()
	richTextPolicy = newRichTextPolicy()
)

// newRichTextPolicy builds the allow-list for job descriptions:
// headings, lists, emphasis, paragraphs, and links. Scripting and
// event attributes are stripped by bluemonday's defaults.
func newRichTextPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements(
		"h1", "h2", "h3", "h4", "h5", "h6",
		"p", "br",
		"ul", "ol", "li",
		"strong", "em", "b", "i", "u",
		"blockquote",
	)
	p.AllowAttrs("href").OnElements("a")
	p.AllowStandardURLs()
	p.RequireNoFollowOnLinks(true)
	return p
}

// Text trims a plain-text value and strips any markup.
// Parameters:
//   - raw: mapped scalar value.
// Returns:
//   - string: sanitized text; empty input stays the empty string.
func Text(raw string) string {
	return strings.TrimSpace(strictPolicy.Sanitize(raw))
}

// RichText sanitizes HTML content against the restricted allow-list.
func RichText(raw string) string {
	return strings.TrimSpace(richTextPolicy.Sanitize(raw))
}

// URL validates an absolute http(s) URL. Invalid values collapse to the
// empty string rather than failing the submission.
// Parameters:
//   - raw: candidate URL.
// Returns:
//   - string: the trimmed URL when well-formed and absolute, else "".
func URL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil || !u.IsAbs() || u.Host == "" {
		return ""
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return ""
	}
	return raw
}

// PositiveInt parses leading numeric content from raw. Parse failure or
// a value <= 0 substitutes def.
// Parameters:
//   - raw: raw scalar, e.g. "90", "90 days", "garbage".
//   - def: default substituted on failure.
// Returns:
//   - int: parsed positive integer or def.
func PositiveInt(raw string, def int) int {
	raw = strings.TrimSpace(raw)

	end := 0
	for end < len(raw) && raw[end] >= '0' && raw[end] <= '9' {
		end++
	}
	if end == 0 {
		return def
	}

	n, err := strconv.Atoi(raw[:end])
	if err != nil || n <= 0 {
		return def
	}
	return n
}

// JoinedText flattens a mapped value to one sanitized string: scalar
// fields pass through Text, multi-select fields join their selected
// option IDs.
func JoinedText(v domain.MappedValue) string {
	if len(v.Selected) > 0 {
		return Text(strings.Join(v.Selected, ", "))
	}
	return Text(v.Text)
}
