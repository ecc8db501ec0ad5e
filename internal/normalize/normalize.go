// Package normalize provides the string-shaping utilities shared by the
// ordinance field extractor: whitespace collapsing, extraction-artifact
// repair, title-casing and date canonicalization for the Comune ordinance
// template.
package normalize

import (
	"path"
	"regexp"
	"strings"
)

var (
	whitespaceRx    = regexp.MustCompile(`\s+`)
	abbreviationRx  = regexp.MustCompile(`^[A-Z]\.$`)
	numericDateRx   = regexp.MustCompile(`\b(\d{1,2})[./-](\d{1,2})[./-](\d{4})\b`)
	textualDateRx   = regexp.MustCompile(`(?i)\b(\d{1,2})\s+([A-Za-zÀ-ÖØ-öø-ÿ]+)\s+(\d{4})\b`)
	trailingDigitRx = regexp.MustCompile(`(\d+)$`)
)

// monthNumbers maps lowercase Italian month names to their zero-padded
// two-digit numbers.
var monthNumbers = map[string]string{
	"gennaio":   "01",
	"febbraio":  "02",
	"marzo":     "03",
	"aprile":    "04",
	"maggio":    "05",
	"giugno":    "06",
	"luglio":    "07",
	"agosto":    "08",
	"settembre": "09",
	"ottobre":   "10",
	"novembre":  "11",
	"dicembre":  "12",
}

// artifactRepairs fixes fragments the PDF text layer tends to split or glue
// the wrong way. Applied after whitespace collapsing, order matters.
var artifactRepairs = [][2]string{
	{" .", "."},
	{" ,", ","},
	{"0 8.00", "08.00"},
	{"g iorni", "giorni"},
	{"gg .", "gg."},
}

// CollapseWhitespace replaces every run of whitespace, newlines included,
// with a single space and trims both ends. Applying it twice equals applying
// it once.
func CollapseWhitespace(s string) string {
	if s == "" {
		return ""
	}
	return strings.TrimSpace(whitespaceRx.ReplaceAllString(s, " "))
}

// OneLine collapses whitespace and repairs recurring text-extraction
// artifacts. This is the normalization applied to every captured span.
func OneLine(s string) string {
	if s == "" {
		return ""
	}
	out := CollapseWhitespace(s)
	for _, r := range artifactRepairs {
		out = strings.ReplaceAll(out, r[0], r[1])
	}
	return out
}

// TitleCaseAddress capitalizes the first letter of every whitespace-delimited
// token, leaving abbreviation markers such as "N." or "S." untouched.
func TitleCaseAddress(s string) string {
	if s == "" {
		return ""
	}
	tokens := strings.Fields(s)
	for i, tok := range tokens {
		if abbreviationRx.MatchString(tok) {
			continue
		}
		tokens[i] = capitalize(tok)
	}
	return strings.Join(tokens, " ")
}

// TitleCaseWords capitalizes the first letter of every token with no
// abbreviation exception. Company names use this variant.
func TitleCaseWords(s string) string {
	if s == "" {
		return ""
	}
	tokens := strings.Fields(s)
	for i, tok := range tokens {
		tokens[i] = capitalize(tok)
	}
	return strings.Join(tokens, " ")
}

// capitalize upper-cases the first rune and lower-cases the rest.
func capitalize(tok string) string {
	runes := []rune(strings.ToLower(tok))
	if len(runes) == 0 {
		return tok
	}
	first := strings.ToUpper(string(runes[0]))
	return first + string(runes[1:])
}

// ParseCanonicalDate finds a date in s and reformats it as DD/MM/YYYY.
// The numeric form D[./-]M[./-]YYYY is tried first over the whole input; the
// textual form "D <italian month> YYYY" is only consulted when no numeric
// date exists anywhere, regardless of position. Returns "" when neither form
// matches.
func ParseCanonicalDate(s string) string {
	if s == "" {
		return ""
	}
	t := OneLine(s)
	if m := numericDateRx.FindStringSubmatch(t); m != nil {
		return padDay(m[1]) + "/" + padDay(m[2]) + "/" + m[3]
	}
	for _, m := range textualDateRx.FindAllStringSubmatch(t, -1) {
		mm, ok := monthNumbers[strings.ToLower(m[2])]
		if !ok {
			continue
		}
		return padDay(m[1]) + "/" + mm + "/" + m[3]
	}
	return ""
}

// padDay zero-pads a one- or two-digit component to two digits.
func padDay(d string) string {
	if len(d) == 1 {
		return "0" + d
	}
	return d
}

// ElixSentinel is returned by ExtractTrailingNumber when no numeric
// identifier can be derived from a filename.
const ElixSentinel = "ELIX"

// ExtractTrailingNumber derives the Elix identifier from an uploaded
// filename. Any path prefix and a case-insensitive ".pdf" suffix are
// stripped; only the last underscore-delimited segment is inspected. Trailing
// digits are returned with leading zeros removed; anything else yields the
// "ELIX" sentinel.
func ExtractTrailingNumber(filename string) string {
	if filename == "" {
		return ElixSentinel
	}
	base := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	if strings.HasSuffix(strings.ToLower(base), ".pdf") {
		base = base[:len(base)-len(".pdf")]
	}
	if i := strings.LastIndex(base, "_"); i >= 0 {
		base = base[i+1:]
	}
	m := trailingDigitRx.FindStringSubmatch(base)
	if m == nil {
		return ElixSentinel
	}
	digits := strings.TrimLeft(m[1], "0")
	if digits == "" {
		return "0"
	}
	return digits
}
