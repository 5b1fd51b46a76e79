package youtube

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"aqwari.net/xml/xmltree"
)

// tokenRequiredMarker appears in caption URLs that only resolve when the
// request carries a proof-of-origin token. Undocumented upstream signal;
// checked before any network call so the failure is immediate.
const tokenRequiredMarker = "exp=xpe"

func requiresAuthToken(rawURL string) bool {
	return strings.Contains(rawURL, tokenRequiredMarker)
}

// formattingTags are the inline tags kept when formatting is preserved.
var formattingTags = map[string]bool{
	"strong": true,
	"em":     true,
	"b":      true,
	"i":      true,
	"mark":   true,
	"small":  true,
	"del":    true,
	"ins":    true,
	"sub":    true,
	"sup":    true,
}

var (
	tagPattern = regexp.MustCompile(`</?([a-zA-Z][a-zA-Z0-9]*)(?:[^>]*)>`)
	// \s in RE2 is ASCII-only, so no-break spaces from &nbsp; are listed
	// explicitly.
	whitespacePattern = regexp.MustCompile(`[\s\x{00A0}]+`)
)

// parseTimedText converts a raw timed-text payload into ordered snippets.
// Cues without a parseable start time or without text are skipped, never
// fatal; a payload yielding zero snippets is a parse failure.
func parseTimedText(videoID string, payload []byte, preserveFormatting bool) ([]Snippet, error) {
	root, err := xmltree.Parse(payload)
	if err != nil {
		return nil, &ParseError{VideoID: videoID, Cause: err}
	}

	var snippets []Snippet
	for i := range root.Children {
		el := &root.Children[i]
		if el.Name.Local != "text" {
			continue
		}

		startAttr := el.Attr("", "start")
		if startAttr == "" {
			continue
		}
		start, err := strconv.ParseFloat(startAttr, 64)
		if err != nil {
			continue
		}

		duration := 0.0
		if durAttr := el.Attr("", "dur"); durAttr != "" {
			if v, err := strconv.ParseFloat(durAttr, 64); err == nil {
				duration = v
			}
		}

		// Entities are decoded first: embedded formatting tags arrive
		// escaped inside the cue text, so stripping only makes sense on the
		// decoded form.
		text := decodeEntities(string(el.Content))
		text = stripTags(text, preserveFormatting)
		if !preserveFormatting {
			text = whitespacePattern.ReplaceAllString(text, " ")
		}
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}

		snippets = append(snippets, Snippet{
			Text:     text,
			Start:    start,
			Duration: duration,
		})
	}

	if len(snippets) == 0 {
		return nil, &ParseError{VideoID: videoID, Detail: "payload contains no usable caption cues"}
	}

	return snippets, nil
}

// stripTags removes markup tags from decoded cue text. With formatting
// preserved, tags on the allowlist survive untouched.
func stripTags(s string, preserveFormatting bool) string {
	if !strings.Contains(s, "<") {
		return s
	}
	return tagPattern.ReplaceAllStringFunc(s, func(tag string) string {
		if preserveFormatting {
			m := tagPattern.FindStringSubmatch(tag)
			if m != nil && formattingTags[strings.ToLower(m[1])] {
				return tag
			}
		}
		return ""
	})
}

// namedEntities is the fixed entity set timed-text payloads use. Numeric
// decimal and hex escapes are handled separately.
var namedEntities = map[string]string{
	"amp":  "&",
	"lt":   "<",
	"gt":   ">",
	"quot": `"`,
	"apos": "'",
	"nbsp": "\u00a0",
}

// decodeEntities decodes the fixed named entity set plus numeric escapes.
// Unknown or malformed escapes pass through verbatim, which makes decoding
// idempotent on already-decoded text.
func decodeEntities(s string) string {
	if !strings.Contains(s, "&") {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		c := s[i]
		if c != '&' {
			b.WriteByte(c)
			i++
			continue
		}
		// Entity names and numeric escapes are short; a distant or missing
		// semicolon means this ampersand is literal text.
		end := strings.IndexByte(s[i:min(i+12, len(s))], ';')
		if end <= 1 {
			b.WriteByte(c)
			i++
			continue
		}
		if decoded, ok := decodeEntity(s[i+1 : i+end]); ok {
			b.WriteString(decoded)
			i += end + 1
		} else {
			b.WriteByte(c)
			i++
		}
	}
	return b.String()
}

func decodeEntity(name string) (string, bool) {
	if strings.HasPrefix(name, "#") {
		digits := name[1:]
		base := 10
		if len(digits) > 1 && (digits[0] == 'x' || digits[0] == 'X') {
			base = 16
			digits = digits[1:]
		}
		n, err := strconv.ParseInt(digits, base, 32)
		if err != nil || n <= 0 || n > utf8.MaxRune || !utf8.ValidRune(rune(n)) {
			return "", false
		}
		return string(rune(n)), true
	}
	if v, ok := namedEntities[name]; ok {
		return v, true
	}
	return "", false
}
