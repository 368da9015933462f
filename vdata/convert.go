package vdata

import (
	"regexp"
	"strconv"
	"strings"

	kvjson "github.com/kvjson/go"
)

var _ kvjson.LineClassifier = (*Classifier)(nil)

// Classifier classifies KV3 lines as printed by the decompiler:
//
//	<!-- kv3 encoding:text:... -->
//	{
//		m_name = "value"
//		m_list =
//		[
//			1,
//			{ ... },
//		]
//		m_empty = {}
//	}
type Classifier struct {
	keyed     *regexp.Regexp
	typed     *regexp.Regexp
	jsonFloat *regexp.Regexp
}

// NewClassifier compiles the KV3 line patterns.
func NewClassifier() *Classifier {
	return &Classifier{
		keyed:     regexp.MustCompile(`^(?:"([^"]*)"|([A-Za-z_][\w.:\-]*))[ \t]*=[ \t]*(.*)$`),
		typed:     regexp.MustCompile(`^[A-Za-z_]\w*:(".*")$`),
		jsonFloat: regexp.MustCompile(`^-?(?:0|[1-9]\d*)(?:\.\d+)?(?:[eE][+-]?\d+)?$`),
	}
}

// Classify implements kvjson.LineClassifier.
func (c *Classifier) Classify(line string) kvjson.ParsedLine {
	line = strings.TrimSpace(line)
	switch {
	case line == "", strings.HasPrefix(line, "<!--"), strings.HasPrefix(line, "//"):
		return kvjson.ParsedLine{Kind: kvjson.LineIgnored}
	}

	if pl, ok := brace(strings.TrimSuffix(line, ",")); ok {
		return pl
	}

	m := c.keyed.FindStringSubmatch(line)
	if m == nil {
		return kvjson.ParsedLine{Kind: kvjson.LineItem, Value: c.scalar(line)}
	}

	key := m[1] + m[2]
	rest := strings.TrimSpace(m[3])
	switch rest {
	case "":
		return kvjson.ParsedLine{Kind: kvjson.LineKeyOnly, Key: key}
	case "{":
		return kvjson.ParsedLine{Kind: kvjson.LineBrace, Key: key, Open: true, Container: kvjson.KindObject}
	case "[":
		return kvjson.ParsedLine{Kind: kvjson.LineBrace, Key: key, Open: true, Container: kvjson.KindArray}
	case "{}":
		return kvjson.ParsedLine{Kind: kvjson.LineKeyValue, Key: key, Value: kvjson.Object()}
	}

	if strings.HasPrefix(rest, "[") && strings.HasSuffix(rest, "]") {
		arr := kvjson.Array()
		for _, item := range splitItems(rest[1 : len(rest)-1]) {
			arr.Append(c.scalar(item))
		}
		return kvjson.ParsedLine{Kind: kvjson.LineKeyValue, Key: key, Value: arr}
	}
	return kvjson.ParsedLine{Kind: kvjson.LineKeyValue, Key: key, Value: c.scalar(rest)}
}

func brace(line string) (kvjson.ParsedLine, bool) {
	switch line {
	case "{":
		return kvjson.ParsedLine{Kind: kvjson.LineBrace, Open: true, Container: kvjson.KindObject}, true
	case "}":
		return kvjson.ParsedLine{Kind: kvjson.LineBrace, Container: kvjson.KindObject}, true
	case "[":
		return kvjson.ParsedLine{Kind: kvjson.LineBrace, Open: true, Container: kvjson.KindArray}, true
	case "]":
		return kvjson.ParsedLine{Kind: kvjson.LineBrace, Container: kvjson.KindArray}, true
	}
	return kvjson.ParsedLine{}, false
}

// scalar converts a single KV3 value.
func (c *Classifier) scalar(s string) *kvjson.Value {
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), ","))

	if m := c.typed.FindStringSubmatch(s); m != nil {
		s = m[1]
	}
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		if u, err := strconv.Unquote(s); err == nil {
			return kvjson.String(u)
		}
		return kvjson.String(s[1 : len(s)-1])
	}

	switch s {
	case "true":
		return kvjson.Bool(true)
	case "false":
		return kvjson.Bool(false)
	case "null":
		return kvjson.Null()
	case "{}":
		return kvjson.Object()
	}

	if c.jsonFloat.MatchString(s) {
		return kvjson.Number(s)
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && !strings.ContainsAny(s, "nNxX") {
		return kvjson.Number(strconv.FormatFloat(f, 'g', -1, 64))
	}
	return kvjson.String(s)
}

// splitItems splits an inline array body on commas outside quotes.
func splitItems(s string) []string {
	var (
		items   []string
		start   int
		inQuote bool
	)
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\\':
			if inQuote {
				i++
			}
		case '"':
			inQuote = !inQuote
		case ',':
			if !inQuote {
				items = append(items, s[start:i])
				start = i + 1
			}
		}
	}
	items = append(items, s[start:])

	out := items[:0]
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// Convert converts KV3 text into a value tree.
func Convert(text string) (*kvjson.Value, error) {
	doc, err := kvjson.NewParser().
		WithPreprocess(nil).
		WithClassifier(NewClassifier()).
		ParseString(text)
	if err != nil {
		return nil, err
	}
	return doc.Root, nil
}
