package kvjson

import (
	"regexp"
	"strings"
)

// LineKind tags a ParsedLine.
type LineKind int

const (
	LineIgnored LineKind = iota
	LineBrace
	LineKeyOnly
	LineKeyValue
	LineTopic
	// LineItem is a bare array element. Only the KV3 grammar produces it.
	LineItem
)

func (k LineKind) String() string {
	switch k {
	case LineBrace:
		return "brace"
	case LineKeyOnly:
		return "key-only"
	case LineKeyValue:
		return "key-value"
	case LineTopic:
		return "topic"
	case LineItem:
		return "item"
	default:
		return "ignored"
	}
}

// ParsedLine is the classification of one input line.
type ParsedLine struct {
	Kind LineKind

	// Key is the key of a KeyValue line, the declared key of a KeyOnly
	// line, or the key a Brace(open) binds its container to.
	Key string
	// Text is the display text of a Topic line.
	Text string
	// Value is the value of a KeyValue or Item line.
	Value *Value

	// Open and Container describe a Brace line. Container is KindObject or
	// KindArray.
	Open      bool
	Container Kind
}

// LineClassifier turns a single line into a ParsedLine without looking at
// any other line.
type LineClassifier interface {
	Classify(line string) ParsedLine
}

type matcher struct {
	name  string
	match func(line string) (ParsedLine, bool)
}

// Classifier implements the localization grammar. Matchers run in a fixed
// order and the first one that accepts the line wins.
type Classifier struct {
	matchers []matcher
}

// NewClassifier builds the localization line classifier.
func NewClassifier() *Classifier {
	keyValue := regexp.MustCompile(`^[ \t]*"([^"]*)"[ \t]+(".*")`)
	keyOnly := regexp.MustCompile(`^[ \t]*"([^"]*)"[ \t]*$`)

	return &Classifier{
		matchers: []matcher{
			{"comment", matchComment},
			{"key-value", func(line string) (ParsedLine, bool) {
				m := keyValue.FindStringSubmatch(line)
				if m == nil {
					return ParsedLine{}, false
				}
				return ParsedLine{Kind: LineKeyValue, Key: m[1], Value: String(stripQuotes(m[2]))}, true
			}},
			{"topic", matchTopic},
			{"key-only", func(line string) (ParsedLine, bool) {
				m := keyOnly.FindStringSubmatch(line)
				if m == nil {
					return ParsedLine{}, false
				}
				return ParsedLine{Kind: LineKeyOnly, Key: m[1]}, true
			}},
			{"brace", matchBrace},
		},
	}
}

// Classify returns the first matching classification, or LineIgnored.
func (c *Classifier) Classify(line string) ParsedLine {
	line = strings.TrimSuffix(line, "\r")
	for _, m := range c.matchers {
		if pl, ok := m.match(line); ok {
			return pl
		}
	}
	return ParsedLine{Kind: LineIgnored}
}

func matchComment(line string) (ParsedLine, bool) {
	if strings.HasPrefix(strings.TrimSpace(line), "//") {
		return ParsedLine{Kind: LineIgnored}, true
	}
	return ParsedLine{}, false
}

func matchTopic(line string) (ParsedLine, bool) {
	name := strings.TrimSpace(line)
	if name == "" || strings.ContainsAny(line, "\"{}[]\t\r\n") {
		return ParsedLine{}, false
	}
	return ParsedLine{Kind: LineTopic, Text: name}, true
}

func matchBrace(line string) (ParsedLine, bool) {
	switch strings.TrimSpace(line) {
	case "{":
		return ParsedLine{Kind: LineBrace, Open: true, Container: KindObject}, true
	case "}":
		return ParsedLine{Kind: LineBrace, Container: KindObject}, true
	case "[":
		return ParsedLine{Kind: LineBrace, Open: true, Container: KindArray}, true
	case "]":
		return ParsedLine{Kind: LineBrace, Container: KindArray}, true
	}
	return ParsedLine{}, false
}
