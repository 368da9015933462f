package kvjson

import (
	"regexp"
	"strings"
)

const (
	// A single quoted token on one line followed by another single quoted
	// token on the next line: a key/value pair wrapped by mistake upstream.
	wrappedPairPattern = `(?m)^([ \t]*"[^"\n]*")[ \t]*\n[ \t]*("[^"\n]*")[ \t]*$`

	// //-----
	// // Name
	// // optional description
	// //-----
	topicHeaderPattern = `(?m)(?:^[ \t]*//-+[ \t]*\n)+[ \t]*// ([^\n-][^\n]*?)[ \t]*\n(?:[ \t]*// [^\n]*\n)?(?:[ \t]*//-+[ \t]*(?:\n|$))+`
)

// Preprocessor repairs known upstream defects in localization text before
// it is classified line by line.
type Preprocessor struct {
	wrappedPair *regexp.Regexp
	topicHeader *regexp.Regexp
}

// NewPreprocessor compiles the repair patterns.
func NewPreprocessor() *Preprocessor {
	return &Preprocessor{
		wrappedPair: regexp.MustCompile(wrappedPairPattern),
		topicHeader: regexp.MustCompile(topicHeaderPattern),
	}
}

// Process joins wrapped key/value lines and then rewrites decorated topic
// header blocks into a bare line holding only the header text. Line endings
// are normalized to "\n". Text without either defect is returned as is.
func (p *Preprocessor) Process(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = p.wrappedPair.ReplaceAllString(text, "${1}\t${2}")
	return p.topicHeader.ReplaceAllString(text, "${1}\n")
}
