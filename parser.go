package kvjson

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// MaxLineSize bounds a single source line. Longer lines fail with
// ErrIoUnavailable wrapping bufio.ErrTooLong.
const MaxLineSize = 16 << 20

// Scanner wraps a bufio.Scanner and tracks line numbers.
type Scanner struct {
	*bufio.Scanner
	lineNum int
}

// NewScanner creates a new Scanner from an io.Reader.
func NewScanner(r io.Reader) *Scanner {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), MaxLineSize)
	return &Scanner{Scanner: sc}
}

// NextLine advances the scanner and returns the current line number and text.
func (s *Scanner) NextLine() (int, string, bool) {
	if !s.Scan() {
		return s.lineNum, "", false
	}
	s.lineNum++
	return s.lineNum, s.Text(), true
}

// Parser runs text through a preprocessing step, a line classifier and the
// tree builder.
type Parser struct {
	preprocess func(string) string
	classifier LineClassifier
}

// NewParser creates a Parser for the localization grammar.
func NewParser() *Parser {
	return &Parser{
		preprocess: NewPreprocessor().Process,
		classifier: NewClassifier(),
	}
}

// WithClassifier replaces the line classifier.
func (p *Parser) WithClassifier(c LineClassifier) *Parser {
	p.classifier = c
	return p
}

// WithPreprocess replaces the preprocessing step. A nil fn disables it.
func (p *Parser) WithPreprocess(fn func(string) string) *Parser {
	p.preprocess = fn
	return p
}

// Preprocess applies the preprocessing step to text.
func (p *Parser) Preprocess(text string) string {
	if p.preprocess == nil {
		return text
	}
	return p.preprocess(text)
}

// ParseDocument reads all of r and builds its value tree.
func (p *Parser) ParseDocument(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIoUnavailable, err)
	}
	return p.ParseString(string(data))
}

// ParseString builds the value tree of text.
func (p *Parser) ParseString(text string) (*Document, error) {
	return p.build(p.Preprocess(text))
}

// build runs the classifier and builder over already preprocessed text.
func (p *Parser) build(text string) (*Document, error) {
	scanner := NewScanner(strings.NewReader(text))
	ctx := NewBuildContext()

	for {
		lineNum, line, ok := scanner.NextLine()
		if !ok {
			break
		}
		if err := ctx.Feed(lineNum, p.classifier.Classify(line)); err != nil {
			return nil, err
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: line %d: %w", ErrIoUnavailable, scanner.lineNum+1, err)
	}

	return ctx.Finish()
}
