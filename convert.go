package kvjson

import (
	"crypto/sha256"
	"fmt"
	"log/slog"
	"path/filepath"
	"runtime"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Options configures a Converter.
type Options struct {
	// KeepEmptyFiles keeps files without any topic section. They are
	// dropped from aggregates otherwise.
	KeepEmptyFiles bool
	// SkipConversion makes single-file conversion return the preprocessed
	// text instead of JSON. Aggregates ignore it.
	SkipConversion bool
	// Repairs is the structural repair table. Nil selects DefaultRepairs.
	Repairs []Repair
	// Jobs bounds how many files are converted at once. Zero uses GOMAXPROCS.
	Jobs int
	// CacheSize is the number of converted files kept in memory, keyed by
	// content. Zero disables the cache.
	CacheSize int
	Logger    *slog.Logger
}

// Result is the outcome of converting one file. Each call returns its own
// Result; callers may modify Value freely.
type Result struct {
	Value *Value
	// Include is false when the empty-file policy drops the file.
	Include bool
	Label   string
	Topics  int
	// Text holds the preprocessed source when conversion was skipped.
	Text string
}

// JSON returns the compact JSON of the result, the preprocessed text when
// conversion was skipped, or nil when the file is excluded.
func (r *Result) JSON() []byte {
	switch {
	case r.Value == nil && r.Include:
		return []byte(r.Text)
	case !r.Include:
		return nil
	default:
		return Encode(r.Value)
	}
}

type cacheKey [sha256.Size]byte

// Converter converts localization files. It is safe for concurrent use.
type Converter struct {
	opts    Options
	repairs []Repair
	log     *slog.Logger
	cache   *lru.Cache[cacheKey, *Result]
}

// NewConverter creates a Converter.
func NewConverter(opts Options) (*Converter, error) {
	c := &Converter{
		opts:    opts,
		repairs: opts.Repairs,
		log:     opts.Logger,
	}
	if c.repairs == nil {
		c.repairs = DefaultRepairs()
	}
	if c.log == nil {
		c.log = slog.New(slog.DiscardHandler)
	}
	if opts.CacheSize > 0 {
		cache, err := lru.New[cacheKey, *Result](opts.CacheSize)
		if err != nil {
			return nil, fmt.Errorf("create result cache: %w", err)
		}
		c.cache = cache
	}
	return c, nil
}

func (c *Converter) jobs() int {
	if c.opts.Jobs > 0 {
		return c.opts.Jobs
	}
	return runtime.GOMAXPROCS(0)
}

// ConvertText converts one file's text. category is the name of the folder
// the file belongs to; it selects which repairs apply.
func (c *Converter) ConvertText(category, text string) (*Result, error) {
	if c.opts.SkipConversion {
		return &Result{Include: true, Text: NewPreprocessor().Process(text)}, nil
	}
	return c.convert(category, text)
}

// ConvertFile reads and converts the file at path. The parent directory
// name is used as the category.
func (c *Converter) ConvertFile(path string) (*Result, error) {
	text, err := ReadText(path)
	if err != nil {
		return nil, err
	}
	res, err := c.ConvertText(categoryOf(path), text)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return res, nil
}

func (c *Converter) convertFile(category, path string) (*Result, error) {
	text, err := ReadText(path)
	if err != nil {
		return nil, err
	}
	res, err := c.convert(category, text)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	c.log.Debug("converted file", "path", path, "topics", res.Topics, "included", res.Include)
	return res, nil
}

func (c *Converter) convert(category, text string) (*Result, error) {
	var key cacheKey
	if c.cache != nil {
		key = sha256.Sum256([]byte(category + "\x00" + text))
		if res, ok := c.cache.Get(key); ok {
			return res.clone(), nil
		}
	}

	doc, err := NewParser().ParseString(text)
	if err != nil {
		return nil, err
	}
	if n := ApplyRepairs(doc, category, c.repairs); n > 0 {
		c.log.Debug("applied structural repairs", "category", category, "count", n)
	}

	res := &Result{
		Value:   doc.Root,
		Include: doc.Topics > 0 || c.opts.KeepEmptyFiles,
		Label:   doc.Label,
		Topics:  doc.Topics,
	}
	if c.cache != nil {
		c.cache.Add(key, res.clone())
	}
	return res, nil
}

func (r *Result) clone() *Result {
	out := *r
	out.Value = r.Value.Clone()
	return &out
}

func categoryOf(path string) string {
	return folderName(filepath.Dir(filepath.Clean(path)))
}
