package kvjson

import (
	"fmt"
	"os"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ReadText reads a source file and returns its decoded text.
func ReadText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrIoUnavailable, err)
	}
	text, err := DecodeText(data)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrIoUnavailable, path, err)
	}
	return text, nil
}

// DecodeText strips a leading byte order mark and decodes data to UTF-8.
// UTF-16 input is recognized by its BOM; anything else is read as UTF-8.
func DecodeText(data []byte) (string, error) {
	dec := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	out, _, err := transform.Bytes(dec, data)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
