// Package vdata extracts a VDATA data block from a VPK archive through an
// external decompiler and converts its KV3 text to JSON.
package vdata

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	kvjson "github.com/kvjson/go"
)

const (
	// DefaultBinary is the decompiler run when Extractor.Binary is empty.
	DefaultBinary = "Source2Viewer-CLI"
	// DefaultBlock is the block dumped when Extractor.Block is empty.
	DefaultBlock = "DATA"
)

// Runner runs an external program and returns its standard output.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// ExecRunner runs programs with os/exec.
type ExecRunner struct{}

// Run starts name with args and waits for it. A failing program's standard
// error is folded into the returned error.
func (ExecRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("%w: %s", err, msg)
		}
		return nil, err
	}
	return stdout.Bytes(), nil
}

// Extractor pulls one block out of a file stored in a VPK archive.
type Extractor struct {
	Runner Runner
	// Binary is the decompiler executable. Empty selects DefaultBinary.
	Binary string
	// Block is the block to dump. Empty selects DefaultBlock.
	Block string
}

// Marker returns the line the decompiler prints before the block body.
func (e *Extractor) Marker() string {
	return Marker(e.block())
}

// Marker returns the header line printed before the named block.
func Marker(block string) string {
	return fmt.Sprintf("--- Data for block %q ---", block)
}

func (e *Extractor) block() string {
	if e.Block == "" {
		return DefaultBlock
	}
	return e.Block
}

func (e *Extractor) binary() string {
	if e.Binary == "" {
		return DefaultBinary
	}
	return e.Binary
}

// Extract runs the decompiler on vdataPath inside vpkPath and returns the
// text of the data block.
func (e *Extractor) Extract(ctx context.Context, vpkPath, vdataPath string) (string, error) {
	runner := e.Runner
	if runner == nil {
		runner = ExecRunner{}
	}

	out, err := runner.Run(ctx, e.binary(), "-i", vpkPath, "--vpk_filepath", vdataPath, "--block", e.block())
	if err != nil {
		return "", fmt.Errorf("%w: run %s: %w", kvjson.ErrIoUnavailable, e.binary(), err)
	}

	text, err := kvjson.DecodeText(out)
	if err != nil {
		return "", fmt.Errorf("%w: decode decompiler output: %w", kvjson.ErrIoUnavailable, err)
	}
	return Cut(text, e.Marker())
}

// Cut returns the block body that follows marker in a decompiler dump. The
// body ends at the next block header or at the end of the text.
func Cut(text, marker string) (string, error) {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	_, body, ok := strings.Cut(text, marker)
	if !ok {
		return "", fmt.Errorf("%w: %s", kvjson.ErrMalformedSourceMarker, marker)
	}
	if i := strings.Index(body, "\n--- "); i >= 0 {
		body = body[:i]
	}
	return strings.TrimSpace(body), nil
}
