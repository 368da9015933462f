package kvjson

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"
)

const (
	// FileExtension is the only extension accepted in folder mode.
	FileExtension = ".txt"
	// LocalizationRoot is the required name of the parent folder in
	// sub-folder mode.
	LocalizationRoot = "localization"
	// MaxSubFolders bounds the sub-folder list.
	MaxSubFolders = 7
)

// ConvertFolder converts every file in dir into
//
//	{"category": <dir name>, "languages": [<file>, ...]}
//
// Files keep directory order; files dropped by the empty-file policy are
// left out. Any entry without FileExtension fails the whole folder before
// anything is converted.
func (c *Converter) ConvertFolder(ctx context.Context, dir string) (*Value, error) {
	dir = filepath.Clean(dir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIoUnavailable, err)
	}

	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != FileExtension {
			return nil, fmt.Errorf("%w: %s", ErrUnexpectedFileType, filepath.Join(dir, e.Name()))
		}
	}

	category := folderName(dir)
	results := make([]*Result, len(entries))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.jobs())
	for i, e := range entries {
		path := filepath.Join(dir, e.Name())
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := c.convertFile(category, path)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	languages := Array()
	for _, res := range results {
		if res.Include {
			languages.Append(res.Value)
		}
	}

	c.log.Info("converted folder", "category", category, "files", len(entries), "languages", languages.Len())
	return Object().
		Set("category", String(category)).
		Set("languages", languages), nil
}

// ConvertSubFolders converts the named folders under parent into
//
//	{"folders": [<name>, ...], <name>: <folder document>, ...}
//
// parent must be named LocalizationRoot.
func (c *Converter) ConvertSubFolders(ctx context.Context, parent string, names []string) (*Value, error) {
	parent = filepath.Clean(parent)
	if base := folderName(parent); base != LocalizationRoot {
		return nil, fmt.Errorf("%w: %q is not a %q folder", ErrInvalidSubFolderRoot, base, LocalizationRoot)
	}
	if len(names) == 0 || len(names) > MaxSubFolders {
		return nil, fmt.Errorf("%w: expected 1 to %d, got %d", ErrInvalidSubFolderCount, MaxSubFolders, len(names))
	}

	docs := make([]*Value, len(names))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.jobs())
	for i, name := range names {
		g.Go(func() error {
			doc, err := c.ConvertFolder(gctx, filepath.Join(parent, name))
			if err != nil {
				return err
			}
			docs[i] = doc
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	folders := Array()
	for _, name := range names {
		folders.Append(String(name))
	}

	out := Object().Set("folders", folders)
	for i, name := range names {
		out.Set(name, docs[i])
	}
	return out, nil
}

// folderName returns the name of the directory at path. Relative paths
// such as "." are resolved against the working directory first.
func folderName(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	return filepath.Base(filepath.Clean(path))
}
