package driver

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"glean/internal/codec"
	"glean/internal/treefile"
)

// ErrNoTreeFiles is returned when the given paths name no tree files.
var ErrNoTreeFiles = errors.New("no tree files found")

// IsTreeFile reports whether path has a tree file extension.
func IsTreeFile(path string) bool {
	switch filepath.Ext(path) {
	case ".toml", ".mp":
		return true
	default:
		return false
	}
}

// ListTreeFiles expands directories in paths into the tree files they contain.
// Files named explicitly are kept whatever their extension. The result is
// sorted and free of duplicates.
func ListTreeFiles(paths []string) ([]string, error) {
	var files []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, p)
			continue
		}
		err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && IsTreeFile(path) && filepath.Base(path) != "glean.toml" {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	if len(files) == 0 {
		return nil, ErrNoTreeFiles
	}
	slices.Sort(files)
	return slices.Compact(files), nil
}

// LoadFile decodes a tree file. msgpack files (.mp) are decoded directly; TOML
// files go through cache when it is not nil.
func LoadFile(path string, cache *codec.DiskCache) (*treefile.File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if filepath.Ext(path) == ".mp" {
		return codec.Decode(bytes.NewReader(data), path)
	}

	key := codec.DigestOf(data)
	if f, ok, err := cache.Get(key, path); err == nil && ok {
		return f, nil
	}
	f, err := treefile.Decode(bytes.NewReader(data), path)
	if err != nil {
		return nil, err
	}
	// A cache write failure only costs the next run a re-parse.
	_ = cache.Put(key, f)
	return f, nil
}
