// Package configutil reads json5 config files that can be overridden by a
// sibling .local file kept out of version control.
package configutil

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"dario.cat/mergo"
	"github.com/titanous/json5"
)

// LayerPaths lists the files ReadConfig considers for name, lowest priority
// first: "dir/app.json5" yields "dir/app.json5" and "dir/app.local.json5".
func LayerPaths(name string) []string {
	ext := filepath.Ext(name)
	return []string{
		name,
		strings.TrimSuffix(name, ext) + ".local" + ext,
	}
}

// readLayer decodes one file, found is false when it does not exist or is empty.
func readLayer[T any](path string) (layer T, found bool, err error) {
	contents, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return layer, false, nil
	}
	if err != nil {
		return layer, false, err
	}
	if len(strings.TrimSpace(string(contents))) == 0 {
		return layer, false, nil
	}
	err = json5.Unmarshal(contents, &layer)
	if err != nil {
		return layer, false, fmt.Errorf("parse %s: %w", path, err)
	}
	return layer, true, nil
}

// ReadConfig merges every existing layer of name, later layers override the
// fields they set. It returns fs.ErrNotExist when no layer exists.
func ReadConfig[T any](name string) (T, error) {
	var out T
	found := false

	for _, path := range LayerPaths(name) {
		layer, ok, err := readLayer[T](path)
		if err != nil {
			return out, err
		}
		if !ok {
			continue
		}
		if !found {
			out = layer
			found = true
			continue
		}
		err = mergo.Merge(&out, layer, mergo.WithOverride)
		if err != nil {
			return out, fmt.Errorf("merge %s: %w", path, err)
		}
		slog.Debug("merged config override", "path", path)
	}

	if !found {
		return out, fs.ErrNotExist
	}
	return out, nil
}

// ReadRecursively looks for name in the working directory and then each of
// its parents, returning the first one ReadConfig finds.
func ReadRecursively[T any](name string) (T, error) {
	var out T

	dir, err := os.Getwd()
	if err != nil {
		return out, err
	}
	for {
		out, err = ReadConfig[T](filepath.Join(dir, name))
		if !errors.Is(err, fs.ErrNotExist) {
			return out, err
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return out, fs.ErrNotExist
		}
		dir = parent
	}
}
