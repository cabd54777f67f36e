// Package discovery normalizes a caller-supplied input (a directory, a
// single file, or an explicit list of paths) into a sorted, classified list
// of files the engine can process. A single or listed file it can't
// classify is set aside as a skipped entry rather than failing the whole
// run; unsupported files found while walking a directory are left out.
package discovery

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"dataengine/internal/types"
)

// ErrNoFiles is returned when a directory input yields zero supported
// files and there were no other entries to report as skipped.
var ErrNoFiles = errors.New("discovery: no supported files found")

// extensions maps a lower-cased, dot-prefixed file extension to its type.
var extensions = map[string]types.FileType{
	".csv":  types.TypeCSV,
	".json": types.TypeJSON,
	".log":  types.TypeLog,
	".xml":  types.TypeXML,
}

// Kind distinguishes the three legal shapes of Input.
type Kind int

const (
	KindDirectory Kind = iota
	KindFile
	KindList
)

// Input is the closed sum of supported discovery inputs.
type Input struct {
	kind  Kind
	path  string
	paths []string
}

// Dir builds a directory Input.
func Dir(path string) Input { return Input{kind: KindDirectory, path: path} }

// SingleFile builds a single-file Input.
func SingleFile(path string) Input { return Input{kind: KindFile, path: path} }

// Kind reports which shape this Input is.
func (in Input) Kind() Kind { return in.kind }

// Path returns the directory or single-file path this Input carries; it is
// empty for a KindList Input.
func (in Input) Path() string { return in.path }

// Files builds an explicit-list Input.
func Files(paths []string) Input {
	cp := make([]string, len(paths))
	copy(cp, paths)
	return Input{kind: KindList, paths: cp}
}

// Skipped records one input that could not be classified, and why.
type Skipped struct {
	Path   string
	Reason string
}

// Result is the outcome of Discover.
type Result struct {
	Files   []types.Item
	Skipped []Skipped
}

// Discover classifies input into files and skipped entries.
func Discover(input Input) (Result, error) {
	switch input.kind {
	case KindDirectory:
		return discoverDirectory(input.path)
	case KindFile:
		return discoverSingleFile(input.path)
	case KindList:
		return discoverList(input.paths)
	default:
		return Result{}, fmt.Errorf("discovery: unrecognized input kind %d", input.kind)
	}
}

func classify(path string) (types.FileType, bool) {
	ext := strings.ToLower(filepath.Ext(path))
	t, ok := extensions[ext]
	return t, ok
}

func discoverDirectory(root string) (Result, error) {
	var res Result

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if t, ok := classify(path); ok {
			res.Files = append(res.Files, types.Item{Type: t, Path: path})
		}
		return nil
	})
	if err != nil {
		return Result{}, fmt.Errorf("discovery: walk %s: %w", root, err)
	}

	sortFiles(res.Files)

	if len(res.Files) == 0 && len(res.Skipped) == 0 {
		return Result{}, ErrNoFiles
	}
	return res, nil
}

func discoverSingleFile(path string) (Result, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Result{Skipped: []Skipped{{Path: path, Reason: err.Error()}}}, nil
	}
	if !info.Mode().IsRegular() {
		return Result{Skipped: []Skipped{{Path: path, Reason: "not a regular file"}}}, nil
	}
	t, ok := classify(path)
	if !ok {
		return Result{Skipped: []Skipped{{Path: path, Reason: "unsupported file extension"}}}, nil
	}
	return Result{Files: []types.Item{{Type: t, Path: path}}}, nil
}

func discoverList(paths []string) (Result, error) {
	var res Result
	for _, p := range paths {
		one, err := discoverSingleFile(p)
		if err != nil {
			return Result{}, err
		}
		res.Files = append(res.Files, one.Files...)
		res.Skipped = append(res.Skipped, one.Skipped...)
	}
	sortFiles(res.Files)
	return res, nil
}

func sortFiles(files []types.Item) {
	sort.Slice(files, func(i, j int) bool {
		if files[i].Type != files[j].Type {
			return files[i].Type < files[j].Type
		}
		return files[i].Path < files[j].Path
	})
}
