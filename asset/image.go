package asset

import (
	"image"
	"path/filepath"
	"strings"
)

// Image is a loaded image handle.
type Image struct {
	Name string
	Path string
	Src  image.Image
}

// Width returns the natural pixel width, or 0 for an empty handle.
func (i *Image) Width() int {
	if i == nil || i.Src == nil {
		return 0
	}
	return i.Src.Bounds().Dx()
}

// Height returns the natural pixel height, or 0 for an empty handle.
func (i *Image) Height() int {
	if i == nil || i.Src == nil {
		return 0
	}
	return i.Src.Bounds().Dy()
}

// NamedPath pairs an image table key with the path it is loaded from.
type NamedPath struct {
	Name string
	Path string
}

// Basename returns the file name of path without directory and extension.
// It reports false when the file name has no extension or no stem.
func Basename(path string) (string, bool) {
	s := filepath.ToSlash(strings.TrimSpace(path))
	last := s[strings.LastIndex(s, "/")+1:]
	dot := strings.LastIndex(last, ".")
	if dot <= 0 || dot == len(last)-1 {
		return "", false
	}
	return last[:dot], true
}

// NamedPaths keys each path by its Basename. Paths without a usable
// basename are returned separately and left out of the result.
func NamedPaths(paths ...string) (named []NamedPath, invalid []string) {
	named = make([]NamedPath, 0, len(paths))
	for _, p := range paths {
		name, ok := Basename(p)
		if !ok {
			invalid = append(invalid, p)
			continue
		}
		named = append(named, NamedPath{Name: name, Path: strings.TrimSpace(p)})
	}
	return named, invalid
}
