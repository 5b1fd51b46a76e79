package file

import (
	"path/filepath"
	"strings"
)

// ReplaceExt swaps the extension of path for ext, which may be given with or
// without a leading dot. A path without an extension gets ext appended.
func ReplaceExt(path, ext string) string {
	if path == "" {
		return path
	}

	dir := filepath.Dir(path)
	filename := filepath.Base(path)

	lastDot := strings.LastIndex(filename, ".")

	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}

	if lastDot <= 0 {
		return filepath.Join(dir, filename+ext)
	}

	return filepath.Join(dir, filename[:lastDot]+ext)
}

// EnsureExt appends ext to path only when the path has no extension yet.
func EnsureExt(path, ext string) string {
	if path == "" || filepath.Ext(filepath.Base(path)) != "" {
		return path
	}
	return ReplaceExt(path, ext)
}
