// Package static serves files stored under a URL prefix. The prefix is also
// the directory name under the configured root, so "/static/app.css" reads
// "<root>/static/app.css".
package static

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

var (
	ErrForbidden = errors.New("path escapes static root")
	ErrNotFound  = errors.New("static file not found")
)

type Resolver struct {
	prefix string
	root   string
}

// New returns a Resolver for prefix. An empty root means the working
// directory.
func New(prefix, root string) *Resolver {
	if root == "" {
		root = "."
	}
	return &Resolver{
		prefix: strings.Trim(prefix, "/"),
		root:   root,
	}
}

func (r *Resolver) Prefix() string {
	return r.prefix
}

// Matches reports whether path falls under the static prefix.
func (r *Resolver) Matches(path string) bool {
	return strings.HasPrefix(path, "/"+r.prefix+"/")
}

// Read returns the contents of the file path names. It fails with
// ErrForbidden for paths that try to leave the prefix directory and with
// ErrNotFound for anything that cannot be read as a regular file.
func (r *Resolver) Read(path string) ([]byte, error) {
	rel, err := r.relative(path)
	if err != nil {
		return nil, err
	}

	root, err := os.OpenRoot(filepath.Join(r.root, r.prefix))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotFound, err)
	}
	defer root.Close()

	// os.Root also refuses symlinks that point outside the directory.
	f, err := root.Open(rel)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotFound, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil || !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotFound, err)
	}
	return data, nil
}

// relative strips "/<prefix>/" and rejects traversal or absolute names in
// what remains.
func (r *Resolver) relative(path string) (string, error) {
	if !r.Matches(path) {
		return "", fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	rel := strings.TrimPrefix(path, "/"+r.prefix+"/")
	if rel == "" {
		return "", fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	if strings.ContainsRune(rel, '\\') || filepath.IsAbs(rel) {
		return "", fmt.Errorf("%w: %s", ErrForbidden, path)
	}
	for seg := range strings.SplitSeq(rel, "/") {
		if seg == ".." {
			return "", fmt.Errorf("%w: %s", ErrForbidden, path)
		}
	}
	return filepath.FromSlash(filepath.Clean(rel)), nil
}
