package blob

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
)

// LocalStore writes objects below a directory on disk.
type LocalStore struct {
	dir     string
	baseURL string
}

// NewLocalStore creates dir if needed. URLs are baseURL joined with the key.
func NewLocalStore(dir, baseURL string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, errors.Wrapf(err, "failed to create upload dir %s", dir)
	}
	return &LocalStore{dir: dir, baseURL: baseURL}, nil
}

// Dir is the root directory objects are written to.
func (s *LocalStore) Dir() string { return s.dir }

// Put writes r to dir/key.
func (s *LocalStore) Put(ctx context.Context, key, _ string, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	target := filepath.Join(s.dir, filepath.FromSlash(key))
	rel, err := filepath.Rel(s.dir, target)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return "", errors.Newf("invalid object key %q", key)
	}

	if err := os.MkdirAll(filepath.Dir(target), 0o750); err != nil {
		return "", errors.Wrap(err, "failed to create object dir")
	}
	f, err := os.Create(target)
	if err != nil {
		return "", errors.Wrap(err, "failed to create object")
	}
	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = os.Remove(target)
		return "", errors.Wrap(err, "failed to write object")
	}
	if err := f.Close(); err != nil {
		return "", errors.Wrap(err, "failed to close object")
	}
	return joinURL(s.baseURL, key), nil
}
