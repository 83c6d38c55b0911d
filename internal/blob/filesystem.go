package blob

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"mime"
	"os"
	"path/filepath"
	"strings"
)

// Filesystem stores blobs as plain files under a root directory. Keys are
// slash-separated paths relative to the root. Unlike a bucket it keeps no
// metadata sidecar, so content types are derived from file extensions.
type Filesystem struct {
	root string
}

// NewFilesystem returns a filesystem-backed store rooted at root, creating it
// if needed. An empty root means the working directory.
func NewFilesystem(root string) (*Filesystem, error) {
	if root == "" {
		root = "."
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, err
	}
	return &Filesystem{root: root}, nil
}

func (s *Filesystem) Driver() Driver { return DriverFilesystem }

// sanitizeKey ensures key doesn't escape root and forbids path traversal and absolute paths.
// Dots inside a name ("report..v2.html") are allowed; only a ".." segment that
// climbs above root is rejected.
func sanitizeKey(key string) (string, error) {
	if strings.TrimSpace(key) == "" {
		return "", fmt.Errorf("empty key")
	}
	if strings.HasPrefix(key, "/") {
		return "", fmt.Errorf("invalid absolute key")
	}
	clean := filepath.ToSlash(filepath.Clean(key))
	if clean == ".." || strings.HasPrefix(clean, "../") {
		return "", fmt.Errorf("invalid key traversal")
	}
	return clean, nil
}

func (s *Filesystem) pathFor(key string) (string, error) {
	k, err := sanitizeKey(key)
	if err != nil {
		return "", err
	}
	return filepath.Join(s.root, filepath.FromSlash(k)), nil
}

// Put writes r to a temporary file next to the target and renames it into
// place, so readers never observe a partial artefact.
func (s *Filesystem) Put(ctx context.Context, key string, r io.Reader, opts PutOptions) (Info, error) {
	path, err := s.pathFor(key)
	if err != nil {
		return Info{}, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return Info{}, err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-*")
	if err != nil {
		return Info{}, err
	}
	defer func() { _ = os.Remove(tmp.Name()) }()
	h := sha256.New()
	size, copyErr := io.Copy(io.MultiWriter(tmp, h), r)
	if copyErr != nil {
		_ = tmp.Close()
		return Info{}, copyErr
	}
	if err := tmp.Close(); err != nil {
		return Info{}, err
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return Info{}, err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return Info{}, err
	}
	info, err := s.Head(ctx, key)
	if err != nil {
		return Info{}, err
	}
	info.ETag = hex.EncodeToString(h.Sum(nil))
	info.Size = size
	if opts.ContentType != "" {
		info.ContentType = opts.ContentType
	}
	return info, nil
}

func (s *Filesystem) Get(ctx context.Context, key string) (Info, io.ReadCloser, error) {
	info, err := s.Head(ctx, key)
	if err != nil {
		return Info{}, nil, err
	}
	path, _ := s.pathFor(key)
	file, err := os.Open(path)
	if err != nil {
		return Info{}, nil, mapFSError(key, err)
	}
	return info, file, nil
}

func (s *Filesystem) Head(ctx context.Context, key string) (Info, error) {
	path, err := s.pathFor(key)
	if err != nil {
		return Info{}, err
	}
	st, err := os.Stat(path)
	if err != nil {
		return Info{}, mapFSError(key, err)
	}
	if st.IsDir() {
		return Info{}, fmt.Errorf("blob %s is a directory", key)
	}
	return Info{
		Key:          key,
		Size:         st.Size(),
		ContentType:  mime.TypeByExtension(filepath.Ext(path)),
		LastModified: st.ModTime().UTC(),
	}, nil
}

func mapFSError(key string, err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	return err
}
