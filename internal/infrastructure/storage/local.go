// Package storage implements cover-image persistence on the local disk.
package storage

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/FatimaZahraMH/blog-backend/internal/core/domain"
	"github.com/FatimaZahraMH/blog-backend/internal/core/ports"
)

const maxImageSize = 5 << 20 // 5 MB

// allowedImageTypes maps accepted content types to the extension files are
// stored with.
var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// LocalImageStore writes images to a directory on the local filesystem and
// maps them to public URLs under baseURL. Filenames are random, never taken
// from the upload.
type LocalImageStore struct {
	dir     string
	baseURL string
}

func NewLocalImageStore(dir, baseURL string) (*LocalImageStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalImageStore{
		dir:     dir,
		baseURL: strings.TrimRight(baseURL, "/"),
	}, nil
}

// Store validates the upload and writes it to disk, returning the public URL.
func (s *LocalImageStore) Store(upload ports.ImageUpload) (string, error) {
	ext, ok := allowedImageTypes[strings.ToLower(upload.ContentType)]
	if !ok {
		return "", fmt.Errorf("%w: unsupported content type %q", domain.ErrInvalidImage, upload.ContentType)
	}
	if upload.Size <= 0 || upload.Size > maxImageSize {
		return "", fmt.Errorf("%w: size must be between 1 byte and 5 MB", domain.ErrInvalidImage)
	}

	name, err := randomName()
	if err != nil {
		return "", fmt.Errorf("generate image name: %w", err)
	}
	name += ext

	path := filepath.Join(s.dir, name)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create image file: %w", err)
	}

	// LimitReader guards against clients lying about Size.
	written, err := io.Copy(f, io.LimitReader(upload.Content, maxImageSize+1))
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err == nil && written > maxImageSize {
		err = fmt.Errorf("%w: size must be between 1 byte and 5 MB", domain.ErrInvalidImage)
	}
	if err != nil {
		_ = os.Remove(path)
		return "", err
	}

	return s.baseURL + "/" + name, nil
}

// Delete removes the file behind a previously returned URL. A missing file is
// not an error.
func (s *LocalImageStore) Delete(url string) error {
	name := filepath.Base(strings.TrimRight(url, "/"))
	if name == "" || name == "." || name == string(filepath.Separator) {
		return nil
	}

	err := os.Remove(filepath.Join(s.dir, name))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete image: %w", err)
	}
	return nil
}

func randomName() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
