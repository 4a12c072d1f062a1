package service

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"bookshelf/config"
	"bookshelf/logger"
	"bookshelf/util/common"

	"github.com/disintegration/imaging"
)

const (
	maxImageWidth = 800
	jpegQuality   = 80
)

// ImageService resizes and re-encodes uploaded cover images and stores
// them under the configured images folder.
type ImageService struct {
	dir string
}

func NewImageService() *ImageService {
	return &ImageService{dir: config.GetImagesFolderPath()}
}

// Process decodes the upload, shrinks it proportionally to at most
// maxImageWidth and writes it as a JPEG named {epochMillis}-{base}.jpg.
// It returns the stored filename. Every upload is processed and stored
// anew, identical bytes included.
func (s *ImageService) Process(r io.Reader, originalName string) (string, error) {
	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return "", fmt.Errorf("unsupported image data: %w", common.ErrValidation)
	}

	if img.Bounds().Dx() > maxImageWidth {
		img = imaging.Resize(img, maxImageWidth, 0, imaging.Lanczos)
	}

	if err := os.MkdirAll(s.dir, 0o750); err != nil {
		return "", err
	}

	name := fmt.Sprintf("%d-%s.jpg", time.Now().UnixMilli(), sanitizeName(originalName))
	path := filepath.Join(s.dir, name)
	if err := imaging.Save(img, path, imaging.JPEGQuality(jpegQuality)); err != nil {
		return "", err
	}

	if info, err := os.Stat(path); err == nil {
		logger.Debugf("stored image %s (%s)", name, common.FormatBytes(info.Size()))
	}
	return name, nil
}

// Remove deletes a stored image by filename. Failures are logged only,
// the caller never sees them.
func (s *ImageService) Remove(name string) {
	if name == "" {
		return
	}
	if err := os.Remove(filepath.Join(s.dir, filepath.Base(name))); err != nil && !os.IsNotExist(err) {
		logger.Warning("remove image failed:", err)
	}
}

// Exists reports whether a stored image is present on disk.
func (s *ImageService) Exists(name string) bool {
	if name == "" {
		return false
	}
	_, err := os.Stat(filepath.Join(s.dir, filepath.Base(name)))
	return err == nil
}

func sanitizeName(name string) string {
	base := filepath.Base(name)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	base = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, base)
	if base == "" {
		base = "image"
	}
	return base
}
