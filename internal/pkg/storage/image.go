package storage

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"
	"path"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

const (
	thumbMaxWidth  = 480
	thumbMaxHeight = 360
	jpegQuality    = 80
)

// ImageStore saves uploaded images together with a generated thumbnail.
// Hostel and room galleries share it.
type ImageStore struct {
	storage Storage
}

// NewImageStore creates a new ImageStore backed by the given Storage.
func NewImageStore(storage Storage) *ImageStore {
	return &ImageStore{storage: storage}
}

// SavedImage holds the relative paths of a stored image and its thumbnail.
type SavedImage struct {
	Path      string
	ThumbPath string
}

// SaveImage decodes the upload, stores a JPEG-normalized copy under dir and
// a fitted thumbnail next to it. Returns both relative paths.
func (s *ImageStore) SaveImage(ctx context.Context, dir string, content io.Reader) (*SavedImage, error) {
	img, _, err := image.Decode(content)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	name := uuid.NewString()
	full := path.Join(dir, name+".jpg")
	thumb := path.Join(dir, name+"_thumb.jpg")

	buf := new(bytes.Buffer)
	if err := jpeg.Encode(buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	if err := s.storage.Save(ctx, full, buf); err != nil {
		return nil, err
	}

	thumbImg := imaging.Fit(img, thumbMaxWidth, thumbMaxHeight, imaging.Lanczos)
	thumbBuf := new(bytes.Buffer)
	if err := jpeg.Encode(thumbBuf, thumbImg, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("failed to encode thumbnail: %w", err)
	}
	if err := s.storage.Save(ctx, thumb, thumbBuf); err != nil {
		return nil, err
	}

	return &SavedImage{Path: full, ThumbPath: thumb}, nil
}

// DeleteImage removes a stored image and its thumbnail. Missing files are not an error.
func (s *ImageStore) DeleteImage(ctx context.Context, saved SavedImage) error {
	if err := s.storage.Delete(ctx, saved.Path); err != nil {
		return err
	}
	return s.storage.Delete(ctx, saved.ThumbPath)
}
