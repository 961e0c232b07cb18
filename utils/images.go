package utils

import (
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
)

var SupportedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
	"image/gif":  true,
}

func EnsureDir(dir string) error {
	return os.MkdirAll(dir, 0755)
}

// SaveImageWithThumb decodes an uploaded image, writes the original as
// <dir>/<name>.jpg and a 300px-wide thumbnail as <dir>/thumb/<name>.jpg.
// Returns the relative path of the saved original.
func SaveImageWithThumb(file multipart.File, dir, name string) (string, error) {
	img, err := imaging.Decode(file)
	if err != nil {
		return "", fmt.Errorf("failed to decode image: %w", err)
	}

	if err := EnsureDir(dir); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}
	thumbDir := filepath.Join(dir, "thumb")
	if err := EnsureDir(thumbDir); err != nil {
		return "", fmt.Errorf("failed to create thumbnail directory: %w", err)
	}

	fileName := name + ".jpg"
	originalPath := filepath.Join(dir, fileName)
	if err := imaging.Save(img, originalPath); err != nil {
		return "", fmt.Errorf("failed to save image: %w", err)
	}

	thumb := imaging.Resize(img, 300, 0, imaging.Lanczos)
	if err := imaging.Save(thumb, filepath.Join(thumbDir, fileName)); err != nil {
		return "", fmt.Errorf("failed to save thumbnail: %w", err)
	}

	return fileName, nil
}
