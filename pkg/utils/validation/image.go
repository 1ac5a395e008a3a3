package validation

import (
	"errors"
	"mime/multipart"
	"path/filepath"
	"strings"
)

var (
	ErrFileSize     = errors.New("file size exceeds limit of 10MB")
	ErrFileType     = errors.New("invalid file type. Allowed types: JPG, PNG, WEBP")
	ErrFileRequired = errors.New("no file provided")
	ErrHeicFile     = errors.New("HEIC files are not supported. Please convert to JPEG or PNG first")
)

const MaxImageSize = 10 * 1024 * 1024 // 10MB

var AllowedImageTypes = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

func ValidateImage(file *multipart.FileHeader) error {
	if file == nil {
		return ErrFileRequired
	}

	// Boyut kontrolü
	if file.Size > MaxImageSize {
		return ErrFileSize
	}

	ext := filepath.Ext(strings.ToLower(file.Filename))

	// iPhone HEIC dosyaları decode edilemiyor
	if ext == ".heic" || file.Header.Get("Content-Type") == "image/heic" {
		return ErrHeicFile
	}

	if !AllowedImageTypes[ext] {
		return ErrFileType
	}

	return nil
}
