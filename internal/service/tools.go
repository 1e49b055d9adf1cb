package service

import (
	"regexp"
	"strings"

	"github.com/UnendingLoop/ImageGallery/internal/model"
)

var (
	allowedExt  = regexp.MustCompile(`^\.(jpe?g|png|gif)$`)
	allowedType = regexp.MustCompile(`^image/(jpe?g|png|gif)$`)
)

// validateUpload возвращает оригинальное расширение файла, если загрузку можно принимать
func validateUpload(raw *model.UploadData) (string, error) {
	if raw == nil || raw.File == nil {
		return "", model.ErrNoFile
	}

	ext := originalExt(raw.Filename)
	if !allowedExt.MatchString(strings.ToLower(ext)) {
		return "", model.ErrUnsupportedMediaType
	}
	if !allowedType.MatchString(normalizeContentType(raw.ContentType)) {
		return "", model.ErrUnsupportedMediaType
	}

	if raw.Size > model.MaxUploadSize {
		return "", model.ErrPayloadTooLarge
	}

	return ext, nil
}

// "Image/PNG; charset=binary" -> "image/png"
func normalizeContentType(ct string) string {
	ct, _, _ = strings.Cut(ct, ";")
	return strings.ToLower(strings.TrimSpace(ct))
}
