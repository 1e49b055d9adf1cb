package transport

import (
	"errors"
	"io"
	"log"
	"mime/multipart"
	"net/http"

	"github.com/UnendingLoop/ImageGallery/internal/model"
	"github.com/wb-go/wbf/ginext"
)

// ошибки клиенту отдаем простым текстом - страница показывает его как есть
func plainError(ctx *ginext.Context, err error) {
	ctx.Data(errorCodeDefiner(err), "text/plain; charset=utf-8", []byte(err.Error()))
}

func errorCodeDefiner(err error) int {
	switch {
	case errors.Is(err, model.ErrCommon500):
		return 500
	case errors.Is(err, model.ErrPayloadTooLarge):
		return 413
	case errors.Is(err, model.ErrNoFile),
		errors.Is(err, model.ErrUnsupportedMediaType),
		errors.Is(err, model.ErrTooManyFiles):
		return 400
	default:
		return 500
	}
}

// formFileError - превращает ошибку разбора multipart-формы в ошибку модели
func formFileError(err error) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return model.ErrPayloadTooLarge
	}
	return model.ErrNoFile
}

// checkSingleFile - в форме ровно один файл, и он в поле "image"
func checkSingleFile(form *multipart.Form) error {
	if form == nil || len(form.File[model.FormField]) == 0 {
		return model.ErrNoFile
	}
	for field, files := range form.File {
		if field != model.FormField && len(files) > 0 {
			return model.ErrTooManyFiles
		}
	}
	if len(form.File[model.FormField]) > 1 {
		return model.ErrTooManyFiles
	}
	return nil
}

func newBodyLimiter(w http.ResponseWriter, body io.ReadCloser, limit int64) io.ReadCloser {
	return http.MaxBytesReader(w, body, limit)
}

func closeFileFlow(res io.ReadCloser) {
	if res == nil {
		return
	}
	if err := res.Close(); err != nil {
		log.Println("Handler failed to close fileflow:", err)
	}
}
