// Package transport provides methods for processing requests from endpoints
package transport

import (
	"context"

	"github.com/UnendingLoop/ImageGallery/internal/model"
	"github.com/UnendingLoop/ImageGallery/internal/mwlogger"
	"github.com/UnendingLoop/ImageGallery/internal/render"
	"github.com/wb-go/wbf/ginext"
)

const htmlContentType = "text/html; charset=utf-8"

// запас на заголовки multipart поверх лимита на сам файл
const multipartOverhead int64 = 512 << 10

// сколько формы держим в памяти, остальное multipart скидывает во временные файлы
const multipartMemory int64 = 32 << 20

type ImageHandler struct {
	service ImageService
}

type ImageService interface {
	Upload(ctx context.Context, data *model.UploadData) (*model.UploadedImage, error) // проверить, сохранить, добавить в список
	Snapshot(ctx context.Context) ([]string, error)                                   // текущий список в порядке загрузки
}

func NewImageHandler(svc ImageService) *ImageHandler {
	return &ImageHandler{
		service: svc,
	}
}

func (h ImageHandler) SimplePinger(ctx *ginext.Context) {
	ctx.JSON(200, map[string]string{"message": "pong"})
}

// Index отдает всю страницу с формой и галереей
func (h ImageHandler) Index(ctx *ginext.Context) {
	images, err := h.service.Snapshot(ctx.Request.Context())
	if err != nil {
		plainError(ctx, err)
		return
	}

	page, err := render.Page(images)
	if err != nil {
		logger := mwlogger.LoggerFromContext(ctx.Request.Context())
		logger.Error().Err(err).Msg("Failed to render gallery page")
		plainError(ctx, model.ErrCommon500)
		return
	}

	ctx.Data(200, htmlContentType, page)
}

// Upload принимает ровно один файл из поля формы "image" и отвечает фрагментом <img>
func (h ImageHandler) Upload(ctx *ginext.Context) {
	maxBody := model.MaxUploadSize + multipartOverhead
	if ctx.Request.ContentLength > maxBody {
		plainError(ctx, model.ErrPayloadTooLarge)
		return
	}
	ctx.Request.Body = newBodyLimiter(ctx.Writer, ctx.Request.Body, maxBody)

	// парсинг формы: файл должен быть ровно один и только в поле "image"
	if err := ctx.Request.ParseMultipartForm(multipartMemory); err != nil {
		plainError(ctx, formFileError(err))
		return
	}
	if err := checkSingleFile(ctx.Request.MultipartForm); err != nil {
		plainError(ctx, err)
		return
	}

	imageFile, imageHeader, err := ctx.Request.FormFile(model.FormField)
	if err != nil {
		plainError(ctx, formFileError(err))
		return
	}
	defer closeFileFlow(imageFile)

	// собираем все в структуру
	var data model.UploadData
	data.File = imageFile
	data.Filename = imageHeader.Filename
	data.ContentType = imageHeader.Header.Get("Content-Type")
	data.Size = imageHeader.Size

	// передаем в сервис
	res, err := h.service.Upload(ctx.Request.Context(), &data)
	if err != nil {
		plainError(ctx, err)
		return
	}

	fragment, err := render.Fragment(res.Filename)
	if err != nil {
		logger := mwlogger.LoggerFromContext(ctx.Request.Context())
		logger.Error().Err(err).Msg("Failed to render image fragment")
		plainError(ctx, model.ErrCommon500)
		return
	}

	ctx.Data(200, htmlContentType, fragment)
}
