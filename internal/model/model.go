// Package model provides data-structs for internal app-usage
package model

import (
	"errors"
	"mime/multipart"
	"time"

	"github.com/google/uuid"
)

const (
	MaxUploadSize int64 = 2 << 20 // 2 MiB
	DisplayWidth        = 300
	FormField           = "image"
	ImagesRoute         = "/images"
	UploadRoute         = "/upload"
)

// UploadedImage - принятая и сохраненная картинка
type UploadedImage struct {
	Filename    string     `json:"filename"`
	ContentType string     `json:"content_type"`
	Size        int64      `json:"size"`
	UploadedAt  *time.Time `json:"uploaded_at,omitempty"`
}

// UploadData - то, что транспорт достает из multipart-формы и отдает в сервис
type UploadData struct {
	File        multipart.File
	Filename    string // оригинальное имя файла у клиента
	ContentType string
	Size        int64
}

// UploadEvent - сообщение в брокер о новой картинке
type UploadEvent struct {
	ID          uuid.UUID `json:"id"`
	Filename    string    `json:"filename"`
	ContentType string    `json:"content_type"`
	Size        int64     `json:"size"`
	UploadedAt  time.Time `json:"uploaded_at"`
}

// ------------------

var (
	ErrCommon500            error = errors.New("something went wrong. Try again later")         // 500
	ErrNoFile               error = errors.New("no file supplied")                              // 400
	ErrUnsupportedMediaType error = errors.New("only images are allowed (jpeg, jpg, png, gif)") // 400
	ErrPayloadTooLarge      error = errors.New("file is too large: 2 MiB max")                  // 413
	ErrTooManyFiles         error = errors.New("exactly one file is expected in field image")   // 400
)

//--------------------

const (
	JPEG = "image/jpeg"
	PNG  = "image/png"
	GIF  = "image/gif"
)
