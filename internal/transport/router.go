package transport

import (
	"github.com/UnendingLoop/ImageGallery/internal/model"
	"github.com/wb-go/wbf/ginext"
)

// NewRouter - все маршруты сервиса плюс раздача картинок из каталога хранилища
func NewRouter(handlers *ImageHandler, imagesDir string, mode string) *ginext.Engine {
	engine := ginext.New(mode)

	engine.GET("/ping", handlers.SimplePinger)
	engine.GET("/", handlers.Index)                 // страница с галереей
	engine.POST(model.UploadRoute, handlers.Upload) // загрузка одной картинки
	engine.Static(model.ImagesRoute, imagesDir)     // сами картинки, 404 если нет

	return engine
}
