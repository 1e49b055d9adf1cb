// Package service provides business-logic for the app
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/UnendingLoop/ImageGallery/internal/model"
	"github.com/UnendingLoop/ImageGallery/internal/mwlogger"
	"github.com/UnendingLoop/ImageGallery/internal/repository"
	"github.com/google/uuid"
	"github.com/wb-go/wbf/retry"
)

// сколько суффиксов пробуем, если имя по таймстампу уже занято
const maxNameAttempts = 100

type GalleryService struct {
	store     repository.ImageStore
	storage   ImageStorage
	publisher EventPublisher
	now       func() time.Time
}

func NewGalleryService(store repository.ImageStore, strg ImageStorage, pub EventPublisher) *GalleryService {
	return &GalleryService{
		store:     store,
		storage:   strg,
		publisher: pub,
		now:       time.Now,
	}
}

// EventPublisher - контракт для отправки событий в очередь
type EventPublisher interface {
	SendWithRetry(ctx context.Context, strategy retry.Strategy, key []byte, v []byte) error
}

// ImageStorage - контракт для работы с каталогом картинок
type ImageStorage interface {
	Put(ctx context.Context, name string, r io.Reader) error
	Delete(ctx context.Context, name string) error
}

// NoopPublisher - ЗАГЛУШКА на случай, если брокер не настроен
type NoopPublisher struct{}

func (NoopPublisher) SendWithRetry(ctx context.Context, strategy retry.Strategy, k []byte, v []byte) error {
	return nil
}

// Стратегия ретрая отправки события - короткая, запрос клиента ждет
var retryStrategy = retry.Strategy{
	Attempts: 3,
	Delay:    200 * time.Millisecond,
	Backoff:  2,
}

func (s GalleryService) Upload(ctx context.Context, data *model.UploadData) (*model.UploadedImage, error) {
	logger := mwlogger.LoggerFromContext(ctx)

	// валидация до любой записи на диск
	ext, err := validateUpload(data)
	if err != nil {
		return nil, err
	}

	uploadedAt := s.now()
	name, err := s.save(ctx, uploadedAt, ext, data.File)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to save image in Storage")
		return nil, model.ErrCommon500
	}

	// в список - только после успешной записи файла
	if err := s.store.Append(ctx, name); err != nil {
		logger.Error().Err(err).Msg(fmt.Sprintf("Failed to append image %q to the list", name))
		if errDel := s.storage.Delete(ctx, name); errDel != nil {
			logger.Error().Err(errDel).Msg(fmt.Sprintf("Failed to remove orphaned image %q", name))
		}
		return nil, model.ErrCommon500
	}

	res := &model.UploadedImage{
		Filename:    name,
		ContentType: data.ContentType,
		Size:        data.Size,
		UploadedAt:  &uploadedAt,
	}
	s.notify(ctx, res)

	logger.Info().Str("filename", name).Int64("size", data.Size).Msg("Image uploaded")
	return res, nil
}

func (s GalleryService) Snapshot(ctx context.Context) ([]string, error) {
	logger := mwlogger.LoggerFromContext(ctx)

	res, err := s.store.Snapshot(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to fetch images list")
		return nil, model.ErrCommon500
	}

	return res, nil
}

// save пишет файл под именем <ms><ext>; занятое имя получает суффикс -1, -2, ...
func (s GalleryService) save(ctx context.Context, t time.Time, ext string, r io.Reader) (string, error) {
	base := strconv.FormatInt(t.UnixMilli(), 10)

	for i := range maxNameAttempts {
		name := generateName(base, ext, i)
		err := s.storage.Put(ctx, name, r)
		switch {
		case err == nil:
			return name, nil
		case errors.Is(err, os.ErrExist):
			continue
		default:
			return "", err
		}
	}

	return "", fmt.Errorf("no free name for %s%s after %d attempts", base, ext, maxNameAttempts)
}

func (s GalleryService) notify(ctx context.Context, img *model.UploadedImage) {
	logger := mwlogger.LoggerFromContext(ctx)

	event := model.UploadEvent{
		ID:          uuid.New(),
		Filename:    img.Filename,
		ContentType: img.ContentType,
		Size:        img.Size,
		UploadedAt:  img.UploadedAt.UTC(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to marshal upload event")
		return
	}

	// картинка уже сохранена и в списке - ошибку очереди только логируем
	if err := s.publisher.SendWithRetry(ctx, retryStrategy, []byte(img.Filename), payload); err != nil {
		logger.Error().Err(err).Msg(fmt.Sprintf("Failed to publish upload event for %q", img.Filename))
	}
}

func generateName(base, ext string, attempt int) string {
	if attempt == 0 {
		return base + ext
	}
	return base + "-" + strconv.Itoa(attempt) + ext
}

func originalExt(filename string) string {
	return filepath.Ext(filepath.Base(filename))
}
