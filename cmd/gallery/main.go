// Package main (in gallery-subfolder) provides launch of the image gallery server
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/UnendingLoop/ImageGallery/internal/config"
	"github.com/UnendingLoop/ImageGallery/internal/kafka"
	"github.com/UnendingLoop/ImageGallery/internal/mwlogger"
	"github.com/UnendingLoop/ImageGallery/internal/repository"
	"github.com/UnendingLoop/ImageGallery/internal/service"
	"github.com/UnendingLoop/ImageGallery/internal/storage"
	"github.com/UnendingLoop/ImageGallery/internal/storage/diskstorage"
	"github.com/UnendingLoop/ImageGallery/internal/transport"
	"github.com/wb-go/wbf/dbpg"
	wbfkafka "github.com/wb-go/wbf/kafka"
	"github.com/wb-go/wbf/zlog"
)

func main() {
	// инициализировать конфиг/ считать энвы
	appConfig, err := config.Load("./.env")
	if err != nil {
		log.Fatalf("Failed to load config: %s\nExiting app...", err)
	}

	// стартуем логгер
	zlog.InitConsole()
	if err := zlog.SetLevel(appConfig.LogLevel); err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	// готовим заранее слушатель прерываний - контекст для всего приложения
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// каталог для картинок
	strg := storage.NewImgStorage(appConfig.StorageDir)
	// список загруженных картинок
	store, dbConn := newImageStore(ctx, appConfig, strg)

	// события о загрузках - только если указан брокер
	pub, closePub := newPublisher(ctx, appConfig)

	// создаем экземпляр сервиса
	var svc GalleryAPIService = service.NewGalleryService(store, strg, pub)
	// cоздаем экземпляр хендлера HTTP и роутер
	handlers := transport.NewImageHandler(svc)
	engine := transport.NewRouter(handlers, strg.Dir(), appConfig.GinMode)

	srv := &http.Server{
		Addr:              ":" + appConfig.Port,
		Handler:           mwlogger.NewMWLogger(engine),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Server launch
	go func() {
		log.Printf("Server running on http://localhost%s\n", srv.Addr)
		err := srv.ListenAndServe()
		if err != nil {
			switch {
			case errors.Is(err, http.ErrServerClosed):
				log.Println("Server gracefully stopping...")
			default:
				log.Printf("Server stopped: %v", err)
				stop()
			}
		}
	}()

	// ждем отмены контекста для запуска грейсфул закрытия сервера, брокера и бд
	<-ctx.Done()

	shutdown(srv, closePub, dbConn)
	log.Println("Exiting gallery...")
}

func newImageStore(ctx context.Context, cfg *config.AppConfig, strg *diskstorage.DiskImageStorage) (repository.ImageStore, *dbpg.DB) {
	switch cfg.StoreBackend {
	case repository.BackendPostgres:
		// подключитсья к базе
		dbConn := repository.ConnectWithRetries(cfg.PostgresDSN, 5, 10*time.Second)
		// накатываем миграцию
		repository.MigrateWithRetries(dbConn.Master, cfg.MigrationsPath, 10, 15*time.Second)
		return repository.NewPostgresImageStore(dbConn), dbConn
	case repository.BackendDirectory:
		// список переживает рестарт: подхватываем то, что уже лежит в каталоге
		names, err := strg.List(ctx)
		if err != nil {
			log.Fatalf("Failed to list IMG-storage: %v\nExiting app...", err)
		}
		log.Printf("Loaded %d images from IMG-storage", len(names))
		return repository.NewMemoryImageStore(names...), nil
	default:
		return repository.NewMemoryImageStore(), nil
	}
}

func newPublisher(ctx context.Context, cfg *config.AppConfig) (service.EventPublisher, func() error) {
	if cfg.KafkaBroker == "" {
		log.Println("KAFKA_BROKER is empty. Upload events are disabled")
		return service.NoopPublisher{}, func() error { return nil }
	}

	// ждем пока кафка раздуплится
	waitCtx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()
	if err := kafka.WaitKafkaReady(waitCtx, cfg.KafkaBroker, 5*time.Second); err != nil {
		log.Fatalf("Kafka is not reachable: %v\nExiting app...", err)
	}
	if err := kafka.InitKafkaTopics(waitCtx, cfg.KafkaBroker, 5*time.Second, cfg.KafkaTopic); err != nil {
		log.Fatalf("Failed to create kafka topic: %v\nExiting app...", err)
	}

	pub := wbfkafka.NewProducer([]string{cfg.KafkaBroker}, cfg.KafkaTopic)
	return pub, pub.Close
}

func shutdown(srv *http.Server, closePub func() error, dbConn *dbpg.DB) {
	log.Println("Interrupt received!!! Starting shutdown sequence...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Println("Failed to shutdown HTTP-server correctly:", err)
	}
	log.Println("HTTP-server stopped.")

	// Closing Kafka connection:
	if err := closePub(); err != nil {
		log.Println("Failed to close Kafka-writer:", err)
	}

	// Closing DB connection
	if dbConn == nil {
		return
	}
	if err := dbConn.Master.Close(); err != nil {
		log.Println("Failed to close DB-conn correctly:", err)
		return
	}
	log.Println("DBconn closed")
}
