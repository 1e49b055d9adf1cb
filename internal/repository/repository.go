// Package repository provides the ordered list of uploaded images and DB bootstrap
package repository

import (
	"context"
	"database/sql"
	"log"
	"path/filepath"
	"time"

	"github.com/UnendingLoop/ImageGallery/internal/repository/imgpostgres"
	"github.com/UnendingLoop/ImageGallery/internal/repository/memstore"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/wb-go/wbf/dbpg"
)

// ImageStore - упорядоченный список сгенерированных имен: только добавление и снимок
type ImageStore interface {
	Append(ctx context.Context, name string) error
	Snapshot(ctx context.Context) ([]string, error)
}

const (
	BackendMemory    = "memory"
	BackendDirectory = "directory"
	BackendPostgres  = "postgres"
)

func NewMemoryImageStore(seed ...string) *memstore.Store {
	store := memstore.New()
	store.Seed(seed)
	return store
}

func NewPostgresImageStore(dbconn *dbpg.DB) ImageStore {
	return imgpostgres.Store{DB: dbconn}
}

func ConnectWithRetries(dsnLink string, retryCount int, idleTime time.Duration) *dbpg.DB {
	dbOptions := dbpg.Options{
		MaxOpenConns:    5,
		MaxIdleConns:    5,
		ConnMaxLifetime: 10 * time.Minute,
	}
	var dbConn *dbpg.DB
	var err error

	for range retryCount {
		dbConn, err = dbpg.New(dsnLink, nil, &dbOptions)
		if err == nil {
			break
		}
		log.Printf("Failed to connect to PGDB: %s\nWaiting %v before next retry...", err, idleTime)
		time.Sleep(idleTime)
	}

	if err != nil {
		log.Fatal("Failed to connect to DB. Exiting the app...")
	}

	return dbConn
}

func MigrateWithRetries(db *sql.DB, migrationsPath string, retries int, idle time.Duration) {
	for i := range retries {
		log.Printf("Migration try #%d...", i+1)
		err := runMigrate(db, migrationsPath)
		if err == nil {
			return
		}
		log.Printf("Migration try #%d was unsuccessful: %v. Waiting %v before next try...", i+1, err, idle)
		time.Sleep(idle)
	}
	log.Fatalln("Out of migration retries. Exiting...")
}

func runMigrate(db *sql.DB, migrationsPath string) error {
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return err
	}

	absPath, err := filepath.Abs(migrationsPath)
	if err != nil {
		return err
	}

	sourceURL := "file://" + absPath
	log.Println("Running migrations from:", sourceURL)

	m, err := migrate.NewWithDatabaseInstance(
		sourceURL,
		"postgres",
		driver,
	)
	if err != nil {
		return err
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return err
	}

	log.Println("Database migrations applied successfully")
	return nil
}
