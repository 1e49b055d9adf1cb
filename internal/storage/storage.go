package storage

import (
	"log"

	"github.com/UnendingLoop/ImageGallery/internal/storage/diskstorage"
)

// NewImgStorage - готовит каталог для картинок; без него сервису делать нечего
func NewImgStorage(dir string) *diskstorage.DiskImageStorage {
	log.Printf("Preparing IMG-storage in %q...", dir)
	strg, err := diskstorage.NewDiskStorage(dir)
	if err != nil {
		log.Fatalf("Failed to init IMG-storage: %v\nExiting app...", err)
	}
	log.Println("IMG-storage is ready!")

	return strg
}
