// Package diskstorage provides structure to keep uploaded images in a local directory
package diskstorage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

var ErrInvalidName = errors.New("invalid file name")

type DiskImageStorage struct {
	dir string
}

func NewDiskStorage(dir string) (*DiskImageStorage, error) {
	if dir == "" {
		return nil, errors.New("empty storage directory")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory %q: %w", dir, err)
	}

	return &DiskImageStorage{dir: dir}, nil
}

func (s *DiskImageStorage) Dir() string {
	return s.dir
}

// Put creates the file exclusively: an existing name yields an error wrapping os.ErrExist.
func (s *DiskImageStorage) Put(ctx context.Context, name string, r io.Reader) error {
	if r == nil {
		return errors.New("nil reader passed to storage.Put")
	}
	path, err := s.path(name)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return err
	}

	if _, err := io.Copy(f, r); err != nil {
		closeAndRemove(f, path)
		return fmt.Errorf("failed to write %q: %w", name, err)
	}
	if err := f.Close(); err != nil {
		removeFile(path)
		return fmt.Errorf("failed to close %q: %w", name, err)
	}

	return nil
}

func (s *DiskImageStorage) Delete(_ context.Context, name string) error {
	path, err := s.path(name)
	if err != nil {
		return err
	}
	return os.Remove(path)
}

// List - имена обычных файлов каталога в порядке загрузки: <ms>.ext, <ms>-1.ext, <ms>-2.ext, ...
// Имена не по этой схеме идут в конце по алфавиту.
func (s *DiskImageStorage) List(_ context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		names = append(names, e.Name())
	}
	sort.SliceStable(names, func(i, j int) bool {
		return uploadOrderLess(names[i], names[j])
	})

	return names, nil
}

func uploadOrderLess(a, b string) bool {
	msA, sufA, okA := parseGeneratedName(a)
	msB, sufB, okB := parseGeneratedName(b)
	switch {
	case okA && !okB:
		return true
	case !okA && okB:
		return false
	case okA && okB && (msA != msB || sufA != sufB):
		if msA != msB {
			return msA < msB
		}
		return sufA < sufB
	default:
		return a < b
	}
}

// parseGeneratedName разбирает "<ms>[-<suffix>]<ext>"; без суффикса suffix = 0
func parseGeneratedName(name string) (ms int64, suffix int, ok bool) {
	base := strings.TrimSuffix(name, filepath.Ext(name))
	msPart, sufPart, hasSuffix := strings.Cut(base, "-")

	ms, err := strconv.ParseInt(msPart, 10, 64)
	if err != nil || ms < 0 {
		return 0, 0, false
	}
	if !hasSuffix {
		return ms, 0, true
	}

	suffix, err = strconv.Atoi(sufPart)
	if err != nil || suffix <= 0 {
		return 0, 0, false
	}
	return ms, suffix, true
}

func (s *DiskImageStorage) path(name string) (string, error) {
	if name == "" || name == "." || name == ".." || filepath.Base(name) != name {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return filepath.Join(s.dir, name), nil
}

func closeAndRemove(f *os.File, path string) {
	if err := f.Close(); err != nil {
		log.Println("Storage failed to close partial file:", err)
	}
	removeFile(path)
}

func removeFile(path string) {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Println("Storage failed to remove partial file:", err)
	}
}
