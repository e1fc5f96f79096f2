// Package image - коллаборатор для загрузки картинок (аватары, обложки
// постов). Ядро использует только возвращаемый URL.
package image

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"community/internal/apperr"

	"github.com/google/uuid"
)

// Разрешенные расширения файлов
var allowedExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
}

type Storage interface {
	// Save сохраняет файл под уникальным именем и возвращает публичный путь.
	// Недопустимое расширение - apperr.ErrValidation.
	Save(r io.Reader, filename string) (string, error)
}

// DiskStorage кладет файлы в dir (обычно static/images),
// publicPrefix - префикс URL, под которым каталог раздается
type DiskStorage struct {
	dir          string
	publicPrefix string
}

func NewDiskStorage(dir, publicPrefix string) (*DiskStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &DiskStorage{dir: dir, publicPrefix: strings.TrimRight(publicPrefix, "/")}, nil
}

func (s *DiskStorage) Save(r io.Reader, filename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedExtensions[ext] {
		return "", fmt.Errorf("%w: only png, jpg, jpeg, gif images are allowed", apperr.ErrValidation)
	}

	// uuid-префикс исключает коллизии имен; Base отсекает чужие пути
	name := fmt.Sprintf("%s_%s", uuid.New().String(), filepath.Base(filename))
	path := filepath.Join(s.dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create image file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("write image file: %w", err)
	}

	return s.publicPrefix + "/" + name, nil
}
