package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/h2non/filetype"
)

var (
	// ErrUnsupportedType файл не является поддерживаемым изображением.
	ErrUnsupportedType = errors.New("неподдерживаемый формат файла, разрешены jpg, png, gif, webp")
	// ErrExtensionMismatch расширение не соответствует содержимому.
	ErrExtensionMismatch = errors.New("расширение файла не соответствует его содержимому")
	// ErrTooLarge превышен лимит размера.
	ErrTooLarge = errors.New("размер файла превышает лимит")
	// ErrEmptyFile пустой файл.
	ErrEmptyFile = errors.New("файл не может быть пустым")
)

// Разрешённые MIME типы фото профиля
var allowedMimeTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// PhotoStorage отвечает за файловое хранилище фотографий профиля.
type PhotoStorage struct {
	rootPath       string
	maxUploadBytes int64
}

// NewPhotoStorage создаёт файловое хранилище.
func NewPhotoStorage(rootPath string, maxUploadMB int64) (*PhotoStorage, error) {
	if err := os.MkdirAll(rootPath, 0o755); err != nil {
		return nil, fmt.Errorf("storage: не удалось создать каталог %s: %w", rootPath, err)
	}

	return &PhotoStorage{
		rootPath:       rootPath,
		maxUploadBytes: maxUploadMB * 1024 * 1024,
	}, nil
}

// MaxUploadBytes возвращает лимит размера файла.
func (s *PhotoStorage) MaxUploadBytes() int64 {
	return s.maxUploadBytes
}

// DetectImage проверяет магические байты и совпадение с расширением имени файла.
// Возвращает расширение, под которым файл будет сохранён.
func DetectImage(originalName string, head []byte) (string, error) {
	if len(head) == 0 {
		return "", ErrEmptyFile
	}

	kind, err := filetype.Match(head)
	if err != nil || kind == filetype.Unknown || !allowedMimeTypes[kind.MIME.Value] {
		return "", ErrUnsupportedType
	}

	expected := "." + kind.Extension
	ext := strings.ToLower(filepath.Ext(originalName))
	// .jpg и .jpeg - это одно и то же
	if ext == ".jpeg" {
		ext = ".jpg"
	}
	if expected == ".jpeg" {
		expected = ".jpg"
	}
	if ext != expected {
		return "", fmt.Errorf("%w (%s вместо %s)", ErrExtensionMismatch, ext, expected)
	}

	return expected, nil
}

// Save проверяет тип изображения, сохраняет файл и возвращает относительный путь
// в URL форме (<user>/<file>).
func (s *PhotoStorage) Save(ctx context.Context, userID uuid.UUID, originalName string, r io.Reader) (string, int64, error) {
	if err := ctx.Err(); err != nil {
		return "", 0, err
	}

	head := make([]byte, 512)
	n, err := io.ReadFull(r, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", 0, fmt.Errorf("storage: не удалось прочитать файл: %w", err)
	}
	head = head[:n]

	ext, err := DetectImage(originalName, head)
	if err != nil {
		return "", 0, err
	}

	fileName := fmt.Sprintf("avatar_%d%s", time.Now().UnixNano(), ext)

	userDir := filepath.Join(s.rootPath, userID.String())
	if err := os.MkdirAll(userDir, 0o755); err != nil {
		return "", 0, fmt.Errorf("storage: не удалось создать каталог пользователя: %w", err)
	}

	targetPath := filepath.Join(userDir, fileName)
	tempPath := targetPath + ".tmp"

	f, err := os.Create(tempPath)
	if err != nil {
		return "", 0, fmt.Errorf("storage: не удалось создать файл: %w", err)
	}
	defer f.Close()

	limitedReader := io.LimitedReader{R: io.MultiReader(bytes.NewReader(head), r), N: s.maxUploadBytes + 1}
	written, err := io.Copy(f, &limitedReader)
	if err != nil {
		_ = os.Remove(tempPath)
		return "", 0, fmt.Errorf("storage: ошибка записи файла: %w", err)
	}

	if written > s.maxUploadBytes {
		_ = os.Remove(tempPath)
		return "", 0, fmt.Errorf("%w (%d байт)", ErrTooLarge, s.maxUploadBytes)
	}

	if err := f.Close(); err != nil {
		return "", 0, fmt.Errorf("storage: ошибка закрытия файла: %w", err)
	}

	if err := os.Rename(tempPath, targetPath); err != nil {
		return "", 0, fmt.Errorf("storage: не удалось переименовать файл: %w", err)
	}

	return path.Join(userID.String(), fileName), written, nil
}

// Delete удаляет файл из хранилища.
func (s *PhotoStorage) Delete(ctx context.Context, relativePath string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	target, err := s.resolve(relativePath)
	if err != nil {
		return err
	}
	if err := os.Remove(target); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("storage: не удалось удалить файл: %w", err)
	}
	return nil
}

// resolve не даёт относительному пути выйти за пределы корня хранилища.
func (s *PhotoStorage) resolve(relativePath string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(relativePath))
	if filepath.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("storage: недопустимый путь %q", relativePath)
	}
	return filepath.Join(s.rootPath, clean), nil
}
