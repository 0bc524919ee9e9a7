package filestorage_adapter

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"realty-backoffice/internal/constants"
	"realty-backoffice/internal/contextkeys"
	"realty-backoffice/internal/core/domain"
	"realty-backoffice/internal/core/port"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

// разрешенные типы и расширения, с которыми они сохраняются
var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// ImageStorage хранит изображения на диске: <root>/<yyyy>/<mm>/<uuid>.<ext>
type ImageStorage struct {
	root     string
	baseURL  string
	maxBytes int64
	now      func() time.Time
}

// NewImageStorage: baseURL - публичный адрес сервиса, файлы отдаются по baseURL + /uploads/...
func NewImageStorage(root, baseURL string, maxBytes int64) (*ImageStorage, error) {
	if root == "" {
		return nil, fmt.Errorf("upload directory cannot be empty")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create upload directory: %w", err)
	}
	return &ImageStorage{
		root:     root,
		baseURL:  strings.TrimRight(baseURL, "/"),
		maxBytes: maxBytes,
		now:      time.Now,
	}, nil
}

func (s *ImageStorage) Save(ctx context.Context, filename string, r io.Reader) (*domain.StoredImage, error) {
	storageLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "ImageStorage",
		"filename":  filename,
	})

	data, err := io.ReadAll(io.LimitReader(r, s.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if int64(len(data)) > s.maxBytes {
		return nil, domain.ErrImageTooLarge
	}
	if len(data) == 0 {
		return nil, domain.ErrUnsupportedImage
	}

	// тип определяем по содержимому, расширение файла не учитывается
	mime := mimetype.Detect(data)
	ext, ok := allowedImageTypes[mime.String()]
	if !ok {
		storageLogger.Debug("Rejected upload by content type", port.Fields{"detected": mime.String()})
		return nil, domain.ErrUnsupportedImage
	}

	now := s.now().UTC()
	rel := path.Join(now.Format("2006"), now.Format("01"), uuid.NewString()+ext)
	full := filepath.Join(s.root, filepath.FromSlash(rel))

	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return nil, fmt.Errorf("create image directory: %w", err)
	}
	if err := writeFile(full, data); err != nil {
		storageLogger.Error("Failed to write image", err, nil)
		return nil, err
	}

	return &domain.StoredImage{
		URL:         s.baseURL + constants.UploadsRoute + "/" + rel,
		Path:        rel,
		ContentType: mime.String(),
		Size:        int64(len(data)),
	}, nil
}

// writeFile пишет во временный файл и переименовывает, чтобы не отдавать недописанный файл
func writeFile(full string, data []byte) error {
	tmp := full + ".part"
	f, err := os.OpenFile(tmp, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("create image file: %w", err)
	}
	if _, err := io.Copy(f, bytes.NewReader(data)); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("write image file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("close image file: %w", err)
	}
	return os.Rename(tmp, full)
}

func (s *ImageStorage) Delete(ctx context.Context, imageURL string) error {
	full, err := s.resolve(imageURL)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.ErrImageNotFound
		}
		return fmt.Errorf("delete image: %w", err)
	}
	contextkeys.LoggerFromContext(ctx).Debug("Image deleted", port.Fields{"url": imageURL})
	return nil
}

func (s *ImageStorage) Exists(ctx context.Context, imageURL string) (bool, error) {
	full, err := s.resolve(imageURL)
	if err != nil {
		if errors.Is(err, domain.ErrImageNotFound) {
			return false, nil
		}
		return false, err
	}
	info, err := os.Stat(full)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("stat image: %w", err)
	}
	return !info.IsDir(), nil
}

// resolve переводит публичный URL в путь на диске. Принимает полный URL и путь /uploads/...
// Чужие адреса и выход за пределы каталога считаются ненайденными.
func (s *ImageStorage) resolve(imageURL string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(imageURL))
	if err != nil || imageURL == "" {
		return "", domain.ErrImageNotFound
	}
	if u.Host != "" {
		base, err := url.Parse(s.baseURL)
		if err != nil || !strings.EqualFold(base.Host, u.Host) {
			return "", domain.ErrImageNotFound
		}
	}

	prefix := constants.UploadsRoute + "/"
	if !strings.HasPrefix(u.Path, prefix) {
		return "", domain.ErrImageNotFound
	}
	rel := path.Clean("/" + strings.TrimPrefix(u.Path, prefix))
	if rel == "/" {
		return "", domain.ErrImageNotFound
	}
	return filepath.Join(s.root, filepath.FromSlash(strings.TrimPrefix(rel, "/"))), nil
}
