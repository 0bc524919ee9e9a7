package domain

// StoredImage - загруженный файл изображения
type StoredImage struct {
	URL         string
	Path        string // путь относительно корня хранилища
	ContentType string
	Size        int64
}
