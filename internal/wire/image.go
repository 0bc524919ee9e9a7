package wire

// ImageDTO - ответ на загрузку и проверку изображения
type ImageDTO struct {
	Success  bool   `json:"success"`
	ImageURL string `json:"imageUrl"`
	Message  string `json:"message,omitempty"`
	Exists   *bool  `json:"exists,omitempty"`
}

// MessageDTO - короткий ответ без данных
type MessageDTO struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
